package simulation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeries_LengthAndSpacing(t *testing.T) {
	end := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	samples := NewGenerator(1).Series(end)

	require.Len(t, samples, 100)
	assert.True(t, samples[99].At.Equal(end))

	for i := 1; i < len(samples); i++ {
		assert.Equal(t, time.Hour, samples[i].At.Sub(samples[i-1].At), "position %d", i)
	}
}

func TestSeries_ValuesInRange(t *testing.T) {
	samples := NewGenerator(42).Series(time.Now())

	for i, s := range samples {
		assert.GreaterOrEqual(t, s.Score.Polarity, -1.0, "position %d", i)
		assert.LessOrEqual(t, s.Score.Polarity, 1.0, "position %d", i)
		assert.GreaterOrEqual(t, s.Score.Subjectivity, 0.0, "position %d", i)
		assert.LessOrEqual(t, s.Score.Subjectivity, 1.0, "position %d", i)
	}
}

func TestSeries_DeterministicUnderFixedSeed(t *testing.T) {
	end := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	first := NewGenerator(7).Series(end)
	second := NewGenerator(7).Series(end)

	assert.Equal(t, first, second)
}

func TestSeries_DifferentSeedsDiffer(t *testing.T) {
	end := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	first := NewGenerator(1).Series(end)
	second := NewGenerator(2).Series(end)

	assert.NotEqual(t, first, second)
}

func TestSeries_PhaseCharacter(t *testing.T) {
	samples := NewGenerator(3).Series(time.Now())

	// polarized phase: strong subjectivity, values split away from zero
	for i := calmEnd; i < polarizedEnd; i++ {
		assert.Equal(t, 0.9, samples[i].Score.Subjectivity, "position %d", i)
		assert.Greater(t, abs(samples[i].Score.Polarity), 0.4, "position %d", i)
	}

	// collapsed phase: firmly negative
	for i := polarizedEnd; i < len(samples); i++ {
		assert.Equal(t, 0.6, samples[i].Score.Subjectivity, "position %d", i)
		assert.Less(t, samples[i].Score.Polarity, -0.5, "position %d", i)
		assert.Equal(t, "negative", samples[i].Score.Label, "position %d", i)
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
