// Package simulation produces the synthetic demo series shown on the
// dashboard when no real samples exist yet. The series walks through three
// regimes: calm noise, a polarized split, and a collapse into one camp.
package simulation

import (
	"math/rand"
	"time"

	"github.com/langxubai/Sentiment-Compass-app/internal/sentiment"
)

const (
	seriesLength = 100
	calmEnd      = 40
	polarizedEnd = 70
)

// Generator produces deterministic demo series for a given seed.
type Generator struct {
	rng *rand.Rand
}

func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Series returns 100 hourly samples ending at 'end', oldest first.
func (g *Generator) Series(end time.Time) []sentiment.Sample {
	start := end.Add(-time.Duration(seriesLength-1) * time.Hour)

	samples := make([]sentiment.Sample, seriesLength)
	for i := range samples {
		var polarity, subjectivity float64
		switch {
		case i < calmEnd:
			// balanced chatter around zero
			polarity = g.rng.NormFloat64() * 0.2
			subjectivity = g.rng.Float64()
		case i < polarizedEnd:
			// two entrenched camps, still averaging near zero
			camp := 0.8
			if g.rng.Intn(2) == 0 {
				camp = -0.8
			}
			polarity = camp + g.rng.NormFloat64()*0.1
			subjectivity = 0.9
		default:
			// opinion collapses into the negative camp
			polarity = -0.9 + g.rng.NormFloat64()*0.1
			subjectivity = 0.6
		}

		samples[i] = sentiment.Sample{
			At: start.Add(time.Duration(i) * time.Hour),
			Score: sentiment.Score{
				Polarity:     clamp(polarity, -1, 1),
				Subjectivity: clamp(subjectivity, 0, 1),
				Label:        label(polarity),
			},
		}
	}

	return samples
}

func label(polarity float64) string {
	switch {
	case polarity > 0.3:
		return "positive"
	case polarity < -0.3:
		return "negative"
	default:
		return "neutral"
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
