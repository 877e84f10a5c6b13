package sentiment

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jonreiter/govader"
)

// Label thresholds follow the dashboard's reading of VADER compound scores.
const (
	positiveThreshold = 0.3
	negativeThreshold = -0.3
)

// Score is the result of scoring a single text.
type Score struct {
	// Polarity is the VADER compound score in [-1, 1].
	Polarity float64 `json:"polarity"`
	// Subjectivity is the non-neutral lexicon mass in [0, 1].
	Subjectivity float64 `json:"subjectivity"`
	// Label is "positive", "negative" or "neutral".
	Label string `json:"label"`
}

// Sample is one scored text with its capture time.
type Sample struct {
	At    time.Time `json:"at"`
	Text  string    `json:"text"`
	Score Score     `json:"score"`
}

// Neutral is the score returned for empty or whitespace-only input.
func Neutral() Score {
	return Score{Polarity: 0, Subjectivity: 0, Label: "neutral"}
}

var (
	urlPattern = regexp.MustCompile(`https?://\S+|www\.\S+`)
)

// normalize strips URLs and collapses whitespace before scoring.
// URLs carry no lexicon signal and their tokens skew the neutral mass.
func normalize(text string) string {
	text = urlPattern.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(text), " ")
}

// Analyzer wraps the VADER sentiment intensity analyzer.
// Scoring is deterministic: identical input yields identical output.
type Analyzer struct {
	vader *govader.SentimentIntensityAnalyzer
}

// NewAnalyzer constructs an Analyzer and verifies the bundled lexicon is
// usable. A probe sentence with unambiguous valence must produce a nonzero
// compound score; anything else means the lexicon failed to load and the
// service cannot start.
func NewAnalyzer() (*Analyzer, error) {
	a := &Analyzer{vader: govader.NewSentimentIntensityAnalyzer()}

	probe := a.vader.PolarityScores("wonderful")
	if probe.Compound == 0 {
		return nil, fmt.Errorf("sentiment lexicon self-check failed: probe text scored zero")
	}

	return a, nil
}

// Score scores a single text. Empty or whitespace-only input yields the
// neutral score; scoring itself never fails.
func (a *Analyzer) Score(text string) Score {
	normalized := normalize(text)
	if normalized == "" {
		return Neutral()
	}

	s := a.vader.PolarityScores(normalized)

	score := Score{
		Polarity:     clamp(s.Compound, -1, 1),
		Subjectivity: clamp(s.Positive+s.Negative, 0, 1),
		Label:        labelFor(s.Compound),
	}
	return score
}

func labelFor(compound float64) string {
	switch {
	case compound > positiveThreshold:
		return "positive"
	case compound < negativeThreshold:
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
