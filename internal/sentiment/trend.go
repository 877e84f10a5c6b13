package sentiment

import "time"

// minTrendWindow is used for short series where len/10 would be too small.
const minTrendWindow = 5

// TrendPoint carries rolling statistics for one sample position.
// Mean and Variance are nil until a full window is available.
type TrendPoint struct {
	At       time.Time `json:"at"`
	Mean     *float64  `json:"mean"`
	Variance *float64  `json:"variance"`
}

// TrendWindow returns the rolling window size for a series of length n:
// n/10 once the series is long enough to support it, otherwise 5.
func TrendWindow(n int) int {
	if n > 20 {
		return n / 10
	}
	return minTrendWindow
}

// Trend computes rolling mean and variance of polarity over the samples,
// one point per sample. The mean tracks the prevailing opinion direction;
// the variance its dispersion. Positions before the first full window have
// nil statistics.
func Trend(samples []Sample) []TrendPoint {
	n := len(samples)
	if n == 0 {
		return nil
	}

	window := TrendWindow(n)
	points := make([]TrendPoint, n)

	var sum, sumSq float64
	for i, s := range samples {
		p := s.Score.Polarity
		sum += p
		sumSq += p * p

		if i >= window {
			old := samples[i-window].Score.Polarity
			sum -= old
			sumSq -= old * old
		}

		points[i] = TrendPoint{At: s.At}
		if i >= window-1 {
			w := float64(window)
			mean := sum / w
			// population variance over the window
			variance := sumSq/w - mean*mean
			if variance < 0 {
				variance = 0 // float round-off
			}
			points[i].Mean = &mean
			points[i].Variance = &variance
		}
	}

	return points
}
