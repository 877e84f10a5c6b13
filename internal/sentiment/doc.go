// Package sentiment scores text for polarity and subjectivity using the
// VADER lexicon and computes rolling trend metrics over scored series.
package sentiment
