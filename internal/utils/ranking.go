package utils

import (
	"math"
	"time"
)

type RankConfig struct {
	Gravity        float64 // time gravity
	WeightComment  float64
	WeightUpvote   float64
	WeightDownvote float64
	ScaleFactor    float64
}

var DefaultConfig = RankConfig{
	Gravity:        1.5,
	WeightComment:  2.0,
	WeightUpvote:   1.0,
	WeightDownvote: 1.5,
	ScaleFactor:    100.0, // keeps scores in a 0-100 "temperature" band
}

// CalculateScore turns a publication's vote weight and comment activity into
// a time-decayed hot-rank. up and down are summed vote weights, not counts.
func CalculateScore(t time.Time, up, down, comments int64) float64 {
	hours := time.Since(t).Hours()

	weightedSum := (float64(up) * DefaultConfig.WeightUpvote) +
		(float64(comments) * DefaultConfig.WeightComment) -
		(float64(down) * DefaultConfig.WeightDownvote)

	// Log smoothing breaks on negatives; a publication voted below zero just
	// bottoms out.
	if weightedSum < 0 {
		weightedSum = 0
	}

	logScore := math.Log10(weightedSum + 1)
	numerator := logScore * DefaultConfig.ScaleFactor
	decay := math.Pow(hours+2, DefaultConfig.Gravity)

	return numerator / decay
}
