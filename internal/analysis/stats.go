package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Slope returns the least-squares slope of values against their index
func Slope(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	xs := make([]float64, len(values))
	for i := range xs {
		xs[i] = float64(i)
	}
	_, slope := stat.LinearRegression(xs, values, nil, false)
	return slope
}

// ZScore returns how many standard deviations value lies from mean.
// A zero deviation yields 0.
func ZScore(value, mean, std float64) float64 {
	if std == 0 {
		return 0
	}
	return (value - mean) / std
}

// Percentile returns the percentage of data below value, counting ties as
// half. NaNs are ignored and an empty set yields 50.
func Percentile(value float64, data []float64) float64 {
	var below, equal, n int
	for _, v := range data {
		if math.IsNaN(v) {
			continue
		}
		n++
		switch {
		case v < value:
			below++
		case v == value:
			equal++
		}
	}
	if n == 0 {
		return 50
	}
	return (float64(below) + float64(equal)/2) / float64(n) * 100
}
