package report

import (
	"math"
	"sort"
)

// Stats is a statistical summary of one measured dimension across trials.
type Stats struct {
	Min    float64
	Max    float64
	Mean   float64
	Median float64
	StdDev float64
}

// Compute summarizes the given samples. Zero samples yield zero stats.
func Compute(values []float64) Stats {
	if len(values) == 0 {
		return Stats{}
	}

	mean := calculateMean(values)
	return Stats{
		Min:    calculateMin(values),
		Max:    calculateMax(values),
		Mean:   mean,
		Median: calculateMedian(values),
		StdDev: calculateStdDev(values, mean),
	}
}

func calculateMin(values []float64) float64 {
	min := values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

func calculateMax(values []float64) float64 {
	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

func calculateMean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func calculateMedian(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func calculateStdDev(values []float64, mean float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var sum float64
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)-1))
}
