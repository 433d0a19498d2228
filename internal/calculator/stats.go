package calculator

import (
	"errors"
	"math"
	"sort"

	"StockStats/internal/model"
)

// ErrNoData is returned when a statistic is requested over an empty series.
var ErrNoData = errors.New("no prices provided")

// CalculateMinMax scans prices and returns the lowest and highest value.
func CalculateMinMax(prices []float64) (low, high float64, err error) {
	if len(prices) == 0 {
		return 0, 0, ErrNoData
	}
	low = math.Inf(1)
	high = math.Inf(-1)
	for _, p := range prices {
		if p < low {
			low = p
		}
		if p > high {
			high = p
		}
	}
	return low, high, nil
}

// CalculateMean computes the arithmetic mean of prices.
func CalculateMean(prices []float64) (float64, error) {
	if len(prices) == 0 {
		return 0, ErrNoData
	}
	sum := 0.0
	for _, p := range prices {
		sum += p
	}
	return sum / float64(len(prices)), nil
}

// CalculateMedian returns the middle value of prices, or the mean of the two
// middle values when the count is even. The input slice is not modified.
func CalculateMedian(prices []float64) (float64, error) {
	n := len(prices)
	if n == 0 {
		return 0, ErrNoData
	}
	sorted := make([]float64, n)
	copy(sorted, prices)
	sort.Float64s(sorted)

	mid := n / 2
	if n%2 == 1 {
		return sorted[mid], nil
	}
	return (sorted[mid-1] + sorted[mid]) / 2, nil
}

// Summarize computes min, max, mean and median over the full series.
func Summarize(prices []float64) (model.Stats, error) {
	low, high, err := CalculateMinMax(prices)
	if err != nil {
		return model.Stats{}, err
	}
	mean, err := CalculateMean(prices)
	if err != nil {
		return model.Stats{}, err
	}
	median, err := CalculateMedian(prices)
	if err != nil {
		return model.Stats{}, err
	}
	return model.Stats{Min: low, Max: high, Avg: mean, Median: median}, nil
}
