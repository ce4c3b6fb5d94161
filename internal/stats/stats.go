package stats

import (
	"errors"
	"math"

	"stockwatch/internal/model"
)

// SMA computes the simple moving average of the last n values.
func SMA(values []float64, n int) (float64, error) {
	if n <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(values) < n {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(values) - n; i < len(values); i++ {
		sum += values[i]
	}
	return sum / float64(n), nil
}

// Closes extracts the close prices from a candle series.
func Closes(candles []model.Candle) []float64 {
	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}
	return closes
}

// Range scans the most recent n candles and returns the high and low.
// n <= 0 scans the whole series.
func Range(candles []model.Candle, n int) (high, low float64, err error) {
	if len(candles) == 0 {
		return 0, 0, errors.New("no candles provided")
	}
	start := 0
	if n > 0 && len(candles) > n {
		start = len(candles) - n
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for i := start; i < len(candles); i++ {
		if candles[i].High > high {
			high = candles[i].High
		}
		if candles[i].Low < low {
			low = candles[i].Low
		}
	}
	return high, low, nil
}
