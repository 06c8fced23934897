package skinhealth

import (
	"math"

	"github.com/montanaflynn/stats"

	"github.com/yanqian/skinsight/pkg/util"
)

// minCorrelationPairs is the least number of same-day pairs that carry signal.
const minCorrelationPairs = 3

// Correlate pairs the two series by calendar day and returns the Pearson
// coefficient in [-1, 1]. Days present in only one series are dropped; when
// either series repeats a day, its first value is used. Fewer than three pairs,
// or a series with zero variance, yields 0.
func Correlate(xs, ys []DatedValue) float64 {
	lookup := make(map[string]float64, len(ys))
	for _, y := range ys {
		key := util.DayKey(y.Date)
		if _, ok := lookup[key]; ok {
			continue
		}
		lookup[key] = y.Value
	}

	seen := make(map[string]struct{}, len(xs))
	left := make([]float64, 0, len(xs))
	right := make([]float64, 0, len(xs))
	for _, x := range xs {
		key := util.DayKey(x.Date)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		y, ok := lookup[key]
		if !ok {
			continue
		}
		left = append(left, x.Value)
		right = append(right, y)
	}
	if len(left) < minCorrelationPairs {
		return 0
	}

	r, err := stats.Correlation(left, right)
	if err != nil || math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return clamp(r, -1, 1)
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

func clampScore(v float64) float64 {
	return clamp(v, 0, 100)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m, err := stats.Mean(values)
	if err != nil {
		return 0
	}
	return m
}
