// Package stats holds the numeric helpers shared by the calculators:
// means over optional values, average ranks and rounded ratios.
package stats

import (
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/okian/edgeboard/internal/domain/model"
)

// Present returns the present values in order.
func Present(vals []model.Float) []float64 {
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if x, ok := v.Get(); ok {
			out = append(out, x)
		}
	}
	return out
}

// Mean averages the present values. It is absent when nothing is present.
func Mean(vals []model.Float) model.Float {
	xs := Present(vals)
	if len(xs) == 0 {
		return model.None[float64]()
	}
	return model.Some(stat.Mean(xs, nil))
}

// Sum adds the present values. Nothing present sums to 0.
func Sum(vals []model.Float) float64 {
	return floats.Sum(Present(vals))
}

// Ratio returns num/den rounded to places, absent when den is 0.
func Ratio(num, den int, places int32) model.Float {
	if den == 0 {
		return model.None[float64]()
	}
	f, _ := decimal.NewFromInt(int64(num)).
		DivRound(decimal.NewFromInt(int64(den)), places).
		Float64()
	return model.Some(f)
}

// AverageRanks ranks xs from 1. Ascending ranks the smallest value 1,
// descending the largest. Tied values share the mean of the ranks they span.
func AverageRanks(xs []float64, descending bool) []float64 {
	n := len(xs)
	sorted := make([]float64, n)
	copy(sorted, xs)
	if descending {
		floats.Scale(-1, sorted)
	}
	inds := make([]int, n)
	floats.Argsort(sorted, inds)

	ranks := make([]float64, n)
	for i := 0; i < n; {
		j := i + 1
		for j < n && sorted[j] == sorted[i] {
			j++
		}
		// positions i+1..j
		r := float64(i+1+j) / 2
		for k := i; k < j; k++ {
			ranks[inds[k]] = r
		}
		i = j
	}
	return ranks
}
