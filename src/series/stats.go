package series

import (
	"fmt"
	"math"
)

// Stats summarizes the deviation of the generated series from the real one.
// Values follow IEEE semantics: an empty series gives NaN, a zero real price gives ±Inf/NaN
// in MeanDiffPct.
type Stats struct {
	Count         int
	RealMean      float64
	RealStd       float64
	GeneratedMean float64
	GeneratedStd  float64
	MeanDiffPct   float64
}

// ComputeStats computes population mean and standard deviation of both series and the mean
// of (generated-real)/real*100 across all samples.
func ComputeStats(s *Series) Stats {
	st := Stats{Count: s.Len()}
	if st.Count == 0 {
		nan := math.NaN()
		st.RealMean, st.RealStd = nan, nan
		st.GeneratedMean, st.GeneratedStd = nan, nan
		st.MeanDiffPct = nan
		return st
	}
	st.RealMean, st.RealStd = meanStd(s.Real)
	st.GeneratedMean, st.GeneratedStd = meanStd(s.Generated)
	diffs := make([]float64, st.Count)
	for i := range diffs {
		diffs[i] = (s.Generated[i] - s.Real[i]) / s.Real[i] * 100
	}
	st.MeanDiffPct = mean(diffs)
	return st
}

func mean(a []float64) float64 {
	var sum float64
	for _, v := range a {
		sum += v
	}
	return sum / float64(len(a))
}

// meanStd returns the mean and population standard deviation (divide by n).
func meanStd(a []float64) (float64, float64) {
	m := mean(a)
	var ss float64
	for _, v := range a {
		d := v - m
		ss += d * d
	}
	return m, math.Sqrt(ss / float64(len(a)))
}

// Lines returns the statistics block as displayed by the viewer.
func (st Stats) Lines() []string {
	return []string{
		"Statistics:",
		fmt.Sprintf("Real Price - Mean: %.2f, Std: %.2f", st.RealMean, st.RealStd),
		fmt.Sprintf("Generated Price - Mean: %.2f, Std: %.2f", st.GeneratedMean, st.GeneratedStd),
		fmt.Sprintf("Average Difference: %.2f%%", st.MeanDiffPct),
	}
}
