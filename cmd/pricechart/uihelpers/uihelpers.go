package uihelpers

import (
	"math"
	"strconv"
	"time"
)

// ComputeChartDimensions applies the width/height clamp rules used for the price chart.
// Input: desired raw width (e.g., canvas width). Returns clamped width & height at a 15:8 aspect.
func ComputeChartDimensions(rawW int) (int, int) {
	w := rawW
	if w < 900 {
		w = 900
	}
	if w > 2400 {
		w = 2400
	}
	h := w * 8 / 15
	if h < 480 {
		h = 480
	}
	if h > 900 {
		h = 900
	}
	return w, h
}

// round6 rounds to 6 decimal places to stabilize test comparisons / labels prep.
func round6(v float64) float64 { return math.Round(v*1e6) / 1e6 }

// BuildNumericTicks generates up to n tick marks spanning [min,max] using a 1,2,2.5,5 pattern.
// Returns raw numeric positions; the first may sit below min and the last above max.
func BuildNumericTicks(min, max float64, n int) []float64 {
	if n < 2 || math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) {
		return nil
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n-1))))
	candidates := []float64{1, 2, 2.5, 5, 10}
	bestStep := mag
	bestScore := math.MaxFloat64
	for _, c := range candidates {
		step := c * mag
		count := math.Ceil(span/step) + 1
		if count < 2 {
			count = 2
		}
		diff := math.Abs(count - float64(n))
		if diff < bestScore {
			bestScore = diff
			bestStep = step
		}
	}
	start := math.Floor(min/bestStep) * bestStep
	end := math.Ceil(max/bestStep) * bestStep
	var out []float64
	for v := start; v <= end+bestStep*0.5; v += bestStep {
		out = append(out, round6(v))
	}
	if len(out) < 2 {
		out = []float64{min, max}
	}
	return out
}

// TicksWithin keeps the ticks inside [min,max].
func TicksWithin(ticks []float64, min, max float64) []float64 {
	out := ticks[:0:0]
	for _, v := range ticks {
		if v >= min && v <= max {
			out = append(out, v)
		}
	}
	return out
}

// FormatNumericTick provides a compact price label.
func FormatNumericTick(v float64) string {
	av := math.Abs(v)
	switch {
	case av >= 1000:
		return strconv.FormatFloat(v, 'f', 0, 64)
	case av >= 100:
		return strconv.FormatFloat(v, 'f', 1, 64)
	case av >= 1:
		return strconv.FormatFloat(v, 'f', 2, 64)
	case av >= 0.01:
		return strconv.FormatFloat(v, 'f', 3, 64)
	default:
		return strconv.FormatFloat(v, 'f', 4, 64)
	}
}

// PickTimeStep selects a readable tick step for a given time span (aiming for ~6-12 ticks).
func PickTimeStep(span time.Duration) time.Duration {
	switch {
	case span <= 2*time.Minute:
		return 10 * time.Second
	case span <= 10*time.Minute:
		return 1 * time.Minute
	case span <= 30*time.Minute:
		return 5 * time.Minute
	case span <= 2*time.Hour:
		return 10 * time.Minute
	case span <= 6*time.Hour:
		return 30 * time.Minute
	case span <= 24*time.Hour:
		return 2 * time.Hour
	case span <= 3*24*time.Hour:
		return 6 * time.Hour
	case span <= 14*24*time.Hour:
		return 24 * time.Hour
	case span <= 60*24*time.Hour:
		return 7 * 24 * time.Hour
	case span <= 180*24*time.Hour:
		return 30 * 24 * time.Hour
	case span <= 730*24*time.Hour:
		return 91 * 24 * time.Hour
	}
	step := 365 * 24 * time.Hour
	for span/step > 12 {
		step *= 2
	}
	return step
}

// TimeTicks returns step-aligned instants in [minT, maxT], capped at maxTicks.
// Alignment is done on unix seconds so tick positions are stable across zoom levels.
func TimeTicks(minT, maxT time.Time, step time.Duration, maxTicks int) []time.Time {
	if step <= 0 || maxT.Before(minT) {
		return nil
	}
	st := int64(step / time.Second)
	if st <= 0 {
		st = 1
	}
	s := minT.Unix()
	first := (s / st) * st
	if first < s || (first == s && minT.Nanosecond() > 0) {
		first += st
	}
	var out []time.Time
	for t := time.Unix(first, 0); !t.After(maxT); t = t.Add(time.Duration(st) * time.Second) {
		out = append(out, t)
		if maxTicks > 0 && len(out) >= maxTicks {
			break
		}
	}
	return out
}
