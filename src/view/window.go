package view

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/iafilius/PriceChartViewer/src/series"
)

// Y limits are padded by these factors around the visible min/max.
const (
	yMinFactor = 0.999
	yMaxFactor = 1.001
)

var (
	ErrEmptyWindow = errors.New("window has no samples")
	ErrWindowRange = errors.New("window larger than series")
)

// Window is the visible suffix of the series together with the axis limits to draw it with.
type Window struct {
	Timestamps []time.Time
	Real       []float64
	Generated  []float64
	XMin, XMax time.Time
	YMin, YMax float64
}

func (w Window) Len() int { return len(w.Timestamps) }

// Compute returns the window of the last n samples of s.
// XMin/XMax are the first/last visible timestamps in file order; no reordering is applied.
func Compute(s *series.Series, n int) (Window, error) {
	total := s.Len()
	if n <= 0 {
		return Window{}, ErrEmptyWindow
	}
	if n > total {
		return Window{}, fmt.Errorf("%w: %d > %d", ErrWindowRange, n, total)
	}
	suf := s.Suffix(n)
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, vals := range [][]float64{suf.Real, suf.Generated} {
		for _, v := range vals {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	return Window{
		Timestamps: suf.Timestamps,
		Real:       suf.Real,
		Generated:  suf.Generated,
		XMin:       suf.Timestamps[0],
		XMax:       suf.Timestamps[n-1],
		YMin:       lo * yMinFactor,
		YMax:       hi * yMaxFactor,
	}, nil
}

// For computes the window for the state's NPoints.
func (s State) For(data *series.Series) (Window, error) {
	return Compute(data, s.NPoints)
}
