package view

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iafilius/PriceChartViewer/src/series"
)

func mustParse(t *testing.T, content string) *series.Series {
	t.Helper()
	s, err := series.Parse(strings.NewReader(content))
	require.NoError(t, err)
	return s
}

func TestCompute_SinglePointWindow(t *testing.T) {
	s := mustParse(t, "100,101,1000\n200,202,2000\n300,303,3000\n")

	w, err := Compute(s, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, w.Len())
	assert.Equal(t, []float64{300}, w.Real)
	assert.Equal(t, []float64{303}, w.Generated)
	assert.Equal(t, int64(3000), w.XMin.Unix())
	assert.Equal(t, int64(3000), w.XMax.Unix())
	assert.InDelta(t, 300*0.999, w.YMin, 1e-9)
	assert.InDelta(t, 303*1.001, w.YMax, 1e-9)
}

func TestCompute_SuffixAndLimits(t *testing.T) {
	s := mustParse(t, "10,12,1\n20,19,2\n30,31,3\n40,38,4\n50,55,5\n")
	total := s.Len()
	for k := 1; k <= total; k++ {
		w, err := Compute(s, k)
		require.NoError(t, err)
		assert.Equal(t, s.Real[total-k:], w.Real)
		assert.Equal(t, s.Generated[total-k:], w.Generated)
		assert.Equal(t, s.Timestamps[total-k], w.XMin)
		assert.Equal(t, s.Timestamps[total-1], w.XMax)

		lo, hi := s.Real[total-k], s.Real[total-k]
		for _, vals := range [][]float64{w.Real, w.Generated} {
			for _, v := range vals {
				lo = min(lo, v)
				hi = max(hi, v)
			}
		}
		assert.InDelta(t, 0.999*lo, w.YMin, 1e-9)
		assert.InDelta(t, 1.001*hi, w.YMax, 1e-9)
	}
}

func TestCompute_OutOfOrderKeepsFileOrderLimits(t *testing.T) {
	s := mustParse(t, "1,1,3000\n2,2,1000\n")
	w, err := Compute(s, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3000), w.XMin.Unix())
	assert.Equal(t, int64(1000), w.XMax.Unix())
}

func TestCompute_InvalidLengths(t *testing.T) {
	s := mustParse(t, "1,1,1\n")
	_, err := Compute(s, 0)
	assert.True(t, errors.Is(err, ErrEmptyWindow))
	_, err = Compute(s, 2)
	assert.True(t, errors.Is(err, ErrWindowRange))
}

func TestResetReproducesInitialWindow(t *testing.T) {
	s := mustParse(t, "100,101,1000\n200,202,2000\n300,303,3000\n")
	st := New(s.Len())
	initial, err := st.For(s)
	require.NoError(t, err)

	st, _ = Dispatch(st, SliderChanged{Value: 1})
	zoomed, err := st.For(s)
	require.NoError(t, err)
	assert.Equal(t, 1, zoomed.Len())

	st, _ = Dispatch(st, ResetClicked{})
	again, err := st.For(s)
	require.NoError(t, err)
	assert.Equal(t, initial, again)
}
