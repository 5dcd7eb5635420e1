// Package view holds the zoom state of the price chart and the math for its visible window.
// It has no GUI dependency: the viewer turns widget callbacks into Events, feeds them to
// Dispatch and renders the resulting State.
package view

// State is the zoom state. Slider mirrors the slider widget; NPoints is the visible suffix
// length currently rendered. They differ only after the slider was moved to 0.
type State struct {
	Total   int
	Slider  int
	NPoints int
}

// New returns the initial state showing the full history.
func New(total int) State {
	if total < 0 {
		total = 0
	}
	return State{Total: total, Slider: total, NPoints: total}
}

// Initial returns the state New would return for the same series.
func (s State) Initial() State { return New(s.Total) }

// Event is a user interaction with the zoom controls.
type Event interface{ isEvent() }

// SliderChanged reports a new slider value.
type SliderChanged struct{ Value int }

// ResetClicked reports the reset control being activated.
type ResetClicked struct{}

func (SliderChanged) isEvent() {}
func (ResetClicked) isEvent()  {}

// Dispatch applies ev and reports whether the chart must be redrawn.
// A slider value of 0 is recorded but leaves NPoints and the chart untouched.
func Dispatch(s State, ev Event) (State, bool) {
	switch e := ev.(type) {
	case SliderChanged:
		v := clamp(e.Value, 0, s.Total)
		s.Slider = v
		if v <= 0 {
			return s, false
		}
		s.NPoints = v
		return s, true
	case ResetClicked:
		s.Slider = s.Total
		return Dispatch(s, SliderChanged{Value: s.Total})
	default:
		return s, false
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
