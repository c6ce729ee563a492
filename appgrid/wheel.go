package appgrid

import "math"

// Fyne scroll deltas are scaled; a typical mouse wheel notch is about 40.
const wheelNotch = float32(40)

// wheelStepper turns scroll deltas into whole page steps. Deltas accumulate
// so touchpads do not flip pages on every tiny movement.
type wheelStepper struct {
	acc float32
}

// add returns the number of pages to move: positive for forward.
func (w *wheelStepper) add(dx, dy float32) int {
	delta := dy
	if abs32(dx) > abs32(dy) {
		delta = dx
	}
	if math.IsNaN(float64(delta)) || math.IsInf(float64(delta), 0) {
		return 0
	}

	w.acc += delta

	var steps int
	for w.acc >= wheelNotch {
		steps--
		w.acc -= wheelNotch
	}
	for w.acc <= -wheelNotch {
		steps++
		w.acc += wheelNotch
	}
	return steps
}

func (w *wheelStepper) reset() {
	w.acc = 0
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
