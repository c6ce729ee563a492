package pagergrid

import (
	"fmt"
	"log/slog"
	"math"
)

// ScrollState is the horizontal paging position.
type ScrollState struct {
	Offset      float32
	CurrentPage int
	IsAnimating bool
}

// ScrollController owns the scroll offset along the paging axis.
type ScrollController struct {
	state     ScrollState
	pageCount int
	stride    float32

	animator Animator
	anim     Animation
	animSeq  int
	target   int

	onChange []func(ScrollState)
	log      *slog.Logger
}

func NewScrollController(animator Animator, log *slog.Logger) *ScrollController {
	if animator == nil {
		animator = InstantAnimator{}
	}
	return &ScrollController{
		animator: animator,
		log:      componentLogger(log, "scroll"),
	}
}

func (s *ScrollController) State() ScrollState {
	return s.state
}

func (s *ScrollController) PageCount() int {
	return s.pageCount
}

// OnChange registers fn for every state change.
func (s *ScrollController) OnChange(fn func(ScrollState)) {
	s.onChange = append(s.onChange, fn)
}

// SetPaging updates page count and page stride after a layout pass. The
// current page is clamped and the offset realigned to it. A running
// animation whose target still exists is retargeted when the stride changed.
func (s *ScrollController) SetPaging(pageCount int, stride float32) {
	prev := s.stride
	s.pageCount = max(pageCount, 0)
	s.stride = max(stride, 0)

	if s.state.IsAnimating && s.target >= s.pageCount {
		s.stopAnimation()
	}
	s.state.CurrentPage = s.clampPage(s.state.CurrentPage)
	if s.state.IsAnimating {
		if s.stride != prev {
			s.animateTo(s.target)
			return
		}
	} else {
		s.state.Offset = s.offsetOf(s.state.CurrentPage)
	}
	s.notify()
}

// DragBy applies a user pan. No snapping happens mid-drag, but the current
// page follows the page closest to the offset.
func (s *ScrollController) DragBy(delta float32) {
	s.stopAnimation()
	s.state.Offset = clamp32(s.state.Offset+delta, 0, s.maxOffset())
	s.state.CurrentPage = s.nearestPage()
	s.notify()
}

// Release resolves a fling. The velocity is read but the policy always
// settles on the boundary of the current page.
func (s *ScrollController) Release(velocity float32) {
	s.log.Debug("fling released", slog.Float64("velocity", float64(velocity)), slog.Int("page", s.state.CurrentPage))
	if s.pageCount == 0 {
		return
	}
	s.animateTo(s.state.CurrentPage)
}

// ScrollToPage animates to page n. A request made during an animation
// retargets it.
func (s *ScrollController) ScrollToPage(n int) error {
	if n < 0 || n >= s.pageCount {
		return fmt.Errorf("page %d of %d: %w", n, s.pageCount, ErrOutOfRange)
	}
	s.animateTo(n)
	return nil
}

// Stop cancels any running animation and leaves the offset where it is.
func (s *ScrollController) Stop() {
	if s.stopAnimation() {
		s.notify()
	}
}

func (s *ScrollController) animateTo(page int) {
	s.stopAnimation()

	target := s.offsetOf(page)
	s.animSeq++
	seq := s.animSeq
	s.target = page
	s.state.IsAnimating = true
	s.notify()

	step := func(offset float32) {
		if seq != s.animSeq {
			return
		}
		s.state.Offset = offset
		s.notify()
	}
	done := func() {
		if seq != s.animSeq {
			return
		}
		s.anim = nil
		s.state.Offset = s.offsetOf(page)
		s.state.CurrentPage = page
		s.state.IsAnimating = false
		s.notify()
	}

	anim := s.animator.Animate(s.state.Offset, target, step, done)
	if seq == s.animSeq && s.state.IsAnimating {
		s.anim = anim
	}
}

func (s *ScrollController) stopAnimation() bool {
	if !s.state.IsAnimating {
		return false
	}
	s.animSeq++
	if s.anim != nil {
		s.anim.Stop()
		s.anim = nil
	}
	s.state.IsAnimating = false
	return true
}

func (s *ScrollController) offsetOf(page int) float32 {
	return float32(page) * s.stride
}

func (s *ScrollController) maxOffset() float32 {
	if s.pageCount == 0 {
		return 0
	}
	return s.offsetOf(s.pageCount - 1)
}

func (s *ScrollController) nearestPage() int {
	if s.stride <= 0 {
		return s.clampPage(s.state.CurrentPage)
	}
	return s.clampPage(int(math.Round(float64(s.state.Offset / s.stride))))
}

func (s *ScrollController) clampPage(p int) int {
	if s.pageCount == 0 {
		return 0
	}
	return min(max(p, 0), s.pageCount-1)
}

func (s *ScrollController) notify() {
	for _, fn := range s.onChange {
		fn(s.state)
	}
}

func clamp32(v, lo, hi float32) float32 {
	return min(max(v, lo), hi)
}
