package pagergrid

import (
	"slices"
	"time"
)

type fakeTimer struct {
	at      time.Time
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// fakeClock is a Scheduler over virtual time.
type fakeClock struct {
	now    time.Time
	timers []*fakeTimer
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	t := &fakeTimer{at: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
	for _, t := range slices.Clone(c.timers) {
		if t.stopped || t.fired || t.at.After(c.now) {
			continue
		}
		t.fired = true
		t.f()
	}
}

func (c *fakeClock) armed() int {
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

type manualRun struct {
	from, to float32
	step     func(float32)
	done     func()
	stopped  bool
}

func (r *manualRun) Stop() { r.stopped = true }

func (r *manualRun) halfway() {
	r.step(r.from + (r.to-r.from)/2)
}

func (r *manualRun) finish() {
	r.step(r.to)
	r.done()
}

// manualAnimator records every animation and only completes them on demand.
type manualAnimator struct {
	runs []*manualRun
}

func (a *manualAnimator) Animate(from, to float32, step func(float32), done func()) Animation {
	r := &manualRun{from: from, to: to, step: step, done: done}
	a.runs = append(a.runs, r)
	return r
}

func (a *manualAnimator) last() *manualRun {
	return a.runs[len(a.runs)-1]
}

func ids(items []ShortcutItem) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func plainItems(n int) []ShortcutItem {
	return NewShortcuts(n, NewRandomColors(1))
}
