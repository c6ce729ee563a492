package pagergrid

import "time"

// Timer is a scheduled task. Stop is idempotent; it reports whether the call
// stopped the task before it ran. *time.Timer satisfies it.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d. Implementations must invoke f on the same
// goroutine that drives the grid.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Animation is an in-flight offset animation. *fyne.Animation satisfies it.
type Animation interface {
	Stop()
}

// Animator drives an offset from one value to another. step is called with
// intermediate offsets and done once the target is reached. Both run on the
// goroutine that drives the grid.
type Animator interface {
	Animate(from, to float32, step func(offset float32), done func()) Animation
}

// InstantAnimator jumps straight to the target.
type InstantAnimator struct{}

func (InstantAnimator) Animate(_, to float32, step func(float32), done func()) Animation {
	step(to)
	done()
	return noopAnimation{}
}

type noopAnimation struct{}

func (noopAnimation) Stop() {}
