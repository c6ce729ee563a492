package appgrid

import (
	"time"

	"fyne.io/fyne/v2"

	"github.com/alexballas/xappgrid/pagergrid"
)

// fyneScheduler delivers timers on the fyne event goroutine.
type fyneScheduler struct{}

func (fyneScheduler) AfterFunc(d time.Duration, f func()) pagergrid.Timer {
	return time.AfterFunc(d, func() {
		fyne.Do(f)
	})
}

// fyneAnimator runs offset animations through the fyne animation ticker,
// which already calls back on the event goroutine.
type fyneAnimator struct {
	duration func() time.Duration
}

func (a fyneAnimator) Animate(from, to float32, step func(float32), done func()) pagergrid.Animation {
	d := a.duration()
	if d <= 0 {
		return pagergrid.InstantAnimator{}.Animate(from, to, step, done)
	}

	anim := fyne.NewAnimation(d, func(p float32) {
		step(from + (to-from)*p)
		if p >= 1 {
			done()
		}
	})
	anim.Curve = fyne.AnimationEaseOut
	anim.Start()
	return anim
}
