package pagergrid

import (
	"sync"
	"time"
)

// EventLoop serializes work onto a single goroutine. Hosts without their own
// UI thread drive a Grid through it so store, scroll and drag state are only
// ever touched by one writer.
type EventLoop struct {
	mu      sync.Mutex
	pending []func()
	closed  bool

	wake chan struct{}
	quit chan struct{}
	done chan struct{}
	once sync.Once
}

func NewEventLoop() *EventLoop {
	l := &EventLoop{
		wake: make(chan struct{}, 1),
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *EventLoop) run() {
	defer close(l.done)
	for {
		select {
		case <-l.wake:
		case <-l.quit:
			return
		}
		for {
			l.mu.Lock()
			if len(l.pending) == 0 || l.closed {
				l.mu.Unlock()
				break
			}
			f := l.pending[0]
			l.pending[0] = nil
			l.pending = l.pending[1:]
			l.mu.Unlock()
			f()
		}
	}
}

// Do queues f and returns at once, also when called from a task already
// running on the loop. Tasks run in the order they were queued. f is dropped
// silently once the loop is closed.
func (l *EventLoop) Do(f func()) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.pending = append(l.pending, f)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// DoAndWait queues f and blocks until it has run. It returns false if the
// loop closed first. Calling it from a task on the loop deadlocks.
func (l *EventLoop) DoAndWait(f func()) bool {
	ran := make(chan struct{})
	l.Do(func() {
		f()
		close(ran)
	})
	select {
	case <-ran:
		return true
	case <-l.done:
		return false
	}
}

// AfterFunc implements Scheduler by posting f back onto the loop.
func (l *EventLoop) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, func() { l.Do(f) })
}

// Close stops the loop. Pending tasks are discarded.
func (l *EventLoop) Close() {
	l.once.Do(func() {
		l.mu.Lock()
		l.closed = true
		l.pending = nil
		l.mu.Unlock()
		close(l.quit)
	})
	<-l.done
}
