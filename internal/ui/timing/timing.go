// Package timing schedules the delayed continuations the page controllers
// chain their visual transitions on. Callbacks are fire-and-forget: nothing
// can cancel one once scheduled, and every implementation runs callbacks on a
// single thread.
package timing

import (
	"sort"
	"sync"
	"time"
)

// Scheduler runs fn once after d has elapsed.
type Scheduler interface {
	After(d time.Duration, fn func())
}

// Func adapts an ordinary function to Scheduler.
type Func func(d time.Duration, fn func())

// After calls f(d, fn).
func (f Func) After(d time.Duration, fn func()) {
	f(d, fn)
}

type pending struct {
	due time.Duration
	seq int
	fn  func()
}

// Manual is a virtual clock. Callbacks only run inside Advance, on the
// caller's goroutine.
type Manual struct {
	now   time.Duration
	seq   int
	queue []pending
}

// NewManual returns a clock at zero.
func NewManual() *Manual {
	return &Manual{}
}

// After schedules fn at the current virtual time plus d.
func (m *Manual) After(d time.Duration, fn func()) {
	if fn == nil {
		return
	}
	if d < 0 {
		d = 0
	}
	m.seq++
	m.queue = append(m.queue, pending{due: m.now + d, seq: m.seq, fn: fn})
}

// Now reports the virtual time elapsed since the clock was created.
func (m *Manual) Now() time.Duration {
	return m.now
}

// Pending reports how many callbacks have not run yet.
func (m *Manual) Pending() int {
	return len(m.queue)
}

// Advance moves the clock forward by d, running every callback that falls
// due in due-time order. Callbacks scheduled while advancing run too when
// they fall inside the window. Ties run in scheduling order.
func (m *Manual) Advance(d time.Duration) {
	until := m.now + d
	for {
		next, ok := m.pop(until)
		if !ok {
			break
		}
		m.now = next.due
		next.fn()
	}
	m.now = until
}

// Flush runs everything scheduled, however far in the future.
func (m *Manual) Flush() {
	for len(m.queue) > 0 {
		latest := m.queue[0].due
		for _, p := range m.queue {
			if p.due > latest {
				latest = p.due
			}
		}
		m.Advance(latest - m.now)
	}
}

func (m *Manual) pop(until time.Duration) (pending, bool) {
	if len(m.queue) == 0 {
		return pending{}, false
	}
	sort.SliceStable(m.queue, func(i, j int) bool {
		if m.queue[i].due != m.queue[j].due {
			return m.queue[i].due < m.queue[j].due
		}
		return m.queue[i].seq < m.queue[j].seq
	})
	head := m.queue[0]
	if head.due > until {
		return pending{}, false
	}
	m.queue = m.queue[1:]
	return head, true
}

// Loop is a real-time event loop. Timers fire on their own goroutines but
// their callbacks, and anything passed to Post, run one at a time on the
// goroutine executing Run.
type Loop struct {
	tasks chan func()
	once  sync.Once
	done  chan struct{}
}

// NewLoop returns a loop with room for buffer queued tasks.
func NewLoop(buffer int) *Loop {
	if buffer <= 0 {
		buffer = 64
	}
	return &Loop{tasks: make(chan func(), buffer), done: make(chan struct{})}
}

// After queues fn onto the loop once d has elapsed.
func (l *Loop) After(d time.Duration, fn func()) {
	if fn == nil {
		return
	}
	time.AfterFunc(d, func() { l.Post(fn) })
}

// Post queues fn to run on the loop goroutine. It drops fn once the loop
// has stopped.
func (l *Loop) Post(fn func()) {
	select {
	case <-l.done:
		return
	default:
	}
	select {
	case <-l.done:
	case l.tasks <- fn:
	}
}

// Run executes queued tasks until Stop is called.
func (l *Loop) Run() {
	for {
		select {
		case <-l.done:
			return
		case fn := <-l.tasks:
			fn()
		}
	}
}

// Stop ends Run. Safe to call more than once.
func (l *Loop) Stop() {
	l.once.Do(func() { close(l.done) })
}
