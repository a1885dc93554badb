// Package viewport reports when observed elements enter or leave the visible
// part of the page.
package viewport

import (
	"github.com/Its-donkey/Sharpen-portfolio/internal/ui/dom"
	"github.com/Its-donkey/Sharpen-portfolio/internal/ui/timing"
)

// Options shape the observed root. The margins shrink the viewport from the
// top and bottom edges.
type Options struct {
	Threshold    float64
	MarginTop    float64
	MarginBottom float64
}

// Entry is one visibility report for a target.
type Entry struct {
	Target       dom.Element
	Intersecting bool
	Ratio        float64
}

// Callback receives a batch of entries.
type Callback func(entries []Entry)

// Observer watches targets.
type Observer interface {
	Observe(target dom.Element)
}

// Factory creates observers. The browser backend wraps IntersectionObserver;
// Tracker serves surfaces that know their own layout.
type Factory interface {
	NewObserver(opts Options, cb Callback) Observer
}

// Ratio is the fraction of an element of the given top and height that lies
// inside the viewport [scrollY, scrollY+viewportHeight] once shrunk by the
// margins. A zero-height element counts as fully visible when it sits inside
// the shrunk viewport.
func Ratio(top, height, scrollY, viewportHeight float64, opts Options) float64 {
	rootTop := scrollY + opts.MarginTop
	rootBottom := scrollY + viewportHeight - opts.MarginBottom
	if rootBottom < rootTop {
		return 0
	}
	bottom := top + height
	if height <= 0 {
		if top >= rootTop && top <= rootBottom {
			return 1
		}
		return 0
	}
	visible := min(bottom, rootBottom) - max(top, rootTop)
	if visible <= 0 {
		return 0
	}
	return visible / height
}

// Intersecting applies the threshold the way IntersectionObserver does: a
// target crossing into the root at threshold zero still counts.
func Intersecting(ratio float64, opts Options) bool {
	if opts.Threshold <= 0 {
		return ratio > 0
	}
	return ratio >= opts.Threshold
}

// Layout exposes the scroll state Tracker measures against.
type Layout interface {
	ScrollY() float64
	ViewportHeight() float64
}

// Events is where Tracker listens for scroll notifications.
type Events interface {
	On(event string, h dom.Handler)
}

// TrackerFactory builds Trackers bound to one page.
type TrackerFactory struct {
	Layout    Layout
	Events    Events
	Scheduler timing.Scheduler
}

// NewObserver returns a Tracker wired to the factory's page.
func (f TrackerFactory) NewObserver(opts Options, cb Callback) Observer {
	t := &Tracker{layout: f.Layout, sched: f.Scheduler, opts: opts, cb: cb}
	if f.Events != nil {
		check := func(dom.Event) { t.Check() }
		f.Events.On(dom.EventScroll, check)
		f.Events.On(dom.EventResize, check)
	}
	return t
}

type tracked struct {
	target   dom.Element
	reported bool
	last     bool
}

// Tracker is a geometric observer. It reports every newly observed target
// once, batched on the next scheduler tick, and afterwards only targets whose
// intersecting state changed.
type Tracker struct {
	layout  Layout
	sched   timing.Scheduler
	opts    Options
	cb      Callback
	targets []*tracked
	queued  bool
}

// Observe starts watching target.
func (t *Tracker) Observe(target dom.Element) {
	if target == nil {
		return
	}
	for _, existing := range t.targets {
		if existing.target.Same(target) {
			return
		}
	}
	t.targets = append(t.targets, &tracked{target: target})
	if t.queued {
		return
	}
	if t.sched == nil {
		t.Check()
		return
	}
	t.queued = true
	t.sched.After(0, func() {
		t.queued = false
		t.Check()
	})
}

// Check measures every target and delivers the entries that changed, in
// observation order.
func (t *Tracker) Check() {
	if t.layout == nil || t.cb == nil {
		return
	}
	var batch []Entry
	scrollY := t.layout.ScrollY()
	height := t.layout.ViewportHeight()
	for _, tr := range t.targets {
		ratio := Ratio(tr.target.OffsetTop(), tr.target.OffsetHeight(), scrollY, height, t.opts)
		in := Intersecting(ratio, t.opts)
		if tr.reported && tr.last == in {
			continue
		}
		tr.reported = true
		tr.last = in
		batch = append(batch, Entry{Target: tr.target, Intersecting: in, Ratio: ratio})
	}
	if len(batch) > 0 {
		t.cb(batch)
	}
}
