// Package simulate replays scripted user sessions against a page without a
// browser. The page layer boots on an in-memory document and a virtual clock,
// each step drives it, and the final state is reported.
package simulate

import (
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Its-donkey/Sharpen-portfolio/internal/ui/app"
	"github.com/Its-donkey/Sharpen-portfolio/internal/ui/config"
	"github.com/Its-donkey/Sharpen-portfolio/internal/ui/dom"
	"github.com/Its-donkey/Sharpen-portfolio/internal/ui/dom/htmldom"
	"github.com/Its-donkey/Sharpen-portfolio/internal/ui/timing"
	"github.com/Its-donkey/Sharpen-portfolio/internal/ui/viewport"
	"github.com/Its-donkey/Sharpen-portfolio/logging"
)

// Step actions.
const (
	ActionClick  = "click"
	ActionFill   = "fill"
	ActionSubmit = "submit"
	ActionScroll = "scroll"
	ActionWait   = "wait"
	ActionResize = "resize"
)

// Script is a session to replay.
type Script struct {
	Viewport *Viewport  `yaml:"viewport"`
	Layout   []Box      `yaml:"layout"`
	Steps    []Step     `yaml:"steps"`
	Now      *time.Time `yaml:"now"`
}

// Viewport sets the initial window size.
type Viewport struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Box places the first element matching Selector.
type Box struct {
	Selector string  `yaml:"selector"`
	Top      float64 `yaml:"top"`
	Height   float64 `yaml:"height"`
}

// Step is one user action.
//
//	click   target
//	fill    target, value
//	submit  target (defaults to #contactForm)
//	scroll  top
//	wait    duration
//	resize  width, height (height keeps its value when zero)
type Step struct {
	Action   string        `yaml:"action"`
	Target   string        `yaml:"target,omitempty"`
	Value    string        `yaml:"value,omitempty"`
	Top      float64       `yaml:"top,omitempty"`
	Duration time.Duration `yaml:"duration,omitempty"`
	Width    float64       `yaml:"width,omitempty"`
	Height   float64       `yaml:"height,omitempty"`
}

// ErrEmptyScript is returned for a script without steps.
var ErrEmptyScript = errors.New("script has no steps")

// ParseScript decodes a YAML script. Unknown keys are rejected.
func ParseScript(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var script Script
	if err := dec.Decode(&script); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyScript
		}
		return nil, fmt.Errorf("decode script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, ErrEmptyScript
	}
	for i, step := range script.Steps {
		if err := step.validate(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return &script, nil
}

func (s Step) validate() error {
	switch s.Action {
	case ActionClick, ActionFill:
		if s.Target == "" {
			return fmt.Errorf("%s needs a target", s.Action)
		}
	case ActionSubmit, ActionScroll:
	case ActionWait:
		if s.Duration < 0 {
			return fmt.Errorf("wait duration must be non-negative")
		}
	case ActionResize:
		if s.Width <= 0 {
			return fmt.Errorf("resize needs a positive width")
		}
	default:
		return fmt.Errorf("unknown action %q", s.Action)
	}
	return nil
}

// Options configure a Runner.
type Options struct {
	Config *config.Config
	Logger *logging.Logger
	// Realtime replays on a timing.Loop: waits sleep and timers fire on the
	// wall clock instead of a virtual one.
	Realtime bool
}

// Runner replays scripts against one page.
type Runner struct {
	cfg      *config.Config
	logger   *logging.Logger
	realtime bool
}

// NewRunner creates a Runner. Missing options fall back to the defaults.
func NewRunner(opts Options) *Runner {
	r := &Runner{cfg: opts.Config, logger: opts.Logger, realtime: opts.Realtime}
	if r.cfg == nil {
		r.cfg = config.Default()
	}
	if r.logger == nil {
		r.logger = logging.Discard()
	}
	return r
}

// Run parses page, boots the page layer on it and replays script.
func (r *Runner) Run(page io.Reader, script *Script) (*State, error) {
	if script == nil || len(script.Steps) == 0 {
		return nil, ErrEmptyScript
	}
	doc, err := htmldom.Parse(page)
	if err != nil {
		return nil, err
	}
	if vp := script.Viewport; vp != nil {
		doc.SetViewport(vp.Width, vp.Height)
	}
	for _, box := range script.Layout {
		el := doc.Query(box.Selector)
		if el == nil {
			return nil, fmt.Errorf("layout: no element matches %q", box.Selector)
		}
		doc.SetBox(el, htmldom.Box{Top: box.Top, Height: box.Height})
	}

	logs := r.collectLogs()
	var st *State
	if r.realtime {
		st, err = r.runLoop(doc, script)
	} else {
		st, err = r.runManual(doc, script)
	}
	entries := logs()
	if err != nil {
		return nil, err
	}
	st.Logs = entries
	return st, nil
}

func (r *Runner) runManual(doc *htmldom.Document, script *Script) (*State, error) {
	clock := timing.NewManual()
	booted := r.boot(doc, clock, script)
	// Observers deliver their initial batch on the next turn.
	clock.Advance(0)

	err := r.replay(script, func(step Step) error {
		return apply(doc, step, clock.Advance)
	})
	if err != nil {
		return nil, err
	}
	return snapshot(doc, booted, clock.Now(), clock.Pending()), nil
}

// collectLogs subscribes to the runner's logger. The returned func stops the
// subscription and returns every entry seen so far. Entries below the
// logger's level are never delivered.
func (r *Runner) collectLogs() func() []logging.Entry {
	ch := make(chan logging.Entry, 256)
	unsubscribe := r.logger.Subscribe(ch)
	stop := make(chan struct{})
	done := make(chan []logging.Entry)
	go func() {
		var entries []logging.Entry
		for {
			select {
			case e := <-ch:
				entries = append(entries, e)
			case <-stop:
				for {
					select {
					case e := <-ch:
						entries = append(entries, e)
					default:
						done <- entries
						return
					}
				}
			}
		}
	}()
	return func() []logging.Entry {
		unsubscribe()
		close(stop)
		return <-done
	}
}

// runLoop keeps every touch of the document on the loop goroutine.
func (r *Runner) runLoop(doc *htmldom.Document, script *Script) (*State, error) {
	loop := timing.NewLoop(0)
	go loop.Run()
	defer loop.Stop()

	onLoop := func(fn func()) {
		done := make(chan struct{})
		loop.Post(func() {
			defer close(done)
			fn()
		})
		<-done
	}

	start := time.Now()
	var booted *app.Page
	onLoop(func() { booted = r.boot(doc, loop, script) })

	err := r.replay(script, func(step Step) error {
		if step.Action == ActionWait {
			time.Sleep(step.Duration)
			return nil
		}
		var err error
		onLoop(func() { err = apply(doc, step, nil) })
		return err
	})
	if err != nil {
		return nil, err
	}

	var st *State
	onLoop(func() { st = snapshot(doc, booted, time.Since(start), 0) })
	return st, nil
}

func (r *Runner) boot(doc *htmldom.Document, sched timing.Scheduler, script *Script) *app.Page {
	now := time.Now
	if script.Now != nil {
		fixed := *script.Now
		now = func() time.Time { return fixed }
	}
	return app.Boot(app.Deps{
		Surface:   doc,
		Scheduler: sched,
		Observers: viewport.TrackerFactory{Layout: doc, Events: doc, Scheduler: sched},
		Config:    r.cfg,
		Logger:    r.logger,
		Now:       now,
	})
}

func (r *Runner) replay(script *Script, step func(Step) error) error {
	stepLog := r.logger.WithCategory("simulate")
	for i, s := range script.Steps {
		if err := step(s); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, s.Action, err)
		}
		stepLog.WithField("step", i+1).WithField("action", s.Action).Info("applied")
	}
	return nil
}

func apply(doc *htmldom.Document, step Step, wait func(time.Duration)) error {
	switch step.Action {
	case ActionClick:
		el, err := find(doc, step.Target)
		if err != nil {
			return err
		}
		doc.Click(el)
	case ActionFill:
		el, err := find(doc, step.Target)
		if err != nil {
			return err
		}
		doc.Fill(el, step.Value)
	case ActionSubmit:
		target := step.Target
		if target == "" {
			target = "#" + dom.IDContactForm
		}
		el, err := find(doc, target)
		if err != nil {
			return err
		}
		doc.Submit(el)
	case ActionScroll:
		doc.ScrollTo(step.Top, false)
	case ActionWait:
		if wait != nil {
			wait(step.Duration)
		}
	case ActionResize:
		height := step.Height
		if height <= 0 {
			height = doc.ViewportHeight()
		}
		doc.SetViewport(step.Width, height)
	default:
		return fmt.Errorf("unknown action %q", step.Action)
	}
	return nil
}

func find(doc *htmldom.Document, selector string) (dom.Element, error) {
	el := doc.Query(selector)
	if el == nil {
		return nil, fmt.Errorf("no element matches %q", selector)
	}
	return el, nil
}
