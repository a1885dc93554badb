// Package contact runs the contact form's simulated submission: busy button,
// a delayed send, and a transient success or error banner.
package contact

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Its-donkey/Sharpen-portfolio/internal/ui/config"
	"github.com/Its-donkey/Sharpen-portfolio/internal/ui/dom"
	"github.com/Its-donkey/Sharpen-portfolio/internal/ui/timing"
	"github.com/Its-donkey/Sharpen-portfolio/logging"
)

// User-facing copy.
const (
	BusyLabel      = "Sending..."
	SuccessMessage = "Thank you for your message! I will get back to you soon."
	ErrorMessage   = "Something went wrong. Please try again later."
)

// Banner kinds, appended to the form-alert- class prefix.
const (
	KindSuccess = "success"
	KindError   = "error"
)

// Sender delivers collected form values and calls done exactly once.
type Sender interface {
	Send(values map[string]string, done func(error))
}

// SimulatedSender accepts every submission after Delay.
type SimulatedSender struct {
	Scheduler timing.Scheduler
	Delay     time.Duration
}

// Send reports success once the delay has elapsed.
func (s SimulatedSender) Send(_ map[string]string, done func(error)) {
	s.Scheduler.After(s.Delay, func() { done(nil) })
}

// Options configure a Controller. Zero values fall back to the simulated
// sender, a discarding logger and uuid banner ids.
type Options struct {
	Timings config.Timings
	Sender  Sender
	Logger  *logging.Logger
	NewID   func() string
}

// Controller owns #contactForm.
type Controller struct {
	surface dom.Surface
	sched   timing.Scheduler
	timings config.Timings
	sender  Sender
	logger  *logging.Logger
	newID   func() string

	form  dom.Element
	phase Phase
	last  map[string]string
	sends int
}

// New returns a controller for surface.
func New(surface dom.Surface, sched timing.Scheduler, opts Options) *Controller {
	c := &Controller{
		surface: surface,
		sched:   sched,
		timings: opts.Timings,
		sender:  opts.Sender,
		logger:  opts.Logger,
		newID:   opts.NewID,
	}
	if c.sender == nil {
		c.sender = SimulatedSender{Scheduler: sched, Delay: opts.Timings.SubmitDelay}
	}
	if c.logger == nil {
		c.logger = logging.Discard()
	}
	if c.newID == nil {
		c.newID = func() string { return uuid.New().String() }
	}
	return c
}

// Init binds the submit handler. It reports false when the form is missing.
func (c *Controller) Init() bool {
	c.form = c.surface.ByID(dom.IDContactForm)
	if c.form == nil {
		return false
	}
	c.form.On(dom.EventSubmit, c.submit)
	return true
}

func (c *Controller) submit(ev dom.Event) {
	ev.PreventDefault()

	btn := c.form.Query(dom.SelectorSubmitButton)
	original := ""
	if btn != nil {
		original = btn.Text()
		btn.SetDisabled(true)
		btn.SetText(BusyLabel)
	}
	c.phase = Submitting

	finish := func(err error) {
		if err != nil {
			c.logger.Error("contact", "form submission error", err, nil)
			c.showBanner(KindError, ErrorMessage)
			c.phase = Failed
		} else {
			c.showBanner(KindSuccess, SuccessMessage)
			c.form.Reset()
			c.phase = Succeeded
		}
		if btn != nil {
			btn.SetDisabled(false)
			btn.SetText(original)
		}
	}

	values, err := c.form.FormValues()
	if err != nil {
		finish(fmt.Errorf("collect form values: %w", err))
		return
	}
	c.last = values
	c.sends++
	c.sender.Send(values, finish)
}

// showBanner replaces any banner in the form with a new one that fades out
// after the banner lifetime and is removed one transition later.
func (c *Controller) showBanner(kind, message string) {
	banner := c.surface.CreateElement("div")
	banner.SetAttr("class", dom.ClassBanner+" "+dom.ClassBannerPrefix+kind)
	banner.SetAttr(dom.DataAttrBannerID, c.newID())
	banner.SetText(message)

	if existing := c.form.Query(dom.SelectorBanner); existing != nil {
		existing.Remove()
	}
	c.form.Prepend(banner)

	c.sched.After(c.timings.BannerLifetime, func() {
		banner.SetStyle("opacity", "0")
		c.sched.After(c.timings.Transition, banner.Remove)
	})
}

// Phase reports where the latest submission is.
func (c *Controller) Phase() Phase {
	return c.phase
}

// LastValues returns the values collected by the latest submission.
func (c *Controller) LastValues() map[string]string {
	out := make(map[string]string, len(c.last))
	for k, v := range c.last {
		out[k] = v
	}
	return out
}

// Sends counts submissions handed to the sender.
func (c *Controller) Sends() int {
	return c.sends
}
