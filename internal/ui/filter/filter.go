// Package filter shows and hides project cards by category with timed CSS
// transitions.
package filter

import (
	"github.com/Its-donkey/Sharpen-portfolio/internal/ui/config"
	"github.com/Its-donkey/Sharpen-portfolio/internal/ui/dom"
	"github.com/Its-donkey/Sharpen-portfolio/internal/ui/timing"
)

// Phase is where a card is in its show/hide transition.
type Phase int

const (
	// Hidden cards are display:none.
	Hidden Phase = iota
	// Entering cards are displayed but still transparent.
	Entering
	// Visible cards rest at full opacity.
	Visible
	// Leaving cards are fading out and still take up layout.
	Leaving
)

func (p Phase) String() string {
	switch p {
	case Hidden:
		return "hidden"
	case Entering:
		return "entering"
	case Visible:
		return "visible"
	case Leaving:
		return "leaving"
	default:
		return "unknown"
	}
}

// Resting and hidden inline styles.
const (
	restingOpacity   = "1"
	restingTransform = "translateY(0)"
	hiddenOpacity    = "0"
	hiddenTransform  = "translateY(20px)"
)

type card struct {
	el    dom.Element
	phase Phase
}

// Controller filters the project grid.
type Controller struct {
	surface dom.Surface
	sched   timing.Scheduler
	timings config.Timings

	buttons  []dom.Element
	cards    []*card
	grid     dom.Element
	selected string
}

// New returns a controller for surface.
func New(surface dom.Surface, sched timing.Scheduler, timings config.Timings) *Controller {
	return &Controller{surface: surface, sched: sched, timings: timings}
}

// Init binds the filter buttons and runs one pass with "all" selected. It
// reports false when there are no buttons or no cards.
func (c *Controller) Init() bool {
	c.buttons = c.surface.QueryAll(dom.SelectorFilterButton)
	items := c.surface.QueryAll(dom.SelectorProjectItem)
	if len(c.buttons) == 0 || len(items) == 0 {
		return false
	}
	c.cards = make([]*card, 0, len(items))
	for _, item := range items {
		c.cards = append(c.cards, &card{el: item, phase: Visible})
	}
	c.grid = c.surface.Query(dom.SelectorProjectGrid)

	for _, btn := range c.buttons {
		btn.On(dom.EventClick, func(dom.Event) {
			dom.ActivateOnly(c.buttons, btn, dom.ClassFilterButtonActive)
			c.Apply(btn.ID())
		})
	}

	c.Apply(dom.FilterAll)
	return true
}

// Matches reports whether a card belongs to category.
func Matches(el dom.Element, category string) bool {
	if category == dom.FilterAll {
		return true
	}
	return category != "" && el.HasClass(category)
}

// Apply runs one filter pass. Unknown categories hide every card. Callbacks
// from earlier passes still run when they fall due.
func (c *Controller) Apply(category string) {
	c.selected = category
	for _, cd := range c.cards {
		if Matches(cd.el, category) {
			c.show(cd)
		} else {
			c.hide(cd)
		}
	}

	if c.grid != nil {
		c.grid.SetStyle("display", "none")
		_ = c.grid.OffsetHeight()
		c.grid.SetStyle("display", "grid")
	}
}

func (c *Controller) show(cd *card) {
	cd.el.SetStyle("display", "block")
	cd.phase = Entering
	c.sched.After(c.timings.ShowDelay, func() {
		cd.el.SetStyle("opacity", restingOpacity)
		cd.el.SetStyle("transform", restingTransform)
		cd.phase = Visible
	})
}

func (c *Controller) hide(cd *card) {
	cd.el.SetStyle("opacity", hiddenOpacity)
	cd.el.SetStyle("transform", hiddenTransform)
	cd.phase = Leaving
	c.sched.After(c.timings.Transition, func() {
		cd.el.SetStyle("display", "none")
		cd.phase = Hidden
	})
}

// Selected returns the category of the latest pass.
func (c *Controller) Selected() string {
	return c.selected
}

// Phase reports the transition phase of a card element. Elements that are
// not cards report Hidden.
func (c *Controller) Phase(el dom.Element) Phase {
	for _, cd := range c.cards {
		if cd.el.Same(el) {
			return cd.phase
		}
	}
	return Hidden
}
