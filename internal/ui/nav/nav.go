// Package nav wires the mobile navigation menu: the toggle button, item
// selection and dismissal on outside clicks.
package nav

import (
	"github.com/Its-donkey/Sharpen-portfolio/internal/ui/dom"
)

// Controller owns the menu open state, mirrored as classes on the toggler,
// the nav-links container and the body.
type Controller struct {
	surface    dom.Surface
	breakpoint float64

	toggler  dom.Element
	navLinks dom.Element
	body     dom.Element
	items    []dom.Element
}

// New returns a controller for surface. Item clicks close the menu when the
// viewport is no wider than breakpoint.
func New(surface dom.Surface, breakpoint float64) *Controller {
	return &Controller{surface: surface, breakpoint: breakpoint}
}

// Init binds the handlers. It reports false and binds nothing when the
// toggler or the nav-links container is missing.
func (c *Controller) Init() bool {
	c.toggler = c.surface.Query(dom.SelectorToggler)
	c.navLinks = c.surface.Query(dom.SelectorNavLinks)
	if c.toggler == nil || c.navLinks == nil {
		return false
	}
	c.body = c.surface.Body()
	c.items = c.surface.QueryAll(dom.SelectorNavItem)

	c.toggler.On(dom.EventClick, func(dom.Event) { c.Toggle() })

	for _, item := range c.items {
		item.On(dom.EventClick, func(dom.Event) { c.selectItem(item) })
	}

	c.surface.On(dom.EventClick, func(ev dom.Event) {
		target := ev.Target()
		if target == nil || target.Closest(dom.SelectorNav) != nil {
			return
		}
		if c.Open() {
			c.Toggle()
		}
	})
	return true
}

// Toggle flips the menu state on all three elements together.
func (c *Controller) Toggle() {
	if c.toggler == nil || c.navLinks == nil {
		return
	}
	c.toggler.ToggleClass(dom.ClassTogglerActive)
	c.navLinks.ToggleClass(dom.ClassNavOpen)
	if c.body != nil {
		c.body.ToggleClass(dom.ClassNoScroll)
	}
}

// Open reports whether the menu is open.
func (c *Controller) Open() bool {
	return c.navLinks != nil && c.navLinks.HasClass(dom.ClassNavOpen)
}

func (c *Controller) selectItem(item dom.Element) {
	dom.ActivateOnly(c.items, item, dom.ClassNavItemActive)
	if c.surface.ViewportWidth() <= c.breakpoint {
		c.Toggle()
	}
}
