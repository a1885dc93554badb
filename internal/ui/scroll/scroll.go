// Package scroll replaces the jump of same-page anchors with an animated
// scroll that leaves room for the fixed nav bar.
package scroll

import (
	"strings"

	"github.com/Its-donkey/Sharpen-portfolio/internal/ui/dom"
)

// Controller intercepts clicks on a[href^="#"].
type Controller struct {
	surface          dom.Surface
	defaultNavHeight float64
}

// New returns a controller for surface. defaultNavHeight is used when the
// nav bar is missing or reports no height.
func New(surface dom.Surface, defaultNavHeight float64) *Controller {
	return &Controller{surface: surface, defaultNavHeight: defaultNavHeight}
}

// Init binds every in-page anchor and reports how many were bound.
func (c *Controller) Init() int {
	anchors := c.surface.QueryAll(dom.SelectorHashAnchor)
	for _, anchor := range anchors {
		anchor.On(dom.EventClick, func(ev dom.Event) {
			ev.PreventDefault()
			c.ScrollToHash(anchor.Attr("href"))
		})
	}
	return len(anchors)
}

// ScrollToHash scrolls to the element named by a "#id" fragment. A bare "#"
// or a fragment with no matching element does nothing. It reports whether a
// scroll was started.
func (c *Controller) ScrollToHash(href string) bool {
	if href == "#" || !strings.HasPrefix(href, "#") {
		return false
	}
	target := c.surface.ByID(strings.TrimPrefix(href, "#"))
	if target == nil {
		return false
	}
	c.surface.ScrollTo(target.OffsetTop()-c.navHeight(), true)
	return true
}

func (c *Controller) navHeight() float64 {
	if nav := c.surface.Query(dom.SelectorNav); nav != nil {
		if h := nav.OffsetHeight(); h > 0 {
			return h
		}
	}
	return c.defaultNavHeight
}
