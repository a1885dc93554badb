// Package sections mirrors the section currently in view onto the nav's
// active item.
package sections

import (
	"github.com/Its-donkey/Sharpen-portfolio/internal/ui/config"
	"github.com/Its-donkey/Sharpen-portfolio/internal/ui/dom"
	"github.com/Its-donkey/Sharpen-portfolio/internal/ui/viewport"
)

// Options derives the observer options from the layout configuration: the
// threshold, and the viewport shrunk by the section margin top and bottom.
func Options(layout config.Layout) viewport.Options {
	return viewport.Options{
		Threshold:    layout.SectionThreshold,
		MarginTop:    layout.SectionMargin,
		MarginBottom: layout.SectionMargin,
	}
}

// Controller observes every section.
type Controller struct {
	surface dom.Surface
	factory viewport.Factory
	opts    viewport.Options

	items   []dom.Element
	current string
}

// New returns a controller for surface.
func New(surface dom.Surface, factory viewport.Factory, opts viewport.Options) *Controller {
	return &Controller{surface: surface, factory: factory, opts: opts}
}

// Init starts observing. It reports false when the page has no sections, no
// nav items or no observer backend.
func (c *Controller) Init() bool {
	sections := c.surface.QueryAll(dom.SelectorSection)
	c.items = c.surface.QueryAll(dom.SelectorNavItem)
	if len(sections) == 0 || len(c.items) == 0 || c.factory == nil {
		return false
	}
	observer := c.factory.NewObserver(c.opts, c.handle)
	for _, section := range sections {
		observer.Observe(section)
	}
	return true
}

// handle applies entries in batch order, so the last intersecting entry of a
// batch decides the active item.
func (c *Controller) handle(entries []viewport.Entry) {
	for _, entry := range entries {
		if !entry.Intersecting || entry.Target == nil {
			continue
		}
		id := entry.Target.ID()
		c.current = id
		href := "#" + id
		for _, item := range c.items {
			item.SetClass(dom.ClassNavItemActive, item.Attr("href") == href)
		}
	}
}

// Current returns the id of the section applied last.
func (c *Controller) Current() string {
	return c.current
}
