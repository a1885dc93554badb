// Package app wires the page controllers together at page-ready.
package app

import (
	"strconv"
	"time"

	"github.com/Its-donkey/Sharpen-portfolio/internal/ui/config"
	"github.com/Its-donkey/Sharpen-portfolio/internal/ui/contact"
	"github.com/Its-donkey/Sharpen-portfolio/internal/ui/dom"
	"github.com/Its-donkey/Sharpen-portfolio/internal/ui/filter"
	"github.com/Its-donkey/Sharpen-portfolio/internal/ui/nav"
	"github.com/Its-donkey/Sharpen-portfolio/internal/ui/scroll"
	"github.com/Its-donkey/Sharpen-portfolio/internal/ui/sections"
	"github.com/Its-donkey/Sharpen-portfolio/internal/ui/timing"
	"github.com/Its-donkey/Sharpen-portfolio/internal/ui/viewport"
	"github.com/Its-donkey/Sharpen-portfolio/logging"
)

// Deps are the capabilities the page layer runs on.
type Deps struct {
	Surface   dom.Surface
	Scheduler timing.Scheduler
	Observers viewport.Factory
	Config    *config.Config
	Logger    *logging.Logger
	// Sender overrides the simulated contact form backend.
	Sender contact.Sender
	// Now supplies the copyright year. Defaults to time.Now.
	Now func() time.Time
}

// Page holds the initialised controllers.
type Page struct {
	Nav      *nav.Controller
	Filter   *filter.Controller
	Scroll   *scroll.Controller
	Contact  *contact.Controller
	Sections *sections.Controller

	// Bound records which controllers found their markup.
	Bound map[string]bool
}

// Controller names used in Page.Bound and log fields.
const (
	NameNav      = "nav"
	NameFilter   = "filter"
	NameScroll   = "scroll"
	NameContact  = "contact"
	NameSections = "sections"
)

// Boot initialises the controllers in fixed order, then writes the current
// year into #year.
func Boot(deps Deps) *Page {
	cfg := deps.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := deps.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	s := deps.Surface

	page := &Page{
		Nav:    nav.New(s, cfg.Layout.MobileBreakpoint),
		Filter: filter.New(s, deps.Scheduler, cfg.Timings),
		Scroll: scroll.New(s, cfg.Layout.DefaultNavHeight),
		Contact: contact.New(s, deps.Scheduler, contact.Options{
			Timings: cfg.Timings,
			Sender:  deps.Sender,
			Logger:  logger,
		}),
		Sections: sections.New(s, deps.Observers, sections.Options(cfg.Layout)),
		Bound:    make(map[string]bool, 5),
	}

	page.Bound[NameNav] = page.Nav.Init()
	page.Bound[NameFilter] = page.Filter.Init()
	page.Bound[NameScroll] = page.Scroll.Init() > 0
	page.Bound[NameContact] = page.Contact.Init()
	page.Bound[NameSections] = page.Sections.Init()

	if year := s.ByID(dom.IDYear); year != nil {
		year.SetText(strconv.Itoa(now().Year()))
	}

	fields := make(map[string]any, len(page.Bound))
	for name, ok := range page.Bound {
		fields[name] = ok
	}
	logger.Debug("app", "page layer ready", fields)
	return page
}
