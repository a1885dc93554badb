package simulate

import (
	"strings"
	"time"

	"github.com/Its-donkey/Sharpen-portfolio/internal/ui/app"
	"github.com/Its-donkey/Sharpen-portfolio/internal/ui/dom"
	"github.com/Its-donkey/Sharpen-portfolio/internal/ui/dom/htmldom"
	"github.com/Its-donkey/Sharpen-portfolio/logging"
)

// State is the page as the last step left it.
type State struct {
	ElapsedMS int64           `json:"elapsed_ms"`
	Pending   int             `json:"pending_callbacks,omitempty"`
	Bound     map[string]bool `json:"bound"`
	Nav       NavState        `json:"nav"`
	Filter    FilterState     `json:"filter"`
	Contact   ContactState    `json:"contact"`
	Scrolls   []ScrollCall    `json:"scrolls,omitempty"`
	Year      string          `json:"year,omitempty"`
	Logs      []logging.Entry `json:"logs,omitempty"`
}

// NavState describes the menu.
type NavState struct {
	Open    bool     `json:"open"`
	Active  []string `json:"active"`
	Section string   `json:"section,omitempty"`
}

// FilterState describes the project grid.
type FilterState struct {
	Selected string      `json:"selected"`
	Cards    []CardState `json:"cards"`
}

// CardState is one project card.
type CardState struct {
	ID      string `json:"id,omitempty"`
	Phase   string `json:"phase"`
	Display string `json:"display,omitempty"`
	Opacity string `json:"opacity,omitempty"`
}

// ContactState describes the contact form.
type ContactState struct {
	Phase          string            `json:"phase"`
	Sends          int               `json:"sends"`
	ButtonLabel    string            `json:"button_label,omitempty"`
	ButtonDisabled bool              `json:"button_disabled"`
	Banner         *BannerState      `json:"banner,omitempty"`
	LastValues     map[string]string `json:"last_values,omitempty"`
}

// BannerState is the banner currently in the form.
type BannerState struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Opacity string `json:"opacity,omitempty"`
}

// ScrollCall is one programmatic scroll.
type ScrollCall struct {
	Top    float64 `json:"top"`
	Smooth bool    `json:"smooth"`
}

func snapshot(doc *htmldom.Document, page *app.Page, elapsed time.Duration, pending int) *State {
	st := &State{
		ElapsedMS: elapsed.Milliseconds(),
		Pending:   pending,
		Bound:     page.Bound,
		Nav: NavState{
			Open:    page.Nav.Open(),
			Active:  []string{},
			Section: page.Sections.Current(),
		},
		Filter: FilterState{
			Selected: page.Filter.Selected(),
			Cards:    []CardState{},
		},
		Contact: ContactState{
			Phase:      page.Contact.Phase().String(),
			Sends:      page.Contact.Sends(),
			LastValues: page.Contact.LastValues(),
		},
	}
	if year := doc.ByID(dom.IDYear); year != nil {
		st.Year = year.Text()
	}

	for _, item := range doc.QueryAll(dom.SelectorNavItem) {
		if item.HasClass(dom.ClassNavItemActive) {
			st.Nav.Active = append(st.Nav.Active, item.Attr("href"))
		}
	}

	for _, card := range doc.QueryAll(dom.SelectorProjectItem) {
		st.Filter.Cards = append(st.Filter.Cards, CardState{
			ID:      card.ID(),
			Phase:   page.Filter.Phase(card).String(),
			Display: card.Style("display"),
			Opacity: card.Style("opacity"),
		})
	}

	if form := doc.ByID(dom.IDContactForm); form != nil {
		if btn := form.Query(dom.SelectorSubmitButton); btn != nil {
			st.Contact.ButtonLabel = btn.Text()
			st.Contact.ButtonDisabled = btn.Disabled()
		}
		if banner := form.Query(dom.SelectorBanner); banner != nil {
			st.Contact.Banner = &BannerState{
				Kind:    bannerKind(banner),
				Message: banner.Text(),
				Opacity: banner.Style("opacity"),
			}
		}
	}

	for _, s := range doc.Scrolls() {
		st.Scrolls = append(st.Scrolls, ScrollCall{Top: s.Top, Smooth: s.Smooth})
	}
	return st
}

func bannerKind(banner dom.Element) string {
	for _, class := range strings.Fields(banner.Attr("class")) {
		if kind, ok := strings.CutPrefix(class, dom.ClassBannerPrefix); ok {
			return kind
		}
	}
	return ""
}
