package dom

// Navigation markup.
const (
	SelectorNav      = ".nav"
	SelectorToggler  = ".toggler"
	SelectorNavLinks = ".nav-links"
	SelectorNavItem  = ".nav-item"

	ClassTogglerActive = "active"
	ClassNavOpen       = "nav-active"
	ClassNoScroll      = "no-scroll"
	ClassNavItemActive = "nav-item-active"
)

// Project filter markup.
const (
	SelectorFilterButton = ".projects-tab-btn"
	SelectorProjectItem  = ".projects-item"
	SelectorProjectGrid  = ".projects-grid"

	ClassFilterButtonActive = "projects-tab-btn-active"

	// FilterAll is the category that matches every card.
	FilterAll = "all"
)

// In-page anchors and sections.
const (
	SelectorHashAnchor = `a[href^="#"]`
	SelectorSection    = "section"
)

// Contact form markup.
const (
	IDContactForm        = "contactForm"
	SelectorSubmitButton = `button[type="submit"]`
	SelectorBanner       = ".form-alert"

	ClassBanner       = "form-alert"
	ClassBannerPrefix = "form-alert-"
	DataAttrBannerID  = "data-banner-id"
)

// IDYear is the element that receives the copyright year.
const IDYear = "year"

// Events.
const (
	EventClick  = "click"
	EventSubmit = "submit"
	EventScroll = "scroll"
	EventResize = "resize"
)
