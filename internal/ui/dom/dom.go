// Package dom defines the element-tree surface the page controllers work
// against. The browser document (jsdom) and the in-memory goquery document
// (htmldom) both satisfy it.
package dom

// Handler receives a dispatched UI event.
type Handler func(ev Event)

// Event is a dispatched UI event.
type Event interface {
	// Target is the element the event was dispatched on.
	Target() Element
	PreventDefault()
	DefaultPrevented() bool
}

// Element is a single node in the page's element tree.
//
// Lookups that find nothing return a nil Element.
type Element interface {
	ID() string
	Tag() string
	Attr(name string) string
	SetAttr(name, value string)

	HasClass(name string) bool
	AddClass(name string)
	RemoveClass(name string)
	// ToggleClass flips the class and reports whether it is now present.
	ToggleClass(name string) bool
	// SetClass adds or removes the class depending on on.
	SetClass(name string, on bool)

	Style(prop string) string
	SetStyle(prop, value string)

	Text() string
	SetText(text string)

	Disabled() bool
	SetDisabled(disabled bool)

	// Closest returns the element itself or its nearest ancestor matching selector.
	Closest(selector string) Element
	Query(selector string) Element
	QueryAll(selector string) []Element
	Prepend(child Element)
	Remove()

	// OffsetTop is the element's vertical position within the document.
	OffsetTop() float64
	// OffsetHeight is the rendered height. Reading it forces layout.
	OffsetHeight() float64

	On(event string, h Handler)

	// FormValues collects the named fields of a form element.
	FormValues() (map[string]string, error)
	// Reset restores a form's fields to their defaults.
	Reset()

	// Same reports whether other refers to the same underlying node.
	Same(other Element) bool
}

// Surface is the queryable element tree plus viewport metrics of one page.
type Surface interface {
	Query(selector string) Element
	QueryAll(selector string) []Element
	ByID(id string) Element
	Body() Element
	CreateElement(tag string) Element

	// On registers a document-level handler; bubbling events reach it last.
	On(event string, h Handler)

	// ViewportWidth is the layout viewport width in logical pixels.
	ViewportWidth() float64
	// ScrollTo scrolls the window to top, animated when smooth is set.
	ScrollTo(top float64, smooth bool)
}

// ActivateOnly sets class on target and removes it from every other element
// in group.
func ActivateOnly(group []Element, target Element, class string) {
	for _, el := range group {
		el.RemoveClass(class)
	}
	if target != nil {
		target.AddClass(class)
	}
}
