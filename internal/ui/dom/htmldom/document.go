// Package htmldom implements the dom surface over an in-memory HTML document
// parsed with goquery. It dispatches events with bubbling, tracks form field
// values and carries layout metrics set by the caller, so the page
// controllers run without a browser.
package htmldom

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/Its-donkey/Sharpen-portfolio/internal/ui/dom"
)

// Default viewport metrics, matching a common laptop layout.
const (
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 800
)

// Box is the layout rectangle of an element along the vertical axis.
type Box struct {
	Top    float64
	Height float64
}

// Scroll records one ScrollTo call.
type Scroll struct {
	Top    float64
	Smooth bool
}

// Document is an in-memory page.
type Document struct {
	doc          *goquery.Document
	listeners    map[*html.Node]map[string][]dom.Handler
	docListeners map[string][]dom.Handler
	boxes        map[*html.Node]Box
	values       map[*html.Node]string
	width        float64
	height       float64
	scrollY      float64
	scrolls      []Scroll
	reflows      int
}

// Parse reads an HTML page.
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Document{
		doc:          doc,
		listeners:    make(map[*html.Node]map[string][]dom.Handler),
		docListeners: make(map[string][]dom.Handler),
		boxes:        make(map[*html.Node]Box),
		values:       make(map[*html.Node]string),
		width:        DefaultViewportWidth,
		height:       DefaultViewportHeight,
	}, nil
}

// ParseString is Parse over a string.
func ParseString(page string) (*Document, error) {
	return Parse(strings.NewReader(page))
}

func (d *Document) wrap(n *html.Node) dom.Element {
	if n == nil {
		return nil
	}
	return &element{doc: d, node: n}
}

func (d *Document) wrapAll(sel *goquery.Selection) []dom.Element {
	out := make([]dom.Element, 0, sel.Length())
	for _, n := range sel.Nodes {
		out = append(out, d.wrap(n))
	}
	return out
}

// Query returns the first element matching selector, or nil.
func (d *Document) Query(selector string) dom.Element {
	sel := d.doc.Find(selector)
	if sel.Length() == 0 {
		return nil
	}
	return d.wrap(sel.Nodes[0])
}

// QueryAll returns every element matching selector in document order.
func (d *Document) QueryAll(selector string) []dom.Element {
	return d.wrapAll(d.doc.Find(selector))
}

// ByID returns the element whose id attribute equals id, or nil.
func (d *Document) ByID(id string) dom.Element {
	if id == "" {
		return nil
	}
	return d.wrap(findNode(d.doc.Get(0), func(n *html.Node) bool {
		v, ok := attr(n, "id")
		return ok && v == id
	}))
}

// Body returns the body element.
func (d *Document) Body() dom.Element {
	return d.Query("body")
}

// CreateElement returns a detached element.
func (d *Document) CreateElement(tag string) dom.Element {
	tag = strings.ToLower(strings.TrimSpace(tag))
	return d.wrap(&html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	})
}

// On registers a document-level handler.
func (d *Document) On(event string, h dom.Handler) {
	if h == nil {
		return
	}
	d.docListeners[event] = append(d.docListeners[event], h)
}

// ViewportWidth reports the configured viewport width.
func (d *Document) ViewportWidth() float64 {
	return d.width
}

// ViewportHeight reports the configured viewport height.
func (d *Document) ViewportHeight() float64 {
	return d.height
}

// ScrollY reports the current vertical scroll position.
func (d *Document) ScrollY() float64 {
	return d.scrollY
}

// ScrollTo records the call, moves the scroll position and fires a scroll
// event on the document.
func (d *Document) ScrollTo(top float64, smooth bool) {
	d.scrolls = append(d.scrolls, Scroll{Top: top, Smooth: smooth})
	if top < 0 {
		top = 0
	}
	d.scrollY = top
	d.fire(dom.EventScroll)
}

// fire runs the document-level handlers for a window event.
func (d *Document) fire(name string) {
	ev := &event{target: d.Body()}
	for _, h := range append([]dom.Handler(nil), d.docListeners[name]...) {
		h(ev)
	}
}

// Scrolls returns every ScrollTo call in order.
func (d *Document) Scrolls() []Scroll {
	return append([]Scroll(nil), d.scrolls...)
}

// Reflows counts forced layouts, i.e. OffsetHeight reads.
func (d *Document) Reflows() int {
	return d.reflows
}

// SetViewport changes the viewport size and fires a resize event on the
// document.
func (d *Document) SetViewport(width, height float64) {
	d.width = width
	d.height = height
	d.fire(dom.EventResize)
}

// SetBox assigns layout metrics to el.
func (d *Document) SetBox(el dom.Element, box Box) {
	if n := nodeOf(el); n != nil {
		d.boxes[n] = box
	}
}

// Fill sets the current value of a form field.
func (d *Document) Fill(el dom.Element, value string) {
	if n := nodeOf(el); n != nil {
		d.values[n] = value
	}
}

// Value returns the current value of a form field.
func (d *Document) Value(el dom.Element) string {
	n := nodeOf(el)
	if n == nil {
		return ""
	}
	return d.fieldValue(n)
}

// Click dispatches a click on el. An unprevented click on a submit button
// inside a form then dispatches submit on that form. Disabled elements
// receive nothing.
func (d *Document) Click(el dom.Element) bool {
	if el != nil && el.Disabled() {
		return false
	}
	prevented := d.Dispatch(el, dom.EventClick)
	if prevented || el == nil {
		return prevented
	}
	if el.Tag() == "button" && strings.EqualFold(el.Attr("type"), "submit") {
		if form := el.Closest("form"); form != nil {
			d.Dispatch(form, dom.EventSubmit)
		}
	}
	return prevented
}

// Submit dispatches a submit event on form.
func (d *Document) Submit(form dom.Element) bool {
	return d.Dispatch(form, dom.EventSubmit)
}

// Dispatch fires event on el, bubbling through its ancestors and then the
// document. It reports whether a handler prevented the default action.
func (d *Document) Dispatch(el dom.Element, name string) bool {
	n := nodeOf(el)
	if n == nil {
		return false
	}
	ev := &event{target: el}
	var path []*html.Node
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Type == html.ElementNode {
			path = append(path, cur)
		}
	}
	for _, node := range path {
		for _, h := range append([]dom.Handler(nil), d.listeners[node][name]...) {
			h(ev)
		}
	}
	for _, h := range append([]dom.Handler(nil), d.docListeners[name]...) {
		h(ev)
	}
	return ev.prevented
}

// HTML renders the current document.
func (d *Document) HTML() (string, error) {
	return goquery.OuterHtml(d.doc.Selection)
}

func (d *Document) listen(n *html.Node, name string, h dom.Handler) {
	if h == nil {
		return
	}
	byEvent := d.listeners[n]
	if byEvent == nil {
		byEvent = make(map[string][]dom.Handler)
		d.listeners[n] = byEvent
	}
	byEvent[name] = append(byEvent[name], h)
}

type event struct {
	target    dom.Element
	prevented bool
}

func (e *event) Target() dom.Element    { return e.target }
func (e *event) PreventDefault()        { e.prevented = true }
func (e *event) DefaultPrevented() bool { return e.prevented }

func nodeOf(el dom.Element) *html.Node {
	if e, ok := el.(*element); ok && e != nil {
		return e.node
	}
	return nil
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func findNode(root *html.Node, match func(*html.Node) bool) *html.Node {
	if root == nil {
		return nil
	}
	if root.Type == html.ElementNode && match(root) {
		return root
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if found := findNode(c, match); found != nil {
			return found
		}
	}
	return nil
}
