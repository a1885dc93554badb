//go:build js && wasm

// Package jsdom implements the dom surface over the browser document through
// syscall/js.
package jsdom

import (
	"syscall/js"

	"github.com/Its-donkey/Sharpen-portfolio/internal/ui/dom"
)

// Document wraps window.document. Handlers bound through it live for the
// lifetime of the page and are never released.
type Document struct {
	window   js.Value
	document js.Value
	handlers []js.Func
}

// New wraps the global window and document.
func New() *Document {
	window := js.Global()
	return &Document{window: window, document: window.Get("document")}
}

func (d *Document) wrap(v js.Value) dom.Element {
	if !v.Truthy() {
		return nil
	}
	return &element{doc: d, v: v}
}

func (d *Document) wrapList(list js.Value) []dom.Element {
	if !list.Truthy() {
		return nil
	}
	length := list.Get("length").Int()
	out := make([]dom.Element, 0, length)
	for i := 0; i < length; i++ {
		if el := d.wrap(list.Index(i)); el != nil {
			out = append(out, el)
		}
	}
	return out
}

// Query returns the first element matching selector, or nil.
func (d *Document) Query(selector string) dom.Element {
	return d.wrap(d.document.Call("querySelector", selector))
}

// QueryAll returns every element matching selector.
func (d *Document) QueryAll(selector string) []dom.Element {
	return d.wrapList(d.document.Call("querySelectorAll", selector))
}

// ByID returns the element with the given id, or nil.
func (d *Document) ByID(id string) dom.Element {
	if id == "" {
		return nil
	}
	return d.wrap(d.document.Call("getElementById", id))
}

// Body returns document.body.
func (d *Document) Body() dom.Element {
	return d.wrap(d.document.Get("body"))
}

// CreateElement returns a detached element.
func (d *Document) CreateElement(tag string) dom.Element {
	return d.wrap(d.document.Call("createElement", tag))
}

// On registers a document-level listener. Scroll and resize events are
// delivered by the window.
func (d *Document) On(event string, h dom.Handler) {
	target := d.document
	if event == dom.EventScroll || event == dom.EventResize {
		target = d.window
	}
	d.listen(target, event, h)
}

// ViewportWidth returns window.innerWidth.
func (d *Document) ViewportWidth() float64 {
	return d.window.Get("innerWidth").Float()
}

// ScrollTo calls window.scrollTo with the requested behaviour.
func (d *Document) ScrollTo(top float64, smooth bool) {
	behavior := "auto"
	if smooth {
		behavior = "smooth"
	}
	d.window.Call("scrollTo", map[string]any{"top": top, "behavior": behavior})
}

func (d *Document) listen(target js.Value, event string, h dom.Handler) {
	if !target.Truthy() || h == nil {
		return
	}
	fn := js.FuncOf(func(this js.Value, args []js.Value) any {
		var ev js.Value
		if len(args) > 0 {
			ev = args[0]
		}
		h(&jsEvent{doc: d, v: ev})
		return nil
	})
	target.Call("addEventListener", event, fn)
	d.handlers = append(d.handlers, fn)
}

type jsEvent struct {
	doc *Document
	v   js.Value
}

func (e *jsEvent) Target() dom.Element {
	if !e.v.Truthy() {
		return nil
	}
	target := e.v.Get("target")
	// Text nodes and the document itself cannot answer closest().
	if !target.Truthy() || target.Get("closest").Type() != js.TypeFunction {
		return nil
	}
	return e.doc.wrap(target)
}

func (e *jsEvent) PreventDefault() {
	if e.v.Truthy() {
		e.v.Call("preventDefault")
	}
}

func (e *jsEvent) DefaultPrevented() bool {
	return e.v.Truthy() && e.v.Get("defaultPrevented").Bool()
}
