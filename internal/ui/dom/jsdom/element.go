//go:build js && wasm

package jsdom

import (
	"fmt"
	"syscall/js"

	"github.com/Its-donkey/Sharpen-portfolio/internal/ui/dom"
)

type element struct {
	doc *Document
	v   js.Value
}

func (e *element) ID() string {
	return e.v.Get("id").String()
}

func (e *element) Tag() string {
	return e.v.Get("tagName").Call("toLowerCase").String()
}

func (e *element) Attr(name string) string {
	value := e.v.Call("getAttribute", name)
	if value.Type() != js.TypeString {
		return ""
	}
	return value.String()
}

func (e *element) SetAttr(name, value string) {
	e.v.Call("setAttribute", name, value)
}

func (e *element) classList() js.Value {
	return e.v.Get("classList")
}

func (e *element) HasClass(name string) bool {
	return e.classList().Call("contains", name).Bool()
}

func (e *element) AddClass(name string) {
	e.classList().Call("add", name)
}

func (e *element) RemoveClass(name string) {
	e.classList().Call("remove", name)
}

func (e *element) ToggleClass(name string) bool {
	return e.classList().Call("toggle", name).Bool()
}

func (e *element) SetClass(name string, on bool) {
	e.classList().Call("toggle", name, on)
}

func (e *element) Style(prop string) string {
	return e.v.Get("style").Call("getPropertyValue", prop).String()
}

func (e *element) SetStyle(prop, value string) {
	e.v.Get("style").Call("setProperty", prop, value)
}

func (e *element) Text() string {
	text := e.v.Get("textContent")
	if text.Type() != js.TypeString {
		return ""
	}
	return text.String()
}

func (e *element) SetText(text string) {
	e.v.Set("textContent", text)
}

func (e *element) Disabled() bool {
	return e.v.Get("disabled").Truthy()
}

func (e *element) SetDisabled(disabled bool) {
	e.v.Set("disabled", disabled)
}

func (e *element) Closest(selector string) dom.Element {
	return e.doc.wrap(e.v.Call("closest", selector))
}

func (e *element) Query(selector string) dom.Element {
	return e.doc.wrap(e.v.Call("querySelector", selector))
}

func (e *element) QueryAll(selector string) []dom.Element {
	return e.doc.wrapList(e.v.Call("querySelectorAll", selector))
}

func (e *element) Prepend(child dom.Element) {
	if c, ok := child.(*element); ok && c != nil {
		e.v.Call("prepend", c.v)
	}
}

func (e *element) Remove() {
	e.v.Call("remove")
}

func (e *element) OffsetTop() float64 {
	return e.v.Get("offsetTop").Float()
}

func (e *element) OffsetHeight() float64 {
	return e.v.Get("offsetHeight").Float()
}

func (e *element) On(event string, h dom.Handler) {
	e.doc.listen(e.v, event, h)
}

// FormValues mirrors Object.fromEntries(new FormData(form)). A thrown
// exception, such as FormData rejecting a non-form element, is returned as
// an error.
func (e *element) FormValues() (values map[string]string, err error) {
	defer func() {
		if r := recover(); r != nil {
			values = nil
			err = fmt.Errorf("collect form values: %v", r)
		}
	}()
	global := js.Global()
	data := global.Get("FormData").New(e.v)
	record := global.Get("Object").Call("fromEntries", data)
	keys := global.Get("Object").Call("keys", record)
	values = make(map[string]string, keys.Length())
	for i := 0; i < keys.Length(); i++ {
		key := keys.Index(i).String()
		value := record.Get(key)
		if value.Type() == js.TypeString {
			values[key] = value.String()
		} else {
			// File inputs yield File objects; keep their name.
			values[key] = value.Get("name").String()
		}
	}
	return values, nil
}

func (e *element) Reset() {
	if e.v.Get("reset").Type() == js.TypeFunction {
		e.v.Call("reset")
	}
}

func (e *element) Same(other dom.Element) bool {
	o, ok := other.(*element)
	return ok && o != nil && o.v.Equal(e.v)
}
