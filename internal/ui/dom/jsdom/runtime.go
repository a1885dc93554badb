//go:build js && wasm

package jsdom

import (
	"bytes"
	"fmt"
	"syscall/js"
	"time"

	"github.com/Its-donkey/Sharpen-portfolio/internal/ui/dom"
	"github.com/Its-donkey/Sharpen-portfolio/internal/ui/viewport"
)

// Timers schedules callbacks with window.setTimeout.
type Timers struct{}

// After runs fn on the browser event loop once d has elapsed.
func (Timers) After(d time.Duration, fn func()) {
	if fn == nil {
		return
	}
	var cb js.Func
	cb = js.FuncOf(func(js.Value, []js.Value) any {
		cb.Release()
		fn()
		return nil
	})
	js.Global().Call("setTimeout", cb, d.Milliseconds())
}

// Observers builds IntersectionObserver-backed observers for a Document.
type Observers struct {
	Doc *Document
}

type intersectionObserver struct {
	v js.Value
}

func (o *intersectionObserver) Observe(target dom.Element) {
	if !o.v.Truthy() {
		return
	}
	if el, ok := target.(*element); ok && el != nil {
		o.v.Call("observe", el.v)
	}
}

// NewObserver wraps window.IntersectionObserver. Without browser support it
// returns an observer that never reports.
func (f Observers) NewObserver(opts viewport.Options, cb viewport.Callback) viewport.Observer {
	ctor := js.Global().Get("IntersectionObserver")
	if ctor.Type() != js.TypeFunction {
		return &intersectionObserver{}
	}
	fn := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) == 0 || cb == nil {
			return nil
		}
		list := args[0]
		entries := make([]viewport.Entry, 0, list.Length())
		for i := 0; i < list.Length(); i++ {
			raw := list.Index(i)
			entries = append(entries, viewport.Entry{
				Target:       f.Doc.wrap(raw.Get("target")),
				Intersecting: raw.Get("isIntersecting").Bool(),
				Ratio:        raw.Get("intersectionRatio").Float(),
			})
		}
		cb(entries)
		return nil
	})
	f.Doc.handlers = append(f.Doc.handlers, fn)
	options := map[string]any{
		"threshold":  opts.Threshold,
		"rootMargin": fmt.Sprintf("-%gpx 0px -%gpx 0px", opts.MarginTop, opts.MarginBottom),
	}
	return &intersectionObserver{v: ctor.New(fn, options)}
}

// Console forwards log lines to the browser console, errors to
// console.error.
type Console struct{}

func (Console) Write(p []byte) (int, error) {
	console := js.Global().Get("console")
	if !console.Truthy() {
		return len(p), nil
	}
	method := "log"
	switch {
	case bytes.Contains(p, []byte(`"level":"ERROR"`)):
		method = "error"
	case bytes.Contains(p, []byte(`"level":"WARN"`)):
		method = "warn"
	}
	console.Call(method, string(bytes.TrimSpace(p)))
	return len(p), nil
}
