//go:build js && wasm

package wasm

import (
	"syscall/js"

	"github.com/Its-donkey/Sharpen-portfolio/internal/ui/app"
	"github.com/Its-donkey/Sharpen-portfolio/internal/ui/config"
	"github.com/Its-donkey/Sharpen-portfolio/internal/ui/dom/jsdom"
	"github.com/Its-donkey/Sharpen-portfolio/logging"
)

// RunApp boots the page layer once the document is ready and blocks forever.
func RunApp() {
	done := make(chan struct{})
	document := js.Global().Get("document")

	if document.Get("readyState").String() == "loading" {
		var onReady js.Func
		onReady = js.FuncOf(func(js.Value, []js.Value) any {
			onReady.Release()
			boot()
			return nil
		})
		document.Call("addEventListener", "DOMContentLoaded", onReady)
	} else {
		boot()
	}
	<-done
}

func boot() {
	doc := jsdom.New()
	app.Boot(app.Deps{
		Surface:   doc,
		Scheduler: jsdom.Timers{},
		Observers: jsdom.Observers{Doc: doc},
		Config:    config.Default(),
		Logger:    logging.New("page", logging.INFO, jsdom.Console{}),
	})
}
