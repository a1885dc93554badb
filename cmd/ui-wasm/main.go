//go:build js && wasm

package main

import "github.com/Its-donkey/Sharpen-portfolio/internal/ui/wasm"

func main() {
	wasm.RunApp()
}
