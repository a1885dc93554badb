// Package site embeds the static page the layer is built for.
package site

import "embed"

// Assets holds index.html and styles.css.
//
//go:embed index.html styles.css
var Assets embed.FS

// Index returns the embedded page markup.
func Index() ([]byte, error) {
	return Assets.ReadFile("index.html")
}
