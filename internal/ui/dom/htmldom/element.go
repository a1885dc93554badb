package htmldom

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/Its-donkey/Sharpen-portfolio/internal/ui/dom"
)

type element struct {
	doc  *Document
	node *html.Node
}

func (e *element) sel() *goquery.Selection {
	return goquery.NewDocumentFromNode(e.node).Selection
}

func (e *element) ID() string {
	return e.Attr("id")
}

func (e *element) Tag() string {
	return e.node.Data
}

func (e *element) Attr(name string) string {
	v, _ := attr(e.node, name)
	return v
}

func (e *element) SetAttr(name, value string) {
	e.sel().SetAttr(name, value)
}

func (e *element) HasClass(name string) bool {
	return e.sel().HasClass(name)
}

func (e *element) AddClass(name string) {
	e.sel().AddClass(name)
}

func (e *element) RemoveClass(name string) {
	e.sel().RemoveClass(name)
}

func (e *element) ToggleClass(name string) bool {
	e.sel().ToggleClass(name)
	return e.HasClass(name)
}

func (e *element) SetClass(name string, on bool) {
	if on {
		e.AddClass(name)
		return
	}
	e.RemoveClass(name)
}

func (e *element) Style(prop string) string {
	for _, decl := range parseStyle(e.Attr("style")) {
		if decl.prop == prop {
			return decl.value
		}
	}
	return ""
}

func (e *element) SetStyle(prop, value string) {
	decls := parseStyle(e.Attr("style"))
	prop = strings.ToLower(strings.TrimSpace(prop))
	value = strings.TrimSpace(value)
	found := false
	out := decls[:0]
	for _, decl := range decls {
		if decl.prop == prop {
			found = true
			if value == "" {
				continue
			}
			decl.value = value
		}
		out = append(out, decl)
	}
	if !found && value != "" {
		out = append(out, styleDecl{prop: prop, value: value})
	}
	if len(out) == 0 {
		e.sel().RemoveAttr("style")
		return
	}
	e.SetAttr("style", formatStyle(out))
}

func (e *element) Text() string {
	return e.sel().Text()
}

func (e *element) SetText(text string) {
	e.sel().SetText(text)
}

func (e *element) Disabled() bool {
	_, ok := attr(e.node, "disabled")
	return ok
}

func (e *element) SetDisabled(disabled bool) {
	if disabled {
		e.SetAttr("disabled", "")
		return
	}
	e.sel().RemoveAttr("disabled")
}

func (e *element) Closest(selector string) dom.Element {
	found := e.sel().Closest(selector)
	if found.Length() == 0 {
		return nil
	}
	return e.doc.wrap(found.Nodes[0])
}

func (e *element) Query(selector string) dom.Element {
	found := e.sel().Find(selector)
	if found.Length() == 0 {
		return nil
	}
	return e.doc.wrap(found.Nodes[0])
}

func (e *element) QueryAll(selector string) []dom.Element {
	return e.doc.wrapAll(e.sel().Find(selector))
}

func (e *element) Prepend(child dom.Element) {
	n := nodeOf(child)
	if n == nil {
		return
	}
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
	e.node.InsertBefore(n, e.node.FirstChild)
}

func (e *element) Remove() {
	if e.node.Parent != nil {
		e.node.Parent.RemoveChild(e.node)
	}
}

func (e *element) OffsetTop() float64 {
	return e.doc.boxes[e.node].Top
}

func (e *element) OffsetHeight() float64 {
	e.doc.reflows++
	for cur := e.node; cur != nil; cur = cur.Parent {
		if cur.Type != html.ElementNode {
			continue
		}
		if (&element{doc: e.doc, node: cur}).Style("display") == "none" {
			return 0
		}
	}
	return e.doc.boxes[e.node].Height
}

func (e *element) On(event string, h dom.Handler) {
	e.doc.listen(e.node, event, h)
}

func (e *element) FormValues() (map[string]string, error) {
	if e.node.Data != "form" {
		return nil, fmt.Errorf("collect form values: <%s> is not a form", e.node.Data)
	}
	values := make(map[string]string)
	for _, field := range e.fields() {
		name, _ := attr(field, "name")
		if name == "" {
			continue
		}
		if _, disabled := attr(field, "disabled"); disabled {
			continue
		}
		if field.Data == "input" {
			kind, _ := attr(field, "type")
			switch strings.ToLower(kind) {
			case "submit", "button", "reset", "image", "file":
				continue
			case "checkbox", "radio":
				if _, checked := attr(field, "checked"); !checked {
					continue
				}
				if _, ok := attr(field, "value"); !ok {
					values[name] = "on"
					continue
				}
			}
		}
		values[name] = e.doc.fieldValue(field)
	}
	return values, nil
}

func (e *element) Reset() {
	for _, field := range e.fields() {
		delete(e.doc.values, field)
	}
}

func (e *element) Same(other dom.Element) bool {
	return nodeOf(other) == e.node
}

func (e *element) fields() []*html.Node {
	return e.sel().Find("input, textarea, select").Nodes
}

func (d *Document) fieldValue(n *html.Node) string {
	if v, ok := d.values[n]; ok {
		return v
	}
	switch n.Data {
	case "textarea":
		return goquery.NewDocumentFromNode(n).Text()
	case "select":
		options := goquery.NewDocumentFromNode(n).Find("option")
		if options.Length() == 0 {
			return ""
		}
		chosen := options.Filter("[selected]").First()
		if chosen.Length() == 0 {
			chosen = options.First()
		}
		if v, ok := chosen.Attr("value"); ok {
			return v
		}
		return strings.TrimSpace(chosen.Text())
	default:
		v, _ := attr(n, "value")
		return v
	}
}

type styleDecl struct {
	prop  string
	value string
}

func parseStyle(raw string) []styleDecl {
	var decls []styleDecl
	for _, part := range strings.Split(raw, ";") {
		prop, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		value = strings.TrimSpace(value)
		if prop == "" {
			continue
		}
		decls = append(decls, styleDecl{prop: prop, value: value})
	}
	return decls
}

func formatStyle(decls []styleDecl) string {
	parts := make([]string, 0, len(decls))
	for _, decl := range decls {
		parts = append(parts, decl.prop+": "+decl.value)
	}
	return strings.Join(parts, "; ")
}
