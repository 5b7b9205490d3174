package el

import (
	"fmt"

	"github.com/vango-dev/widgets/pkg/widget"
)

// Set sets an attribute. A nil value removes it.
func Set(name string, value any) Attr {
	return func(w *widget.Widget) { w.SetAttr(name, value) }
}

func ID(id string) Attr              { return func(w *widget.Widget) { w.SetID(id) } }
func Class(classes string) Attr      { return func(w *widget.Widget) { w.MClass(classes, "") } }
func Data(key string, v any) Attr    { return func(w *widget.Widget) { w.SetData(key, v) } }
func Style(name, value string) Attr  { return func(w *widget.Widget) { w.SetStyle(name, value) } }
func Href(url string) Attr           { return Set("href", url) }
func Src(url string) Attr            { return Set("src", url) }
func Type(t string) Attr             { return Set("type", t) }
func Name(n string) Attr             { return Set("name", n) }
func For(id string) Attr             { return Set("for", id) }
func Placeholder(text string) Attr   { return Set("placeholder", text) }
func Value(v any) Attr               { return func(w *widget.Widget) { w.SetVal(v) } }
func Hidden() Attr                   { return func(w *widget.Widget) { w.Hide() } }
func Grid(spec widget.GridSpec) Attr { return func(w *widget.Widget) { w.Grid(spec) } }

// Bool sets a boolean attribute when on is true.
func Bool(name string, on bool) Attr {
	if !on {
		return Set(name, nil)
	}
	return Set(name, "")
}

func Disabled(on bool) Attr { return Bool("disabled", on) }
func Checked(on bool) Attr  { return Bool("checked", on) }

// Textf appends formatted text.
func Textf(format string, args ...any) Attr {
	s := fmt.Sprintf(format, args...)
	return func(w *widget.Widget) { apply(w, []any{s}) }
}

// Raw appends sanitized HTML.
func Raw(html string) Attr {
	return func(w *widget.Widget) {
		holder := widget.New(w.Document(), "div", "")
		if err := holder.SafeHTML(html); err != nil {
			return
		}
		src := holder.Node()
		for c := src.FirstChild; c != nil; c = src.FirstChild {
			src.RemoveChild(c)
			w.Node().AppendChild(c)
		}
	}
}

// Edit runs fn on the element once the preceding arguments were applied.
func Edit(fn func(w *widget.Widget)) Attr { return fn }
