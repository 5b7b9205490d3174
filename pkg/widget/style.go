package widget

import (
	"github.com/vango-dev/widgets/pkg/dom"
	"github.com/vango-dev/widgets/pkg/util"
)

// Class names with a fixed meaning for widgets.
const (
	HiddenClass = "__CSS-hidden"
	GridClass   = "__CSS-grid"
)

// GridSpec describes a CSS grid layout. Empty fields are left untouched.
type GridSpec struct {
	Cols    string // grid-template-columns
	Rows    string // grid-template-rows
	ColAuto string // grid-auto-columns
	RowAuto string // grid-auto-rows
	Gap     string
	Align   string // justify-items
	AlignV  string // align-items
}

// Style returns the inline style property name (camelCase or CSS form).
func (w *Widget) Style(name string) string {
	if !w.IsValid() {
		return ""
	}
	return dom.StyleGet(w.node, name)
}

// SetStyle sets an inline style property; an empty value removes it.
func (w *Widget) SetStyle(name, value string) *Widget {
	if w.IsValid() {
		dom.StyleSet(w.node, name, value)
	}
	return w
}

// SetStyles applies SetStyle for every entry of styles.
func (w *Widget) SetStyles(styles map[string]string) *Widget {
	for name, v := range styles {
		w.SetStyle(name, v)
	}
	return w
}

// Grid marks the element as a grid container and applies spec.
func (w *Widget) Grid(spec GridSpec) *Widget {
	if !w.IsValid() {
		return w
	}
	dom.Classes(w.node).Add(GridClass)
	set := func(prop, v string) {
		if v != "" {
			dom.StyleSet(w.node, prop, v)
		}
	}
	set("grid-template-columns", spec.Cols)
	set("grid-template-rows", spec.Rows)
	set("grid-auto-columns", spec.ColAuto)
	set("grid-auto-rows", spec.RowAuto)
	set("gap", spec.Gap)
	set("justify-items", spec.Align)
	set("align-items", spec.AlignV)
	return w
}

// Class returns the class attribute.
func (w *Widget) Class() string {
	if !w.IsValid() {
		return ""
	}
	return dom.Classes(w.node).String()
}

// SetClass replaces the class attribute.
func (w *Widget) SetClass(v string) *Widget {
	if w.IsValid() {
		dom.Classes(w.node).Set(v)
	}
	return w
}

// MClass adds the tokens of add and then removes the tokens of remove.
// Both are whitespace, comma or semicolon separated lists.
func (w *Widget) MClass(add, remove string) *Widget {
	if !w.IsValid() {
		return w
	}
	cl := dom.Classes(w.node)
	if tokens := util.Split(add); len(tokens) > 0 {
		cl.Add(tokens...)
	}
	if tokens := util.Split(remove); len(tokens) > 0 {
		cl.Remove(tokens...)
	}
	return w
}

// HasClass reports whether the element carries class c.
func (w *Widget) HasClass(c string) bool {
	return w.IsValid() && dom.Classes(w.node).Contains(c)
}

// ToggleClass flips class c and reports whether it is present afterwards.
func (w *Widget) ToggleClass(c string) bool {
	if !w.IsValid() {
		return false
	}
	return dom.Classes(w.node).Toggle(c)
}

// ToggleClassForce adds c when force is true and removes it otherwise.
func (w *Widget) ToggleClassForce(c string, force bool) bool {
	if !w.IsValid() {
		return false
	}
	return dom.Classes(w.node).ToggleForce(c, force)
}

// Show removes the hidden class.
func (w *Widget) Show() *Widget {
	if w.IsValid() {
		dom.Classes(w.node).Remove(HiddenClass)
	}
	return w
}

// Hide adds the hidden class.
func (w *Widget) Hide() *Widget {
	if w.IsValid() {
		dom.Classes(w.node).Add(HiddenClass)
	}
	return w
}

// IsHidden reports whether the hidden class is set.
func (w *Widget) IsHidden() bool {
	return w.HasClass(HiddenClass)
}
