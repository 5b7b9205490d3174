package widget

import (
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vango-dev/widgets/pkg/dom"
)

// ugc is shared; bluemonday policies are safe for concurrent use once built.
var ugc = bluemonday.UGCPolicy()

// Tag returns the lower-case tag name of the element.
func (w *Widget) Tag() string {
	if !w.IsValid() {
		return ""
	}
	return w.node.Data
}

// ID returns the id attribute.
func (w *Widget) ID() string {
	v, _ := w.Attr("id")
	return v
}

// SetID sets the id attribute. An empty id is ignored.
func (w *Widget) SetID(id string) *Widget {
	if id != "" && w.IsValid() {
		dom.SetAttr(w.node, "id", id)
	}
	return w
}

// Attr returns the attribute name and whether it is present.
func (w *Widget) Attr(name string) (string, bool) {
	if !w.IsValid() {
		return "", false
	}
	return dom.GetAttr(w.node, name)
}

// SetAttr sets the attribute name to the string form of value. A nil value
// removes the attribute rather than setting it empty.
func (w *Widget) SetAttr(name string, value any) *Widget {
	if !w.IsValid() {
		return w
	}
	if s, ok := attrString(value); ok {
		dom.SetAttr(w.node, name, s)
	} else {
		dom.RemoveAttr(w.node, name)
	}
	return w
}

// SetAttrs applies SetAttr for every entry of attrs.
func (w *Widget) SetAttrs(attrs map[string]any) *Widget {
	for name, v := range attrs {
		w.SetAttr(name, v)
	}
	return w
}

// RemoveAttr removes the attribute name.
func (w *Widget) RemoveAttr(name string) *Widget {
	if w.IsValid() {
		dom.RemoveAttr(w.node, name)
	}
	return w
}

func attrString(v any) (string, bool) {
	switch s := v.(type) {
	case nil:
		return "", false
	case string:
		return s, true
	case *string:
		if s == nil {
			return "", false
		}
		return *s, true
	case fmt.Stringer:
		return s.String(), true
	}
	return fmt.Sprint(v), true
}

// Data returns the data attribute for a dataset name such as "userId"
// (data-user-id).
func (w *Widget) Data(name string) string {
	v, _ := w.Attr(dom.DatasetKey(name))
	return v
}

// SetData sets a data attribute. A nil value stores an empty string.
func (w *Widget) SetData(name string, value any) *Widget {
	if !w.IsValid() {
		return w
	}
	s, _ := attrString(value)
	dom.SetAttr(w.node, dom.DatasetKey(name), s)
	return w
}

// HTML returns the serialised children of the element.
func (w *Widget) HTML() string {
	if !w.IsValid() {
		return ""
	}
	return dom.InnerHTML(w.node)
}

// SetHTML parses s and replaces the children of the element.
func (w *Widget) SetHTML(s string) error {
	if !w.IsValid() {
		return ErrInvalidState
	}
	return dom.SetInnerHTML(w.node, s)
}

// SafeHTML is SetHTML after sanitising s with the bluemonday UGC policy.
func (w *Widget) SafeHTML(s string) error {
	return w.SetHTML(ugc.Sanitize(s))
}

// Text returns the text content of the element.
func (w *Widget) Text() string {
	if !w.IsValid() {
		return ""
	}
	return dom.TextContent(w.node)
}

// SetText replaces the children of the element with one text node.
func (w *Widget) SetText(s string) *Widget {
	if w.IsValid() {
		dom.SetTextContent(w.node, s)
	}
	return w
}

// Val returns the value of the element. A textarea yields its text, a
// select the value of its selected option (or the first one), an option
// without a value attribute its text. Every other element uses the value
// attribute.
func (w *Widget) Val() string {
	if !w.IsValid() {
		return ""
	}
	switch w.node.DataAtom {
	case atom.Textarea:
		return dom.TextContent(w.node)
	case atom.Select:
		if opt := selectedOption(w.node); opt != nil {
			return optionValue(opt)
		}
		return ""
	case atom.Option:
		return optionValue(w.node)
	}
	v, _ := dom.GetAttr(w.node, "value")
	return v
}

// SetVal sets the value of the element; see Val for how each element keeps
// it. A nil value is ignored. Setting a select marks the first option with
// that value as selected and clears the others.
func (w *Widget) SetVal(value any) *Widget {
	if !w.IsValid() {
		return w
	}
	s, ok := attrString(value)
	if !ok {
		return w
	}
	switch w.node.DataAtom {
	case atom.Textarea:
		dom.SetTextContent(w.node, s)
	case atom.Select:
		found := false
		for _, opt := range dom.QueryAll(w.node, "option") {
			if !found && optionValue(opt) == s {
				dom.SetAttr(opt, "selected", "")
				found = true
				continue
			}
			dom.RemoveAttr(opt, "selected")
		}
	default:
		dom.SetAttr(w.node, "value", s)
	}
	return w
}

func selectedOption(sel *html.Node) *html.Node {
	opts := dom.QueryAll(sel, "option")
	for _, o := range opts {
		if dom.HasAttr(o, "selected") {
			return o
		}
	}
	if len(opts) > 0 {
		return opts[0]
	}
	return nil
}

func optionValue(opt *html.Node) string {
	if v, ok := dom.GetAttr(opt, "value"); ok {
		return v
	}
	return dom.TextContent(opt)
}

// Validate stores Val() in data under the element's data-id, when both are
// present, and reports whether the value is acceptable. The base widget
// accepts every value; form widgets embed Widget and override it.
func (w *Widget) Validate(data map[string]any) bool {
	if data != nil {
		if id := w.Data("id"); id != "" {
			data[id] = w.Val()
		}
	}
	return true
}
