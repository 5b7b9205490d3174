package el

import (
	"github.com/vango-dev/widgets/pkg/dom"
	"github.com/vango-dev/widgets/pkg/widget"
)

// Attr configures an element being built.
type Attr func(w *widget.Widget)

// Builder builds elements for one document.
type Builder struct {
	reg *widget.Registry
}

// In returns a builder whose elements belong to doc and whose tags are
// resolved in a registry bound to doc.
func In(doc *dom.Document) Builder {
	return Builder{reg: widget.NewRegistry(doc)}
}

// Using returns a builder resolving tags in r.
func Using(r *widget.Registry) Builder {
	return Builder{reg: r}
}

// El builds a tag with the given arguments.
func (b Builder) El(tag string, args ...any) *widget.Widget {
	reg := b.reg
	if reg == nil {
		reg = widget.DefaultRegistry()
	}
	w := reg.Construct(tag, "").AsWidget()
	apply(w, args)
	return w
}

// El builds tag in the default document.
func El(tag string, args ...any) *widget.Widget {
	return Builder{}.El(tag, args...)
}

func apply(w *widget.Widget, args []any) {
	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
		case Attr:
			if v != nil {
				v(w)
			}
		case []Attr:
			for _, a := range v {
				if a != nil {
					a(w)
				}
			}
		case []any:
			apply(w, v)
		case []*widget.Widget:
			for _, c := range v {
				w.Append(c, "", nil)
			}
		case string:
			w.Node().AppendChild(dom.CreateText(v))
		default:
			w.Append(v, "", nil)
		}
	}
}
