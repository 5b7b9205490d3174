package widget

import (
	"strings"

	"golang.org/x/net/html"

	werrors "github.com/vango-dev/widgets/internal/errors"
	"github.com/vango-dev/widgets/pkg/dom"
)

// Errors returned by widget operations. Match them with errors.Is.
var (
	ErrInvalidState = werrors.New("W001")
	ErrNoParent     = dom.ErrNoParent
)

// Element is implemented by every type that can be built by the registry.
// Custom widget types embed *Widget and inherit its AsWidget method.
type Element interface {
	AsWidget() *Widget
}

// Widget is a handle over one element.
type Widget struct {
	doc  *dom.Document
	node *html.Node
}

// New returns a widget for tagOrNode, bound to doc (dom.Default() when nil).
//
// tagOrNode may be a tag name, which creates a new element, an element
// node, a *Widget or an Element, which share the existing element. Any
// other value, an empty tag or a non-element node yields an invalid widget.
// A non-empty class replaces the element's class attribute.
func New(doc *dom.Document, tagOrNode any, class string) *Widget {
	if doc == nil {
		doc = dom.Default()
	}
	w := &Widget{doc: doc}
	switch v := tagOrNode.(type) {
	case string:
		if strings.TrimSpace(v) != "" {
			w.node = dom.CreateElement(v)
		}
	case *html.Node:
		if dom.IsElement(v) {
			w.node = v
		}
	case *Widget:
		if v != nil {
			w.node = v.node
		}
	case Element:
		if v != nil && v.AsWidget() != nil {
			w.node = v.AsWidget().node
		}
	}
	if class != "" && w.node != nil {
		dom.SetAttr(w.node, "class", class)
	}
	return w
}

// Wrap returns a widget for an existing node, bound to doc.
func Wrap(doc *dom.Document, n *html.Node) *Widget {
	return New(doc, n, "")
}

// AsWidget returns w itself, making *Widget an Element.
func (w *Widget) AsWidget() *Widget { return w }

// Node returns the wrapped element, nil for an invalid widget.
func (w *Widget) Node() *html.Node {
	if w == nil {
		return nil
	}
	return w.node
}

// Document returns the document w is bound to.
func (w *Widget) Document() *dom.Document { return w.doc }

// IsValid reports whether w wraps an element.
func (w *Widget) IsValid() bool {
	return w != nil && w.node != nil
}

// IsOffline reports whether w is valid and has no parent element.
func (w *Widget) IsOffline() bool {
	return w.IsValid() && dom.ParentElement(w.node) == nil
}

// wrap returns a widget over n bound to the same document; a nil n gives an
// invalid widget.
func (w *Widget) wrap(n *html.Node) *Widget {
	if !dom.IsElement(n) {
		n = nil
	}
	if w == nil {
		return &Widget{doc: dom.Default(), node: n}
	}
	return &Widget{doc: w.doc, node: n}
}

// SetNode points w at n. If w's current element is attached, n replaces it
// in place; a nil n detaches it instead.
func (w *Widget) SetNode(n *html.Node) *Widget {
	if w.node != nil && w.node.Parent != nil {
		if n != nil {
			if err := dom.ReplaceWith(w.node, n); err != nil {
				w.doc.Logger().Debug("widget replace failed", "error", err)
			}
		} else {
			dom.Detach(w.node)
		}
	}
	if !dom.IsElement(n) {
		n = nil
	}
	w.node = n
	return w
}

// Offline detaches the element from its parent. The widget stays valid.
func (w *Widget) Offline() *Widget {
	if w.IsValid() {
		dom.Detach(w.node)
	}
	return w
}

// Remove detaches the element and drops the event listeners registered on
// it and its descendants.
func (w *Widget) Remove() *Widget {
	if w.IsValid() {
		dom.Detach(w.node)
		dom.Release(w.node)
	}
	return w
}

// Empty removes every child of the element.
func (w *Widget) Empty() *Widget {
	if w.IsValid() {
		dom.RemoveChildren(w.node)
	}
	return w
}

// Content replaces the children of the element. Each item may be a
// *Widget, an Element, a node or a string, which becomes a text node.
// Other values are skipped.
func (w *Widget) Content(items ...any) *Widget {
	if !w.IsValid() {
		return w
	}
	w.Empty()
	for _, item := range items {
		if n := w.nodeOf(item); n != nil {
			dom.Detach(n)
			w.node.AppendChild(n)
		}
	}
	return w
}

func (w *Widget) nodeOf(item any) *html.Node {
	switch v := item.(type) {
	case *Widget:
		if v.IsValid() {
			v.doc = w.doc
			return v.node
		}
	case Element:
		if cw := v.AsWidget(); cw.IsValid() {
			cw.doc = w.doc
			return cw.node
		}
	case *html.Node:
		return v
	case string:
		return dom.CreateText(v)
	}
	return nil
}

// Append adds a child element. child may be a *Widget, an Element, an
// element node or a tag name, which is built with Construct. A non-empty
// class is added with MClass. edit is either an HTML string set as the
// child's content or a func(*Widget) called with the child before it is
// attached.
func (w *Widget) Append(child any, class string, edit any) *Widget {
	if !w.IsValid() {
		return w
	}
	var cw *Widget
	switch v := child.(type) {
	case *Widget:
		cw = v
	case Element:
		cw = v.AsWidget()
	case *html.Node:
		cw = w.wrap(v)
	case string:
		if v != "" {
			cw = Construct(v, "").AsWidget()
		}
	}
	if !cw.IsValid() {
		return w
	}
	cw.doc = w.doc
	if class != "" {
		cw.MClass(class, "")
	}
	switch e := edit.(type) {
	case string:
		if e != "" {
			if err := cw.SetHTML(e); err != nil {
				w.doc.Logger().Debug("widget append content", "error", err)
			}
		}
	case func(*Widget):
		e(cw)
	}
	dom.Detach(cw.node)
	w.node.AppendChild(cw.node)
	return w
}

// AppendTo appends the element to parent, a *Widget, an Element or a node.
func (w *Widget) AppendTo(parent any) *Widget {
	if !w.IsValid() {
		return w
	}
	var p *html.Node
	switch v := parent.(type) {
	case *Widget:
		p = v.Node()
	case Element:
		p = v.AsWidget().Node()
	case *html.Node:
		p = v
	}
	if p != nil && !dom.Contains(w.node, p) {
		dom.Detach(w.node)
		p.AppendChild(w.node)
	}
	return w
}

// Insert places other relative to this element. When the element has no
// parent and pos is an outer position, the adjacency is built from other's
// side instead: BeforeBegin puts this element after other, AfterEnd puts
// it before. If neither element has a parent, Insert returns ErrNoParent.
func (w *Widget) Insert(pos dom.Position, other any) error {
	if !w.IsValid() {
		return ErrInvalidState
	}
	var on *html.Node
	switch v := other.(type) {
	case *Widget:
		on = v.Node()
	case Element:
		on = v.AsWidget().Node()
	case *html.Node:
		on = v
	}
	if !dom.IsElement(on) {
		return ErrInvalidState
	}
	if w.node.Parent != nil || pos == dom.AfterBegin || pos == dom.BeforeEnd {
		return dom.InsertAdjacent(w.node, pos, on)
	}
	if on.Parent == nil {
		return werrors.New("W002").WithDetail(string(pos))
	}
	switch pos {
	case dom.BeforeBegin:
		return dom.InsertAdjacent(on, dom.AfterEnd, w.node)
	case dom.AfterEnd:
		return dom.InsertAdjacent(on, dom.BeforeBegin, w.node)
	}
	return werrors.New("W003").WithDetailf("position %q", string(pos))
}
