package widget

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/vango-dev/widgets/pkg/dom"
)

// Query returns the first descendant matching sel, or an invalid widget.
func (w *Widget) Query(sel string) *Widget {
	if !w.IsValid() {
		return w.wrap(nil)
	}
	return w.wrap(dom.Query(w.node, sel))
}

// QueryAll returns every descendant matching sel, in document order.
func (w *Widget) QueryAll(sel string) []*Widget {
	if !w.IsValid() {
		return nil
	}
	return w.wrapAll(dom.QueryAll(w.node, sel))
}

func (w *Widget) wrapAll(nodes []*html.Node) []*Widget {
	out := make([]*Widget, len(nodes))
	for i, n := range nodes {
		out[i] = w.wrap(n)
	}
	return out
}

// Direction names a walk for Nearby.
type Direction string

const (
	Parent Direction = "parent"
	Next   Direction = "next"
	Prev   Direction = "prev"
	First  Direction = "first"
	Last   Direction = "last"
)

// Step says how far Nearby walks: a number of steps or up to the first
// element matching a selector.
type Step struct {
	n   int
	sel string
}

// Count walks n steps. Values below 1 mean 1.
func Count(n int) Step { return Step{n: n} }

// Until walks until an element matches sel.
func Until(sel string) Step { return Step{sel: sel} }

// Nearby walks from the element in direction and returns where it stops.
// Parent, Next and Prev step along parent, next sibling and previous
// sibling elements. First and Last start at the first or last child
// element and continue along next or previous siblings. A walk that runs
// off the end, or an unknown direction, yields an invalid widget.
func (w *Widget) Nearby(dir Direction, step Step) *Widget {
	if !w.IsValid() {
		return w.wrap(nil)
	}
	var start *html.Node
	var move func(*html.Node) *html.Node
	switch dir {
	case Parent:
		move = dom.ParentElement
		start = move(w.node)
	case Next:
		move = dom.NextElementSibling
		start = move(w.node)
	case Prev:
		move = dom.PreviousElementSibling
		start = move(w.node)
	case First:
		move = dom.NextElementSibling
		start = dom.FirstElementChild(w.node)
	case Last:
		move = dom.PreviousElementSibling
		start = dom.LastElementChild(w.node)
	default:
		return w.wrap(nil)
	}

	n := start
	if step.sel != "" {
		for n != nil && !dom.Matches(n, step.sel) {
			n = move(n)
		}
		return w.wrap(n)
	}
	for i := 1; n != nil && i < step.n; i++ {
		n = move(n)
	}
	return w.wrap(n)
}

// Child returns the child element at index; a negative index counts from
// the end. Out of range yields an invalid widget.
func (w *Widget) Child(index int) *Widget {
	if !w.IsValid() {
		return w.wrap(nil)
	}
	kids := dom.Children(w.node)
	if index < 0 {
		index += len(kids)
	}
	if index < 0 || index >= len(kids) {
		return w.wrap(nil)
	}
	return w.wrap(kids[index])
}

// ChildMatching returns the first child element matching sel.
func (w *Widget) ChildMatching(sel string) *Widget {
	if !w.IsValid() {
		return w.wrap(nil)
	}
	for c := dom.FirstElementChild(w.node); c != nil; c = dom.NextElementSibling(c) {
		if dom.Matches(c, sel) {
			return w.wrap(c)
		}
	}
	return w.wrap(nil)
}

// Children returns the child elements matching sel, or all of them when sel
// is empty. The list is taken up front, so callers may detach the returned
// elements while iterating.
func (w *Widget) Children(sel string) []*Widget {
	if !w.IsValid() {
		return nil
	}
	var kids []*html.Node
	for c := dom.FirstElementChild(w.node); c != nil; c = dom.NextElementSibling(c) {
		if sel == "" || dom.Matches(c, sel) {
			kids = append(kids, c)
		}
	}
	return w.wrapAll(kids)
}

// FindIndex returns the position of child among the child elements, or -1.
func (w *Widget) FindIndex(child any) int {
	if !w.IsValid() {
		return -1
	}
	var target *html.Node
	switch v := child.(type) {
	case *Widget:
		target = v.Node()
	case Element:
		target = v.AsWidget().Node()
	case *html.Node:
		target = v
	}
	idx := 0
	for c := dom.FirstElementChild(w.node); c != nil; c = dom.NextElementSibling(c) {
		if c == target {
			return idx
		}
		idx++
	}
	return -1
}

// FindByEvent walks up from the event target (a *dom.Event, a node or a
// widget) to the nearest element with the given tag, stopping at this
// element. It returns an invalid widget when no such element lies between.
func (w *Widget) FindByEvent(target any, tag string) *Widget {
	var n *html.Node
	switch v := target.(type) {
	case *dom.Event:
		if v != nil {
			n = v.Target
		}
	case *html.Node:
		n = v
	case *Widget:
		n = v.Node()
	}
	tag = strings.ToLower(tag)
	for n != nil && !(dom.IsElement(n) && n.Data == tag) {
		if n == w.node {
			return w.wrap(nil)
		}
		n = n.Parent
	}
	return w.wrap(n)
}
