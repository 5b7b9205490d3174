package widget

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/vango-dev/widgets/pkg/dom"
)

// Matcher selects elements for Choice. Use MatchFunc, MatchSelector,
// MatchNode or MatchWidget.
type Matcher interface {
	// bind resolves the matcher against the scope element once, before any
	// class is changed.
	bind(scope *html.Node) func(*html.Node) bool
}

// MatchFunc selects the elements for which f reports true.
type MatchFunc func(n *html.Node) bool

func (f MatchFunc) bind(*html.Node) func(*html.Node) bool {
	if f == nil {
		return func(*html.Node) bool { return false }
	}
	return f
}

// MatchSelector selects the first descendant of the scope element that
// matches the CSS selector.
type MatchSelector string

func (s MatchSelector) bind(scope *html.Node) func(*html.Node) bool {
	return identity(dom.Query(scope, string(s)))
}

// MatchNode selects exactly n.
func MatchNode(n *html.Node) Matcher { return nodeMatcher{n} }

// MatchWidget selects exactly the element of w.
func MatchWidget(w *Widget) Matcher { return nodeMatcher{w.Node()} }

type nodeMatcher struct{ n *html.Node }

func (m nodeMatcher) bind(*html.Node) func(*html.Node) bool { return identity(m.n) }

func identity(target *html.Node) func(*html.Node) bool {
	return func(n *html.Node) bool { return target != nil && n == target }
}

// Choice partitions the descendants matching selector by matcher: selected
// elements get className and the rest lose it. A leading "!" on className
// inverts this, removing the class from selected elements and adding it to
// the rest. Every matched descendant is touched. Choice returns the number
// of selected elements.
//
// The descendant list is taken before any class changes, so selectors that
// depend on className see the original state.
func (w *Widget) Choice(selector, className string, matcher Matcher) int {
	if !w.IsValid() {
		return 0
	}
	add := true
	if strings.HasPrefix(className, "!") {
		add = false
		className = className[1:]
	}
	list := dom.QueryAll(w.node, selector)
	var match func(*html.Node) bool
	if matcher == nil {
		match = identity(nil)
	} else {
		match = matcher.bind(w.node)
	}

	count := 0
	for _, n := range list {
		hit := match(n)
		if hit {
			count++
		}
		if className == "" {
			continue
		}
		cl := dom.Classes(n)
		if hit == add {
			cl.Add(className)
		} else {
			cl.Remove(className)
		}
	}
	return count
}
