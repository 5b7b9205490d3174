package dom

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"

	werrors "github.com/vango-dev/widgets/internal/errors"
)

// Errors reported by tree operations. Match them with errors.Is.
var (
	ErrNoParent        = werrors.New("W002")
	ErrInvalidPosition = werrors.New("W003")
	ErrHierarchy       = werrors.New("W004")
	ErrInvalidSelector = werrors.New("W005")
	ErrInvalidHTML     = werrors.New("W006")
)

// Position names a place relative to an element, as used by InsertAdjacent.
type Position string

const (
	BeforeBegin Position = "beforebegin"
	AfterBegin  Position = "afterbegin"
	BeforeEnd   Position = "beforeend"
	AfterEnd    Position = "afterend"
)

// ParsePosition converts s to a Position, ignoring case.
func ParsePosition(s string) (Position, error) {
	p := Position(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case BeforeBegin, AfterBegin, BeforeEnd, AfterEnd:
		return p, nil
	}
	return "", werrors.New("W003").WithDetailf("position %q", s)
}

// IsElement reports whether n is a non-nil element node.
func IsElement(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode
}

// ParentElement returns the parent of n if it is an element.
func ParentElement(n *html.Node) *html.Node {
	if n == nil || !IsElement(n.Parent) {
		return nil
	}
	return n.Parent
}

// NextElementSibling returns the next sibling element of n.
func NextElementSibling(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}

// PreviousElementSibling returns the previous sibling element of n.
func PreviousElementSibling(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}

// FirstElementChild returns the first child element of n.
func FirstElementChild(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return c
		}
	}
	return nil
}

// LastElementChild returns the last child element of n.
func LastElementChild(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	for c := n.LastChild; c != nil; c = c.PrevSibling {
		if c.Type == html.ElementNode {
			return c
		}
	}
	return nil
}

// Children returns the child elements of n as a new slice.
func Children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := FirstElementChild(n); c != nil; c = NextElementSibling(c) {
		out = append(out, c)
	}
	return out
}

// Contains reports whether other is n or one of its descendants.
func Contains(n, other *html.Node) bool {
	for p := other; p != nil; p = p.Parent {
		if p == n {
			return true
		}
	}
	return false
}

// Detach removes n from its parent, if any.
func Detach(n *html.Node) {
	if n != nil && n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// InsertAdjacent inserts node relative to target. node is first detached
// from wherever it currently is.
func InsertAdjacent(target *html.Node, pos Position, node *html.Node) error {
	if target == nil || node == nil {
		return werrors.New("W001")
	}
	var parent, before *html.Node
	switch pos {
	case BeforeBegin:
		parent, before = target.Parent, target
	case AfterEnd:
		parent, before = target.Parent, target.NextSibling
	case AfterBegin:
		parent, before = target, target.FirstChild
	case BeforeEnd:
		parent = target
	default:
		return werrors.New("W003").WithDetailf("position %q", string(pos))
	}
	if parent == nil {
		return werrors.New("W002").WithDetail(string(pos))
	}
	if Contains(node, parent) {
		return werrors.New("W004")
	}
	if before == node {
		return nil
	}
	Detach(node)
	parent.InsertBefore(node, before)
	return nil
}

// ReplaceWith puts node in place of old within old's parent.
func ReplaceWith(old, node *html.Node) error {
	parent := old.Parent
	if parent == nil {
		return werrors.New("W002")
	}
	if old == node {
		return nil
	}
	if Contains(node, parent) {
		return werrors.New("W004")
	}
	Detach(node)
	parent.InsertBefore(node, old)
	parent.RemoveChild(old)
	return nil
}

// RemoveChildren detaches every child of n.
func RemoveChildren(n *html.Node) {
	for n.FirstChild != nil {
		n.RemoveChild(n.FirstChild)
	}
}

// TextContent returns the concatenated text of n and its descendants.
func TextContent(n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(p *html.Node) {
		for c := p.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.TextNode:
				b.WriteString(c.Data)
			case html.ElementNode:
				walk(c)
			}
		}
	}
	walk(n)
	return b.String()
}

// SetTextContent replaces the children of n with a single text node.
func SetTextContent(n *html.Node, s string) {
	RemoveChildren(n)
	if s != "" {
		n.AppendChild(CreateText(s))
	}
}

// InnerHTML serialises the children of n.
func InnerHTML(n *html.Node) string {
	if n == nil {
		return ""
	}
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return ""
		}
	}
	return buf.String()
}

// OuterHTML serialises n itself.
func OuterHTML(n *html.Node) string {
	if n == nil {
		return ""
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return ""
	}
	return buf.String()
}

// SetInnerHTML parses s in the context of n and replaces its children.
// On a parse error the children are left untouched.
func SetInnerHTML(n *html.Node, s string) error {
	nodes, err := ParseFragment(n, s)
	if err != nil {
		return err
	}
	RemoveChildren(n)
	for _, c := range nodes {
		n.AppendChild(c)
	}
	return nil
}

// ParseFragment parses s as the content of context and returns the
// detached top-level nodes.
func ParseFragment(context *html.Node, s string) ([]*html.Node, error) {
	if !IsElement(context) {
		context = nil
	}
	nodes, err := html.ParseFragment(strings.NewReader(s), context)
	if err != nil {
		return nil, werrors.New("W006").Wrap(err)
	}
	return nodes, nil
}
