package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// GetAttr returns the value of the attribute key on n.
func GetAttr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	key = strings.ToLower(key)
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// HasAttr reports whether n carries the attribute key.
func HasAttr(n *html.Node, key string) bool {
	_, ok := GetAttr(n, key)
	return ok
}

// SetAttr sets the attribute key on n, keeping its position if it exists.
func SetAttr(n *html.Node, key, val string) {
	if n == nil {
		return
	}
	key = strings.ToLower(key)
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr removes the attribute key from n.
func RemoveAttr(n *html.Node, key string) {
	if n == nil {
		return
	}
	key = strings.ToLower(key)
	out := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		out = append(out, a)
	}
	n.Attr = out
}

// Attrs returns a copy of the attributes of n as a map.
func Attrs(n *html.Node) map[string]string {
	if n == nil {
		return nil
	}
	out := make(map[string]string, len(n.Attr))
	for _, a := range n.Attr {
		out[a.Key] = a.Val
	}
	return out
}

// DatasetKey converts a dataset property name (fooBar) into its attribute
// name (data-foo-bar).
func DatasetKey(name string) string {
	var b strings.Builder
	b.WriteString("data-")
	for _, r := range name {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('-')
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
