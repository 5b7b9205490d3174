package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// ClassList is a live view over the class attribute of one element. Token
// order is preserved and duplicates are collapsed on write.
type ClassList struct {
	n *html.Node
}

// Classes returns the class list of n.
func Classes(n *html.Node) ClassList {
	return ClassList{n: n}
}

// Tokens returns the current class tokens.
func (c ClassList) Tokens() []string {
	v, _ := GetAttr(c.n, "class")
	return strings.Fields(v)
}

// Contains reports whether token is present.
func (c ClassList) Contains(token string) bool {
	for _, t := range c.Tokens() {
		if t == token {
			return true
		}
	}
	return false
}

// Add appends tokens that are not already present. Empty tokens are ignored.
func (c ClassList) Add(tokens ...string) {
	if c.n == nil {
		return
	}
	cur := c.Tokens()
	changed := false
	for _, t := range tokens {
		if t == "" || contains(cur, t) {
			continue
		}
		cur = append(cur, t)
		changed = true
	}
	if changed {
		c.write(cur)
	}
}

// Remove drops tokens. The class attribute stays, possibly empty, once it
// has existed.
func (c ClassList) Remove(tokens ...string) {
	if c.n == nil || !HasAttr(c.n, "class") {
		return
	}
	cur := c.Tokens()
	out := cur[:0]
	for _, t := range cur {
		if !contains(tokens, t) {
			out = append(out, t)
		}
	}
	c.write(out)
}

// Toggle removes token if present and adds it otherwise. It reports whether
// token is present afterwards.
func (c ClassList) Toggle(token string) bool {
	if c.Contains(token) {
		c.Remove(token)
		return false
	}
	c.Add(token)
	return true
}

// ToggleForce adds token when force is true and removes it otherwise.
func (c ClassList) ToggleForce(token string, force bool) bool {
	if force {
		c.Add(token)
	} else {
		c.Remove(token)
	}
	return force
}

// Set replaces the class attribute.
func (c ClassList) Set(value string) {
	if c.n == nil {
		return
	}
	SetAttr(c.n, "class", value)
}

// String returns the raw class attribute.
func (c ClassList) String() string {
	v, _ := GetAttr(c.n, "class")
	return v
}

func (c ClassList) write(tokens []string) {
	SetAttr(c.n, "class", strings.Join(dedupe(tokens), " "))
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func dedupe(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
