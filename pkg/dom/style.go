package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// StyleGet returns the inline style property prop of n. Property names may
// be given in camelCase (fontSize) or CSS form (font-size).
func StyleGet(n *html.Node, prop string) string {
	prop = cssName(prop)
	for _, d := range parseStyle(n) {
		if d.name == prop {
			return d.value
		}
	}
	return ""
}

// StyleSet sets the inline style property prop of n. An empty value removes
// the property.
func StyleSet(n *html.Node, prop, value string) {
	if n == nil {
		return
	}
	prop = cssName(prop)
	if prop == "" {
		return
	}
	decls := parseStyle(n)
	value = strings.TrimSpace(value)
	out := decls[:0]
	found := false
	for _, d := range decls {
		if d.name == prop {
			if value == "" {
				continue
			}
			d.value = value
			found = true
		}
		out = append(out, d)
	}
	if !found && value != "" {
		out = append(out, decl{name: prop, value: value})
	}
	writeStyle(n, out)
}

// Style returns the inline declarations of n.
func Style(n *html.Node) map[string]string {
	decls := parseStyle(n)
	out := make(map[string]string, len(decls))
	for _, d := range decls {
		out[d.name] = d.value
	}
	return out
}

type decl struct {
	name, value string
}

func parseStyle(n *html.Node) []decl {
	raw, _ := GetAttr(n, "style")
	var out []decl
	for _, part := range strings.Split(raw, ";") {
		name, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		name = strings.ToLower(strings.TrimSpace(name))
		value = strings.TrimSpace(value)
		if name == "" {
			continue
		}
		out = append(out, decl{name: name, value: value})
	}
	return out
}

func writeStyle(n *html.Node, decls []decl) {
	if len(decls) == 0 {
		if HasAttr(n, "style") {
			SetAttr(n, "style", "")
		}
		return
	}
	parts := make([]string, len(decls))
	for i, d := range decls {
		parts[i] = d.name + ": " + d.value + ";"
	}
	SetAttr(n, "style", strings.Join(parts, " "))
}

// cssName converts camelCase property names into CSS form.
func cssName(prop string) string {
	prop = strings.TrimSpace(prop)
	if strings.HasPrefix(prop, "--") {
		return prop
	}
	var b strings.Builder
	for _, r := range prop {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('-')
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
