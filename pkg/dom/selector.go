package dom

import (
	"strings"
	"time"

	"github.com/andybalholm/cascadia"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/net/html"

	werrors "github.com/vango-dev/widgets/internal/errors"
)

const (
	selectorExpiration = 30 * time.Minute
	selectorCleanup    = time.Hour
)

// selectors caches compiled selector groups by source text.
var selectors = gocache.New(selectorExpiration, selectorCleanup)

// Compile parses a CSS selector list, reusing earlier compilations.
func Compile(sel string) (cascadia.SelectorGroup, error) {
	sel = strings.TrimSpace(sel)
	if v, ok := selectors.Get(sel); ok {
		return v.(cascadia.SelectorGroup), nil
	}
	group, err := cascadia.ParseGroup(sel)
	if err != nil {
		return nil, werrors.New("W005").WithDetailf("%q", sel).Wrap(err)
	}
	selectors.SetDefault(sel, group)
	return group, nil
}

// QueryE returns the first descendant of n matching sel.
func QueryE(n *html.Node, sel string) (*html.Node, error) {
	if n == nil {
		return nil, nil
	}
	m, err := Compile(sel)
	if err != nil {
		return nil, err
	}
	return cascadia.Query(n, m), nil
}

// QueryAllE returns every descendant of n matching sel in document order.
// The result is a snapshot; mutating the tree does not change it.
func QueryAllE(n *html.Node, sel string) ([]*html.Node, error) {
	if n == nil {
		return nil, nil
	}
	m, err := Compile(sel)
	if err != nil {
		return nil, err
	}
	return cascadia.QueryAll(n, m), nil
}

// Query is QueryE with invalid selectors treated as matching nothing.
func Query(n *html.Node, sel string) *html.Node {
	found, _ := QueryE(n, sel)
	return found
}

// QueryAll is QueryAllE with invalid selectors treated as matching nothing.
func QueryAll(n *html.Node, sel string) []*html.Node {
	found, _ := QueryAllE(n, sel)
	return found
}

// Matches reports whether n itself matches sel.
func Matches(n *html.Node, sel string) bool {
	if !IsElement(n) {
		return false
	}
	m, err := Compile(sel)
	if err != nil {
		return false
	}
	return m.Match(n)
}
