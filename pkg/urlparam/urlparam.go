// Package urlparam reads and writes query parameters of URLs and keeps a
// navigation history of them.
//
// Example:
//
//	id, _ := urlparam.Get("/app?p=home", "p") // "home"
//	next, _ := urlparam.Set("/app?p=home", "p", "settings")
//
//	h := urlparam.NewHistory("/app")
//	h.Navigate(urlparam.ModePush, state, "Settings", next)
package urlparam

import (
	"net/url"
)

// URLMode determines how a navigation updates the history.
type URLMode int

const (
	// ModePush adds a new history entry (default behavior).
	ModePush URLMode = iota

	// ModeReplace replaces the current history entry.
	ModeReplace
)

// String returns "push" or "replace".
func (m URLMode) String() string {
	if m == ModeReplace {
		return "replace"
	}
	return "push"
}

// Get returns the first value of the query parameter name in rawURL and
// whether it is present. Unparseable URLs report false.
func Get(rawURL, name string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}
	q := u.Query()
	if !q.Has(name) {
		return "", false
	}
	return q.Get(name), true
}

// Set returns rawURL with the query parameter name replaced by value.
// Other parameters keep their values; the query is re-encoded in key order.
func Set(rawURL, name, value string) (string, error) {
	return edit(rawURL, func(q url.Values) { q.Set(name, value) })
}

// Delete returns rawURL without the query parameter name.
func Delete(rawURL, name string) (string, error) {
	return edit(rawURL, func(q url.Values) { q.Del(name) })
}

func edit(rawURL string, fn func(url.Values)) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	fn(q)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Resolve resolves ref against base, as a browser resolves a link against
// the page location. An empty base leaves ref unchanged.
func Resolve(base, ref string) (string, error) {
	r, err := url.Parse(ref)
	if err != nil {
		return "", err
	}
	if base == "" {
		return r.String(), nil
	}
	b, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	return b.ResolveReference(r).String(), nil
}
