package urlparam

import "sync"

// Entry is one step of a History.
type Entry struct {
	State any
	Title string
	URL   string
}

// Listener observes navigations. It is called after the history changed,
// outside the history lock.
type Listener func(e Entry, mode URLMode)

// History is a linear navigation stack with a cursor, modelled on the
// browser session history. Pushing discards any forward entries.
//
// History is safe for concurrent use.
type History struct {
	mu        sync.Mutex
	entries   []Entry
	index     int
	listeners []Listener
}

// NewHistory returns a history holding one entry for initialURL.
func NewHistory(initialURL string) *History {
	return &History{entries: []Entry{{URL: initialURL}}}
}

// Navigate records a navigation to url with the given mode.
func (h *History) Navigate(mode URLMode, state any, title, url string) {
	e := Entry{State: state, Title: title, URL: url}
	h.mu.Lock()
	if mode == ModeReplace {
		h.entries[h.index] = e
	} else {
		h.entries = append(h.entries[:h.index+1], e)
		h.index++
	}
	listeners := append([]Listener(nil), h.listeners...)
	h.mu.Unlock()

	for _, fn := range listeners {
		fn(e, mode)
	}
}

// Push is Navigate with ModePush.
func (h *History) Push(state any, title, url string) {
	h.Navigate(ModePush, state, title, url)
}

// Replace is Navigate with ModeReplace.
func (h *History) Replace(state any, title, url string) {
	h.Navigate(ModeReplace, state, title, url)
}

// Current returns the entry under the cursor.
func (h *History) Current() Entry {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.index]
}

// State returns the state of the current entry.
func (h *History) State() any { return h.Current().State }

// URL returns the URL of the current entry.
func (h *History) URL() string { return h.Current().URL }

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Back moves the cursor one entry back. It reports false at the start.
func (h *History) Back() (Entry, bool) {
	return h.Go(-1)
}

// Forward moves the cursor one entry forward. It reports false at the end.
func (h *History) Forward() (Entry, bool) {
	return h.Go(1)
}

// Go moves the cursor by delta entries if the target exists.
func (h *History) Go(delta int) (Entry, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	i := h.index + delta
	if i < 0 || i >= len(h.entries) {
		return h.entries[h.index], false
	}
	h.index = i
	return h.entries[i], true
}

// Subscribe registers fn for every later navigation.
func (h *History) Subscribe(fn Listener) {
	if fn == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.listeners = append(h.listeners, fn)
}
