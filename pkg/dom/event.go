package dom

import (
	"sync"

	"golang.org/x/net/html"
)

// Event is dispatched through the tree by Dispatch.
type Event struct {
	// Type is the event name, e.g. "change".
	Type string

	// Detail is the payload of a custom event.
	Detail any

	Bubbles    bool
	Cancelable bool

	// Target is the node the event was dispatched on.
	Target *html.Node

	// CurrentTarget is the node whose listeners are running.
	CurrentTarget *html.Node

	custom           bool
	defaultPrevented bool
	stopped          bool
	immediateStopped bool
}

// NewEvent returns a plain bubbling, cancelable event.
func NewEvent(typ string) *Event {
	return &Event{Type: typ, Bubbles: true, Cancelable: true}
}

// NewCustomEvent returns a bubbling, cancelable event carrying detail.
func NewCustomEvent(typ string, detail any) *Event {
	return &Event{Type: typ, Detail: detail, Bubbles: true, Cancelable: true, custom: true}
}

// IsCustom reports whether the event carries a detail payload.
func (e *Event) IsCustom() bool { return e.custom }

// PreventDefault marks a cancelable event as cancelled.
func (e *Event) PreventDefault() {
	if e.Cancelable {
		e.defaultPrevented = true
	}
}

// DefaultPrevented reports whether PreventDefault was called on a
// cancelable event.
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// StopPropagation stops the event from reaching further ancestors.
func (e *Event) StopPropagation() { e.stopped = true }

// StopImmediatePropagation also skips the remaining listeners on the
// current node.
func (e *Event) StopImmediatePropagation() {
	e.stopped = true
	e.immediateStopped = true
}

// Listener handles an event.
type Listener func(e *Event)

type listenerSet struct {
	// handlers holds the single on<type> slot per event type.
	handlers  map[string]Listener
	listeners map[string][]Listener
}

var (
	listenersMu sync.RWMutex
	listeners   = make(map[*html.Node]*listenerSet)
)

func setFor(n *html.Node) *listenerSet {
	set := listeners[n]
	if set == nil {
		set = &listenerSet{
			handlers:  make(map[string]Listener),
			listeners: make(map[string][]Listener),
		}
		listeners[n] = set
	}
	return set
}

// AddEventListener appends fn to the listeners for typ on n.
func AddEventListener(n *html.Node, typ string, fn Listener) {
	if n == nil || fn == nil {
		return
	}
	listenersMu.Lock()
	defer listenersMu.Unlock()
	set := setFor(n)
	set.listeners[typ] = append(set.listeners[typ], fn)
}

// SetHandler sets the on<typ> handler slot of n. A nil fn clears it.
func SetHandler(n *html.Node, typ string, fn Listener) {
	if n == nil {
		return
	}
	listenersMu.Lock()
	defer listenersMu.Unlock()
	if fn == nil {
		if set := listeners[n]; set != nil {
			delete(set.handlers, typ)
		}
		return
	}
	setFor(n).handlers[typ] = fn
}

// Handler returns the on<typ> handler of n.
func Handler(n *html.Node, typ string) Listener {
	listenersMu.RLock()
	defer listenersMu.RUnlock()
	if set := listeners[n]; set != nil {
		return set.handlers[typ]
	}
	return nil
}

// ListenerCount returns the number of listeners and handlers for typ on n.
func ListenerCount(n *html.Node, typ string) int {
	listenersMu.RLock()
	defer listenersMu.RUnlock()
	set := listeners[n]
	if set == nil {
		return 0
	}
	count := len(set.listeners[typ])
	if set.handlers[typ] != nil {
		count++
	}
	return count
}

// Release drops the listeners of n and all of its descendants.
func Release(n *html.Node) {
	if n == nil {
		return
	}
	listenersMu.Lock()
	defer listenersMu.Unlock()
	var walk func(*html.Node)
	walk = func(p *html.Node) {
		delete(listeners, p)
		for c := p.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
}

func (s *listenerSet) snapshot(typ string) []Listener {
	out := make([]Listener, 0, len(s.listeners[typ])+1)
	if h := s.handlers[typ]; h != nil {
		out = append(out, h)
	}
	return append(out, s.listeners[typ]...)
}

// Dispatch delivers e to target and, for bubbling events, to each ancestor
// up to the document node. Listeners run synchronously on the calling
// goroutine. It returns false if a listener cancelled the event.
func Dispatch(target *html.Node, e *Event) bool {
	if target == nil || e == nil {
		return true
	}
	e.Target = target
	e.stopped = false
	e.immediateStopped = false

	for n := target; n != nil; n = n.Parent {
		listenersMu.RLock()
		var fns []Listener
		if set := listeners[n]; set != nil {
			fns = set.snapshot(e.Type)
		}
		listenersMu.RUnlock()

		e.CurrentTarget = n
		for _, fn := range fns {
			fn(e)
			if e.immediateStopped {
				break
			}
		}
		if e.stopped || !e.Bubbles {
			break
		}
	}
	e.CurrentTarget = nil
	return !e.defaultPrevented
}
