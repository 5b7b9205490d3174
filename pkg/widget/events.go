package widget

import (
	"time"

	"github.com/vango-dev/widgets/pkg/dom"
)

// Now passed as the delay to Dispatch fires the event synchronously.
const Now time.Duration = -1

// On sets the single handler slot for event, replacing any previous one.
// A nil fn clears it.
func (w *Widget) On(event string, fn dom.Listener) *Widget {
	if w.IsValid() {
		dom.SetHandler(w.node, event, fn)
	}
	return w
}

// OnAll sets the handler slot for event on every descendant matching sel.
func (w *Widget) OnAll(sel, event string, fn dom.Listener) *Widget {
	if !w.IsValid() {
		return w
	}
	for _, n := range dom.QueryAll(w.node, sel) {
		dom.SetHandler(n, event, fn)
	}
	return w
}

// Listen adds fn to the listeners for event. A nil fn is ignored.
func (w *Widget) Listen(event string, fn dom.Listener) *Widget {
	if w.IsValid() && fn != nil {
		dom.AddEventListener(w.node, event, fn)
	}
	return w
}

// ListenAll adds fn to every descendant matching sel.
func (w *Widget) ListenAll(sel, event string, fn dom.Listener) *Widget {
	if !w.IsValid() || fn == nil {
		return w
	}
	for _, n := range dom.QueryAll(w.node, sel) {
		dom.AddEventListener(n, event, fn)
	}
	return w
}

// Dispatch fires a bubbling, cancelable event named name at the element. A
// nil detail makes a plain event; anything else makes a custom event that
// carries it. A negative delay (Now) dispatches before Dispatch returns;
// otherwise the event is posted to the document loop after delay and the
// returned event is only complete once the loop has run it. The loop must be
// running (or pumped with RunPending) for delayed events to fire.
func (w *Widget) Dispatch(name string, detail any, delay time.Duration) *dom.Event {
	var e *dom.Event
	if detail == nil {
		e = dom.NewEvent(name)
	} else {
		e = dom.NewCustomEvent(name, detail)
	}
	if !w.IsValid() {
		return e
	}
	node := w.node
	if delay < 0 {
		dom.Dispatch(node, e)
		return e
	}
	w.doc.Loop().After(delay, func() {
		dom.Dispatch(node, e)
	})
	return e
}
