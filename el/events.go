package el

import (
	"github.com/vango-dev/widgets/pkg/dom"
	"github.com/vango-dev/widgets/pkg/widget"
)

// On adds a listener for event.
func On(event string, fn dom.Listener) Attr {
	return func(w *widget.Widget) { w.Listen(event, fn) }
}

// OnAll adds a listener for event on descendants matching sel.
func OnAll(sel, event string, fn dom.Listener) Attr {
	return func(w *widget.Widget) { w.ListenAll(sel, event, fn) }
}

func OnClick(fn dom.Listener) Attr  { return On("click", fn) }
func OnInput(fn dom.Listener) Attr  { return On("input", fn) }
func OnChange(fn dom.Listener) Attr { return On("change", fn) }
func OnSubmit(fn dom.Listener) Attr { return On("submit", fn) }
func OnFocus(fn dom.Listener) Attr  { return On("focus", fn) }
func OnBlur(fn dom.Listener) Attr   { return On("blur", fn) }
