// Package widget provides Widget, a chaining handle over one element of a
// dom.Document, and the tag registry used to construct widgets by name.
//
// A Widget never owns its element. The document tree does; the widget is a
// view that can be created, dropped and re-created freely:
//
//	w := widget.New(doc, "div", "card")
//	w.SetAttr("role", "group").Append("span", "title", "Hello")
//	w.AppendTo(doc.Body())
//
// A widget whose element is nil is invalid. Getters on an invalid widget
// return zero values, chaining mutators do nothing, and operations that
// return an error report ErrInvalidState.
//
// # Registry
//
// Custom widget types are registered under one or more tag names and built
// with Construct. Unknown names fall back to plain elements:
//
//	widget.RegisterType("card", func(doc *dom.Document) widget.Element {
//	    return NewCard(doc)
//	})
//	c := widget.Construct("card", "wide")
//	p := widget.Construct("p", "") // no factory: a bare <p>
//
// Like the document it wraps, a widget is not safe for concurrent use. The
// registry is.
package widget
