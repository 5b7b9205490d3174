// Package page provides single-frame, multi-page navigation on top of
// widgets.
//
// A Frame owns a sheet element holding its pages. Showing a page hides the
// current one, records a history entry whose URL carries the page id in the
// "p" query parameter and dispatches a "change" event on the frame:
//
//	page.Register("settings", func(doc *dom.Document) page.Page {
//	    return NewSettings(doc)
//	})
//
//	frame := page.NewFrame(doc)
//	frame.SetSheet(frame.Widget)
//	frame.ShowPage("settings", nil, false)
//
// Pages unknown to the frame are built on demand from the widget registry.
package page
