// Package dom provides the document layer the widget wrappers operate on.
//
// A Document is an in-memory HTML tree built from golang.org/x/net/html
// nodes together with an event Loop. Elements are plain *html.Node values;
// this package adds the browser-style operations the wrappers need on top of
// them:
//
//   - navigation (ParentElement, NextElementSibling, Children, ...)
//   - adjacency insertion (InsertAdjacent with beforebegin, afterbegin,
//     beforeend and afterend)
//   - attributes, the class list and the inline style declaration
//   - inner/outer HTML and text content
//   - CSS selector queries (Query, QueryAll, Matches)
//   - event listeners and dispatch with bubbling
//
// # Threading
//
// The tree itself is not synchronised. Like a browser page, a document is
// meant to be mutated from one logical thread: either the caller's goroutine
// before the loop starts, or tasks running on the document's Loop. Delayed
// work (timers, request completions) is posted to the loop so that it runs
// serially with everything else.
//
// Listener tables are attached to nodes rather than documents and are
// guarded by a mutex, so a node keeps its listeners when it moves between
// trees.
package dom
