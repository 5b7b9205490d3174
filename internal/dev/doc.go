// Package dev provides the preview server for widgets projects.
//
// The server keeps one live document holding a frame, renders it over HTTP
// and streams changes to connected browsers:
//
//   - Watcher: reports file system changes through fsnotify
//   - Hub: fans messages out to WebSocket clients
//   - Server: chi router serving the document, page navigation and metrics
//
// # Usage
//
//	srv, err := dev.NewServer(dev.ServerOptions{Config: cfg})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := srv.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Routes
//
//	GET /              rendered document
//	GET /pages/{id}    show page id, then redirect to /
//	GET /events        WebSocket event stream
//	GET /metrics       Prometheus metrics
//	GET /healthz       liveness
//
// # Event Protocol
//
// Messages on /events are JSON-encoded:
//
//	{"type": "hello", "id": "..."}                 // connection id
//	{"type": "change", "oldId": "a", "pageId": "b"} // frame page changed
//	{"type": "reload", "file": "..."}              // source changed
//	{"type": "error", "error": "..."}              // reload failed
package dev
