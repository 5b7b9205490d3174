// Package request issues single HTTP calls whose outcome settles exactly
// once into a Future.
//
// A call is validated synchronously: a missing URL or unsupported
// parameters are returned as errors before any I/O starts. After that the
// call runs in the background and the Future resolves with the decoded body
// or rejects with an *Error:
//
//	f, err := request.Post(ctx, "/api/items", map[string]any{"name": "x"})
//	if err != nil {
//	    return err // caller error, e.g. ErrMissingURL
//	}
//	v, err := f.Await(ctx)
//	var rerr *request.Error
//	if errors.As(err, &rerr) && rerr.Code == 404 { ... }
//
// Missing timeouts and response types come from the pkg/config keys
// req.tmo and req.type. Every rejection is also passed to the req.error
// hook, which only observes it.
//
// There are no retries. Callers that need them wrap the call themselves or
// add a Middleware.
package request
