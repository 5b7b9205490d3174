// Package script loads external scripts into a document.
//
// A Loader appends one <script type="text/javascript" src="..."> element to
// the document head per distinct URL and verifies that each source can be
// fetched. A URL is only ever requested once per Loader, even if the first
// attempt failed:
//
//	errs := script.Load(ctx, "https://cdn.example.com/chart.js", "s3://assets/app.js")
//	if len(errs) > 0 {
//	    // at least one script could not be loaded
//	}
//
// Once a source has been fetched the loader dispatches "load" on its script
// element, or "error" with the failure as detail.
package script
