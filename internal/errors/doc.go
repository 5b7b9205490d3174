// Package errors provides structured, coded errors for the widgets library.
//
// Every failure the library reports deliberately (as opposed to wrapping an
// I/O error from below) is created from a registered template so that it
// carries a stable code, a category and a short explanation:
//
//   - element: operations on element wrappers and the document tree
//   - request: the HTTP request helper
//   - script: the script loader
//   - page: frame and page navigation
//   - config: project configuration files
//   - cli: command line usage
//
// # Matching
//
// Two *Error values match under errors.Is when their codes are equal, so the
// package-level sentinels exported by other packages can be compared against
// errors that carry extra detail:
//
//	err := w.Insert(widget.BeforeBegin, other)
//	if errors.Is(err, widget.ErrNoParent) {
//	    ...
//	}
//
// # Usage
//
//	err := errors.New("W002").
//	    WithDetail("neither element is attached to a tree").
//	    WithSuggestion("Append one of the elements before inserting")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR W002: Insert failed, no parent
//	//
//	//   neither element is attached to a tree
//	//
//	//   Hint: Append one of the elements before inserting
package errors
