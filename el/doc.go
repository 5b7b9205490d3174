// Package el is a small builder DSL over widgets.
//
// Each constructor takes a mixed argument list: Attr values configure the
// element, strings become text, widgets and nodes become children, slices
// are flattened and nil is skipped.
//
//	form := el.Form(
//	    el.ID("login"),
//	    el.Label(el.For("user"), "User"),
//	    el.Input(el.ID("user"), el.Name("user")),
//	    el.Button(el.Type("submit"), "Sign in", el.OnClick(submit)),
//	)
//
// Tags go through the default widget registry, so registered tags build
// their own widget types. Build into another document with In.
package el
