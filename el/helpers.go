package el

import "github.com/vango-dev/widgets/pkg/widget"

// If returns args when cond holds, nil otherwise.
func If(cond bool, args ...any) any {
	if !cond {
		return nil
	}
	return args
}

// IfElse picks one of two arguments.
func IfElse(cond bool, yes, no any) any {
	if cond {
		return yes
	}
	return no
}

// Range maps items to children.
func Range[T any](items []T, fn func(item T, index int) *widget.Widget) []*widget.Widget {
	out := make([]*widget.Widget, 0, len(items))
	for i, item := range items {
		if w := fn(item, i); w != nil {
			out = append(out, w)
		}
	}
	return out
}

// Repeat builds n children.
func Repeat(n int, fn func(i int) *widget.Widget) []*widget.Widget {
	out := make([]*widget.Widget, 0, max(n, 0))
	for i := 0; i < n; i++ {
		if w := fn(i); w != nil {
			out = append(out, w)
		}
	}
	return out
}
