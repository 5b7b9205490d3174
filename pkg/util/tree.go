package util

// Walk visits an array-based tree parent first. For each item fn receives
// the value produced for its parent and returns the value handed to the
// item's own children; returning descend=false skips them.
func Walk[P, T any](parent P, items []T, children func(T) []T, fn func(parent P, item T) (sub P, descend bool)) {
	for _, item := range items {
		sub, descend := fn(parent, item)
		if !descend {
			continue
		}
		if kids := children(item); len(kids) > 0 {
			Walk(sub, kids, children, fn)
		}
	}
}

// Find returns the first item, in depth-first pre-order, for which match
// reports true.
func Find[T any](items []T, children func(T) []T, match func(T) bool) (T, bool) {
	for _, item := range items {
		if match(item) {
			return item, true
		}
		if kids := children(item); len(kids) > 0 {
			if found, ok := Find(kids, children, match); ok {
				return found, true
			}
		}
	}
	var zero T
	return zero, false
}
