// Package util holds small general-purpose helpers used across widgets:
// token splitting, deep copies, path access into nested maps and slices,
// array-tree walking, id generation and number rounding.
package util
