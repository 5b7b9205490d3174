package util

import "regexp"

// splitPattern matches one token of a whitespace, comma or semicolon
// separated list.
var splitPattern = regexp.MustCompile(`[^ \t\r\n,;]+`)

// Split returns the tokens of a whitespace, comma or semicolon separated
// list. An empty string yields an empty, non-nil slice.
//
//	Split("a b,c;d") // ["a" "b" "c" "d"]
func Split(s string) []string {
	return SplitRegexp(s, nil)
}

// SplitRegexp returns every match of re in s. A nil re uses the default
// token pattern of Split.
func SplitRegexp(s string, re *regexp.Regexp) []string {
	if s == "" {
		return []string{}
	}
	if re == nil {
		re = splitPattern
	}
	out := re.FindAllString(s, -1)
	if out == nil {
		return []string{}
	}
	return out
}

// I2A returns v unchanged if it is already a []any, and a one-element slice
// holding v otherwise.
func I2A(v any) []any {
	if a, ok := v.([]any); ok {
		return a
	}
	return []any{v}
}
