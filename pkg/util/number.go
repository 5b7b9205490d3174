package util

import (
	"math"
	"math/rand/v2"
)

// Rand returns a random number in [from, to). When fix is non-zero the
// result is rounded with Fix.
func Rand(from, to, fix float64) float64 {
	v := (to-from)*rand.Float64() + from
	if fix != 0 {
		return Fix(v, fix)
	}
	return v
}

// Fix rounds n to the precision 1/t, e.g. Fix(3.14159, 100) == 3.14.
func Fix(n, t float64) float64 {
	return math.Round(n*t) / t
}
