// Package config holds the process-wide configuration map consulted by the
// request helper and other components at call time.
//
// Recognised keys:
//
//	req.type   default response interpretation ("json")
//	req.tmo    default request timeout in milliseconds (10000)
//	req.error  default request error observer, a func(error)
//
// Values are read when an operation starts, so a Set only affects calls made
// after it returns.
package config
