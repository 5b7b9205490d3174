package config

import (
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"
)

// Recognised configuration keys.
const (
	KeyRequestType    = "req.type"
	KeyRequestTimeout = "req.tmo"
	KeyRequestError   = "req.error"
)

// ErrorHook observes request failures. It is informational only.
type ErrorHook func(err error)

var (
	mu     sync.RWMutex
	values = defaults()
)

func defaults() map[string]any {
	return map[string]any{
		KeyRequestType:    "json",
		KeyRequestTimeout: 10000,
		KeyRequestError: ErrorHook(func(err error) {
			slog.Default().Error("Request failed", "error", err)
		}),
	}
}

// Get returns the value stored under name, or def when the key is unset.
func Get(name string, def any) any {
	if v, ok := Lookup(name); ok {
		return v
	}
	return def
}

// Lookup returns the value stored under name and whether it was set.
func Lookup(name string) (any, bool) {
	mu.RLock()
	defer mu.RUnlock()
	v, ok := values[name]
	return v, ok
}

// Set stores v under name. Storing nil keeps the key with a nil value, so
// later Get calls return nil rather than their default.
func Set(name string, v any) {
	mu.Lock()
	defer mu.Unlock()
	values[name] = v
}

// Delete removes name so later reads fall back to their defaults.
func Delete(name string) {
	mu.Lock()
	defer mu.Unlock()
	delete(values, name)
}

// Reset restores the built-in defaults and drops every other key.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	values = defaults()
}

// String returns the value under name rendered as a string.
func String(name, def string) string {
	v, ok := Lookup(name)
	if !ok || v == nil {
		return def
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Duration interprets the value under name as milliseconds. time.Duration
// values are returned as-is and numeric strings are parsed.
func Duration(name string, def time.Duration) time.Duration {
	v, ok := Lookup(name)
	if !ok || v == nil {
		return def
	}
	switch t := v.(type) {
	case time.Duration:
		return t
	case int:
		return time.Duration(t) * time.Millisecond
	case int64:
		return time.Duration(t) * time.Millisecond
	case float64:
		return time.Duration(t * float64(time.Millisecond))
	case string:
		if d, err := time.ParseDuration(t); err == nil {
			return d
		}
		if n, err := strconv.ParseFloat(t, 64); err == nil {
			return time.Duration(n * float64(time.Millisecond))
		}
	}
	return def
}

// Hook returns the request error observer, or nil if none is configured.
func Hook() ErrorHook {
	v, ok := Lookup(KeyRequestError)
	if !ok || v == nil {
		return nil
	}
	switch h := v.(type) {
	case ErrorHook:
		return h
	case func(error):
		return h
	}
	return nil
}
