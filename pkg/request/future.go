package request

import (
	"context"
	"sync"

	"github.com/vango-dev/widgets/pkg/dom"
)

// Future is the pending outcome of a call. It settles exactly once, with a
// value or an error.
type Future struct {
	done chan struct{}
	loop *dom.Loop

	mu        sync.Mutex
	settled   bool
	value     any
	err       error
	callbacks []func(any, error)
}

func newFuture(loop *dom.Loop) *Future {
	return &Future{done: make(chan struct{}), loop: loop}
}

// settle records the outcome. Later calls are ignored.
func (f *Future) settle(v any, err error) bool {
	f.mu.Lock()
	if f.settled {
		f.mu.Unlock()
		return false
	}
	f.settled = true
	f.value, f.err = v, err
	callbacks := f.callbacks
	f.callbacks = nil
	close(f.done)
	f.mu.Unlock()

	for _, fn := range callbacks {
		f.deliver(fn)
	}
	return true
}

func (f *Future) deliver(fn func(any, error)) {
	v, err := f.value, f.err
	if f.loop != nil {
		if f.loop.TryPost(func() { fn(v, err) }) || !f.loop.Closed() {
			return
		}
	}
	fn(v, err)
}

// Done is closed once the future has settled.
func (f *Future) Done() <-chan struct{} { return f.done }

// Settled reports whether the outcome is known.
func (f *Future) Settled() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Result returns the outcome without waiting. Before the future settles it
// returns nil, nil; use Settled to tell the cases apart.
func (f *Future) Result() (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value, f.err
}

// Await blocks until the future settles or ctx is done.
func (f *Future) Await(ctx context.Context) (any, error) {
	select {
	case <-f.done:
		return f.Result()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Then registers fn to receive the outcome. With a loop, fn runs on the
// loop; without one it runs on the goroutine that settles the future, or
// immediately when the future has already settled.
func (f *Future) Then(fn func(v any, err error)) *Future {
	if fn == nil {
		return f
	}
	f.mu.Lock()
	if !f.settled {
		f.callbacks = append(f.callbacks, fn)
		f.mu.Unlock()
		return f
	}
	f.mu.Unlock()
	f.deliver(fn)
	return f
}
