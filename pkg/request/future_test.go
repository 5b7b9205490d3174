package request

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/vango-dev/widgets/pkg/dom"
)

func TestFutureSettlesOnce(t *testing.T) {
	f := newFuture(nil)
	if f.Settled() {
		t.Fatal("new future should be pending")
	}
	if v, err := f.Result(); v != nil || err != nil {
		t.Errorf("pending Result() = %v, %v", v, err)
	}

	var calls int
	f.Then(func(v any, err error) {
		calls++
		if v != "first" {
			t.Errorf("callback value = %v", v)
		}
	})

	if !f.settle("first", nil) {
		t.Error("first settle should win")
	}
	if f.settle("second", errors.New("late")) {
		t.Error("second settle should be ignored")
	}

	v, err := f.Await(context.Background())
	if v != "first" || err != nil {
		t.Errorf("Await() = %v, %v", v, err)
	}
	if calls != 1 {
		t.Errorf("callback calls = %d, want 1", calls)
	}

	f.Then(func(any, error) { calls++ })
	if calls != 2 {
		t.Error("Then after settling without a loop should run immediately")
	}
}

func TestFutureAwaitContext(t *testing.T) {
	f := newFuture(nil)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := f.Await(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Await() error = %v", err)
	}
	select {
	case <-f.Done():
		t.Error("Done should stay open")
	default:
	}
}

func TestErrorString(t *testing.T) {
	err := newError(404, "Not Found", nil)
	if got := err.Error(); got != "request failed (404): Not Found" {
		t.Errorf("Error() = %q", got)
	}
	inner := errors.New("dial")
	if !errors.Is(newError(0, "dial", inner), inner) {
		t.Error("Error should unwrap to the cause")
	}
}

func TestFutureThenOnStalledLoop(t *testing.T) {
	loop := dom.NewLoop(dom.WithQueueSize(1), dom.WithLoopLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	loop.Post(func() {})
	f := newFuture(loop)
	f.Then(func(any, error) {})

	settled := make(chan bool, 1)
	go func() { settled <- f.settle(1, nil) }()
	select {
	case ok := <-settled:
		if !ok {
			t.Error("settle() = false, want true")
		}
	case <-time.After(time.Second):
		t.Fatal("settle blocked on a full loop")
	}

	loop.Close()
	ran := false
	f.Then(func(v any, err error) { ran = v == 1 })
	if !ran {
		t.Error("Then on a closed loop should run inline")
	}
}
