package dom

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// DefaultQueueSize is the number of tasks a loop buffers before Post blocks.
const DefaultQueueSize = 256

// Loop runs posted tasks one at a time, in the order they were posted.
type Loop struct {
	tasks     chan func()
	done      chan struct{}
	closeOnce sync.Once
	logger    *slog.Logger
}

// LoopOption configures a Loop.
type LoopOption func(*loopConfig)

type loopConfig struct {
	size   int
	logger *slog.Logger
}

// WithQueueSize sets the task buffer size.
func WithQueueSize(n int) LoopOption {
	return func(c *loopConfig) {
		if n > 0 {
			c.size = n
		}
	}
}

// WithLoopLogger sets the logger used to report panicking tasks.
func WithLoopLogger(logger *slog.Logger) LoopOption {
	return func(c *loopConfig) {
		c.logger = logger
	}
}

// NewLoop returns a loop that is not yet running.
func NewLoop(opts ...LoopOption) *Loop {
	cfg := loopConfig{size: DefaultQueueSize, logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Loop{
		tasks:  make(chan func(), cfg.size),
		done:   make(chan struct{}),
		logger: cfg.logger,
	}
}

// Post queues fn. It returns false if the loop has been closed.
func (l *Loop) Post(fn func()) bool {
	if fn == nil {
		return false
	}
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case <-l.done:
		return false
	case l.tasks <- fn:
		return true
	}
}

// TryPost queues fn without blocking. When the queue is full the task is
// dropped and logged. It returns false if fn was not queued.
func (l *Loop) TryPost(fn func()) bool {
	if fn == nil {
		return false
	}
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.tasks <- fn:
		return true
	default:
		l.logger.Warn("loop queue full, task dropped", "size", cap(l.tasks))
		return false
	}
}

// After posts fn once d has elapsed. The returned timer can stop it before
// it is posted. A loop nobody runs fills up; further tasks are dropped.
func (l *Loop) After(d time.Duration, fn func()) *time.Timer {
	if d < 0 {
		d = 0
	}
	return time.AfterFunc(d, func() {
		l.TryPost(fn)
	})
}

// Run executes tasks until ctx is done or the loop is closed.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.done:
			return nil
		case fn := <-l.tasks:
			l.exec(fn)
		}
	}
}

// RunPending executes the tasks already queued without waiting for more and
// returns how many ran. It lets a caller that owns the loop goroutine pump
// it between its own steps.
func (l *Loop) RunPending() int {
	n := 0
	for {
		select {
		case fn := <-l.tasks:
			l.exec(fn)
			n++
		default:
			return n
		}
	}
}

// Close stops the loop. Queued tasks that have not started are dropped.
func (l *Loop) Close() {
	l.closeOnce.Do(func() {
		close(l.done)
	})
}

// Closed reports whether Close has been called.
func (l *Loop) Closed() bool {
	select {
	case <-l.done:
		return true
	default:
		return false
	}
}

func (l *Loop) exec(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("loop task panicked", "panic", fmt.Sprint(r))
		}
	}()
	fn()
}
