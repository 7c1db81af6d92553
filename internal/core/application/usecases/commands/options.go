package commands

import (
	"context"
	"time"
)

// Observer receives the outcome of every handled command.
type Observer interface {
	ObserveCommand(name string, elapsed time.Duration, err error)
}

type nopObserver struct{}

func (nopObserver) ObserveCommand(string, time.Duration, error) {}

// Option customises a command handler.
type Option func(*handlerOptions)

type handlerOptions struct {
	timeout  time.Duration
	now      func() time.Time
	observer Observer
}

// WithTimeout bounds the whole unit of work. Zero keeps the caller's deadline.
func WithTimeout(d time.Duration) Option {
	return func(o *handlerOptions) {
		o.timeout = d
	}
}

// WithClock replaces time.Now for creation and completion timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *handlerOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// WithObserver reports each command's duration and outcome.
func WithObserver(observer Observer) Option {
	return func(o *handlerOptions) {
		if observer != nil {
			o.observer = observer
		}
	}
}

func newHandlerOptions(opts []Option) handlerOptions {
	o := handlerOptions{
		now:      time.Now,
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o handlerOptions) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if o.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, o.timeout)
}

// observe is deferred by handlers with a pointer to their named error result.
func (o handlerOptions) observe(name string, started time.Time, err *error) {
	o.observer.ObserveCommand(name, time.Since(started), *err)
}
