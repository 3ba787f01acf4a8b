package timeaux

import (
	"context"
	"sync"
	"sync/atomic"
)

// Initializer performs some one-time setup.
type Initializer interface {
	// Initialize performs the initialization.  Implementations that block must honor
	// the context's cancellation.
	Initialize(context.Context) error
}

// Initializable is an Initializer that can report whether it has been initialized.
type Initializable interface {
	Initializer

	// IsInitialized tests if Initialize has completed successfully
	IsInitialized() bool
}

// InitializerFunc is a function type that implements Initializer
type InitializerFunc func(context.Context) error

// Initialize invokes this function
func (f InitializerFunc) Initialize(ctx context.Context) error {
	return f(ctx)
}

var _ Initializer = InitializerFunc(nil)

// once decorates an Initializer so that it runs to success at most once
type once struct {
	lock        sync.Mutex
	initialized atomic.Bool
	next        Initializer
}

// Once decorates an Initializer so that the returned Initializable runs next
// until it succeeds exactly once.  Concurrent calls to Initialize are serialized,
// failed attempts may be retried, and calls after a success do nothing.
//
// If next is nil, this function panics.
func Once(next Initializer) Initializable {
	if next == nil {
		panic("timeaux.Once: the Initializer cannot be nil")
	}

	return &once{
		next: next,
	}
}

func (o *once) IsInitialized() bool {
	return o.initialized.Load()
}

func (o *once) Initialize(ctx context.Context) error {
	if o.initialized.Load() {
		return nil
	}

	defer o.lock.Unlock()
	o.lock.Lock()
	if o.initialized.Load() {
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	err := o.next.Initialize(ctx)
	if err == nil {
		o.initialized.Store(true)
	}

	return err
}
