// Package async provides a minimal deferred-result type used to model
// operations that complete after a fixed delay.
package async

import (
	"context"
	"sync"
	"time"
)

// Timer schedules f to run once after d.
type Timer func(d time.Duration, f func())

// RealTimer runs f on its own goroutine via time.AfterFunc.
func RealTimer(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

// Pending is the eventual result of a deferred operation.
type Pending[T any] struct {
	once sync.Once
	done chan struct{}
	val  T
	err  error
}

// After runs fn once delay has elapsed on timer and resolves the returned
// Pending with its result. A non-positive delay runs fn before returning.
func After[T any](timer Timer, delay time.Duration, fn func() (T, error)) *Pending[T] {
	p := newPending[T]()
	if delay <= 0 {
		p.resolve(fn())
		return p
	}
	timer(delay, func() { p.resolve(fn()) })
	return p
}

// Resolved returns a Pending that is already complete.
func Resolved[T any](val T, err error) *Pending[T] {
	p := newPending[T]()
	p.resolve(val, err)
	return p
}

func newPending[T any]() *Pending[T] {
	return &Pending[T]{done: make(chan struct{})}
}

func (p *Pending[T]) resolve(val T, err error) {
	p.once.Do(func() {
		p.val, p.err = val, err
		close(p.done)
	})
}

// Done is closed once the result is available.
func (p *Pending[T]) Done() <-chan struct{} {
	return p.done
}

// Ready reports whether the operation has completed.
func (p *Pending[T]) Ready() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// Wait blocks until the result is available or ctx is done.
// Giving up on the wait does not stop the operation.
func (p *Pending[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-p.done:
		return p.val, p.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
