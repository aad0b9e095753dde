// MIT License
//
// Copyright (c) 2023-2026 Spoolworks
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package errors defines the error values shared across the runtime.
//
// Callers are expected to test against the sentinel values with errors.Is
// since operations may wrap them with additional context.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrDead indicates that the targeted actor has been deregistered or has
	// otherwise terminated. Sending through a stale ActorRef reports this
	// error; it never panics and never enqueues into a disposed mailbox.
	ErrDead = errors.New("actor is not alive")

	// ErrActorNotFound indicates that the given identity is unknown to the
	// actor system registry.
	ErrActorNotFound = errors.New("actor not found")

	// ErrSystemNotStarted indicates that the actor system has not been
	// started before use.
	ErrSystemNotStarted = errors.New("actor system is not running")

	// ErrSystemStopping is returned by operations attempted while the actor
	// system is shutting down.
	ErrSystemStopping = errors.New("actor system is shutting down")

	// ErrStopRequested is the sentinel a message handler returns to stop its
	// own actor gracefully once the current message has been handled. It is
	// not a failure: pending messages are drained and PostStop runs normally.
	ErrStopRequested = errors.New("actor requested graceful stop")

	// ErrMailboxFull is returned by a bounded mailbox when it is at capacity.
	// The message is not enqueued; the sender decides whether to retry.
	ErrMailboxFull = errors.New("mailbox is full")

	// ErrDriverNotStarted indicates that a unit of work was submitted to a
	// driver before Start was called.
	ErrDriverNotStarted = errors.New("driver is not started")

	// ErrDriverStopped indicates that a unit of work was submitted to a
	// driver that has been stopped.
	ErrDriverStopped = errors.New("driver is stopped")

	// ErrDriverSaturated indicates that the driver cannot accept more work at
	// this time. The mailbox scheduling flag is rolled back when this occurs
	// so that a later send retries scheduling.
	ErrDriverSaturated = errors.New("driver is saturated")

	// ErrNameRequired is returned when an actor system is created with an
	// empty name.
	ErrNameRequired = errors.New("actor system name is required")

	// ErrDriverRequired is returned when an actor system is created without
	// an execution driver.
	ErrDriverRequired = errors.New("execution driver is required")

	// ErrInvalidCapacity is returned when a bounded mailbox is created with a
	// non-positive capacity.
	ErrInvalidCapacity = errors.New("mailbox capacity must be positive")

	// ErrInitFailure is returned when an actor's PreStart hook fails during
	// registration.
	ErrInitFailure = errors.New("preStart failed")
)

// PanicError wraps a panic recovered inside an actor's message handler so it
// can travel through the fault policy as a regular error.
type PanicError struct {
	err error
}

var _ error = (*PanicError)(nil)

// NewPanicError creates an instance of PanicError.
func NewPanicError(err error) *PanicError {
	return &PanicError{err}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.err)
}

func (e *PanicError) Unwrap() error {
	return e.err
}
