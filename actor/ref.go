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

package actor

import (
	gerrors "github.com/spoolworks/spool/errors"
)

// ActorRef is the typed handle used to send messages to one actor. It is the
// only way callers interact with an actor: a ref can enqueue into the
// actor's mailbox but never touch its state.
//
// ActorRefs are lightweight values; copying one is cheap and every copy
// addresses the same mailbox. A ref may outlive its actor: sending through a
// ref whose actor has terminated reports gerrors.ErrDead and never panics.
type ActorRef[M any] struct {
	cell *cell[M]
}

// Tell enqueues the message and returns once it is queued, independent of
// whether or when it is handled. It never blocks and expects no reply.
//
// Errors: gerrors.ErrDead when the actor has been deregistered or has
// terminated, gerrors.ErrMailboxFull when a bounded mailbox is at capacity,
// and a gerrors.ErrDriverSaturated-wrapping error when the driver refused
// the dispatch pass. In the last case the message is queued and a later
// Tell retries the scheduling.
func (ref ActorRef[M]) Tell(message M) error {
	if ref.cell == nil {
		return gerrors.ErrDead
	}
	return ref.cell.push(message)
}

// ID returns the identity of the actor this ref addresses.
func (ref ActorRef[M]) ID() Identity {
	if ref.cell == nil {
		return 0
	}
	return ref.cell.identity()
}

// IsAlive reports whether the actor still accepts messages.
func (ref ActorRef[M]) IsAlive() bool {
	return ref.cell != nil && ref.cell.currentStatus() == StatusActive
}

// Status returns the actor's lifecycle status. A zero-value ref reports
// StatusStopped.
func (ref ActorRef[M]) Status() Status {
	if ref.cell == nil {
		return StatusStopped
	}
	return ref.cell.currentStatus()
}

// Equals reports whether both refs address the same actor.
func (ref ActorRef[M]) Equals(other ActorRef[M]) bool {
	return ref.ID() == other.ID()
}
