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

// Package actor implements a local actor runtime: isolated units of state
// that process messages one at a time, scheduled onto a pluggable execution
// driver.
//
// Each actor owns a mailbox. Senders enqueue through a typed ActorRef and the
// runtime guarantees that no two messages for the same actor are ever handled
// concurrently, while different actors run in parallel when the driver allows
// it. Message handling order equals enqueue order per mailbox; no ordering
// holds across mailboxes.
package actor

import (
	"context"
)

// Actor is the capability a user-supplied type implements. The runtime
// invokes Receive exclusively: for a given actor instance, at most one
// Receive call is in flight at any instant, so the implementing struct may
// keep plain mutable fields without synchronization.
//
// Side effects are permitted inside Receive, but interaction with other
// actors must go through ActorRefs obtained from the system, never by
// reaching into another actor's internals. Any state shared outside the
// actor is the user's responsibility and outside the exclusion guarantee.
type Actor[M any] interface {
	// PreStart runs once, synchronously, while the actor is being spawned and
	// before any message is handled. A non-nil error aborts the spawn.
	PreStart(ctx context.Context) error

	// Receive handles the next message from the mailbox. Returning
	// gerrors.ErrStopRequested stops the actor gracefully after this
	// message. Any other non-nil error goes through the configured fault
	// policy: isolated and logged by default, or stopping this actor when
	// the policy says so. A fault never affects other actors' mailboxes or
	// the registry.
	Receive(ctx context.Context, message M) error

	// PostStop runs exactly once when the actor terminates, whether it was
	// deregistered, stopped itself, or crashed.
	PostStop(ctx context.Context) error
}
