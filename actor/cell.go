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
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	uberatomic "go.uber.org/atomic"

	"github.com/spoolworks/spool/driver"
	gerrors "github.com/spoolworks/spool/errors"
	"github.com/spoolworks/spool/eventstream"
	"github.com/spoolworks/spool/log"
)

// dispatch flag values
const (
	// flagIdle means no dispatch pass is scheduled or running.
	flagIdle int32 = iota
	// flagScheduled means a dispatch pass has been submitted to the driver
	// or is currently draining the mailbox.
	flagScheduled
)

// anyCell is the registry's type-erased view of a cell.
type anyCell interface {
	identity() Identity
	// deactivate refuses new sends and lets the mailbox drain before the
	// cell finalizes.
	deactivate()
	// discard refuses new sends and finalizes without handling pending
	// messages.
	discard()
	// done is closed once the cell has fully terminated.
	done() <-chan struct{}
	currentStatus() Status
	mailboxSize() int64
}

// cell owns one actor's state and mailbox. It is the unit the driver
// schedules and is never exposed to callers; every interaction goes through
// the registry or an ActorRef.
//
// The scheduling flag is the sole mutual-exclusion mechanism for the actor's
// state: exactly one party wins the idle-to-scheduled transition, so exactly
// one dispatch pass drains the mailbox at a time. Correctness does not
// depend on which driver executes the pass.
type cell[M any] struct {
	id      Identity
	actor   Actor[M]
	mailbox Mailbox[M]
	driver  driver.Driver
	logger  log.Logger
	stream  eventstream.Stream
	remove  func(Identity)

	// dispatch flag, stdlib atomic on the hot path
	processing atomic.Int32

	status      *uberatomic.Int32
	reason      *uberatomic.Error
	discarding  *uberatomic.Bool
	processed   *uberatomic.Int64
	throughput  int
	faultPolicy FaultPolicy

	actorCtx     context.Context
	finalizeOnce sync.Once
	doneCh       chan struct{}
}

var _ anyCell = (*cell[any])(nil)

func newCell[M any](
	id Identity,
	actor Actor[M],
	config *spawnConfig[M],
	drv driver.Driver,
	logger log.Logger,
	stream eventstream.Stream,
	actorCtx context.Context,
	remove func(Identity),
) *cell[M] {
	return &cell[M]{
		id:          id,
		actor:       actor,
		mailbox:     config.mailbox,
		driver:      drv,
		logger:      logger,
		stream:      stream,
		remove:      remove,
		status:      uberatomic.NewInt32(int32(StatusActive)),
		reason:      uberatomic.NewError(nil),
		discarding:  uberatomic.NewBool(false),
		processed:   uberatomic.NewInt64(0),
		throughput:  config.throughput,
		faultPolicy: config.faultPolicy,
		actorCtx:    actorCtx,
		doneCh:      make(chan struct{}),
	}
}

func (c *cell[M]) identity() Identity {
	return c.id
}

func (c *cell[M]) currentStatus() Status {
	return Status(c.status.Load())
}

func (c *cell[M]) mailboxSize() int64 {
	return c.mailbox.Len()
}

func (c *cell[M]) done() <-chan struct{} {
	return c.doneCh
}

// push enqueues a message and schedules a dispatch pass if the mailbox was
// idle. Called by ActorRef.Tell from any goroutine.
func (c *cell[M]) push(message M) error {
	if c.currentStatus() != StatusActive {
		return fmt.Errorf("actor=%s: %w", c.id, gerrors.ErrDead)
	}
	if err := c.mailbox.Enqueue(message); err != nil {
		return fmt.Errorf("actor=%s: %w", c.id, err)
	}
	// a deactivation racing the first check may already have drained the
	// mailbox for the last time; once the actor has left Active the send
	// reports ErrDead rather than acknowledging a message that might never
	// be handled
	if c.currentStatus() != StatusActive {
		return fmt.Errorf("actor=%s: %w", c.id, gerrors.ErrDead)
	}
	return c.schedule()
}

// schedule submits a dispatch pass to the driver if none is scheduled or
// running. Only the caller that wins the idle-to-scheduled transition
// submits; everyone else piggybacks on the pending pass. When the driver
// rejects the pass the flag is rolled back so a later send retries
// scheduling; a scheduled-but-unsubmitted dispatch is never silently kept.
func (c *cell[M]) schedule() error {
	if !c.processing.CompareAndSwap(flagIdle, flagScheduled) {
		return nil
	}
	if err := c.driver.Submit(c.run); err != nil {
		c.processing.Store(flagIdle)
		return fmt.Errorf("actor=%s: %w", c.id, err)
	}
	return nil
}

// run is one dispatch pass: it drains the mailbox exclusively, up to the
// cell's throughput, then either resubmits itself (messages remain), parks
// the mailbox back to idle (empty), or finalizes the cell (terminating).
//
// The pass must not miss a message enqueued between its emptiness check and
// the idle transition: the flag is cleared first and the mailbox re-checked
// afterwards, and the sender-side enqueue happens before its own
// idle-to-scheduled attempt. Whichever side observes the other's write wins
// the transition, so either this pass resumes or the sender schedules a new
// one.
func (c *cell[M]) run() {
	handled := 0
	for {
		switch c.currentStatus() {
		case StatusStopped, StatusCrashed:
			// stopped mid-stream: drop whatever remains
			c.finalize()
			return
		case StatusDeactivating:
			if c.discarding.Load() || c.mailbox.IsEmpty() {
				c.finalize()
				return
			}
		}

		if handled < c.throughput {
			if message, ok := c.mailbox.Dequeue(); ok {
				c.invoke(message)
				handled++
				continue
			}
		}

		c.processing.Store(flagIdle)

		if !c.mailbox.IsEmpty() {
			// messages raced in (or the batch is exhausted): hand the
			// mailbox to a fresh pass unless a sender beat us to it
			if !c.processing.CompareAndSwap(flagIdle, flagScheduled) {
				return
			}
			if err := c.driver.Submit(c.run); err != nil {
				c.processing.Store(flagIdle)
				c.logger.Warnf("actor=%s dispatch resubmission rejected: %v", c.id, err)
			}
			return
		}

		if c.currentStatus() != StatusActive {
			// deactivated with an empty mailbox: reacquire the flag and
			// finalize on this pass, otherwise the pass that owns it will
			if c.processing.CompareAndSwap(flagIdle, flagScheduled) {
				c.finalize()
			}
			return
		}
		return
	}
}

// invoke runs the handler for one message, routing faults through the
// configured policy.
func (c *cell[M]) invoke(message M) {
	defer c.recovery()
	err := c.actor.Receive(c.actorCtx, message)
	c.processed.Inc()
	if err != nil {
		c.handleFault(err)
	}
}

// recovery turns a handler panic into a fault so one panicking actor cannot
// take down the scheduler or other actors.
func (c *cell[M]) recovery() {
	if r := recover(); r != nil {
		c.handleFault(gerrors.NewPanicError(fmt.Errorf("%v", r)))
	}
}

func (c *cell[M]) handleFault(err error) {
	if errors.Is(err, gerrors.ErrStopRequested) {
		c.status.CompareAndSwap(int32(StatusActive), int32(StatusStopped))
		return
	}

	switch c.faultPolicy {
	case FaultStop:
		c.reason.Store(err)
		c.status.Store(int32(StatusCrashed))
		c.logger.Errorf("actor=%s stopped by fault policy: %v", c.id, err)
	default:
		c.logger.Warnf("actor=%s fault isolated: %v", c.id, err)
	}
}

// deactivate marks the cell for removal. In-flight dispatch finishes
// normally and pending messages drain; new sends fail with ErrDead. If the
// mailbox is already idle a dispatch pass is kicked so the cell finalizes
// promptly instead of waiting for a send that will never come.
func (c *cell[M]) deactivate() {
	if !c.status.CompareAndSwap(int32(StatusActive), int32(StatusDeactivating)) {
		return
	}
	c.kick()
}

// discard is deactivation without the drain: pending messages are dropped.
// Used by system shutdown under DiscardMailboxes.
func (c *cell[M]) discard() {
	c.discarding.Store(true)
	if !c.status.CompareAndSwap(int32(StatusActive), int32(StatusDeactivating)) {
		c.kick()
		return
	}
	c.kick()
}

// kick schedules a dispatch pass so a quiescent cell observes its new
// status. If a pass already owns the flag it will observe the status itself;
// if the driver refuses the pass, finalize inline as a last resort.
func (c *cell[M]) kick() {
	if !c.processing.CompareAndSwap(flagIdle, flagScheduled) {
		return
	}
	if err := c.driver.Submit(c.run); err != nil {
		c.finalize()
	}
}

// finalize tears the cell down exactly once: PostStop, mailbox disposal,
// registry removal and the Terminated broadcast. Callers must own the
// scheduling flag, which stays parked at scheduled so no further dispatch
// pass can start.
func (c *cell[M]) finalize() {
	c.finalizeOnce.Do(func() {
		c.status.CompareAndSwap(int32(StatusDeactivating), int32(StatusStopped))

		if err := c.actor.PostStop(c.actorCtx); err != nil {
			c.logger.Warnf("actor=%s postStop failed: %v", c.id, err)
		}

		c.mailbox.Dispose()
		c.remove(c.id)

		event := &Terminated{ID: c.id, Reason: c.reason.Load()}
		c.stream.Broadcast(event, []string{TerminationTopic, terminationTopic(c.id)})

		close(c.doneCh)
	})
}
