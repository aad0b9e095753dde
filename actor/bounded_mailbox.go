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
	"fmt"

	gods "github.com/Workiva/go-datastructures/queue"

	gerrors "github.com/spoolworks/spool/errors"
)

// BoundedMailbox is a bounded MPSC mailbox backed by a ring buffer.
//
// Characteristics
//   - Fixed capacity. Enqueue never blocks: when the mailbox is at capacity
//     it returns gerrors.ErrMailboxFull and the sender decides what to do,
//     which keeps the fire-and-forget send contract intact.
//   - Safe for multiple producers and the runtime's single active consumer.
//   - FIFO ordering.
//
// Use this mailbox when an actor must not accumulate unbounded backlog.
type BoundedMailbox[M any] struct {
	underlying *gods.RingBuffer
}

var _ Mailbox[any] = (*BoundedMailbox[any])(nil)

// NewBoundedMailbox creates a bounded mailbox with the given capacity.
// Capacity must be a positive integer.
func NewBoundedMailbox[M any](capacity int) (*BoundedMailbox[M], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("capacity=%d: %w", capacity, gerrors.ErrInvalidCapacity)
	}
	return &BoundedMailbox[M]{
		underlying: gods.NewRingBuffer(uint64(capacity)),
	}, nil
}

// Enqueue inserts a message into the mailbox. Returns
// gerrors.ErrMailboxFull when the mailbox is at capacity and an error when
// the mailbox has been disposed. Never blocks.
func (m *BoundedMailbox[M]) Enqueue(message M) error {
	queued, err := m.underlying.Offer(message)
	if err != nil {
		return err
	}
	if !queued {
		return gerrors.ErrMailboxFull
	}
	return nil
}

// Dequeue removes and returns the next message. The second return value is
// false when the mailbox is empty. Intended for the single active consumer:
// with no competing consumers the length check below cannot race with
// another removal, so Get never blocks here.
func (m *BoundedMailbox[M]) Dequeue() (M, bool) {
	var zero M
	if m.underlying.Len() == 0 {
		return zero, false
	}
	item, err := m.underlying.Get()
	if err != nil {
		return zero, false
	}
	message, ok := item.(M)
	if !ok {
		return zero, false
	}
	return message, true
}

// IsEmpty reports whether the mailbox currently has no messages.
func (m *BoundedMailbox[M]) IsEmpty() bool {
	return m.underlying.Len() == 0
}

// Len returns the current number of messages in the mailbox.
func (m *BoundedMailbox[M]) Len() int64 {
	return int64(m.underlying.Len())
}

// Cap returns the mailbox capacity.
func (m *BoundedMailbox[M]) Cap() int64 {
	return int64(m.underlying.Cap())
}

// Dispose releases the underlying ring buffer and unblocks any internal
// waiters it maintains. Do not use the mailbox after calling Dispose.
func (m *BoundedMailbox[M]) Dispose() {
	m.underlying.Dispose()
}
