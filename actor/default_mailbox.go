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
	"sync"
	"sync/atomic"
)

// mailboxNode is a node of the default mailbox's MPSC queue.
type mailboxNode[M any] struct {
	next atomic.Pointer[mailboxNode[M]]
	data M
}

// DefaultMailbox is the default unbounded, lock-free mailbox.
//
// Concurrency model: Multi-Producer, Single-Consumer. Many goroutines may
// call Enqueue concurrently; the dispatch protocol guarantees a single
// active Dequeue caller.
//
// Characteristics:
//   - FIFO ordering across all producers.
//   - Lock-free via atomic pointer primitives: producers append by swapping
//     the tail and linking through the previous node.
//   - Nodes are reused through a sync.Pool to keep steady-state enqueues
//     allocation-free.
//   - Under contention IsEmpty can briefly report empty between the tail
//     swap and the link; no message is ever lost.
type DefaultMailbox[M any] struct {
	// separate cache lines to avoid false sharing between producers and consumer
	head  atomic.Pointer[mailboxNode[M]] // consumer only
	_pad1 [64]byte
	tail  atomic.Pointer[mailboxNode[M]] // producers only
	_pad2 [64]byte

	pool sync.Pool
}

// enforce compilation error when the interface contract changes
var _ Mailbox[any] = (*DefaultMailbox[any])(nil)

// NewDefaultMailbox creates and initializes a DefaultMailbox. The mailbox
// starts with a stub node shared by head and tail.
func NewDefaultMailbox[M any]() *DefaultMailbox[M] {
	m := &DefaultMailbox[M]{
		pool: sync.Pool{New: func() any { return new(mailboxNode[M]) }},
	}
	stub := m.pool.Get().(*mailboxNode[M])
	stub.next.Store(nil)
	m.head.Store(stub)
	m.tail.Store(stub)
	return m
}

// Enqueue places the given message in the mailbox. Never blocks and always
// returns nil. Safe for concurrent producers.
func (m *DefaultMailbox[M]) Enqueue(message M) error {
	n := m.pool.Get().(*mailboxNode[M])
	n.next.Store(nil)
	n.data = message

	prev := m.tail.Swap(n)
	prev.next.Store(n)
	return nil
}

// Dequeue removes and returns the message at the head of the mailbox. The
// second return value is false when the mailbox is empty. Must be called by
// a single consumer at a time.
func (m *DefaultMailbox[M]) Dequeue() (M, bool) {
	head := m.head.Load()
	next := head.next.Load()

	if next == nil {
		var zero M
		return zero, false
	}

	m.head.Store(next)
	message := next.data
	var zero M
	next.data = zero

	// recycle the old head
	head.next.Store(nil)
	m.pool.Put(head)
	return message, true
}

// IsEmpty reports whether the mailbox is empty. O(1) and safe under
// concurrent producers.
func (m *DefaultMailbox[M]) IsEmpty() bool {
	return m.head.Load().next.Load() == nil
}

// Len returns a best-effort snapshot of the number of pending messages via
// an O(n) traversal. Intended for diagnostics.
func (m *DefaultMailbox[M]) Len() int64 {
	var count int64
	n := m.head.Load().next.Load()
	for n != nil {
		count++
		n = n.next.Load()
	}
	return count
}

// Dispose releases resources if needed. No-op for this mailbox.
func (m *DefaultMailbox[M]) Dispose() {}
