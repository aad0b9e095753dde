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

// Package queue provides the lock-free queues used by the runtime.
package queue

import (
	"sync/atomic"
)

// mpscNode is a queue node.
type mpscNode[T any] struct {
	next atomic.Pointer[mpscNode[T]]
	data T
}

// MPSC is an unbounded Multi-Producer-Single-Consumer queue.
//
// Many goroutines may call Push concurrently, but exactly one goroutine must
// call Pop. FIFO ordering holds across all producers. Producers append by
// atomically swapping the tail and then linking through the previous node, so
// under contention IsEmpty can briefly report empty between the swap and the
// link; no element is ever lost.
type MPSC[T any] struct {
	head  atomic.Pointer[mpscNode[T]] // consumer only
	_pad1 [64]byte
	tail  atomic.Pointer[mpscNode[T]] // producers only
	_pad2 [64]byte
}

// NewMPSC creates an MPSC queue. The queue starts with a stub node shared by
// head and tail.
func NewMPSC[T any]() *MPSC[T] {
	stub := new(mpscNode[T])
	q := &MPSC[T]{}
	q.head.Store(stub)
	q.tail.Store(stub)
	return q
}

// Push appends the given value. Never blocks; safe for concurrent producers.
func (q *MPSC[T]) Push(value T) {
	n := &mpscNode[T]{data: value}
	prev := q.tail.Swap(n)
	prev.next.Store(n)
}

// Pop removes and returns the value at the front of the queue. The second
// return value is false when the queue is empty. Must be called by a single
// consumer goroutine.
func (q *MPSC[T]) Pop() (T, bool) {
	head := q.head.Load()
	next := head.next.Load()
	if next == nil {
		var zero T
		return zero, false
	}

	q.head.Store(next)
	value := next.data
	var zero T
	next.data = zero
	return value, true
}

// IsEmpty reports whether the queue currently has no elements. O(1) and safe
// under concurrent producers.
func (q *MPSC[T]) IsEmpty() bool {
	return q.head.Load().next.Load() == nil
}

// Len returns a best-effort snapshot of the queue length via an O(n)
// traversal. Intended for diagnostics only.
func (q *MPSC[T]) Len() int64 {
	var count int64
	n := q.head.Load().next.Load()
	for n != nil {
		count++
		n = n.next.Load()
	}
	return count
}
