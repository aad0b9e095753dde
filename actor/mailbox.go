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

// Mailbox defines the contract for an actor's message queue.
//
// Concurrency and ordering
//   - Implementations MUST be safe for multiple concurrent producers calling
//     Enqueue.
//   - The runtime consumes from a single dispatch pass at a time, so
//     implementations SHOULD optimize Dequeue for a single consumer (MPSC).
//   - FIFO ordering is the default expectation and what the runtime's
//     per-actor ordering guarantee rests on.
//
// Non-blocking behavior
//   - Enqueue MUST NOT block. Bounded implementations return
//     gerrors.ErrMailboxFull when at capacity instead of blocking; unbounded
//     implementations always return nil.
//   - Dequeue MUST NOT block; the second return value is false when the
//     mailbox is empty.
//
// Memory visibility
//   - Writes performed by producers before Enqueue must be visible to the
//     consumer after Dequeue.
type Mailbox[M any] interface {
	// Enqueue pushes a message into the mailbox.
	Enqueue(message M) error
	// Dequeue fetches the next message. Returns false when the mailbox is
	// empty. Called by a single consumer at a time.
	Dequeue() (M, bool)
	// IsEmpty reports whether the mailbox currently has no messages. Must be
	// an O(1) best-effort snapshot safe under concurrency.
	IsEmpty() bool
	// Len returns a snapshot of the number of messages in the mailbox. May
	// be approximate under concurrency; intended for diagnostics.
	Len() int64
	// Dispose releases any resources held by the mailbox. The mailbox must
	// not be used after Dispose returns.
	Dispose()
}
