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

// Status describes the lifecycle state of an actor.
type Status int32

const (
	// StatusActive means the actor is registered and accepting messages.
	StatusActive Status = iota
	// StatusDeactivating means the actor has been deregistered: new sends
	// are refused while already-enqueued messages finish draining.
	StatusDeactivating
	// StatusStopped means the actor terminated cleanly, either through
	// deregistration or a graceful self-stop.
	StatusStopped
	// StatusCrashed means the actor was stopped by the fault policy after a
	// handler error or panic.
	StatusCrashed
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusDeactivating:
		return "deactivating"
	case StatusStopped:
		return "stopped"
	case StatusCrashed:
		return "crashed"
	default:
		return "unknown"
	}
}
