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

// Package driver defines the execution abstraction the actor runtime
// schedules work on, together with three interchangeable implementations:
//
//   - Loop: a cooperative single-threaded event loop. Units of work
//     interleave but never run in parallel with one another.
//   - Pool: a sharded worker pool. Units of work for distinct actors run
//     genuinely concurrently.
//   - Goroutine: one goroutine per unit of work. The simplest baseline,
//     used as the reference implementation and in tests.
//
// The runtime core never assumes which implementation it is running on; all
// of its ordering and exclusion guarantees rest on the mailbox protocol
// alone. Any type satisfying Driver is pluggable without core changes.
package driver

import "context"

// Driver abstracts "run this unit of work somewhere".
type Driver interface {
	// Name returns the driver name for logs and diagnostics.
	Name() string

	// Start prepares the driver to accept work.
	Start() error

	// Submit hands a unit of work to the driver and returns immediately. The
	// unit of work executes at most once, at an unspecified future point, on
	// an unspecified worker context chosen by the driver. No ordering holds
	// between two Submit calls unless the caller enforces it externally.
	//
	// When the driver cannot accept more work it returns an error wrapping
	// gerrors.ErrDriverSaturated (or ErrDriverNotStarted/ErrDriverStopped);
	// it never blocks and never silently drops an accepted unit of work.
	Submit(task func()) error

	// Stop shuts the driver down, waiting for in-flight work until the
	// context expires. Work submitted concurrently with Stop may be rejected.
	Stop(ctx context.Context) error
}
