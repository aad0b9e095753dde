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

package driver

import (
	"context"
	"fmt"
	"sync"

	uberatomic "go.uber.org/atomic"

	gerrors "github.com/spoolworks/spool/errors"
)

// Goroutine is the baseline driver: every unit of work gets its own
// goroutine. Least efficient, hardest to get wrong; the reference
// implementation the other drivers are tested against.
type Goroutine struct {
	wg      sync.WaitGroup
	started *uberatomic.Bool
	stopped *uberatomic.Bool
}

var _ Driver = (*Goroutine)(nil)

// NewGoroutine creates a goroutine-per-task driver.
func NewGoroutine() *Goroutine {
	return &Goroutine{
		started: uberatomic.NewBool(false),
		stopped: uberatomic.NewBool(false),
	}
}

// Name returns the driver name.
func (g *Goroutine) Name() string {
	return "goroutine"
}

// Start marks the driver ready.
func (g *Goroutine) Start() error {
	g.started.Store(true)
	return nil
}

// Submit runs the unit of work on a fresh goroutine.
func (g *Goroutine) Submit(task func()) error {
	if !g.started.Load() {
		return fmt.Errorf("%s driver: %w", g.Name(), gerrors.ErrDriverNotStarted)
	}
	if g.stopped.Load() {
		return fmt.Errorf("%s driver: %w", g.Name(), gerrors.ErrDriverStopped)
	}

	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		task()
	}()
	return nil
}

// Stop rejects further work and waits for in-flight goroutines until the
// context expires.
func (g *Goroutine) Stop(ctx context.Context) error {
	if !g.started.Load() {
		return nil
	}
	g.stopped.Store(true)

	done := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
