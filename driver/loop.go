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
	"runtime"

	uberatomic "go.uber.org/atomic"

	gerrors "github.com/spoolworks/spool/errors"
	"github.com/spoolworks/spool/internal/queue"
)

// Loop is a cooperative single-threaded event-loop driver. All units of work
// run on one goroutine in submission order; a unit of work that blocks stalls
// every actor on the loop, which is a documented constraint on the actors run
// under it, not something the runtime can enforce.
type Loop struct {
	tasks      *queue.MPSC[func()]
	wakeCh     chan struct{}
	doneCh     chan struct{}
	started    *uberatomic.Bool
	stopped    *uberatomic.Bool
	submitting *uberatomic.Int64
}

var _ Driver = (*Loop)(nil)

// NewLoop creates an event-loop driver.
func NewLoop() *Loop {
	return &Loop{
		tasks:      queue.NewMPSC[func()](),
		wakeCh:     make(chan struct{}, 1),
		doneCh:     make(chan struct{}),
		started:    uberatomic.NewBool(false),
		stopped:    uberatomic.NewBool(false),
		submitting: uberatomic.NewInt64(0),
	}
}

// Name returns the driver name.
func (l *Loop) Name() string {
	return "event-loop"
}

// Start spins up the loop goroutine. Calling Start more than once is a no-op.
func (l *Loop) Start() error {
	if !l.started.CompareAndSwap(false, true) {
		return nil
	}
	go l.run()
	return nil
}

// Submit appends the unit of work to the loop's queue and wakes the loop.
// An accepted unit of work is queued ahead of the shutdown sentinel and is
// always executed; a submit that loses the race against Stop is rejected.
func (l *Loop) Submit(task func()) error {
	if !l.started.Load() {
		return fmt.Errorf("%s driver: %w", l.Name(), gerrors.ErrDriverNotStarted)
	}

	l.submitting.Inc()
	if l.stopped.Load() {
		l.submitting.Dec()
		return fmt.Errorf("%s driver: %w", l.Name(), gerrors.ErrDriverStopped)
	}
	l.tasks.Push(task)
	l.submitting.Dec()

	// non-blocking wake; a pending wake already covers this task
	select {
	case l.wakeCh <- struct{}{}:
	default:
	}
	return nil
}

// Stop stops the loop after it has drained the work accepted so far. It
// waits for the loop goroutine to exit until the context expires.
func (l *Loop) Stop(ctx context.Context) error {
	if !l.started.Load() {
		return nil
	}
	if l.stopped.CompareAndSwap(false, true) {
		// submitters that passed the stopped check must land their push
		// before the sentinel goes in behind them
		for l.submitting.Load() > 0 {
			runtime.Gosched()
		}
		l.tasks.Push(nil)
		select {
		case l.wakeCh <- struct{}{}:
		default:
		}
	}

	select {
	case <-l.doneCh:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *Loop) run() {
	defer close(l.doneCh)
	for {
		if !l.drain() {
			return
		}
		<-l.wakeCh
	}
}

// drain runs queued work in order. It reports false once it pops the nil
// shutdown sentinel, at which point everything accepted before the stop has
// been executed.
func (l *Loop) drain() bool {
	for {
		task, ok := l.tasks.Pop()
		if !ok {
			return true
		}
		if task == nil {
			return false
		}
		task()
	}
}
