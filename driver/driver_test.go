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
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	uberatomic "go.uber.org/atomic"
	"go.uber.org/goleak"

	gerrors "github.com/spoolworks/spool/errors"
)

func drivers() map[string]func() Driver {
	return map[string]func() Driver{
		"loop":      func() Driver { return NewLoop() },
		"pool":      func() Driver { return NewPool(WithIdleWorkerLifetime(10 * time.Millisecond)) },
		"goroutine": func() Driver { return NewGoroutine() },
	}
}

func TestSubmitBeforeStart(t *testing.T) {
	for name, newDriver := range drivers() {
		t.Run(name, func(t *testing.T) {
			d := newDriver()
			err := d.Submit(func() {})
			require.ErrorIs(t, err, gerrors.ErrDriverNotStarted)
		})
	}
}

func TestSubmitRunsEveryTask(t *testing.T) {
	defer goleak.VerifyNone(t)

	for name, newDriver := range drivers() {
		t.Run(name, func(t *testing.T) {
			d := newDriver()
			require.NoError(t, d.Start())

			const tasks = 500
			counter := uberatomic.NewInt64(0)
			var wg sync.WaitGroup
			wg.Add(tasks)
			for range tasks {
				require.NoError(t, d.Submit(func() {
					counter.Inc()
					wg.Done()
				}))
			}
			wg.Wait()
			assert.EqualValues(t, tasks, counter.Load())

			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			require.NoError(t, d.Stop(ctx))
		})
	}
}

func TestSubmitAfterStop(t *testing.T) {
	for name, newDriver := range drivers() {
		t.Run(name, func(t *testing.T) {
			d := newDriver()
			require.NoError(t, d.Start())

			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			require.NoError(t, d.Stop(ctx))

			err := d.Submit(func() {})
			require.ErrorIs(t, err, gerrors.ErrDriverStopped)
		})
	}
}

// The event loop must never run two units of work in parallel.
func TestLoopSerializesTasks(t *testing.T) {
	loop := NewLoop()
	require.NoError(t, loop.Start())

	inFlight := uberatomic.NewInt32(0)
	maxInFlight := uberatomic.NewInt32(0)

	const tasks = 200
	var wg sync.WaitGroup
	wg.Add(tasks)
	for range tasks {
		require.NoError(t, loop.Submit(func() {
			current := inFlight.Inc()
			if current > maxInFlight.Load() {
				maxInFlight.Store(current)
			}
			inFlight.Dec()
			wg.Done()
		}))
	}
	wg.Wait()
	assert.EqualValues(t, 1, maxInFlight.Load())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, loop.Stop(ctx))
}

// A Submit the loop acknowledged must execute even when it races Stop:
// either the task runs before the loop exits or the submit is rejected,
// never an accepted task left in a dead queue.
func TestLoopStopNeverDropsAcceptedTask(t *testing.T) {
	for range 50 {
		loop := NewLoop()
		require.NoError(t, loop.Start())

		accepted := uberatomic.NewInt64(0)
		executed := uberatomic.NewInt64(0)

		var wg sync.WaitGroup
		start := make(chan struct{})
		for range 4 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				for range 50 {
					if loop.Submit(func() { executed.Inc() }) == nil {
						accepted.Inc()
					}
				}
			}()
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			assert.NoError(t, loop.Stop(context.Background()))
		}()

		close(start)
		wg.Wait()

		// Stop returns only after the loop ran everything it accepted
		require.EqualValues(t, accepted.Load(), executed.Load())
	}
}

// The pool must actually run tasks in parallel.
func TestPoolRunsTasksConcurrently(t *testing.T) {
	pool := NewPool(WithShards(2))
	require.NoError(t, pool.Start())

	var barrier sync.WaitGroup
	barrier.Add(2)
	release := make(chan struct{})

	done := make(chan struct{}, 2)
	for range 2 {
		require.NoError(t, pool.Submit(func() {
			barrier.Done()
			<-release
			done <- struct{}{}
		}))
	}

	// both tasks reach the barrier only if they run concurrently
	waitCh := make(chan struct{})
	go func() {
		barrier.Wait()
		close(waitCh)
	}()
	select {
	case <-waitCh:
	case <-time.After(time.Second):
		t.Fatal("tasks did not run concurrently")
	}

	close(release)
	<-done
	<-done

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, pool.Stop(ctx))
}

func TestPoolSaturation(t *testing.T) {
	pool := NewPool(WithShards(1), WithMaxWorkers(1))
	require.NoError(t, pool.Start())

	block := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, pool.Submit(func() {
		close(started)
		<-block
	}))
	<-started

	err := pool.Submit(func() {})
	require.ErrorIs(t, err, gerrors.ErrDriverSaturated)

	close(block)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, pool.Stop(ctx))
}

func TestStopTimeout(t *testing.T) {
	g := NewGoroutine()
	require.NoError(t, g.Start())

	block := make(chan struct{})
	require.NoError(t, g.Submit(func() { <-block }))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := g.Stop(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	close(block)
	require.NoError(t, g.Stop(context.Background()))
}

func TestDriverNames(t *testing.T) {
	assert.Equal(t, "event-loop", NewLoop().Name())
	assert.Equal(t, "worker-pool", NewPool().Name())
	assert.Equal(t, "goroutine", NewGoroutine().Name())
}
