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

package workerpool

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestSubmitBeforeStart(t *testing.T) {
	pool := New()
	err := pool.Submit(func() {})
	require.ErrorIs(t, err, ErrNotStarted)
}

func TestSubmitRunsTasks(t *testing.T) {
	defer goleak.VerifyNone(t)

	pool := New(WithIdleWorkerLifetime(10 * time.Millisecond))
	pool.Start()

	const tasks = 1000
	var counter atomic.Int64
	var wg sync.WaitGroup
	wg.Add(tasks)
	for range tasks {
		require.NoError(t, pool.Submit(func() {
			counter.Add(1)
			wg.Done()
		}))
	}
	wg.Wait()
	assert.EqualValues(t, tasks, counter.Load())

	pool.Stop()
	require.Eventually(t, func() bool {
		return pool.Workers() == 0
	}, time.Second, 5*time.Millisecond)
}

func TestSubmitAfterStop(t *testing.T) {
	pool := New()
	pool.Start()
	pool.Stop()
	err := pool.Submit(func() {})
	require.ErrorIs(t, err, ErrStopped)
}

func TestWorkerReuse(t *testing.T) {
	pool := New(WithNumShards(1))
	pool.Start()
	defer pool.Stop()

	done := make(chan struct{})
	require.NoError(t, pool.Submit(func() { close(done) }))
	<-done

	// wait until the worker parks itself, then a second task must reuse it
	require.Eventually(t, func() bool {
		pool.shards[0].mu.Lock()
		parked := len(pool.shards[0].idle)
		pool.shards[0].mu.Unlock()
		return parked == 1
	}, time.Second, time.Millisecond)

	again := make(chan struct{})
	require.NoError(t, pool.Submit(func() { close(again) }))
	<-again
	assert.EqualValues(t, 1, pool.Workers())
}

func TestSaturation(t *testing.T) {
	pool := New(WithNumShards(1), WithMaxWorkers(1))
	pool.Start()
	defer pool.Stop()

	block := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, pool.Submit(func() {
		close(started)
		<-block
	}))
	<-started

	err := pool.Submit(func() {})
	require.ErrorIs(t, err, ErrSaturated)

	close(block)
	require.Eventually(t, func() bool {
		return pool.Submit(func() {}) == nil
	}, time.Second, time.Millisecond)
}

func TestWaitBlocksOnBusyWorker(t *testing.T) {
	pool := New(WithNumShards(1))
	pool.Start()

	block := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, pool.Submit(func() {
		close(started)
		<-block
	}))
	<-started
	pool.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, pool.Wait(ctx), context.DeadlineExceeded)

	close(block)
	require.NoError(t, pool.Wait(context.Background()))
	assert.Zero(t, pool.Workers())
}

func TestIdleWorkersReaped(t *testing.T) {
	pool := New(WithNumShards(1), WithIdleWorkerLifetime(10*time.Millisecond))
	pool.Start()
	defer pool.Stop()

	done := make(chan struct{})
	require.NoError(t, pool.Submit(func() { close(done) }))
	<-done

	require.Eventually(t, func() bool {
		return pool.Workers() == 0
	}, time.Second, 5*time.Millisecond)
}
