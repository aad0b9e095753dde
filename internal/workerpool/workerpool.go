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

// Package workerpool implements a sharded pool of reusable workers.
//
// Tasks are handed to parked idle workers when possible; a shard with no idle
// worker first tries to steal one from its sibling shards before spawning a
// new goroutine. Workers park themselves after each task and are reaped when
// idle for longer than the configured lifetime.
package workerpool

import (
	"context"
	"errors"
	"math/rand/v2"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

const maxShards = 128

var (
	// ErrNotStarted is returned when a task is submitted before Start.
	ErrNotStarted = errors.New("worker pool must be started first")
	// ErrStopped is returned when a task is submitted after Stop.
	ErrStopped = errors.New("worker pool is stopped")
	// ErrSaturated is returned when the pool is at its worker capacity and no
	// worker is free to take the task.
	ErrSaturated = errors.New("worker pool is saturated")
)

// Pool is a sharded worker pool.
type Pool struct {
	mu           sync.Mutex
	shards       []*shard
	numShards    int
	maxWorkers   int64
	idleLifetime time.Duration
	started      bool
	stopped      atomic.Bool
	stopCh       chan struct{}
	liveWorkers  atomic.Int64
	workersWg    sync.WaitGroup
}

type worker struct {
	tasks    chan func()
	lastUsed time.Time
}

type shard struct {
	pool *Pool
	mu   sync.Mutex
	idle []*worker
}

// New creates a Pool with the given options. The default pool has one shard
// per GOMAXPROCS, no worker cap, and a one-second idle worker lifetime.
func New(opts ...Option) *Pool {
	p := &Pool{
		numShards:    runtime.GOMAXPROCS(0),
		idleLifetime: time.Second,
		stopCh:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.numShards < 1 {
		p.numShards = 1
	}
	if p.numShards > maxShards {
		p.numShards = maxShards
	}
	return p
}

// Start makes the pool ready to accept tasks and begins reaping idle workers.
func (p *Pool) Start() {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return
	}
	for range p.numShards {
		p.shards = append(p.shards, &shard{pool: p, idle: make([]*worker, 0, 64)})
	}
	p.started = true
	p.mu.Unlock()

	go p.reap()
}

// Stop stops the pool. Parked workers are released immediately; busy workers
// exit once their current task completes. Tasks submitted after Stop are
// rejected with ErrStopped.
func (p *Pool) Stop() {
	p.mu.Lock()
	if !p.started || p.stopped.Load() {
		p.mu.Unlock()
		return
	}
	p.stopped.Store(true)
	close(p.stopCh)
	p.mu.Unlock()

	for _, s := range p.shards {
		s.mu.Lock()
		for _, w := range s.idle {
			close(w.tasks)
		}
		s.idle = s.idle[:0]
		s.mu.Unlock()
	}
}

// Submit hands the task to a worker. It never blocks: the task goes to an
// idle worker of a random shard, then to a worker stolen from a sibling
// shard, and otherwise a fresh worker is spawned unless the pool is at its
// worker capacity.
func (p *Pool) Submit(task func()) error {
	if !p.started {
		return ErrNotStarted
	}
	if p.stopped.Load() {
		return ErrStopped
	}

	home := rand.IntN(p.numShards)
	if w := p.shards[home].pop(); w != nil {
		w.tasks <- task
		return nil
	}

	// steal an idle worker from a sibling shard
	for i := 1; i < p.numShards; i++ {
		if w := p.shards[(home+i)%p.numShards].pop(); w != nil {
			w.tasks <- task
			return nil
		}
	}

	return p.spawn(home, task)
}

// Workers returns the number of currently live workers.
func (p *Pool) Workers() int64 {
	return p.liveWorkers.Load()
}

// Wait blocks until every live worker has exited or the context expires.
// Meant to be called after Stop.
func (p *Pool) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		p.workersWg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pool) spawn(home int, task func()) error {
	if p.maxWorkers > 0 && p.liveWorkers.Add(1) > p.maxWorkers {
		p.liveWorkers.Add(-1)
		return ErrSaturated
	}
	if p.maxWorkers <= 0 {
		p.liveWorkers.Add(1)
	}

	w := &worker{tasks: make(chan func(), 1)}
	w.tasks <- task
	p.workersWg.Add(1)
	go p.shards[home].run(w)
	return nil
}

// run executes tasks on the worker until it is reaped or the pool stops.
func (s *shard) run(w *worker) {
	defer s.pool.workersWg.Done()
	defer s.pool.liveWorkers.Add(-1)
	for task := range w.tasks {
		if task == nil {
			return
		}
		task()
		if !s.park(w) {
			return
		}
	}
}

// pop removes and returns an idle worker, or nil when none is parked. The
// caller owns the returned worker and its channel.
func (s *shard) pop() *worker {
	s.mu.Lock()
	n := len(s.idle)
	if n == 0 {
		s.mu.Unlock()
		return nil
	}
	w := s.idle[n-1]
	s.idle[n-1] = nil
	s.idle = s.idle[:n-1]
	s.mu.Unlock()
	return w
}

// park returns the worker to the idle list. It reports false when the pool
// has stopped, in which case the worker must exit.
func (s *shard) park(w *worker) bool {
	if s.pool.stopped.Load() {
		return false
	}
	w.lastUsed = time.Now()
	s.mu.Lock()
	s.idle = append(s.idle, w)
	s.mu.Unlock()
	return true
}

// reap periodically releases workers that have been idle for longer than the
// configured lifetime.
func (p *Pool) reap() {
	ticker := time.NewTicker(p.idleLifetime)
	defer ticker.Stop()
	for {
		select {
		case <-p.stopCh:
			return
		case now := <-ticker.C:
			for _, s := range p.shards {
				s.reapExpired(now, p.idleLifetime)
			}
		}
	}
}

func (s *shard) reapExpired(now time.Time, lifetime time.Duration) {
	var expired []*worker
	s.mu.Lock()
	kept := s.idle[:0]
	for _, w := range s.idle {
		if now.Sub(w.lastUsed) >= lifetime {
			expired = append(expired, w)
			continue
		}
		kept = append(kept, w)
	}
	for i := len(kept); i < len(s.idle); i++ {
		s.idle[i] = nil
	}
	s.idle = kept
	s.mu.Unlock()

	for _, w := range expired {
		close(w.tasks)
	}
}
