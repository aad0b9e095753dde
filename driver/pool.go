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
	"errors"
	"fmt"
	"runtime"
	"time"

	gerrors "github.com/spoolworks/spool/errors"
	"github.com/spoolworks/spool/internal/workerpool"
)

// Pool is a parallel driver backed by a sharded worker pool. Units of work
// for distinct actors run genuinely concurrently, bounded only by the
// configured worker cap.
type Pool struct {
	pool *workerpool.Pool
}

var _ Driver = (*Pool)(nil)

type poolConfig struct {
	shards       int
	maxWorkers   int64
	idleLifetime time.Duration
}

// PoolOption configures a Pool driver.
type PoolOption func(*poolConfig)

// WithShards sets the number of pool shards. The default is GOMAXPROCS.
func WithShards(n int) PoolOption {
	return func(c *poolConfig) {
		c.shards = n
	}
}

// WithMaxWorkers caps the number of concurrent workers. Zero means
// unlimited. When the cap is reached and every worker is busy, Submit fails
// with an error wrapping gerrors.ErrDriverSaturated.
func WithMaxWorkers(n int64) PoolOption {
	return func(c *poolConfig) {
		c.maxWorkers = n
	}
}

// WithIdleWorkerLifetime sets how long idle workers are kept around.
func WithIdleWorkerLifetime(d time.Duration) PoolOption {
	return func(c *poolConfig) {
		c.idleLifetime = d
	}
}

// NewPool creates a worker-pool driver.
func NewPool(opts ...PoolOption) *Pool {
	config := &poolConfig{
		shards:       runtime.GOMAXPROCS(0),
		idleLifetime: time.Second,
	}
	for _, opt := range opts {
		opt(config)
	}

	return &Pool{
		pool: workerpool.New(
			workerpool.WithNumShards(config.shards),
			workerpool.WithMaxWorkers(config.maxWorkers),
			workerpool.WithIdleWorkerLifetime(config.idleLifetime),
		),
	}
}

// Name returns the driver name.
func (p *Pool) Name() string {
	return "worker-pool"
}

// Start starts the underlying worker pool.
func (p *Pool) Start() error {
	p.pool.Start()
	return nil
}

// Submit hands the unit of work to the pool.
func (p *Pool) Submit(task func()) error {
	err := p.pool.Submit(task)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, workerpool.ErrNotStarted):
		return fmt.Errorf("%s driver: %w", p.Name(), gerrors.ErrDriverNotStarted)
	case errors.Is(err, workerpool.ErrStopped):
		return fmt.Errorf("%s driver: %w", p.Name(), gerrors.ErrDriverStopped)
	case errors.Is(err, workerpool.ErrSaturated):
		return fmt.Errorf("%s driver: %w", p.Name(), gerrors.ErrDriverSaturated)
	default:
		return err
	}
}

// Stop stops the pool and waits for busy workers to finish their current
// unit of work until the context expires.
func (p *Pool) Stop(ctx context.Context) error {
	p.pool.Stop()
	return p.pool.Wait(ctx)
}
