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

import "time"

// Option configures a Pool at construction time.
type Option func(*Pool)

// WithNumShards sets the number of shards. Values are clamped to
// [1, maxShards]. The default is GOMAXPROCS.
func WithNumShards(n int) Option {
	return func(p *Pool) {
		p.numShards = n
	}
}

// WithMaxWorkers caps the number of live workers. Zero means unlimited.
// When the cap is reached and no worker is idle, Submit fails with
// ErrSaturated.
func WithMaxWorkers(n int64) Option {
	return func(p *Pool) {
		p.maxWorkers = n
	}
}

// WithIdleWorkerLifetime sets the duration after which parked workers are
// released. The default is one second.
func WithIdleWorkerLifetime(d time.Duration) Option {
	return func(p *Pool) {
		p.idleLifetime = d
	}
}
