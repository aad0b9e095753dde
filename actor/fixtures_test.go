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

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	uberatomic "go.uber.org/atomic"

	gerrors "github.com/spoolworks/spool/errors"
)

// counterActor sums the int messages it receives. The total is written only
// from Receive and read by tests after the actor has terminated, which the
// runtime orders correctly.
type counterActor struct {
	total int64
}

func (c *counterActor) PreStart(context.Context) error { return nil }

func (c *counterActor) Receive(_ context.Context, n int) error {
	c.total += int64(n)
	return nil
}

func (c *counterActor) PostStop(context.Context) error { return nil }

// recorderActor keeps every message in arrival order.
type recorderActor struct {
	seen []int
}

func (r *recorderActor) PreStart(context.Context) error { return nil }

func (r *recorderActor) Receive(_ context.Context, n int) error {
	r.seen = append(r.seen, n)
	return nil
}

func (r *recorderActor) PostStop(context.Context) error { return nil }

// probeActor tracks how many handler invocations are in flight at once.
type probeActor struct {
	inFlight    *uberatomic.Int32
	maxInFlight *uberatomic.Int32
	handled     *uberatomic.Int64
}

func newProbeActor() *probeActor {
	return &probeActor{
		inFlight:    uberatomic.NewInt32(0),
		maxInFlight: uberatomic.NewInt32(0),
		handled:     uberatomic.NewInt64(0),
	}
}

func (p *probeActor) PreStart(context.Context) error { return nil }

func (p *probeActor) Receive(context.Context, int) error {
	current := p.inFlight.Inc()
	for {
		max := p.maxInFlight.Load()
		if current <= max || p.maxInFlight.CompareAndSwap(max, current) {
			break
		}
	}
	time.Sleep(10 * time.Microsecond)
	p.inFlight.Dec()
	p.handled.Inc()
	return nil
}

func (p *probeActor) PostStop(context.Context) error { return nil }

// faultyActor fails on demand: a negative message returns an error, zero
// panics, anything else counts.
type faultyActor struct {
	handled  *uberatomic.Int64
	stopped  *uberatomic.Bool
	failWith error
}

func newFaultyActor(failWith error) *faultyActor {
	return &faultyActor{
		handled:  uberatomic.NewInt64(0),
		stopped:  uberatomic.NewBool(false),
		failWith: failWith,
	}
}

func (f *faultyActor) PreStart(context.Context) error { return nil }

func (f *faultyActor) Receive(_ context.Context, n int) error {
	switch {
	case n < 0:
		return f.failWith
	case n == 0:
		panic("zero is not a message")
	default:
		f.handled.Inc()
		return nil
	}
}

func (f *faultyActor) PostStop(context.Context) error {
	f.stopped.Store(true)
	return nil
}

// selfStopActor stops itself gracefully once it has seen limit messages.
type selfStopActor struct {
	limit   int64
	handled *uberatomic.Int64
}

func (s *selfStopActor) PreStart(context.Context) error { return nil }

func (s *selfStopActor) Receive(context.Context, int) error {
	if s.handled.Inc() >= s.limit {
		return gerrors.ErrStopRequested
	}
	return nil
}

func (s *selfStopActor) PostStop(context.Context) error { return nil }

// waitRemoved blocks until the actor has left the registry.
func waitRemoved(t *testing.T, system *ActorSystem, id Identity) {
	t.Helper()
	require.Eventually(t, func() bool {
		_, err := system.Status(id)
		return errors.Is(err, gerrors.ErrActorNotFound)
	}, 3*time.Second, time.Millisecond)
}

// startedSystem creates and starts a system on the given options, failing
// the test on error. The system is stopped when the test ends.
func startedSystem(t *testing.T, opts ...Option) *ActorSystem {
	t.Helper()
	system, err := NewActorSystem("testsys", opts...)
	require.NoError(t, err)
	require.NoError(t, system.Start(context.Background()))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = system.Stop(ctx)
	})
	return system
}
