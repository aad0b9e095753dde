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
	"github.com/spoolworks/spool/driver"
	"github.com/spoolworks/spool/log"
)

// defaultThroughput is the number of messages a dispatch pass handles before
// resubmitting itself to the driver. Batching keeps the per-message
// scheduling overhead low while bounding how long one actor can monopolize a
// cooperative driver.
const defaultThroughput = 300

// FaultPolicy decides what happens when a message handler returns an error
// or panics.
type FaultPolicy int

const (
	// FaultIsolate logs the fault and keeps the actor running. The default:
	// one faulty actor cannot halt the rest of the system.
	FaultIsolate FaultPolicy = iota
	// FaultStop stops the failing actor. Pending messages are dropped and a
	// Terminated event carrying the fault is published.
	FaultStop

	// inheritFaultPolicy marks a spawn config without an explicit policy.
	inheritFaultPolicy FaultPolicy = -1
)

// String returns the string representation of the policy.
func (p FaultPolicy) String() string {
	switch p {
	case FaultIsolate:
		return "isolate"
	case FaultStop:
		return "stop"
	default:
		return "unknown"
	}
}

// ShutdownPolicy decides what happens to outstanding mailboxes when the
// actor system stops.
type ShutdownPolicy int

const (
	// DrainMailboxes processes every message already enqueued before the
	// actors terminate, bounded by the context handed to Stop. The default.
	DrainMailboxes ShutdownPolicy = iota
	// DiscardMailboxes drops pending messages and terminates the actors
	// immediately.
	DiscardMailboxes
)

// String returns the string representation of the policy.
func (p ShutdownPolicy) String() string {
	switch p {
	case DrainMailboxes:
		return "drain"
	case DiscardMailboxes:
		return "discard"
	default:
		return "unknown"
	}
}

// Option is the interface that applies an actor system configuration option.
type Option interface {
	// Apply sets the Option value of a config.
	Apply(system *ActorSystem)
}

// enforce compilation error
var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(*ActorSystem)

func (f OptionFunc) Apply(system *ActorSystem) {
	f(system)
}

// WithDriver sets the execution driver the system schedules dispatch passes
// on. The default is the goroutine-per-task driver.
func WithDriver(drv driver.Driver) Option {
	return OptionFunc(func(system *ActorSystem) {
		system.driver = drv
	})
}

// WithLogger sets a custom logger. The default discards all output.
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(system *ActorSystem) {
		system.logger = logger
	})
}

// WithFaultPolicy sets the system-wide default fault policy. Individual
// actors may override it at spawn time.
func WithFaultPolicy(policy FaultPolicy) Option {
	return OptionFunc(func(system *ActorSystem) {
		system.faultPolicy = policy
	})
}

// WithShutdownPolicy decides between draining and discarding outstanding
// mailboxes when the system stops.
func WithShutdownPolicy(policy ShutdownPolicy) Option {
	return OptionFunc(func(system *ActorSystem) {
		system.shutdownPolicy = policy
	})
}

// WithThroughput sets the system-wide default dispatch batch size.
func WithThroughput(throughput int) Option {
	return OptionFunc(func(system *ActorSystem) {
		if throughput > 0 {
			system.throughput = throughput
		}
	})
}

// spawnConfig holds the per-actor settings applied at spawn time.
type spawnConfig[M any] struct {
	mailbox     Mailbox[M]
	faultPolicy FaultPolicy
	throughput  int
}

// SpawnOption is the interface that applies a per-actor spawn option.
type SpawnOption[M any] interface {
	// Apply sets the SpawnOption value of a config.
	Apply(config *spawnConfig[M])
}

var _ SpawnOption[any] = spawnOption[any](nil)

// spawnOption implements the SpawnOption interface.
type spawnOption[M any] func(config *spawnConfig[M])

func (f spawnOption[M]) Apply(config *spawnConfig[M]) {
	f(config)
}

// WithMailbox sets the mailbox to use for the actor being spawned. The
// default is an unbounded DefaultMailbox.
func WithMailbox[M any](mailbox Mailbox[M]) SpawnOption[M] {
	return spawnOption[M](func(config *spawnConfig[M]) {
		config.mailbox = mailbox
	})
}

// WithActorFaultPolicy overrides the system fault policy for the actor being
// spawned.
func WithActorFaultPolicy[M any](policy FaultPolicy) SpawnOption[M] {
	return spawnOption[M](func(config *spawnConfig[M]) {
		config.faultPolicy = policy
	})
}

// WithActorThroughput overrides the dispatch batch size for the actor being
// spawned.
func WithActorThroughput[M any](throughput int) SpawnOption[M] {
	return spawnOption[M](func(config *spawnConfig[M]) {
		if throughput > 0 {
			config.throughput = throughput
		}
	})
}
