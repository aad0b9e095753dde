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
	"fmt"
	"regexp"

	uberatomic "go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	"github.com/spoolworks/spool/driver"
	gerrors "github.com/spoolworks/spool/errors"
	"github.com/spoolworks/spool/eventstream"
	"github.com/spoolworks/spool/internal/sequence"
	"github.com/spoolworks/spool/internal/syncmap"
	"github.com/spoolworks/spool/log"
)

var nameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-_]*$`)

// ActorSystem owns the registry of live actors and the execution driver. It
// is created once at startup with a chosen driver, accepts spawns throughout
// its life and tears the actors down deterministically on Stop according to
// the configured shutdown policy.
//
// All operations are safe for concurrent use.
type ActorSystem struct {
	name   string
	logger log.Logger
	driver driver.Driver

	cells  *syncmap.SyncMap[Identity, anyCell]
	ids    *sequence.Producer
	events eventstream.Stream

	started  *uberatomic.Bool
	stopping *uberatomic.Bool

	faultPolicy    FaultPolicy
	shutdownPolicy ShutdownPolicy
	throughput     int
}

// NewActorSystem creates an actor system with the given name and options.
// Without options the system logs nowhere and runs on the goroutine-per-task
// driver.
func NewActorSystem(name string, opts ...Option) (*ActorSystem, error) {
	if name == "" {
		return nil, gerrors.ErrNameRequired
	}
	if !nameRegex.MatchString(name) {
		return nil, fmt.Errorf("name=%q must contain only word characters plus non-leading '-' or '_': %w", name, gerrors.ErrNameRequired)
	}

	system := &ActorSystem{
		name:           name,
		logger:         log.DiscardLogger,
		driver:         driver.NewGoroutine(),
		cells:          syncmap.New[Identity, anyCell](),
		ids:            sequence.NewProducer(),
		events:         eventstream.New(),
		started:        uberatomic.NewBool(false),
		stopping:       uberatomic.NewBool(false),
		faultPolicy:    FaultIsolate,
		shutdownPolicy: DrainMailboxes,
		throughput:     defaultThroughput,
	}
	for _, opt := range opts {
		opt.Apply(system)
	}
	if system.driver == nil {
		return nil, gerrors.ErrDriverRequired
	}
	return system, nil
}

// Name returns the actor system name.
func (s *ActorSystem) Name() string {
	return s.name
}

// Logger returns the system logger.
func (s *ActorSystem) Logger() log.Logger {
	return s.logger
}

// Driver returns the execution driver the system runs on.
func (s *ActorSystem) Driver() driver.Driver {
	return s.driver
}

// NumActors returns the number of actors currently registered.
func (s *ActorSystem) NumActors() int {
	return s.cells.Len()
}

// Running reports whether the system has been started and not yet stopped.
func (s *ActorSystem) Running() bool {
	return s.started.Load() && !s.stopping.Load()
}

// Start starts the driver and makes the system ready to spawn actors.
func (s *ActorSystem) Start(ctx context.Context) error {
	_ = ctx
	if !s.started.CompareAndSwap(false, true) {
		return nil
	}
	if err := s.driver.Start(); err != nil {
		s.started.Store(false)
		return fmt.Errorf("system=%s failed to start driver: %w", s.name, err)
	}
	s.logger.Infof("actor system=%s started on driver=%s", s.name, s.driver.Name())
	return nil
}

// Stop tears the system down: every actor is terminated according to the
// shutdown policy, then the driver is stopped and the event stream closed.
// Under DrainMailboxes the wait for outstanding mailboxes is bounded by ctx.
func (s *ActorSystem) Stop(ctx context.Context) error {
	if !s.started.Load() {
		return gerrors.ErrSystemNotStarted
	}
	if !s.stopping.CompareAndSwap(false, true) {
		return nil
	}
	s.logger.Infof("actor system=%s stopping, policy=%s, actors=%d", s.name, s.shutdownPolicy, s.cells.Len())

	cells := s.cells.Values()
	for _, c := range cells {
		if s.shutdownPolicy == DiscardMailboxes {
			c.discard()
		} else {
			c.deactivate()
		}
	}

	eg, egCtx := errgroup.WithContext(ctx)
	for _, c := range cells {
		eg.Go(func() error {
			select {
			case <-c.done():
				return nil
			case <-egCtx.Done():
				return fmt.Errorf("actor=%s did not terminate: %w", c.identity(), egCtx.Err())
			}
		})
	}
	err := eg.Wait()

	if stopErr := s.driver.Stop(ctx); stopErr != nil && err == nil {
		err = fmt.Errorf("system=%s failed to stop driver: %w", s.name, stopErr)
	}
	s.events.Close()
	s.logger.Infof("actor system=%s stopped", s.name)
	return err
}

// Spawn registers the actor with the system and returns the typed ref used
// to send it messages. PreStart runs synchronously before the actor becomes
// reachable; a PreStart error aborts the spawn.
//
// Spawn is a free function because the message type parameter cannot live on
// a method. It is safe to call concurrently from multiple goroutines,
// including from inside other actors' handlers.
func Spawn[M any](ctx context.Context, system *ActorSystem, actor Actor[M], opts ...SpawnOption[M]) (ActorRef[M], error) {
	var none ActorRef[M]
	if system == nil || !system.started.Load() {
		return none, gerrors.ErrSystemNotStarted
	}
	if system.stopping.Load() {
		return none, gerrors.ErrSystemStopping
	}

	config := &spawnConfig[M]{
		faultPolicy: inheritFaultPolicy,
		throughput:  system.throughput,
	}
	for _, opt := range opts {
		opt.Apply(config)
	}
	if config.mailbox == nil {
		config.mailbox = NewDefaultMailbox[M]()
	}
	if config.faultPolicy == inheritFaultPolicy {
		config.faultPolicy = system.faultPolicy
	}

	if err := actor.PreStart(ctx); err != nil {
		return none, fmt.Errorf("%w: %w", gerrors.ErrInitFailure, err)
	}

	id := Identity(system.ids.Next())
	// handlers keep the spawn context's values but never its cancellation:
	// there is no mid-handler cancellation in this runtime
	c := newCell(id, actor, config, system.driver, system.logger,
		system.events, context.WithoutCancel(ctx), system.removeCell)
	system.cells.Set(id, c)
	system.logger.Debugf("actor=%s spawned on system=%s", id, system.name)
	return ActorRef[M]{cell: c}, nil
}

// Deregister marks the actor for removal. The in-flight dispatch pass
// finishes normally and messages already enqueued drain, but subsequent
// sends fail with gerrors.ErrDead. The actor leaves the registry once its
// mailbox is empty, at which point a Terminated event is published.
func (s *ActorSystem) Deregister(id Identity) error {
	c, ok := s.cells.Get(id)
	if !ok {
		return fmt.Errorf("actor=%s: %w", id, gerrors.ErrActorNotFound)
	}
	c.deactivate()
	return nil
}

// Watch subscribes to the termination of the given actor. The returned
// subscriber receives a single *Terminated message on the actor's
// termination topic; callers poll it via Iterator. Watching an unknown or
// already-removed actor fails with gerrors.ErrActorNotFound.
func (s *ActorSystem) Watch(id Identity) (eventstream.Subscriber, error) {
	if _, ok := s.cells.Get(id); !ok {
		return nil, fmt.Errorf("actor=%s: %w", id, gerrors.ErrActorNotFound)
	}
	sub := s.events.AddSubscriber()
	s.events.Subscribe(sub, terminationTopic(id))
	return sub, nil
}

// WatchAll subscribes to every actor termination in the system.
func (s *ActorSystem) WatchAll() eventstream.Subscriber {
	sub := s.events.AddSubscriber()
	s.events.Subscribe(sub, TerminationTopic)
	return sub
}

// Unwatch removes a subscriber previously returned by Watch or WatchAll.
func (s *ActorSystem) Unwatch(sub eventstream.Subscriber) {
	s.events.RemoveSubscriber(sub)
}

// Status returns the lifecycle status of the given actor.
func (s *ActorSystem) Status(id Identity) (Status, error) {
	c, ok := s.cells.Get(id)
	if !ok {
		return StatusStopped, fmt.Errorf("actor=%s: %w", id, gerrors.ErrActorNotFound)
	}
	return c.currentStatus(), nil
}

// MailboxSize returns a snapshot of the number of messages pending for the
// given actor. The value may be stale by the time it is observed.
func (s *ActorSystem) MailboxSize(id Identity) (int64, error) {
	c, ok := s.cells.Get(id)
	if !ok {
		return 0, fmt.Errorf("actor=%s: %w", id, gerrors.ErrActorNotFound)
	}
	return c.mailboxSize(), nil
}

// removeCell drops a fully-terminated cell from the registry. Called by the
// cell itself at the end of finalize.
func (s *ActorSystem) removeCell(id Identity) {
	s.cells.Delete(id)
	s.logger.Debugf("actor=%s removed from system=%s", id, s.name)
}
