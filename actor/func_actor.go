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

import "context"

// ReceiveFunc is the message handling function of a func-based actor.
type ReceiveFunc[M any] func(ctx context.Context, message M) error

// LifecycleFunc is the PreStart/PostStop hook function of a func-based actor.
type LifecycleFunc func(ctx context.Context) error

// FuncOption configures a func-based actor.
type FuncOption func(*funcConfig)

type funcConfig struct {
	preStart LifecycleFunc
	postStop LifecycleFunc
}

// WithPreStart sets the PreStart hook of a func-based actor.
func WithPreStart(fn LifecycleFunc) FuncOption {
	return func(config *funcConfig) {
		config.preStart = fn
	}
}

// WithPostStop sets the PostStop hook of a func-based actor.
func WithPostStop(fn LifecycleFunc) FuncOption {
	return func(config *funcConfig) {
		config.postStop = fn
	}
}

// FuncActor is an actor built from a receive function, for the common case
// where no struct state beyond the closure is needed.
type FuncActor[M any] struct {
	receive  ReceiveFunc[M]
	preStart LifecycleFunc
	postStop LifecycleFunc
}

var _ Actor[any] = (*FuncActor[any])(nil)

// NewFuncActor creates an actor from the given receive function and optional
// lifecycle hooks.
func NewFuncActor[M any](receive ReceiveFunc[M], opts ...FuncOption) *FuncActor[M] {
	config := &funcConfig{}
	for _, opt := range opts {
		opt(config)
	}
	return &FuncActor[M]{
		receive:  receive,
		preStart: config.preStart,
		postStop: config.postStop,
	}
}

// PreStart runs the configured hook, if any.
func (a *FuncActor[M]) PreStart(ctx context.Context) error {
	if a.preStart != nil {
		return a.preStart(ctx)
	}
	return nil
}

// Receive handles the next message.
func (a *FuncActor[M]) Receive(ctx context.Context, message M) error {
	return a.receive(ctx, message)
}

// PostStop runs the configured hook, if any.
func (a *FuncActor[M]) PostStop(ctx context.Context) error {
	if a.postStop != nil {
		return a.postStop(ctx)
	}
	return nil
}
