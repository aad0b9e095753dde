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

// TerminationTopic is the event stream topic every actor termination is
// published on. Each termination is additionally published on the per-actor
// topic returned by terminationTopic, which is what ActorSystem.Watch
// subscribes to.
const TerminationTopic = "actors.terminated"

// Terminated is the event published on the system event stream when an actor
// leaves the registry.
type Terminated struct {
	// ID of the terminated actor.
	ID Identity
	// Reason is nil for a clean stop (deregistration or graceful self-stop)
	// and carries the handler error or recovered panic when the fault policy
	// stopped the actor.
	Reason error
}

func terminationTopic(id Identity) string {
	return TerminationTopic + "." + id.String()
}
