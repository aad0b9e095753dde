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
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMailboxBasic(t *testing.T) {
	mailbox := NewDefaultMailbox[int]()

	require.NoError(t, mailbox.Enqueue(1))
	require.NoError(t, mailbox.Enqueue(2))
	assert.EqualValues(t, 2, mailbox.Len())

	out1, ok := mailbox.Dequeue()
	require.True(t, ok)
	out2, ok := mailbox.Dequeue()
	require.True(t, ok)

	assert.Equal(t, 1, out1)
	assert.Equal(t, 2, out2)
	assert.True(t, mailbox.IsEmpty())

	// dequeue on empty reports false
	_, ok = mailbox.Dequeue()
	assert.False(t, ok)

	mailbox.Dispose()
}

func TestDefaultMailboxOneProducer(t *testing.T) {
	const expected = 1000
	mailbox := NewDefaultMailbox[int]()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		next := 0
		for next < expected {
			v, ok := mailbox.Dequeue()
			if !ok {
				runtime.Gosched()
				continue
			}
			require.Equal(t, next, v)
			next++
		}
	}()

	for i := range expected {
		require.NoError(t, mailbox.Enqueue(i))
	}

	wg.Wait()
	assert.True(t, mailbox.IsEmpty())
}

func TestDefaultMailboxMultipleProducers(t *testing.T) {
	const producers = 4
	const perProducer = 1000
	mailbox := NewDefaultMailbox[int]()

	var producerWg sync.WaitGroup
	for p := range producers {
		producerWg.Add(1)
		go func() {
			defer producerWg.Done()
			for i := range perProducer {
				require.NoError(t, mailbox.Enqueue(p*perProducer+i))
			}
		}()
	}

	// single consumer; verify per-producer FIFO is preserved
	lastSeen := map[int]int{}
	received := 0
	for received < producers*perProducer {
		v, ok := mailbox.Dequeue()
		if !ok {
			runtime.Gosched()
			continue
		}
		received++
		p, i := v/perProducer, v%perProducer
		if last, seen := lastSeen[p]; seen {
			require.Greater(t, i, last)
		}
		lastSeen[p] = i
	}

	producerWg.Wait()
	assert.True(t, mailbox.IsEmpty())
}
