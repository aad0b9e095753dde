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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gerrors "github.com/spoolworks/spool/errors"
)

func TestBoundedMailboxBasic(t *testing.T) {
	mailbox, err := NewBoundedMailbox[string](2)
	require.NoError(t, err)
	assert.EqualValues(t, 2, mailbox.Cap())

	require.NoError(t, mailbox.Enqueue("a"))
	require.NoError(t, mailbox.Enqueue("b"))
	assert.EqualValues(t, 2, mailbox.Len())

	out, ok := mailbox.Dequeue()
	require.True(t, ok)
	assert.Equal(t, "a", out)

	out, ok = mailbox.Dequeue()
	require.True(t, ok)
	assert.Equal(t, "b", out)

	_, ok = mailbox.Dequeue()
	assert.False(t, ok)
	assert.True(t, mailbox.IsEmpty())

	mailbox.Dispose()
}

func TestBoundedMailboxFull(t *testing.T) {
	mailbox, err := NewBoundedMailbox[int](1)
	require.NoError(t, err)

	require.NoError(t, mailbox.Enqueue(1))
	err = mailbox.Enqueue(2)
	require.ErrorIs(t, err, gerrors.ErrMailboxFull)

	// draining frees capacity
	_, ok := mailbox.Dequeue()
	require.True(t, ok)
	require.NoError(t, mailbox.Enqueue(2))
	mailbox.Dispose()
}

func TestBoundedMailboxInvalidCapacity(t *testing.T) {
	_, err := NewBoundedMailbox[int](0)
	require.ErrorIs(t, err, gerrors.ErrInvalidCapacity)

	_, err = NewBoundedMailbox[int](-1)
	require.ErrorIs(t, err, gerrors.ErrInvalidCapacity)
}

func TestBoundedMailboxDisposed(t *testing.T) {
	mailbox, err := NewBoundedMailbox[int](1)
	require.NoError(t, err)
	mailbox.Dispose()
	require.Error(t, mailbox.Enqueue(1))
}
