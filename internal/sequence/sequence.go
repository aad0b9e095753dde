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

// Package sequence produces process-local unique identifiers.
package sequence

import (
	"sync/atomic"
	"time"
)

// epoch is the fixed base the millisecond component counts from. Fixing it in
// the past keeps that component large, so an identifier is never zero.
var epoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// Producer generates unique uint64 identifiers by combining the elapsed
// milliseconds since the epoch with a wrapping 16-bit counter. Identifiers
// are unique for the lifetime of the producer as long as fewer than 65536 ids
// are requested within a single millisecond.
type Producer struct {
	increment atomic.Uint32
}

// NewProducer creates a Producer.
func NewProducer() *Producer {
	return &Producer{}
}

// Next returns the next identifier. Safe for concurrent use.
func (p *Producer) Next() uint64 {
	inc := p.increment.Add(1) - 1
	elapsed := uint64(time.Since(epoch).Milliseconds())
	return (elapsed << 16) | uint64(uint16(inc))
}
