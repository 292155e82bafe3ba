// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

// Package strbuilder defines a pooled string builder for String methods
// that are called on hot paths, such as formatting header records in
// logs. Builders come from a sync.Pool, so it doesn't matter if the
// compiler can't prove a builder doesn't escape into the fmt package.
package strbuilder

import (
	"bytes"
	"strconv"
	"sync"
)

var pool = sync.Pool{
	New: func() any { return new(Builder) },
}

// Builder accumulates a string. Obtain one with Get and finish it with
// String, which returns it to the pool.
type Builder struct {
	bb      bytes.Buffer
	scratch [20]byte // long enough for MaxUint64 in decimal
	pooled  bool
}

// Get returns a new or reused Builder.
func Get() *Builder {
	b := pool.Get().(*Builder)
	b.bb.Reset()
	b.pooled = false
	return b
}

// String returns the accumulated string and puts b back in the pool.
// b must not be used afterwards.
func (b *Builder) String() string {
	if b.pooled {
		panic("strbuilder: String called twice on Builder")
	}
	s := b.bb.String()
	b.pooled = true
	pool.Put(b)
	return s
}

// Len returns the number of bytes written so far.
func (b *Builder) Len() int { return b.bb.Len() }

func (b *Builder) WriteByte(v byte) error {
	return b.bb.WriteByte(v)
}

func (b *Builder) WriteString(s string) (int, error) {
	return b.bb.WriteString(s)
}

func (b *Builder) Write(p []byte) (int, error) {
	return b.bb.Write(p)
}

// WriteUint writes v in decimal.
func (b *Builder) WriteUint(v uint64) {
	b.bb.Write(strconv.AppendUint(b.scratch[:0], v, 10))
}

// WriteHex writes v as lowercase hex with a "0x" prefix, left-padded
// with zeros to at least width digits.
func (b *Builder) WriteHex(v uint64, width int) {
	digits := strconv.AppendUint(b.scratch[:0], v, 16)
	b.bb.WriteString("0x")
	for i := len(digits); i < width; i++ {
		b.bb.WriteByte('0')
	}
	b.bb.Write(digits)
}

// WriteAppender writes the output of an Append-style method, such as
// netip.Addr.AppendTo, without an intermediate string.
func (b *Builder) WriteAppender(app func([]byte) []byte) {
	b.bb.Write(app(b.scratch[:0]))
}
