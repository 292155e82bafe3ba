// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

// Package tcpseg holds an in-memory TCP segment header record.
//
// A TCP is a plain value: it is built with New, read with one accessor
// per field and changed with one fluent With method per field, each of
// which returns an updated copy. Nothing in this package parses or
// produces wire bytes, computes checksums or validates field ranges.
//
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	|                        Sequence Number                        |
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	|                    Acknowledgment Number                      |
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	|  Data |     |N|C|E|U|A|P|R|S|F|                               |
//	| Offset| Rsv |S|W|C|R|C|S|S|Y|I|            Window             |
//	|       |     | |R|E|G|K|H|T|N|N|                               |
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	|           Checksum            |         Urgent Pointer        |
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	|                    Options                    |    Padding    |
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//	|                             data                              |
//	+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
//
// The record carries the IPv4 source and destination addresses rather
// than ports, and keeps the control flags as one raw integer.
package tcpseg

import (
	"bytes"
	"net/netip"
	"slices"
)

// TCP is one TCP segment's header fields and payload.
//
// The zero value is a valid record with every field zero or empty.
// No combination of field values is rejected.
type TCP struct {
	source         netip.Addr
	destination    netip.Addr
	sequence       uint32
	acknowledgment uint32
	dataOffset     uint8 // header length in 32-bit words; only the low 4 bits exist on the wire
	reserved       uint8
	flags          uint16 // raw bits, see TCPFin..TCPNs
	windowSize     uint16
	checksum       uint16 // stored, never computed
	urgentPointer  uint16
	options        []byte
	padding        []byte
	data           []byte
}

// New returns a TCP holding exactly the given values.
//
// The byte slices are copied, so the caller may reuse them afterwards.
// A nil slice stays nil and an empty one stays empty.
func New(
	source, destination netip.Addr,
	sequence, acknowledgment uint32,
	dataOffset, reserved uint8,
	flags, windowSize, checksum, urgentPointer uint16,
	options, padding, data []byte,
) TCP {
	return TCP{
		source:         source,
		destination:    destination,
		sequence:       sequence,
		acknowledgment: acknowledgment,
		dataOffset:     dataOffset,
		reserved:       reserved,
		flags:          flags,
		windowSize:     windowSize,
		checksum:       checksum,
		urgentPointer:  urgentPointer,
		options:        slices.Clone(options),
		padding:        slices.Clone(padding),
		data:           slices.Clone(data),
	}
}

// Source returns the source IPv4 address.
func (t TCP) Source() netip.Addr { return t.source }

// Destination returns the destination IPv4 address.
func (t TCP) Destination() netip.Addr { return t.destination }

// Sequence returns the sequence number of the first payload byte.
func (t TCP) Sequence() uint32 { return t.sequence }

// Acknowledgment returns the next sequence number the sender expects.
func (t TCP) Acknowledgment() uint32 { return t.acknowledgment }

// DataOffset returns the header length in 32-bit words, as stored.
func (t TCP) DataOffset() uint8 { return t.dataOffset }

// Reserved returns the reserved bits, as stored.
func (t TCP) Reserved() uint8 { return t.reserved }

// Flags returns the raw control flag bits.
func (t TCP) Flags() uint16 { return t.flags }

// WindowSize returns the advertised receive window.
func (t TCP) WindowSize() uint16 { return t.windowSize }

// Checksum returns the stored checksum.
func (t TCP) Checksum() uint16 { return t.checksum }

// UrgentPointer returns the urgent offset.
func (t TCP) UrgentPointer() uint16 { return t.urgentPointer }

// Options returns a copy of the raw option bytes.
// Use OptionsRO to inspect them without copying.
func (t TCP) Options() []byte { return slices.Clone(t.options) }

// Padding returns a copy of the raw padding bytes.
func (t TCP) Padding() []byte { return slices.Clone(t.padding) }

// Data returns a copy of the payload.
func (t TCP) Data() []byte { return slices.Clone(t.data) }

// WithSource returns a copy of t with the source address set to v.
func (t TCP) WithSource(v netip.Addr) TCP {
	t.source = v
	return t
}

// WithDestination returns a copy of t with the destination address set to v.
func (t TCP) WithDestination(v netip.Addr) TCP {
	t.destination = v
	return t
}

// WithSequence returns a copy of t with the sequence number set to v.
func (t TCP) WithSequence(v uint32) TCP {
	t.sequence = v
	return t
}

// WithAcknowledgment returns a copy of t with the acknowledgment number set to v.
func (t TCP) WithAcknowledgment(v uint32) TCP {
	t.acknowledgment = v
	return t
}

// WithDataOffset returns a copy of t with the data offset set to v.
// Values above 15 are kept as is.
func (t TCP) WithDataOffset(v uint8) TCP {
	t.dataOffset = v
	return t
}

// WithReserved returns a copy of t with the reserved bits set to v.
func (t TCP) WithReserved(v uint8) TCP {
	t.reserved = v
	return t
}

// WithFlags returns a copy of t with the raw flag bits set to v.
// Bits outside TCPFlagMask are kept as is.
func (t TCP) WithFlags(v uint16) TCP {
	t.flags = v
	return t
}

// WithWindowSize returns a copy of t with the window size set to v.
func (t TCP) WithWindowSize(v uint16) TCP {
	t.windowSize = v
	return t
}

// WithChecksum returns a copy of t with the stored checksum set to v.
func (t TCP) WithChecksum(v uint16) TCP {
	t.checksum = v
	return t
}

// WithUrgentPointer returns a copy of t with the urgent pointer set to v.
func (t TCP) WithUrgentPointer(v uint16) TCP {
	t.urgentPointer = v
	return t
}

// WithOptions returns a copy of t holding a copy of v as its option bytes.
func (t TCP) WithOptions(v []byte) TCP {
	t.options = slices.Clone(v)
	return t
}

// WithPadding returns a copy of t holding a copy of v as its padding bytes.
func (t TCP) WithPadding(v []byte) TCP {
	t.padding = slices.Clone(v)
	return t
}

// WithData returns a copy of t holding a copy of v as its payload.
func (t TCP) WithData(v []byte) TCP {
	t.data = slices.Clone(v)
	return t
}

// HeaderLen returns the header length in bytes implied by the stored
// data offset. It is not checked against the options and padding.
func (t TCP) HeaderLen() int {
	return int(t.dataOffset) * 4
}

// Clone returns a deep copy of t.
func (t TCP) Clone() TCP {
	t.options = slices.Clone(t.options)
	t.padding = slices.Clone(t.padding)
	t.data = slices.Clone(t.data)
	return t
}

// Equal reports whether t and o hold the same field values.
// A nil byte field equals an empty one.
func (t TCP) Equal(o TCP) bool {
	return t.source == o.source &&
		t.destination == o.destination &&
		t.sequence == o.sequence &&
		t.acknowledgment == o.acknowledgment &&
		t.dataOffset == o.dataOffset &&
		t.reserved == o.reserved &&
		t.flags == o.flags &&
		t.windowSize == o.windowSize &&
		t.checksum == o.checksum &&
		t.urgentPointer == o.urgentPointer &&
		bytes.Equal(t.options, o.options) &&
		bytes.Equal(t.padding, o.padding) &&
		bytes.Equal(t.data, o.data)
}
