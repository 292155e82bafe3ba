// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

package tcpseg

import (
	"net/netip"
	"testing"
	"testing/quick"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"tcpseg.dev/tstest"
)

// fields is every accessor's result, for diffing.
type fields struct {
	Source         netip.Addr
	Destination    netip.Addr
	Sequence       uint32
	Acknowledgment uint32
	DataOffset     uint8
	Reserved       uint8
	Flags          uint16
	WindowSize     uint16
	Checksum       uint16
	UrgentPointer  uint16
	Options        []byte
	Padding        []byte
	Data           []byte
}

func fieldsOf(t TCP) fields {
	return fields{
		Source:         t.Source(),
		Destination:    t.Destination(),
		Sequence:       t.Sequence(),
		Acknowledgment: t.Acknowledgment(),
		DataOffset:     t.DataOffset(),
		Reserved:       t.Reserved(),
		Flags:          t.Flags(),
		WindowSize:     t.WindowSize(),
		Checksum:       t.Checksum(),
		UrgentPointer:  t.UrgentPointer(),
		Options:        t.Options(),
		Padding:        t.Padding(),
		Data:           t.Data(),
	}
}

var cmpOpts = []cmp.Option{
	cmpopts.EquateComparable(netip.Addr{}),
	cmpopts.EquateEmpty(),
}

var (
	addr1 = netip.MustParseAddr("192.0.2.1")
	addr2 = netip.MustParseAddr("192.0.2.2")
	addr3 = netip.MustParseAddr("198.51.100.7")
)

// synTCP is a bare SYN with no options or payload.
func synTCP() TCP {
	return New(addr1, addr2, 1, 0, 5, 0, TCPSyn, 65535, 0, 0, []byte{}, []byte{}, []byte{})
}

func TestNewSYN(t *testing.T) {
	seg := synTCP()
	want := fields{
		Source:         addr1,
		Destination:    addr2,
		Sequence:       1,
		Acknowledgment: 0,
		DataOffset:     5,
		Reserved:       0,
		Flags:          0x02,
		WindowSize:     65535,
		Checksum:       0,
		UrgentPointer:  0,
		Options:        []byte{},
		Padding:        []byte{},
		Data:           []byte{},
	}
	if diff := cmp.Diff(fieldsOf(seg), want, cmpOpts...); diff != "" {
		t.Fatalf("New mismatch (-got +want):\n%s", diff)
	}

	next := seg.WithSequence(2)
	want.Sequence = 2
	if diff := cmp.Diff(fieldsOf(next), want, cmpOpts...); diff != "" {
		t.Errorf("WithSequence(2) mismatch (-got +want):\n%s", diff)
	}
	if got := seg.Sequence(); got != 1 {
		t.Errorf("receiver changed by WithSequence: Sequence = %d; want 1", got)
	}
}

func TestNewKeepsNilAndEmpty(t *testing.T) {
	seg := New(addr1, addr2, 0, 0, 0, 0, 0, 0, 0, 0, nil, []byte{}, nil)
	if seg.options != nil {
		t.Errorf("options = %#v; want nil", seg.options)
	}
	if seg.padding == nil || len(seg.padding) != 0 {
		t.Errorf("padding = %#v; want empty non-nil", seg.padding)
	}
}

func TestMutators(t *testing.T) {
	base := New(addr1, addr2, 100, 200, 6, 0, TCPAck|TCPPsh, 1024, 0xbeef, 0,
		[]byte{0x01, 0x01, 0x01, 0x00}, []byte{}, []byte("hello"))

	tests := []struct {
		name   string
		mutate func(TCP) TCP
		edit   func(*fields)
	}{
		{"source", func(s TCP) TCP { return s.WithSource(addr3) }, func(f *fields) { f.Source = addr3 }},
		{"destination", func(s TCP) TCP { return s.WithDestination(addr3) }, func(f *fields) { f.Destination = addr3 }},
		{"sequence", func(s TCP) TCP { return s.WithSequence(1<<32 - 1) }, func(f *fields) { f.Sequence = 1<<32 - 1 }},
		{"acknowledgment", func(s TCP) TCP { return s.WithAcknowledgment(7) }, func(f *fields) { f.Acknowledgment = 7 }},
		{"data_offset", func(s TCP) TCP { return s.WithDataOffset(15) }, func(f *fields) { f.DataOffset = 15 }},
		{"reserved", func(s TCP) TCP { return s.WithReserved(0x7) }, func(f *fields) { f.Reserved = 0x7 }},
		{"flags", func(s TCP) TCP { return s.WithFlags(TCPFin | TCPAck) }, func(f *fields) { f.Flags = TCPFin | TCPAck }},
		{"window_size", func(s TCP) TCP { return s.WithWindowSize(0) }, func(f *fields) { f.WindowSize = 0 }},
		{"checksum", func(s TCP) TCP { return s.WithChecksum(0x1234) }, func(f *fields) { f.Checksum = 0x1234 }},
		{"urgent_pointer", func(s TCP) TCP { return s.WithUrgentPointer(3) }, func(f *fields) { f.UrgentPointer = 3 }},
		{"options", func(s TCP) TCP { return s.WithOptions([]byte{2, 4, 5, 0xb4}) }, func(f *fields) { f.Options = []byte{2, 4, 5, 0xb4} }},
		{"options_empty", func(s TCP) TCP { return s.WithOptions(nil) }, func(f *fields) { f.Options = nil }},
		{"padding", func(s TCP) TCP { return s.WithPadding([]byte{0, 0, 0}) }, func(f *fields) { f.Padding = []byte{0, 0, 0} }},
		{"data", func(s TCP) TCP { return s.WithData([]byte("bye")) }, func(f *fields) { f.Data = []byte("bye") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := fieldsOf(base)
			want := fieldsOf(base)
			tt.edit(&want)

			got := tt.mutate(base)
			if diff := cmp.Diff(fieldsOf(got), want, cmpOpts...); diff != "" {
				t.Errorf("mutated record (-got +want):\n%s", diff)
			}
			if diff := cmp.Diff(fieldsOf(base), before, cmpOpts...); diff != "" {
				t.Errorf("receiver changed (-got +want):\n%s", diff)
			}
		})
	}
}

func TestMutatorChainOrder(t *testing.T) {
	base := synTCP()
	ab := base.WithAcknowledgment(42).WithFlags(TCPSynAck).WithData([]byte("x"))
	ba := base.WithData([]byte("x")).WithFlags(TCPSynAck).WithAcknowledgment(42)
	if !ab.Equal(ba) {
		t.Fatalf("chain order matters:\n%v\n%v", ab, ba)
	}
	if ab.Acknowledgment() != 42 || ab.Flags() != TCPSynAck || string(ab.Data()) != "x" {
		t.Errorf("chained record = %v", ab)
	}
}

func TestMutatorLastWins(t *testing.T) {
	got := synTCP().WithWindowSize(1).WithWindowSize(2).WindowSize()
	if got != 2 {
		t.Errorf("WindowSize = %d; want 2", got)
	}
}

func TestCopyIndependence(t *testing.T) {
	opts := []byte{1, 2, 3, 4}
	pad := []byte{0}
	data := []byte("payload")
	seg := New(addr1, addr2, 0, 0, 6, 0, 0, 0, 0, 0, opts, pad, data)

	// Caller's inputs.
	opts[0], pad[0], data[0] = 0xff, 0xff, 'P'
	// Accessor results.
	seg.Options()[1] = 0xff
	seg.Padding()[0] = 0xff
	seg.Data()[1] = 'A'

	want := fields{
		Source:      addr1,
		Destination: addr2,
		DataOffset:  6,
		Options:     []byte{1, 2, 3, 4},
		Padding:     []byte{0},
		Data:        []byte("payload"),
	}
	if diff := cmp.Diff(fieldsOf(seg), want, cmpOpts...); diff != "" {
		t.Errorf("record aliased caller memory (-got +want):\n%s", diff)
	}

	buf := []byte("abc")
	next := seg.WithData(buf)
	buf[0] = 'z'
	if got := string(next.Data()); got != "abc" {
		t.Errorf("WithData aliased its argument: Data = %q", got)
	}
}

func TestNoValidation(t *testing.T) {
	seg := New(netip.Addr{}, netip.IPv6Loopback(), 0, 0, 255, 0xff, 0xffff, 0, 0xffff, 0xffff, nil, nil, nil)
	if got := seg.DataOffset(); got != 255 {
		t.Errorf("DataOffset = %d; want 255", got)
	}
	if got := seg.Flags(); got != 0xffff {
		t.Errorf("Flags = %#x; want 0xffff", got)
	}
	if got := seg.Reserved(); got != 0xff {
		t.Errorf("Reserved = %#x; want 0xff", got)
	}
	if got := seg.HeaderLen(); got != 1020 {
		t.Errorf("HeaderLen = %d; want 1020", got)
	}
	if got := seg.Source(); got.IsValid() {
		t.Errorf("Source = %v; want zero Addr", got)
	}
	if got := seg.Destination(); got != netip.IPv6Loopback() {
		t.Errorf("Destination = %v; want ::1", got)
	}
}

func TestZeroValue(t *testing.T) {
	var seg TCP
	if diff := cmp.Diff(fieldsOf(seg), fields{}, cmpOpts...); diff != "" {
		t.Errorf("zero TCP (-got +want):\n%s", diff)
	}
	if !seg.Equal(New(netip.Addr{}, netip.Addr{}, 0, 0, 0, 0, 0, 0, 0, 0, nil, nil, nil)) {
		t.Error("zero TCP != New with zero values")
	}
}

func TestCloneAndEqual(t *testing.T) {
	seg := New(addr1, addr2, 9, 9, 5, 0, TCPPsh, 9, 9, 9, []byte{1}, []byte{2}, []byte{3})
	c := seg.Clone()
	if !c.Equal(seg) {
		t.Fatalf("Clone not Equal: %v vs %v", c, seg)
	}
	c.options[0], c.padding[0], c.data[0] = 0, 0, 0
	if seg.options[0] != 1 || seg.padding[0] != 2 || seg.data[0] != 3 {
		t.Errorf("Clone shares storage with the original: %v", seg)
	}
	if c.Equal(seg) {
		t.Error("Equal ignores byte fields")
	}

	if !seg.WithData(nil).Equal(seg.WithData([]byte{})) {
		t.Error("nil and empty data should be Equal")
	}
	if seg.Equal(seg.WithChecksum(10)) {
		t.Error("Equal ignores checksum")
	}
	if seg.Equal(seg.WithSource(addr3)) {
		t.Error("Equal ignores source")
	}
}

func TestAccessorAllocs(t *testing.T) {
	seg := synTCP().WithData([]byte("some payload"))
	var n int
	tstest.CheckAllocs(t, "scalar accessors", 0, func() {
		n += int(seg.Sequence()) + int(seg.Flags()) + seg.HeaderLen()
	})
	tstest.CheckAllocs(t, "WithSequence", 0, func() {
		seg = seg.WithSequence(uint32(n))
	})
	var b []byte
	tstest.CheckAllocs(t, "Data", 1, func() {
		b = seg.Data()
	})
	_ = b
}

func TestQuickRoundTrip(t *testing.T) {
	f := func(src, dst [4]byte, seq, ack uint32, off, rsv uint8, flags, win, sum, urg uint16, opts, pad, data []byte) bool {
		s, d := netip.AddrFrom4(src), netip.AddrFrom4(dst)
		seg := New(s, d, seq, ack, off, rsv, flags, win, sum, urg, opts, pad, data)
		want := fields{s, d, seq, ack, off, rsv, flags, win, sum, urg, opts, pad, data}
		if diff := cmp.Diff(fieldsOf(seg), want, cmpOpts...); diff != "" {
			t.Errorf("round trip (-got +want):\n%s", diff)
		}
		return !t.Failed()
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestQuickMutatorIsolation(t *testing.T) {
	f := func(seq, ack uint32, off uint8, flags, urg uint16, data []byte) bool {
		base := New(addr1, addr2, seq, ack, off, 0, flags, 0, 0, urg, nil, nil, data)
		want := fieldsOf(base)

		got := base.WithUrgentPointer(urg + 1)
		want.UrgentPointer = urg + 1
		if diff := cmp.Diff(fieldsOf(got), want, cmpOpts...); diff != "" {
			t.Errorf("WithUrgentPointer (-got +want):\n%s", diff)
		}

		got = got.WithData(append(data, 'x'))
		want.Data = append(want.Data, 'x')
		if diff := cmp.Diff(fieldsOf(got), want, cmpOpts...); diff != "" {
			t.Errorf("WithData (-got +want):\n%s", diff)
		}
		return !t.Failed()
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}
