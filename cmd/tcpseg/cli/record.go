// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

package cli

import (
	"encoding/hex"
	"flag"
	"fmt"
	"net/netip"
	"strconv"
	"strings"

	"tcpseg.dev/net/tcpseg"
)

// recordArgs holds the per-field flags shared by new and set.
// Values are kept as the raw flag strings and parsed on use, so that
// set can tell which fields were given.
type recordArgs struct {
	src, dst      string
	seq, ack      string
	off, reserved string
	flags         string
	win, sum, urg string
	options       string
	padding       string
	data          string
}

func (a *recordArgs) register(fs *flag.FlagSet) {
	fs.StringVar(&a.src, "src", "", "source IPv4 address")
	fs.StringVar(&a.dst, "dst", "", "destination IPv4 address")
	fs.StringVar(&a.seq, "seq", "0", "sequence number")
	fs.StringVar(&a.ack, "ack", "0", "acknowledgment number")
	fs.StringVar(&a.off, "off", "0", "data offset in 32-bit words")
	fs.StringVar(&a.reserved, "reserved", "0", "reserved bits")
	fs.StringVar(&a.flags, "flags", "none", `control flags, as a number or names like "syn|ack"`)
	fs.StringVar(&a.win, "win", "0", "window size")
	fs.StringVar(&a.sum, "sum", "0", "checksum to store (never computed)")
	fs.StringVar(&a.urg, "urg", "0", "urgent pointer")
	fs.StringVar(&a.options, "options", "", "raw option bytes, hex")
	fs.StringVar(&a.padding, "padding", "", "raw padding bytes, hex")
	fs.StringVar(&a.data, "data", "", "payload bytes, hex")
}

// recordValues is recordArgs after parsing.
type recordValues struct {
	src, dst      netip.Addr
	seq, ack      uint32
	off, reserved uint8
	flags         uint16
	win, sum, urg uint16
	options       []byte
	padding       []byte
	data          []byte
}

func (a *recordArgs) parse() (v recordValues, err error) {
	if v.src, err = parseAddr("src", a.src); err != nil {
		return v, err
	}
	if v.dst, err = parseAddr("dst", a.dst); err != nil {
		return v, err
	}
	if v.seq, err = parseUint[uint32]("seq", a.seq); err != nil {
		return v, err
	}
	if v.ack, err = parseUint[uint32]("ack", a.ack); err != nil {
		return v, err
	}
	if v.off, err = parseUint[uint8]("off", a.off); err != nil {
		return v, err
	}
	if v.reserved, err = parseUint[uint8]("reserved", a.reserved); err != nil {
		return v, err
	}
	if v.flags, err = tcpseg.ParseFlags(a.flags); err != nil {
		return v, fmt.Errorf("--flags: %w", err)
	}
	if v.win, err = parseUint[uint16]("win", a.win); err != nil {
		return v, err
	}
	if v.sum, err = parseUint[uint16]("sum", a.sum); err != nil {
		return v, err
	}
	if v.urg, err = parseUint[uint16]("urg", a.urg); err != nil {
		return v, err
	}
	if v.options, err = parseHex("options", a.options); err != nil {
		return v, err
	}
	if v.padding, err = parseHex("padding", a.padding); err != nil {
		return v, err
	}
	if v.data, err = parseHex("data", a.data); err != nil {
		return v, err
	}
	return v, nil
}

// build returns the record holding every parsed field.
func (v recordValues) build() tcpseg.TCP {
	return tcpseg.New(v.src, v.dst, v.seq, v.ack, v.off, v.reserved,
		v.flags, v.win, v.sum, v.urg, v.options, v.padding, v.data)
}

// apply returns seg with the field of each flag set in fs replaced.
// Each flag names a distinct field, so the order does not matter.
func (v recordValues) apply(seg tcpseg.TCP, fs *flag.FlagSet) tcpseg.TCP {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "src":
			seg = seg.WithSource(v.src)
		case "dst":
			seg = seg.WithDestination(v.dst)
		case "seq":
			seg = seg.WithSequence(v.seq)
		case "ack":
			seg = seg.WithAcknowledgment(v.ack)
		case "off":
			seg = seg.WithDataOffset(v.off)
		case "reserved":
			seg = seg.WithReserved(v.reserved)
		case "flags":
			seg = seg.WithFlags(v.flags)
		case "win":
			seg = seg.WithWindowSize(v.win)
		case "sum":
			seg = seg.WithChecksum(v.sum)
		case "urg":
			seg = seg.WithUrgentPointer(v.urg)
		case "options":
			seg = seg.WithOptions(v.options)
		case "padding":
			seg = seg.WithPadding(v.padding)
		case "data":
			seg = seg.WithData(v.data)
		default:
			return
		}
		logf("set %s=%s", f.Name, f.Value)
	})
	return seg
}

func parseAddr(name, s string) (netip.Addr, error) {
	if s == "" {
		return netip.Addr{}, nil
	}
	ip, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("--%s: %w", name, err)
	}
	if !ip.Is4() {
		logf("--%s %v is not an IPv4 address; keeping it anyway", name, ip)
	}
	return ip, nil
}

func parseUint[T uint8 | uint16 | uint32](name, s string) (T, error) {
	var zero T
	bits := 8
	switch any(zero).(type) {
	case uint16:
		bits = 16
	case uint32:
		bits = 32
	}
	v, err := strconv.ParseUint(strings.TrimSpace(s), 0, bits)
	if err != nil {
		return 0, fmt.Errorf("--%s: %w", name, err)
	}
	return T(v), nil
}

// parseHex decodes s as hex, ignoring spaces and colons between bytes.
func parseHex(name, s string) ([]byte, error) {
	s = strings.NewReplacer(" ", "", ":", "").Replace(s)
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", name, err)
	}
	return b, nil
}
