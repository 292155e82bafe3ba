// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

package tcpseg

import (
	"fmt"
	"strconv"
	"strings"

	"tcpseg.dev/types/strbuilder"
)

// Control flag bits of the raw TCP flags value.
// The record never checks which of these are set.
const (
	TCPFin    = 0x001
	TCPSyn    = 0x002
	TCPRst    = 0x004
	TCPPsh    = 0x008
	TCPAck    = 0x010
	TCPUrg    = 0x020
	TCPEce    = 0x040
	TCPCwr    = 0x080
	TCPNs     = 0x100
	TCPSynAck = TCPSyn | TCPAck

	// TCPFlagMask covers the nine defined flag bits.
	TCPFlagMask = 0x1ff
)

var flagNames = [...]struct {
	bit  uint16
	name string
}{
	{TCPNs, "NS"},
	{TCPCwr, "CWR"},
	{TCPEce, "ECE"},
	{TCPUrg, "URG"},
	{TCPAck, "ACK"},
	{TCPPsh, "PSH"},
	{TCPRst, "RST"},
	{TCPSyn, "SYN"},
	{TCPFin, "FIN"},
}

// FlagString returns the names of the bits set in flags joined by '|',
// highest bit first, so TCPSynAck is "ACK|SYN". Bits outside
// TCPFlagMask are appended as one hex value. Zero is "none".
func FlagString(flags uint16) string {
	sb := strbuilder.Get()
	writeFlags(sb, flags)
	return sb.String()
}

func writeFlags(w *strbuilder.Builder, flags uint16) {
	if flags == 0 {
		w.WriteString("none")
		return
	}
	first := true
	sep := func() {
		if !first {
			w.WriteByte('|')
		}
		first = false
	}
	for _, f := range flagNames {
		if flags&f.bit != 0 {
			sep()
			w.WriteString(f.name)
		}
	}
	if extra := flags &^ TCPFlagMask; extra != 0 {
		sep()
		w.WriteHex(uint64(extra), 0)
	}
}

// ParseFlags parses flags written as a number (decimal, or hex with a
// 0x prefix) or as flag names joined by '|' or ',', such as "syn|ack".
// Names are case-insensitive, and a numeric term may appear among
// them. "" and "none" are zero. ParseFlags(FlagString(f)) == f.
func ParseFlags(s string) (uint16, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "none") {
		return 0, nil
	}
	if v, err := strconv.ParseUint(s, 0, 16); err == nil {
		return uint16(v), nil
	}
	var flags uint16
	terms := strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == ',' })
	for _, term := range terms {
		term = strings.TrimSpace(term)
		if bit, ok := flagBit(term); ok {
			flags |= bit
			continue
		}
		v, err := strconv.ParseUint(term, 0, 16)
		if err != nil {
			return 0, fmt.Errorf("unknown TCP flag %q", term)
		}
		flags |= uint16(v)
	}
	return flags, nil
}

func flagBit(name string) (uint16, bool) {
	for _, f := range flagNames {
		if strings.EqualFold(f.name, name) {
			return f.bit, true
		}
	}
	return 0, false
}
