// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

package tcpseg

import (
	"net/netip"

	"tcpseg.dev/types/strbuilder"
)

// String returns a one-line debug form of t. Variable-length fields are
// shown by length only.
//
//	TCP{192.0.2.1 > 192.0.2.2 seq=1 ack=0 off=5 rsv=0 flags=0x002[SYN] win=65535 sum=0x0000 urg=0 opts=0 pad=0 data=0}
func (t TCP) String() string {
	sb := strbuilder.Get()
	sb.WriteString("TCP{")
	writeAddr(sb, t.source)
	sb.WriteString(" > ")
	writeAddr(sb, t.destination)
	sb.WriteString(" seq=")
	sb.WriteUint(uint64(t.sequence))
	sb.WriteString(" ack=")
	sb.WriteUint(uint64(t.acknowledgment))
	sb.WriteString(" off=")
	sb.WriteUint(uint64(t.dataOffset))
	sb.WriteString(" rsv=")
	sb.WriteUint(uint64(t.reserved))
	sb.WriteString(" flags=")
	sb.WriteHex(uint64(t.flags), 3)
	sb.WriteByte('[')
	writeFlags(sb, t.flags)
	sb.WriteByte(']')
	sb.WriteString(" win=")
	sb.WriteUint(uint64(t.windowSize))
	sb.WriteString(" sum=")
	sb.WriteHex(uint64(t.checksum), 4)
	sb.WriteString(" urg=")
	sb.WriteUint(uint64(t.urgentPointer))
	sb.WriteString(" opts=")
	sb.WriteUint(uint64(len(t.options)))
	sb.WriteString(" pad=")
	sb.WriteUint(uint64(len(t.padding)))
	sb.WriteString(" data=")
	sb.WriteUint(uint64(len(t.data)))
	sb.WriteByte('}')
	return sb.String()
}

func writeAddr(sb *strbuilder.Builder, ip netip.Addr) {
	if !ip.IsValid() {
		sb.WriteString("invalid IP") // what netip.Addr.String says
		return
	}
	sb.WriteAppender(ip.AppendTo)
}
