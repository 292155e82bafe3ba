// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

// Package tcplayers builds tcpseg records from packets that gopacket
// has already decoded. It maps fields only; all byte decoding is
// gopacket's, and nothing here verifies checksums or lengths.
package tcplayers

import (
	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"go4.org/netipx"
	"tcpseg.dev/net/tcpseg"
)

// tcpFixedHeaderLength is the size of a TCP header with no options.
const tcpFixedHeaderLength = 20

// FromPacket returns the record for the first IPv4 and TCP layers in p.
// It reports false if p has no IPv4 layer or no TCP layer.
func FromPacket(p gopacket.Packet) (tcpseg.TCP, bool) {
	ip, ok := p.Layer(layers.LayerTypeIPv4).(*layers.IPv4)
	if !ok {
		return tcpseg.TCP{}, false
	}
	tcp, ok := p.Layer(layers.LayerTypeTCP).(*layers.TCP)
	if !ok {
		return tcpseg.TCP{}, false
	}
	return FromLayers(ip, tcp), true
}

// FromLayers returns the record for a decoded TCP layer and the IPv4
// layer carrying it. ip may be nil, in which case both addresses are
// left zero.
//
// The option bytes are the raw header bytes between the fixed header
// and gopacket's Padding; the reserved bits are read from the raw
// header too. Both are empty when tcp.Contents is shorter than a fixed
// header, as it is for hand-built layers.
func FromLayers(ip *layers.IPv4, tcp *layers.TCP) tcpseg.TCP {
	var seg tcpseg.TCP
	if ip != nil {
		src, _ := netipx.FromStdIP(ip.SrcIP)
		dst, _ := netipx.FromStdIP(ip.DstIP)
		seg = seg.WithSource(src).WithDestination(dst)
	}
	var reserved uint8
	var options []byte
	if hdr := tcp.Contents; len(hdr) >= tcpFixedHeaderLength {
		reserved = (hdr[12] >> 1) & 0x7
		if end := len(hdr) - len(tcp.Padding); end > tcpFixedHeaderLength {
			options = hdr[tcpFixedHeaderLength:end]
		}
	}
	return seg.
		WithSequence(tcp.Seq).
		WithAcknowledgment(tcp.Ack).
		WithDataOffset(tcp.DataOffset).
		WithReserved(reserved).
		WithFlags(Flags(tcp)).
		WithWindowSize(tcp.Window).
		WithChecksum(tcp.Checksum).
		WithUrgentPointer(tcp.Urgent).
		WithOptions(options).
		WithPadding(tcp.Padding).
		WithData(tcp.Payload)
}

// Flags packs gopacket's per-flag booleans into raw tcpseg flag bits.
func Flags(tcp *layers.TCP) uint16 {
	var f uint16
	for _, b := range [...]struct {
		set bool
		bit uint16
	}{
		{tcp.FIN, tcpseg.TCPFin},
		{tcp.SYN, tcpseg.TCPSyn},
		{tcp.RST, tcpseg.TCPRst},
		{tcp.PSH, tcpseg.TCPPsh},
		{tcp.ACK, tcpseg.TCPAck},
		{tcp.URG, tcpseg.TCPUrg},
		{tcp.ECE, tcpseg.TCPEce},
		{tcp.CWR, tcpseg.TCPCwr},
		{tcp.NS, tcpseg.TCPNs},
	} {
		if b.set {
			f |= b.bit
		}
	}
	return f
}
