// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/peterbourgon/ff/v3/ffcli"
	"tcpseg.dev/net/tcpseg/tcplayers"
)

func decodeCmd() *ffcli.Command {
	var ethernet bool
	fs := newFlagSet("decode")
	fs.BoolVar(&ethernet, "ethernet", false, "input starts with an Ethernet header rather than IPv4")
	return &ffcli.Command{
		Name:       "decode",
		ShortUsage: "tcpseg decode [--ethernet] <hex packet>",
		ShortHelp:  "Print the record for a captured IPv4 TCP packet",
		LongHelp: `Decode takes a packet as hex, as copied from tcpdump -xx or Wireshark,
lets gopacket decode it, and prints the record for its IPv4 and TCP
layers. Checksums are shown as captured and are not verified.`,
		FlagSet: fs,
		Options: ffOptions(),
		Exec: func(ctx context.Context, args []string) error {
			if len(args) == 0 {
				return errors.New("usage: tcpseg decode [--ethernet] <hex packet>")
			}
			raw, err := parseHex("packet", strings.Join(args, ""))
			if err != nil {
				return err
			}
			first := gopacket.Decoder(layers.LayerTypeIPv4)
			if ethernet {
				first = layers.LayerTypeEthernet
			}
			p := gopacket.NewPacket(raw, first, gopacket.Default)
			if el := p.ErrorLayer(); el != nil {
				logf("decode: %v", el.Error())
			}
			for _, l := range p.Layers() {
				logf("layer %v, %d header bytes", l.LayerType(), len(l.LayerContents()))
			}
			seg, ok := tcplayers.FromPacket(p)
			if !ok {
				return errors.New("no IPv4 TCP segment in packet")
			}
			return printRecord(seg)
		},
	}
}
