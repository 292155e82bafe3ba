// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

package tcpseg

import (
	"net/netip"

	jsonv2 "github.com/go-json-experiment/json"
)

// tcpJSON is the JSON document form of a TCP. It is a tooling format,
// not the TCP wire format.
type tcpJSON struct {
	Source         netip.Addr `json:"src"`
	Destination    netip.Addr `json:"dst"`
	Sequence       uint32     `json:"seq"`
	Acknowledgment uint32     `json:"ack"`
	DataOffset     uint8      `json:"dataOffset"`
	Reserved       uint8      `json:"reserved"`
	Flags          uint16     `json:"flags"`
	WindowSize     uint16     `json:"window"`
	Checksum       uint16     `json:"checksum"`
	UrgentPointer  uint16     `json:"urgent"`
	Options        []byte     `json:"options,format:hex"`
	Padding        []byte     `json:"padding,format:hex"`
	Data           []byte     `json:"data,format:hex"`
}

// MarshalJSON implements [json.Marshaler].
func (t TCP) MarshalJSON() ([]byte, error) {
	return jsonv2.Marshal(tcpJSON{
		Source:         t.source,
		Destination:    t.destination,
		Sequence:       t.sequence,
		Acknowledgment: t.acknowledgment,
		DataOffset:     t.dataOffset,
		Reserved:       t.reserved,
		Flags:          t.flags,
		WindowSize:     t.windowSize,
		Checksum:       t.checksum,
		UrgentPointer:  t.urgentPointer,
		Options:        t.options,
		Padding:        t.padding,
		Data:           t.data,
	})
}

// UnmarshalJSON implements [json.Unmarshaler].
//
// Field values are stored unchecked. Only malformed JSON, such as a bad
// address, bad hex or a number that overflows its field, is an error.
// Missing members are left zero. A JSON null leaves t unchanged.
func (t *TCP) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var v tcpJSON
	if err := jsonv2.Unmarshal(b, &v, jsonv2.RejectUnknownMembers(true)); err != nil {
		return err
	}
	*t = TCP{
		source:         v.Source,
		destination:    v.Destination,
		sequence:       v.Sequence,
		acknowledgment: v.Acknowledgment,
		dataOffset:     v.DataOffset,
		reserved:       v.Reserved,
		flags:          v.Flags,
		windowSize:     v.WindowSize,
		checksum:       v.Checksum,
		urgentPointer:  v.UrgentPointer,
		options:        v.Options,
		padding:        v.Padding,
		data:           v.Data,
	}
	return nil
}
