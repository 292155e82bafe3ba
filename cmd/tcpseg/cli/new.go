// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

package cli

import (
	"context"
	"errors"

	"github.com/peterbourgon/ff/v3/ffcli"
)

func newCmd() *ffcli.Command {
	var args recordArgs
	fs := newFlagSet("new")
	args.register(fs)
	return &ffcli.Command{
		Name:       "new",
		ShortUsage: "tcpseg new [--src=ip] [--dst=ip] [--seq=n] ... [--data=hex]",
		ShortHelp:  "Build a record from flags and print it",
		LongHelp: `Every field of the record comes from its flag; unset fields are zero
or empty. Values are stored as given: no field is range-checked against
the TCP wire format and the checksum is never computed.`,
		FlagSet: fs,
		Options: ffOptions(),
		Exec: func(ctx context.Context, extra []string) error {
			if len(extra) > 0 {
				return errors.New("usage: tcpseg new [flags]; unexpected arguments")
			}
			v, err := args.parse()
			if err != nil {
				return err
			}
			return printRecord(v.build())
		},
	}
}
