// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/peterbourgon/ff/v3/ffcli"
	"tcpseg.dev/net/tcpseg"
)

func flagsCmd() *ffcli.Command {
	return &ffcli.Command{
		Name:       "flags",
		ShortUsage: "tcpseg flags <value>",
		ShortHelp:  "Show a TCP flags value as number and names",
		LongHelp: `The value is a number (0x12) or names joined by '|' or ',' (syn|ack).
Bits beyond the nine defined flags are shown in hex.`,
		FlagSet: newFlagSet("flags"),
		Exec: func(ctx context.Context, args []string) error {
			if len(args) == 0 {
				return errors.New("usage: tcpseg flags <value>")
			}
			f, err := tcpseg.ParseFlags(strings.Join(args, "|"))
			if err != nil {
				return err
			}
			printf("0x%03x %s\n", f, tcpseg.FlagString(f))
			return nil
		},
	}
}
