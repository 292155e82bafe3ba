// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/peterbourgon/ff/v3/ffcli"
	"github.com/tailscale/hujson"
	"tcpseg.dev/net/tcpseg"
)

func setCmd() *ffcli.Command {
	var args recordArgs
	fs := newFlagSet("set")
	args.register(fs)
	return &ffcli.Command{
		Name:       "set",
		ShortUsage: "tcpseg set [field flags] [file.json | -]",
		ShortHelp:  "Change fields of a JSON record and print it",
		LongHelp: `Set reads a record in the JSON form printed by "tcpseg -json new",
from the named file or from stdin, replaces exactly the fields whose
flags were given, and prints the result. The file may use HuJSON
(comments and trailing commas).`,
		FlagSet: fs,
		Options: ffOptions(),
		Exec: func(ctx context.Context, extra []string) error {
			if len(extra) > 1 {
				return errors.New("usage: tcpseg set [flags] [file.json | -]")
			}
			name := "-"
			if len(extra) == 1 {
				name = extra[0]
			}
			seg, err := readRecord(name)
			if err != nil {
				return err
			}
			v, err := args.parse()
			if err != nil {
				return err
			}
			return printRecord(v.apply(seg, fs))
		},
	}
}

// readRecord reads a HuJSON record from the named file, or stdin for "-".
func readRecord(name string) (tcpseg.TCP, error) {
	var (
		b   []byte
		err error
	)
	if name == "-" {
		b, err = io.ReadAll(Stdin)
	} else {
		b, err = os.ReadFile(name)
	}
	if err != nil {
		return tcpseg.TCP{}, fmt.Errorf("reading record: %w", err)
	}
	std, err := hujson.Standardize(b)
	if err != nil {
		return tcpseg.TCP{}, fmt.Errorf("parsing record from %s: %w", name, err)
	}
	var seg tcpseg.TCP
	if err := seg.UnmarshalJSON(std); err != nil {
		return tcpseg.TCP{}, fmt.Errorf("parsing record from %s: %w", name, err)
	}
	logf("read %s: %v", name, seg)
	return seg, nil
}
