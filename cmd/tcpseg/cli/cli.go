// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

// Package cli contains the cmd/tcpseg CLI code.
package cli

import (
	"context"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
	"tcpseg.dev/net/tcpseg"
	"tcpseg.dev/types/logger"
)

var (
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// envPrefix is the prefix of environment variables that set flags,
// as in TCPSEG_SEQ=5.
const envPrefix = "TCPSEG"

// logf receives diagnostics. It discards them unless -verbose is set.
var logf logger.Logf = logger.Discard

var rootArgs struct {
	verbose bool
	json    bool
}

func printf(format string, a ...any) {
	fmt.Fprintf(Stdout, format, a...)
}

func outln(a ...any) {
	fmt.Fprintln(Stdout, a...)
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(Stderr)
	return fs
}

// ffOptions are the ff options shared by every command's flag set.
func ffOptions() []ff.Option {
	return []ff.Option{ff.WithEnvVarPrefix(envPrefix)}
}

// Run runs the CLI. The args do not include the binary name.
func Run(args []string) error {
	rootArgs.verbose, rootArgs.json = false, false
	logf = logger.Discard

	rootfs := newFlagSet("tcpseg")
	rootfs.BoolVar(&rootArgs.verbose, "verbose", false, "log diagnostics to stderr")
	rootfs.BoolVar(&rootArgs.json, "json", false, "print records as JSON")
	rootfs.String("config", "", `optional file of root flag values, one "name value" per line`)

	rootCmd := &ffcli.Command{
		Name:       "tcpseg",
		ShortUsage: "tcpseg [flags] <subcommand> [command flags]",
		ShortHelp:  "Build, edit and print TCP header records.",
		LongHelp: strings.TrimSpace(`
Records are printed on one line followed by the hex of any non-empty
options, padding and data; pass -json for the JSON document form.

Every flag may also be set from the environment, e.g. TCPSEG_JSON=true
or TCPSEG_SEQ=5.
`),
		Subcommands: []*ffcli.Command{
			newCmd(),
			setCmd(),
			decodeCmd(),
			flagsCmd(),
		},
		FlagSet: rootfs,
		Options: append(ffOptions(),
			ff.WithConfigFileFlag("config"),
			ff.WithConfigFileParser(ff.PlainParser),
		),
		Exec:      func(context.Context, []string) error { return flag.ErrHelp },
		UsageFunc: usageFunc,
	}
	for _, c := range rootCmd.Subcommands {
		if c.UsageFunc == nil {
			c.UsageFunc = usageFunc
		}
	}

	if err := rootCmd.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if rootArgs.verbose {
		logf = logger.WithPrefix(logger.ToWriter(Stderr), "tcpseg: ")
	}

	err := rootCmd.Run(context.Background())
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	return err
}

func usageFunc(c *ffcli.Command) string {
	var b strings.Builder

	fmt.Fprintf(&b, "USAGE\n")
	if c.ShortUsage != "" {
		fmt.Fprintf(&b, "  %s\n", c.ShortUsage)
	} else {
		fmt.Fprintf(&b, "  %s\n", c.Name)
	}
	fmt.Fprintf(&b, "\n")

	if c.LongHelp != "" {
		fmt.Fprintf(&b, "%s\n\n", c.LongHelp)
	}

	if len(c.Subcommands) > 0 {
		fmt.Fprintf(&b, "SUBCOMMANDS\n")
		tw := tabwriter.NewWriter(&b, 0, 2, 2, ' ', 0)
		for _, sc := range c.Subcommands {
			fmt.Fprintf(tw, "  %s\t%s\n", sc.Name, sc.ShortHelp)
		}
		tw.Flush()
		fmt.Fprintf(&b, "\n")
	}

	if c.FlagSet != nil {
		var n int
		c.FlagSet.VisitAll(func(*flag.Flag) { n++ })
		if n > 0 {
			fmt.Fprintf(&b, "FLAGS\n")
			tw := tabwriter.NewWriter(&b, 0, 2, 2, ' ', 0)
			c.FlagSet.VisitAll(func(f *flag.Flag) {
				if f.DefValue != "" {
					fmt.Fprintf(tw, "  --%s\t%s (default %s)\n", f.Name, f.Usage, f.DefValue)
				} else {
					fmt.Fprintf(tw, "  --%s\t%s\n", f.Name, f.Usage)
				}
			})
			tw.Flush()
		}
	}

	return strings.TrimSpace(b.String())
}

// printRecord writes seg to Stdout in the format chosen by the root flags.
func printRecord(seg tcpseg.TCP) error {
	if rootArgs.json {
		b, err := seg.MarshalJSON()
		if err != nil {
			return fmt.Errorf("encoding record: %w", err)
		}
		outln(string(b))
		return nil
	}
	outln(seg.String())
	for _, f := range []struct {
		name string
		b    []byte
	}{
		{"options", seg.Options()},
		{"padding", seg.Padding()},
		{"data", seg.Data()},
	} {
		if len(f.b) > 0 {
			printf("  %s: %s\n", f.name, hex.EncodeToString(f.b))
		}
	}
	return nil
}
