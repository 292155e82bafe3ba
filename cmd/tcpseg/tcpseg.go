// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

// The tcpseg command builds, edits and prints TCP header records.
package main // import "tcpseg.dev/cmd/tcpseg"

import (
	"fmt"
	"os"

	"tcpseg.dev/cmd/tcpseg/cli"
)

func main() {
	if err := cli.Run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
