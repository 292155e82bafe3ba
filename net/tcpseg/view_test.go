// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

package tcpseg

import (
	"testing"

	"go4.org/mem"
	"tcpseg.dev/tstest"
)

func TestViews(t *testing.T) {
	seg := synTCP().
		WithOptions([]byte{2, 4, 5, 0xb4}).
		WithPadding([]byte{0}).
		WithData([]byte("GET / HTTP/1.1\r\n"))

	if !seg.OptionsRO().EqualBytes([]byte{2, 4, 5, 0xb4}) {
		t.Errorf("OptionsRO = %q", seg.OptionsRO().StringCopy())
	}
	if got := seg.PaddingRO().Len(); got != 1 {
		t.Errorf("PaddingRO().Len() = %d; want 1", got)
	}
	if !mem.HasPrefix(seg.DataRO(), mem.S("GET ")) {
		t.Errorf("DataRO = %q; want GET prefix", seg.DataRO().StringCopy())
	}
	if got := synTCP().DataRO().Len(); got != 0 {
		t.Errorf("empty DataRO().Len() = %d", got)
	}

	var ro mem.RO
	tstest.CheckAllocs(t, "DataRO", 0, func() {
		ro = seg.DataRO()
	})
	if ro.Len() != len("GET / HTTP/1.1\r\n") {
		t.Errorf("ro.Len() = %d", ro.Len())
	}
}
