// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

package tcpseg

import "go4.org/mem"

// OptionsRO returns a read-only view of the option bytes without
// copying them.
func (t TCP) OptionsRO() mem.RO { return mem.B(t.options) }

// PaddingRO returns a read-only view of the padding bytes without
// copying them.
func (t TCP) PaddingRO() mem.RO { return mem.B(t.padding) }

// DataRO returns a read-only view of the payload without copying it.
func (t TCP) DataRO() mem.RO { return mem.B(t.data) }
