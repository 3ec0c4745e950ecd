// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// =============================================================================
// SHARED HELPER FUNCTIONS
// =============================================================================

// padRight pads s with spaces to display width w.
func padRight(s string, w int) string {
	return runewidth.FillRight(s, w)
}

// symbolWidth is the widest display width among the runes of the given
// strings, at least 1.
func symbolWidth(sets ...string) int {
	w := 1
	for _, s := range sets {
		for _, r := range s {
			if rw := runewidth.RuneWidth(r); rw > w {
				w = rw
			}
		}
	}
	return w
}

// fmtPercent formats a percentage with one decimal place.
func fmtPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', 1, 64) + "%"
}

// joinInts joins integers with commas.
func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

// clamp limits i to [0, n-1]; n must be positive.
func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
