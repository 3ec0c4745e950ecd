// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// =============================================================================
// HELPER FUNCTION TESTS
// =============================================================================

func TestPadRight(t *testing.T) {
	require.Equal(t, "ab   ", padRight("ab", 5))
	require.Equal(t, "漢  ", padRight("漢", 4))
	require.Equal(t, "abcdef", padRight("abcdef", 3))
}

func TestSymbolWidth(t *testing.T) {
	require.Equal(t, 1, symbolWidth())
	require.Equal(t, 1, symbolWidth("ABC", "xyz"))
	require.Equal(t, 2, symbolWidth("AB", "漢"))
}

func TestFmtPercent(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{0, "0.0%"},
		{50, "50.0%"},
		{33.333, "33.3%"},
		{99.96, "100.0%"},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, fmtPercent(tc.input))
	}
}

func TestJoinIntsAndClamp(t *testing.T) {
	require.Equal(t, "0,4,8", joinInts([]int{0, 4, 8}))
	require.Equal(t, "", joinInts(nil))

	require.Equal(t, 0, clamp(-3, 5))
	require.Equal(t, 4, clamp(9, 5))
	require.Equal(t, 2, clamp(2, 5))
}
