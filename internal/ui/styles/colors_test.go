// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// COLOR DEFINITION TESTS
// =============================================================================

func TestPaletteIsDefined(t *testing.T) {
	colors := map[string]lipgloss.AdaptiveColor{
		"Purple":        Purple,
		"PurpleDeep":    PurpleDeep,
		"Cyan":          Cyan,
		"CyanDeep":      CyanDeep,
		"Emerald":       Emerald,
		"EmeraldDeep":   EmeraldDeep,
		"Rose":          Rose,
		"Amber":         Amber,
		"SurfaceDim":    SurfaceDim,
		"Overlay":       Overlay,
		"OverlayDim":    OverlayDim,
		"TextPrimary":   TextPrimary,
		"TextSecondary": TextSecondary,
		"TextMuted":     TextMuted,
		"TextInverse":   TextInverse,
	}

	for name, c := range colors {
		require.Regexp(t, `^#[0-9A-F]{6}$`, c.Light, name)
		require.Regexp(t, `^#[0-9A-F]{6}$`, c.Dark, name)
	}
}

func TestCellBackgroundsDiffer(t *testing.T) {
	// The consumed and produced cells must be distinguishable in both modes.
	require.NotEqual(t, CyanDeep.Dark, EmeraldDeep.Dark)
	require.NotEqual(t, CyanDeep.Light, EmeraldDeep.Light)
}
