// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for cipherlab's trace views.

All colors use Lip Gloss AdaptiveColor for automatic light/dark terminal
detection.

# Color System (colors.go)

  - Purple - Titles, rules, the guide row/column of a lookup
  - Cyan - Consumed symbols
  - Emerald - Produced symbols
  - Amber - Fallback notices, zenith and nadir markers
  - Rose - Errors

The *Deep variants are cell backgrounds.

# Theme System (theme.go)

	theme := styles.NewTheme()
	theme.SetSize(width, height)
	if theme.GetLayoutMode() == styles.LayoutNarrow {
		// stack panels instead of placing them side by side
	}

# Glyphs (glyphs.go)

Marker characters with an ASCII fallback:

	theme.UseASCII()
	theme.Glyphs.Zenith // "v"
*/
package styles
