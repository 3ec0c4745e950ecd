// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

// Glyphs are the marker characters drawn around trace views.
type Glyphs struct {
	Zenith  string // above position 0 of a disk
	Nadir   string // above position 13 of a disk
	Arrow   string
	Playing string
	Paused  string
	Bullet  string
	Gap     string // empty rail fence cell
}

// UnicodeGlyphs is the default set.
var UnicodeGlyphs = Glyphs{
	Zenith:  "▼",
	Nadir:   "▲",
	Arrow:   "→",
	Playing: "▶",
	Paused:  "⏸",
	Bullet:  "•",
	Gap:     "·",
}

// ASCIIGlyphs is used when NO_COLOR is set or the terminal is not UTF-8.
var ASCIIGlyphs = Glyphs{
	Zenith:  "v",
	Nadir:   "^",
	Arrow:   "->",
	Playing: ">",
	Paused:  "||",
	Bullet:  "*",
	Gap:     ".",
}
