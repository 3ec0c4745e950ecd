// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the views used by cipherlab's step player and
by the CLI's --trace output.

# Components

TraceView (trace_view.go, trace_ciphers.go) - Renders an engine.Outcome one
frame at a time, drawing the cipher's own state: Chaocipher disks with zenith
and nadir markers, the Playfair square, a Vigenère tabula recta row, the Rail
Fence zig-zag and the folded ROT47 ring.

Header (header.go) - Title bar with cipher, direction and key.

StatusBar (statusbar.go) - Playback state and position.

# Highlighting

Cells carry brackets as well as colour so traces stay readable with NO_COLOR:

	[X]  consumed symbol
	(X)  produced symbol
	{X}  both (a Playfair cell that is read and written in one pair)

# Usage

	out, _ := engine.Run(engine.Request{Cipher: "playfair", Text: "HELLO", Key: "MONARQUIA"})
	view := components.NewTraceView(styles.NewTheme(), out)
	view.SetWidth(width)
	fmt.Println(view.Render(0))
*/
package components
