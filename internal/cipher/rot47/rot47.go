// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package rot47 implements ROT47: a rotation by 47 inside the 94 printable
// ASCII symbols '!'..'~'. It is its own inverse, so there is one Transform
// and no direction.
package rot47

import (
	"strings"
	"unicode/utf8"

	"github.com/jeranaias/cipherlab/internal/alphabet"
)

// Shift is half the printable window.
const Shift = alphabet.PrintableSize / 2

// Step is one rune before and after rotation.
type Step struct {
	Before  rune
	After   rune
	Shifted bool // false when Before is outside '!'..'~'
}

// Result is the outcome of a Transform.
type Result struct {
	Text       string
	Normalized string // identical to the input
	Steps      []Step
}

// Rotate maps one rune. Runes outside '!'..'~' are returned unchanged.
func Rotate(r rune) rune {
	if !alphabet.Printable(r) {
		return r
	}
	return (r-alphabet.PrintableFirst+Shift)%alphabet.PrintableSize + alphabet.PrintableFirst
}

// Transform rotates every rune of text. Everything outside '!'..'~',
// including bytes that are not valid UTF-8, is copied through byte for byte.
func Transform(text string) Result {
	res := Result{Normalized: text}
	if text == "" {
		return res
	}

	var sb strings.Builder
	sb.Grow(len(text))
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		o := Rotate(r)
		if o == r {
			sb.WriteString(text[i : i+size])
		} else {
			sb.WriteRune(o)
		}
		res.Steps = append(res.Steps, Step{Before: r, After: o, Shifted: o != r})
		i += size
	}
	res.Text = sb.String()
	return res
}
