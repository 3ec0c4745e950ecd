// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/jeranaias/cipherlab/internal/alphabet"
	"github.com/jeranaias/cipherlab/internal/cipher"
	"github.com/jeranaias/cipherlab/internal/cipher/chaocipher"
	"github.com/jeranaias/cipherlab/internal/cipher/playfair"
	"github.com/jeranaias/cipherlab/internal/cipher/railfence"
	"github.com/jeranaias/cipherlab/internal/cipher/rot47"
	"github.com/jeranaias/cipherlab/internal/cipher/vigenere"
)

// =============================================================================
// CHAOCIPHER - both disks before and after the step
// =============================================================================

func (v *TraceView) chaocipher(res chaocipher.Result, step int) string {
	s := res.Steps[step]
	left, right := res.Alphabet, res.PlainAlphabet
	if step > 0 {
		left, right = res.Steps[step-1].Left, res.Steps[step-1].Right
	}
	w := symbolWidth(res.Alphabet)

	// Encryption looks up on the right disk and reads the left one.
	leftKind, rightKind := cellProduced, cellConsumed
	if v.out.Direction == cipher.Decrypt {
		leftKind, rightKind = cellConsumed, cellProduced
	}

	lines := []string{
		v.field("", v.diskMarkers(len([]rune(left)), w)),
		v.field("left", v.disk(left, s.Index, leftKind, cellPlain, w)),
		v.field("right", v.disk(right, s.Index, rightKind, cellPlain, w)),
		v.field("", v.theme.Muted.Render("after permuting")),
		v.field("left", v.disk(s.Left, -1, cellPlain, cellMuted, w)),
		v.field("right", v.disk(s.Right, -1, cellPlain, cellMuted, w)),
	}
	return strings.Join(lines, "\n")
}

// disk draws a disk with the symbol at hit in hitKind and the rest in rest.
func (v *TraceView) disk(symbols string, hit int, hitKind, rest cellKind, w int) string {
	var sb strings.Builder
	for i, r := range []rune(symbols) {
		kind := rest
		if i == hit {
			kind = hitKind
		}
		sb.WriteString(v.cell(string(r), w, kind))
	}
	return sb.String()
}

// diskMarkers puts the zenith over position 0 and the nadir over position n/2.
func (v *TraceView) diskMarkers(n, w int) string {
	g := v.theme.Glyphs
	var sb strings.Builder
	for i := 0; i < n; i++ {
		mark := ""
		switch i {
		case 0:
			mark = g.Zenith
		case n / 2:
			mark = g.Nadir
		}
		sb.WriteString(v.theme.Marker.Render(padRight(" "+mark, w+2)))
	}
	return sb.String()
}

// =============================================================================
// PLAYFAIR - key square with the pair's cells highlighted
// =============================================================================

func (v *TraceView) playfair(res playfair.Result, step int) string {
	s := res.Steps[step]

	rows := make([]string, 0, len(res.Square))
	for r, row := range res.Square {
		var sb strings.Builder
		for c, sym := range []rune(row) {
			sb.WriteString(v.cell(string(sym), 1, squareKind(s, playfair.Cell{Row: r, Col: c})))
		}
		rows = append(rows, sb.String())
	}
	square := v.theme.Panel.Render(strings.Join(rows, "\n"))

	var pairs strings.Builder
	for i, st := range res.Steps {
		if i > 0 {
			pairs.WriteString(" ")
		}
		if i == step {
			pairs.WriteString(v.theme.Input.Render("[" + st.Pair.String() + "]"))
		} else {
			pairs.WriteString(v.theme.Muted.Render(st.Pair.String()))
		}
	}

	side := []string{v.field("pairs", pairs.String())}
	for i := range s.Pair {
		side = append(side, v.field("", v.theme.Note.Render(fmt.Sprintf("%c(%d,%d) %s %c(%d,%d)",
			s.Pair[i], s.From[i].Row, s.From[i].Col, v.theme.Glyphs.Arrow,
			s.Result[i], s.To[i].Row, s.To[i].Col))))
	}
	return v.stack(square, strings.Join(side, "\n"))
}

func squareKind(s playfair.Step, c playfair.Cell) cellKind {
	from := s.From[0] == c || s.From[1] == c
	to := s.To[0] == c || s.To[1] == c
	switch {
	case from && to:
		return cellBoth
	case from:
		return cellConsumed
	case to:
		return cellProduced
	default:
		return cellPlain
	}
}

// =============================================================================
// VIGENÈRE - one row of the tabula recta under the plain alphabet
// =============================================================================

func (v *TraceView) vigenere(res vigenere.Result, step int) string {
	s := res.Steps[step]

	// The column header holds the plain letter, the key row the cipher letter.
	headKind, rowKind := cellConsumed, cellProduced
	if v.out.Direction == cipher.Decrypt {
		headKind, rowKind = cellProduced, cellConsumed
	}

	lines := []string{
		v.field("", v.disk(alphabet.Latin, s.Column, headKind, cellMuted, 1)),
		v.field("key "+string(s.Key), v.disk(vigenere.Shift(s.Key), s.Column, rowKind, cellGuide, 1)),
		v.field("text", v.strip(res.Normalized, step)),
		v.field("key", v.strip(res.Keystream, step)),
	}
	return strings.Join(lines, "\n")
}

// strip prints s with the rune at i bracketed.
func (v *TraceView) strip(s string, i int) string {
	var sb strings.Builder
	for j, r := range []rune(s) {
		if j == i {
			sb.WriteString(v.theme.Input.Render("[" + string(r) + "]"))
		} else {
			sb.WriteString(v.theme.Value.Render(string(r)))
		}
	}
	return sb.String()
}

// =============================================================================
// RAIL FENCE - the zig-zag with the current rail highlighted
// =============================================================================

func (v *TraceView) railfence(res railfence.Result, step int) string {
	tr := res.Trace
	current := tr.Order[step]

	// Positions in the pattern are plaintext positions.
	text := []rune(res.Normalized)
	kind := cellProduced
	if v.out.Direction == cipher.Decrypt {
		text = []rune(res.Text)
		kind = cellConsumed
	}
	w := symbolWidth(string(text))

	done := make(map[int]bool, step)
	for _, r := range tr.Order[:step] {
		done[r] = true
	}

	lines := make([]string, 0, tr.Rails+1)
	for rail := 0; rail < tr.Rails; rail++ {
		var sb strings.Builder
		for pos, r := range tr.Pattern {
			switch {
			case r != rail:
				sb.WriteString(v.cell(v.theme.Glyphs.Gap, w, cellMuted))
			case rail == current:
				sb.WriteString(v.cell(string(text[pos]), w, kind))
			case done[rail]:
				sb.WriteString(v.cell(string(text[pos]), w, cellGuide))
			default:
				sb.WriteString(v.cell(string(text[pos]), w, cellPlain))
			}
		}
		label := padRight(fmt.Sprintf("rail %d", rail), labelWidth)
		if rail == current {
			label = v.theme.Marker.Render(label)
		} else {
			label = v.theme.Label.Render(label)
		}
		lines = append(lines, label+sb.String())
	}
	lines = append(lines, v.field("order", v.theme.Note.Render(joinInts(tr.Order))))
	return strings.Join(lines, "\n")
}

// =============================================================================
// ROT47 - the printable ring folded in two rows of 47
// =============================================================================

const (
	ringLow  = '!'
	ringHalf = 47
)

func (v *TraceView) rot47(res rot47.Result, step int) string {
	s := res.Steps[step]
	if !s.Shifted {
		return v.field("", v.theme.Muted.Render(fmt.Sprintf("%q is outside ! .. ~ and passes through", s.Before)))
	}

	col := int(s.Before-ringLow) % ringHalf
	mark := v.theme.Glyphs.Zenith
	if s.Before >= ringLow+ringHalf {
		mark = v.theme.Glyphs.Nadir
	}

	lines := []string{
		v.field("ring", v.ringRow(ringLow, s)),
		v.field("", strings.Repeat(" ", col)+v.theme.Marker.Render(mark)),
		v.field("", v.ringRow(ringLow+ringHalf, s)),
	}
	return strings.Join(lines, "\n")
}

func (v *TraceView) ringRow(from rune, s rot47.Step) string {
	var sb strings.Builder
	for r := from; r < from+ringHalf; r++ {
		switch r {
		case s.Before:
			sb.WriteString(v.theme.Input.Render(string(r)))
		case s.After:
			sb.WriteString(v.theme.Output.Render(string(r)))
		default:
			sb.WriteString(v.theme.Muted.Render(string(r)))
		}
	}
	return sb.String()
}
