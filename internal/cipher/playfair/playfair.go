// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package playfair implements the Playfair digraph cipher over a 5x5 key
// square (J is merged into I, X is the filler).
package playfair

import (
	"github.com/jeranaias/cipherlab/internal/alphabet"
	"github.com/jeranaias/cipherlab/internal/cipher"
)

// Filler separates doubled letters and pads an odd tail.
const Filler = 'X'

// Digraph is a pair of letters substituted as one unit.
type Digraph [2]rune

func (d Digraph) String() string { return string(d[:]) }

// Rule names the substitution case applied to a digraph.
type Rule int

const (
	SameRow Rule = iota
	SameColumn
	Rectangle
)

func (r Rule) String() string {
	switch r {
	case SameRow:
		return "same row"
	case SameColumn:
		return "same column"
	case Rectangle:
		return "rectangle"
	default:
		return "unknown"
	}
}

// Step is one digraph substitution.
type Step struct {
	Pair   Digraph
	Result Digraph
	Rule   Rule
	From   [2]Cell
	To     [2]Cell
}

// Result is the outcome of a Run.
type Result struct {
	Text       string
	Normalized string // letters only, J merged into I
	Square     []string
	Digraphs   []Digraph
	Steps      []Step
}

// Run enciphers or deciphers text under keyword.
func Run(text, keyword string, dir cipher.Direction) Result {
	sq := NewSquare(keyword)
	res := Result{
		Normalized: Normalize(text),
		Square:     sq.Rows(),
	}
	if res.Normalized == "" {
		return res
	}

	if dir == cipher.Decrypt {
		res.Digraphs = Pairs(res.Normalized)
	} else {
		res.Digraphs = Segment(res.Normalized)
	}

	shift := 1
	if dir == cipher.Decrypt {
		shift = -1
	}
	out := make([]rune, 0, 2*len(res.Digraphs))
	for _, d := range res.Digraphs {
		st := substitute(sq, d, shift)
		out = append(out, st.Result[0], st.Result[1])
		res.Steps = append(res.Steps, st)
	}
	res.Text = string(out)
	return res
}

// Normalize folds text to letters only and merges J into I.
func Normalize(text string) string {
	return mergeJ(alphabet.Letters(text))
}

// Segment splits normalized plaintext into digraphs. A doubled letter gets
// a filler between its halves; an odd tail is padded with the filler.
func Segment(text string) []Digraph {
	rs := []rune(text)
	var out []Digraph
	for i := 0; i < len(rs); {
		a := rs[i]
		if i+1 >= len(rs) {
			out = append(out, Digraph{a, Filler})
			break
		}
		b := rs[i+1]
		if a == b {
			out = append(out, Digraph{a, Filler})
			i++
			continue
		}
		out = append(out, Digraph{a, b})
		i += 2
	}
	return out
}

// Pairs splits ciphertext strictly two at a time. Ciphertext may legitimately
// hold a doubled pair, so no filler is inserted except to pad an odd tail.
func Pairs(text string) []Digraph {
	rs := []rune(text)
	out := make([]Digraph, 0, (len(rs)+1)/2)
	for i := 0; i < len(rs); i += 2 {
		if i+1 < len(rs) {
			out = append(out, Digraph{rs[i], rs[i+1]})
		} else {
			out = append(out, Digraph{rs[i], Filler})
		}
	}
	return out
}

// substitute applies the row, column or rectangle rule. shift is +1 to
// encipher and -1 to decipher; the rectangle swap ignores it.
func substitute(sq *Square, d Digraph, shift int) Step {
	a, _ := sq.Position(d[0])
	b, _ := sq.Position(d[1])
	st := Step{Pair: d, From: [2]Cell{a, b}}

	switch {
	case a.Row == b.Row:
		st.Rule = SameRow
		st.To = [2]Cell{
			{Row: a.Row, Col: mod(a.Col+shift, Size)},
			{Row: b.Row, Col: mod(b.Col+shift, Size)},
		}
	case a.Col == b.Col:
		st.Rule = SameColumn
		st.To = [2]Cell{
			{Row: mod(a.Row+shift, Size), Col: a.Col},
			{Row: mod(b.Row+shift, Size), Col: b.Col},
		}
	default:
		st.Rule = Rectangle
		st.To = [2]Cell{
			{Row: a.Row, Col: b.Col},
			{Row: b.Row, Col: a.Col},
		}
	}
	st.Result = Digraph{sq.At(st.To[0]), sq.At(st.To[1])}
	return st
}
