// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package railfence implements the zig-zag Rail Fence transposition, with an
// optional caller-chosen order for reading the rails.
//
// The cipher is alphabet-agnostic: every rune of the input is transposed,
// and a byte that is not valid UTF-8 moves as a unit of its own.
package railfence

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jeranaias/cipherlab/internal/cipher"
)

// Config selects the fence shape.
type Config struct {
	Rails int
	// Order lists rail indices in the order their contents are concatenated.
	// Empty means natural order 0..Rails-1.
	Order []int
}

// Trace describes the fence built for one run.
type Trace struct {
	Rails   int
	Pattern []int    // rail index of every input position
	Rows    []string // rail contents in natural order
	Order   []int    // effective read order
	Ordered []string // rail contents in read order, set only when Order is not natural
}

// Result is the outcome of a Run.
type Result struct {
	Text       string
	Normalized string
	Trace      Trace
	Fallbacks  []cipher.Fallback
}

// Run transposes text. Fewer than two rails, or empty text, is a pass-through
// with an empty trace.
func Run(text string, cfg Config, dir cipher.Direction) Result {
	res := Result{Text: text, Normalized: text}
	rs := split(text)
	if cfg.Rails < 2 || len(rs) == 0 {
		return res
	}

	order, err := checkOrder(cfg.Order, cfg.Rails)
	if err != nil {
		res.Fallbacks = append(res.Fallbacks, cipher.Fallback{
			Field:  "order",
			Reason: err.Error() + ", using natural order",
		})
	}

	pattern := Pattern(len(rs), cfg.Rails)
	var rows [][]string
	if dir == cipher.Decrypt {
		rows = unzip(rs, pattern, order, cfg.Rails)
		res.Text = strings.Join(walk(rows, pattern, len(rs)), "")
	} else {
		rows = buckets(rs, pattern, cfg.Rails)
		res.Text = strings.Join(concat(rows, order), "")
	}

	res.Trace = Trace{
		Rails:   cfg.Rails,
		Pattern: pattern,
		Rows:    toStrings(rows, nil),
		Order:   order,
	}
	if !isNatural(order) {
		res.Trace.Ordered = toStrings(rows, order)
	}
	return res
}

// Pattern returns the zig-zag rail index for each of n positions.
func Pattern(n, rails int) []int {
	pattern := make([]int, n)
	if rails < 2 {
		return pattern
	}
	row, step := 0, 1
	for i := range pattern {
		pattern[i] = row
		if row == 0 {
			step = 1
		} else if row == rails-1 {
			step = -1
		}
		row += step
	}
	return pattern
}

// NaturalOrder returns 0..rails-1.
func NaturalOrder(rails int) []int {
	if rails < 0 {
		rails = 0
	}
	order := make([]int, rails)
	for i := range order {
		order[i] = i
	}
	return order
}

// checkOrder returns the order to use and, when the supplied one is rejected,
// why. An empty order is natural order, not an error.
func checkOrder(order []int, rails int) ([]int, error) {
	if len(order) == 0 {
		return NaturalOrder(rails), nil
	}
	if len(order) != rails {
		return NaturalOrder(rails), fmt.Errorf("order has %d entries for %d rails", len(order), rails)
	}
	seen := make([]bool, rails)
	for _, r := range order {
		if r < 0 || r >= rails {
			return NaturalOrder(rails), fmt.Errorf("rail index %d out of range", r)
		}
		if seen[r] {
			return NaturalOrder(rails), fmt.Errorf("duplicate rail index %d", r)
		}
		seen[r] = true
	}
	return append([]int(nil), order...), nil
}

func isNatural(order []int) bool {
	for i, r := range order {
		if i != r {
			return false
		}
	}
	return true
}

// =============================================================================
// FENCE CONSTRUCTION
// =============================================================================

// split cuts text into the units the fence moves: one per rune, and one per
// byte that does not start a valid UTF-8 sequence.
func split(text string) []string {
	units := make([]string, 0, len(text))
	for i := 0; i < len(text); {
		_, size := utf8.DecodeRuneInString(text[i:])
		units = append(units, text[i:i+size])
		i += size
	}
	return units
}

func buckets(rs []string, pattern []int, rails int) [][]string {
	rows := make([][]string, rails)
	for i, r := range rs {
		rows[pattern[i]] = append(rows[pattern[i]], r)
	}
	return rows
}

func concat(rows [][]string, order []int) []string {
	var out []string
	for _, row := range order {
		out = append(out, rows[row]...)
	}
	return out
}

// unzip cuts ciphertext into rail segments sized by the zig-zag counts,
// taken in read order.
func unzip(rs []string, pattern, order []int, rails int) [][]string {
	counts := make([]int, rails)
	for _, row := range pattern {
		counts[row]++
	}
	rows := make([][]string, rails)
	pos := 0
	for _, row := range order {
		rows[row] = rs[pos : pos+counts[row]]
		pos += counts[row]
	}
	return rows
}

// walk reads rails back out along the zig-zag.
func walk(rows [][]string, pattern []int, n int) []string {
	cursor := make([]int, len(rows))
	out := make([]string, 0, n)
	for _, row := range pattern {
		out = append(out, rows[row][cursor[row]])
		cursor[row]++
	}
	return out
}

func toStrings(rows [][]string, order []int) []string {
	if order == nil {
		order = NaturalOrder(len(rows))
	}
	out := make([]string, 0, len(order))
	for _, row := range order {
		out = append(out, strings.Join(rows[row], ""))
	}
	return out
}
