// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package playfair

import (
	"strings"

	"github.com/jeranaias/cipherlab/internal/alphabet"
)

// Size is the side length of the key square.
const Size = 5

// squareAlphabet is A-Z without J, which is merged into I.
const squareAlphabet = "ABCDEFGHIKLMNOPQRSTUVWXYZ"

// Cell is a (row, column) position in the key square.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Square is the 5x5 Playfair key square.
type Square struct {
	grid [Size][Size]rune
	pos  map[rune]Cell
}

// NewSquare builds the key square for keyword: its letters first (J merged
// into I, first occurrence wins), then the rest of the alphabet in order.
func NewSquare(keyword string) *Square {
	seq := alphabet.Dedupe(mergeJ(alphabet.Letters(keyword)) + squareAlphabet)

	s := &Square{pos: make(map[rune]Cell, Size*Size)}
	for i, r := range seq {
		c := Cell{Row: i / Size, Col: i % Size}
		s.grid[c.Row][c.Col] = r
		s.pos[r] = c
	}
	return s
}

// Position returns where r sits in the square.
func (s *Square) Position(r rune) (Cell, bool) {
	c, ok := s.pos[r]
	return c, ok
}

// At returns the symbol at c, wrapping both coordinates modulo Size.
func (s *Square) At(c Cell) rune {
	return s.grid[mod(c.Row, Size)][mod(c.Col, Size)]
}

// Rows returns the square as five strings, top to bottom.
func (s *Square) Rows() []string {
	rows := make([]string, Size)
	for i := range s.grid {
		rows[i] = string(s.grid[i][:])
	}
	return rows
}

func (s *Square) String() string {
	return strings.Join(s.Rows(), "\n")
}

func mergeJ(s string) string {
	return strings.ReplaceAll(s, "J", "I")
}

func mod(a, m int) int {
	return ((a % m) + m) % m
}
