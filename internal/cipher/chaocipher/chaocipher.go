// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chaocipher implements John F. Byrne's Chaocipher: two rotating
// disks that are re-permuted after every symbol.
//
// Symbols that are not on the disks are ignored, not emitted, and do not
// advance the disks.
package chaocipher

import (
	"github.com/jeranaias/cipherlab/internal/alphabet"
	"github.com/jeranaias/cipherlab/internal/cipher"
)

// Config seeds the disks.
type Config struct {
	// Alphabet seeds the left (cipher) disk. Empty means A-Z.
	Alphabet string
	// PlainAlphabet seeds the right (plain) disk. Empty means Alphabet.
	// It must be a permutation of Alphabet's symbols.
	PlainAlphabet string
}

// Step is one enciphered or deciphered symbol.
type Step struct {
	Input  rune
	Index  int // position of Input on the disk it was looked up on
	Output rune
	Left   string // cipher disk after permutation
	Right  string // plain disk after permutation
}

// Result is the outcome of a Run.
type Result struct {
	Text          string
	Normalized    string
	Alphabet      string // effective left disk seed
	PlainAlphabet string // effective right disk seed
	Steps         []Step
	Fallbacks     []cipher.Fallback
}

// Run enciphers or deciphers text with fresh disks built from cfg.
func Run(text string, cfg Config, dir cipher.Direction) Result {
	left, right, fallbacks := resolve(cfg)
	res := Result{
		Normalized:    alphabet.Within(text, left),
		Alphabet:      left,
		PlainAlphabet: right,
		Fallbacks:     fallbacks,
	}
	if res.Normalized == "" {
		return res
	}

	disks := NewDisks(left, right)
	out := make([]rune, 0, len(res.Normalized))
	for _, in := range res.Normalized {
		var (
			sym   rune
			index int
			ok    bool
		)
		if dir == cipher.Decrypt {
			sym, index, ok = disks.Decipher(in)
		} else {
			sym, index, ok = disks.Encipher(in)
		}
		if !ok {
			continue
		}
		out = append(out, sym)
		res.Steps = append(res.Steps, Step{
			Input:  in,
			Index:  index,
			Output: sym,
			Left:   disks.Left(),
			Right:  disks.Right(),
		})
	}
	res.Text = string(out)
	return res
}

// resolve normalizes both disk seeds, falling back to safe defaults.
func resolve(cfg Config) (left, right string, fallbacks []cipher.Fallback) {
	folded := alphabet.Fold(cfg.Alphabet)
	left = alphabet.Dedupe(folded)
	switch {
	case cfg.Alphabet == "":
		left = alphabet.Latin
	case left == "":
		left = alphabet.Latin
		fallbacks = append(fallbacks, cipher.Fallback{
			Field:  "alphabet",
			Reason: "no usable symbols, using A-Z",
		})
	case len([]rune(left)) != len([]rune(folded)):
		fallbacks = append(fallbacks, cipher.Fallback{
			Field:  "alphabet",
			Reason: "duplicate symbols removed",
		})
	}

	if cfg.PlainAlphabet == "" {
		return left, left, fallbacks
	}
	right = alphabet.Dedupe(alphabet.Fold(cfg.PlainAlphabet))
	if !alphabet.IsPermutation(left, right) {
		fallbacks = append(fallbacks, cipher.Fallback{
			Field:  "plain_alphabet",
			Reason: "not a permutation of the cipher alphabet, using it instead",
		})
		right = left
	}
	return left, right, fallbacks
}
