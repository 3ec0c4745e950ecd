// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package vigenere implements the repeating-key Vigenère cipher over A-Z.
package vigenere

import (
	"github.com/jeranaias/cipherlab/internal/alphabet"
	"github.com/jeranaias/cipherlab/internal/cipher"
)

// Step is one tabula recta lookup.
type Step struct {
	Input  rune
	Key    rune
	Output rune
	Row    int // key letter index
	Column int // plain letter index
}

// Result is the outcome of a Run.
type Result struct {
	Text       string
	Normalized string
	Keyword    string // normalized keyword
	Keystream  string // keyword repeated to the text length
	Steps      []Step
}

// Run enciphers or deciphers text with keyword. Both are reduced to A-Z;
// an empty keyword or text yields an empty result.
func Run(text, keyword string, dir cipher.Direction) Result {
	res := Result{
		Normalized: alphabet.Letters(text),
		Keyword:    alphabet.Letters(keyword),
	}
	if res.Normalized == "" || res.Keyword == "" {
		return res
	}

	key := []rune(res.Keyword)
	in := []rune(res.Normalized)
	stream := make([]rune, len(in))
	out := make([]rune, len(in))
	res.Steps = make([]Step, 0, len(in))

	for i, r := range in {
		k := key[i%len(key)]
		stream[i] = k
		ki, ri := alphabet.Index(k), alphabet.Index(r)

		var o, column int
		if dir == cipher.Decrypt {
			column = (ri - ki + 26) % 26
			o = column
		} else {
			column = ri
			o = (ri + ki) % 26
		}
		out[i] = rune('A' + o)
		res.Steps = append(res.Steps, Step{
			Input:  r,
			Key:    k,
			Output: out[i],
			Row:    ki,
			Column: column,
		})
	}

	res.Text = string(out)
	res.Keystream = string(stream)
	return res
}

// Shift returns the tabula recta row for key letter k: A-Z rotated left by
// k's index. Non-letters return the plain alphabet.
func Shift(k rune) string {
	i := alphabet.Index(k)
	if i < 0 {
		return alphabet.Latin
	}
	return alphabet.Latin[i:] + alphabet.Latin[:i]
}
