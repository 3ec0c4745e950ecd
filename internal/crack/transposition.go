// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package crack

import (
	"sort"
	"strings"
	"unicode"
)

// =============================================================================
// TRANSPOSITIONS
// =============================================================================
//
// A key of length n is a permutation of 0..n-1.
//
// Columnar: plaintext is written row by row into n columns, and the columns
// are read top to bottom in ascending order of key[col]. When the text does
// not fill the last row, columns at or after the remainder are one shorter.
//
// Block: the text is cut into blocks of n, and plaintext position i of each
// block comes from ciphertext position key[i]. A trailing short block is
// left as it is.

// Prepare upper-cases text and drops whitespace, the form both breakers use.
func Prepare(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToUpper(r)
	}, text)
}

// readOrder returns column indices sorted by key value.
func readOrder(key []int) []int {
	order := make([]int, len(key))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return key[order[a]] < key[order[b]] })
	return order
}

// columnLengths returns how many runes each column holds for a text of n runes.
func columnLengths(n, cols int) []int {
	rows := (n + cols - 1) / cols
	lengths := make([]int, cols)
	rem := n % cols
	for c := range lengths {
		lengths[c] = rows
		if rem != 0 && c >= rem {
			lengths[c] = rows - 1
		}
	}
	return lengths
}

// ColumnarEncrypt applies columnar transposition under key.
func ColumnarEncrypt(text string, key []int) string {
	rs := []rune(text)
	cols := len(key)
	if cols < 2 || len(rs) == 0 {
		return text
	}
	out := make([]rune, 0, len(rs))
	for _, c := range readOrder(key) {
		for i := c; i < len(rs); i += cols {
			out = append(out, rs[i])
		}
	}
	return string(out)
}

// ColumnarDecrypt inverts ColumnarEncrypt.
func ColumnarDecrypt(text string, key []int) string {
	rs := []rune(text)
	cols := len(key)
	if cols < 2 || len(rs) == 0 {
		return text
	}
	lengths := columnLengths(len(rs), cols)
	out := make([]rune, len(rs))
	idx := 0
	for _, c := range readOrder(key) {
		for row := 0; row < lengths[c]; row++ {
			out[row*cols+c] = rs[idx]
			idx++
		}
	}
	return string(out)
}

// BlockEncrypt applies block transposition under key.
func BlockEncrypt(text string, key []int) string {
	return blockApply(text, key, false)
}

// BlockDecrypt inverts BlockEncrypt.
func BlockDecrypt(text string, key []int) string {
	return blockApply(text, key, true)
}

func blockApply(text string, key []int, decrypt bool) string {
	rs := []rune(text)
	n := len(key)
	if n < 2 || len(rs) == 0 {
		return text
	}
	out := make([]rune, len(rs))
	copy(out, rs)
	for start := 0; start+n <= len(rs); start += n {
		block := rs[start : start+n]
		dst := out[start : start+n]
		for i, j := range key {
			if decrypt {
				dst[i] = block[j]
			} else {
				dst[j] = block[i]
			}
		}
	}
	return string(out)
}

// nextPermutation advances p to the next lexicographic permutation and
// reports false after the last one.
func nextPermutation(p []int) bool {
	i := len(p) - 2
	for i >= 0 && p[i] >= p[i+1] {
		i--
	}
	if i < 0 {
		return false
	}
	j := len(p) - 1
	for p[j] <= p[i] {
		j--
	}
	p[i], p[j] = p[j], p[i]
	for l, r := i+1, len(p)-1; l < r; l, r = l+1, r-1 {
		p[l], p[r] = p[r], p[l]
	}
	return true
}
