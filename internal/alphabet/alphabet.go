// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package alphabet canonicalizes raw user text before it reaches a cipher.
package alphabet

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Latin is the 26-letter working alphabet shared by Vigenère, Playfair and
// the default Chaocipher disks.
const Latin = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Printable ASCII window used by ROT47.
const (
	PrintableFirst = 33
	PrintableLast  = 126
	PrintableSize  = PrintableLast - PrintableFirst + 1
)

// =============================================================================
// FOLDING
// =============================================================================

// Fold strips diacritics and upper-cases s.
// "Ação" becomes "ACAO". Compatibility decomposition also flattens ligatures,
// fullwidth forms and superscripts, so "ﬁ" becomes "FI" and "²" becomes "2".
// Characters without a decomposition are kept.
func Fold(s string) string {
	if s == "" {
		return ""
	}

	// A transformer carries state, so each call builds its own chain.
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s // Fallback to original on error
	}
	return strings.ToUpper(folded)
}

// Letters folds s and keeps only A-Z.
func Letters(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' {
			return r
		}
		return -1
	}, Fold(s))
}

// Within folds s and keeps only runes present in set.
func Within(s, set string) string {
	if set == "" {
		return ""
	}
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(set, r) {
			return r
		}
		return -1
	}, Fold(s))
}

// =============================================================================
// ALPHABET HELPERS
// =============================================================================

// Dedupe keeps the first occurrence of every rune in s.
func Dedupe(s string) string {
	seen := make(map[rune]bool, len(s))
	var sb strings.Builder
	for _, r := range s {
		if seen[r] {
			continue
		}
		seen[r] = true
		sb.WriteRune(r)
	}
	return sb.String()
}

// IsPermutation reports whether a and b contain exactly the same runes,
// each once.
func IsPermutation(a, b string) bool {
	ra, rb := []rune(a), []rune(b)
	if len(ra) != len(rb) {
		return false
	}
	counts := make(map[rune]int, len(ra))
	for _, r := range ra {
		counts[r]++
		if counts[r] > 1 {
			return false
		}
	}
	for _, r := range rb {
		counts[r]--
		if counts[r] != 0 {
			return false
		}
	}
	return true
}

// Printable reports whether r is inside the ROT47 window (33..126).
func Printable(r rune) bool {
	return r >= PrintableFirst && r <= PrintableLast
}

// Index returns the position of an upper-case Latin letter (A=0), or -1.
func Index(r rune) int {
	if r < 'A' || r > 'Z' {
		return -1
	}
	return int(r - 'A')
}
