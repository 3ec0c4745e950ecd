// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// suggest.go - Typo correction for commands and cipher names.

package cli

import (
	"strings"
)

// validCommands lists every command and alias Parse accepts.
var validCommands = []string{
	"list",
	"ls",
	"encrypt",
	"enc",
	"decrypt",
	"dec",
	"rot47",
	"play",
	"explain",
	"repl",
	"crack",
	"config",
	"version",
	"help",
}

// SuggestCommand returns the closest command to input, or "".
func SuggestCommand(input string) string {
	return Suggest(input, validCommands)
}

// Suggest returns the candidate closest to input within a distance that
// grows with the input length, or "" when nothing is close enough.
func Suggest(input string, candidates []string) string {
	input = strings.ToLower(input)

	// Very short inputs are likely intentional
	if len(input) < 2 {
		return ""
	}

	// <=3 chars: 1 edit, 4-8 chars: 2 edits (catches transpositions), longer: 3
	maxDistance := 1
	if len(input) >= 4 {
		maxDistance = 2
	}
	if len(input) > 8 {
		maxDistance = 3
	}

	bestMatch := ""
	bestDistance := -1
	for _, c := range candidates {
		distance := levenshteinDistance(input, c)
		if distance == 0 {
			return ""
		}
		if distance <= maxDistance && (bestDistance == -1 || distance < bestDistance) {
			bestDistance = distance
			bestMatch = c
		}
	}

	return bestMatch
}

// levenshteinDistance is the number of single-rune insertions, deletions or
// substitutions between s1 and s2.
func levenshteinDistance(s1, s2 string) int {
	a, b := []rune(s1), []rune(s2)
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	// Two rows instead of the full matrix
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
