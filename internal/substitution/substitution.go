// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package substitution implements a monoalphabetic substitution cipher over
// A-Z, the target of the substitution breaker in package crack.
package substitution

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"unicode"

	"github.com/jeranaias/cipherlab/internal/alphabet"
)

// ErrInvalidKey is returned when a key is not a permutation of A-Z.
var ErrInvalidKey = errors.New("substitution key must be a permutation of A-Z")

// Key maps ciphertext to plaintext: Key[i] is the plaintext letter for the
// ciphertext letter 'A'+i.
type Key [26]rune

// Identity is the key that leaves every letter unchanged.
func Identity() Key {
	var k Key
	for i := range k {
		k[i] = rune('A' + i)
	}
	return k
}

// NewKey parses a 26-letter string, case-insensitive.
func NewKey(s string) (Key, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len([]rune(s)) != len(alphabet.Latin) || !alphabet.IsPermutation(s, alphabet.Latin) {
		return Key{}, fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}
	var k Key
	for i, r := range []rune(s) {
		k[i] = r
	}
	return k, nil
}

// RandomKey returns a uniformly shuffled key.
func RandomKey(r *rand.Rand) Key {
	k := Identity()
	r.Shuffle(len(k), func(i, j int) { k[i], k[j] = k[j], k[i] })
	return k
}

// Neighbour returns a copy of k with two distinct positions swapped.
func (k Key) Neighbour(r *rand.Rand) Key {
	i := r.IntN(len(k))
	j := r.IntN(len(k) - 1)
	if j >= i {
		j++
	}
	k[i], k[j] = k[j], k[i]
	return k
}

// Inverse returns the key that maps plaintext back to ciphertext.
func (k Key) Inverse() Key {
	var inv Key
	for i, p := range k {
		inv[p-'A'] = rune('A' + i)
	}
	return inv
}

// Decrypt maps each ASCII letter through k, keeping its case.
// Everything else passes through.
func (k Key) Decrypt(text string) string {
	return k.apply(text)
}

// Encrypt is Decrypt with the inverse key.
func (k Key) Encrypt(text string) string {
	return k.Inverse().apply(text)
}

func (k Key) apply(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		u := unicode.ToUpper(r)
		idx := alphabet.Index(u)
		if idx < 0 {
			sb.WriteRune(r)
			continue
		}
		out := k[idx]
		if r != u {
			out = unicode.ToLower(out)
		}
		sb.WriteRune(out)
	}
	return sb.String()
}

// String returns the plaintext column as a 26-letter string.
func (k Key) String() string {
	return string(k[:])
}

// Pretty returns a two-line table of ciphertext over plaintext letters.
func (k Key) Pretty() string {
	cipherRow := strings.Join(strings.Split(alphabet.Latin, ""), " ")
	plain := make([]string, len(k))
	for i, r := range k {
		plain[i] = string(r)
	}
	return "CIPH:  " + cipherRow + "\nPLAIN: " + strings.Join(plain, " ")
}
