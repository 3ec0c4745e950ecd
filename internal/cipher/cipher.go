// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cipher holds the types shared by every cipher engine.
//
// The engines themselves live in sub-packages (chaocipher, railfence,
// playfair, vigenere, rot47) and never import each other.
package cipher

import (
	"fmt"
	"strings"
)

// Direction selects encryption or decryption.
type Direction int

const (
	Encrypt Direction = iota
	Decrypt
)

// String returns the lower-case name of the direction.
func (d Direction) String() string {
	switch d {
	case Encrypt:
		return "encrypt"
	case Decrypt:
		return "decrypt"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// MarshalText implements encoding.TextMarshaler so traces serialize the name.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// ParseDirection accepts encrypt/enc/e and decrypt/dec/d, case-insensitive.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "encrypt", "enc", "e":
		return Encrypt, nil
	case "decrypt", "dec", "d":
		return Decrypt, nil
	default:
		return Encrypt, fmt.Errorf("invalid direction %q: must be encrypt or decrypt", s)
	}
}

// Fallback records a configuration value that was replaced by a safe default.
// It never changes the output an engine would have produced without it.
type Fallback struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (f Fallback) String() string {
	return f.Field + ": " + f.Reason
}
