// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// request.go - Turning flags and configuration into an engine.Request.

package cli

import (
	"fmt"

	"github.com/jeranaias/cipherlab/internal/cipher"
	"github.com/jeranaias/cipherlab/internal/config"
	"github.com/jeranaias/cipherlab/internal/engine"
)

// runBools are the boolean flags of the commands that run a cipher.
var runBools = []string{"trace", "open"}

// buildRequest resolves name and fills the cipher's settings from flags,
// falling back to cfg. Text is left for the caller.
func buildRequest(cfg *config.Config, p *ArgParser, name string, dir cipher.Direction) (engine.Request, error) {
	info, ok := engine.Lookup(name)
	if !ok {
		return engine.Request{}, ErrUnknownCipher(name)
	}
	req := engine.Request{Cipher: info.Name, Direction: dir}

	switch info.Name {
	case engine.Playfair:
		req.Key = flagOr(p, "key", cfg.Playfair.Keyword)
	case engine.Vigenere:
		req.Key = flagOr(p, "key", cfg.Vigenere.Keyword)
	case engine.Chaocipher:
		req.Alphabet = flagOr(p, "alphabet", cfg.Chaocipher.Alphabet)
		// A new left disk without a right one means both disks start equal.
		plain := cfg.Chaocipher.PlainAlphabet
		if p.HasFlag("alphabet") {
			plain = ""
		}
		req.PlainAlphabet = flagOr(p, "plain-alphabet", plain)
	case engine.RailFence:
		rails, err := p.FlagIntOrDefault("rails", cfg.RailFence.Rails)
		if err != nil {
			return engine.Request{}, err
		}
		req.Rails = rails
		req.Order = cfg.RailFence.Order
		if p.HasFlag("order") {
			order, err := engine.ParseOrder(p.Flag("order"))
			if err != nil {
				return engine.Request{}, NewValidationError("--order", p.Flag("order"), err.Error(), "--order 2,0,1")
			}
			req.Order = order
		}
	}
	return req, nil
}

// flagOr returns the flag when given, even empty, and def otherwise.
func flagOr(p *ArgParser, name, def string) string {
	if p.HasFlag(name) {
		return p.Flag(name)
	}
	return def
}

// keyInfo summarises the settings of req for headers and prompts.
func keyInfo(req engine.Request) string {
	switch req.Cipher {
	case engine.Playfair, engine.Vigenere:
		return "key=" + req.Key
	case engine.Chaocipher:
		s := "alphabet=" + req.Alphabet
		if req.PlainAlphabet != "" && req.PlainAlphabet != req.Alphabet {
			s += " plain=" + req.PlainAlphabet
		}
		return s
	case engine.RailFence:
		s := fmt.Sprintf("rails=%d", req.Rails)
		if len(req.Order) > 0 {
			s += " order=" + formatOrder(req.Order)
		}
		return s
	default:
		return ""
	}
}

func formatOrder(order []int) string {
	s := ""
	for i, n := range order {
		if i > 0 {
			s += ","
		}
		s += fmt.Sprint(n)
	}
	return s
}
