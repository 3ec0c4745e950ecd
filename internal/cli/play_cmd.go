// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// play_cmd.go - The play command: a full-screen step player.
//
// Command: play <cipher> <encrypt|decrypt> <text...> [cipher flags] [--interval MS]

package cli

import (
	"time"

	"github.com/jeranaias/cipherlab/internal/cipher"
	"github.com/jeranaias/cipherlab/internal/config"
	"github.com/jeranaias/cipherlab/internal/engine"
	"github.com/jeranaias/cipherlab/internal/ui/player"
)

// Replaced in tests.
var (
	runPlayer  = player.Run
	requireTTY = RequiresTTY
)

// HandlePlay runs a cipher and opens the player on its trace.
func HandlePlay(s Streams, args Args) error {
	p := NewArgParser(args.Raw, runBools...)
	name, dirArg := p.Positional(0), p.Positional(1)
	if name == "" || dirArg == "" {
		return ErrMissingArgument("cipher and direction", "cipherlab play playfair encrypt hello")
	}
	dir, err := cipher.ParseDirection(dirArg)
	if err != nil {
		return NewValidationError("direction", dirArg, "must be encrypt or decrypt", "cipherlab play vigenere decrypt RHLVZTH")
	}

	cfg := config.Global()
	req, err := buildRequest(cfg, p, name, dir)
	if err != nil {
		return err
	}
	if p.PositionalCount() <= 2 && !p.HasFlag("file") {
		return ErrMissingArgument("text", "cipherlab play "+req.Cipher+" "+dir.String()+" HELLO")
	}
	if req.Text, err = readText(s, p, 2); err != nil {
		return err
	}

	ms, err := p.FlagIntOrDefault("interval", cfg.UI.StepIntervalMS)
	if err != nil {
		return err
	}

	out, err := engine.Run(req)
	if err != nil {
		return ErrUnknownCipher(name)
	}
	if err := requireTTY("play a trace"); err != nil {
		return err
	}
	return runPlayer(out, player.Options{
		Theme:    newTheme(),
		Interval: time.Duration(ms) * time.Millisecond,
		KeyInfo:  keyInfo(req),
	})
}
