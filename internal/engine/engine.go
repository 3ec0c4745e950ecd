// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package engine

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/jeranaias/cipherlab/internal/cipher"
	"github.com/jeranaias/cipherlab/internal/cipher/chaocipher"
	"github.com/jeranaias/cipherlab/internal/cipher/playfair"
	"github.com/jeranaias/cipherlab/internal/cipher/railfence"
	"github.com/jeranaias/cipherlab/internal/cipher/rot47"
	"github.com/jeranaias/cipherlab/internal/cipher/vigenere"
)

// Canonical cipher names.
const (
	Chaocipher = "chaocipher"
	RailFence  = "railfence"
	Playfair   = "playfair"
	Vigenere   = "vigenere"
	ROT47      = "rot47"
)

// ErrUnknownCipher is returned by Run for a name that is not in the catalogue.
var ErrUnknownCipher = errors.New("unknown cipher")

// =============================================================================
// REQUEST / OUTCOME
// =============================================================================

// Request is one engine invocation. Fields a cipher does not use are ignored.
type Request struct {
	Cipher        string
	Text          string
	Direction     cipher.Direction
	Key           string // Playfair / Vigenère keyword
	Alphabet      string // Chaocipher left disk
	PlainAlphabet string // Chaocipher right disk
	Rails         int
	Order         []int
}

// Frame is a cipher-neutral view of one trace step, for display and export.
type Frame struct {
	Index    int      `json:"index"`
	Consumed string   `json:"consumed"`
	Produced string   `json:"produced"`
	Rule     string   `json:"rule,omitempty"`
	Notes    []string `json:"notes,omitempty"`
}

// Outcome is the uniform result of Run.
type Outcome struct {
	ID         string            `json:"id"`
	Cipher     string            `json:"cipher"`
	Direction  cipher.Direction  `json:"direction"`
	Input      string            `json:"input"`
	Normalized string            `json:"normalized"`
	Output     string            `json:"output"`
	Frames     []Frame           `json:"frames"`
	Fallbacks  []cipher.Fallback `json:"fallbacks,omitempty"`

	// Detail is the cipher package's own Result (chaocipher.Result, ...),
	// used by renderers that draw disks, squares or fences.
	Detail any `json:"-"`
}

// Run dispatches req to its cipher. The only error is ErrUnknownCipher.
func Run(req Request) (*Outcome, error) {
	info, ok := Lookup(req.Cipher)
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownCipher, req.Cipher, strings.Join(Names(), ", "))
	}

	out := &Outcome{
		ID:        uuid.NewString(),
		Cipher:    info.Name,
		Direction: req.Direction,
		Input:     req.Text,
	}

	switch info.Name {
	case Chaocipher:
		res := chaocipher.Run(req.Text, chaocipher.Config{
			Alphabet:      req.Alphabet,
			PlainAlphabet: req.PlainAlphabet,
		}, req.Direction)
		out.Normalized, out.Output, out.Fallbacks = res.Normalized, res.Text, res.Fallbacks
		out.Frames = chaoFrames(res)
		out.Detail = res
	case RailFence:
		res := railfence.Run(req.Text, railfence.Config{Rails: req.Rails, Order: req.Order}, req.Direction)
		out.Normalized, out.Output, out.Fallbacks = res.Normalized, res.Text, res.Fallbacks
		out.Frames = railFrames(res, req.Direction)
		out.Detail = res
	case Playfair:
		res := playfair.Run(req.Text, req.Key, req.Direction)
		out.Normalized, out.Output = res.Normalized, res.Text
		out.Frames = playfairFrames(res)
		out.Detail = res
	case Vigenere:
		res := vigenere.Run(req.Text, req.Key, req.Direction)
		out.Normalized, out.Output = res.Normalized, res.Text
		out.Frames = vigenereFrames(res)
		out.Detail = res
	case ROT47:
		res := rot47.Transform(req.Text)
		out.Normalized, out.Output = res.Normalized, res.Text
		out.Frames = rot47Frames(res)
		out.Detail = res
	}

	return out, nil
}

// ParseOrder parses a rail order such as "2,0,1" or "2 0 1".
// An empty string is an empty order.
func ParseOrder(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	order := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid rail index %q: %w", f, err)
		}
		order = append(order, n)
	}
	return order, nil
}

// =============================================================================
// FRAME ADAPTERS
// =============================================================================

func chaoFrames(res chaocipher.Result) []Frame {
	frames := make([]Frame, 0, len(res.Steps))
	for i, s := range res.Steps {
		frames = append(frames, Frame{
			Index:    i,
			Consumed: string(s.Input),
			Produced: string(s.Output),
			Rule:     fmt.Sprintf("position %d", s.Index),
			Notes:    []string{"left  " + s.Left, "right " + s.Right},
		})
	}
	return frames
}

func railFrames(res railfence.Result, dir cipher.Direction) []Frame {
	t := res.Trace
	if len(t.Rows) == 0 {
		return nil
	}
	frames := make([]Frame, 0, len(t.Order))
	for i, row := range t.Order {
		content := t.Rows[row]
		var positions []string
		for pos, r := range t.Pattern {
			if r == row {
				positions = append(positions, strconv.Itoa(pos))
			}
		}
		f := Frame{
			Index:    i,
			Consumed: content,
			Produced: content,
			Rule:     fmt.Sprintf("rail %d", row),
			Notes:    []string{"positions " + strings.Join(positions, ",")},
		}
		if dir == cipher.Decrypt {
			f.Rule = fmt.Sprintf("segment %d -> rail %d", i, row)
		}
		frames = append(frames, f)
	}
	return frames
}

func playfairFrames(res playfair.Result) []Frame {
	frames := make([]Frame, 0, len(res.Steps))
	for i, s := range res.Steps {
		frames = append(frames, Frame{
			Index:    i,
			Consumed: s.Pair.String(),
			Produced: s.Result.String(),
			Rule:     s.Rule.String(),
			Notes: []string{
				fmt.Sprintf("%c(%d,%d) -> %c(%d,%d)", s.Pair[0], s.From[0].Row, s.From[0].Col, s.Result[0], s.To[0].Row, s.To[0].Col),
				fmt.Sprintf("%c(%d,%d) -> %c(%d,%d)", s.Pair[1], s.From[1].Row, s.From[1].Col, s.Result[1], s.To[1].Row, s.To[1].Col),
			},
		})
	}
	return frames
}

func vigenereFrames(res vigenere.Result) []Frame {
	frames := make([]Frame, 0, len(res.Steps))
	for i, s := range res.Steps {
		frames = append(frames, Frame{
			Index:    i,
			Consumed: string(s.Input),
			Produced: string(s.Output),
			Rule:     fmt.Sprintf("key %c", s.Key),
			Notes:    []string{fmt.Sprintf("row %c (%d), column %c (%d)", s.Key, s.Row, rune('A'+s.Column), s.Column)},
		})
	}
	return frames
}

func rot47Frames(res rot47.Result) []Frame {
	frames := make([]Frame, 0, len(res.Steps))
	for i, s := range res.Steps {
		rule := "rotate 47"
		if !s.Shifted {
			rule = "pass through"
		}
		frames = append(frames, Frame{
			Index:    i,
			Consumed: string(s.Before),
			Produced: string(s.After),
			Rule:     rule,
		})
	}
	return frames
}
