// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/cipherlab/internal/cipher"
	"github.com/jeranaias/cipherlab/internal/cipher/chaocipher"
	"github.com/jeranaias/cipherlab/internal/cipher/playfair"
	"github.com/jeranaias/cipherlab/internal/cipher/railfence"
	"github.com/jeranaias/cipherlab/internal/cipher/rot47"
	"github.com/jeranaias/cipherlab/internal/cipher/vigenere"
	"github.com/jeranaias/cipherlab/internal/engine"
	"github.com/jeranaias/cipherlab/internal/ui/styles"
)

// labelWidth is the width of the row labels to the left of every grid.
const labelWidth = 7

// =============================================================================
// TRACE VIEW COMPONENT
// =============================================================================

// TraceView renders an engine.Outcome one frame at a time. The body of each
// frame is drawn from the cipher's own result: disks for Chaocipher, the key
// square for Playfair, a tabula recta row for Vigenère, the zig-zag for Rail
// Fence and the printable ring for ROT47.
type TraceView struct {
	theme *styles.Theme
	out   *engine.Outcome
	Width int
}

// NewTraceView creates a view over out.
func NewTraceView(theme *styles.Theme, out *engine.Outcome) *TraceView {
	if theme == nil {
		theme = styles.NewTheme()
	}
	v := &TraceView{theme: theme, out: out}
	v.SetWidth(80)
	return v
}

// SetWidth updates the available width and the theme's layout mode.
func (v *TraceView) SetWidth(width int) {
	v.Width = width
	v.theme.SetSize(width, v.theme.Height)
}

// Outcome returns the rendered run.
func (v *TraceView) Outcome() *engine.Outcome {
	return v.out
}

// Len returns the number of frames.
func (v *TraceView) Len() int {
	if v.out == nil {
		return 0
	}
	return len(v.out.Frames)
}

// Summary renders the run's input, normalized text, output and fallbacks.
func (v *TraceView) Summary() string {
	if v.out == nil {
		return ""
	}
	t := v.theme
	lines := []string{
		t.HeaderTitle.Render(title(v.out.Cipher)) + " " + t.HeaderSubtitle.Render(v.out.Direction.String()),
		v.field("input", t.Value.Render(v.out.Input)),
		v.field("normal", t.Input.Render(v.out.Normalized)),
		v.field("output", t.Output.Render(v.out.Output)),
	}
	for _, f := range v.out.Fallbacks {
		lines = append(lines, v.field("note", t.Fallback.Render(f.String())))
	}
	return strings.Join(lines, "\n")
}

// Render draws frame step, clamped to the available frames.
func (v *TraceView) Render(step int) string {
	if v.Len() == 0 {
		return v.theme.Muted.Render("no steps: the normalized input is empty or the configuration is a pass-through")
	}
	step = clamp(step, v.Len())
	f := v.out.Frames[step]
	t := v.theme

	head := t.Label.Render(fmt.Sprintf("step %d of %d", step+1, v.Len()))
	if f.Rule != "" {
		head += "  " + t.Rule.Render(f.Rule)
	}
	move := t.Input.Render(f.Consumed) + " " + t.Muted.Render(t.Glyphs.Arrow) + " " + t.Output.Render(f.Produced)

	var body string
	switch d := v.out.Detail.(type) {
	case chaocipher.Result:
		body = v.chaocipher(d, step)
	case playfair.Result:
		body = v.playfair(d, step)
	case vigenere.Result:
		body = v.vigenere(d, step)
	case railfence.Result:
		body = v.railfence(d, step)
	case rot47.Result:
		body = v.rot47(d, step)
	default:
		body = v.notes(f)
	}

	parts := []string{head, move}
	if body != "" {
		parts = append(parts, body)
	}
	if sofar := v.soFar(step); sofar != "" {
		parts = append(parts, v.field("so far", t.Output.Render(sofar)))
	}
	return strings.Join(parts, "\n")
}

// RenderAll draws the summary followed by every frame.
func (v *TraceView) RenderAll() string {
	blocks := []string{v.Summary()}
	for i := 0; i < v.Len(); i++ {
		blocks = append(blocks, v.Render(i))
	}
	return strings.Join(blocks, "\n\n")
}

// =============================================================================
// SHARED RENDERING
// =============================================================================

type cellKind int

const (
	cellPlain cellKind = iota
	cellMuted
	cellGuide
	cellConsumed
	cellProduced
	cellBoth
)

// cell draws one symbol padded to width w. Highlighted cells also carry
// brackets so they stay visible without colour.
func (v *TraceView) cell(sym string, w int, kind cellKind) string {
	sym = padRight(sym, w)
	t := v.theme
	switch kind {
	case cellMuted:
		return t.Muted.Render(" " + sym + " ")
	case cellGuide:
		return t.CellGuide.Render(" " + sym + " ")
	case cellConsumed:
		return t.CellConsumed.Render("[" + sym + "]")
	case cellProduced:
		return t.CellProduced.Render("(" + sym + ")")
	case cellBoth:
		return t.CellGuide.Render("{" + sym + "}")
	default:
		return t.Cell.Render(" " + sym + " ")
	}
}

// field renders a label column followed by value.
func (v *TraceView) field(label, value string) string {
	return v.theme.Label.Render(padRight(label, labelWidth)) + value
}

func (v *TraceView) notes(f engine.Frame) string {
	lines := make([]string, 0, len(f.Notes))
	for _, n := range f.Notes {
		lines = append(lines, v.field("", v.theme.Note.Render(n)))
	}
	return strings.Join(lines, "\n")
}

// soFar is the output produced up to and including step. Rail Fence
// decryption has no running output: its frames fill rails, not positions.
func (v *TraceView) soFar(step int) string {
	if v.out.Cipher == engine.RailFence && v.out.Direction == cipher.Decrypt {
		return ""
	}
	var sb strings.Builder
	for _, f := range v.out.Frames[:step+1] {
		sb.WriteString(f.Produced)
	}
	return sb.String()
}

// stack places blocks side by side on wide terminals and stacks them
// otherwise.
func (v *TraceView) stack(blocks ...string) string {
	if v.theme.GetLayoutMode() == styles.LayoutWide {
		spaced := make([]string, 0, 2*len(blocks))
		for i, b := range blocks {
			if i > 0 {
				spaced = append(spaced, "   ")
			}
			spaced = append(spaced, b)
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, spaced...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func title(name string) string {
	if info, ok := engine.Lookup(name); ok {
		return info.Title
	}
	return name
}
