// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/cipherlab/internal/cipher"
	"github.com/jeranaias/cipherlab/internal/engine"
	"github.com/jeranaias/cipherlab/internal/ui/styles"
)

func TestMain(m *testing.M) {
	// Plain output so assertions see brackets, not escape codes.
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func asciiTheme() *styles.Theme {
	theme := styles.NewTheme()
	theme.UseASCII()
	return theme
}

func lineWith(t *testing.T, text, needle string) string {
	t.Helper()
	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, needle) {
			return line
		}
	}
	t.Fatalf("no line contains %q in:\n%s", needle, text)
	return ""
}

func lineStarting(t *testing.T, text, prefix string) string {
	t.Helper()
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, prefix) {
			return line
		}
	}
	t.Fatalf("no line starts with %q in:\n%s", prefix, text)
	return ""
}

// =============================================================================
// HEADER TESTS
// =============================================================================

func TestHeaderView(t *testing.T) {
	h := NewHeader(asciiTheme())
	h.SetRun(engine.Playfair, cipher.Encrypt, "key=MONARQUIA")

	view := h.View()
	require.Contains(t, view, "cipherlab")
	require.Contains(t, view, "Playfair encrypt")
	require.Contains(t, view, "key=MONARQUIA")

	h.SetWidth(40)
	compact := h.View()
	require.Contains(t, compact, "<cipherlab>")
	require.NotContains(t, compact, "\n")
}

// =============================================================================
// STATUS BAR TESTS
// =============================================================================

func TestStatusBarView(t *testing.T) {
	s := NewStatusBar(asciiTheme())
	s.SetPosition(2, 10)

	view := s.View()
	require.Contains(t, view, "|| paused")
	require.Contains(t, view, "step 3/10")
	require.Contains(t, view, "30.0%")
	require.Contains(t, view, "600ms/step")

	s.Playing = true
	s.Interval = 250 * time.Millisecond
	s.SetWidth(40)
	view = s.View()
	require.Contains(t, view, "> playing")
	require.NotContains(t, view, "%")

	s.SetPosition(0, 0)
	require.Contains(t, s.View(), "no steps")
	require.Equal(t, 100.0, s.Percent())
}

// =============================================================================
// TRACE VIEW TESTS
// =============================================================================

func view(t *testing.T, req engine.Request) *TraceView {
	t.Helper()
	out, err := engine.Run(req)
	require.NoError(t, err)
	return NewTraceView(asciiTheme(), out)
}

func TestTraceView_Chaocipher(t *testing.T) {
	v := view(t, engine.Request{
		Cipher:        "chaocipher",
		Text:          "WELLDONE",
		Alphabet:      "HXUCZVAMDSLKPEFJRIGTWOBNYQ",
		PlainAlphabet: "PTLNBQDEOYSFAVZKGJRIHWXUMC",
	})

	frame := v.Render(0)
	require.Contains(t, frame, "step 1 of 8  position 21")
	require.Contains(t, frame, "W -> O")
	require.Contains(t, lineStarting(t, frame, "left"), "(O)")
	require.Contains(t, lineStarting(t, frame, "right"), "[W]")
	require.Contains(t, frame, "after permuting")

	markers := strings.Split(frame, "\n")[2]
	require.Equal(t, labelWidth+1, strings.Index(markers, "v"))
	require.Equal(t, labelWidth+13*3+1, strings.Index(markers, "^"))
}

func TestTraceView_ChaocipherDecryptSwapsDisks(t *testing.T) {
	v := view(t, engine.Request{Cipher: "chao", Text: "A", Direction: cipher.Decrypt})

	frame := v.Render(0)
	require.Contains(t, lineStarting(t, frame, "left"), "[A]")
	require.Contains(t, lineStarting(t, frame, "right"), "(A)")
}

func TestTraceView_Playfair(t *testing.T) {
	v := view(t, engine.Request{Cipher: "playfair", Text: "HELLO", Key: "MONARQUIA"})

	frame := v.Render(0)
	require.Contains(t, frame, "same row")
	require.Contains(t, frame, "(D)[E](F) G [H]")
	require.Contains(t, frame, "[HE] LX LO")
	require.Contains(t, frame, "H(2,4) -> D(2,0)")
	require.Contains(t, lineStarting(t, frame, "so far"), "DF")

	frame = v.Render(2)
	require.Contains(t, frame, "same column")
	require.Contains(t, lineStarting(t, frame, "so far"), "DFPWWU")
}

func TestTraceView_PlayfairLayout(t *testing.T) {
	v := view(t, engine.Request{Cipher: "playfair", Text: "HELLO", Key: "MONARQUIA"})

	v.SetWidth(80)
	for _, line := range strings.Split(v.Render(0), "\n") {
		require.False(t, strings.Contains(line, "pairs") && strings.Contains(line, "╭"), line)
	}

	v.SetWidth(120)
	line := lineWith(t, v.Render(0), "pairs")
	require.Contains(t, line, "╭")
}

func TestTraceView_Vigenere(t *testing.T) {
	v := view(t, engine.Request{Cipher: "vigenere", Text: "PALAVRA", Key: "CHAVE"})

	frame := v.Render(0)
	require.Contains(t, frame, "key C")
	require.Contains(t, lineStarting(t, frame, "key C"), "(R)")
	require.Contains(t, frame, "[P]")
	require.Contains(t, frame, "[P]ALAVRA")
	require.Contains(t, frame, "[C]HAVECH")

	frame = v.Render(6)
	require.Contains(t, frame, "PALAVR[A]")
	require.Contains(t, lineStarting(t, frame, "so far"), "RHLVZTH")
}

func TestTraceView_RailFence(t *testing.T) {
	v := view(t, engine.Request{Cipher: "railfence", Text: "THISISATEST", Rails: 3})

	frame := v.Render(0)
	require.Contains(t, lineStarting(t, frame, "rail 0"), "(T) .  .  . (I) .  .  . (E)")
	require.Contains(t, lineStarting(t, frame, "order"), "0,1,2")
	require.Contains(t, lineStarting(t, frame, "so far"), "TIE")

	frame = v.Render(1)
	require.Contains(t, lineStarting(t, frame, "rail 0"), " T ")
	require.Contains(t, lineStarting(t, frame, "rail 1"), "(H)")
	require.Contains(t, lineStarting(t, frame, "so far"), "TIEHSSTS")
}

func TestTraceView_RailFenceDecrypt(t *testing.T) {
	v := view(t, engine.Request{Cipher: "rf", Text: "TIEHSSTSIAT", Rails: 3, Direction: cipher.Decrypt})

	frame := v.Render(0)
	require.Contains(t, frame, "segment 0 -> rail 0")
	require.Contains(t, lineStarting(t, frame, "rail 0"), "[T]")
	require.NotContains(t, frame, "so far")
}

func TestTraceView_ROT47(t *testing.T) {
	v := view(t, engine.Request{Cipher: "rot47", Text: "Hello World!"})

	frame := v.Render(0)
	require.Contains(t, frame, "H -> w")
	require.Contains(t, frame, "rotate 47")
	ring := strings.Split(frame, "\n")
	require.Contains(t, lineStarting(t, frame, "ring"), "!\"#$")
	marker := ring[len(ring)-3]
	require.Equal(t, int(labelWidth+('H'-'!')), strings.Index(marker, "v"))

	frame = v.Render(5)
	require.Contains(t, frame, "pass through")
	require.Contains(t, frame, "' ' is outside ! .. ~")
}

func TestTraceView_SummaryAndAll(t *testing.T) {
	v := view(t, engine.Request{Cipher: "railfence", Text: "THISISATEST", Rails: 3, Order: []int{0, 0}})

	summary := v.Summary()
	require.Contains(t, summary, "Rail Fence encrypt")
	require.Contains(t, summary, "output TIEHSSTSIAT")
	require.Contains(t, summary, "note   order:")

	all := v.RenderAll()
	require.True(t, strings.HasPrefix(all, summary))
	require.Contains(t, all, "step 3 of 3")
	require.Contains(t, v.Render(99), "step 3 of 3")
	require.Contains(t, v.Render(-1), "step 1 of 3")
}

func TestTraceView_Empty(t *testing.T) {
	v := view(t, engine.Request{Cipher: "vigenere", Text: "123", Key: "KEY"})
	require.Equal(t, 0, v.Len())
	require.Contains(t, v.Render(0), "no steps")

	require.Equal(t, 0, NewTraceView(nil, nil).Len())
	require.Equal(t, "", NewTraceView(nil, nil).Summary())
}
