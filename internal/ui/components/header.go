// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/cipherlab/internal/cipher"
	"github.com/jeranaias/cipherlab/internal/ui/styles"
)

// =============================================================================
// HEADER COMPONENT - title bar with cipher, direction and key
// =============================================================================

// Header is the player's title bar.
type Header struct {
	Title     string           // Brand (default: "cipherlab")
	Cipher    string           // Canonical cipher name
	Direction cipher.Direction // encrypt / decrypt
	Key       string           // Key summary, e.g. "key=MONARQUIA" or "rails=3"
	Width     int              // Available width
	theme     *styles.Theme
}

// NewHeader creates a new Header component with default values
func NewHeader(theme *styles.Theme) *Header {
	if theme == nil {
		theme = styles.NewTheme()
	}
	return &Header{
		Title: "cipherlab",
		Width: 80,
		theme: theme,
	}
}

// SetWidth updates the header width
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetRun describes the run being played.
func (h *Header) SetRun(name string, dir cipher.Direction, key string) {
	h.Cipher = name
	h.Direction = dir
	h.Key = key
}

// View renders the header, falling back to the compact form on narrow
// terminals.
func (h *Header) View() string {
	if h.Width < 60 {
		return h.ViewCompact()
	}

	brand := h.theme.HeaderTitle.Render("< ") +
		h.theme.Header.UnsetBackground().UnsetPadding().Render(h.Title) +
		h.theme.HeaderTitle.Render(" >")

	subtitle := h.subtitle()
	content := lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.NewStyle().Width(h.Width-6).Align(lipgloss.Center).Render(brand),
		lipgloss.NewStyle().Width(h.Width-6).Align(lipgloss.Center).Render(subtitle),
	)

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Purple).
		Padding(0, 2).
		Render(content)
}

// ViewCompact renders a compact single-line header for narrow terminals
func (h *Header) ViewCompact() string {
	parts := []string{h.theme.HeaderTitle.Render("<" + h.Title + ">")}
	if sub := h.subtitle(); sub != "" {
		parts = append(parts, sub)
	}
	separator := lipgloss.NewStyle().Foreground(styles.Overlay).Render(" | ")
	return strings.Join(parts, separator)
}

func (h *Header) subtitle() string {
	var parts []string
	if h.Cipher != "" {
		parts = append(parts, h.theme.Input.Render(title(h.Cipher)))
		parts = append(parts, h.theme.HeaderSubtitle.Render(h.Direction.String()))
	}
	if h.Key != "" {
		parts = append(parts, h.theme.Muted.Render(h.Key))
	}
	return strings.Join(parts, " ")
}
