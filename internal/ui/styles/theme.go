// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// Glyphs used for markers; ASCII when the terminal cannot draw Unicode.
	Glyphs Glyphs

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style
	Panel     lipgloss.Style

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style

	// ==========================================================================
	// TRACE STYLES
	// ==========================================================================

	Label    lipgloss.Style
	Value    lipgloss.Style
	Input    lipgloss.Style // consumed symbols
	Output   lipgloss.Style // produced symbols
	Rule     lipgloss.Style
	Note     lipgloss.Style
	Muted    lipgloss.Style
	Marker   lipgloss.Style // zenith / nadir
	Fallback lipgloss.Style
	Error    lipgloss.Style

	// Grid cells (Playfair square, tabula recta, rail fence, disks)
	Cell         lipgloss.Style
	CellConsumed lipgloss.Style
	CellProduced lipgloss.Style
	CellGuide    lipgloss.Style // row/column of the current lookup

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar lipgloss.Style
	KeyHint   lipgloss.Style
	Playing   lipgloss.Style
	Paused    lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	colorProfile := termenv.ColorProfile()
	hasTrueColor := colorProfile == termenv.TrueColor
	isDark := termenv.HasDarkBackground()

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: hasTrueColor,
		ColorProfile: colorProfile,
		Glyphs:       UnicodeGlyphs,
	}

	t.initStyles()
	return t
}

// UseASCII switches marker glyphs to plain ASCII.
func (t *Theme) UseASCII() {
	t.Glyphs = ASCIIGlyphs
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)
	t.Panel = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(OverlayDim).
		Padding(0, 1)

	// Header
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan).
		Background(SurfaceDim).
		Padding(0, 1)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	// Trace
	t.Label = lipgloss.NewStyle().Foreground(TextSecondary)
	t.Value = lipgloss.NewStyle().Foreground(TextPrimary)
	t.Input = lipgloss.NewStyle().Foreground(Cyan).Bold(true)
	t.Output = lipgloss.NewStyle().Foreground(Emerald).Bold(true)
	t.Rule = lipgloss.NewStyle().Foreground(Purple).Italic(true)
	t.Note = lipgloss.NewStyle().Foreground(TextSecondary)
	t.Muted = lipgloss.NewStyle().Foreground(TextMuted)
	t.Marker = lipgloss.NewStyle().Foreground(Amber).Bold(true)
	t.Fallback = lipgloss.NewStyle().Foreground(Amber)
	t.Error = lipgloss.NewStyle().Foreground(Rose).Bold(true)

	// Cells
	t.Cell = lipgloss.NewStyle().Foreground(TextPrimary)
	t.CellConsumed = lipgloss.NewStyle().
		Foreground(Cyan).
		Background(CyanDeep).
		Bold(true)
	t.CellProduced = lipgloss.NewStyle().
		Foreground(Emerald).
		Background(EmeraldDeep).
		Bold(true)
	t.CellGuide = lipgloss.NewStyle().
		Foreground(Purple).
		Background(PurpleDeep)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)
	t.KeyHint = lipgloss.NewStyle().Foreground(TextMuted)
	t.Playing = lipgloss.NewStyle().Foreground(Emerald).Bold(true)
	t.Paused = lipgloss.NewStyle().Foreground(Amber).Bold(true)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // >= 100 columns
)

// String returns the layout name.
func (m LayoutMode) String() string {
	switch m {
	case LayoutNarrow:
		return "narrow"
	case LayoutMedium:
		return "medium"
	default:
		return "wide"
	}
}
