// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/cipherlab/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT - playback state under the trace
// =============================================================================

// StatusBar shows the playback state and position.
type StatusBar struct {
	Step     int           // zero-based current frame
	Total    int           // number of frames
	Playing  bool          // autoplay on
	Interval time.Duration // autoplay tick
	Width    int
	theme    *styles.Theme
}

// NewStatusBar creates a new StatusBar component
func NewStatusBar(theme *styles.Theme) *StatusBar {
	if theme == nil {
		theme = styles.NewTheme()
	}
	return &StatusBar{
		Interval: 600 * time.Millisecond,
		Width:    80,
		theme:    theme,
	}
}

// SetWidth updates the bar width
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetPosition updates the current frame and frame count.
func (s *StatusBar) SetPosition(step, total int) {
	s.Step, s.Total = step, total
}

// Percent is the share of frames shown so far.
func (s *StatusBar) Percent() float64 {
	if s.Total == 0 {
		return 100
	}
	return float64(s.Step+1) / float64(s.Total) * 100
}

// View renders the bar.
func (s *StatusBar) View() string {
	g := s.theme.Glyphs
	state := s.theme.Paused.Render(g.Paused + " paused")
	if s.Playing {
		state = s.theme.Playing.Render(g.Playing + " playing")
	}

	parts := []string{state}
	if s.Total == 0 {
		parts = append(parts, "no steps")
	} else {
		parts = append(parts, fmt.Sprintf("step %d/%d", s.Step+1, s.Total))
	}
	if s.Width >= 60 {
		parts = append(parts, fmtPercent(s.Percent()))
		parts = append(parts, s.Interval.String()+"/step")
	}

	separator := lipgloss.NewStyle().Foreground(styles.Overlay).Render(" | ")
	return s.theme.StatusBar.Width(s.Width).Render(strings.Join(parts, separator))
}
