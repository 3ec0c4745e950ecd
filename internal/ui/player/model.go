// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package player is a Bubble Tea program that steps through a cipher trace.
package player

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/cipherlab/internal/engine"
	"github.com/jeranaias/cipherlab/internal/ui/components"
	"github.com/jeranaias/cipherlab/internal/ui/styles"
)

// DefaultInterval is the autoplay tick when none is configured.
const DefaultInterval = 600 * time.Millisecond

// Options configures a player.
type Options struct {
	Theme    *styles.Theme
	Interval time.Duration
	KeyInfo  string // shown in the header, e.g. "rails=3"
	Keys     *KeyMap
}

// tickMsg advances autoplay. gen ties a tick to the play session that
// scheduled it, so a pause followed by a quick resume never double-steps.
type tickMsg struct{ gen int }

// =============================================================================
// MODEL
// =============================================================================

// Model is the player state. Everything it draws is a function of the
// outcome and the cursor.
type Model struct {
	theme    *styles.Theme
	keys     KeyMap
	trace    *components.TraceView
	header   *components.Header
	status   *components.StatusBar
	progress progress.Model
	help     help.Model

	step     int
	playing  bool
	gen      int
	interval time.Duration
	width    int
	height   int
	quitting bool
}

// New creates a player over out.
func New(out *engine.Outcome, opts Options) Model {
	theme := opts.Theme
	if theme == nil {
		theme = styles.NewTheme()
	}
	keys := DefaultKeyMap()
	if opts.Keys != nil {
		keys = *opts.Keys
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	m := Model{
		theme:    theme,
		keys:     keys,
		trace:    components.NewTraceView(theme, out),
		header:   components.NewHeader(theme),
		status:   components.NewStatusBar(theme),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		help:     help.New(),
		interval: interval,
	}
	if out != nil {
		m.header.SetRun(out.Cipher, out.Direction, opts.KeyInfo)
	}
	m.status.Interval = interval
	m.resize(80, 24)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Step returns the zero-based cursor.
func (m Model) Step() int { return m.step }

// Playing reports whether autoplay is on.
func (m Model) Playing() bool { return m.playing }

// Quitting reports whether the user asked to quit.
func (m Model) Quitting() bool { return m.quitting }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tickMsg:
		if !m.playing || msg.gen != m.gen {
			return m, nil
		}
		if m.step >= m.last() {
			m.playing = false
			return m, nil
		}
		m.step++
		if m.step == m.last() {
			m.playing = false
			return m, nil
		}
		return m, m.tick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Next):
		m.step = min(m.step+1, m.last())
	case key.Matches(msg, m.keys.Prev):
		m.step = max(m.step-1, 0)
	case key.Matches(msg, m.keys.First):
		m.step = 0
	case key.Matches(msg, m.keys.Last):
		m.step = m.last()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Play):
		m.playing = !m.playing
		m.gen++
		if m.playing {
			if m.step >= m.last() {
				m.step = 0
			}
			return m, m.tick()
		}
	}
	return m, nil
}

func (m Model) tick() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

func (m Model) last() int {
	return max(m.trace.Len()-1, 0)
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.theme.SetSize(width, height)
	m.trace.SetWidth(width)
	m.header.SetWidth(width)
	m.status.SetWidth(width)
	m.help.Width = width
	m.progress.Width = max(width-4, 10)
}

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.status.SetPosition(m.step, m.trace.Len())
	m.status.Playing = m.playing

	var body string
	if m.step == 0 {
		body = lipgloss.JoinVertical(lipgloss.Left, m.trace.Summary(), "", m.trace.Render(m.step))
	} else {
		body = m.trace.Render(m.step)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		"",
		m.theme.Container.Render(body),
		"",
		m.theme.Container.Render(m.progress.ViewAs(m.status.Percent()/100)),
		m.status.View(),
		m.help.View(m.keys),
	)
}

// =============================================================================
// PROGRAM
// =============================================================================

// Run opens the player full screen and blocks until the user quits.
func Run(out *engine.Outcome, opts Options) error {
	_, err := tea.NewProgram(New(out, opts), tea.WithAltScreen()).Run()
	return err
}
