package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/keywordmaster/keywordmaster/internal/ui"
)

var (
	// TitleStyle is the application title in the top bar
	TitleStyle = lipgloss.NewStyle().
			Foreground(ui.PrimaryColor).
			Bold(true)

	// TaglineStyle is the line under the title
	TaglineStyle = lipgloss.NewStyle().
			Foreground(ui.AccentColor).
			Italic(true)

	// PromptStyle is the input prompt marker
	PromptStyle = lipgloss.NewStyle().
			Foreground(ui.PrimaryColor).
			Bold(true)

	// SpinnerStyle colours the generation spinner
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(ui.PrimaryColor)

	// ButtonStyle is an enabled action label
	ButtonStyle = lipgloss.NewStyle().
			Foreground(ui.TextColor).
			Background(ui.PrimaryColor).
			Bold(true).
			Padding(0, 2)

	// DisabledButtonStyle is an action label that cannot be used right now
	DisabledButtonStyle = lipgloss.NewStyle().
				Foreground(ui.MutedColor).
				Padding(0, 2)

	// CopiedButtonStyle is the copy label right after a copy
	CopiedButtonStyle = lipgloss.NewStyle().
				Foreground(ui.TextColor).
				Background(ui.SuccessColor).
				Bold(true).
				Padding(0, 1)

	// ActionStyle is a secondary action label
	ActionStyle = lipgloss.NewStyle().
			Foreground(ui.TextColor).
			Padding(0, 1)

	// NoticeStyle is the transient status line
	NoticeStyle = lipgloss.NewStyle().
			Foreground(ui.WarningColor)
)
