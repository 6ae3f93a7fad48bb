package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/keywordmaster/keywordmaster/internal/session"
	"github.com/keywordmaster/keywordmaster/internal/tagger"
	"github.com/keywordmaster/keywordmaster/internal/ui"
	"github.com/keywordmaster/keywordmaster/internal/version"
)

// View renders the application
func (m AppModel) View() string {
	parts := []string{m.renderTop()}
	if body := m.Viewport.View(); strings.TrimSpace(body) != "" {
		parts = append(parts, body)
	}
	parts = append(parts, m.renderBottom())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderTop renders everything above the results pane.
func (m AppModel) renderTop() string {
	width := m.contentWidth()

	title := TitleStyle.Render(strings.ToUpper(ui.AppName)) + " " + ui.HelpStyle.Render(version.Version)
	lines := []string{
		title,
		TaglineStyle.Render(ui.Tagline),
		"",
		m.Input.View() + "  " + m.renderSubmit(),
	}

	if m.snap.Error != "" {
		err := &displayError{msg: m.snap.Error}
		lines = append(lines, "", ui.NewFailureResult("Generation failed", err, tagger.HintsFor(m.lastErr)).SetWidth(width).Render())
	}

	if len(m.snap.Tags) > 0 {
		lines = append(lines, "", lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(max(width-24, 10)).Render(ui.RenderResultsHeading(m.snap.Topic, len(m.snap.Tags))),
			m.renderActions(),
		))
	}

	return strings.Join(lines, "\n")
}

func (m AppModel) renderSubmit() string {
	if m.snap.Generating {
		return m.Spinner.View() + " " + DisabledButtonStyle.Render(ui.ProcessingLabel)
	}
	return ButtonStyle.Render(ui.GenerateLabel)
}

func (m AppModel) renderActions() string {
	copyLabel := ActionStyle.Render("[c] " + ui.CopyLabel)
	if m.snap.Copy == session.CopyCopied {
		copyLabel = CopiedButtonStyle.Render(ui.SuccessMarker + " " + ui.CopiedLabel)
	}
	return copyLabel + " " + ActionStyle.Render("[s] "+ui.ExportLabel)
}

// renderResults renders the stats board and the tag cloud, and returns the
// line holding the cursor, or -1.
func (m AppModel) renderResults(width int) (string, int) {
	if len(m.snap.Tags) == 0 {
		return "", -1
	}

	cursor := -1
	if m.Focus == FocusTags {
		cursor = m.Cursor
	}

	var b strings.Builder
	board := ui.RenderStatsBoard(m.snap.Stats(), width)
	b.WriteString(board)
	b.WriteString("\n\n")
	offset := lipgloss.Height(board) + 1

	cursorLine := -1
	for i, line := range ui.TagCloudLayout(m.snap.Tags, width) {
		for _, idx := range line {
			if idx == cursor {
				cursorLine = offset + i
			}
		}
	}
	b.WriteString(ui.RenderTagCloud(m.snap.Tags, width, cursor))

	return b.String(), cursorLine
}

// renderBottom renders the notice, key help and footer.
func (m AppModel) renderBottom() string {
	var lines []string
	if m.notice != "" {
		lines = append(lines, NoticeStyle.Render(m.notice))
	}
	if m.Focus == FocusTags {
		lines = append(lines, m.Help.View(m.TagKeys))
	} else {
		lines = append(lines, m.Help.View(m.Keys))
	}
	lines = append(lines, ui.HelpStyle.Render(ui.FooterText(time.Now())))
	return strings.Join(lines, "\n")
}

// chromeHeight is the number of lines used outside the results pane.
func (m AppModel) chromeHeight() int {
	return lipgloss.Height(m.renderTop()) + lipgloss.Height(m.renderBottom()) + 1
}

// displayError carries a message that was already formatted for display.
type displayError struct {
	msg string
}

func (e *displayError) Error() string { return e.msg }
