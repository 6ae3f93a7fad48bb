package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/keywordmaster/keywordmaster/internal/stats"
)

const breakdownLabelWidth = 10

// RenderBreakdown renders one bar per category, sized by its share of tags.
func RenderBreakdown(s stats.Stats, width int) string {
	barWidth := max(width-breakdownLabelWidth-12, 10)

	lines := []string{SectionTitleStyle.Render("Keyword Breakdown")}
	for _, slice := range s.Slices() {
		bar := progress.New(
			progress.WithSolidFill(slice.Color),
			progress.WithWidth(barWidth),
			progress.WithoutPercentage(),
		)
		label := lipgloss.NewStyle().
			Foreground(CategoryColor(slice.Category)).
			Width(breakdownLabelWidth).
			Render(slice.Name)
		lines = append(lines, fmt.Sprintf("%s %s %4d", label, bar.ViewAs(slice.Percent(s.Count)/100), slice.Value))
	}
	return strings.Join(lines, "\n")
}

// RenderInsights renders the quick insights panel.
func RenderInsights(s stats.Stats) string {
	rows := []struct {
		key   string
		value string
	}{
		{"Total Keywords", strconv.Itoa(s.Count)},
		{"Avg. Length", s.FormatAverage()},
		{"SEO Score", ScoreStyle.Render(stats.SEOScore)},
	}

	lines := []string{SectionTitleStyle.Render("Quick Insights")}
	for _, row := range rows {
		lines = append(lines, ResultKeyStyle.Render(row.key)+" "+ResultValueStyle.Render(row.value))
	}
	return strings.Join(lines, "\n")
}

// RenderStatsBoard renders the breakdown and the insights in a panel.
// It returns "" when there are no tags.
func RenderStatsBoard(s stats.Stats, width int) string {
	if s.Empty() {
		return ""
	}
	width = ClampWidth(width)

	var body string
	if width >= 90 {
		half := (width - 6) / 2
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(half).Render(RenderBreakdown(s, half)),
			"  ",
			RenderInsights(s),
		)
	} else {
		body = RenderBreakdown(s, width-4) + "\n\n" + RenderInsights(s)
	}

	return PanelStyle(width).Render(body)
}
