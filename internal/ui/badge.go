package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/keywordmaster/keywordmaster/internal/stats"
)

// CategoryColor returns the terminal colour for a tag category.
func CategoryColor(c stats.Category) lipgloss.Color {
	return lipgloss.Color(c.Color())
}

func badgeStyle(c stats.Category) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(CategoryColor(c)).
		Border(lipgloss.RoundedBorder(), false, true).
		BorderForeground(CategoryColor(c)).
		Padding(0, 1)
}

// RenderTagBadge renders a single tag as a chip coloured by its category.
// A selected badge is highlighted and shows the remove marker.
func RenderTagBadge(tag string, selected bool) string {
	style := badgeStyle(stats.Categorize(tag))
	label := tag
	if selected {
		style = style.Bold(true).Reverse(true)
		label = tag + " " + RemoveMarker
	}
	return style.Render(label)
}

// TagCloudLayout groups tag indices into lines no wider than width, in
// order. Badge widths are measured as rendered.
func TagCloudLayout(tags []string, width int) [][]int {
	var lines [][]int
	var line []int
	lineWidth := 0
	for i, tag := range tags {
		w := lipgloss.Width(RenderTagBadge(tag, true))
		if lineWidth > 0 && lineWidth+1+w > width {
			lines = append(lines, line)
			line, lineWidth = nil, 0
		}
		if lineWidth > 0 {
			lineWidth++
		}
		line = append(line, i)
		lineWidth += w
	}
	if len(line) > 0 {
		lines = append(lines, line)
	}
	return lines
}

// RenderTagCloud lays out tags as badges wrapped to width. cursor selects a
// badge; pass -1 for none.
func RenderTagCloud(tags []string, width, cursor int) string {
	layout := TagCloudLayout(tags, width)
	rows := make([]string, 0, len(layout))
	for _, line := range layout {
		badges := make([]string, 0, len(line))
		for _, i := range line {
			badges = append(badges, RenderTagBadge(tags[i], i == cursor))
		}
		rows = append(rows, strings.Join(badges, " "))
	}
	return strings.Join(rows, "\n")
}

// RenderResultsHeading renders the "Results for" heading above a tag cloud.
func RenderResultsHeading(topic string, count int) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		SectionTitleStyle.Render(ResultsTitle(topic)),
		SubtitleStyle.Render(ResultsSubtitle(count)),
	)
}
