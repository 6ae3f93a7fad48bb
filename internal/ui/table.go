package ui

import (
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/keywordmaster/keywordmaster/internal/stats"
	"github.com/olekukonko/tablewriter"
)

// RenderTagTable writes tags as a table with their word count, category and
// length, followed by a totals footer.
func RenderTagTable(w io.Writer, tags []string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Tag", "Words", "Category", "Length"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for i, tag := range tags {
		table.Append([]string{
			strconv.Itoa(i + 1),
			tag,
			strconv.Itoa(len(strings.Fields(tag))),
			stats.Categorize(tag).String(),
			strconv.Itoa(utf8.RuneCountInString(tag)),
		})
	}

	s := stats.Compute(tags)
	table.SetFooter([]string{"", "Total " + strconv.Itoa(s.Count), "", stats.SEOScore, s.FormatAverage()})
	table.Render()
}

// RenderStatsTable writes the category breakdown as a table.
func RenderStatsTable(w io.Writer, s stats.Stats) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Category", "Tags", "Share"})
	table.SetBorder(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, slice := range s.Slices() {
		table.Append([]string{
			slice.Name,
			strconv.Itoa(slice.Value),
			strconv.FormatFloat(slice.Percent(s.Count), 'f', 1, 64) + "%",
		})
	}
	table.Render()
}
