package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/keywordmaster/keywordmaster/internal/stats"
)

// Printer writes UI components to a writer.
// This is the primary way one-shot commands output styled content.
type Printer struct {
	out   io.Writer
	width int
}

// NewPrinter creates a new Printer that writes to the given writer.
// If w is nil, os.Stdout is used.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{
		out:   w,
		width: GetTerminalWidth(),
	}
}

// SetWidth overrides the detected terminal width
func (p *Printer) SetWidth(width int) *Printer {
	p.width = ClampWidth(width)
	return p
}

// Width returns the current terminal width used by this printer
func (p *Printer) Width() int {
	return p.width
}

// Writer returns the underlying writer
func (p *Printer) Writer() io.Writer {
	return p.out
}

// Print writes content to the output
func (p *Printer) Print(content string) {
	_, _ = fmt.Fprint(p.out, content)
}

// Println writes content with a newline
func (p *Printer) Println(content string) {
	_, _ = fmt.Fprintln(p.out, content)
}

// PrintLines writes multiple lines
func (p *Printer) PrintLines(lines ...string) {
	for _, line := range lines {
		_, _ = fmt.Fprintln(p.out, line)
	}
}

// Newline prints an empty line
func (p *Printer) Newline() {
	_, _ = fmt.Fprintln(p.out)
}

// PrintHeader prints the command banner
func (p *Printer) PrintHeader(title, subtitle string, params ...Param) {
	p.Println(NewHeader(title, subtitle, params...).SetWidth(p.width).Render())
	p.Newline()
}

// PrintPleaseWait prints a styled "please wait" line for a slow operation.
func (p *Printer) PrintPleaseWait(message, durationHint string) {
	style := lipgloss.NewStyle().Foreground(PrimaryColor).Bold(true).PaddingLeft(2)
	line := style.Render("⏳ " + message)
	if durationHint != "" {
		line += " " + HelpStyle.Italic(true).Render("("+durationHint+")")
	}
	p.Println(line + style.UnsetPaddingLeft().Render("..."))
}

// PrintSuccess prints a success result box
func (p *Printer) PrintSuccess(title string, details ...Param) {
	p.Println(RenderSuccessBox(title, p.width, details...))
}

// PrintError prints an error result box with troubleshooting tips
func (p *Printer) PrintError(title string, err error, troubleshooting []string) {
	p.Println(RenderErrorBox(title, err, troubleshooting, p.width))
}

// PrintResults prints the heading, stats board and tag cloud for tags.
func (p *Printer) PrintResults(topic string, tags []string) {
	p.Println(RenderResultsHeading(topic, len(tags)))
	p.Newline()
	if board := RenderStatsBoard(stats.Compute(tags), p.width); board != "" {
		p.Println(board)
		p.Newline()
	}
	p.Println(RenderTagCloud(tags, p.width, -1))
}

// PrintTable prints tags as a table
func (p *Printer) PrintTable(tags []string) {
	RenderTagTable(p.out, tags)
}

// PrintList prints one tag per line
func (p *Printer) PrintList(tags []string) {
	if len(tags) == 0 {
		return
	}
	p.Println(strings.Join(tags, "\n"))
}

// PrintTips prints the SEO tips and the footer line
func (p *Printer) PrintTips(now time.Time) {
	p.Println(SectionTitleStyle.Render(TipsTitle))
	for _, tip := range SEOTips {
		p.Println(lipgloss.NewStyle().Foreground(AccentColor).Bold(true).Render("  "+tip.Title) +
			"\n" + HelpStyle.Width(p.width-4).PaddingLeft(4).Render(tip.Body))
	}
	p.Newline()
	p.Println(HelpStyle.Render(FooterText(now)))
}
