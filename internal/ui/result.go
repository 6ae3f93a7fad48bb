package ui

import (
	"fmt"
	"strings"
)

// ResultType indicates success or failure
type ResultType int

const (
	ResultSuccess ResultType = iota
	ResultFailure
)

// Result represents a result box
type Result struct {
	Type            ResultType // Success or failure
	Title           string     // e.g., "Tags saved"
	Details         []Param    // Key-value details, shown in order
	Error           error      // Error (for failure results)
	Message         string     // Message shown instead of Error when set
	Troubleshooting []string   // Troubleshooting tips (for failure results)
	Width           int        // Terminal width
}

// NewSuccessResult creates a success result box
func NewSuccessResult(title string, details ...Param) *Result {
	return &Result{
		Type:    ResultSuccess,
		Title:   title,
		Details: details,
		Width:   GetTerminalWidth(),
	}
}

// NewFailureResult creates a failure result box
func NewFailureResult(title string, err error, troubleshooting []string) *Result {
	return &Result{
		Type:            ResultFailure,
		Title:           title,
		Error:           err,
		Troubleshooting: troubleshooting,
		Width:           GetTerminalWidth(),
	}
}

// SetWidth sets the terminal width for responsive rendering
func (r *Result) SetWidth(width int) *Result {
	r.Width = width
	return r
}

// AddDetail appends a detail key-value pair
func (r *Result) AddDetail(key, value string) *Result {
	r.Details = append(r.Details, Param{Key: key, Value: value})
	return r
}

// Render returns the styled result box as a string
func (r *Result) Render() string {
	if r.Type == ResultFailure {
		return r.renderFailure()
	}
	return r.renderSuccess()
}

func (r *Result) renderSuccess() string {
	width := ClampWidth(r.Width)

	lines := []string{
		"",
		SuccessTitleStyle.Render(fmt.Sprintf(" %s  %s", SuccessMarker, r.Title)),
		"",
	}
	for _, d := range r.Details {
		lines = append(lines, ResultKeyStyle.Render(" "+d.Key+":")+" "+ResultValueStyle.Render(d.Value))
	}
	if len(r.Details) > 0 {
		lines = append(lines, "")
	}

	return SuccessBoxStyle(width).Render(strings.Join(lines, "\n"))
}

func (r *Result) renderFailure() string {
	width := ClampWidth(r.Width)

	lines := []string{
		"",
		ErrorTitleStyle.Render(fmt.Sprintf(" %s  %s", FailureMarker, r.Title)),
		"",
	}

	msg := r.Message
	if msg == "" && r.Error != nil {
		msg = r.Error.Error()
	}
	if msg != "" {
		lines = append(lines, ErrorMessageStyle.Width(width-8).Render(" "+msg), "")
	}

	if len(r.Troubleshooting) > 0 {
		tips := []string{TroubleshootingTitleStyle.Render("Troubleshooting:"), ""}
		for _, tip := range r.Troubleshooting {
			tips = append(tips, TroubleshootingItemStyle.Render("  • "+tip))
		}
		lines = append(lines, TroubleshootingBoxStyle(width).Render(strings.Join(tips, "\n")), "")
	}

	return ErrorBoxStyle(width).Render(strings.Join(lines, "\n"))
}

// String implements fmt.Stringer
func (r *Result) String() string {
	return r.Render()
}

// RenderSuccessBox renders a success box at the given width
func RenderSuccessBox(title string, width int, details ...Param) string {
	return NewSuccessResult(title, details...).SetWidth(width).Render()
}

// RenderErrorBox renders a failure box with troubleshooting tips at the given width
func RenderErrorBox(title string, err error, troubleshooting []string, width int) string {
	return NewFailureResult(title, err, troubleshooting).SetWidth(width).Render()
}
