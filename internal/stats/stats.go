// Package stats classifies tags by word count and summarises a tag list.
package stats

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Category is the word-count class of a tag.
type Category int

const (
	// Standard tags have two words
	Standard Category = iota
	// Broad tags have a single word
	Broad
	// LongTail tags have three or more words
	LongTail
)

// String returns the display name of the category
func (c Category) String() string {
	switch c {
	case Broad:
		return "Broad"
	case Standard:
		return "Standard"
	case LongTail:
		return "Long-tail"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// Color returns the chart colour for the category
func (c Category) Color() string {
	switch c {
	case Broad:
		return "#ef4444"
	case Standard:
		return "#3b82f6"
	case LongTail:
		return "#10b981"
	default:
		return "#9ca3af"
	}
}

// Categorize classifies tag by the number of whitespace-separated words.
func Categorize(tag string) Category {
	switch words := len(strings.Fields(tag)); {
	case words == 1:
		return Broad
	case words >= 3:
		return LongTail
	default:
		return Standard
	}
}

// Stats summarises a tag list.
type Stats struct {
	Broad         int     `json:"broad"`
	Standard      int     `json:"standard"`
	LongTail      int     `json:"longTail"`
	Count         int     `json:"count"`
	AverageLength float64 `json:"averageLength"`
}

// Compute returns the stats for tags. An empty list yields zero Stats.
func Compute(tags []string) Stats {
	var s Stats
	if len(tags) == 0 {
		return s
	}

	totalChars := 0
	for _, tag := range tags {
		totalChars += utf8.RuneCountInString(tag)
		switch Categorize(tag) {
		case Broad:
			s.Broad++
		case LongTail:
			s.LongTail++
		default:
			s.Standard++
		}
	}

	s.Count = len(tags)
	s.AverageLength = float64(totalChars) / float64(s.Count)
	return s
}

// Empty reports whether there is nothing to show.
func (s Stats) Empty() bool {
	return s.Count == 0
}

// Of returns the count for a category.
func (s Stats) Of(c Category) int {
	switch c {
	case Broad:
		return s.Broad
	case LongTail:
		return s.LongTail
	default:
		return s.Standard
	}
}

// Slice is one entry of the category breakdown.
type Slice struct {
	Category Category `json:"-"`
	Name     string   `json:"name"`
	Value    int      `json:"value"`
	Color    string   `json:"color"`
}

// Percent returns the share of total taken by the slice, 0 when total is 0.
func (sl Slice) Percent(total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(sl.Value) * 100 / float64(total)
}

// Slices returns the breakdown in display order: Broad, Standard, Long-tail.
func (s Stats) Slices() []Slice {
	order := []Category{Broad, Standard, LongTail}
	slices := make([]Slice, 0, len(order))
	for _, c := range order {
		slices = append(slices, Slice{
			Category: c,
			Name:     c.String(),
			Value:    s.Of(c),
			Color:    c.Color(),
		})
	}
	return slices
}

// FormatAverage renders the average length with one decimal, e.g. "3.0 chars".
func (s Stats) FormatAverage() string {
	return fmt.Sprintf("%.1f chars", s.AverageLength)
}

// SEOScore is the fixed score label shown next to the stats.
const SEOScore = "High"
