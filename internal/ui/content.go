package ui

import (
	"fmt"
	"time"
)

// Product copy shared by the terminal and web front ends.
const (
	AppName         = "Keyword Master"
	Tagline         = "Go Viral with Smart Tags"
	Description     = "Generate 100 high-traffic, SEO-optimized keywords for your YouTube videos in seconds using our professional AI model."
	TopicPrompt     = "Enter your video topic (e.g., Tesla Model 3 Review)"
	GenerateLabel   = "Generate"
	ProcessingLabel = "Processing..."
	CopyLabel       = "Copy All"
	CopiedLabel     = "Copied!"
	ExportLabel     = "CSV"
	TipsTitle       = "Master YouTube SEO"
)

// Tip is one entry of the SEO tips section.
type Tip struct {
	Title string
	Body  string
}

// SEOTips are shown below the results.
var SEOTips = []Tip{
	{
		Title: "Long-Tail Strategy",
		Body:  "Include tags with 3+ words. These have lower competition and higher intent, helping you rank faster.",
	},
	{
		Title: "Broad Keywords",
		Body:  "Don't forget massive category tags. They help YouTube's algorithm understand your general niche.",
	},
	{
		Title: "Viral Momentum",
		Body:  "Our AI adds trending modifiers to your base topic to capture current search surges.",
	},
}

// ResultsTitle returns the heading shown above generated tags.
func ResultsTitle(topic string) string {
	return fmt.Sprintf("Results for %q", topic)
}

// ResultsSubtitle returns the line reporting the number of tags.
func ResultsSubtitle(count int) string {
	return fmt.Sprintf("Found %d high-potential keywords", count)
}

// FooterText returns the footer line for the given time.
func FooterText(now time.Time) string {
	return fmt.Sprintf("© %d %s. Optimized for Gemini AI.", now.Year(), AppName)
}
