package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/keywordmaster/keywordmaster/internal/session"
	"github.com/keywordmaster/keywordmaster/internal/stats"
	"github.com/keywordmaster/keywordmaster/internal/tagger"
	"github.com/keywordmaster/keywordmaster/internal/tui"
	"github.com/keywordmaster/keywordmaster/internal/ui"
)

// Output formats
const (
	formatBadges = "badges"
	formatList   = "list"
	formatTable  = "table"
	formatJSON   = "json"
	formatCSV    = "csv"
)

// Command flags
var (
	initialTopic string
	outputFormat string
	statsFormat  string
	copyTags     bool
	saveCSV      bool
	exportTo     string
)

func init() {
	rootCmd.Flags().StringVar(&initialTopic, "topic", "", "Pre-fill the topic in the interactive UI")

	generateCmd.Flags().StringVarP(&outputFormat, "format", "f", formatBadges, "Output format (badges, list, table, json, csv)")
	generateCmd.Flags().BoolVarP(&copyTags, "copy", "c", false, "Copy the tags to the clipboard")
	generateCmd.Flags().BoolVarP(&saveCSV, "save", "s", false, "Save the tags as a CSV file")
	generateCmd.Flags().StringVar(&exportTo, "export-dir", "", "Directory for --save (default: config export_dir or current directory)")

	statsCmd.Flags().StringVarP(&statsFormat, "format", "f", formatBadges, "Output format (badges, table, json)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(statsCmd)
}

func runInteractive(cmd *cobra.Command, args []string) error {
	if err := requireTerminal(); err != nil {
		return err
	}

	gen, settings, err := newTagger()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	ctrl := newController(gen, true)
	defer ctrl.Close()

	return tui.Run(ctx, ctrl, tui.Options{
		ExportDir: exportDir(settings, ""),
		Topic:     initialTopic,
	})
}

// generateCmd runs one generation and prints the result
var generateCmd = &cobra.Command{
	Use:   "generate <topic...>",
	Short: "Generate tags for a topic",
	Long: `Generate YouTube tags for a video topic and print them.

All arguments are joined into one topic. The tags can be printed as coloured
badges with statistics, one per line, as a table, as JSON or as a CSV record.`,
	Example: `  # Generate and show tags with statistics
  keywordmaster generate Tesla Model 3 Review

  # Print one tag per line for scripting
  keywordmaster generate "sourdough bread" --format list

  # Copy the tags to the clipboard and save a CSV file
  keywordmaster generate "home workout" --copy --save

  # Use OpenAI instead of Gemini
  keywordmaster generate "retro gaming" --provider openai`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if err := checkFormat(outputFormat, formatBadges, formatList, formatTable, formatJSON, formatCSV); err != nil {
		return err
	}

	topic := strings.Join(args, " ")
	if strings.TrimSpace(topic) == "" {
		return fmt.Errorf("%w: provide a video topic", session.ErrEmptyTopic)
	}

	gen, settings, err := newTagger()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	ctrl := newController(gen, copyTags)
	defer ctrl.Close()

	// Progress and status go to stderr so stdout stays machine readable.
	status := ui.NewPrinter(cmd.ErrOrStderr())
	out := ui.NewPrinter(cmd.OutOrStdout())

	if outputFormat == formatBadges {
		provider := gen.Provider()
		status.PrintHeader(ui.AppName, ui.Tagline,
			ui.Param{Key: "Topic", Value: topic},
			ui.Param{Key: "Provider", Value: provider.Name()},
			ui.Param{Key: "Model", Value: provider.Model()},
		)
		status.PrintPleaseWait(ui.ProcessingLabel, "")
	}

	if err := ctrl.Generate(ctx, topic); err != nil {
		if outputFormat == formatBadges {
			status.PrintError("Tag generation failed", err, tagger.HintsFor(err))
			return errReported
		}
		return err
	}

	snap := ctrl.Snapshot()
	if err := printTags(out, snap, outputFormat); err != nil {
		return err
	}

	if copyTags {
		if _, err := ctrl.CopyAll(); err != nil && !errors.Is(err, session.ErrNoTags) {
			return err
		}
		if len(snap.Tags) > 0 {
			status.PrintSuccess("Copied to clipboard", ui.Param{Key: "Tags", Value: strconv.Itoa(len(snap.Tags))})
		}
	}

	if saveCSV {
		path, err := ctrl.SaveExport(exportDir(settings, exportTo))
		if errors.Is(err, session.ErrNoTags) {
			status.Println(ui.HelpStyle.Render("No tags to export."))
			return nil
		}
		if err != nil {
			return err
		}
		status.PrintSuccess("CSV saved", ui.Param{Key: "File", Value: path})
	}

	return nil
}

// tagsOutput is the JSON form of a generation.
type tagsOutput struct {
	Topic string      `json:"topic"`
	Tags  []string    `json:"tags"`
	Stats stats.Stats `json:"stats"`
}

func printTags(p *ui.Printer, snap session.Snapshot, format string) error {
	switch format {
	case formatList:
		p.PrintList(snap.Tags)
	case formatTable:
		p.PrintTable(snap.Tags)
	case formatJSON:
		return writeJSON(p.Writer(), tagsOutput{Topic: snap.Topic, Tags: snap.Tags, Stats: snap.Stats()})
	case formatCSV:
		data, err := session.EncodeCSV(snap.Tags)
		if err != nil {
			return err
		}
		p.Println(string(data))
	default:
		p.PrintResults(snap.Topic, snap.Tags)
		p.Newline()
		p.PrintTips(time.Now())
	}
	return nil
}

// statsCmd classifies an existing tag list
var statsCmd = &cobra.Command{
	Use:   "stats [tag...]",
	Short: "Show statistics for a list of tags",
	Long: `Classify tags into broad (1 word), standard (2 words) and long-tail
(3+ words) keywords and report their average length.

Tags are taken from the arguments, or read from stdin when no arguments are
given. Stdin is read as CSV, so a saved export can be piped in directly; plain
comma or newline separated text works too.`,
	Example: `  # Tags as arguments
  keywordmaster stats cat "funny cat" "funny cat video"

  # Tags from a previous export
  keywordmaster stats < youtube-tags-cats.csv`,
	RunE: runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	if err := checkFormat(statsFormat, formatBadges, formatTable, formatJSON); err != nil {
		return err
	}

	tags, err := collectTags(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	s := stats.Compute(tags)
	p := ui.NewPrinter(cmd.OutOrStdout())
	switch statsFormat {
	case formatJSON:
		return writeJSON(p.Writer(), s)
	case formatTable:
		ui.RenderStatsTable(p.Writer(), s)
	default:
		if s.Empty() {
			p.Println(ui.HelpStyle.Render("No tags."))
			return nil
		}
		p.Println(ui.RenderStatsBoard(s, p.Width()))
	}
	return nil
}

// collectTags returns the tags given as arguments, or parsed from r.
func collectTags(args []string, r io.Reader) ([]string, error) {
	if len(args) > 0 {
		return tagger.ParseTags(strings.Join(args, ",")), nil
	}

	if f, ok := r.(*os.File); ok && ui.IsTerminal(f) {
		return nil, fmt.Errorf("no tags given; pass them as arguments or on stdin")
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read tags: %w", err)
	}
	if tags, err := decodeCSVTags(data); err == nil {
		return tags, nil
	}
	return tagger.ParseTags(strings.ReplaceAll(string(data), "\n", ",")), nil
}

// decodeCSVTags reads every field of every record in data as a tag, so
// quoted tags from an export keep their commas and quotes.
func decodeCSVTags(data []byte) ([]string, error) {
	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}

	tags := []string{}
	for _, record := range records {
		for _, field := range record {
			if tag := strings.TrimSpace(field); tag != "" {
				tags = append(tags, tag)
			}
		}
	}
	return tags, nil
}

func checkFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return fmt.Errorf("unknown format %q (expected one of: %s)", format, strings.Join(allowed, ", "))
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
