package session

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// CSVContentType is the media type of an export.
const CSVContentType = "text/csv"

// unsafeRun matches whitespace and characters that cannot appear in a file
// name on common systems, path separators included.
var unsafeRun = regexp.MustCompile(`[\s/\\:*?"<>|\x00-\x1f]+`)

// Export is a downloadable CSV file of the current tags.
type Export struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportFilename derives the export filename from a topic, e.g.
// "Tesla Model 3" becomes "youtube-tags-tesla-model-3.csv". Path separators
// and other unsafe characters become "-" so the result is always a single
// file name.
func ExportFilename(topic string) string {
	slug := unsafeRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(topic)), "-")
	return "youtube-tags-" + slug + ".csv"
}

// EncodeCSV renders tags as a single CSV record without a trailing newline.
// Plain tags are joined by commas; a tag containing a comma or a quote is
// quoted.
func EncodeCSV(tags []string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(tags); err != nil {
		return nil, fmt.Errorf("failed to encode tags: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to encode tags: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\r\n"), nil
}

// writeFileAtomic writes data to path through a temporary file and a rename.
func writeFileAtomic(path string, data []byte) error {
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save export: %w", err)
	}
	return nil
}

// Save writes the export into dir and returns the file path.
// An empty dir means the working directory.
func (e Export) Save(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	if e.Filename != filepath.Base(e.Filename) || e.Filename == "." || e.Filename == ".." {
		return "", fmt.Errorf("invalid export filename %q", e.Filename)
	}
	path := filepath.Join(dir, e.Filename)
	if err := writeFileAtomic(path, e.Data); err != nil {
		return "", err
	}
	return path, nil
}
