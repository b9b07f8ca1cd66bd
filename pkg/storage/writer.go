package storage

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/clipkit/webclip/internal/logger"
	"github.com/clipkit/webclip/pkg/config"
)

// StorageError is a fatal filesystem failure: directory creation or the file
// append itself. It is surfaced to the caller verbatim, unlike the
// recoverable conditions absorbed earlier in the pipeline.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Record is one clip entry prior to formatting. Body is normalized markdown.
type Record struct {
	URL   string
	Title string
	Tags  string
	Body  string
}

// Writer appends formatted clip records to URL-derived files.
type Writer struct {
	cfg config.Config
	now func() time.Time
}

// NewWriter creates a Writer for the given configuration.
func NewWriter(cfg config.Config) *Writer {
	return &Writer{cfg: cfg, now: time.Now}
}

// Write formats the record and appends it to the clip file resolved from the
// record's URL, creating directories and the file as needed. The record is
// rendered fully in memory before the single append, so a failure never
// leaves a partial entry behind. Returns the clip file path.
func (w *Writer) Write(rec Record) (string, error) {
	if err := os.MkdirAll(w.cfg.ClipsDirectory, 0o755); err != nil {
		return "", &StorageError{Op: "creating clips directory", Path: w.cfg.ClipsDirectory, Err: err}
	}

	target := Resolve(rec.URL, w.cfg)
	if err := os.MkdirAll(target.Directory, 0o755); err != nil {
		return "", &StorageError{Op: "creating directory", Path: target.Directory, Err: err}
	}

	entry := w.format(rec)
	path := target.Path()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return "", &StorageError{Op: "opening clip file", Path: path, Err: err}
	}
	if _, err := f.WriteString(entry); err != nil {
		f.Close()
		return "", &StorageError{Op: "appending to clip file", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return "", &StorageError{Op: "closing clip file", Path: path, Err: err}
	}

	logger.Debug("clip record appended", "path", path, "bytes", len(entry))
	return path, nil
}

// format renders a record as a markdown block: separator, heading, metadata
// lines, blank line, trimmed body, blank line, separator.
func (w *Writer) format(rec Record) string {
	lines := []string{"---"}

	title := rec.Title
	if title == "" {
		title = "Untitled"
	}
	lines = append(lines, "## Clip: "+title)
	lines = append(lines, "- **URL**: "+rec.URL)

	if w.cfg.IncludeTimestamp {
		lines = append(lines, "- **Captured**: "+w.now().Format(w.cfg.TimestampFormat))
	}

	if tags := formatTags(rec.Tags); tags != "" {
		lines = append(lines, "- **Tags**: "+tags)
	}

	lines = append(lines, "", strings.TrimSpace(rec.Body), "", "---", "")
	return strings.Join(lines, "\n")
}

// formatTags splits a comma-separated tag string into hashtags.
// Empty entries are dropped: "test, ,example" -> "#test #example".
func formatTags(tags string) string {
	if tags == "" {
		return ""
	}
	var out []string
	for _, tag := range strings.Split(tags, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, "#"+tag)
		}
	}
	return strings.Join(out, " ")
}
