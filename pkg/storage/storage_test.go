package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/clipkit/webclip/pkg/config"
)

func testConfig(dir string) config.Config {
	return config.Config{
		ClipsDirectory:   dir,
		CreateSubdirs:    true,
		IncludeTitle:     true,
		IncludeTimestamp: true,
		TimestampFormat:  config.DefaultTimestampFormat,
	}
}

// --- Sanitize ---

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"test/path/file", "test-path-file"},
		{"special@#$chars", "special-chars"},
		{"Multiple   Spaces", "multiple-spaces"},
		{"---leading-trailing---", "leading-trailing"},
		{"snake_case_ok", "snake_case_ok"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Sanitize(tt.in); got != tt.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitize_OutputAlphabet(t *testing.T) {
	inputs := []string{
		"Hello World",
		"a//b..c??d",
		"  spaces  everywhere  ",
		"UPPER_lower-Mixed 123",
		"@#$%^&*()",
		"über straße çafé",
		"tabs\tand\nnewlines",
	}

	for _, in := range inputs {
		got := Sanitize(in)
		for _, r := range got {
			ok := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-'
			if !ok {
				t.Errorf("Sanitize(%q) = %q contains invalid rune %q", in, got, r)
			}
		}
		if strings.HasPrefix(got, "-") || strings.HasSuffix(got, "-") {
			t.Errorf("Sanitize(%q) = %q has leading/trailing hyphen", in, got)
		}
		if strings.Contains(got, "--") {
			t.Errorf("Sanitize(%q) = %q contains a hyphen run", in, got)
		}
	}
}

// --- Resolve ---

func TestResolve_WithSubdirs(t *testing.T) {
	cfg := testConfig("/tmp/clips")

	tests := []struct {
		url      string
		wantDir  string
		wantFile string
	}{
		{"https://github.com/anthropics/claude", "/tmp/clips/github.com", "anthropics-claude.md"},
		{"https://docs.python.org/library/pathlib", "/tmp/clips/docs.python.org", "library-pathlib.md"},
		{"https://www.example.com/docs/guide", "/tmp/clips/example.com", "docs-guide.md"},
		{"https://example.com", "/tmp/clips/example.com", "index.md"},
		{"https://example.com/", "/tmp/clips/example.com", "index.md"},
	}

	for _, tt := range tests {
		got := Resolve(tt.url, cfg)
		if got.Directory != tt.wantDir || got.Filename != tt.wantFile {
			t.Errorf("Resolve(%q) = %q/%q, want %q/%q",
				tt.url, got.Directory, got.Filename, tt.wantDir, tt.wantFile)
		}
	}
}

func TestResolve_FlatStructure(t *testing.T) {
	cfg := testConfig("/tmp/clips")
	cfg.CreateSubdirs = false

	got := Resolve("https://github.com/anthropics/claude", cfg)
	if got.Directory != "/tmp/clips" {
		t.Errorf("Directory = %q, want /tmp/clips", got.Directory)
	}
	if got.Filename != "github.com_anthropics-claude.md" {
		t.Errorf("Filename = %q, want github.com_anthropics-claude.md", got.Filename)
	}
}

func TestResolve_MalformedURL(t *testing.T) {
	cfg := testConfig("/tmp/clips")

	// Resolution never fails; unparsable hosts degrade to "unknown".
	got := Resolve("unknown", cfg)
	if got.Directory != "/tmp/clips/unknown" {
		t.Errorf("Directory = %q, want /tmp/clips/unknown", got.Directory)
	}
	if got.Filename != "unknown.md" {
		t.Errorf("Filename = %q, want unknown.md", got.Filename)
	}

	got = Resolve("://not a url", cfg)
	if got.Directory != "/tmp/clips/unknown" {
		t.Errorf("Directory = %q, want /tmp/clips/unknown", got.Directory)
	}
}

func TestResolve_Deterministic(t *testing.T) {
	cfg := testConfig("/tmp/clips")
	url := "https://example.com/some/deep/page"

	first := Resolve(url, cfg)
	second := Resolve(url, cfg)
	if first != second {
		t.Errorf("Resolve is not deterministic: %+v vs %+v", first, second)
	}
}

// --- Writer ---

func TestWriter_Write(t *testing.T) {
	cfg := testConfig(t.TempDir())
	w := NewWriter(cfg)
	w.now = func() time.Time { return time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC) }

	path, err := w.Write(Record{
		URL:   "https://example.com/page",
		Title: "Example Page",
		Tags:  "test, example",
		Body:  "This is my clipped content.",
	})
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	if filepath.Dir(path) != filepath.Join(cfg.ClipsDirectory, "example.com") {
		t.Errorf("clip written to %q, want example.com subdirectory", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading clip file: %v", err)
	}
	content := string(data)

	for _, want := range []string{
		"## Clip: Example Page",
		"- **URL**: https://example.com/page",
		"- **Captured**: 2026-03-14 09:26:53",
		"#test",
		"#example",
		"This is my clipped content.",
		"---",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("clip file missing %q:\n%s", want, content)
		}
	}
}

func TestWriter_Write_Untitled(t *testing.T) {
	cfg := testConfig(t.TempDir())
	w := NewWriter(cfg)

	path, err := w.Write(Record{URL: "https://example.com", Body: "Content without title."})
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "## Clip: Untitled") {
		t.Errorf("expected Untitled heading, got:\n%s", data)
	}
}

func TestWriter_Write_NoTimestamp(t *testing.T) {
	cfg := testConfig(t.TempDir())
	cfg.IncludeTimestamp = false
	w := NewWriter(cfg)

	path, err := w.Write(Record{URL: "https://example.com", Body: "body"})
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "**Captured**") {
		t.Errorf("timestamp line present despite IncludeTimestamp=false:\n%s", data)
	}
}

func TestWriter_Write_AppendsSameFile(t *testing.T) {
	cfg := testConfig(t.TempDir())
	w := NewWriter(cfg)
	url := "https://example.com/page"

	first, err := w.Write(Record{URL: url, Title: "Title 1", Body: "First clip"})
	if err != nil {
		t.Fatalf("first Write() error = %v", err)
	}
	second, err := w.Write(Record{URL: url, Title: "Title 2", Body: "Second clip"})
	if err != nil {
		t.Fatalf("second Write() error = %v", err)
	}

	if first != second {
		t.Fatalf("same URL resolved to different files: %q vs %q", first, second)
	}

	data, _ := os.ReadFile(second)
	content := string(data)

	if !strings.Contains(content, "First clip") || !strings.Contains(content, "Second clip") {
		t.Errorf("both clips should be in one file:\n%s", content)
	}
	if n := strings.Count(content, "---"); n < 4 {
		t.Errorf("expected at least 4 separator lines, got %d", n)
	}
}

func TestWriter_Write_EmptyTagsDropped(t *testing.T) {
	cfg := testConfig(t.TempDir())
	w := NewWriter(cfg)

	path, err := w.Write(Record{URL: "https://example.com", Tags: " , ,, ", Body: "body"})
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "**Tags**") {
		t.Errorf("tags line should be omitted when all entries are empty:\n%s", data)
	}
}

func TestWriter_Write_StorageError(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	w := NewWriter(cfg)

	// Occupy the target subdirectory path with a plain file so MkdirAll fails.
	if err := os.WriteFile(filepath.Join(dir, "example.com"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := w.Write(Record{URL: "https://example.com", Body: "body"})
	if err == nil {
		t.Fatal("expected storage error")
	}
	var storageErr *StorageError
	if !errors.As(err, &storageErr) {
		t.Errorf("expected *StorageError, got %T: %v", err, err)
	}
}

func TestFormatTags(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"test, example", "#test #example"},
		{"one", "#one"},
		{"a,b,c", "#a #b #c"},
		{"", ""},
		{" , ", ""},
	}
	for _, tt := range tests {
		if got := formatTags(tt.in); got != tt.want {
			t.Errorf("formatTags(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
