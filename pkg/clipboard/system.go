package clipboard

import (
	"context"
	"encoding/hex"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/clipkit/webclip/internal/logger"
)

const commandTimeout = 5 * time.Second

// System reads the OS clipboard by shelling out to platform tools:
// osascript/pbpaste/pngpaste on macOS, xclip or wl-paste on Linux.
type System struct {
	timeout time.Duration
}

// NewSystem creates the OS-backed clipboard source.
func NewSystem() *System {
	return &System{timeout: commandTimeout}
}

// HTML returns the clipboard's rich HTML representation, if present.
func (s *System) HTML() (string, bool) {
	var html string
	var ok bool

	switch runtime.GOOS {
	case "darwin":
		out, err := s.run("osascript", "-e", "the clipboard as «class HTML»")
		if err != nil {
			return "", false
		}
		html, ok = decodeHexData(string(out))
	default:
		out, err := s.firstOf(
			command{"wl-paste", "--type", "text/html"},
			command{"xclip", "-selection", "clipboard", "-t", "text/html", "-o"},
		)
		if err != nil {
			return "", false
		}
		html, ok = string(out), true
	}

	if !ok {
		return "", false
	}
	html = repairUTF8(html)
	// A representation that doesn't look like markup is not usable HTML.
	if !strings.Contains(html, "<") || !strings.Contains(html, ">") {
		return "", false
	}
	return html, true
}

// Text returns the clipboard's plain-text representation, if present.
// Invalid UTF-8 is repaired best-effort.
func (s *System) Text() (string, bool) {
	var out []byte
	var err error

	switch runtime.GOOS {
	case "darwin":
		out, err = s.run("pbpaste")
	default:
		out, err = s.firstOf(
			command{"wl-paste", "--no-newline"},
			command{"xclip", "-selection", "clipboard", "-o"},
		)
	}
	if err != nil {
		return "", false
	}
	return repairUTF8(string(out)), true
}

// Image returns raw image bytes when the clipboard holds a direct image
// copy (right-click "Copy Image"), not HTML that merely references images.
func (s *System) Image() ([]byte, bool) {
	switch runtime.GOOS {
	case "darwin":
		return s.darwinImage()
	default:
		return s.linuxImage()
	}
}

func (s *System) darwinImage() ([]byte, bool) {
	info, err := s.run("osascript", "-e", "clipboard info")
	if err != nil {
		return nil, false
	}
	lower := strings.ToLower(string(info))
	if !strings.Contains(lower, "picture") && !strings.Contains(lower, "png") &&
		!strings.Contains(lower, "tiff") && !strings.Contains(lower, "image") {
		return nil, false
	}

	tmp, err := os.CreateTemp("", "webclip-*.png")
	if err != nil {
		return nil, false
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if _, err := s.run("pngpaste", tmpPath); err != nil {
		// pngpaste may be absent; fall back to writing the PNG via AppleScript.
		script := strings.Join([]string{
			`set imageData to the clipboard as «class PNGf»`,
			`set fileHandle to open for access POSIX file "` + tmpPath + `" with write permission`,
			`write imageData to fileHandle`,
			`close access fileHandle`,
		}, "\n")
		if _, err := s.run("osascript", "-e", script); err != nil {
			logger.Debug("clipboard image read failed", "error", err)
			return nil, false
		}
	}

	data, err := os.ReadFile(tmpPath)
	if err != nil || len(data) == 0 {
		return nil, false
	}
	return data, true
}

func (s *System) linuxImage() ([]byte, bool) {
	targets, err := s.firstOf(
		command{"wl-paste", "--list-types"},
		command{"xclip", "-selection", "clipboard", "-t", "TARGETS", "-o"},
	)
	if err != nil || !strings.Contains(string(targets), "image/png") {
		return nil, false
	}

	data, err := s.firstOf(
		command{"wl-paste", "--type", "image/png"},
		command{"xclip", "-selection", "clipboard", "-t", "image/png", "-o"},
	)
	if err != nil || len(data) == 0 {
		return nil, false
	}
	return data, true
}

type command []string

// firstOf runs each command until one is installed and succeeds.
func (s *System) firstOf(cmds ...command) ([]byte, error) {
	var lastErr error
	for _, c := range cmds {
		if _, err := exec.LookPath(c[0]); err != nil {
			lastErr = err
			continue
		}
		out, err := s.run(c[0], c[1:]...)
		if err == nil {
			return out, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

func (s *System) run(name string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return exec.CommandContext(ctx, name, args...).Output()
}

// repairUTF8 substitutes a best-effort replacement for invalid byte
// sequences instead of failing the whole capture.
func repairUTF8(s string) string {
	return strings.ToValidUTF8(s, "�")
}

// decodeHexData unwraps AppleScript's «data HTML…» hex envelope into the
// HTML string it encodes.
func decodeHexData(out string) (string, bool) {
	out = strings.TrimSpace(out)
	start := strings.Index(out, "«data ")
	if start == -1 {
		return "", false
	}
	payload := strings.TrimPrefix(out[start:], "«data ")
	payload = strings.TrimSuffix(payload, "»")
	// The first four characters are the type code (e.g. HTML).
	if len(payload) <= 4 {
		return "", false
	}
	raw, err := hex.DecodeString(payload[4:])
	if err != nil {
		return "", false
	}
	return string(raw), true
}
