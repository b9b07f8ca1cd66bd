package browser

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

const appleScriptTimeout = 5 * time.Second

// Front-window active-tab scripts; each returns "URL\nTitle".
const (
	chromeScript = `tell application "Google Chrome"
	if (count of windows) > 0 then
		tell front window
			set currentTab to active tab
			return (URL of currentTab) & "\n" & (title of currentTab)
		end tell
	else
		error "no Chrome windows open"
	end if
end tell`

	safariScript = `tell application "Safari"
	if (count of windows) > 0 then
		tell front window
			set currentTab to current tab
			return (URL of currentTab) & "\n" & (name of currentTab)
		end tell
	else
		error "no Safari windows open"
	end if
end tell`
)

// AppleScript reads the front tab of Google Chrome or Safari via osascript.
// Only functional on macOS; elsewhere it reports ErrNoContext immediately.
type AppleScript struct {
	timeout time.Duration
}

// NewAppleScript creates the osascript-backed provider.
func NewAppleScript() *AppleScript {
	return &AppleScript{timeout: appleScriptTimeout}
}

// Context tries Chrome first, then Safari.
func (p *AppleScript) Context(ctx context.Context) (Context, error) {
	if runtime.GOOS != "darwin" {
		return Context{}, fmt.Errorf("%w: applescript requires macOS", ErrNoContext)
	}

	var lastErr error
	for _, script := range []string{chromeScript, safariScript} {
		out, err := p.run(ctx, script)
		if err != nil {
			lastErr = err
			continue
		}
		if bc, ok := parseContextOutput(out); ok {
			return bc, nil
		}
	}
	if lastErr != nil {
		return Context{}, fmt.Errorf("%w: %v", ErrNoContext, lastErr)
	}
	return Context{}, ErrNoContext
}

func (p *AppleScript) run(ctx context.Context, script string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	out, err := exec.CommandContext(ctx, "osascript", "-e", script).Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// parseContextOutput splits "URL\nTitle" osascript output.
func parseContextOutput(out string) (Context, bool) {
	lines := strings.SplitN(strings.TrimSpace(out), "\n", 2)
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return Context{}, false
	}
	bc := Context{URL: strings.TrimSpace(lines[0])}
	if len(lines) > 1 {
		bc.Title = strings.TrimSpace(lines[1])
	}
	return bc, true
}
