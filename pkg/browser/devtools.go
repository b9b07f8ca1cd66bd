package browser

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/target"
	"github.com/chromedp/chromedp"
)

const (
	// DefaultDevToolsURL is where Chrome listens when started with
	// --remote-debugging-port=9222.
	DefaultDevToolsURL = "ws://127.0.0.1:9222"

	devToolsTimeout = 5 * time.Second
)

// DevTools queries a running Chrome/Chromium instance over the DevTools
// protocol for its active tab. It never launches a browser; if nothing is
// listening on the debugging port the query fails with ErrNoContext.
//
// A bare host:port endpoint (Chrome's --remote-debugging-port form) goes
// through chromedp's endpoint discovery: Chrome only upgrades websockets at
// its per-instance /devtools/browser/<uuid> path, which discovery resolves
// via GET /json/version. Endpoints that already carry a /devtools/ path are
// dialed verbatim.
type DevTools struct {
	url     string
	timeout time.Duration
}

// NewDevTools creates a DevTools provider against the default local
// debugging endpoint.
func NewDevTools() *DevTools {
	return &DevTools{url: DefaultDevToolsURL, timeout: devToolsTimeout}
}

// NewDevToolsURL creates a DevTools provider against a specific endpoint.
func NewDevToolsURL(url string) *DevTools {
	return &DevTools{url: url, timeout: devToolsTimeout}
}

// Context returns the URL and title of the most recently focused page tab.
func (d *DevTools) Context(ctx context.Context) (Context, error) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	var allocOpts []chromedp.RemoteAllocatorOption
	if strings.Contains(d.url, "/devtools/") {
		allocOpts = append(allocOpts, chromedp.NoModifyURL)
	}

	allocCtx, cancelAlloc := chromedp.NewRemoteAllocator(ctx, d.url, allocOpts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	targets, err := chromedp.Targets(browserCtx)
	if err != nil {
		return Context{}, fmt.Errorf("%w: devtools query: %v", ErrNoContext, err)
	}

	var page *target.Info
	for _, t := range targets {
		if t.Type != "page" || strings.HasPrefix(t.URL, "devtools://") {
			continue
		}
		// Targets are ordered most-recently-focused first.
		page = t
		break
	}
	if page == nil {
		return Context{}, fmt.Errorf("%w: no page tabs open", ErrNoContext)
	}

	return Context{URL: page.URL, Title: page.Title}, nil
}
