// Package capture resolves the clipboard into one normalized markdown body.
//
// The clipboard can expose up to three representations at once; capture picks
// exactly one in strict priority order: rich HTML first, then plain text
// and/or a direct image copy, and fails only when nothing usable is present.
package capture

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/clipkit/webclip/internal/logger"
	"github.com/clipkit/webclip/pkg/browser"
)

// ErrNoContent is the single terminal failure of capture: the clipboard has
// neither usable text nor an image.
var ErrNoContent = errors.New("clipboard is empty: copy some text or an image before clipping")

// Kind identifies which clipboard representation produced the result.
type Kind int

const (
	// KindHTML: rich HTML converted to markdown.
	KindHTML Kind = iota
	// KindImage: a direct image copy, body is a single image link.
	KindImage
	// KindText: plain text, possibly with an appended image link.
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindHTML:
		return "html"
	case KindImage:
		return "image"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Result is the normalized outcome of one capture. Immutable once produced.
type Result struct {
	Kind       Kind
	Body       string
	ImageCount int
}

// Clipboard is the capture-side view of the system clipboard.
type Clipboard interface {
	HTML() (string, bool)
	Text() (string, bool)
	Image() ([]byte, bool)
}

// Converter turns HTML into markdown, downloading embedded images.
type Converter interface {
	Convert(ctx context.Context, html, baseURL, imagesDir string) (string, int, error)
}

// ImageStore persists raw clipboard image bytes.
type ImageStore interface {
	Store(raw []byte, dir string) (string, error)
}

// ContextProvider resolves the active browser tab.
type ContextProvider interface {
	Context(ctx context.Context) (browser.Context, error)
}

// Capturer inspects the clipboard and produces one Result per invocation.
type Capturer struct {
	clipboard Clipboard
	provider  ContextProvider
	converter Converter
	store     ImageStore
	imagesDir string
}

// New creates a Capturer.
func New(clipboard Clipboard, provider ContextProvider, converter Converter, store ImageStore, imagesDir string) *Capturer {
	return &Capturer{
		clipboard: clipboard,
		provider:  provider,
		converter: converter,
		store:     store,
		imagesDir: imagesDir,
	}
}

// Capture resolves the clipboard in priority order and returns the result
// together with the page context it should be attributed to. The browser
// context query runs at most once per invocation, even when the HTML path
// falls back to plain text. A failed query degrades the URL to "unknown".
func (c *Capturer) Capture(ctx context.Context) (Result, browser.Context, error) {
	var (
		pageCtx browser.Context
		fetched bool
	)
	pageContext := func() browser.Context {
		if fetched {
			return pageCtx
		}
		fetched = true
		bc, err := c.provider.Context(ctx)
		if err != nil {
			logger.Debug("browser context unavailable, using placeholder", "error", err)
			bc = browser.Context{URL: "unknown"}
		}
		pageCtx = bc
		return pageCtx
	}

	// State 1: rich HTML.
	if html, ok := c.clipboard.HTML(); ok && strings.TrimSpace(html) != "" {
		bc := pageContext()
		body, count, err := c.converter.Convert(ctx, html, bc.URL, c.imagesDir)
		if err == nil {
			return Result{Kind: KindHTML, Body: body, ImageCount: count}, bc, nil
		}
		// Discard the HTML path entirely and proceed as if no HTML were
		// present; the text representation of the same copy still applies.
		logger.Warn("html conversion failed, falling back to plain text", "error", err)
	}

	// State 2: plain text and/or direct image copy.
	text := ""
	if t, ok := c.clipboard.Text(); ok {
		text = strings.TrimSpace(t)
	}

	imageLink := ""
	imageCount := 0
	if raw, ok := c.clipboard.Image(); ok && len(raw) > 0 {
		path, err := c.store.Store(raw, c.imagesDir)
		if err != nil {
			logger.Warn("storing clipboard image failed", "error", err)
		} else {
			imageLink = "![](./images/" + filepath.Base(path) + ")"
			imageCount = 1
		}
	}

	var result Result
	switch {
	case text != "" && imageLink != "":
		result = Result{Kind: KindText, Body: text + "\n\n" + imageLink, ImageCount: imageCount}
	case imageLink != "":
		result = Result{Kind: KindImage, Body: imageLink, ImageCount: imageCount}
	case text != "":
		result = Result{Kind: KindText, Body: text}
	default:
		// State 3: nothing usable.
		return Result{}, browser.Context{}, ErrNoContent
	}

	return result, pageContext(), nil
}
