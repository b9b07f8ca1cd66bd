// Package clipper is the top-level library entry point: one call captures
// the clipboard, resolves the active browser tab, and appends a markdown
// record to the right clip file.
package clipper

import (
	"context"
	"runtime"

	"github.com/clipkit/webclip/internal/logger"
	"github.com/clipkit/webclip/pkg/browser"
	"github.com/clipkit/webclip/pkg/capture"
	"github.com/clipkit/webclip/pkg/clipboard"
	"github.com/clipkit/webclip/pkg/config"
	"github.com/clipkit/webclip/pkg/convert"
	"github.com/clipkit/webclip/pkg/images"
	"github.com/clipkit/webclip/pkg/storage"
)

// ErrNoContent reports an empty clipboard.
var ErrNoContent = capture.ErrNoContent

// Result describes one completed clip.
type Result struct {
	FilePath      string `json:"file_path" yaml:"file_path"`
	URL           string `json:"url" yaml:"url"`
	Title         string `json:"title,omitempty" yaml:"title,omitempty"`
	Kind          string `json:"kind" yaml:"kind"`
	ContentLength int    `json:"content_length" yaml:"content_length"`
	ImageCount    int    `json:"image_count" yaml:"image_count"`
}

// RecordWriter appends a formatted record and returns the clip file path.
type RecordWriter interface {
	Write(rec storage.Record) (string, error)
}

// Clipper owns a fully wired capture-to-storage pipeline for one
// configuration. Construct with New, then call Clip per invocation.
type Clipper struct {
	cfg      config.Config
	capturer *capture.Capturer
	writer   RecordWriter
}

// Option customizes a Clipper, primarily for swapping collaborators in tests.
type Option func(*Clipper)

// WithCapturer replaces the default clipboard/browser capture pipeline.
func WithCapturer(c *capture.Capturer) Option {
	return func(cl *Clipper) { cl.capturer = c }
}

// WithRecordWriter replaces the default storage writer.
func WithRecordWriter(w RecordWriter) Option {
	return func(cl *Clipper) { cl.writer = w }
}

// New wires the default stack for cfg: the system clipboard, a DevTools
// browser-context provider with an AppleScript fallback on macOS, the
// markdown converter with its image downloader, and the append-only storage
// writer.
func New(cfg config.Config, opts ...Option) *Clipper {
	cl := &Clipper{cfg: cfg}
	for _, opt := range opts {
		opt(cl)
	}

	if cl.capturer == nil {
		cl.capturer = capture.New(
			clipboard.NewSystem(),
			defaultBrowserChain(),
			convert.New(images.New()),
			images.New(),
			cfg.ImagesDirectory(),
		)
	}
	if cl.writer == nil {
		cl.writer = storage.NewWriter(cfg)
	}
	return cl
}

func defaultBrowserChain() *browser.Chain {
	providers := []browser.Provider{browser.NewDevTools()}
	if runtime.GOOS == "darwin" {
		providers = append(providers, browser.NewAppleScript())
	}
	return browser.NewChain(providers...)
}

// Clip performs one full clipboard-to-file run. Tags is a comma-separated
// list and may be empty. Returns ErrNoContent when the clipboard holds
// nothing usable, or a *storage.StorageError when the final write fails.
// Directories are created on demand by the storage and image writers.
func (cl *Clipper) Clip(ctx context.Context, tags string) (Result, error) {
	res, pageCtx, err := cl.capturer.Capture(ctx)
	if err != nil {
		return Result{}, err
	}

	logger.Debug("clipboard captured",
		"kind", res.Kind.String(),
		"length", len(res.Body),
		"images", res.ImageCount,
		"url", pageCtx.URL)

	path, err := cl.writer.Write(storage.Record{
		URL:   pageCtx.URL,
		Title: pageCtx.Title,
		Tags:  tags,
		Body:  res.Body,
	})
	if err != nil {
		return Result{}, err
	}

	return Result{
		FilePath:      path,
		URL:           pageCtx.URL,
		Title:         pageCtx.Title,
		Kind:          res.Kind.String(),
		ContentLength: len(res.Body),
		ImageCount:    res.ImageCount,
	}, nil
}
