// Package images downloads remote images referenced by clipped HTML and
// stores raw clipboard images. Files are named image_{epoch_millis}_{n}.{ext}
// with n incremented until an unused name is claimed, so repeated clips in
// the same millisecond never collide.
package images

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/clipkit/webclip/internal/logger"
)

const (
	defaultTimeout = 10 * time.Second

	// A realistic browser user-agent; some image hosts reject obvious bots.
	defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Fetcher downloads remote images into a local directory and stores raw
// clipboard image bytes. Every failure from Fetch is recoverable per-asset;
// callers skip the image and continue.
type Fetcher struct {
	userAgent string
	timeout   time.Duration
	now       func() time.Time
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-download timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides the request user-agent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// New creates a Fetcher with sensible defaults.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		userAgent: defaultUserAgent,
		timeout:   defaultTimeout,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch resolves locator against baseURL, downloads the image, and writes it
// to a collision-free path under dir. Returns the local path.
func (f *Fetcher) Fetch(ctx context.Context, locator, baseURL, dir string) (string, error) {
	full, err := resolveLocator(locator, baseURL)
	if err != nil {
		return "", fmt.Errorf("resolving image reference %q: %w", locator, err)
	}

	body, err := f.download(full)
	if err != nil {
		return "", err
	}

	path, err := f.write(body, dir, extensionFor(full))
	if err != nil {
		return "", err
	}

	logger.Debug("image downloaded", "url", full, "path", path, "bytes", len(body))
	return path, nil
}

// Store writes raw clipboard image bytes (a direct "copy image") to a
// collision-free path under dir. No network involved; clipboard images are
// always PNG.
func (f *Fetcher) Store(raw []byte, dir string) (string, error) {
	return f.write(raw, dir, ".png")
}

func (f *Fetcher) write(data []byte, dir, ext string) (string, error) {
	path, file, err := f.claim(dir, ext)
	if err != nil {
		return "", err
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(path)
		return "", fmt.Errorf("writing image %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("closing image %s: %w", path, err)
	}
	return path, nil
}

// claim reserves a unique image_{ms}_{n}{ext} name under dir. The name is
// claimed with an exclusive create so two concurrent invocations in the same
// millisecond cannot race to the same file; EEXIST just advances the counter.
func (f *Fetcher) claim(dir, ext string) (string, *os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", nil, fmt.Errorf("creating images directory %s: %w", dir, err)
	}

	ms := f.now().UnixMilli()
	for n := 0; ; n++ {
		path := filepath.Join(dir, fmt.Sprintf("image_%d_%d%s", ms, n, ext))
		file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			return path, file, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", nil, fmt.Errorf("creating image file %s: %w", path, err)
		}
	}
}

// download performs a bounded-timeout GET and returns the response body.
// Non-2xx responses and transport failures are returned as errors.
func (f *Fetcher) download(imageURL string) ([]byte, error) {
	c := colly.NewCollector(
		colly.UserAgent(f.userAgent),
		colly.AllowURLRevisit(),
		colly.IgnoreRobotsTxt(),
	)
	c.SetRequestTimeout(f.timeout)

	var body []byte
	var fetchErr error

	c.OnResponse(func(r *colly.Response) {
		body = r.Body
	})
	c.OnError(func(r *colly.Response, err error) {
		fetchErr = fmt.Errorf("downloading image %s: %w", imageURL, err)
	})

	if err := c.Visit(imageURL); err != nil {
		return nil, fmt.Errorf("downloading image %s: %w", imageURL, err)
	}
	if fetchErr != nil {
		return nil, fetchErr
	}
	return body, nil
}

// resolveLocator resolves a possibly-relative image reference against the
// page URL using standard relative-URL resolution.
func resolveLocator(locator, baseURL string) (string, error) {
	ref, err := url.Parse(locator)
	if err != nil {
		return "", err
	}
	if ref.IsAbs() {
		return ref.String(), nil
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(ref).String(), nil
}

// extensionFor derives a file extension from the final path segment of the
// resolved URL. Missing, oversized (>4 chars past the dot), or
// non-alphanumeric extensions default to .png.
func extensionFor(imageURL string) string {
	name := ""
	if parsed, err := url.Parse(imageURL); err == nil {
		segments := strings.Split(parsed.Path, "/")
		name = segments[len(segments)-1]
	}

	dot := strings.LastIndex(name, ".")
	if dot == -1 {
		return ".png"
	}
	ext := name[dot:]
	if len(ext) > 5 || !isAlnum(ext[1:]) {
		return ".png"
	}
	return ext
}

func isAlnum(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		ok := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !ok {
			return false
		}
	}
	return true
}
