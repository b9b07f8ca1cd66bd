// Package convert turns clipboard HTML into clean markdown, downloading
// embedded images and rewriting their references to local paths.
package convert

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/PuerkitoBio/goquery"

	"github.com/clipkit/webclip/internal/logger"
)

// ImageFetcher downloads one referenced image and returns its local path.
// A failure is recoverable: the converter skips that image and keeps going.
type ImageFetcher interface {
	Fetch(ctx context.Context, locator, baseURL, dir string) (string, error)
}

// Converter rewrites embedded image references in an HTML document and
// converts the result to markdown. ATX headings, "-" bullets; script and
// style elements are stripped before conversion.
type Converter struct {
	images ImageFetcher
	md     *converter.Converter
}

// New creates a Converter backed by the given image fetcher.
func New(images ImageFetcher) *Converter {
	return &Converter{
		images: images,
		md: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
			),
		),
	}
}

var blankRuns = regexp.MustCompile(`\n{3,}`)

// Convert parses html, downloads every non-data-URI image into imagesDir
// (rewriting its src to ./images/<name>), and converts the document to
// markdown. Returns the markdown, the number of images downloaded, and an
// error only on total parse/convert failure — the caller decides the
// fallback, images that fail to download are skipped with their src left
// untouched.
func (c *Converter) Convert(ctx context.Context, html, baseURL, imagesDir string) (string, int, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", 0, fmt.Errorf("parsing html: %w", err)
	}

	doc.Find("script, style").Remove()

	count := 0
	doc.Find("img").Each(func(_ int, img *goquery.Selection) {
		src, ok := img.Attr("src")
		if !ok || src == "" {
			return
		}
		// Data URIs pass through unmodified.
		if strings.HasPrefix(src, "data:") {
			return
		}

		local, err := c.images.Fetch(ctx, src, baseURL, imagesDir)
		if err != nil {
			logger.Warn("image download failed, keeping original reference",
				"src", src, "error", err)
			return
		}
		img.SetAttr("src", "./images/"+filepath.Base(local))
		count++
	})

	rewritten, err := doc.Html()
	if err != nil {
		return "", count, fmt.Errorf("serializing html: %w", err)
	}

	markdown, err := c.md.ConvertString(rewritten)
	if err != nil {
		return "", count, fmt.Errorf("converting html to markdown: %w", err)
	}

	markdown = blankRuns.ReplaceAllString(markdown, "\n\n")
	return strings.TrimSpace(markdown), count, nil
}
