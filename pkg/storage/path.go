package storage

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/clipkit/webclip/pkg/config"
)

// ClipTarget is the resolved location of a clip file. It is a pure function
// of the source URL and configuration: the same URL under the same config
// always resolves to the same target.
type ClipTarget struct {
	Directory string
	Filename  string
}

// Path joins the target directory and filename.
func (t ClipTarget) Path() string {
	return filepath.Join(t.Directory, t.Filename)
}

// Resolve derives the clip file location for a source URL.
//
//	https://github.com/anthropics/claude -> github.com/anthropics-claude.md
//	https://docs.python.org/library/pathlib -> docs.python.org/library-pathlib.md
//
// A malformed URL never fails resolution; it degrades to the host "unknown".
// With CreateSubdirs off, the host is embedded in the filename instead
// (github.com_anthropics-claude.md). Two distinct paths that sanitize to the
// same slug under the same host share a file; clips for both append there.
func Resolve(rawURL string, cfg config.Config) ClipTarget {
	host := "unknown"
	urlPath := ""
	if parsed, err := url.Parse(rawURL); err == nil {
		if parsed.Host != "" {
			host = parsed.Host
		}
		urlPath = parsed.Path
	}
	host = strings.TrimPrefix(host, "www.")

	filename := "index.md"
	if p := strings.Trim(urlPath, "/"); p != "" {
		filename = Sanitize(strings.ReplaceAll(p, "/", "-"))
		if !strings.HasSuffix(filename, ".md") {
			filename += ".md"
		}
	}

	if cfg.CreateSubdirs {
		return ClipTarget{
			Directory: filepath.Join(cfg.ClipsDirectory, host),
			Filename:  filename,
		}
	}
	return ClipTarget{
		Directory: cfg.ClipsDirectory,
		Filename:  host + "_" + filename,
	}
}
