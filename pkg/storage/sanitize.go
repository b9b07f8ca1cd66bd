// Package storage derives clip file locations from source URLs and appends
// formatted clip records to them. Clip files are append-only; repeated clips
// of the same page accumulate in one deterministic file.
package storage

import (
	"regexp"
	"strings"
)

var (
	invalidChars = regexp.MustCompile(`[^A-Za-z0-9_\s-]`)
	whitespace   = regexp.MustCompile(`\s+`)
	hyphenRuns   = regexp.MustCompile(`-+`)
)

// Sanitize turns an arbitrary string into a filesystem-safe slug: characters
// outside [A-Za-z0-9_\s-] become hyphens, whitespace and hyphen runs collapse
// to a single hyphen, leading/trailing hyphens are stripped, and the result
// is lowercased. An empty input yields an empty output.
func Sanitize(name string) string {
	s := invalidChars.ReplaceAllString(name, "-")
	s = whitespace.ReplaceAllString(s, "-")
	s = hyphenRuns.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	return strings.ToLower(s)
}
