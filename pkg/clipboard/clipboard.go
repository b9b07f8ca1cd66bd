// Package clipboard reads the system clipboard's independent HTML, plain
// text, and image representations. The three surfaces are queried separately
// because a single copy can expose several of them at once; capture decides
// which one wins.
package clipboard

// Source exposes the clipboard's three representations. Each accessor
// returns ok=false when the representation is absent or unreadable; none of
// them fail hard.
type Source interface {
	// HTML returns the rich HTML representation, if any.
	HTML() (string, bool)

	// Text returns the plain-text representation, if any. Invalid text
	// encoding is repaired best-effort rather than reported.
	Text() (string, bool)

	// Image returns raw image bytes for a direct "copy image", if any.
	Image() ([]byte, bool)
}
