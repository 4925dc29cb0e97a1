package vectortext

import "errors"

// Sentinel errors for the vectortext package.
var (
	// ErrEmptyFontData is returned when a font source is created from
	// empty data.
	ErrEmptyFontData = errors.New("vectortext: empty font data")

	// ErrNilSource is returned when a FontContext is created without an
	// outline source.
	ErrNilSource = errors.New("vectortext: nil outline source")

	// ErrGlyphNotFound is returned when a font has no glyph for a rune.
	ErrGlyphNotFound = errors.New("vectortext: glyph not found")

	// ErrMalformedOutline is returned when a glyph outline cannot be
	// decoded (inconsistent point tags, truncated contours). Glyphs that
	// fail this way render blank; the batch is never aborted.
	ErrMalformedOutline = errors.New("vectortext: malformed glyph outline")
)
