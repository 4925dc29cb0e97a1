package vectortext

import (
	"fmt"
	"sync"
)

// GlyphEntry is a glyph's index range into the shared curve buffer.
// Start is the 0-based GPU offset of the glyph's first curve; Count is the
// number of curves belonging to the glyph. Entries for different glyphs
// never overlap: curves are append-only and partitioned by glyph at build
// time, so consecutive entries tile the buffer with no gaps.
//
// Start always holds the 0-based offset the GPU consumes. Any host-side
// one-based bookkeeping must convert at the point of use, never when
// storing.
type GlyphEntry struct {
	Start uint32
	Count uint32
}

// GlyphMetrics holds a glyph's horizontal metrics, all in font units.
// Built once when a rune is first encountered and never mutated; a font
// reload replaces the cache entry wholesale.
type GlyphMetrics struct {
	// Width and Height are the extents of the glyph's bounding box.
	Width, Height float32

	// BearingX is the horizontal distance from the pen position to the
	// left edge of the bounding box. BearingY is the vertical distance
	// from the baseline to the top edge (positive above the baseline).
	BearingX, BearingY float32

	// Advance is the pen movement to the next glyph.
	Advance float32
}

// Source supplies raw glyph outlines and metrics for runes. The font/
// backends in this package (NewGoTextSource, NewSFNTSource) both satisfy
// it; tests use synthetic implementations.
//
// A Source must be safe for concurrent use, or callers must confine each
// FontContext to one goroutine.
type Source interface {
	// GlyphOutline returns the outline and metrics for r, in font units.
	// A rune with no outline but valid metrics (such as a space) returns
	// an empty Outline and nil error. Unknown runes return
	// ErrGlyphNotFound.
	GlyphOutline(r rune) (Outline, GlyphMetrics, error)

	// UnitsPerEm returns the font's em square size in font units.
	UnitsPerEm() uint16
}

// FontContext owns the shared curve buffer and glyph table for one font.
// Glyphs are decomposed lazily on first use and cached for the lifetime of
// the context; the buffer is append-only and only Reset clears it.
//
// A FontContext is safe for concurrent use. Lookups of already-built
// glyphs take a read lock; all buffer appends are serialized behind the
// write lock so concurrent first-use of different runes cannot corrupt
// the shared buffer.
type FontContext struct {
	mu     sync.RWMutex
	source Source

	curves  []Curve
	index   map[rune]int32 // rune -> slot in entries/metrics
	entries []GlyphEntry
	metrics []GlyphMetrics
}

// NewFontContext creates a font context for the given outline source.
// Panics if source is nil; use NewFontContextChecked when the source comes
// from user input.
func NewFontContext(source Source) *FontContext {
	ctx, err := NewFontContextChecked(source)
	if err != nil {
		panic(err)
	}
	return ctx
}

// NewFontContextChecked is like NewFontContext but returns an error for a
// nil source instead of panicking.
func NewFontContextChecked(source Source) (*FontContext, error) {
	if source == nil {
		return nil, ErrNilSource
	}
	return &FontContext{
		source: source,
		index:  make(map[rune]int32),
	}, nil
}

// GetOrBuildGlyph returns the curve range for r, building it on first use.
// The call is idempotent: repeated calls for the same rune return the
// identical entry and append nothing.
//
// A rune whose outline fails to decode still gets an entry, with Count 0,
// so it renders blank without disturbing other glyphs; the failure is
// logged at warning level. The returned error is non-nil only when the
// source reports the rune is absent from the font entirely.
func (fc *FontContext) GetOrBuildGlyph(r rune) (GlyphEntry, error) {
	fc.mu.RLock()
	if slot, ok := fc.index[r]; ok {
		entry := fc.entries[slot]
		fc.mu.RUnlock()
		return entry, nil
	}
	fc.mu.RUnlock()

	fc.mu.Lock()
	defer fc.mu.Unlock()
	entry, _, err := fc.buildGlyphLocked(r)
	return entry, err
}

// GlyphIndex returns the glyph table slot for r, or -1 if r has not been
// built. The slot is what layout stores in Vertex.GlyphIndex.
func (fc *FontContext) GlyphIndex(r rune) int32 {
	fc.mu.RLock()
	defer fc.mu.RUnlock()
	if slot, ok := fc.index[r]; ok {
		return slot
	}
	return -1
}

// Metrics returns the cached metrics for r. The second result is false if
// r has not been built yet.
func (fc *FontContext) Metrics(r rune) (GlyphMetrics, bool) {
	fc.mu.RLock()
	defer fc.mu.RUnlock()
	if slot, ok := fc.index[r]; ok {
		return fc.metrics[slot], true
	}
	return GlyphMetrics{}, false
}

// buildGlyphLocked builds the glyph for r and records it. Callers must
// hold the write lock.
func (fc *FontContext) buildGlyphLocked(r rune) (GlyphEntry, int32, error) {
	// Double-check under the write lock: another goroutine may have won
	// the race between our read unlock and write lock.
	if slot, ok := fc.index[r]; ok {
		return fc.entries[slot], slot, nil
	}

	outline, m, err := fc.source.GlyphOutline(r)
	if err != nil {
		return GlyphEntry{}, -1, fmt.Errorf("glyph %q: %w", r, err)
	}

	curves, decErr := DecomposeOutline(outline)
	if decErr != nil {
		// Fail to blank: the glyph gets an empty range and valid metrics
		// so the pen still advances past it.
		Logger().Warn("glyph outline failed to decode, rendering blank",
			"rune", string(r), "err", decErr)
		curves = nil
	}

	entry := GlyphEntry{
		Start: uint32(len(fc.curves)),
		Count: uint32(len(curves)),
	}
	fc.curves = append(fc.curves, curves...)

	slot := int32(len(fc.entries))
	fc.entries = append(fc.entries, entry)
	fc.metrics = append(fc.metrics, m)
	fc.index[r] = slot

	return entry, slot, nil
}

// lookupOrBuild returns the slot, entry and metrics for r, building the
// glyph if needed. Used by layout so one lock round-trip serves all three.
func (fc *FontContext) lookupOrBuild(r rune) (int32, GlyphEntry, GlyphMetrics, error) {
	fc.mu.RLock()
	if slot, ok := fc.index[r]; ok {
		entry, m := fc.entries[slot], fc.metrics[slot]
		fc.mu.RUnlock()
		return slot, entry, m, nil
	}
	fc.mu.RUnlock()

	fc.mu.Lock()
	defer fc.mu.Unlock()
	entry, slot, err := fc.buildGlyphLocked(r)
	if err != nil {
		return -1, GlyphEntry{}, GlyphMetrics{}, err
	}
	return slot, entry, fc.metrics[slot], nil
}

// Curves returns the shared curve buffer. The slice is append-only; the
// returned prefix is immutable and safe to upload or read concurrently.
func (fc *FontContext) Curves() []Curve {
	fc.mu.RLock()
	defer fc.mu.RUnlock()
	return fc.curves[:len(fc.curves):len(fc.curves)]
}

// Entries returns the glyph table in build order, aligned with the slot
// values stored in Vertex.GlyphIndex.
func (fc *FontContext) Entries() []GlyphEntry {
	fc.mu.RLock()
	defer fc.mu.RUnlock()
	return fc.entries[:len(fc.entries):len(fc.entries)]
}

// NumCurves returns the number of curves in the shared buffer.
func (fc *FontContext) NumCurves() int {
	fc.mu.RLock()
	defer fc.mu.RUnlock()
	return len(fc.curves)
}

// NumGlyphs returns the number of built glyphs.
func (fc *FontContext) NumGlyphs() int {
	fc.mu.RLock()
	defer fc.mu.RUnlock()
	return len(fc.entries)
}

// UnitsPerEm returns the em square size of the underlying font.
func (fc *FontContext) UnitsPerEm() uint16 {
	return fc.source.UnitsPerEm()
}

// Reset clears the curve buffer and glyph table together, for example
// after a font reload. Partial clears are impossible: entries and curves
// always stay consistent with each other.
func (fc *FontContext) Reset() {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.curves = nil
	fc.entries = nil
	fc.metrics = nil
	fc.index = make(map[rune]int32)
}
