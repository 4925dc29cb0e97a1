package vectortext

import "math"

// linearYTolerance decides when a curve is treated as linear in y.
// Below it the quadratic coefficient a.y is too small to survive the
// discriminant without catastrophic cancellation; above it the segment is
// genuinely curved. 1e-5 (in font-unit terms) is appropriate for the
// 1000–2048 unit em squares common in practice and matches the GPU shader.
const linearYTolerance = 1e-5

// CoverageParams controls the analytic anti-aliasing of the coverage
// evaluator. The zero value disables supersampling and is corrected to a
// one-pixel window by the evaluator.
type CoverageParams struct {
	// AAWindow is the width of the anti-aliasing ramp in pixels.
	// Coverage transitions from 0 to 1 across this band centered on the
	// outline edge. Default: 1.0.
	AAWindow float32

	// Supersample enables a second coverage pass along a perpendicular
	// ray direction, averaged with the first. It reduces directional
	// aliasing on near-horizontal and near-vertical edges at roughly
	// twice the per-fragment cost.
	Supersample bool
}

// DefaultCoverageParams returns the default evaluator parameters.
func DefaultCoverageParams() CoverageParams {
	return CoverageParams{
		AAWindow:    1.0,
		Supersample: false,
	}
}

// InverseDiameter converts an anti-aliasing window (in pixels) and a
// fragment's pixel footprint (font units covered per pixel, along u and v)
// into the per-axis reciprocal smoothing diameter the evaluator needs.
//
// The result is in reciprocal font units: the same coordinate space as the
// curves and UVs. Mixing spaces here (screen pixels against font-unit
// geometry) is the classic cause of hairline artifacts, so the conversion
// lives in exactly one place. On the GPU the footprint is fwidth(uv); on
// the CPU it is fontUnitsPerPixel from the rasterizer.
func InverseDiameter(aaWindow float32, footprint Point2) Point2 {
	if aaWindow <= 0 {
		aaWindow = 1.0
	}
	const minFootprint = 1e-6
	fx := max(footprint.X, minFootprint)
	fy := max(footprint.Y, minFootprint)
	return Point2{
		X: 1.0 / (aaWindow * fx),
		Y: 1.0 / (aaWindow * fy),
	}
}

// Coverage computes the filled-area coverage in [0, 1] at the fragment
// position uv, given the curves of a single glyph. uv and the curves share
// the glyph's font-unit coordinate space; invDiameter comes from
// InverseDiameter.
//
// The algorithm casts a horizontal ray from the fragment and accumulates
// a signed, smoothed contribution per curve crossing: the ray exits the
// filled region at the curve's first root and enters it at the second,
// which realizes a non-zero-winding fill without explicit sign
// bookkeeping. Contributions are clamped only after summing over every
// curve; clamping per curve would clip overlapping contours into grey
// interiors.
func Coverage(curves []Curve, uv Point2, invDiameter Point2, supersample bool) float32 {
	var alpha, rotated float32

	for _, c := range curves {
		local := c.Translate(uv)
		alpha += curveCoverage(local.P0, local.P1, local.P2, invDiameter.X)
		if supersample {
			// Sample along a second ray by rotating the geometry 90°.
			// Roots are re-solved for the rotated control points.
			rotated += curveCoverage(
				local.P0.RotateCW(), local.P1.RotateCW(), local.P2.RotateCW(),
				invDiameter.Y)
		}
	}

	if supersample {
		return (clamp01(alpha) + clamp01(rotated)) / 2
	}
	return clamp01(alpha)
}

// GlyphCoverage is Coverage with the fail-safe indexing rules applied:
// a negative glyph index (including the debug-box sentinels), an index
// beyond the glyph table, an empty curve range, or a range that exceeds
// the curve buffer all yield zero coverage instead of an out-of-bounds
// read. Host and GPU apply the same rules so they cannot disagree when
// buffers are rebuilt mid-frame.
func GlyphCoverage(curves []Curve, entries []GlyphEntry, glyphIndex int32,
	uv Point2, invDiameter Point2, supersample bool) float32 {

	if glyphIndex < 0 || int64(glyphIndex) >= int64(len(entries)) {
		return 0
	}
	e := entries[glyphIndex]
	if e.Count == 0 {
		return 0
	}
	end := uint64(e.Start) + uint64(e.Count)
	if end > uint64(len(curves)) {
		return 0
	}
	return Coverage(curves[e.Start:end], uv, invDiameter, supersample)
}

// curveCoverage computes one curve's signed contribution to the coverage
// sum, in the frame where the fragment is the origin. It mirrors the
// fragment shader statement for statement.
func curveCoverage(p0, p1, p2 Point2, invDiameter float32) float32 {
	// A curve entirely above or below the horizontal ray cannot cross it.
	if p0.Y > 0 && p1.Y > 0 && p2.Y > 0 {
		return 0
	}
	if p0.Y < 0 && p1.Y < 0 && p2.Y < 0 {
		return 0
	}

	// Simplified abc formula: y(t) = a.y·t² − 2·b.y·t + c.y with
	// a = p0 − 2·p1 + p2, b = p0 − p1, c = p0.
	ax := p0.X - 2*p1.X + p2.X
	ay := p0.Y - 2*p1.Y + p2.Y
	bx := p0.X - p1.X
	by := p0.Y - p1.Y
	cx := p0.X
	cy := p0.Y

	var t0, t1 float32
	if abs32(ay) >= linearYTolerance {
		// Quadratic case. A non-positive radicand means the curve never
		// reaches the ray (or just grazes it): no contribution. This is
		// an expected branch, not an error.
		radicand := by*by - ay*cy
		if radicand <= 0 {
			return 0
		}
		s := sqrt32(radicand)
		// The roots are (b.y ± s)/a.y. Near the linear-degenerate regime
		// s approaches |b.y| and one numerator cancels catastrophically,
		// losing the crossing. (b.y−s)(b.y+s) = a.y·c.y, so the
		// cancelling root is computed from the subtraction-free pairing
		// instead.
		if by >= 0 {
			t0 = cy / (by + s)
			t1 = (by + s) / ay
		} else {
			t0 = (by - s) / ay
			t1 = cy / (by - s)
		}
	} else {
		// Effectively linear in y: one root, solved from the endpoints.
		// The root is assigned so the ray always exits the shape at t0
		// and enters at t1; the unused root parks at -1, outside [0, 1).
		// A horizontal segment (p0.y == p2.y) produces a non-finite t
		// that fails both interval checks, contributing nothing.
		t := p0.Y / (p0.Y - p2.Y)
		if p0.Y < p2.Y {
			t0, t1 = -1, t
		} else {
			t0, t1 = t, -1
		}
	}

	// Half-open interval on both roots: a root exactly at t=1 belongs to
	// the next curve of the contour, which sees it at t=0. Anything else
	// double-counts shared endpoints.
	var alpha float32
	if t0 >= 0 && t0 < 1 {
		x := (ax*t0-2*bx)*t0 + cx
		alpha += clamp01(x*invDiameter + 0.5)
	}
	if t1 >= 0 && t1 < 1 {
		x := (ax*t1-2*bx)*t1 + cx
		alpha -= clamp01(x*invDiameter + 0.5)
	}
	return alpha
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func abs32(v float32) float32 {
	return float32(math.Abs(float64(v)))
}

func sqrt32(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}
