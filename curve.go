package vectortext

// Curve is a quadratic Bézier curve in font units, relative to the owning
// glyph's origin. It is the universal outline primitive: true quadratic
// segments map directly, straight lines are stored degenerately with P1 at
// the segment midpoint, and cubic segments are approximated.
//
// Curves are immutable once appended to a FontContext's curve buffer.
type Curve struct {
	P0, P1, P2 Point2
}

// LineCurve returns the degenerate quadratic representation of the straight
// segment from p0 to p2. P1 is placed at the midpoint so the quadratic
// formula collapses to linear behavior.
func LineCurve(p0, p2 Point2) Curve {
	return Curve{P0: p0, P1: p0.Mid(p2), P2: p2}
}

// Eval evaluates the curve at parameter t using the Bernstein form
// (1-t)²·P0 + 2t(1-t)·P1 + t²·P2.
func (c Curve) Eval(t float32) Point2 {
	u := 1 - t
	return Point2{
		X: u*u*c.P0.X + 2*t*u*c.P1.X + t*t*c.P2.X,
		Y: u*u*c.P0.Y + 2*t*u*c.P1.Y + t*t*c.P2.Y,
	}
}

// Start returns the curve's start point P0.
func (c Curve) Start() Point2 { return c.P0 }

// End returns the curve's end point P2.
func (c Curve) End() Point2 { return c.P2 }

// Translate returns the curve with all control points offset by -origin.
// The coverage evaluator uses this to move the fragment to the origin of
// the coordinate frame before intersecting.
func (c Curve) Translate(origin Point2) Curve {
	return Curve{
		P0: c.P0.Sub(origin),
		P1: c.P1.Sub(origin),
		P2: c.P2.Sub(origin),
	}
}

// IsFinite reports whether every control point coordinate is finite.
// Curves with NaN or Inf coordinates are rejected at buffer-build time so
// they cannot poison the coverage sum.
func (c Curve) IsFinite() bool {
	return c.P0.IsFinite() && c.P1.IsFinite() && c.P2.IsFinite()
}

// isZeroLength reports whether all three control points coincide.
// Zero-length curves contribute nothing to coverage but waste buffer
// space, so the decomposer elides them.
func (c Curve) isZeroLength() bool {
	return c.P0 == c.P1 && c.P1 == c.P2
}
