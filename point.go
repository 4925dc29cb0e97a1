package vectortext

import "math"

// Point2 is a 2D point or vector in font design units.
// Font units are the glyph's native coordinate space (typically a 1000 or
// 2048 unit em square), independent of the final screen scale.
type Point2 struct {
	X, Y float32
}

// Pt is shorthand for Point2{X: x, Y: y}.
func Pt(x, y float32) Point2 {
	return Point2{X: x, Y: y}
}

// Add returns p + q.
func (p Point2) Add(q Point2) Point2 {
	return Point2{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p - q.
func (p Point2) Sub(q Point2) Point2 {
	return Point2{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale returns p scaled by s.
func (p Point2) Scale(s float32) Point2 {
	return Point2{X: p.X * s, Y: p.Y * s}
}

// Mid returns the midpoint of p and q.
func (p Point2) Mid(q Point2) Point2 {
	return Point2{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2}
}

// RotateCW returns p rotated 90 degrees clockwise: (x, y) -> (y, -x).
// The coverage evaluator uses this to sample along a second,
// perpendicular ray direction for supersampling.
func (p Point2) RotateCW() Point2 {
	return Point2{X: p.Y, Y: -p.X}
}

// IsFinite reports whether both coordinates are finite (not NaN or Inf).
func (p Point2) IsFinite() bool {
	return !math.IsNaN(float64(p.X)) && !math.IsInf(float64(p.X), 0) &&
		!math.IsNaN(float64(p.Y)) && !math.IsInf(float64(p.Y), 0)
}
