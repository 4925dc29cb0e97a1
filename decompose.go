package vectortext

// DecomposeOutline converts a glyph's raw outline into quadratic Bézier
// curves, in contour order. Each contour is closed back to its start point,
// so for every contour the last curve's endpoint equals the first curve's
// start point.
//
// Straight segments become degenerate quadratics (control point at the
// segment midpoint). Cubic segments are approximated by a single quadratic
// whose control point is the midpoint-rule reduction
// (3·(c1+c2) − (p0+p3)) / 4; the approximation always preserves contour
// closure. Contours with fewer than two distinct points are dropped, as
// are zero-length and non-finite curves.
//
// Returns ErrMalformedOutline if point tags are inconsistent (for example
// a lone cubic control); callers treat that glyph as empty.
func DecomposeOutline(o Outline) ([]Curve, error) {
	var curves []Curve
	dropped := 0

	for _, contour := range o.Contours {
		points := normalizeContour(contour.Points, o.ReverseFill)
		if len(points) < 2 {
			continue
		}

		contourCurves, err := walkContour(points)
		if err != nil {
			return nil, err
		}

		for _, c := range contourCurves {
			if !c.IsFinite() {
				dropped++
				continue
			}
			if c.isZeroLength() {
				continue
			}
			curves = append(curves, c)
		}
	}

	if dropped > 0 {
		Logger().Warn("dropped curves with non-finite coordinates",
			"count", dropped)
	}
	return curves, nil
}

// normalizeContour prepares a contour for the curve walk:
//   - reverses point order when the font's fill direction is flipped
//   - collapses repeated consecutive identical points (including the
//     wrap-around pair) that would produce zero-length curves
//   - inserts the implied on-curve midpoint between consecutive quadratic
//     control points (TrueType omits these)
//   - rotates the contour so it starts on an on-curve point
func normalizeContour(points []OutlinePoint, reverse bool) []OutlinePoint {
	if len(points) == 0 {
		return nil
	}

	pts := make([]OutlinePoint, 0, len(points)+4)
	if reverse {
		for i := len(points) - 1; i >= 0; i-- {
			pts = append(pts, points[i])
		}
	} else {
		pts = append(pts, points...)
	}

	pts = collapseDuplicates(pts)
	if len(pts) < 2 {
		return pts
	}

	// Insert implied on-curve midpoints between consecutive quadratic
	// controls. The pair wraps: last and first can both be off-curve.
	expanded := make([]OutlinePoint, 0, len(pts)+4)
	for i, p := range pts {
		expanded = append(expanded, p)
		next := pts[(i+1)%len(pts)]
		if p.Tag == TagQuadOff && next.Tag == TagQuadOff {
			expanded = append(expanded, OutlinePoint{
				Pos: p.Pos.Mid(next.Pos),
				Tag: TagOnCurve,
			})
		}
	}
	pts = expanded

	// Rotate so the walk starts on an on-curve point.
	if pts[0].Tag != TagOnCurve {
		start := -1
		for i, p := range pts {
			if p.Tag == TagOnCurve {
				start = i
				break
			}
		}
		if start < 0 {
			// No on-curve point at all; the implied-midpoint pass above
			// guarantees this only happens for degenerate input.
			return nil
		}
		rotated := make([]OutlinePoint, 0, len(pts))
		rotated = append(rotated, pts[start:]...)
		rotated = append(rotated, pts[:start]...)
		pts = rotated
	}

	return pts
}

// collapseDuplicates removes repeated consecutive identical positions.
// When an on-curve and an off-curve point coincide, the on-curve point
// wins so the contour keeps its anchors.
func collapseDuplicates(pts []OutlinePoint) []OutlinePoint {
	out := pts[:0]
	for _, p := range pts {
		if len(out) > 0 && out[len(out)-1].Pos == p.Pos {
			if p.Tag == TagOnCurve {
				out[len(out)-1].Tag = TagOnCurve
			}
			continue
		}
		out = append(out, p)
	}
	// Wrap-around duplicate: fonts sometimes repeat the start point at
	// the end of a contour.
	if len(out) > 1 && out[0].Pos == out[len(out)-1].Pos {
		if out[len(out)-1].Tag == TagOnCurve {
			out[0].Tag = TagOnCurve
		}
		out = out[:len(out)-1]
	}
	return out
}

// walkContour emits curves for one normalized contour. pts[0] is on-curve;
// the walk wraps past the end back to pts[0] to close the loop.
func walkContour(pts []OutlinePoint) ([]Curve, error) {
	n := len(pts)
	at := func(i int) OutlinePoint { return pts[i%n] }

	curves := make([]Curve, 0, n)
	cur := pts[0].Pos

	i := 1
	for i <= n {
		p := at(i)
		switch p.Tag {
		case TagOnCurve:
			curves = append(curves, LineCurve(cur, p.Pos))
			cur = p.Pos
			i++

		case TagQuadOff:
			end := at(i + 1)
			if end.Tag != TagOnCurve {
				return nil, ErrMalformedOutline
			}
			curves = append(curves, Curve{P0: cur, P1: p.Pos, P2: end.Pos})
			cur = end.Pos
			i += 2

		case TagCubicOff:
			c2 := at(i + 1)
			end := at(i + 2)
			if c2.Tag != TagCubicOff || end.Tag != TagOnCurve {
				return nil, ErrMalformedOutline
			}
			curves = append(curves, approxCubic(cur, p.Pos, c2.Pos, end.Pos))
			cur = end.Pos
			i += 3

		default:
			return nil, ErrMalformedOutline
		}
	}

	return curves, nil
}

// approxCubic reduces a cubic Bézier to a single quadratic using the
// midpoint rule: the quadratic control point is (3·(c1+c2) − (p0+p3)) / 4.
// Endpoints are preserved exactly, which is what keeps contours closed.
// Shape error is visible only on fonts with pronounced cubic curvature;
// typical CFF glyphs stay well within a font unit or two.
func approxCubic(p0, c1, c2, p3 Point2) Curve {
	ctrl := Point2{
		X: (3*(c1.X+c2.X) - (p0.X + p3.X)) / 4,
		Y: (3*(c1.Y+c2.Y) - (p0.Y + p3.Y)) / 4,
	}
	return Curve{P0: p0, P1: ctrl, P2: p3}
}
