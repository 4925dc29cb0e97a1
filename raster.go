package vectortext

import (
	"image"
	"math"
)

// Rasterize renders a text mesh to an alpha mask using the CPU coverage
// evaluator. It walks every quad's pixel bounding box, reconstructs the
// fragment's font-unit UV by interpolating the quad's vertex UVs, and
// evaluates the same per-curve algorithm the fragment shader runs.
//
// The result is the reference output for the GPU path: the gpu package
// tests compare against it, and headless tools (cmd/vtextdemo) use it
// directly. Overlapping quads composite with max, matching what blending
// a single text color produces.
func Rasterize(fc *FontContext, mesh Mesh, width, height int, params CoverageParams) *image.Alpha {
	img := image.NewAlpha(image.Rect(0, 0, width, height))
	if width <= 0 || height <= 0 {
		return img
	}

	curves := fc.Curves()
	entries := fc.Entries()

	for q := 0; q+4 <= len(mesh.Vertices); q += 4 {
		// Quad vertex order is bottom-left, bottom-right, top-right,
		// top-left (see appendQuad).
		bl, br, _, tl := mesh.Vertices[q], mesh.Vertices[q+1], mesh.Vertices[q+2], mesh.Vertices[q+3]

		if bl.GlyphIndex < 0 {
			// Debug-box quads carry no glyph data. The evaluator would
			// reject them anyway; skipping saves the pixel walk.
			continue
		}

		x0, x1 := bl.X, br.X
		yA, yB := tl.Y, bl.Y
		if x1 <= x0 || yA == yB {
			continue
		}

		// Font units advanced per screen pixel, per axis. This is the
		// CPU stand-in for fwidth(uv).
		dudx := (br.U - bl.U) / (x1 - x0)
		dvdy := (tl.V - bl.V) / (yA - yB)
		footprint := Point2{X: abs32(dudx), Y: abs32(dvdy)}
		invDiameter := InverseDiameter(params.AAWindow, footprint)

		yMin, yMax := yA, yB
		if yMin > yMax {
			yMin, yMax = yMax, yMin
		}

		pxMin := clampInt(int(math.Floor(float64(x0))), 0, width)
		pxMax := clampInt(int(math.Ceil(float64(x1))), 0, width)
		pyMin := clampInt(int(math.Floor(float64(yMin))), 0, height)
		pyMax := clampInt(int(math.Ceil(float64(yMax))), 0, height)

		for py := pyMin; py < pyMax; py++ {
			cy := float32(py) + 0.5
			if cy < yMin || cy >= yMax {
				continue
			}
			v := bl.V + (cy-yB)*dvdy
			for px := pxMin; px < pxMax; px++ {
				cx := float32(px) + 0.5
				if cx < x0 || cx >= x1 {
					continue
				}

				uv := Point2{
					X: bl.U + (cx-x0)*dudx,
					Y: v,
				}
				coverage := GlyphCoverage(curves, entries, bl.GlyphIndex,
					uv, invDiameter, params.Supersample)
				if coverage <= 0 {
					continue
				}

				a := uint8(coverage*255 + 0.5)
				off := img.PixOffset(px, py)
				if a > img.Pix[off] {
					img.Pix[off] = a
				}
			}
		}
	}

	return img
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
