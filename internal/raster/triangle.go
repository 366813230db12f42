package raster

import (
	"image"
	"image/color"
	"math"

	"screw-motion/internal/mathutil"
)

// Vertex is a projected vertex: screen x, y in pixels, depth growing toward
// the viewer, plus its texture coordinate.
type Vertex struct {
	P  mathutil.Vec3
	UV [2]float64
}

// RasterizeTriangle fills a flat-shaded triangle with z-buffering, sRGB
// colour handling, lighting and ACES tone mapping. normal is the view-space
// face normal. When tex is nil the triangle is filled with base.
func RasterizeTriangle(fb *FrameBuffer, v [3]Vertex, normal mathutil.Vec3, tex *image.NRGBA, base color.NRGBA, lc *LightConfig) {
	if normal.LenSq() < 1e-16 {
		return
	}
	shade := lc.ComputeShade(normal.Normalize())
	flat := lc.Shade(base, shade)

	x0, y0, z0 := v[0].P[0], v[0].P[1], v[0].P[2]
	x1, y1, z1 := v[1].P[0], v[1].P[1], v[1].P[2]
	x2, y2, z2 := v[2].P[0], v[2].P[1], v[2].P[2]

	// Bounding box
	minX := max(int(math.Floor(math.Min(math.Min(x0, x1), x2))), 0)
	maxX := min(int(math.Ceil(math.Max(math.Max(x0, x1), x2))), fb.Width-1)
	minY := max(int(math.Floor(math.Min(math.Min(y0, y1), y2))), 0)
	maxY := min(int(math.Ceil(math.Max(math.Max(y0, y1), y2))), fb.Height-1)
	if minX > maxX || minY > maxY {
		return
	}

	// Barycentric setup
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1.0 / det

	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	// Pixel loop, no allocations
	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) + 0.5 - y2
		rowOff := sy * fb.Width
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) + 0.5 - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1

			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}

			z := w0*z0 + w1*z1 + w2*z2
			zIdx := rowOff + sx
			if z <= fb.ZBuf[zIdx] {
				continue
			}

			c := flat
			if tex != nil {
				u := w0*v[0].UV[0] + w1*v[1].UV[0] + w2*v[2].UV[0]
				t := w0*v[0].UV[1] + w1*v[1].UV[1] + w2*v[2].UV[1]
				c = SampleTexture(tex, u, t)
				// Skip transparent texels
				if c.A < 8 {
					continue
				}
				c = lc.Shade(c, shade)
			}
			fb.ZBuf[zIdx] = z
			fb.Blend(sx, sy, c)
		}
	}
}
