package raster

import (
	"image/color"
	"math"

	"screw-motion/internal/mathutil"
)

// LineDepthBias lets lines lying on a surface win the depth test against it.
const LineDepthBias = 0.02

// DrawLine draws a z-tested segment between two projected points. width is
// in pixels; dash > 0 draws alternating on/off runs of that many pixels.
// Lines test depth but never write it, so overlapping lines all show.
func DrawLine(fb *FrameBuffer, a, b mathutil.Vec3, c color.NRGBA, width, dash int) {
	dx := b[0] - a[0]
	dy := b[1] - a[1]
	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
	if steps < 1 {
		steps = 1
	}
	if width < 1 {
		width = 1
	}
	lo := -(width - 1) / 2
	hi := width / 2

	for i := 0; i <= steps; i++ {
		if dash > 0 && (i/dash)%2 == 1 {
			continue
		}
		t := float64(i) / float64(steps)
		x := int(math.Floor(a[0] + dx*t))
		y := int(math.Floor(a[1] + dy*t))
		z := a[2] + (b[2]-a[2])*t + LineDepthBias
		for oy := lo; oy <= hi; oy++ {
			for ox := lo; ox <= hi; ox++ {
				px, py := x+ox, y+oy
				if px < 0 || py < 0 || px >= fb.Width || py >= fb.Height {
					continue
				}
				if z < fb.ZBuf[py*fb.Width+px] {
					continue
				}
				fb.Blend(px, py, c)
			}
		}
	}
}
