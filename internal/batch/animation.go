package batch

import (
	"errors"
	"image"
	"io"

	"screw-motion/internal/scene"

	"github.com/HugoSmits86/nativewebp"
)

// ErrNoFrames is returned when there is nothing to encode.
var ErrNoFrames = errors.New("no frames")

// FrameDelay returns the display time of one frame in milliseconds.
func FrameDelay(fps int) uint {
	if fps <= 0 {
		fps = 30
	}
	d := uint(1000 / fps)
	if d == 0 {
		d = 1
	}
	return d
}

// EncodeAnimation writes frames as a looping animated WebP. The last frame
// is held for half a second so the final pose reads before the loop.
func EncodeAnimation(w io.Writer, frames []image.Image, fps int) error {
	if len(frames) == 0 {
		return ErrNoFrames
	}
	delay := FrameDelay(fps)
	ani := &nativewebp.Animation{
		Images:          frames,
		Durations:       make([]uint, len(frames)),
		Disposals:       make([]uint, len(frames)),
		LoopCount:       0,
		BackgroundColor: bgra(scene.Background.R, scene.Background.G, scene.Background.B, scene.Background.A),
	}
	for i := range ani.Durations {
		ani.Durations[i] = delay
	}
	ani.Durations[len(frames)-1] = max(delay, 500)
	return nativewebp.EncodeAll(w, ani, nil)
}

func bgra(r, g, b, a uint8) uint32 {
	return uint32(b) | uint32(g)<<8 | uint32(r)<<16 | uint32(a)<<24
}
