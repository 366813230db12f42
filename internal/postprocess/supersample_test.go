package postprocess

import (
	"image"
	"image/color"
	"testing"
)

func fill(img *image.NRGBA, c color.NRGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

func TestDownsampleOpaque(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	fill(src, color.NRGBA{200, 100, 50, 255})
	got := Downsample(src, 4)
	if b := got.Bounds(); b.Dx() != 4 || b.Dy() != 4 {
		t.Fatalf("bounds: got=%v", b)
	}
	c := got.NRGBAAt(1, 2)
	near := func(a, b uint8) bool { return int(a)-int(b) <= 1 && int(b)-int(a) <= 1 }
	if !near(c.R, 200) || !near(c.G, 100) || !near(c.B, 50) || c.A != 255 {
		t.Errorf("pixel: got=%v", c)
	}
}

func TestDownsampleTransparentKeepsColour(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	fill(src, color.NRGBA{0, 0, 0, 0})
	for y := 0; y < 8; y++ {
		for x := 0; x < 4; x++ {
			src.SetNRGBA(x, y, color.NRGBA{250, 250, 250, 255})
		}
	}
	got := Downsample(src, 4)
	// Edge pixels may be partly transparent but must not darken.
	for x := 0; x < 4; x++ {
		c := got.NRGBAAt(x, 2)
		if c.A > 16 && c.R < 240 {
			t.Errorf("x=%d: halo %v", x, c)
		}
	}
}

func TestDownsampleNoopWhenSmall(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	if Downsample(src, 8) != src {
		t.Error("expected the input back")
	}
}
