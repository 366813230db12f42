package texture

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ftrvxmtrx/tga"
)

func writeImage(t *testing.T, path string, img image.Image, encode func(io.Writer, image.Image) error) string {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func writePNG(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(2, 1, color.RGBA{10, 20, 30, 255})
	return writeImage(t, filepath.Join(dir, "body.png"), img, png.Encode)
}

func TestLoadPNG(t *testing.T) {
	path := writePNG(t, t.TempDir())
	img, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Fatalf("bounds: got=%v", b)
	}
	if got := img.NRGBAAt(2, 1); got != (color.NRGBA{10, 20, 30, 255}) {
		t.Errorf("pixel: got=%v", got)
	}
}

func TestLoadTGA(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	img.SetNRGBA(1, 2, color.NRGBA{200, 100, 50, 255})
	path := writeImage(t, filepath.Join(t.TempDir(), "body.tga"), img, tga.Encode)

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if b := got.Bounds(); b.Dx() != 4 || b.Dy() != 3 {
		t.Fatalf("bounds: got=%v", b)
	}
	if c := got.NRGBAAt(1, 2); c != (color.NRGBA{200, 100, 50, 255}) {
		t.Errorf("pixel: got=%v", c)
	}
}

func TestLoadJPEG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for i := range img.Pix {
		img.Pix[i] = 128
	}
	encode := func(w io.Writer, m image.Image) error { return jpeg.Encode(w, m, nil) }
	for _, name := range []string{"body.jpg", "body.JPEG"} {
		got, err := Load(writeImage(t, filepath.Join(t.TempDir(), name), img, encode))
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		c := got.NRGBAAt(8, 8)
		if d := int(c.R) - 128; d < -4 || d > 4 || c.A != 255 {
			t.Errorf("%s: pixel got=%v want ~128", name, c)
		}
	}
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	if _, err := Load("body.ozj"); err == nil {
		t.Error("expected error for unknown extension")
	}
}

func TestCacheResolve(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir)
	c := NewCache()

	a := c.Resolve(path)
	b := c.Resolve(filepath.Join(dir, ".", "body.png"))
	if a == nil || a != b {
		t.Fatalf("expected one cached image, got %p and %p", a, b)
	}
	if c.Resolve(filepath.Join(dir, "missing.tga")) != nil {
		t.Error("missing file resolved")
	}
	if c.Resolve("") != nil {
		t.Error("empty path resolved")
	}
	if c.Len() != 2 {
		t.Errorf("len: got=%d want=2", c.Len())
	}
}
