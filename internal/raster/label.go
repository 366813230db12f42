package raster

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// hudLineHeight is the baseline spacing of HUD rows in pixels.
const hudLineHeight = 15

// DrawText draws s with its baseline starting at (x, y).
func DrawText(img *image.NRGBA, x, y int, s string, c color.Color) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// TextWidth returns the advance of s in pixels.
func TextWidth(s string) int {
	return font.MeasureString(basicfont.Face7x13, s).Ceil()
}

// DrawHUD draws rows of text in the top-left corner.
func DrawHUD(img *image.NRGBA, rows []string, c color.Color) {
	for i, r := range rows {
		DrawText(img, 8, 8+hudLineHeight*(i+1)-3, r, c)
	}
}
