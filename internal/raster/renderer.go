package raster

import (
	"image"

	"screw-motion/internal/mathutil"
	"screw-motion/internal/postprocess"
	"screw-motion/internal/scene"
	"screw-motion/internal/viewmatrix"
)

// Options control one render.
type Options struct {
	Camera      viewmatrix.Camera
	Size        int // output edge length in pixels
	Supersample int
	// Extent frames the view. Frames of one animation pass the same extent
	// so the camera does not jump; nil frames the scene itself.
	Extent  []mathutil.Vec3
	Texture *image.NRGBA
}

// Margin is the border kept free around the framed extent, in output pixels.
const Margin = 16

// Render rasterizes a scene to a size×size NRGBA image. Meshes are drawn
// first so lines and markers behind the body are hidden by it; labels and
// the HUD are drawn after downsampling so text stays crisp.
func Render(sc scene.Scene, opts Options) *image.NRGBA {
	if opts.Size <= 0 {
		opts.Size = 512
	}
	if opts.Supersample < 1 {
		opts.Supersample = 1
	}
	renderSize := opts.Size * opts.Supersample

	extent := opts.Extent
	if extent == nil {
		extent = scenePoints(sc)
	}
	pr := viewmatrix.Fit(extent, opts.Camera, renderSize, Margin*opts.Supersample)

	fb := NewFrameBuffer(renderSize, renderSize, scene.Background)
	lc := DefaultLightConfig()

	for _, m := range sc.Meshes {
		drawMesh(fb, m, pr, opts.Texture, &lc)
	}

	for _, l := range sc.Lines {
		dash := 0
		if l.Dashed {
			dash = 6 * opts.Supersample
		}
		DrawLine(fb, pr.Project(l.A), pr.Project(l.B), l.Color, l.Width*opts.Supersample, dash)
	}

	img := fb.Image()
	if opts.Supersample > 1 {
		img = postprocess.Downsample(img, opts.Size)
	}

	for _, lb := range sc.Labels {
		p := pr.Project(lb.At)
		ss := float64(opts.Supersample)
		x := int(p[0]/ss) - TextWidth(lb.Text)/2
		y := int(p[1]/ss) + 4
		DrawText(img, x, y, lb.Text, lb.Color)
	}
	DrawHUD(img, sc.HUD, scene.ColorText)

	return img
}

func drawMesh(fb *FrameBuffer, m scene.Mesh, pr viewmatrix.Projection, tex *image.NRGBA, lc *LightConfig) {
	if len(m.Verts) == 0 {
		return
	}
	screen := pr.ProjectAll(m.Verts)
	if !m.Textured || len(m.UVs) != len(m.Verts) {
		tex = nil
	}
	fallback := averageColor(tex)

	for i, tri := range m.Tris {
		a, b, c := tri[0], tri[1], tri[2]
		if a < 0 || b < 0 || c < 0 || a >= len(m.Verts) || b >= len(m.Verts) || c >= len(m.Verts) {
			continue
		}
		n := pr.Direction(m.Verts[b].Sub(m.Verts[a]).Cross(m.Verts[c].Sub(m.Verts[a])))

		var v [3]Vertex
		for k, idx := range tri {
			v[k].P = screen[idx]
			if tex != nil {
				v[k].UV = m.UVs[idx]
			}
		}
		base := fallback
		if i < len(m.Colors) {
			base = m.Colors[i]
		}
		RasterizeTriangle(fb, v, n, tex, base, lc)
	}
}

func scenePoints(sc scene.Scene) []mathutil.Vec3 {
	var pts []mathutil.Vec3
	for _, l := range sc.Lines {
		pts = append(pts, l.A, l.B)
	}
	for _, m := range sc.Meshes {
		pts = append(pts, m.Verts...)
	}
	return pts
}
