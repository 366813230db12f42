package scene

import (
	"math"
	"strings"
	"testing"

	"screw-motion/internal/mathutil"
	"screw-motion/internal/screw"
)

func centroid(vs []mathutil.Vec3) mathutil.Vec3 {
	var c mathutil.Vec3
	for _, v := range vs {
		c = c.Add(v)
	}
	return c.Scale(1 / float64(len(vs)))
}

func TestBuildNilMotion(t *testing.T) {
	sc := Build(nil, 0.5, DefaultOptions())
	if len(sc.Lines) != 3 {
		t.Errorf("lines: got %d want the 3 world axes", len(sc.Lines))
	}
	if len(sc.Meshes) != 1 || len(sc.Meshes[0].Verts) != 24 {
		t.Fatalf("meshes: got %d", len(sc.Meshes))
	}
	if c := centroid(sc.Meshes[0].Verts); c.Len() > 1e-12 {
		t.Errorf("body centroid: got=%v want origin", c)
	}
	if len(sc.HUD) != 1 || sc.HUD[0] != "no motion" {
		t.Errorf("hud: got=%v", sc.HUD)
	}
}

func TestBuildGeneralMotion(t *testing.T) {
	m, err := screw.Decompose(mathutil.RotZ(math.Pi/2), mathutil.Vec3{1, -1, 0.5})
	if err != nil {
		t.Fatal(err)
	}
	opts := DefaultOptions()
	opts.Samples = 10
	sc := Build(m, 1, opts)

	var dashedAxis, trajectory, ghost int
	for _, l := range sc.Lines {
		switch {
		case l.Color == ColorScrewAxis && l.Dashed:
			dashedAxis++
		case l.Color == ColorTrajectory:
			trajectory++
		case l.Color == ColorGhost:
			ghost++
		}
	}
	if dashedAxis != 1 || trajectory != 10 || ghost != 12 {
		t.Errorf("lines: axis=%d trajectory=%d ghost=%d want 1/10/12", dashedAxis, trajectory, ghost)
	}

	body := sc.Meshes[len(sc.Meshes)-1]
	if c := centroid(body.Verts); c.Sub(m.Translation).Len() > 1e-9 {
		t.Errorf("body centroid at progress 1: got=%v want=%v", c, m.Translation)
	}
	if !strings.HasPrefix(sc.HUD[0], "angle 90.00") {
		t.Errorf("hud: got=%v", sc.HUD)
	}
}

func TestBuildPureTranslationHUD(t *testing.T) {
	m, _ := screw.Decompose(mathutil.Mat3Identity(), mathutil.Vec3{0, 0, 1})
	hud := HUD(m, 3)
	if hud[2] != "pitch inf" || hud[len(hud)-1] != "progress 1.00" {
		t.Errorf("hud: got=%v", hud)
	}
}

func TestCubeFacesOutward(t *testing.T) {
	c := Cube(2)
	for i, tri := range c.Tris {
		a, b, d := c.Verts[tri[0]], c.Verts[tri[1]], c.Verts[tri[2]]
		n := b.Sub(a).Cross(d.Sub(a))
		if n.Dot(centroid([]mathutil.Vec3{a, b, d})) <= 0 {
			t.Errorf("triangle %d faces inward", i)
		}
	}
}

func TestExtentCoversTrajectory(t *testing.T) {
	m, _ := screw.Decompose(mathutil.Mat3Identity(), mathutil.Vec3{10, 0, 0})
	maxX := math.Inf(-1)
	for _, p := range Extent(m, DefaultOptions()) {
		maxX = math.Max(maxX, p[0])
	}
	if maxX < 10 {
		t.Errorf("extent max x: got=%g want >= 10", maxX)
	}
}
