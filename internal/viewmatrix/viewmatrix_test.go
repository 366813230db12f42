package viewmatrix

import (
	"math"
	"testing"

	"screw-motion/internal/mathutil"
)

func TestCameraMatrixFront(t *testing.T) {
	// With no yaw or pitch the world Z axis points up the screen.
	R := Camera{}.Matrix()
	up := R.MulVec3(mathutil.Vec3{0, 0, 1})
	if math.Abs(up[1]-1) > 1e-12 || math.Abs(up[0]) > 1e-12 {
		t.Errorf("world up in view: got=%v want=(0,1,0)", up)
	}
	if d := R.Det(); math.Abs(d-1) > 1e-12 {
		t.Errorf("view matrix det: got=%g", d)
	}
}

func TestFitFramesPoints(t *testing.T) {
	pts := []mathutil.Vec3{{-2, 0, -1}, {2, 0, 3}, {0, 1, 0}}
	for _, cam := range []Camera{{Yaw: 35, Pitch: -25}, {Yaw: -60, Pitch: 10, Perspective: true}} {
		pr := Fit(pts, cam, 200, 10)
		for _, p := range pts {
			s := pr.Project(p)
			if s[0] < 0 || s[0] > 200 || s[1] < 0 || s[1] > 200 {
				t.Errorf("cam=%+v: %v projected off-canvas at %v", cam, p, s)
			}
		}
	}
}

func TestProjectUpIsScreenUp(t *testing.T) {
	pr := Fit([]mathutil.Vec3{{0, 0, -1}, {0, 0, 1}}, Camera{}, 100, 0)
	lo, hi := pr.Project(mathutil.Vec3{0, 0, -1}), pr.Project(mathutil.Vec3{0, 0, 1})
	if hi[1] >= lo[1] {
		t.Errorf("higher world point drawn lower: lo=%v hi=%v", lo, hi)
	}
}
