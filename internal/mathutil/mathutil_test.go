package mathutil

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

const tol = 1e-9

func mat3Near(a, b Mat3, eps float64) bool {
	for i := range a {
		if !scalar.EqualWithinAbs(a[i], b[i], eps) {
			return false
		}
	}
	return true
}

func vec3Near(a, b Vec3, eps float64) bool {
	for i := range a {
		if !scalar.EqualWithinAbs(a[i], b[i], eps) {
			return false
		}
	}
	return true
}

func TestMat3Inverse(t *testing.T) {
	m := Mat3{2, 0, 1, 1, 3, 0, 0, 1, 4}
	inv, ok := m.Inverse()
	if !ok {
		t.Fatalf("inverse of %v reported singular", m)
	}
	if got := Mat3Mul(m, inv); !mat3Near(got, Mat3Identity(), tol) {
		t.Errorf("m × inv(m): got=%v want=identity", got)
	}

	singular := Mat3{1, 2, 3, 2, 4, 6, 0, 1, 1}
	if _, ok := singular.Inverse(); ok {
		t.Errorf("rank-deficient matrix reported invertible, det=%g", singular.Det())
	}

	tiny := Mat3Diag(1e-4, 1e-4, 1e-4) // det 1e-12
	if _, ok := tiny.Inverse(); ok {
		t.Errorf("det below %g reported invertible", SingularEpsilon)
	}
}

func TestMat3TransposeDet(t *testing.T) {
	r := RotAxis(Vec3{1, 2, 3}, 0.7)
	if got := Mat3Mul(r.Transpose(), r); !mat3Near(got, Mat3Identity(), tol) {
		t.Errorf("RᵗR: got=%v", got)
	}
	if d := r.Det(); !scalar.EqualWithinAbs(d, 1, tol) {
		t.Errorf("det(R): got=%g want=1", d)
	}
	if d := Mat3Diag(1, 1, -1).Det(); d != -1 {
		t.Errorf("det(reflection): got=%g want=-1", d)
	}
}

func TestQuatMat3RoundTrip(t *testing.T) {
	cases := []struct {
		axis  Vec3
		angle float64
	}{
		{Vec3{0, 0, 1}, math.Pi / 2},
		{Vec3{1, 0, 0}, 3},
		{Vec3{0, 1, 0}, math.Pi},
		{Vec3{1, -1, 2}, 0.25},
		{Vec3{-3, 1, 0.5}, 2.5},
	}
	for _, c := range cases {
		q := QuatFromAxisAngle(c.axis, c.angle)
		m := QuatToMat3(q)
		back := QuatToMat3(QuatFromMat3(m))
		if !mat3Near(m, back, 1e-9) {
			t.Errorf("axis=%v angle=%g: got=%v want=%v", c.axis, c.angle, back, m)
		}
		v := Vec3{0.3, -1.2, 2}
		if got, want := q.Rotate(v), m.MulVec3(v); !vec3Near(got, want, 1e-9) {
			t.Errorf("rotate: got=%v want=%v", got, want)
		}
	}
}

func TestEulerRoundTrip(t *testing.T) {
	x, y, z := Deg2Rad(20), Deg2Rad(-35), Deg2Rad(60)
	for _, order := range EulerOrders {
		m, err := EulerToMat3(order, x, y, z)
		if err != nil {
			t.Fatalf("%s: %v", order, err)
		}
		gx, gy, gz, err := Mat3ToEuler(order, m)
		if err != nil {
			t.Fatalf("%s: %v", order, err)
		}
		back, _ := EulerToMat3(order, gx, gy, gz)
		if !mat3Near(m, back, 1e-9) {
			t.Errorf("%s: got=(%g,%g,%g) want=(%g,%g,%g)", order, gx, gy, gz, x, y, z)
		}
	}
}

func TestEulerXYZComposition(t *testing.T) {
	m, err := EulerToMat3(OrderXYZ, 0.1, 0.2, 0.3)
	if err != nil {
		t.Fatal(err)
	}
	want := Mat3Mul(Mat3Mul(RotX(0.1), RotY(0.2)), RotZ(0.3))
	if !mat3Near(m, want, tol) {
		t.Errorf("XYZ: got=%v want=%v", m, want)
	}
}

func TestParseEulerOrder(t *testing.T) {
	if o, err := ParseEulerOrder(" zyx "); err != nil || o != OrderZYX {
		t.Errorf("zyx: got=%q,%v", o, err)
	}
	if o, err := ParseEulerOrder(""); err != nil || o != OrderXYZ {
		t.Errorf("empty: got=%q,%v", o, err)
	}
	if _, err := ParseEulerOrder("XXY"); !errors.Is(err, ErrEulerOrder) {
		t.Errorf("XXY: got err=%v want ErrEulerOrder", err)
	}
}

func TestMat4FromMat3Translation(t *testing.T) {
	r := RotZ(math.Pi / 2)
	tr := Vec3{1, 2, 3}
	m := FromMat3Translation(r, tr)
	if got := m.MulPoint(Vec3{1, 0, 0}); !vec3Near(got, Vec3{1, 3, 3}, tol) {
		t.Errorf("MulPoint: got=%v", got)
	}
	if got := Mat4Identity().MulPoint(tr); got != tr {
		t.Errorf("identity MulPoint: got=%v", got)
	}
}
