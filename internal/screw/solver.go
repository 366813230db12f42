package screw

import (
	"math"

	"screw-motion/internal/mathutil"
)

// SolveAxisPoint finds the point p on the screw axis closest to the origin,
// given the rotation r, the translation t and the unit axis direction s.
//
// p satisfies (I − R)·p = t⊥ (the part of t perpendicular to s) and s·p = 0.
// The four equations are solved in the least-squares sense through the normal
// equations (AᵗA)·p = Aᵗb. ok is false when AᵗA is singular, which happens
// only for a (near) zero rotation.
func SolveAxisPoint(r mathutil.Mat3, t, s mathutil.Vec3) (p mathutil.Vec3, ok bool) {
	perp := t.RejectFrom(s)
	if perp.LenSq() < zeroLenSq {
		// The axis already passes through the origin.
		return mathutil.Vec3{}, true
	}

	rows := [4]mathutil.Vec3{
		{1 - r[0], -r[1], -r[2]},
		{-r[3], 1 - r[4], -r[5]},
		{-r[6], -r[7], 1 - r[8]},
		s,
	}
	rhs := [4]float64{perp[0], perp[1], perp[2], 0}

	var ata mathutil.Mat3
	var atb mathutil.Vec3
	for k, row := range rows {
		for i := 0; i < 3; i++ {
			atb[i] += row[i] * rhs[k]
			for j := 0; j < 3; j++ {
				ata[i*3+j] += row[i] * row[j]
			}
		}
	}

	inv, ok := ata.Inverse()
	if !ok {
		return mathutil.Vec3{}, false
	}
	return inv.MulVec3(atb).RejectFrom(s), true
}

// AxisPointClosedForm computes the axis point from the half-angle tangent
// (Rodrigues) vector b = s·tan(θ/2):
//
//	c = (b×t − b×(b×t)) / (2|b|²)
//
// projected onto the plane normal to s. ok is false when tan(θ/2) is not
// finite or b is (near) zero; p is then the origin.
func AxisPointClosedForm(s mathutil.Vec3, angle float64, t mathutil.Vec3) (p mathutil.Vec3, ok bool) {
	tanHalf := math.Tan(angle / 2)
	b := s.Scale(tanHalf)
	bb := b.Dot(b)
	if math.IsNaN(tanHalf) || math.IsInf(tanHalf, 0) || bb < zeroLenSq {
		return mathutil.Vec3{}, false
	}
	bt := b.Cross(t)
	c := bt.Sub(b.Cross(bt)).Scale(1 / (2 * bb))
	return c.RejectFrom(s), true
}
