package screw

import (
	"math"

	"screw-motion/internal/mathutil"
)

// AxisAngle is a unit rotation axis and an angle in [0, π].
type AxisAngle struct {
	Axis  mathutil.Vec3
	Angle float64
}

// DefaultAxis stands in for the axis of a zero rotation, which is undefined.
var DefaultAxis = mathutil.Vec3{1, 0, 0}

// ToAxisAngle converts a rotation matrix to axis-angle form through its unit
// quaternion. r should already have passed Validate; the result for other
// matrices is unspecified.
func ToAxisAngle(r mathutil.Mat3) AxisAngle {
	q := mathutil.QuatFromMat3(r).Normalize()
	// q and -q are the same rotation; w >= 0 keeps the angle in [0, π].
	if q[3] < 0 {
		q = q.Neg()
	}
	w := clamp(q[3], -1, 1)
	angle := 2 * math.Acos(w)
	sinHalf := math.Sqrt(math.Max(0, 1-w*w))
	if sinHalf < halfAngleSinEpsilon {
		return AxisAngle{Axis: DefaultAxis, Angle: angle}
	}
	return AxisAngle{Axis: q.Vector().Scale(1 / sinHalf).Normalize(), Angle: angle}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
