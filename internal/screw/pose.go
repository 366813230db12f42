package screw

import (
	"math"

	"screw-motion/internal/mathutil"
)

// Pose is the placement of the moving body at some progress along the path:
// the body point that started at the origin, and the body orientation.
type Pose struct {
	Position    mathutil.Vec3 `json:"position"`
	Orientation mathutil.Quat `json:"orientation"`
}

// IdentityPose is the pose at the start of every path.
func IdentityPose() Pose {
	return Pose{Orientation: mathutil.QuatIdentity()}
}

// Matrix returns the pose as a homogeneous transform.
func (p Pose) Matrix() mathutil.Mat4 {
	return mathutil.FromMat3Translation(mathutil.QuatToMat3(p.Orientation), p.Position)
}

// Apply maps a body-frame point into the world at this pose.
func (p Pose) Apply(v mathutil.Vec3) mathutil.Vec3 {
	return p.Orientation.Rotate(v).Add(p.Position)
}

// ClampProgress limits progress to [0, 1]. NaN maps to 0.
func ClampProgress(progress float64) float64 {
	if math.IsNaN(progress) {
		return 0
	}
	return clamp(progress, 0, 1)
}

// PoseAt evaluates the screw path at progress, clamped to [0, 1]. A nil
// motion yields the identity pose.
//
// For a general motion the body is rotated by θ = angle·progress about the
// axis line through AxisPoint, then advanced Displacement·progress along it.
func PoseAt(m *Motion, progress float64) Pose {
	if m == nil {
		return IdentityPose()
	}
	u := ClampProgress(progress)
	if m.PureTranslation {
		return Pose{
			Position:    m.Translation.Scale(u),
			Orientation: mathutil.QuatIdentity(),
		}
	}

	s := m.AxisDirection.Normalize()
	q := mathutil.QuatFromAxisAngle(s, m.RotationAngle*u)
	a := m.AxisPoint
	pos := a.Add(q.Rotate(a.Neg())).Add(s.Scale(m.Displacement * u))
	return Pose{Position: pos, Orientation: q}
}

// FootPoint projects position onto the screw axis line. ok is false for a
// nil motion or a degenerate axis direction.
func FootPoint(m *Motion, position mathutil.Vec3) (mathutil.Vec3, bool) {
	if m == nil || m.AxisDirection.LenSq() < zeroLenSq {
		return mathutil.Vec3{}, false
	}
	s := m.AxisDirection.Normalize()
	a := m.AxisPoint
	return a.Add(s.Scale(position.Sub(a).Dot(s))), true
}
