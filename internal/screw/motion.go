package screw

import (
	"encoding/json"
	"fmt"
	"math"

	"screw-motion/internal/mathutil"
)

// AxisPointSource records how Motion.AxisPoint was obtained.
type AxisPointSource int

const (
	// AxisPointOrigin means no solver produced a point and the origin was
	// substituted. Also used for pure translations, whose axis is taken
	// through the origin.
	AxisPointOrigin AxisPointSource = iota
	// AxisPointLeastSquares means the constrained least-squares solve succeeded.
	AxisPointLeastSquares
	// AxisPointFromClosedForm means the half-angle tangent fallback was used.
	AxisPointFromClosedForm
)

func (s AxisPointSource) String() string {
	switch s {
	case AxisPointLeastSquares:
		return "least_squares"
	case AxisPointFromClosedForm:
		return "closed_form"
	default:
		return "origin"
	}
}

func (s AxisPointSource) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Motion is the screw decomposition of one rigid transform.
type Motion struct {
	// PureTranslation is set when the rotation angle is (near) zero; the
	// identity transform is reported as a zero pure translation.
	PureTranslation bool
	// AxisDirection is a unit vector. For the identity it is DefaultAxis.
	AxisDirection mathutil.Vec3
	// AxisPoint is the point on the axis closest to the origin.
	AxisPoint       mathutil.Vec3
	AxisPointSource AxisPointSource
	// RotationAngle is in radians, in [0, π].
	RotationAngle float64
	// Displacement is the signed translation along AxisDirection.
	Displacement float64
	// Pitch is Displacement / RotationAngle, or +Inf without rotation.
	Pitch float64

	// Rotation and Translation are the transform that was decomposed.
	Rotation    mathutil.Mat3
	Translation mathutil.Vec3
}

// Decompose validates r and, if it is a proper rotation, returns the screw
// motion equivalent to the transform x ↦ R·x + t. Either a complete Motion
// is returned or an error and nil; there is no partial result.
func Decompose(r mathutil.Mat3, t mathutil.Vec3) (*Motion, error) {
	if !t.IsFinite() {
		return nil, fmt.Errorf("%w: translation %v", ErrIncompleteInput, t)
	}
	if v := Validate(r); !v.Valid {
		return nil, fmt.Errorf("%w: orthogonality error %.3g, determinant %.3g",
			ErrInvalidRotation, v.OrthogonalityError, v.Determinant)
	}
	return assemble(r, t), nil
}

// assemble classifies the motion. The angle test comes before any axis point
// work since the point solvers are undefined for a zero rotation.
func assemble(r mathutil.Mat3, t mathutil.Vec3) *Motion {
	aa := ToAxisAngle(r)
	tLen := t.Len()
	noRotation := !hasRotation(aa.Angle)

	if noRotation && tLen < TranslationEpsilon {
		return &Motion{
			PureTranslation: true,
			AxisDirection:   DefaultAxis,
			AxisPointSource: AxisPointOrigin,
			Pitch:           math.Inf(1),
			Rotation:        r,
		}
	}

	if noRotation {
		return &Motion{
			PureTranslation: true,
			AxisDirection:   t.Normalize(),
			AxisPointSource: AxisPointOrigin,
			Displacement:    tLen,
			Pitch:           math.Inf(1),
			Rotation:        r,
			Translation:     t,
		}
	}

	s := aa.Axis.Normalize()
	m := &Motion{
		AxisDirection: s,
		RotationAngle: aa.Angle,
		Displacement:  t.Dot(s),
		Rotation:      r,
		Translation:   t,
	}
	m.Pitch = m.Displacement / m.RotationAngle

	if p, ok := SolveAxisPoint(r, t, s); ok {
		m.AxisPoint, m.AxisPointSource = p, AxisPointLeastSquares
	} else if p, ok := AxisPointClosedForm(s, aa.Angle, t); ok {
		m.AxisPoint, m.AxisPointSource = p, AxisPointFromClosedForm
	} else {
		m.AxisPointSource = AxisPointOrigin
	}
	return m
}

// hasRotation is the single angle test used for classification, so inputs
// on either side of AngleEpsilon always land in the same branch.
func hasRotation(angle float64) bool {
	return angle >= AngleEpsilon
}

// Final returns the decomposed transform as a homogeneous matrix.
func (m *Motion) Final() mathutil.Mat4 {
	if m == nil {
		return mathutil.Mat4Identity()
	}
	return mathutil.FromMat3Translation(m.Rotation, m.Translation)
}

// HasInfinitePitch reports whether the motion has no rotation.
func (m *Motion) HasInfinitePitch() bool {
	return math.IsInf(m.Pitch, 0)
}

type motionJSON struct {
	PureTranslation bool            `json:"pure_translation"`
	AxisDirection   mathutil.Vec3   `json:"axis_direction"`
	AxisPoint       mathutil.Vec3   `json:"axis_point"`
	AxisPointSource AxisPointSource `json:"axis_point_source"`
	RotationAngle   float64         `json:"rotation_angle"`
	RotationDegrees float64         `json:"rotation_degrees"`
	Displacement    float64         `json:"displacement"`
	Pitch           *float64        `json:"pitch"`
	PitchInfinite   bool            `json:"pitch_infinite"`
	Rotation        mathutil.Mat3   `json:"rotation"`
	Translation     mathutil.Vec3   `json:"translation"`
}

// MarshalJSON encodes an infinite pitch as null with pitch_infinite set,
// since JSON has no representation for infinity.
func (m *Motion) MarshalJSON() ([]byte, error) {
	out := motionJSON{
		PureTranslation: m.PureTranslation,
		AxisDirection:   m.AxisDirection,
		AxisPoint:       m.AxisPoint,
		AxisPointSource: m.AxisPointSource,
		RotationAngle:   m.RotationAngle,
		RotationDegrees: mathutil.Rad2Deg(m.RotationAngle),
		Displacement:    m.Displacement,
		PitchInfinite:   m.HasInfinitePitch(),
		Rotation:        m.Rotation,
		Translation:     m.Translation,
	}
	if !out.PitchInfinite {
		p := m.Pitch
		out.Pitch = &p
	}
	return json.Marshal(out)
}
