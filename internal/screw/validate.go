package screw

import (
	"math"

	"screw-motion/internal/mathutil"
)

// Validity describes how close a matrix is to a proper rotation.
type Validity struct {
	OrthogonalityError float64 `json:"orthogonality_error"`
	Determinant        float64 `json:"determinant"`
	Valid              bool    `json:"valid"`
}

// Validate checks r for orthogonality (Frobenius norm of RᵗR − I) and a
// determinant near +1. The check is tolerant so that typed decimal input
// and Euler round-trips pass, while reflections and shears do not.
func Validate(r mathutil.Mat3) Validity {
	rtr := mathutil.Mat3Mul(r.Transpose(), r)
	orthoErr := mathutil.Mat3Sub(rtr, mathutil.Mat3Identity()).FrobeniusNorm()
	det := r.Det()
	return Validity{
		OrthogonalityError: orthoErr,
		Determinant:        det,
		Valid:              orthoErr < OrthogonalityTolerance && math.Abs(det-1) < DeterminantTolerance,
	}
}
