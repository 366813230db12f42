// Package screw decomposes a rigid-body displacement (R, t) into its
// equivalent screw motion and samples poses along the screw path.
//
// By Chasles' theorem every proper rigid transform is a rotation about a
// fixed axis combined with a translation along that same axis. Decompose
// recovers the axis direction, the axis point closest to the origin, the
// rotation angle, the signed displacement along the axis and the pitch.
// PoseAt then evaluates the path from the identity (progress 0) to the full
// transform (progress 1).
//
// Every function is pure: inputs are values, results are new values, and a
// *Motion is never modified after Decompose returns.
package screw

import "errors"

// Tolerances used by the decomposition.
const (
	// OrthogonalityTolerance bounds ‖RᵗR − I‖ for a valid rotation.
	OrthogonalityTolerance = 1e-2
	// DeterminantTolerance bounds |det(R) − 1| for a valid rotation.
	DeterminantTolerance = 1e-2
	// AngleEpsilon is the rotation angle below which a motion has no rotation.
	AngleEpsilon = 1e-6
	// TranslationEpsilon is the translation length below which t is zero.
	TranslationEpsilon = 1e-6
	// halfAngleSinEpsilon is the sin(θ/2) below which the axis is undefined.
	halfAngleSinEpsilon = 1e-6
	// zeroLenSq is the squared length below which a vector is treated as zero.
	zeroLenSq = 1e-12
)

// Err* are the errors exported by this package.
var (
	ErrInvalidRotation = errors.New("rotation matrix is not a proper rotation")
	ErrIncompleteInput = errors.New("rotation or translation input is incomplete")
)
