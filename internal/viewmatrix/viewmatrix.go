package viewmatrix

import (
	"math"

	"screw-motion/internal/mathutil"
)

// ZUpToYUp converts the Z-up world frame to the Y-up view frame: Rx(-90°).
var ZUpToYUp = mathutil.RotX(math.Pi / -2)

// DefaultFOV is the default perspective field of view in degrees.
const DefaultFOV = 50.0

// Camera orbits the world origin. Angles are in degrees.
type Camera struct {
	Yaw         float64 // about the world up axis
	Pitch       float64 // tilt; negative looks down onto the scene
	Perspective bool
	FOV         float64
}

// Matrix returns the world → view rotation: Rx(pitch) @ Ry(yaw) @ Z_UP_TO_Y_UP.
func (c Camera) Matrix() mathutil.Mat3 {
	return mathutil.Mat3Mul(
		mathutil.Mat3Mul(mathutil.RotX(mathutil.Deg2Rad(-c.Pitch)), mathutil.RotY(mathutil.Deg2Rad(-c.Yaw))),
		ZUpToYUp)
}

// Projection maps world points to screen pixels. Screen x grows right,
// y grows down, and depth grows toward the viewer.
type Projection struct {
	R      mathutil.Mat3
	Center mathutil.Vec3 // view-space centre of the fitted bounds
	Scale  float64       // pixels per world unit
	Size   int

	perspective bool
	camDist     float64
}

// Fit builds a projection that frames every point with margin pixels to
// spare on a size×size canvas.
func Fit(points []mathutil.Vec3, cam Camera, size, margin int) Projection {
	R := cam.Matrix()

	allMin := mathutil.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	allMax := mathutil.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, p := range points {
		tv := R.MulVec3(p)
		for k := 0; k < 3; k++ {
			allMin[k] = math.Min(allMin[k], tv[k])
			allMax[k] = math.Max(allMax[k], tv[k])
		}
	}
	if len(points) == 0 {
		allMin, allMax = mathutil.Vec3{-1, -1, -1}, mathutil.Vec3{1, 1, 1}
	}

	center := mathutil.Lerp(allMin, allMax, 0.5)
	span := math.Max(allMax[0]-allMin[0], allMax[1]-allMin[1])
	if span < 0.001 {
		span = 0.001
	}

	pr := Projection{
		R:      R,
		Center: center,
		Scale:  float64(size-2*margin) / span,
		Size:   size,
	}

	if cam.Perspective {
		fov := cam.FOV
		if fov == 0 {
			fov = DefaultFOV
		}
		halfFOV := mathutil.Deg2Rad(fov / 2)
		// Camera sits in front of the nearest point, far enough to see the
		// whole xy extent through the field of view.
		xyMax := math.Max(span/2, 0.001)
		pr.perspective = true
		pr.camDist = (allMax[2] - center[2]) + xyMax/math.Tan(halfFOV)

		// Near points are magnified; shrink so the nearest still fits.
		maxFactor := 1.0
		for _, v := range points {
			zOff := R.MulVec3(v)[2] - center[2]
			maxFactor = math.Max(maxFactor, pr.camDist/math.Max(pr.camDist-zOff, 0.1))
		}
		pr.Scale /= maxFactor
	}
	return pr
}

// Project returns the screen position and depth of a world point.
func (p Projection) Project(v mathutil.Vec3) mathutil.Vec3 {
	t := p.R.MulVec3(v).Sub(p.Center)
	if p.perspective {
		depth := math.Max(p.camDist-t[2], 0.1)
		factor := p.camDist / depth
		t[0] *= factor
		t[1] *= factor
	}
	half := float64(p.Size) / 2
	return mathutil.Vec3{
		t[0]*p.Scale + half,
		-t[1]*p.Scale + half,
		t[2],
	}
}

// ProjectAll projects every point.
func (p Projection) ProjectAll(vs []mathutil.Vec3) []mathutil.Vec3 {
	out := make([]mathutil.Vec3, len(vs))
	for i, v := range vs {
		out[i] = p.Project(v)
	}
	return out
}

// Direction rotates a world direction into view space without translation.
func (p Projection) Direction(d mathutil.Vec3) mathutil.Vec3 {
	return p.R.MulVec3(d)
}
