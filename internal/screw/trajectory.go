package screw

import (
	"math"

	"screw-motion/internal/mathutil"
)

// DefaultSamples is the number of intervals used to trace a path.
const DefaultSamples = 80

// DefaultAxisHalfLength is how far the drawn axis extends from AxisPoint.
const DefaultAxisHalfLength = 6.0

// Segment is a straight line between two points.
type Segment [2]mathutil.Vec3

// Progresses returns samples+1 evenly spaced values covering [0, 1].
func Progresses(samples int) []float64 {
	if samples < 1 {
		samples = 1
	}
	out := make([]float64, samples+1)
	for i := range out {
		out[i] = float64(i) / float64(samples)
	}
	return out
}

// IsStationary reports whether the motion leaves the origin in place, in
// which case there is no path to draw.
func IsStationary(m *Motion) bool {
	if m == nil {
		return true
	}
	if m.PureTranslation {
		return m.Translation.LenSq() < zeroLenSq
	}
	return math.Abs(m.RotationAngle) < AngleEpsilon && math.Abs(m.Displacement) < TranslationEpsilon
}

// Trajectory samples the position of the origin body point along the path.
// ok is false when the motion is nil or stationary.
func Trajectory(m *Motion, samples int) ([]mathutil.Vec3, bool) {
	if IsStationary(m) {
		return nil, false
	}
	ps := Progresses(samples)
	pts := make([]mathutil.Vec3, len(ps))
	for i, u := range ps {
		pts[i] = PoseAt(m, u).Position
	}
	return pts, true
}

// FootTrail returns, for each sample, the segment from the body position to
// its foot on the axis. Samples whose foot point is undefined are skipped.
func FootTrail(m *Motion, samples int) []Segment {
	if m == nil {
		return nil
	}
	ps := Progresses(samples)
	segs := make([]Segment, 0, len(ps))
	for _, u := range ps {
		pos := PoseAt(m, u).Position
		if foot, ok := FootPoint(m, pos); ok {
			segs = append(segs, Segment{pos, foot})
		}
	}
	return segs
}

// AxisSegment returns the axis line clipped to AxisPoint ± halfLength.
func AxisSegment(m *Motion, halfLength float64) (Segment, bool) {
	if m == nil || m.AxisDirection.LenSq() < 1e-8 {
		return Segment{}, false
	}
	s := m.AxisDirection.Normalize().Scale(halfLength)
	return Segment{m.AxisPoint.Sub(s), m.AxisPoint.Add(s)}, true
}
