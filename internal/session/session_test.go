package session

import (
	"errors"
	"math"
	"testing"

	"screw-motion/internal/mathutil"
	"screw-motion/internal/screw"
)

func ptrM(m mathutil.Mat3) *mathutil.Mat3 { return &m }
func ptrV(v mathutil.Vec3) *mathutil.Vec3 { return &v }

func TestNextRevisions(t *testing.T) {
	s0 := State{}
	s1 := Next(s0, Input{Rotation: ptrM(mathutil.RotZ(math.Pi / 2)), Translation: ptrV(mathutil.Vec3{0, 0, 2})})
	if s1.Revision != 1 || s1.Cleared() || s1.Err != nil {
		t.Fatalf("rev 1: got=%+v", s1)
	}

	// A reflection clears the motion but keeps the validity report.
	s2 := Next(s1, Input{Rotation: ptrM(mathutil.Mat3Diag(1, 1, -1)), Translation: ptrV(mathutil.Vec3{})})
	if !s2.Cleared() || !s2.Invalid() || s2.Validity.Valid || s2.Validity.Determinant != -1 {
		t.Errorf("rev 2: got=%+v", s2)
	}
	if s1.Motion == nil {
		t.Error("earlier revision mutated")
	}

	// Missing translation is incomplete input.
	s3 := Next(s2, Input{Rotation: ptrM(mathutil.Mat3Identity())})
	if !s3.Cleared() || !errors.Is(s3.Err, screw.ErrIncompleteInput) || s3.Revision != 3 {
		t.Errorf("rev 3: got=%+v", s3)
	}
	if p := s3.Pose(0.7); p != screw.IdentityPose() {
		t.Errorf("cleared pose: got=%+v", p)
	}

	s4 := Next(s3, Input{Rotation: ptrM(mathutil.Mat3Identity()), Translation: ptrV(mathutil.Vec3{1, 2, 3})})
	if s4.Cleared() || !s4.Motion.PureTranslation {
		t.Errorf("rev 4: got=%+v", s4)
	}
	if p := s4.Pose(1); p.Position != (mathutil.Vec3{1, 2, 3}) {
		t.Errorf("rev 4 pose: got=%v", p.Position)
	}
}
