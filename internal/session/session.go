// Package session tracks the decomposition as a sequence of immutable
// revisions. Every edit to the inputs produces a new State; nothing is
// updated in place, so a State handed to a renderer never changes under it.
package session

import (
	"errors"

	"screw-motion/internal/mathutil"
	"screw-motion/internal/screw"
)

// Input is one edit of the transform. A nil field means the value is
// missing or could not be parsed.
type Input struct {
	Rotation    *mathutil.Mat3
	Translation *mathutil.Vec3
}

// State is one revision of the decomposition.
type State struct {
	Revision int
	Input    Input
	// Validity is meaningful only when Input.Rotation is set.
	Validity screw.Validity
	// Motion is nil whenever the inputs are incomplete or invalid.
	Motion *screw.Motion
	Err    error
}

// Cleared reports whether this revision has no motion to show.
func (s State) Cleared() bool {
	return s.Motion == nil
}

// Next computes the revision following prev for the edited input.
func Next(prev State, in Input) State {
	next := State{Revision: prev.Revision + 1, Input: in}
	if in.Rotation == nil || in.Translation == nil {
		next.Err = screw.ErrIncompleteInput
		return next
	}
	next.Validity = screw.Validate(*in.Rotation)
	if !next.Validity.Valid {
		next.Err = screw.ErrInvalidRotation
		return next
	}
	m, err := screw.Decompose(*in.Rotation, *in.Translation)
	if err != nil {
		next.Err = err
		return next
	}
	next.Motion = m
	return next
}

// Pose evaluates the revision's motion at progress. A cleared revision
// yields the identity pose.
func (s State) Pose(progress float64) screw.Pose {
	return screw.PoseAt(s.Motion, progress)
}

// Invalid reports whether the revision failed rotation validation.
func (s State) Invalid() bool {
	return errors.Is(s.Err, screw.ErrInvalidRotation)
}
