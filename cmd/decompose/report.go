package main

import (
	"fmt"
	"io"
	"strings"

	"screw-motion/internal/input"
	"screw-motion/internal/mathutil"
	"screw-motion/internal/screw"
	"screw-motion/internal/session"
)

const decimals = 4

// Report is the JSON form of one revision plus the optional extras.
type Report struct {
	Revision   int             `json:"revision"`
	Error      string          `json:"error,omitempty"`
	Validity   *screw.Validity `json:"validity,omitempty"`
	Motion     *screw.Motion   `json:"motion"`
	Pose       *PoseReport     `json:"pose,omitempty"`
	Trajectory []mathutil.Vec3 `json:"trajectory,omitempty"`
}

// PoseReport is the body pose at one progress value.
type PoseReport struct {
	Progress    float64        `json:"progress"`
	Position    mathutil.Vec3  `json:"position"`
	Orientation mathutil.Quat  `json:"orientation"`
	FootPoint   *mathutil.Vec3 `json:"foot_point,omitempty"`
}

func newPoseReport(st session.State, progress float64) *PoseReport {
	p := st.Pose(progress)
	r := &PoseReport{
		Progress:    screw.ClampProgress(progress),
		Position:    p.Position,
		Orientation: p.Orientation,
	}
	if foot, ok := screw.FootPoint(st.Motion, p.Position); ok {
		r.FootPoint = &foot
	}
	return r
}

func newReport(st session.State) Report {
	r := Report{Revision: st.Revision, Motion: st.Motion}
	if st.Err != nil {
		r.Error = st.Err.Error()
	}
	if st.Input.Rotation != nil {
		v := st.Validity
		r.Validity = &v
	}
	return r
}

func vec(v mathutil.Vec3) string {
	return input.FormatValues(v[:], decimals)
}

// eulerDegrees wraps each angle into [-180, 180) before formatting.
func eulerDegrees(x, y, z float64) string {
	vs := []float64{x, y, z}
	for i, v := range vs {
		vs[i] = input.WrapAngleDegrees(mathutil.Rad2Deg(v))
	}
	return input.FormatValues(vs, decimals)
}

func kind(m *screw.Motion) string {
	switch {
	case m.PureTranslation && m.Displacement == 0:
		return "identity"
	case m.PureTranslation:
		return "pure translation"
	default:
		return "screw"
	}
}

// writeText prints a revision the way the interactive panel lays it out.
func writeText(w io.Writer, r Report) {
	fmt.Fprintf(w, "revision %d\n", r.Revision)
	if r.Validity != nil {
		valid := "yes"
		if !r.Validity.Valid {
			valid = "no"
		}
		fmt.Fprintf(w, "  valid rotation   %s (orthogonality error %s, det %s)\n", valid,
			input.FormatValue(r.Validity.OrthogonalityError, 6), input.FormatValue(r.Validity.Determinant, 6))
	}
	if r.Error != "" {
		fmt.Fprintf(w, "  no motion        %s\n", r.Error)
		return
	}

	m := r.Motion
	fmt.Fprintf(w, "  type             %s\n", kind(m))
	fmt.Fprintf(w, "  axis direction   %s\n", vec(m.AxisDirection))
	fmt.Fprintf(w, "  axis point       %s (%s)\n", vec(m.AxisPoint), m.AxisPointSource)
	fmt.Fprintf(w, "  rotation angle   %s deg (%s rad)\n",
		input.FormatValue(mathutil.Rad2Deg(m.RotationAngle), decimals), input.FormatValue(m.RotationAngle, decimals))
	if x, y, z, err := mathutil.Mat3ToEuler(mathutil.OrderXYZ, m.Rotation); err == nil {
		fmt.Fprintf(w, "  euler XYZ        %s deg\n", eulerDegrees(x, y, z))
	}
	fmt.Fprintf(w, "  displacement     %s\n", input.FormatValue(m.Displacement, decimals))
	if m.HasInfinitePitch() {
		fmt.Fprintf(w, "  pitch            inf\n")
	} else {
		fmt.Fprintf(w, "  pitch            %s\n", input.FormatValue(m.Pitch, decimals))
	}

	if p := r.Pose; p != nil {
		fmt.Fprintf(w, "  pose at %s\n", input.FormatValue(p.Progress, decimals))
		writePose(w, p, "    ")
	}
	if len(r.Trajectory) > 0 {
		fmt.Fprintf(w, "  trajectory (%d points)\n", len(r.Trajectory))
		for _, pt := range r.Trajectory {
			fmt.Fprintf(w, "    %s\n", vec(pt))
		}
	}
}

func writePose(w io.Writer, p *PoseReport, indent string) {
	q := p.Orientation
	fmt.Fprintf(w, "%sposition     %s\n", indent, vec(p.Position))
	fmt.Fprintf(w, "%sorientation  %s\n", indent, input.FormatValues(q[:], decimals))
	if p.FootPoint != nil {
		fmt.Fprintf(w, "%sfoot point   %s\n", indent, vec(*p.FootPoint))
	}
}

// progressBar renders progress as a fixed-width bar for playback output.
func progressBar(progress float64, width int) string {
	n := int(screw.ClampProgress(progress)*float64(width) + 0.5)
	return "[" + strings.Repeat("#", n) + strings.Repeat(".", width-n) + "]"
}
