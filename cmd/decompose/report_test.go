package main

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"screw-motion/internal/mathutil"
	"screw-motion/internal/session"
)

func state(r mathutil.Mat3, t mathutil.Vec3) session.State {
	return session.Next(session.State{}, session.Input{Rotation: &r, Translation: &t})
}

func TestWriteTextScrew(t *testing.T) {
	st := state(mathutil.RotZ(math.Pi/2), mathutil.Vec3{0, 0, 2})
	r := newReport(st)
	r.Pose = newPoseReport(st, 0.5)

	var buf bytes.Buffer
	writeText(&buf, r)
	out := buf.String()
	for _, want := range []string{
		"type             screw",
		"axis direction   0, 0, 1",
		"rotation angle   90 deg (1.5708 rad)",
		"euler XYZ        0, 0, 90 deg",
		"displacement     2",
		"pitch            1.2732",
		"position     0, 0, 1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestWriteTextPureTranslationAndErrors(t *testing.T) {
	var buf bytes.Buffer
	writeText(&buf, newReport(state(mathutil.Mat3Identity(), mathutil.Vec3{3, 0, 4})))
	if out := buf.String(); !strings.Contains(out, "pure translation") || !strings.Contains(out, "pitch            inf") {
		t.Errorf("pure translation output:\n%s", out)
	}

	buf.Reset()
	writeText(&buf, newReport(state(mathutil.Mat3Diag(-1, 1, 1), mathutil.Vec3{})))
	if out := buf.String(); !strings.Contains(out, "valid rotation   no") || !strings.Contains(out, "no motion") {
		t.Errorf("invalid output:\n%s", out)
	}

	buf.Reset()
	writeText(&buf, newReport(session.Next(session.State{}, session.Input{})))
	if out := buf.String(); strings.Contains(out, "valid rotation") || !strings.Contains(out, "no motion") {
		t.Errorf("incomplete output:\n%s", out)
	}
}

func TestReportJSON(t *testing.T) {
	r := newReport(state(mathutil.Mat3Identity(), mathutil.Vec3{}))
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if _, ok := got["error"]; ok {
		t.Errorf("identity should not report an error: %s", data)
	}
	if got["revision"].(float64) != 1 {
		t.Errorf("revision: got=%v", got["revision"])
	}
}

func TestProgressBar(t *testing.T) {
	if got := progressBar(0.5, 10); got != "[#####.....]" {
		t.Errorf("got=%q", got)
	}
	if got := progressBar(2, 4); got != "[####]" {
		t.Errorf("clamped: got=%q", got)
	}
}
