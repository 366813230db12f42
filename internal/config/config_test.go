package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"screw-motion/internal/input"
	"screw-motion/internal/mathutil"
)

const presetDoc = `{
  "presets": {
    "lift": {"rotation": [0,-1,0, 1,0,0, 0,0,1], "translation": [0,0,2], "description": "quarter turn"},
    "euler": {"euler_degrees": [0,0,90], "euler_order": "zyx", "translation": [1,2,3]},
    "slide": {"translation": [1,2,3]}
  }
}`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParsePresets(t *testing.T) {
	ps, err := ParsePresets([]byte(presetDoc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := PresetNames(ps); len(got) != 3 || got[0] != "euler" || got[2] != "slide" {
		t.Errorf("names: got=%v", got)
	}
	if p := ps["lift"]; len(p.Rotation) != 9 || p.Description != "quarter turn" || p.EulerDegrees != nil {
		t.Errorf("lift: got=%+v", p)
	}
	if p := ps["slide"]; p.Rotation != nil || len(p.Translation) != 3 {
		t.Errorf("slide: got=%+v", p)
	}

	typo, err := ParsePresets([]byte(`{"presets": {
		"typo": {"rotation": [1, 0, 0, 0, "abc", 0, 0, 0, 1], "translation": "up"}
	}}`))
	if err != nil {
		t.Fatal(err)
	}
	var c Config
	c.UsePreset(typo["typo"])
	if rot, tr, err := c.Transform(); err != nil || rot != nil || tr != nil {
		t.Errorf("non-numeric preset: got rot=%v tr=%v err=%v want incomplete", rot, tr, err)
	}

	if _, err := ParsePresets([]byte(`{"presets": [`)); err == nil {
		t.Error("invalid JSON accepted")
	}
	if _, err := ParsePresets([]byte(`{"other": {}}`)); err == nil {
		t.Error("missing presets object accepted")
	}
}

func TestResolveDefaults(t *testing.T) {
	var c Config
	if err := c.Resolve(Flags{}); err != nil {
		t.Fatal(err)
	}
	if c.Samples != 80 || c.Duration != 3 || c.FPS != 30 || c.RenderSize != 512 || c.Listen != ":8080" || c.Workers <= 0 {
		t.Errorf("defaults: got=%+v", c)
	}
	rot, tr, err := c.Transform()
	if err != nil || rot == nil || tr == nil {
		t.Fatalf("transform: %v %v %v", rot, tr, err)
	}
	if *rot != mathutil.Mat3Identity() || *tr != (mathutil.Vec3{}) {
		t.Errorf("default transform: got=%v %v", *rot, *tr)
	}
}

func TestLoadAndFlagsOverride(t *testing.T) {
	path := writeFile(t, "config.json", `{"translation": [1,1,1], "samples": 20, "euler_degrees": [0,0,45]}`)
	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Resolve(Flags{Translation: []float64{0, 0, 5}, Samples: 40}); err != nil {
		t.Fatal(err)
	}
	if c.Samples != 40 {
		t.Errorf("samples: got=%d want=40", c.Samples)
	}
	rot, tr, err := c.Transform()
	if err != nil {
		t.Fatal(err)
	}
	if *tr != (mathutil.Vec3{0, 0, 5}) {
		t.Errorf("translation: got=%v", *tr)
	}
	want := mathutil.RotZ(mathutil.Deg2Rad(45))
	for i := range want {
		if math.Abs(rot[i]-want[i]) > 1e-12 {
			t.Fatalf("euler rotation: got=%v want=%v", *rot, want)
		}
	}

	// An explicit rotation flag replaces Euler angles from the file.
	c2, _ := Load(path)
	if err := c2.Resolve(Flags{Rotation: []float64{1, 0, 0, 0, 1, 0, 0, 0, 1}}); err != nil {
		t.Fatal(err)
	}
	if rot, _, _ := c2.Transform(); *rot != mathutil.Mat3Identity() {
		t.Errorf("rotation flag: got=%v", *rot)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing file accepted")
	}
	if _, err := Load(writeFile(t, "bad.json", "{")); err == nil {
		t.Error("bad JSON accepted")
	}
}

func TestResolvePreset(t *testing.T) {
	presets := writeFile(t, "presets.json", presetDoc)

	c := Config{PresetFile: presets}
	if err := c.Resolve(Flags{Preset: "euler"}); err != nil {
		t.Fatal(err)
	}
	rot, tr, err := c.Transform()
	if err != nil {
		t.Fatal(err)
	}
	if *tr != (mathutil.Vec3{1, 2, 3}) {
		t.Errorf("translation: got=%v", *tr)
	}
	want := mathutil.RotZ(math.Pi / 2)
	for i := range want {
		if math.Abs(rot[i]-want[i]) > 1e-12 {
			t.Fatalf("rotation: got=%v want=%v", *rot, want)
		}
	}

	// Flags win over preset fields.
	c = Config{PresetFile: presets}
	if err := c.Resolve(Flags{Preset: "lift", Translation: []float64{9, 9, 9}}); err != nil {
		t.Fatal(err)
	}
	if _, tr, _ := c.Transform(); *tr != (mathutil.Vec3{9, 9, 9}) {
		t.Errorf("translation override: got=%v", *tr)
	}

	c = Config{PresetFile: presets}
	if err := c.Resolve(Flags{Preset: "nope"}); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("unknown preset: err=%v", err)
	}
}

func TestTransformIncomplete(t *testing.T) {
	c := Config{Rotation: []float64{1, 0, 0}, Translation: []float64{1, 2}}
	rot, tr, err := c.Transform()
	if err != nil {
		t.Fatal(err)
	}
	if rot != nil || tr != nil {
		t.Errorf("malformed input: got rot=%v tr=%v want nil", rot, tr)
	}

	c = Config{EulerDegrees: []float64{1, 2, 3}, EulerOrder: "ABC"}
	if _, _, err := c.Transform(); !errors.Is(err, mathutil.ErrEulerOrder) {
		t.Errorf("bad order: err=%v", err)
	}
}

func TestParseList(t *testing.T) {
	vs, err := ParseList("", 3)
	if err != nil || vs != nil {
		t.Errorf("empty: got=%v err=%v", vs, err)
	}
	vs, err = ParseList("1, 2;3", 3)
	if err != nil || len(vs) != 3 || vs[2] != 3 {
		t.Errorf("valid: got=%v err=%v", vs, err)
	}
	vs, err = ParseList("1, x, 3", 3)
	if !errors.Is(err, input.ErrNotNumber) || vs == nil || len(vs) != 0 {
		t.Errorf("malformed: got=%v err=%v", vs, err)
	}

	c := Config{Translation: []float64{1, 2, 3}}
	_ = c.Resolve(Flags{Translation: vs})
	if _, tr, _ := c.Transform(); tr != nil {
		t.Errorf("malformed flag should clear the file value, got=%v", *tr)
	}
}
