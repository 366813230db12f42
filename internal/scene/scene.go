// Package scene turns a screw motion into drawable primitives: the axis,
// its markers, the sampled trajectory, the axis-foot trail and the moving
// body at a given progress.
package scene

import (
	"fmt"
	"image/color"
	"math"

	"screw-motion/internal/mathutil"
	"screw-motion/internal/screw"
)

// Palette
var (
	ColorAxisX      = color.NRGBA{220, 60, 60, 255}
	ColorAxisY      = color.NRGBA{60, 180, 80, 255}
	ColorAxisZ      = color.NRGBA{60, 110, 230, 255}
	ColorScrewAxis  = color.NRGBA{255, 150, 0, 255}
	ColorAxisPoint  = color.NRGBA{255, 200, 40, 255}
	ColorOriginLine = color.NRGBA{150, 150, 150, 255}
	ColorTrajectory = color.NRGBA{200, 40, 200, 255}
	ColorFootTrail  = color.NRGBA{120, 120, 200, 140}
	ColorFoot       = color.NRGBA{40, 200, 220, 255}
	ColorGhost      = color.NRGBA{90, 90, 110, 255}
	ColorText       = color.NRGBA{30, 30, 30, 255}
	Background      = color.NRGBA{248, 248, 250, 255}
)

// Line is a world-space segment.
type Line struct {
	A, B   mathutil.Vec3
	Color  color.NRGBA
	Dashed bool
	Width  int
}

// Mesh is a world-space triangle mesh. UVs, when present, has one entry
// per vertex.
type Mesh struct {
	Verts    []mathutil.Vec3
	UVs      [][2]float64
	Tris     [][3]int
	Colors   []color.NRGBA // per triangle
	Textured bool
}

// Label is text anchored at a world point.
type Label struct {
	At    mathutil.Vec3
	Text  string
	Color color.NRGBA
}

// Scene is everything drawn for one frame.
type Scene struct {
	Lines  []Line
	Meshes []Mesh
	Labels []Label
	// HUD lines are drawn in screen space at the top-left corner.
	HUD []string
}

// Options control what is built.
type Options struct {
	Samples        int
	AxisHalfLength float64
	BodySize       float64 // cube edge length
	Textured       bool
	ShowFinal      bool
	ShowHUD        bool
}

// DefaultOptions mirror the interactive viewer.
func DefaultOptions() Options {
	return Options{
		Samples:        screw.DefaultSamples,
		AxisHalfLength: screw.DefaultAxisHalfLength,
		BodySize:       0.6,
		ShowFinal:      true,
		ShowHUD:        true,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Samples <= 0 {
		o.Samples = d.Samples
	}
	if o.AxisHalfLength <= 0 {
		o.AxisHalfLength = d.AxisHalfLength
	}
	if o.BodySize <= 0 {
		o.BodySize = d.BodySize
	}
	return o
}

// Build assembles the scene for motion m at progress. A nil motion yields
// only the world axes and the body at the origin.
func Build(m *screw.Motion, progress float64, opts Options) Scene {
	opts = opts.withDefaults()
	var sc Scene

	sc.Lines = append(sc.Lines, worldAxes(1.5)...)
	sc.Labels = append(sc.Labels,
		Label{At: mathutil.Vec3{1.7, 0, 0}, Text: "x", Color: ColorAxisX},
		Label{At: mathutil.Vec3{0, 1.7, 0}, Text: "y", Color: ColorAxisY},
		Label{At: mathutil.Vec3{0, 0, 1.7}, Text: "z", Color: ColorAxisZ},
	)

	pose := screw.PoseAt(m, progress)

	if m != nil {
		sc.addAxis(m, opts)
		sc.addTrajectory(m, opts)
		sc.addFoot(m, pose.Position)
		if opts.ShowFinal {
			sc.Lines = append(sc.Lines, Ghost(m.Final(), opts.BodySize)...)
		}
	}

	sc.Meshes = append(sc.Meshes, Body(pose, opts.BodySize, opts.Textured))

	if opts.ShowHUD {
		sc.HUD = HUD(m, progress)
	}
	return sc
}

func worldAxes(length float64) []Line {
	o := mathutil.Vec3{}
	return []Line{
		{A: o, B: mathutil.Vec3{length, 0, 0}, Color: ColorAxisX, Width: 1},
		{A: o, B: mathutil.Vec3{0, length, 0}, Color: ColorAxisY, Width: 1},
		{A: o, B: mathutil.Vec3{0, 0, length}, Color: ColorAxisZ, Width: 1},
	}
}

func (sc *Scene) addAxis(m *screw.Motion, opts Options) {
	seg, ok := screw.AxisSegment(m, opts.AxisHalfLength)
	if !ok {
		return
	}
	sc.Lines = append(sc.Lines, Line{A: seg[0], B: seg[1], Color: ColorScrewAxis, Dashed: true, Width: 2})
	sc.Meshes = append(sc.Meshes, Marker(m.AxisPoint, 0.12, ColorAxisPoint))
	if m.AxisPoint.LenSq() > 1e-12 {
		sc.Lines = append(sc.Lines, Line{B: m.AxisPoint, Color: ColorOriginLine, Width: 1})
	}

	// Direction arrow: shaft plus two barbs in a plane containing the axis.
	s := m.AxisDirection.Normalize()
	tip := m.AxisPoint.Add(s.Scale(1.4))
	side := perpendicular(s).Scale(0.16)
	back := tip.Sub(s.Scale(0.28))
	sc.Lines = append(sc.Lines,
		Line{A: m.AxisPoint, B: tip, Color: ColorScrewAxis, Width: 3},
		Line{A: tip, B: back.Add(side), Color: ColorScrewAxis, Width: 3},
		Line{A: tip, B: back.Sub(side), Color: ColorScrewAxis, Width: 3},
	)
	sc.Labels = append(sc.Labels, Label{At: tip.Add(s.Scale(0.3)), Text: "s", Color: ColorScrewAxis})
}

func (sc *Scene) addTrajectory(m *screw.Motion, opts Options) {
	pts, ok := screw.Trajectory(m, opts.Samples)
	if !ok {
		return
	}
	for i := 1; i < len(pts); i++ {
		sc.Lines = append(sc.Lines, Line{A: pts[i-1], B: pts[i], Color: ColorTrajectory, Width: 2})
	}
	for _, seg := range screw.FootTrail(m, opts.Samples) {
		if seg[0].Sub(seg[1]).LenSq() < 1e-10 {
			continue
		}
		sc.Lines = append(sc.Lines, Line{A: seg[0], B: seg[1], Color: ColorFootTrail, Width: 1})
	}
}

func (sc *Scene) addFoot(m *screw.Motion, pos mathutil.Vec3) {
	foot, ok := screw.FootPoint(m, pos)
	if !ok {
		return
	}
	sc.Meshes = append(sc.Meshes, Marker(foot, 0.08, ColorFoot))
	if foot.Sub(pos).LenSq() >= 1e-10 {
		sc.Lines = append(sc.Lines, Line{A: pos, B: foot, Color: ColorFoot, Width: 2})
	}
}

// HUD returns the text overlay describing m at progress.
func HUD(m *screw.Motion, progress float64) []string {
	if m == nil {
		return []string{"no motion"}
	}
	lines := []string{
		fmt.Sprintf("angle %.2f deg", mathutil.Rad2Deg(m.RotationAngle)),
		fmt.Sprintf("displacement %.3f", m.Displacement),
	}
	if m.HasInfinitePitch() {
		lines = append(lines, "pitch inf")
	} else {
		lines = append(lines, fmt.Sprintf("pitch %.3f", m.Pitch))
	}
	s, a := m.AxisDirection, m.AxisPoint
	lines = append(lines,
		fmt.Sprintf("axis (%.3f, %.3f, %.3f)", s[0], s[1], s[2]),
		fmt.Sprintf("point (%.3f, %.3f, %.3f)", a[0], a[1], a[2]),
		fmt.Sprintf("progress %.2f", screw.ClampProgress(progress)),
	)
	return lines
}

// Extent returns points bounding everything Build can draw for m at any
// progress, so frames of one animation share a framing.
func Extent(m *screw.Motion, opts Options) []mathutil.Vec3 {
	opts = opts.withDefaults()
	h := opts.BodySize
	pts := []mathutil.Vec3{{-h, -h, -h}, {h, h, h}, {1.8, 0, 0}, {0, 1.8, 0}, {0, 0, 1.8}}
	if m == nil {
		return pts
	}
	if seg, ok := screw.AxisSegment(m, opts.AxisHalfLength); ok {
		pts = append(pts, seg[0], seg[1])
	}
	traj, _ := screw.Trajectory(m, opts.Samples)
	for _, p := range traj {
		pts = append(pts, p.Sub(mathutil.Vec3{h, h, h}), p.Add(mathutil.Vec3{h, h, h}))
	}
	return pts
}

// perpendicular returns a unit vector perpendicular to unit v.
func perpendicular(v mathutil.Vec3) mathutil.Vec3 {
	ref := mathutil.Vec3{0, 0, 1}
	if math.Abs(v[2]) > 0.9 {
		ref = mathutil.Vec3{1, 0, 0}
	}
	return v.Cross(ref).Normalize()
}
