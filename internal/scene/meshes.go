package scene

import (
	"image/color"

	"screw-motion/internal/mathutil"
	"screw-motion/internal/screw"
)

// Body face colours, one per cube face (+x, -x, +y, -y, +z, -z).
var bodyFaceColors = [6]color.NRGBA{
	{230, 90, 80, 255},
	{170, 60, 55, 255},
	{90, 200, 110, 255},
	{60, 140, 80, 255},
	{90, 130, 235, 255},
	{60, 90, 170, 255},
}

// cubeFaces lists each face as (normal axis, sign); vertices are generated
// counter-clockwise seen from outside.
var cubeFaces = [6]struct {
	axis int
	sign float64
}{{0, 1}, {0, -1}, {1, 1}, {1, -1}, {2, 1}, {2, -1}}

// Cube returns a cube of the given edge length centred at the origin with
// four vertices and UVs per face.
func Cube(size float64) Mesh {
	h := size / 2
	var m Mesh
	for f, face := range cubeFaces {
		u := (face.axis + 1) % 3
		v := (face.axis + 2) % 3
		corners := [4][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
		base := len(m.Verts)
		for _, c := range corners {
			var p mathutil.Vec3
			p[face.axis] = face.sign * h
			p[u] = c[0] * h * face.sign
			p[v] = c[1] * h
			m.Verts = append(m.Verts, p)
			m.UVs = append(m.UVs, [2]float64{(c[0] + 1) / 2, (1 - c[1]) / 2})
		}
		m.Tris = append(m.Tris, [3]int{base, base + 1, base + 2}, [3]int{base, base + 2, base + 3})
		m.Colors = append(m.Colors, bodyFaceColors[f], bodyFaceColors[f])
	}
	return m
}

// Body returns the moving body placed at pose.
func Body(pose screw.Pose, size float64, textured bool) Mesh {
	m := Cube(size)
	for i, v := range m.Verts {
		m.Verts[i] = pose.Apply(v)
	}
	m.Textured = textured
	return m
}

// Ghost returns the wireframe edges of the body at the final transform.
func Ghost(final mathutil.Mat4, size float64) []Line {
	h := size / 2
	var corners [8]mathutil.Vec3
	for i := range corners {
		c := mathutil.Vec3{-h, -h, -h}
		for k := 0; k < 3; k++ {
			if i&(1<<k) != 0 {
				c[k] = h
			}
		}
		corners[i] = final.MulPoint(c)
	}
	var lines []Line
	for i := range corners {
		for k := 0; k < 3; k++ {
			// Each edge once: from the corner with bit k clear.
			if j := i | 1<<k; j != i {
				lines = append(lines, Line{A: corners[i], B: corners[j], Color: ColorGhost, Dashed: true, Width: 1})
			}
		}
	}
	return lines
}

// Marker returns a small octahedron at p.
func Marker(p mathutil.Vec3, radius float64, c color.NRGBA) Mesh {
	m := Mesh{Verts: []mathutil.Vec3{
		p.Add(mathutil.Vec3{radius, 0, 0}), p.Add(mathutil.Vec3{-radius, 0, 0}),
		p.Add(mathutil.Vec3{0, radius, 0}), p.Add(mathutil.Vec3{0, -radius, 0}),
		p.Add(mathutil.Vec3{0, 0, radius}), p.Add(mathutil.Vec3{0, 0, -radius}),
	}}
	m.Tris = [][3]int{
		{0, 2, 4}, {2, 1, 4}, {1, 3, 4}, {3, 0, 4},
		{2, 0, 5}, {1, 2, 5}, {3, 1, 5}, {0, 3, 5},
	}
	for range m.Tris {
		m.Colors = append(m.Colors, c)
	}
	return m
}
