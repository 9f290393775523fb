package models

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/taigrr/painter3d/pkg/math3d"
)

var builtins = map[string]func(size float64) *Mesh{
	"cube":        Cube,
	"tetrahedron": Tetrahedron,
	"octahedron":  Octahedron,
	"pyramid":     Pyramid,
}

// BuiltinNames lists the solids Builtin accepts, sorted.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for n := range builtins {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Builtin returns the named solid with the given size.
func Builtin(name string, size float64) (*Mesh, error) {
	fn, ok := builtins[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown model %q (have %s)", name, strings.Join(BuiltinNames(), ", "))
	}
	return fn(size), nil
}

// palette gives each face of a built-in solid its own colour.
var palette = []Material{
	{Name: "red", BaseColor: [4]float64{0.90, 0.25, 0.20, 1}, Roughness: 1},
	{Name: "orange", BaseColor: [4]float64{0.95, 0.60, 0.15, 1}, Roughness: 1},
	{Name: "yellow", BaseColor: [4]float64{0.95, 0.85, 0.25, 1}, Roughness: 1},
	{Name: "green", BaseColor: [4]float64{0.30, 0.75, 0.35, 1}, Roughness: 1},
	{Name: "blue", BaseColor: [4]float64{0.25, 0.45, 0.90, 1}, Roughness: 1},
	{Name: "violet", BaseColor: [4]float64{0.60, 0.35, 0.85, 1}, Roughness: 1},
}

func solid(name string, verts []math3d.Vec3, faces [][]int) *Mesh {
	m := NewMesh(name)
	m.Vertices = verts
	m.Materials = append([]Material(nil), palette...)
	for i, f := range faces {
		m.AddFace(i%len(palette), f...)
	}
	m.orientOutward()
	return m
}

// Cube returns an axis-aligned cube with edge length size and one quad per
// side.
func Cube(size float64) *Mesh {
	h := size / 2
	verts := []math3d.Vec3{
		math3d.V3(-h, -h, -h), math3d.V3(h, -h, -h), math3d.V3(h, h, -h), math3d.V3(-h, h, -h),
		math3d.V3(-h, -h, h), math3d.V3(h, -h, h), math3d.V3(h, h, h), math3d.V3(-h, h, h),
	}
	return solid("cube", verts, [][]int{
		{4, 5, 6, 7}, // front
		{1, 0, 3, 2}, // back
		{1, 2, 6, 5}, // right
		{0, 4, 7, 3}, // left
		{3, 7, 6, 2}, // top
		{0, 1, 5, 4}, // bottom
	})
}

// Tetrahedron returns a regular tetrahedron inscribed in a cube of edge
// size.
func Tetrahedron(size float64) *Mesh {
	h := size / 2
	verts := []math3d.Vec3{
		math3d.V3(h, h, h),
		math3d.V3(h, -h, -h),
		math3d.V3(-h, h, -h),
		math3d.V3(-h, -h, h),
	}
	return solid("tetrahedron", verts, [][]int{
		{0, 1, 2},
		{0, 3, 1},
		{0, 2, 3},
		{1, 3, 2},
	})
}

// Octahedron returns a regular octahedron whose vertices lie size/2 from
// the origin on each axis.
func Octahedron(size float64) *Mesh {
	h := size / 2
	verts := []math3d.Vec3{
		math3d.V3(h, 0, 0), math3d.V3(-h, 0, 0),
		math3d.V3(0, h, 0), math3d.V3(0, -h, 0),
		math3d.V3(0, 0, h), math3d.V3(0, 0, -h),
	}
	var faces [][]int
	for _, x := range []int{0, 1} {
		for _, y := range []int{2, 3} {
			for _, z := range []int{4, 5} {
				faces = append(faces, []int{x, y, z})
			}
		}
	}
	return solid("octahedron", verts, faces)
}

// Pyramid returns a square pyramid with base edge size and height
// size*sqrt(2)/2, centred on its bounding box.
func Pyramid(size float64) *Mesh {
	h := size / 2
	top := size * math.Sqrt2 / 4
	verts := []math3d.Vec3{
		math3d.V3(-h, -top, -h), math3d.V3(h, -top, -h),
		math3d.V3(h, -top, h), math3d.V3(-h, -top, h),
		math3d.V3(0, top, 0),
	}
	return solid("pyramid", verts, [][]int{
		{0, 1, 2, 3},
		{0, 4, 1},
		{1, 4, 2},
		{2, 4, 3},
		{3, 4, 0},
	})
}
