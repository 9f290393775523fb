package models

import (
	"fmt"
	"image/color"
	"math"

	"github.com/taigrr/painter3d/pkg/math3d"
	"github.com/taigrr/painter3d/pkg/scene"
)

// DefaultFill is used for faces without a material when no fill is given.
var DefaultFill = scene.RGBA{R: 200, G: 200, B: 200, A: 1}

// PolygonOptions control how faces become scene polygons.
type PolygonOptions struct {
	// Fill overrides material colours when IgnoreMaterials is set, and is
	// used for faces without a material otherwise. Nil means DefaultFill.
	Fill            *scene.RGBA
	IgnoreMaterials bool

	Stroke  color.Color
	Style   scene.LineStyle
	Attribs scene.Attribs
}

// DefaultPolygonOptions returns material colours, a black hairline and
// default lighting attributes.
func DefaultPolygonOptions() PolygonOptions {
	return PolygonOptions{
		Stroke:  color.Black,
		Style:   scene.DefaultLineStyle(),
		Attribs: scene.DefaultAttribs(),
	}
}

// toEngine rotates glTF coordinates half a turn about X.
func toEngine(v math3d.Vec3) math3d.Vec3 {
	return math3d.V3(v.X, -v.Y, -v.Z)
}

// Polygons builds one polygon per face in engine coordinates. Faces with
// fewer than three vertices are skipped.
func (m *Mesh) Polygons(opts PolygonOptions) ([]*scene.Polygon, error) {
	polys := make([]*scene.Polygon, 0, len(m.Faces))
	for i, f := range m.Faces {
		if len(f.V) < 3 {
			continue
		}
		verts := make([]math3d.Vec3, len(f.V))
		for k, idx := range f.V {
			if idx < 0 || idx >= len(m.Vertices) {
				return nil, fmt.Errorf("mesh %q face %d: vertex index %d out of range", m.Name, i, idx)
			}
			verts[k] = toEngine(m.Vertices[idx])
		}

		fill := m.faceFill(f, opts)
		attrs := opts.Attribs
		p, err := scene.NewPolygon(verts, opts.Stroke, opts.Style, &fill, &attrs, fmt.Sprintf("%s/%d", m.Name, i))
		if err != nil {
			return nil, fmt.Errorf("mesh %q face %d: %w", m.Name, i, err)
		}
		polys = append(polys, p)
	}
	return polys, nil
}

func (m *Mesh) faceFill(f Face, opts PolygonOptions) scene.RGBA {
	if !opts.IgnoreMaterials {
		if mat := m.GetMaterial(f.Material); mat != nil {
			c := mat.BaseColor
			return scene.NewRGBA(c[0]*255, c[1]*255, c[2]*255, c[3])
		}
	}
	if opts.Fill != nil {
		return *opts.Fill
	}
	return DefaultFill
}

// Edges returns one segment per distinct face edge, in engine coordinates.
// A face index outside Vertices is an error.
func (m *Mesh) Edges(stroke color.Color, style scene.LineStyle) ([]*scene.Segment, error) {
	seen := make(map[[2]int]bool)
	var segs []*scene.Segment
	for i, f := range m.Faces {
		for k, a := range f.V {
			b := f.V[(k+1)%len(f.V)]
			if a < 0 || b < 0 || a >= len(m.Vertices) || b >= len(m.Vertices) {
				return nil, fmt.Errorf("mesh %q face %d: edge %d-%d out of range", m.Name, i, a, b)
			}
			key := [2]int{min(a, b), max(a, b)}
			if a == b || seen[key] {
				continue
			}
			seen[key] = true
			segs = append(segs, scene.NewSegment(
				toEngine(m.Vertices[a]), toEngine(m.Vertices[b]),
				stroke, style, fmt.Sprintf("%s/edge-%d-%d", m.Name, key[0], key[1]),
			))
		}
	}
	return segs, nil
}

// orientOutward flips faces of a convex mesh whose normal points towards
// the mesh centre.
func (m *Mesh) orientOutward() {
	m.CalculateBounds()
	c := m.Center()
	for i := range m.Faces {
		n := m.FaceNormal(i)
		if n.Dot(m.FaceCentroid(i).Sub(c)) < 0 {
			reverse(m.Faces[i].V)
		}
	}
}

func reverse(v []int) {
	for i, j := 0, len(v)-1; i < j; i, j = i+1, j-1 {
		v[i], v[j] = v[j], v[i]
	}
}

// quantize maps a coordinate to an integer grid so nearly equal vertices
// share a key.
func quantize(v math3d.Vec3) [3]int64 {
	const q = 1e6
	return [3]int64{
		int64(math.Round(v.X * q)),
		int64(math.Round(v.Y * q)),
		int64(math.Round(v.Z * q)),
	}
}

// Weld merges vertices closer than 1e-6 and drops faces that collapse
// below three distinct vertices. glTF files usually duplicate vertices per
// face; welding lets Edges find shared edges.
func (m *Mesh) Weld() {
	index := make(map[[3]int64]int)
	remap := make([]int, len(m.Vertices))
	var verts []math3d.Vec3
	for i, v := range m.Vertices {
		key := quantize(v)
		j, ok := index[key]
		if !ok {
			j = len(verts)
			index[key] = j
			verts = append(verts, v)
		}
		remap[i] = j
	}

	faces := m.Faces[:0]
	for _, f := range m.Faces {
		out := f.V[:0]
		for _, idx := range f.V {
			r := remap[idx]
			if len(out) > 0 && out[len(out)-1] == r {
				continue
			}
			out = append(out, r)
		}
		if len(out) > 1 && out[0] == out[len(out)-1] {
			out = out[:len(out)-1]
		}
		if len(out) >= 3 {
			f.V = out
			faces = append(faces, f)
		}
	}
	m.Vertices = verts
	m.Faces = faces
	m.CalculateBounds()
}
