// Package models loads and builds polygon meshes and turns them into
// painter3d scene primitives.
//
// Mesh coordinates follow the glTF convention: y points up, the viewer sits
// on the +z side and front faces wind counter-clockwise. Polygons and Edges
// convert to the engine convention (y down, viewer on the -z side) by
// rotating half a turn about X, which keeps the winding valid.
package models

import (
	"math"

	"github.com/taigrr/painter3d/pkg/math3d"
)

// Mesh represents a 3D mesh with vertices, faces, and materials.
type Mesh struct {
	Name      string
	Vertices  []math3d.Vec3
	Faces     []Face
	Materials []Material

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// Face is a planar polygon of three or more vertex indices.
type Face struct {
	V        []int // indices into Mesh.Vertices
	Material int   // index into Mesh.Materials, -1 for none
}

// Material is the subset of a glTF PBR material the engine uses.
type Material struct {
	Name      string
	BaseColor [4]float64 // RGBA in 0-1 range
	Metallic  float64
	Roughness float64
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// AddFace appends a face over the given vertex indices.
func (m *Mesh) AddFace(material int, v ...int) {
	m.Faces = append(m.Faces, Face{V: v, Material: material})
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		m.BoundsMin, m.BoundsMax = math3d.Zero3(), math3d.Zero3()
		return
	}
	m.BoundsMin = m.Vertices[0]
	m.BoundsMax = m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v)
		m.BoundsMax = m.BoundsMax.Max(v)
	}
}

// Center returns the centre of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the extent of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// FaceCount returns the number of faces.
func (m *Mesh) FaceCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// FaceNormal returns the unit normal of face i by Newell's method, or the
// zero vector for a degenerate face.
func (m *Mesh) FaceNormal(i int) math3d.Vec3 {
	f := m.Faces[i]
	var n math3d.Vec3
	for k, idx := range f.V {
		a := m.Vertices[idx]
		b := m.Vertices[f.V[(k+1)%len(f.V)]]
		n.X += (a.Y - b.Y) * (a.Z + b.Z)
		n.Y += (a.Z - b.Z) * (a.X + b.X)
		n.Z += (a.X - b.X) * (a.Y + b.Y)
	}
	return n.Normalize()
}

// FaceCentroid returns the mean of face i's vertices.
func (m *Mesh) FaceCentroid(i int) math3d.Vec3 {
	var sum math3d.Vec3
	for _, idx := range m.Faces[i].V {
		sum = sum.Add(m.Vertices[idx])
	}
	return sum.Div(float64(len(m.Faces[i].V)))
}

// Transform applies a transformation matrix to all vertices.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Vertices {
		m.Vertices[i] = mat.MulVec3(m.Vertices[i])
	}
	m.CalculateBounds()
}

// Normalize centres the mesh on the origin and scales it uniformly so its
// largest dimension equals size. Empty or flat-to-a-point meshes are only
// centred.
func (m *Mesh) Normalize(size float64) {
	m.CalculateBounds()
	ext := m.Size()
	largest := math.Max(ext.X, math.Max(ext.Y, ext.Z))
	mat := math3d.Translate(m.Center().Negate())
	if largest > 0 {
		mat = math3d.ScaleUniform(size / largest).Mul(mat)
	}
	m.Transform(mat)
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Vertices:  make([]math3d.Vec3, len(m.Vertices)),
		Faces:     make([]Face, len(m.Faces)),
		Materials: make([]Material, len(m.Materials)),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	copy(clone.Vertices, m.Vertices)
	copy(clone.Materials, m.Materials)
	for i, f := range m.Faces {
		clone.Faces[i] = Face{V: append([]int(nil), f.V...), Material: f.Material}
	}
	return clone
}

// GetMaterial returns the material at index i.
// Returns nil if index is out of bounds or -1.
func (m *Mesh) GetMaterial(i int) *Material {
	if i < 0 || i >= len(m.Materials) {
		return nil
	}
	return &m.Materials[i]
}

// MaterialCount returns the number of materials.
func (m *Mesh) MaterialCount() int {
	return len(m.Materials)
}
