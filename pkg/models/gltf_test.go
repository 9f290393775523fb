package models

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/qmuntal/gltf"

	"github.com/taigrr/painter3d/pkg/math3d"
)

func ptr(i int) *int { return &i }

// triangleDoc builds a document with one indexed, red triangle in the
// z=0 plane, placed by a single node translated one unit along x.
func triangleDoc() *gltf.Document {
	positions := []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}
	indices := []uint16{0, 1, 2}

	data := make([]byte, 0, 48)
	for _, f := range positions {
		data = binary.LittleEndian.AppendUint32(data, math.Float32bits(f))
	}
	for _, i := range indices {
		data = binary.LittleEndian.AppendUint16(data, i)
	}

	red := [4]float64{1, 0, 0, 1}
	return &gltf.Document{
		Buffers: []*gltf.Buffer{{ByteLength: len(data), Data: data}},
		BufferViews: []*gltf.BufferView{
			{Buffer: 0, ByteOffset: 0, ByteLength: 36},
			{Buffer: 0, ByteOffset: 36, ByteLength: 6},
		},
		Accessors: []*gltf.Accessor{
			{BufferView: ptr(0), Count: 3, Type: gltf.AccessorVec3, ComponentType: gltf.ComponentFloat},
			{BufferView: ptr(1), Count: 3, Type: gltf.AccessorScalar, ComponentType: gltf.ComponentUshort},
		},
		Materials: []*gltf.Material{{
			Name:                 "red",
			PBRMetallicRoughness: &gltf.PBRMetallicRoughness{BaseColorFactor: &red},
		}},
		Meshes: []*gltf.Mesh{{
			Name: "tri",
			Primitives: []*gltf.Primitive{{
				Mode:       gltf.PrimitiveTriangles,
				Attributes: map[string]int{gltf.POSITION: 0},
				Indices:    ptr(1),
				Material:   ptr(0),
			}},
		}},
		Nodes:  []*gltf.Node{{Mesh: ptr(0), Translation: [3]float64{1, 0, 0}}},
		Scenes: []*gltf.Scene{{Nodes: []int{0}}},
		Scene:  ptr(0),
	}
}

func TestLoadGLBInvalidPath(t *testing.T) {
	_, err := LoadGLB("/nonexistent/path.glb")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestGLTFLoaderCreation(t *testing.T) {
	loader := NewGLTFLoader()
	if !loader.ApplyNodeTransforms {
		t.Error("ApplyNodeTransforms should default to true")
	}
	if !loader.Weld {
		t.Error("Weld should default to true")
	}
}

func TestDecodeTriangle(t *testing.T) {
	mesh, err := NewGLTFLoader().Decode(triangleDoc(), "tri.glb")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if mesh.VertexCount() != 3 || mesh.FaceCount() != 1 {
		t.Fatalf("got %d vertices, %d faces", mesh.VertexCount(), mesh.FaceCount())
	}
	want := []math3d.Vec3{math3d.V3(1, 0, 0), math3d.V3(2, 0, 0), math3d.V3(1, 1, 0)}
	for _, w := range want {
		found := false
		for _, v := range mesh.Vertices {
			if v.ApproxEqual(w, 1e-6) {
				found = true
			}
		}
		if !found {
			t.Errorf("missing translated vertex %v in %v", w, mesh.Vertices)
		}
	}

	// glTF winding is kept: the face still points at +z.
	if n := mesh.FaceNormal(0); !n.ApproxEqual(math3d.V3(0, 0, 1), 1e-9) {
		t.Errorf("normal = %v, want +z", n)
	}

	mat := mesh.GetMaterial(mesh.Faces[0].Material)
	if mat == nil {
		t.Fatal("face lost its material")
	}
	if mat.Name != "red" || mat.BaseColor != [4]float64{1, 0, 0, 1} {
		t.Errorf("material = %+v", *mat)
	}
}

func TestDecodeWithoutNodeTransforms(t *testing.T) {
	loader := &GLTFLoader{}
	mesh, err := loader.Decode(triangleDoc(), "tri")
	if err != nil {
		t.Fatal(err)
	}
	if mesh.BoundsMin != math3d.V3(0, 0, 0) || mesh.BoundsMax != math3d.V3(1, 1, 0) {
		t.Errorf("bounds = %v..%v", mesh.BoundsMin, mesh.BoundsMax)
	}
}

func TestDecodeNodeRotation(t *testing.T) {
	doc := triangleDoc()
	// Half a turn about Z.
	doc.Nodes[0].Translation = [3]float64{}
	doc.Nodes[0].Rotation = [4]float64{0, 0, 1, 0}

	mesh, err := NewGLTFLoader().Decode(doc, "tri")
	if err != nil {
		t.Fatal(err)
	}
	if !mesh.BoundsMin.ApproxEqual(math3d.V3(-1, -1, 0), 1e-9) {
		t.Errorf("BoundsMin = %v", mesh.BoundsMin)
	}
	if !mesh.BoundsMax.ApproxEqual(math3d.V3(0, 0, 0), 1e-9) {
		t.Errorf("BoundsMax = %v", mesh.BoundsMax)
	}
}

func TestDecodeNoGeometry(t *testing.T) {
	_, err := NewGLTFLoader().Decode(&gltf.Document{}, "empty")
	if !errors.Is(err, ErrNoGeometry) {
		t.Errorf("err = %v, want ErrNoGeometry", err)
	}
}

func TestDecodeTruncatedBuffer(t *testing.T) {
	doc := triangleDoc()
	doc.Accessors[0].Count = 10
	if _, err := NewGLTFLoader().Decode(doc, "bad"); err == nil {
		t.Error("expected error for accessor past its buffer view")
	}
}

func TestDecodeUnindexed(t *testing.T) {
	doc := triangleDoc()
	doc.Meshes[0].Primitives[0].Indices = nil
	mesh, err := (&GLTFLoader{}).Decode(doc, "tri")
	if err != nil {
		t.Fatal(err)
	}
	if mesh.FaceCount() != 1 || len(mesh.Faces[0].V) != 3 {
		t.Errorf("faces = %v", mesh.Faces)
	}
}
