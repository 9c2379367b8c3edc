// Package mesh builds indexed triangle meshes: procedural cubes and sky boxes, and OBJ files.
package mesh

import (
	"errors"
	"fmt"
)

// Vertex is one interleaved vertex as uploaded to the GPU.
type Vertex struct {
	Position [3]float32
	TexCoord [2]float32
	Normal   [3]float32
}

// Vertex layout in bytes.
const (
	VertexStride   = 32
	PositionOffset = 0
	TexCoordOffset = 12
	NormalOffset   = 20
)

// ErrInvalidMesh is returned by Validate for meshes that cannot be drawn.
var ErrInvalidMesh = errors.New("invalid mesh")

// Mesh is an indexed triangle list.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Validate checks that the mesh has at least one triangle and that every index is in range.
func (m *Mesh) Validate() error {
	if m == nil {
		return fmt.Errorf("%w: nil mesh", ErrInvalidMesh)
	}
	if len(m.Indices) == 0 {
		return fmt.Errorf("%w: no triangles", ErrInvalidMesh)
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: index count %d is not a multiple of 3", ErrInvalidMesh, len(m.Indices))
	}
	n := uint32(len(m.Vertices))
	for i, idx := range m.Indices {
		if idx >= n {
			return fmt.Errorf("%w: index %d at %d out of range (%d vertices)", ErrInvalidMesh, idx, i, n)
		}
	}
	return nil
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Bounds returns the bounding box of all vertices. An empty mesh has zero bounds.
func (m *Mesh) Bounds() Bounds {
	if len(m.Vertices) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: m.Vertices[0].Position, Max: m.Vertices[0].Position}
	for _, v := range m.Vertices[1:] {
		for i := 0; i < 3; i++ {
			b.Min[i] = min(b.Min[i], v.Position[i])
			b.Max[i] = max(b.Max[i], v.Position[i])
		}
	}
	return b
}
