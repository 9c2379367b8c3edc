package mesh

import "github.com/Faultbox/scenegraph/pkg/math"

// face describes one side of a box: its outward normal and the in-plane axes
// that map to texture u (right) and v (up).
type face struct {
	normal, right, up math.Vec3
}

// uvRect is the texture region a face samples.
type uvRect struct {
	u0, v0, u1, v1 float32
}

var fullRect = uvRect{0, 0, 1, 1}

var (
	axisX = math.Vec3{X: 1}
	axisY = math.Vec3{Y: 1}
	axisZ = math.Vec3{Z: 1}
)

// cubeFaces are ordered front, right, top, back, left, bottom.
var cubeFaces = [6]face{
	{normal: axisZ, right: axisX, up: axisY},
	{normal: axisX, right: axisZ.Negate(), up: axisY},
	{normal: axisY, right: axisX.Negate(), up: axisZ},
	{normal: axisZ.Negate(), right: axisX.Negate(), up: axisY},
	{normal: axisX.Negate(), right: axisY.Negate(), up: axisZ},
	{normal: axisY.Negate(), right: axisX, up: axisZ},
}

// skyFaces are seen from inside the box; each cell is (column, row) in a 4x3 cross image.
var skyFaces = [6]struct {
	face
	col, row int
}{
	{face{normal: axisX.Negate(), right: axisZ.Negate(), up: axisY}, 0, 1},
	{face{normal: axisZ.Negate(), right: axisX, up: axisY}, 1, 1},
	{face{normal: axisX, right: axisZ, up: axisY}, 2, 1},
	{face{normal: axisZ, right: axisX.Negate(), up: axisY}, 3, 1},
	{face{normal: axisY, right: axisX, up: axisZ}, 1, 0},
	{face{normal: axisY.Negate(), right: axisX, up: axisZ.Negate()}, 1, 2},
}

// Cube builds an axis-aligned cube of the given edge width centered on the origin.
// Each face has its own four vertices with the full texture and counter-clockwise
// winding when seen from outside.
func Cube(width float32) *Mesh {
	m := &Mesh{
		Name:     "cube",
		Vertices: make([]Vertex, 0, 24),
		Indices:  make([]uint32, 0, 36),
	}
	h := width / 2
	for _, f := range cubeFaces {
		m.addQuad(f.normal.Scale(h), f.right, f.up, f.normal, h, fullRect)
	}
	return m
}

// SkyBox builds a cube meant to be viewed from inside: normals point inward and
// front faces wind toward the center. Texture coordinates address a horizontal
// cross layout of 4 columns by 3 rows.
func SkyBox(width float32) *Mesh {
	m := &Mesh{
		Name:     "skybox",
		Vertices: make([]Vertex, 0, 24),
		Indices:  make([]uint32, 0, 36),
	}
	h := width / 2
	for _, f := range skyFaces {
		rect := uvRect{
			u0: float32(f.col) / 4,
			u1: float32(f.col+1) / 4,
			v1: 1 - float32(f.row)/3,
			v0: 1 - float32(f.row+1)/3,
		}
		m.addQuad(f.normal.Scale(h), f.right, f.up, f.normal.Negate(), h, rect)
	}
	return m
}

// addQuad appends the corners top-left, bottom-left, top-right, bottom-right and
// two triangles sharing the left-bottom/right-top diagonal.
func (m *Mesh) addQuad(center, right, up, normal math.Vec3, h float32, uv uvRect) {
	base := uint32(len(m.Vertices))
	r := right.Scale(h)
	u := up.Scale(h)
	n := normal.Array()

	corner := func(p math.Vec3, s, t float32) Vertex {
		return Vertex{Position: p.Array(), TexCoord: [2]float32{s, t}, Normal: n}
	}
	m.Vertices = append(m.Vertices,
		corner(center.Sub(r).Add(u), uv.u0, uv.v1),
		corner(center.Sub(r).Sub(u), uv.u0, uv.v0),
		corner(center.Add(r).Add(u), uv.u1, uv.v1),
		corner(center.Add(r).Sub(u), uv.u1, uv.v0),
	)
	m.Indices = append(m.Indices,
		base, base+1, base+2,
		base+2, base+1, base+3,
	)
}
