package stage

import (
	"errors"
	"fmt"
	"image"

	"github.com/Faultbox/scenegraph/internal/engine/mesh"
	"github.com/Faultbox/scenegraph/internal/engine/scene"
	"github.com/Faultbox/scenegraph/pkg/math"
)

// recorder collects calls from every fake in order.
type recorder struct {
	calls []string
	views map[string][]math.Mat4
}

func newRecorder() *recorder {
	return &recorder{views: make(map[string][]math.Mat4)}
}

func (r *recorder) add(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

type fakeProgram struct {
	name string
	rec  *recorder
}

func (p *fakeProgram) Use() { p.rec.add("use %s", p.name) }

func (p *fakeProgram) SetMat4(name string, m math.Mat4) {
	p.rec.add("%s %s", p.name, name)
	if name == scene.UniformView {
		p.rec.views[p.name] = append(p.rec.views[p.name], m)
	}
}

func (p *fakeProgram) SetVec4(name string, _ math.Vec4) { p.rec.add("%s %s", p.name, name) }
func (p *fakeProgram) SetFloat(name string, _ float32)  { p.rec.add("%s %s", p.name, name) }
func (p *fakeProgram) SetInt(string, int32)             {}
func (p *fakeProgram) Attrib(string) int32              { return -1 }

type fakeSurface struct {
	rec *recorder
}

func (s *fakeSurface) Clear()                { s.rec.add("clear") }
func (s *fakeSurface) SetDepthWrite(on bool) { s.rec.add("depth %t", on) }

type fakeGeometry struct {
	rec       *recorder
	triangles int
	destroyed bool
}

func (g *fakeGeometry) Draw(p scene.Program) {
	g.rec.add("draw %s %d", p.(*fakeProgram).name, g.triangles)
}
func (g *fakeGeometry) Destroy() { g.destroyed = true }

type fakeTexture struct{}

func (fakeTexture) Bind(int) {}
func (fakeTexture) Unbind()  {}
func (fakeTexture) Destroy() {}

type fakeDevice struct {
	rec      *recorder
	geoms    []*fakeGeometry
	textures int
	failGeom bool
}

var errUpload = errors.New("upload failed")

func (d *fakeDevice) NewGeometry(_ []mesh.Vertex, idx []uint32) (scene.Geometry, error) {
	if d.failGeom {
		return nil, errUpload
	}
	g := &fakeGeometry{rec: d.rec, triangles: len(idx) / 3}
	d.geoms = append(d.geoms, g)
	return g, nil
}

func (d *fakeDevice) NewTexture(*image.RGBA) (scene.Texture, error) {
	d.textures++
	return fakeTexture{}, nil
}

func (d *fakeDevice) live() int {
	n := 0
	for _, g := range d.geoms {
		if !g.destroyed {
			n++
		}
	}
	return n
}

var errMissing = errors.New("missing asset")

type fakeAssets struct {
	images map[string]*image.RGBA
	meshes map[string]*mesh.Mesh
}

func newFakeAssets() *fakeAssets {
	return &fakeAssets{
		images: make(map[string]*image.RGBA),
		meshes: make(map[string]*mesh.Mesh),
	}
}

func (a *fakeAssets) LoadImage(name string) (*image.RGBA, error) {
	if img, ok := a.images[name]; ok {
		return img, nil
	}
	return nil, fmt.Errorf("%s: %w", name, errMissing)
}

func (a *fakeAssets) LoadMesh(name string) (*mesh.Mesh, error) {
	if m, ok := a.meshes[name]; ok {
		return m, nil
	}
	return nil, fmt.Errorf("%s: %w", name, errMissing)
}

func triangles(n int) *mesh.Mesh {
	m := &mesh.Mesh{Name: fmt.Sprintf("tris%d", n)}
	for i := 0; i < n*3; i++ {
		m.Vertices = append(m.Vertices, mesh.Vertex{Position: [3]float32{float32(i), 0, 0}})
		m.Indices = append(m.Indices, uint32(i))
	}
	return m
}
