package scene

import (
	"errors"
	"fmt"
	"image"

	"github.com/Faultbox/scenegraph/internal/engine/mesh"
	"github.com/Faultbox/scenegraph/pkg/math"
)

// recorder collects the calls made against fake GPU objects in order.
type recorder struct {
	calls  []string
	models []math.Mat4
	views  []math.Mat4
}

type fakeProgram struct {
	rec *recorder
}

func (p *fakeProgram) Use() { p.rec.calls = append(p.rec.calls, "use") }

func (p *fakeProgram) SetMat4(name string, m math.Mat4) {
	p.rec.calls = append(p.rec.calls, "mat4 "+name)
	switch name {
	case UniformModel:
		p.rec.models = append(p.rec.models, m)
	case UniformView:
		p.rec.views = append(p.rec.views, m)
	}
}

func (p *fakeProgram) SetVec4(name string, _ math.Vec4) { p.rec.calls = append(p.rec.calls, "vec4 "+name) }
func (p *fakeProgram) SetFloat(name string, _ float32)  { p.rec.calls = append(p.rec.calls, "float "+name) }
func (p *fakeProgram) SetInt(name string, v int32)      { p.rec.calls = append(p.rec.calls, fmt.Sprintf("int %s=%d", name, v)) }
func (p *fakeProgram) Attrib(string) int32              { return -1 }

type fakeGeometry struct {
	rec       *recorder
	id        int
	destroyed int
}

func (g *fakeGeometry) Draw(Program) { g.rec.calls = append(g.rec.calls, fmt.Sprintf("draw %d", g.id)) }
func (g *fakeGeometry) Destroy()     { g.destroyed++ }

type fakeTexture struct {
	rec       *recorder
	destroyed int
}

func (t *fakeTexture) Bind(unit int) { t.rec.calls = append(t.rec.calls, fmt.Sprintf("bind %d", unit)) }
func (t *fakeTexture) Unbind()       { t.rec.calls = append(t.rec.calls, "unbind") }
func (t *fakeTexture) Destroy()      { t.destroyed++ }

type fakeDevice struct {
	rec      *recorder
	geoms    []*fakeGeometry
	textures []*fakeTexture
	failGeom bool
	failTex  bool
}

var errUpload = errors.New("upload failed")

func newFakeDevice() *fakeDevice {
	return &fakeDevice{rec: &recorder{}}
}

func (d *fakeDevice) NewGeometry(v []mesh.Vertex, idx []uint32) (Geometry, error) {
	if d.failGeom {
		return nil, errUpload
	}
	g := &fakeGeometry{rec: d.rec, id: len(d.geoms)}
	d.geoms = append(d.geoms, g)
	return g, nil
}

func (d *fakeDevice) NewTexture(img *image.RGBA) (Texture, error) {
	if d.failTex {
		return nil, errUpload
	}
	t := &fakeTexture{rec: d.rec}
	d.textures = append(d.textures, t)
	return t, nil
}

func (d *fakeDevice) program() *fakeProgram {
	return &fakeProgram{rec: d.rec}
}

func texturedMaterial() Material {
	return Material{Name: "checker", DiffuseMap: image.NewRGBA(image.Rect(0, 0, 2, 2))}
}
