package scene

import (
	"fmt"

	"github.com/Faultbox/scenegraph/internal/engine/mesh"
	"github.com/Faultbox/scenegraph/pkg/math"
)

// Object is a drawable mesh with an optional diffuse texture.
type Object struct {
	node

	geom      Geometry
	tex       Texture
	material  Material
	triangles int
}

// Init uploads m and the material's texture, replacing any previous resources.
// An invalid mesh, or a failed upload, leaves the previous resources in place.
func (o *Object) Init(dev Device, m *mesh.Mesh, mat Material) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("object %d: %w", o.handle, err)
	}

	geom, err := dev.NewGeometry(m.Vertices, m.Indices)
	if err != nil {
		return fmt.Errorf("object %d: uploading geometry: %w", o.handle, err)
	}

	var tex Texture
	if mat.HasTexture() {
		tex, err = dev.NewTexture(mat.DiffuseMap)
		if err != nil {
			geom.Destroy()
			return fmt.Errorf("object %d: uploading texture %q: %w", o.handle, mat.Name, err)
		}
	}

	o.Destroy()
	o.geom = geom
	o.tex = tex
	o.material = mat
	o.triangles = m.TriangleCount()
	return nil
}

// Initialized reports whether the object has geometry to draw.
func (o *Object) Initialized() bool {
	return o.geom != nil
}

// Material returns the material passed to the last successful Init.
func (o *Object) Material() Material {
	return o.material
}

// TriangleCount returns the number of uploaded triangles.
func (o *Object) TriangleCount() int {
	return o.triangles
}

// Draw uploads the model matrix inherited * local and draws the geometry.
func (o *Object) Draw(p Program, inherited math.Mat4) {
	if o.geom == nil {
		return
	}

	if o.tex != nil {
		o.tex.Bind(0)
		p.SetInt(UniformTexture, 0)
	}

	p.SetMat4(UniformModel, inherited.Mul(o.LocalTransform()))
	o.geom.Draw(p)

	if o.tex != nil {
		o.tex.Unbind()
	}
}

// Destroy releases GPU resources. Safe to call more than once.
func (o *Object) Destroy() {
	if o.geom != nil {
		o.geom.Destroy()
		o.geom = nil
	}
	if o.tex != nil {
		o.tex.Destroy()
		o.tex = nil
	}
	o.triangles = 0
}
