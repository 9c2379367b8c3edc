package renderer

import (
	"errors"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/scenegraph/internal/engine/mesh"
	"github.com/Faultbox/scenegraph/internal/engine/scene"
	"github.com/Faultbox/scenegraph/internal/engine/texture"
)

var (
	errEmptyGeometry = errors.New("renderer: geometry has no vertices or indices")
	errEmptyTexture  = errors.New("renderer: texture has no pixels")
)

// Device uploads meshes and images to the GPU.
type Device struct {
	maxTextureSize int
	log            *zap.Logger
}

// NewGeometry uploads an indexed triangle list.
func (d *Device) NewGeometry(vertices []mesh.Vertex, indices []uint32) (scene.Geometry, error) {
	if len(vertices) == 0 || len(indices) == 0 {
		return nil, errEmptyGeometry
	}
	g := &glGeometry{indexCount: int32(len(indices))}

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*mesh.VertexStride, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	d.log.Debug("geometry uploaded", zap.Int("vertices", len(vertices)), zap.Int("indices", len(indices)))
	return g, nil
}

// NewTexture uploads img with linear filtering and repeat wrapping.
func (d *Device) NewTexture(img *image.RGBA) (scene.Texture, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, errEmptyTexture
	}
	src := img
	if fitted := texture.Fit(src, d.maxTextureSize); fitted != src {
		d.log.Debug("texture scaled down",
			zap.Int("width", src.Bounds().Dx()),
			zap.Int("height", src.Bounds().Dy()),
			zap.Int("max", d.maxTextureSize),
		)
		src = fitted
	}
	src = texture.FlipVertical(src)

	t := &glTexture{}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(src.Bounds().Dx()), int32(src.Bounds().Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&src.Pix[0]))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return t, nil
}

type glGeometry struct {
	vao, vbo, ebo uint32
	indexCount    int32
}

// vertexAttribs maps attribute names to component counts and byte offsets.
var vertexAttribs = []struct {
	name   string
	size   int32
	offset uintptr
}{
	{scene.AttribPosition, 3, mesh.PositionOffset},
	{scene.AttribTexCoord, 2, mesh.TexCoordOffset},
	{scene.AttribNormal, 3, mesh.NormalOffset},
}

// Draw binds the attributes the program declares and issues the draw call.
func (g *glGeometry) Draw(p scene.Program) {
	gl.BindVertexArray(g.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	for _, a := range vertexAttribs {
		loc := p.Attrib(a.name)
		if loc < 0 {
			continue
		}
		gl.EnableVertexAttribArray(uint32(loc))
		gl.VertexAttribPointerWithOffset(uint32(loc), a.size, gl.FLOAT, false, mesh.VertexStride, a.offset)
	}
	gl.DrawElements(gl.TRIANGLES, g.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

func (g *glGeometry) Destroy() {
	if g.ebo != 0 {
		gl.DeleteBuffers(1, &g.ebo)
		g.ebo = 0
	}
	if g.vbo != 0 {
		gl.DeleteBuffers(1, &g.vbo)
		g.vbo = 0
	}
	if g.vao != 0 {
		gl.DeleteVertexArrays(1, &g.vao)
		g.vao = 0
	}
}

type glTexture struct {
	id   uint32
	unit int
}

func (t *glTexture) Bind(unit int) {
	t.unit = unit
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, t.id)
}

func (t *glTexture) Unbind() {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(t.unit))
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

func (t *glTexture) Destroy() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}
