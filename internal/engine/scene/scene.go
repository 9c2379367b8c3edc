// Package scene implements the scene graph: transformable nodes (objects, cameras
// and groups) owned by a Registry and drawn by passing the inherited transform down
// the hierarchy.
package scene

import (
	"errors"
	"image"

	"github.com/Faultbox/scenegraph/internal/engine/mesh"
	"github.com/Faultbox/scenegraph/pkg/math"
)

// Shader interface names.
const (
	UniformProjection    = "u_projectionMatrix"
	UniformView          = "u_viewMatrix"
	UniformModel         = "u_modelMatrix"
	UniformTexture       = "u_texture"
	UniformLightPosition = "u_lightPosition"
	UniformLightPower    = "u_lightPower"

	AttribPosition = "a_position"
	AttribTexCoord = "a_texcoord"
	AttribNormal   = "a_normal"
)

// Graph errors.
var (
	ErrCycle       = errors.New("scene: node would become its own ancestor")
	ErrForeignNode = errors.New("scene: node belongs to another registry")
)

// Program is a linked shader program that nodes upload uniforms to.
type Program interface {
	Use()
	SetMat4(name string, m math.Mat4)
	SetVec4(name string, v math.Vec4)
	SetFloat(name string, v float32)
	SetInt(name string, v int32)
	// Attrib returns the attribute location, or -1 if the program has none.
	Attrib(name string) int32
}

// Device creates GPU resources.
type Device interface {
	NewGeometry(vertices []mesh.Vertex, indices []uint32) (Geometry, error)
	NewTexture(img *image.RGBA) (Texture, error)
}

// Geometry is an uploaded indexed triangle list.
type Geometry interface {
	Draw(p Program)
	Destroy()
}

// Texture is an uploaded 2D texture.
type Texture interface {
	Bind(unit int)
	Unbind()
	Destroy()
}

// Kind identifies the concrete node type behind a Transformable.
type Kind int

const (
	KindObject Kind = iota
	KindCamera
	KindGroup
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindCamera:
		return "camera"
	case KindGroup:
		return "group"
	}
	return "unknown"
}

// Handle identifies a node within its Registry. The zero Handle is never assigned.
type Handle uint32

// Transformable is implemented by every scene node.
type Transformable interface {
	Handle() Handle
	Kind() Kind

	// Translate adds delta to the translation.
	Translate(delta math.Vec3)
	// Rotate pre-multiplies the rotation: rotation = delta * rotation.
	Rotate(delta math.Quat)
	// Scale multiplies the uniform scale.
	Scale(factor float32)

	// SetGlobalTransform latches the transform used when the node is drawn as a root.
	SetGlobalTransform(m math.Mat4)
	GlobalTransform() math.Mat4
	// LocalTransform returns translation * rotation * scale.
	LocalTransform() math.Mat4

	// Draw renders the node with the transform inherited from its parent.
	Draw(p Program, inherited math.Mat4)
}

// Material describes surface appearance.
type Material struct {
	Name       string
	DiffuseMap *image.RGBA
}

// HasTexture reports whether the material carries a diffuse image.
func (m Material) HasTexture() bool {
	return m.DiffuseMap != nil
}
