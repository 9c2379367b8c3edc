// Package lighting provides the point light used by the object shader.
package lighting

import (
	"github.com/Faultbox/scenegraph/pkg/math"
)

// Uniform names read by the object shader.
const (
	UniformPosition = "u_lightPosition"
	UniformPower    = "u_lightPower"
)

// DefaultPower matches the object shader's expected brightness range.
const DefaultPower = 2.0

// Uniforms is the subset of a shader program the light uploads to.
type Uniforms interface {
	SetVec4(name string, v math.Vec4)
	SetFloat(name string, v float32)
}

// PointLight is a light source in eye space.
// W=1 positions a point light; W=0 makes Position a direction.
type PointLight struct {
	Position math.Vec4
	Power    float32
}

// NewPointLight builds a light from a raw xyzw position. Non-positive power falls back to DefaultPower.
func NewPointLight(pos [4]float32, power float32) PointLight {
	if power <= 0 {
		power = DefaultPower
	}
	return PointLight{
		Position: math.Vec4{X: pos[0], Y: pos[1], Z: pos[2], W: pos[3]},
		Power:    power,
	}
}

// Apply uploads the light to u.
func (l PointLight) Apply(u Uniforms) {
	u.SetVec4(UniformPosition, l.Position)
	u.SetFloat(UniformPower, l.Power)
}
