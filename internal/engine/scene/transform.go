package scene

import "github.com/Faultbox/scenegraph/pkg/math"

// node carries the state shared by every Transformable.
type node struct {
	handle Handle
	kind   Kind
	reg    *Registry

	translation math.Vec3
	rotation    math.Quat
	scale       float32
	global      math.Mat4
}

func (n *node) init(reg *Registry, h Handle, k Kind) {
	n.reg = reg
	n.handle = h
	n.kind = k
	n.rotation = math.QuatIdentity()
	n.scale = 1
	n.global = math.Identity()
}

func (n *node) Handle() Handle { return n.handle }
func (n *node) Kind() Kind     { return n.kind }

func (n *node) Translate(delta math.Vec3) {
	n.translation = n.translation.Add(delta)
}

func (n *node) Rotate(delta math.Quat) {
	n.rotation = delta.Mul(n.rotation).Normalize()
}

func (n *node) Scale(factor float32) {
	n.scale *= factor
}

func (n *node) SetGlobalTransform(m math.Mat4) {
	n.global = m
}

func (n *node) GlobalTransform() math.Mat4 {
	return n.global
}

func (n *node) LocalTransform() math.Mat4 {
	return math.Compose(n.translation, n.rotation, n.scale)
}

// Translation returns the accumulated translation.
func (n *node) Translation() math.Vec3 { return n.translation }

// Rotation returns the accumulated rotation.
func (n *node) Rotation() math.Quat { return n.rotation }

// ScaleFactor returns the accumulated uniform scale.
func (n *node) ScaleFactor() float32 { return n.scale }
