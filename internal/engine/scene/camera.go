package scene

import "github.com/Faultbox/scenegraph/pkg/math"

// Camera is a node whose world transform defines the view.
type Camera struct {
	node
}

// ViewMatrix returns inverse(inherited * local).
func (c *Camera) ViewMatrix(inherited math.Mat4) math.Mat4 {
	return inherited.Mul(c.LocalTransform()).Inverse()
}

// Position returns the camera's world-space position.
func (c *Camera) Position(inherited math.Mat4) math.Vec3 {
	return inherited.Mul(c.LocalTransform()).Translation()
}

// Draw uploads the view matrix.
func (c *Camera) Draw(p Program, inherited math.Mat4) {
	p.SetMat4(UniformView, c.ViewMatrix(inherited))
}

// DrawOrientation uploads the view matrix without translation, so geometry drawn
// afterwards stays centered on the eye.
func (c *Camera) DrawOrientation(p Program, inherited math.Mat4) {
	p.SetMat4(UniformView, c.ViewMatrix(inherited).WithoutTranslation())
}
