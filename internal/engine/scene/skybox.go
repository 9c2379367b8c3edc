package scene

import (
	"fmt"

	"github.com/Faultbox/scenegraph/internal/engine/mesh"
	"github.com/Faultbox/scenegraph/pkg/math"
)

// SkyBox is a large inward-facing cube drawn around the eye.
type SkyBox struct {
	obj   Object
	width float32
}

// NewSkyBox uploads a sky box of the given width textured with a 4x3 cross image.
func NewSkyBox(dev Device, width float32, mat Material) (*SkyBox, error) {
	s := &SkyBox{width: width}
	s.obj.init(nil, 0, KindObject)
	if err := s.obj.Init(dev, mesh.SkyBox(width), mat); err != nil {
		return nil, fmt.Errorf("creating sky box: %w", err)
	}
	return s, nil
}

// Width returns the cube edge length.
func (s *SkyBox) Width() float32 {
	return s.width
}

// Draw renders the box with an identity model transform. The caller uploads a
// translation-free view matrix first.
func (s *SkyBox) Draw(p Program) {
	s.obj.Draw(p, math.Identity())
}

// Destroy releases GPU resources.
func (s *SkyBox) Destroy() {
	s.obj.Destroy()
}
