// Package stage builds the demo scene and drives it: animation ticks, camera
// reparenting, pointer and wheel input, and the two render passes.
package stage

import (
	"fmt"
	"image"
	stdmath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/scenegraph/internal/config"
	"github.com/Faultbox/scenegraph/internal/engine/lighting"
	"github.com/Faultbox/scenegraph/internal/engine/mesh"
	"github.com/Faultbox/scenegraph/internal/engine/scene"
	"github.com/Faultbox/scenegraph/pkg/math"
)

// Projection parameters.
const (
	FieldOfView = 45 // degrees
	NearPlane   = 0.01
	FarPlane    = 1000
)

// Per-tick accumulator increments, in radians of the sin/cos argument.
const (
	objectStep = stdmath.Pi / 100
	groupAStep = stdmath.Pi / 360
	groupBStep = stdmath.Pi / 360
	outerStep  = stdmath.Pi / 720
)

var (
	axisX = math.Vec3{X: 1}
	axisY = math.Vec3{Y: 1}
	axisZ = math.Vec3{Z: 1}
)

// Assets loads images and meshes by name.
type Assets interface {
	LoadImage(name string) (*image.RGBA, error)
	LoadMesh(name string) (*mesh.Mesh, error)
}

// Surface is the framebuffer the stage renders into.
type Surface interface {
	Clear()
	SetDepthWrite(enabled bool)
}

// Direction is an arrow key.
type Direction int

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
)

func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Mode describes where the camera currently hangs in the graph.
type Mode int

const (
	ModeGroupA Mode = iota
	ModeGroupB
	ModeDetached
	ModeReset
)

func (m Mode) String() string {
	switch m {
	case ModeGroupA:
		return "group-a"
	case ModeGroupB:
		return "group-b"
	case ModeDetached:
		return "detached"
	case ModeReset:
		return "reset"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Stage owns the demo scene.
type Stage struct {
	cfg config.SceneConfig
	dev scene.Device
	log *zap.Logger

	reg    *scene.Registry
	camera *scene.Camera
	groupA *scene.Group
	groupB *scene.Group
	outer  *scene.Group
	cubes  []*scene.Object
	sky    *scene.SkyBox
	light  lighting.PointLight

	meshObj      *scene.Object
	meshMaterial scene.Material
	meshRooted   bool

	projection math.Mat4
	mode       Mode

	pointer    math.Vec2
	pointerSet bool

	angleObject float64
	angleA      float64
	angleB      float64
	angleOuter  float64
}

// New builds the scene. A missing mesh or texture is logged and skipped; a failed
// GPU upload is returned.
func New(cfg *config.Config, dev scene.Device, assets Assets, log *zap.Logger) (*Stage, error) {
	if log == nil {
		log = zap.NewNop()
	}
	sc := cfg.Scene
	s := &Stage{
		cfg:   sc,
		dev:   dev,
		log:   log,
		reg:   scene.NewRegistry(log.Named("scene")),
		light: lighting.NewPointLight(sc.LightPosition, sc.LightPower),
		mode:  ModeGroupA,
	}

	cubeMat := s.material(assets, cfg.Assets.CubeTexture)

	s.groupA = s.reg.NewGroup()
	if err := s.fillGrid(s.groupA, cubeMat); err != nil {
		s.Close()
		return nil, err
	}
	s.groupA.Translate(math.Vec3{X: -sc.GroupOffset})

	s.groupB = s.reg.NewGroup()
	if err := s.fillGrid(s.groupB, cubeMat); err != nil {
		s.Close()
		return nil, err
	}
	s.groupB.Translate(math.Vec3{X: sc.GroupOffset})

	s.outer = s.reg.NewGroup()
	s.mustAdd(s.outer, s.groupA)
	s.mustAdd(s.outer, s.groupB)
	if err := s.reg.AddRoot(s.outer); err != nil {
		s.Close()
		return nil, err
	}

	s.meshObj = s.reg.NewObject()
	s.meshMaterial = s.material(assets, cfg.Assets.MeshTexture)
	if cfg.Assets.Mesh != "" {
		m, err := assets.LoadMesh(cfg.Assets.Mesh)
		if err != nil {
			log.Warn("mesh not loaded, continuing without it", zap.String("mesh", cfg.Assets.Mesh), zap.Error(err))
		} else if err := s.ReplaceMesh(m); err != nil {
			log.Warn("mesh rejected, continuing without it", zap.String("mesh", cfg.Assets.Mesh), zap.Error(err))
		}
	}

	s.camera = s.reg.NewCamera()
	s.camera.Translate(math.Vec3{Z: sc.CameraDistance})
	s.mustAdd(s.groupA, s.camera)

	skyMat := s.material(assets, cfg.Assets.SkyBoxTexture)
	sky, err := scene.NewSkyBox(dev, sc.SkyBoxWidth, skyMat)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.sky = sky

	s.Resize(cfg.Window.Width, cfg.Window.Height)

	log.Info("stage built",
		zap.Int("cubes", len(s.cubes)),
		zap.Bool("mesh", s.meshRooted),
		zap.Int("nodes", s.reg.Len()),
	)
	return s, nil
}

// material loads a texture, falling back to an untextured material.
func (s *Stage) material(assets Assets, name string) scene.Material {
	mat := scene.Material{Name: name}
	if name == "" {
		return mat
	}
	img, err := assets.LoadImage(name)
	if err != nil {
		s.log.Warn("texture not loaded, drawing untextured", zap.String("texture", name), zap.Error(err))
		return mat
	}
	mat.DiffuseMap = img
	return mat
}

// fillGrid adds a 3x3x3 grid of cubes spaced GridStep apart to g.
func (s *Stage) fillGrid(g *scene.Group, mat scene.Material) error {
	cube := mesh.Cube(s.cfg.CubeWidth)
	step := s.cfg.GridStep
	for x := -1; x <= 1; x++ {
		for y := -1; y <= 1; y++ {
			for z := -1; z <= 1; z++ {
				obj := s.reg.NewObject()
				if err := obj.Init(s.dev, cube, mat); err != nil {
					return fmt.Errorf("creating cube %d: %w", len(s.cubes), err)
				}
				obj.Translate(math.Vec3{X: float32(x) * step, Y: float32(y) * step, Z: float32(z) * step})
				s.mustAdd(g, obj)
				s.cubes = append(s.cubes, obj)
			}
		}
	}
	return nil
}

// mustAdd adds a node built by this stage; failure means the graph wiring is broken.
func (s *Stage) mustAdd(g *scene.Group, n scene.Transformable) {
	if err := g.Add(n); err != nil {
		panic(fmt.Sprintf("stage: adding %s %d: %v", n.Kind(), n.Handle(), err))
	}
}

// ReplaceMesh swaps the loaded mesh for m. An invalid mesh is rejected and the
// current one is kept.
func (s *Stage) ReplaceMesh(m *mesh.Mesh) error {
	if err := s.meshObj.Init(s.dev, m, s.meshMaterial); err != nil {
		return err
	}
	if !s.meshRooted {
		if err := s.reg.AddRoot(s.meshObj); err != nil {
			return err
		}
		s.meshRooted = true
	}
	s.log.Info("mesh loaded", zap.String("name", m.Name), zap.Int("triangles", s.meshObj.TriangleCount()))
	return nil
}

// Tick advances the animation by one step.
func (s *Stage) Tick() {
	so := float32(stdmath.Sin(s.angleObject))
	co := float32(stdmath.Cos(s.angleObject))
	for i, c := range s.cubes {
		if i%2 == 0 {
			c.Rotate(math.QuatFromAxisAngleDegrees(axisX, so))
			c.Rotate(math.QuatFromAxisAngleDegrees(axisY, co))
		} else {
			c.Rotate(math.QuatFromAxisAngleDegrees(axisY, so))
			c.Rotate(math.QuatFromAxisAngleDegrees(axisX, co))
		}
	}

	sa := float32(stdmath.Sin(s.angleA))
	s.groupA.Rotate(math.QuatFromAxisAngleDegrees(axisZ, sa))
	s.groupA.Rotate(math.QuatFromAxisAngleDegrees(axisY, -sa))

	cb := float32(stdmath.Cos(s.angleB))
	s.groupB.Rotate(math.QuatFromAxisAngleDegrees(axisX, cb))
	s.groupB.Rotate(math.QuatFromAxisAngleDegrees(axisY, -cb))

	s.outer.Rotate(math.QuatFromAxisAngleDegrees(axisX, float32(stdmath.Sin(s.angleOuter))))
	s.outer.Rotate(math.QuatFromAxisAngleDegrees(axisY, float32(stdmath.Cos(s.angleOuter))))

	s.angleObject += objectStep
	s.angleA += groupAStep
	s.angleB += groupBStep
	s.angleOuter += outerStep
}

// HandleKey moves the camera between groups.
func (s *Stage) HandleKey(d Direction) {
	switch d {
	case DirLeft:
		s.groupA.Remove(s.camera)
		if !s.groupB.Contains(s.camera) {
			s.mustAdd(s.groupB, s.camera)
		}
		s.mode = ModeGroupB
	case DirRight:
		s.groupB.Remove(s.camera)
		if !s.groupA.Contains(s.camera) {
			s.mustAdd(s.groupA, s.camera)
		}
		s.mode = ModeGroupA
	case DirDown:
		s.camera.SetGlobalTransform(s.reg.InheritedTransform(s.camera))
		s.groupB.Remove(s.camera)
		s.groupA.Remove(s.camera)
		s.mode = ModeDetached
	case DirUp:
		s.groupB.Remove(s.camera)
		s.groupA.Remove(s.camera)
		s.camera.SetGlobalTransform(math.Identity())
		s.mode = ModeReset
	default:
		return
	}
	s.log.Debug("camera moved", zap.Stringer("key", d), zap.Stringer("mode", s.mode))
}

// PointerPress anchors a drag at (x, y).
func (s *Stage) PointerPress(x, y float32) {
	s.pointer = math.Vec2{X: x, Y: y}
	s.pointerSet = true
}

// PointerRelease ends a drag.
func (s *Stage) PointerRelease() {
	s.pointerSet = false
}

// PointerDrag rotates the camera about (dy, dx, 0) by half the pointer travel in
// degrees and re-anchors at (x, y).
func (s *Stage) PointerDrag(x, y float32) {
	pos := math.Vec2{X: x, Y: y}
	if !s.pointerSet {
		s.PointerPress(x, y)
		return
	}
	diff := pos.Sub(s.pointer)
	s.pointer = pos
	length := diff.Length()
	if length == 0 {
		return
	}
	axis := math.Vec3{X: diff.Y, Y: diff.X}
	s.camera.Rotate(math.QuatFromAxisAngleDegrees(axis, length/2))
}

// Scroll dollies the camera along its local z axis. Positive delta moves closer.
func (s *Stage) Scroll(delta int) {
	switch {
	case delta > 0:
		s.camera.Translate(math.Vec3{Z: -s.cfg.ZoomStep})
	case delta < 0:
		s.camera.Translate(math.Vec3{Z: s.cfg.ZoomStep})
	}
}

// Resize rebuilds the projection for a width x height viewport.
func (s *Stage) Resize(width, height int) {
	aspect := float32(width) / float32(max(height, 1))
	s.projection = math.Perspective(math.Radians(FieldOfView), aspect, NearPlane, FarPlane)
}

// Render draws the sky pass with sky and then the scene with main.
func (s *Stage) Render(surface Surface, sky, main scene.Program) {
	surface.Clear()
	inherited := s.reg.InheritedTransform(s.camera)

	sky.Use()
	sky.SetMat4(scene.UniformProjection, s.projection)
	s.camera.DrawOrientation(sky, inherited)
	if !s.cfg.SkyBoxDepthWrite {
		surface.SetDepthWrite(false)
	}
	s.sky.Draw(sky)
	if !s.cfg.SkyBoxDepthWrite {
		surface.SetDepthWrite(true)
	}

	main.Use()
	main.SetMat4(scene.UniformProjection, s.projection)
	s.light.Apply(main)
	s.camera.Draw(main, inherited)
	s.reg.Draw(main)
}

// Mode returns where the camera currently hangs.
func (s *Stage) Mode() Mode { return s.mode }

// Camera returns the scene camera.
func (s *Stage) Camera() *scene.Camera { return s.camera }

// Groups returns the two cube groups and the outer group containing them.
func (s *Stage) Groups() (a, b, outer *scene.Group) { return s.groupA, s.groupB, s.outer }

// Cubes returns the animated cubes in creation order.
func (s *Stage) Cubes() []*scene.Object { return s.cubes }

// Mesh returns the loaded mesh object, or nil when none is loaded.
func (s *Stage) Mesh() *scene.Object {
	if !s.meshRooted {
		return nil
	}
	return s.meshObj
}

// Registry returns the scene registry.
func (s *Stage) Registry() *scene.Registry { return s.reg }

// Projection returns the current projection matrix.
func (s *Stage) Projection() math.Mat4 { return s.projection }

// Close releases every GPU resource the stage created.
func (s *Stage) Close() {
	if s.sky != nil {
		s.sky.Destroy()
		s.sky = nil
	}
	if s.reg != nil {
		s.reg.Close()
	}
	s.cubes = nil
	s.meshRooted = false
}
