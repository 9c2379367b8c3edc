package scene

import (
	"go.uber.org/zap"

	"github.com/Faultbox/scenegraph/pkg/math"
)

// Registry owns every node of a scene. Groups and the root list refer to nodes by
// Handle; reparenting edits those lists and never moves the node itself.
type Registry struct {
	log   *zap.Logger
	nodes []Transformable
	roots []Handle
}

// NewRegistry creates an empty registry. A nil logger discards output.
func NewRegistry(log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{log: log}
}

func (r *Registry) nextHandle() Handle {
	return Handle(len(r.nodes) + 1)
}

// NewObject creates an uninitialized object.
func (r *Registry) NewObject() *Object {
	o := &Object{}
	o.init(r, r.nextHandle(), KindObject)
	r.nodes = append(r.nodes, o)
	return o
}

// NewCamera creates a camera at the origin.
func (r *Registry) NewCamera() *Camera {
	c := &Camera{}
	c.init(r, r.nextHandle(), KindCamera)
	r.nodes = append(r.nodes, c)
	return c
}

// NewGroup creates an empty group.
func (r *Registry) NewGroup() *Group {
	g := &Group{}
	g.init(r, r.nextHandle(), KindGroup)
	r.nodes = append(r.nodes, g)
	return g
}

// Node returns the node for h, or nil if h is not a live handle.
func (r *Registry) Node(h Handle) Transformable {
	if h == 0 || int(h) > len(r.nodes) {
		return nil
	}
	return r.nodes[h-1]
}

// Len returns the number of nodes.
func (r *Registry) Len() int {
	return len(r.nodes)
}

func (r *Registry) owns(n Transformable) bool {
	return n != nil && r.Node(n.Handle()) == n
}

// reaches reports whether target is from or one of its descendants.
func (r *Registry) reaches(from, target Handle) bool {
	if from == target {
		return true
	}
	g, ok := r.Node(from).(*Group)
	if !ok {
		return false
	}
	for _, c := range g.children {
		if r.reaches(c, target) {
			return true
		}
	}
	return false
}

// AddRoot appends n to the list of top-level nodes drawn by Draw.
func (r *Registry) AddRoot(n Transformable) error {
	if !r.owns(n) {
		return ErrForeignNode
	}
	r.roots = append(r.roots, n.Handle())
	return nil
}

// RemoveRoot removes the first occurrence of n from the root list.
func (r *Registry) RemoveRoot(n Transformable) bool {
	if !r.owns(n) {
		return false
	}
	for i, h := range r.roots {
		if h == n.Handle() {
			r.roots = append(r.roots[:i], r.roots[i+1:]...)
			return true
		}
	}
	return false
}

// Roots returns a copy of the root handles in draw order.
func (r *Registry) Roots() []Handle {
	out := make([]Handle, len(r.roots))
	copy(out, r.roots)
	return out
}

// Draw draws every root, in registration order, with its latched global transform.
func (r *Registry) Draw(p Program) {
	for _, h := range r.roots {
		if n := r.Node(h); n != nil {
			n.Draw(p, n.GlobalTransform())
		}
	}
}

// InheritedTransform returns the transform n receives when the roots are drawn:
// the composition of its first ancestor chain found in draw order. A node outside
// every root's subtree inherits its own latched global transform.
func (r *Registry) InheritedTransform(n Transformable) math.Mat4 {
	if !r.owns(n) {
		return math.Identity()
	}
	target := n.Handle()
	for _, h := range r.roots {
		root := r.Node(h)
		if h == target {
			return root.GlobalTransform()
		}
		if g, ok := root.(*Group); ok {
			if m, found := r.search(g, root.GlobalTransform(), target); found {
				return m
			}
		}
	}
	return n.GlobalTransform()
}

func (r *Registry) search(g *Group, inherited math.Mat4, target Handle) (math.Mat4, bool) {
	composed := inherited.Mul(g.LocalTransform())
	for _, c := range g.children {
		if c == target {
			return composed, true
		}
		if child, ok := r.Node(c).(*Group); ok {
			if m, found := r.search(child, composed, target); found {
				return m, true
			}
		}
	}
	return math.Mat4{}, false
}

// Close releases GPU resources of every object: group members first, then roots,
// then any remaining objects. Cameras hold no resources. The registry is empty afterwards.
func (r *Registry) Close() {
	released := 0
	release := func(h Handle) {
		if o, ok := r.Node(h).(*Object); ok && o.Initialized() {
			o.Destroy()
			released++
		}
	}

	for _, n := range r.nodes {
		if g, ok := n.(*Group); ok {
			for _, h := range g.children {
				release(h)
			}
			g.children = nil
		}
	}
	for _, h := range r.roots {
		release(h)
	}
	for _, n := range r.nodes {
		release(n.Handle())
	}

	r.log.Debug("scene released", zap.Int("nodes", len(r.nodes)), zap.Int("objects", released))
	r.roots = nil
	r.nodes = nil
}
