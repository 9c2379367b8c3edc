package scene

import "github.com/Faultbox/scenegraph/pkg/math"

// Group is an ordered list of child nodes sharing a common transform.
// The same child may appear more than once and is then drawn once per entry.
type Group struct {
	node
	children []Handle
}

// Add appends n to the group.
func (g *Group) Add(n Transformable) error {
	if !g.reg.owns(n) {
		return ErrForeignNode
	}
	if n.Kind() == KindGroup && g.reg.reaches(n.Handle(), g.handle) {
		return ErrCycle
	}
	g.children = append(g.children, n.Handle())
	return nil
}

// Remove deletes the first occurrence of n and reports whether one was found.
func (g *Group) Remove(n Transformable) bool {
	if n == nil {
		return false
	}
	h := n.Handle()
	for i, c := range g.children {
		if c == h && g.reg.Node(c) == n {
			g.children = append(g.children[:i], g.children[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether n is a direct child.
func (g *Group) Contains(n Transformable) bool {
	if n == nil {
		return false
	}
	for _, c := range g.children {
		if c == n.Handle() && g.reg.Node(c) == n {
			return true
		}
	}
	return false
}

// Len returns the number of child entries.
func (g *Group) Len() int {
	return len(g.children)
}

// Children returns a copy of the child handles in draw order.
func (g *Group) Children() []Handle {
	out := make([]Handle, len(g.children))
	copy(out, g.children)
	return out
}

// Draw draws every child with inherited * local.
func (g *Group) Draw(p Program, inherited math.Mat4) {
	composed := inherited.Mul(g.LocalTransform())
	for _, h := range g.children {
		if c := g.reg.Node(h); c != nil {
			c.Draw(p, composed)
		}
	}
}
