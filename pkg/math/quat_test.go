package math

import (
	"math"
	"testing"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
	if q.ToMat4() != Identity() {
		t.Error("Identity quaternion should produce identity matrix")
	}
}

func TestQuatNormalize(t *testing.T) {
	n := Quat{X: 1, Y: 2, Z: 3, W: 4}.Normalize()
	length := float32(math.Sqrt(float64(n.X*n.X + n.Y*n.Y + n.Z*n.Z + n.W*n.W)))
	if absf(length-1) > eps {
		t.Errorf("Normalized quaternion length should be 1, got %v", length)
	}
}

func TestQuatFromAxisAngle(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{0, 2, 0}, math.Pi/2)
	expected := float32(math.Sin(math.Pi / 4))
	if absf(q.Y-expected) > eps || absf(q.W-expected) > eps {
		t.Errorf("90 deg around Y: got %v, want Y=W=%v", q, expected)
	}
}

func TestQuatFromZeroAxis(t *testing.T) {
	if q := QuatFromAxisAngle(Vec3{}, 1); q != QuatIdentity() {
		t.Errorf("zero axis = %v, want identity", q)
	}
}

func TestQuatDegrees(t *testing.T) {
	a := QuatFromAxisAngleDegrees(Vec3{1, 0, 0}, 180)
	b := QuatFromAxisAngle(Vec3{1, 0, 0}, math.Pi)
	if !a.ApproxEqual(b, eps) {
		t.Errorf("degrees %v != radians %v", a, b)
	}
}

func TestQuatRotate(t *testing.T) {
	q := QuatFromAxisAngleDegrees(Vec3{0, 1, 0}, 90)
	got := q.Rotate(Vec3{1, 0, 0})
	if !vecApprox(got, Vec3{0, 0, -1}) {
		t.Errorf("Rotate = %v, want (0, 0, -1)", got)
	}
}

func TestQuatMulAppliesRightFirst(t *testing.T) {
	x := QuatFromAxisAngleDegrees(Vec3{1, 0, 0}, 90)
	y := QuatFromAxisAngleDegrees(Vec3{0, 1, 0}, 90)

	// y * x: rotate about X, then about Y.
	got := y.Mul(x).Rotate(Vec3{0, 1, 0})
	want := y.Rotate(x.Rotate(Vec3{0, 1, 0}))
	if !vecApprox(got, want) {
		t.Errorf("Mul order: got %v, want %v", got, want)
	}
}

func TestQuatApproxEqualSign(t *testing.T) {
	q := QuatFromAxisAngleDegrees(Vec3{0, 0, 1}, 45)
	neg := Quat{-q.X, -q.Y, -q.Z, -q.W}
	if !q.ApproxEqual(neg, eps) {
		t.Error("q and -q should compare equal")
	}
}
