package geom

import (
	"math"
	"testing"
)

func TestMultIdentity(t *testing.T) {
	q := FromAxisAndAngle(Vector3{0, 1, 0}, 45)
	if got := q.Mult(Identity); !got.Aeq(q) {
		t.Errorf("q*I = %v, want %v", got, q)
	}
	if got := Identity.Mult(q); !got.Aeq(q) {
		t.Errorf("I*q = %v, want %v", got, q)
	}
}

func TestRotateAxis(t *testing.T) {
	q := FromAxisAndAngle(Vector3{0, 0, 1}, 90)
	got := q.Rotate(Vector3{1, 0, 0})
	want := Vector3{0, 1, 0}
	if !got.Aeq(want) {
		t.Errorf("rotate (1,0,0) by 90deg about Z = %v, want %v", got, want)
	}
}

func TestAxisAngleRoundTrip(t *testing.T) {
	want := FromAxisAndAngle(Vector3{1, 2, 3}, 63)
	axis, deg := want.AxisAngle()
	got := FromAxisAndAngle(axis, deg)
	if !got.Aeq(want) {
		t.Errorf("axis-angle round trip = %v, want %v", got, want)
	}
}

func TestToDegree(t *testing.T) {
	q := FromAxisAndAngle(Vector3{0, 1, 0}, 30)
	if got := q.ToDegree(); math.Abs(got-30) > 1e-6 {
		t.Errorf("ToDegree() = %v, want 30", got)
	}
}

func TestEulerRoundTrip(t *testing.T) {
	want := Vector3{10, 20, 30}
	q := FromEulerAngles(want)
	got := q.ToEulerAngles()
	if !got.Aeq(want) {
		t.Errorf("euler round trip = %v, want %v", got, want)
	}
}

func TestClampEuler(t *testing.T) {
	q := FromAxisAndAngle(Vector3{0, 0, 1}, 120)
	clamped := ClampEuler(q, Vector3{0, 0, 0}, Vector3{0, 0, 90})
	e := clamped.ToEulerAngles()
	if e.Z > 90+1e-6 || e.Z < -1e-6 {
		t.Errorf("clamped Z euler = %v, want within [0,90]", e.Z)
	}
}

func TestSeparateLocalQQRoundTrip(t *testing.T) {
	axis := Vector3{1, 0, 0}
	q := FromAxisAndAngle(Vector3{1, 1, 0}, 50)
	qx, _, _, qyz := SeparateLocalQQ(10, "test", q, axis)
	recomposed := qx.Mult(qyz)
	if !recomposed.Aeq(q) {
		t.Errorf("qx*qyz = %v, want %v", recomposed, q)
	}
}

func TestSeparateLocalQQSwingRoundTrip(t *testing.T) {
	axis := Vector3{1, 0, 0}
	q := FromAxisAndAngle(Vector3{0.3, 1, 0.2}, 77)
	_, qy, qz, qyz := SeparateLocalQQ(0, "test", q, axis)
	recomposed := qy.Mult(qz)
	if !recomposed.Aeq(qyz) {
		t.Errorf("qy*qz = %v, want %v", recomposed, qyz)
	}
}

func TestRotationBetweenClamps(t *testing.T) {
	from := Vector3{1, 0, 0}
	to := Vector3{0, 1, 0}
	q := RotationBetween(from, to, 10)
	if got := q.ToDegree(); got > 10+1e-6 {
		t.Errorf("RotationBetween degree = %v, want <= 10", got)
	}
}

func TestRotationBetweenDegenerate(t *testing.T) {
	if got := RotationBetween(Vector3{}, Vector3{1, 0, 0}, 45); !got.Eq(Identity) {
		t.Errorf("RotationBetween with zero vector = %v, want Identity", got)
	}
}

func TestSlerpEndpoints(t *testing.T) {
	a := FromAxisAndAngle(Vector3{0, 1, 0}, 0)
	b := FromAxisAndAngle(Vector3{0, 1, 0}, 90)
	if got := Slerp(a, b, 0); !got.Aeq(a) {
		t.Errorf("Slerp(a,b,0) = %v, want %v", got, a)
	}
	if got := Slerp(a, b, 1); !got.Aeq(b) {
		t.Errorf("Slerp(a,b,1) = %v, want %v", got, b)
	}
}
