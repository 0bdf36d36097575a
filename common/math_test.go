package common

import "testing"

func TestClamp(t *testing.T) {
	if Clamp(2, 0, 1) != 1 {
		t.Errorf("higher than range error")
	}
	if Clamp(1, 0, 2) != 1 {
		t.Errorf("within range error")
	}
	if Clamp(0, 1, 2) != 1 {
		t.Errorf("lower than range error")
	}
}

func TestSqr(t *testing.T) {
	if Sqr(2) != 4 {
		t.Errorf("Sqr squares a number")
	}
	if Sqr(-4) != 16 {
		t.Errorf("Sqr squares a number")
	}
}

func TestAreaAndLeft(t *testing.T) {
	a := Vec3{0, 0, 0}
	b := Vec3{1, 0, 0}
	c := Vec3{0, 0, 1}
	if !LeftXZ(a, b, c) {
		t.Errorf("expected c left of a->b")
	}
	if LeftXZ(a, b, Vec3{0, 0, -1}) {
		t.Errorf("expected point right of a->b to not be left")
	}
}

func TestDist2D(t *testing.T) {
	a := Vec3{0, 5, 0}
	b := Vec3{3, -9, 4}
	if got := Dist2DSqr(a, b); got != 25 {
		t.Errorf("Dist2DSqr ignores Y, got %v want 25", got)
	}
}

func TestLerp(t *testing.T) {
	a := Vec3{0, 0, 0}
	b := Vec3{10, 10, 10}
	got := Lerp(a, b, 0.5)
	want := Vec3{5, 5, 5}
	if got != want {
		t.Errorf("Lerp(0.5) = %v, want %v", got, want)
	}
}

func TestAngleXZ(t *testing.T) {
	u := Vec3{1, 0, 0}
	v := Vec3{0, 0, 1}
	got := AngleXZ(u, v)
	if got < 1.5 || got > 1.6 {
		t.Errorf("AngleXZ(+X, +Z) = %v, want ~pi/2", got)
	}
}
