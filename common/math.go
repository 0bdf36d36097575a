package common

import "math"

// Area2XZ derives the signed area (times two) of the triangle a,b,c
// projected onto the xz-plane. Negative when c is to the left of the
// directed line a->b (the sense LeftXZ uses), matching the teacher's
// TriArea2D / Area2.
func Area2XZ(a, b, c Vec3) float32 {
	abx := b[0] - a[0]
	abz := b[2] - a[2]
	acx := c[0] - a[0]
	acz := c[2] - a[2]
	return acx*abz - abx*acz
}

// LeftXZ reports whether c is strictly left of the directed line a->b in
// the xz-plane.
func LeftXZ(a, b, c Vec3) bool { return Area2XZ(a, b, c) < 0 }

// LeftOnXZ reports whether c is left of or on the directed line a->b.
func LeftOnXZ(a, b, c Vec3) bool { return Area2XZ(a, b, c) <= 0 }

// Dist2DSqr returns the squared distance between a and b on the xz-plane.
func Dist2DSqr(a, b Vec3) float32 {
	dx := b[0] - a[0]
	dz := b[2] - a[2]
	return dx*dx + dz*dz
}

// Dist2D returns the distance between a and b on the xz-plane.
func Dist2D(a, b Vec3) float32 {
	return float32(math.Sqrt(float64(Dist2DSqr(a, b))))
}

// Lerp linearly interpolates from a to b by t.
func Lerp(a, b Vec3, t float32) Vec3 {
	return Vec3{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
		a[2] + (b[2]-a[2])*t,
	}
}

// AngleXZ returns the signed angle in radians from u to v projected onto
// the xz-plane, in (-pi, pi]. The sign follows RotateY: RotateY(u, a)
// points along v, so +X to +Z is -pi/2.
func AngleXZ(u, v Vec3) float32 {
	cross := u[2]*v[0] - u[0]*v[2]
	dot := u[0]*v[0] + u[2]*v[2]
	return float32(math.Atan2(float64(cross), float64(dot)))
}

// RotateY rotates v about the Y axis by angle radians.
func RotateY(v Vec3, angle float32) Vec3 {
	s, c := math.Sincos(float64(angle))
	sf, cf := float32(s), float32(c)
	return Vec3{v[0]*cf + v[2]*sf, v[1], -v[0]*sf + v[2]*cf}
}
