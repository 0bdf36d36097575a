package physics

import (
	"math"

	"github.com/Amarcolina/WalkManifold/common"
)

// Triangle is one collider triangle in a Scene. Normal is reported as-is on
// a hit (+Y-ish for a floor); it is not derived from the winding, and the
// downward raycast hits the triangle from either side.
type Triangle struct {
	A, B, C  common.Vec3
	Normal   common.Vec3
	Collider ColliderID
	Layer    LayerMask
	Trigger  bool
}

// Scene is an in-memory Port implementation: a flat list of triangle
// colliders. It exists so this module is testable and usable without a
// real physics engine (spec.md §4.2: "an implementation may be any engine
// or an in-memory synthetic").
type Scene struct {
	Triangles []Triangle
}

// NewScene returns an empty synthetic scene.
func NewScene() *Scene { return &Scene{} }

// AddTriangle appends a collider triangle and returns the scene for
// chaining.
func (s *Scene) AddTriangle(t Triangle) *Scene {
	s.Triangles = append(s.Triangles, t)
	return s
}

// AddQuad adds an axis-aligned-ish rectangle, specified by two triangles,
// as a convenience for building floor/platform test scenes.
func (s *Scene) AddQuad(a, b, c, d common.Vec3, normal common.Vec3, collider ColliderID, layer LayerMask) *Scene {
	s.AddTriangle(Triangle{A: a, B: b, C: c, Normal: normal, Collider: collider, Layer: layer})
	s.AddTriangle(Triangle{A: a, B: c, C: d, Normal: normal, Collider: collider, Layer: layer})
	return s
}

func (s *Scene) SyncTransforms() {}

// RaycastDown implements Port by testing a vertical ray against every
// triangle and keeping the nearest hit within range.
func (s *Scene) RaycastDown(origin common.Vec3, maxDistance float32, layerMask LayerMask) (Hit, bool) {
	best := Hit{}
	found := false
	bestDist := maxDistance
	for _, tri := range s.Triangles {
		if tri.Trigger || !layerMask.Has(tri.Layer) {
			continue
		}
		dist, ok := rayTriangleDown(origin, maxDistance, tri)
		if !ok || dist > bestDist {
			continue
		}
		bestDist = dist
		// Read the height off the triangle's own plane rather than
		// origin-dist, so a flat collider reports its exact height.
		n := tri.B.Sub(tri.A).Cross(tri.C.Sub(tri.A))
		y := tri.A[1] - (n[0]*(origin[0]-tri.A[0])+n[2]*(origin[2]-tri.A[2]))/n[1]
		best = Hit{
			Point:    common.Vec3{origin[0], y, origin[2]},
			Normal:   tri.Normal,
			Distance: dist,
			Collider: tri.Collider,
			Layer:    tri.Layer,
		}
		found = true
	}
	return best, found
}

// rayTriangleDown intersects the ray (origin, -Y, maxDistance) against tri
// and returns the travelled distance on hit.
func rayTriangleDown(origin common.Vec3, maxDistance float32, tri Triangle) (float32, bool) {
	const eps = 1e-7
	e1 := tri.B.Sub(tri.A)
	e2 := tri.C.Sub(tri.A)
	dir := common.Vec3{0, -1, 0}
	pvec := dir.Cross(e2)
	det := e1.Dot(pvec)
	if det > -eps && det < eps {
		return 0, false
	}
	invDet := 1 / det
	tvec := origin.Sub(tri.A)
	u := tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}
	qvec := tvec.Cross(e1)
	v := dir.Dot(qvec) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := e2.Dot(qvec) * invDet
	if t < 0 || t > maxDistance {
		return 0, false
	}
	return t, true
}

// CapsuleOccupied approximates a capsule/triangle overlap test by sampling
// the closest point between the capsule's segment and each triangle.
func (s *Scene) CapsuleOccupied(pointA, pointB common.Vec3, radius float32, layerMask LayerMask) bool {
	for _, tri := range s.Triangles {
		if tri.Trigger || !layerMask.Has(tri.Layer) {
			continue
		}
		if segmentTriangleDistance(pointA, pointB, tri) <= radius {
			return true
		}
	}
	return false
}

func segmentTriangleDistance(a, b common.Vec3, tri Triangle) float32 {
	best := float32(math.MaxFloat32)
	samples := 9
	for i := 0; i <= samples; i++ {
		t := float32(i) / float32(samples)
		p := common.Lerp(a, b, t)
		d := pointTriangleDistance(p, tri)
		if d < best {
			best = d
		}
	}
	return best
}

func pointTriangleDistance(p common.Vec3, tri Triangle) float32 {
	// Project p onto the triangle's plane, clamp to the triangle, return the
	// 3D distance. Good enough for a synthetic test backend; real engines
	// provide exact narrow-phase tests.
	ab := tri.B.Sub(tri.A)
	ac := tri.C.Sub(tri.A)
	ap := p.Sub(tri.A)

	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return p.Sub(tri.A).Len()
	}
	bp := p.Sub(tri.B)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return p.Sub(tri.B).Len()
	}
	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return p.Sub(tri.A.Add(ab.Mul(v))).Len()
	}
	cp := p.Sub(tri.C)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return p.Sub(tri.C).Len()
	}
	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return p.Sub(tri.A.Add(ac.Mul(w))).Len()
	}
	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return p.Sub(tri.B.Add(tri.C.Sub(tri.B).Mul(w))).Len()
	}
	denom := 1 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	closest := tri.A.Add(ab.Mul(v)).Add(ac.Mul(w))
	return p.Sub(closest).Len()
}

// transform is a simple rigid transform: rotation about Y plus translation.
// Moving-platform tests move a collider by registering a new transform for
// it in a SceneLocator.
type transform struct {
	position common.Vec3
	yaw      float32
	static   bool
}

func (t transform) LocalToWorld(local common.Vec3) common.Vec3 {
	return common.RotateY(local, t.yaw).Add(t.position)
}

func (t transform) WorldToLocal(world common.Vec3) common.Vec3 {
	return common.RotateY(world.Sub(t.position), -t.yaw)
}

func (t transform) LocalToWorldDir(dir common.Vec3) common.Vec3 {
	return common.RotateY(dir, t.yaw)
}

func (t transform) WorldToLocalDir(dir common.Vec3) common.Vec3 {
	return common.RotateY(dir, -t.yaw)
}

func (t transform) Static() bool { return t.static }

// StaticTransform returns a TransformLocator answer for an immobile
// collider at the origin with no rotation — the common case in tests.
func StaticTransform() Transform { return transform{static: true} }

// MovingTransform returns a TransformLocator answer for a collider at the
// given world position and yaw, flagged non-static so the character
// controller carries riders but never pushes position history for it
// (spec.md scenario 6).
func MovingTransform(position common.Vec3, yaw float32) Transform {
	return transform{position: position, yaw: yaw, static: false}
}

// SceneLocator is a TransformLocator backed by a simple map from
// ColliderID to its current Transform, refreshed by the caller each frame
// (e.g. before each Controller.Move) to model a moving platform.
type SceneLocator struct {
	transforms map[ColliderID]Transform
}

// NewSceneLocator returns an empty locator; every unregistered collider is
// treated as a static identity transform.
func NewSceneLocator() *SceneLocator {
	return &SceneLocator{transforms: make(map[ColliderID]Transform)}
}

// Set registers (or replaces) the transform for a collider.
func (l *SceneLocator) Set(id ColliderID, t Transform) {
	l.transforms[id] = t
}

func (l *SceneLocator) Transform(id ColliderID) (Transform, bool) {
	if t, ok := l.transforms[id]; ok {
		return t, true
	}
	return StaticTransform(), true
}
