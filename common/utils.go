// Package common holds the small vector and numeric helpers shared by every
// package in this module. It is adapted from the teacher's own `common`
// package: the same philosophy (thin free functions over a shared point
// type) but reworked to operate on value-typed vectors instead of in-place
// slice mutation, which is the idiomatic Go shape for this kind of code.
package common

import "github.com/go-gl/mathgl/mgl32"

// Vec3 is the point/vector type used throughout this module: every pole
// sample, ring vertex, and query result is one of these.
type Vec3 = mgl32.Vec3

// Ordered is the set of types Clamp accepts.
type Ordered interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Clamp restricts value to [lo, hi].
func Clamp[T Ordered](value, lo, hi T) T {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

// Sqr returns the square of a.
func Sqr(a float32) float32 { return a * a }
