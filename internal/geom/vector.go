// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package geom

import "math"

// Vector3 is a 3 element vector, also used as a world-space point.
type Vector3 struct {
	X, Y, Z float64
}

// ZeroV is the zero vector.
var ZeroV = Vector3{}

// Eq (==) returns true if every element of v equals the corresponding
// element of a.
func (v Vector3) Eq(a Vector3) bool { return v.X == a.X && v.Y == a.Y && v.Z == a.Z }

// Aeq (~=) returns true if every element of v is within Epsilon of the
// corresponding element of a.
func (v Vector3) Aeq(a Vector3) bool { return Aeq(v.X, a.X) && Aeq(v.Y, a.Y) && Aeq(v.Z, a.Z) }

// AeqTol (~=) returns true if every element of v is within tol of the
// corresponding element of a, for callers that need a coarser tolerance
// than Epsilon (e.g. matching the 3-decimal logging precision rest
// positions are authored and compared at).
func (v Vector3) AeqTol(a Vector3, tol float64) bool {
	return AeqTol(v.X, a.X, tol) && AeqTol(v.Y, a.Y, tol) && AeqTol(v.Z, a.Z, tol)
}

// Add (+) returns v+a.
func (v Vector3) Add(a Vector3) Vector3 { return Vector3{v.X + a.X, v.Y + a.Y, v.Z + a.Z} }

// Sub (-) returns v-a.
func (v Vector3) Sub(a Vector3) Vector3 { return Vector3{v.X - a.X, v.Y - a.Y, v.Z - a.Z} }

// Scale (*) returns v scaled by s.
func (v Vector3) Scale(s float64) Vector3 { return Vector3{v.X * s, v.Y * s, v.Z * s} }

// Neg returns -v.
func (v Vector3) Neg() Vector3 { return Vector3{-v.X, -v.Y, -v.Z} }

// Dot returns the dot product of v and a.
func (v Vector3) Dot(a Vector3) float64 { return v.X*a.X + v.Y*a.Y + v.Z*a.Z }

// Cross returns the cross product v x a.
func (v Vector3) Cross(a Vector3) Vector3 {
	return Vector3{
		v.Y*a.Z - v.Z*a.Y,
		v.Z*a.X - v.X*a.Z,
		v.X*a.Y - v.Y*a.X,
	}
}

// Len returns the length (magnitude) of v.
func (v Vector3) Len() float64 { return math.Sqrt(v.Dot(v)) }

// AeqZ returns true if v is close enough to the zero vector that the
// difference makes no practical difference.
func (v Vector3) AeqZ() bool { return v.Dot(v) < Epsilon }

// Unit returns v normalized to length 1. The zero vector is returned
// unchanged: callers that need to detect degeneracy should check AeqZ first.
func (v Vector3) Unit() Vector3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Each applies f to every component and returns the result, used by the
// acceptance rule's component-wise threshold check.
func (v Vector3) Each(f func(float64) float64) Vector3 {
	return Vector3{f(v.X), f(v.Y), f(v.Z)}
}

// AllLE returns true if every component of v (after Each(math.Abs)) is
// less than or equal to tol.
func (v Vector3) AllLE(tol float64) bool {
	return math.Abs(v.X) <= tol && math.Abs(v.Y) <= tol && math.Abs(v.Z) <= tol
}
