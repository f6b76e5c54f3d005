// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package geom

// Transform is a translate-then-rotate affine transform, excluding scale and
// shear. It is the composition primitive the FK evaluator chains down a
// bone list: each bone contributes Translate(bone.Position-parent.Position
// plus the keyframe translation) then Rotate(bone's keyframe rotation).
//
// Adapted from vu/math/lin.T, which keeps one 4x4-equivalent matrix type
// for general rendering transforms; the bake core only ever needs
// translate+rotate composition, so Transform drops the 4x4 matrix entirely
// in favor of this lighter loc+rot pair, immutable like the rest of geom.
type Transform struct {
	Loc Vector3
	Rot Quaternion
}

// IdentityTransform is the transform at the origin with no rotation.
var IdentityTransform = Transform{Rot: Identity}

// Mult (*) returns the composite transform t*a: a point is transformed by a
// first, then by t, so t acts as the parent frame of a, matching the FK
// evaluator's root-to-tip walk.
func (t Transform) Mult(a Transform) Transform {
	return Transform{
		Loc: t.Rot.Rotate(a.Loc).Add(t.Loc),
		Rot: t.Rot.Mult(a.Rot),
	}
}

// Apply transforms the point v by t: rotate then translate.
func (t Transform) Apply(v Vector3) Vector3 {
	return t.Rot.Rotate(v).Add(t.Loc)
}

// WorldPosition returns the world-space position represented by t, i.e.
// t.Apply(ZeroV).
func (t Transform) WorldPosition() Vector3 { return t.Apply(ZeroV) }
