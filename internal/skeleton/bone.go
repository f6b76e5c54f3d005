// Package skeleton models the rest-pose bone hierarchy and IK metadata that
// drives the bake engine: bones, parent/child indices, and per-bone IK
// specs. Adapted from the joint/parent-index convention in vu/load/iqm.go
// (iqmjoint: "Parent int32; parent < 0 means root bone"), generalized from a
// flat animation-file joint array into a named, IK-aware bone graph.
package skeleton

import "github.com/nagadomi/motion-supporter/internal/geom"

// Flag bits describing a bone's editor/runtime behavior.
type Flag uint32

const (
	// Rotatable bones accept a keyframed rotation; non-rotatable bones are
	// fixed reference points (rare, but the data model allows it).
	Rotatable Flag = 1 << iota
	// Visible bones are candidates for rotation-transfer target selection
	// (see the bake engine's Engine.selectTransferee).
	Visible
)

// Has reports whether flag bits f are all set.
func (b *Bone) Has(f Flag) bool { return b.Flags&f == f }

// IKLink is one ancestor bone the CCD solver is permitted to rotate,
// ordered (within IKSpec.Links) from near-effector to root.
type IKLink struct {
	BoneIndex int
	HasLimit  bool
	LimitMin  geom.Vector3 // degrees, Euler clamp lower bound.
	LimitMax  geom.Vector3 // degrees, Euler clamp upper bound.
}

// IKSpec is the IK metadata attached to a bone whose Flags has no bearing on
// IK-ness: IK-ness is indicated solely by a non-nil IKSpec on Bone.
type IKSpec struct {
	TargetIndex int      // effector bone index.
	Loop        int      // max CCD iterations per frame.
	LimitRadian float64  // per-iteration max angular step, radians.
	Links       []IKLink // near-effector to root order.
}

// Bone is a single node in the rest-pose skeleton.
type Bone struct {
	Name         string
	Index        int
	ParentIndex  int // -1 for a root bone, matching the iqmjoint convention.
	Position     geom.Vector3
	LocalXVector *geom.Vector3 // optional per-bone X axis override.
	FixedAxis    geom.Vector3  // non-zero means twist-only.
	Flags        Flag
	IK           *IKSpec
}

// HasIK reports whether this bone drives an IK chain.
func (b *Bone) HasIK() bool { return b.IK != nil }

// HasFixedAxis reports whether rotation about this bone is twist-only.
func (b *Bone) HasFixedAxis() bool { return !b.FixedAxis.AeqZ() }

// IsRoot reports whether this bone has no parent.
func (b *Bone) IsRoot() bool { return b.ParentIndex < 0 }
