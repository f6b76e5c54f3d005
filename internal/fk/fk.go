// Package fk evaluates forward kinematics: given a bone chain and a motion
// store, it computes the world-space position of every bone in the chain at
// a given frame by composing each bone's translate-then-rotate transform
// down the chain, root first.
package fk

import (
	"github.com/nagadomi/motion-supporter/internal/geom"
	"github.com/nagadomi/motion-supporter/internal/motion"
	"github.com/nagadomi/motion-supporter/internal/skeleton"
)

// CalcGlobalPositions walks links from root to tip, composing
// translate(bone.Position-parent.Position+keyframe.Translation) *
// rotate(keyframe.Rotation) into a running transform, and returns the
// resulting world position of every listed bone keyed by name. The keyframe
// translation is the bone's own authored local-space offset from its rest
// position (an IK bone's translation key is how its target position is
// expressed). The last entry of links is expected to be the effector or
// the IK bone itself.
func CalcGlobalPositions(links skeleton.BoneLinks, mot *motion.Motion, fno int) map[string]geom.Vector3 {
	positions := make(map[string]geom.Vector3, len(links))
	current := geom.IdentityTransform
	var prev *skeleton.Bone
	for _, bone := range links {
		restOffset := bone.Position
		if prev != nil {
			restOffset = bone.Position.Sub(prev.Position)
		}
		bf := mot.CalcBF(bone.Name, fno)
		offset := restOffset.Add(bf.Translation)
		current = current.Mult(geom.Transform{Loc: offset, Rot: bf.Rotation})
		positions[bone.Name] = current.WorldPosition()
		prev = bone
	}
	return positions
}
