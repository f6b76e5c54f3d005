// Package ik implements the single-step Cyclic Coordinate Descent (CCD)
// solver: given a chain, a target position, and
// per-link angle/axis limits, it rotates each link a little closer to
// satisfying the target, mutating the motion store in place. The bake
// engine (internal/bake) owns deciding when the result has converged.
package ik

import (
	"github.com/nagadomi/motion-supporter/internal/fk"
	"github.com/nagadomi/motion-supporter/internal/geom"
	"github.com/nagadomi/motion-supporter/internal/motion"
	"github.com/nagadomi/motion-supporter/internal/skeleton"
)

// Link is one CCD-rotatable joint, with the degree-per-iteration step limit
// and optional Euler clamp the bake engine copied over from the IK bone's
// own link definition for this solve. ikLinks[0] is conventionally the
// effector itself and is never rotated (see Step).
type Link struct {
	Bone        *skeleton.Bone
	DegreeLimit float64
	HasLimit    bool
	LimitMin    geom.Vector3
	LimitMax    geom.Vector3
}

// Step performs up to maxCount CCD passes. ikLinks must be ordered
// tip-to-root with ikLinks[0] the effector entry, which is never rotated.
// effectorLinks is the root-to-tip FK chain ending at the effector bone;
// every ikLinks[i].Bone (i>0) must appear somewhere in effectorLinks, since
// CCD links are ancestors of the effector along the same chain.
func Step(effectorLinks skeleton.BoneLinks, mot *motion.Motion, fno int, targetPos geom.Vector3, ikLinks []Link, maxCount int) {
	if len(ikLinks) < 2 {
		return
	}
	effectorName := effectorLinks.Last().Name

	for pass := 0; pass < maxCount; pass++ {
		for i := 1; i < len(ikLinks); i++ {
			link := ikLinks[i]

			positions := fk.CalcGlobalPositions(effectorLinks, mot, fno)
			effectorPos, ok := positions[effectorName]
			if !ok {
				continue
			}
			linkPos, ok := positions[link.Bone.Name]
			if !ok {
				continue
			}

			vEff := effectorPos.Sub(linkPos)
			vTgt := targetPos.Sub(linkPos)
			if vEff.AeqZ() || vTgt.AeqZ() {
				// Numerical degeneracy: skip this link
				// for this iteration rather than rotate by an undefined
				// direction.
				continue
			}

			parentWorldRot := worldRotationExcluding(effectorLinks, mot, fno, link.Bone.Name)
			localEff := parentWorldRot.Inv().Rotate(vEff)
			localTgt := parentWorldRot.Inv().Rotate(vTgt)
			deltaLocal := geom.RotationBetween(localEff, localTgt, link.DegreeLimit)

			existing := mot.CalcBF(link.Bone.Name, fno)
			newLocal := deltaLocal.Mult(existing.Rotation)
			if link.HasLimit {
				newLocal = geom.ClampEuler(newLocal, link.LimitMin, link.LimitMax)
			}
			existing.Rotation = newLocal
			mot.RegistBF(existing, link.Bone.Name, fno)
		}
	}
}

// worldRotationExcluding composes the world rotation of every ancestor of
// boneName in links (root-to-tip order), stopping before boneName itself --
// i.e. the world orientation of boneName's parent joint.
func worldRotationExcluding(links skeleton.BoneLinks, mot *motion.Motion, fno int, boneName string) geom.Quaternion {
	rot := geom.Identity
	for _, b := range links {
		if b.Name == boneName {
			break
		}
		rot = rot.Mult(mot.CalcBF(b.Name, fno).Rotation)
	}
	return rot
}
