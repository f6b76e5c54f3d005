// Package bake drives the per-IK-bone conversion from CCD-solved IK
// keyframes to pure FK rotation keyframes: densify, build the FK/CCD
// chains, run the CCD convergence loop frame by frame, and transfer the
// resulting rotation onto a visible transferee bone. internal/bake/pool.go
// adds the bounded concurrency shell around one Engine call per bone.
package bake

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/nagadomi/motion-supporter/internal/fk"
	"github.com/nagadomi/motion-supporter/internal/geom"
	"github.com/nagadomi/motion-supporter/internal/ik"
	"github.com/nagadomi/motion-supporter/internal/motion"
	"github.com/nagadomi/motion-supporter/internal/skeleton"
)

// acceptDistance is the distance, in model units, below which a CCD
// iteration's result is considered converged and baking moves to the next
// frame without spending the rest of the bone's iteration budget.
const acceptDistance = 0.1

// stallTolerance is the per-component bound on the current diff (target
// minus effector position): once every component is at most this, or the
// diff is exactly the previous iteration's, the frame is treated as
// stalled ("no further progress possible").
const stallTolerance = 0.05

// densifyDegrees and densifyLength are the thresholds GetDifferFnos uses to
// decide a frame needs its own explicit key before baking, so CCD samples
// the authored curve finely enough to reproduce it.
const (
	densifyDegrees = 20.0
	densifyLength  = 3.0
)

// Engine bakes IK bones of a single skeleton into FK keyframes on a shared
// motion store. ParentSuffix names the convention by which an IK bone's
// parent-adjustment companion bone is found (e.g. a foot IK bone's "leg IK
// parent" bone); it is kept as engine-level configuration rather than a
// string literal buried in the transfer step, since different skeleton
// authoring conventions spell it differently.
type Engine struct {
	Model        *skeleton.Model
	Logger       *zap.Logger
	ParentSuffix string
}

// NewEngine returns an Engine with the default parent-suffix convention.
func NewEngine(model *skeleton.Model, logger *zap.Logger) *Engine {
	return &Engine{Model: model, Logger: logger, ParentSuffix: "親"}
}

func (e *Engine) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

// BakeBone converts ikBone's IK-driven keyframes in mot into FK keyframes,
// mutating mot in place: the IK bone's own track is removed and its
// rotation is folded into the selected transferee bone's track at every
// frame the IK bone was keyed (after densification).
func (e *Engine) BakeBone(mot *motion.Motion, ikBone *skeleton.Bone) error {
	if !ikBone.HasIK() {
		return &DomainError{BoneName: ikBone.Name, Reason: "bone has no ik spec"}
	}
	log := e.logger().With(zap.String("bone", ikBone.Name))
	log.Info("baking ik bone")

	effectorBone, ok := e.Model.BoneByIndex(ikBone.IK.TargetIndex)
	if !ok {
		return &DomainError{BoneName: ikBone.Name, Reason: fmt.Sprintf("target index %d does not resolve", ikBone.IK.TargetIndex)}
	}

	targetLinks, err := e.Model.LinkToTop(ikBone.Name, false)
	if err != nil {
		return &DomainError{BoneName: ikBone.Name, Reason: err.Error()}
	}
	effectorLinks, err := e.Model.LinkToTop(effectorBone.Name, false)
	if err != nil {
		return &DomainError{BoneName: ikBone.Name, Reason: err.Error()}
	}

	degreeLimit := geom.Deg(ikBone.IK.LimitRadian)
	ikLinks := []ik.Link{{Bone: effectorBone, DegreeLimit: degreeLimit}}
	for _, link := range ikBone.IK.Links {
		linkBone, ok := e.Model.BoneByIndex(link.BoneIndex)
		if !ok {
			return &DomainError{BoneName: ikBone.Name, Reason: fmt.Sprintf("link index %d does not resolve", link.BoneIndex)}
		}
		if linkBone.HasFixedAxis() {
			// Twist-only (fixed-axis) bones are never
			// CCD-rotatable; skip without breaking the chain ordering of
			// the remaining links.
			continue
		}
		ikLinks = append(ikLinks, ik.Link{
			Bone:        linkBone,
			DegreeLimit: degreeLimit,
			HasLimit:    link.HasLimit,
			LimitMin:    link.LimitMin,
			LimitMax:    link.LimitMax,
		})
	}

	transferee := e.selectTransferee(ikBone, effectorBone)
	localXAxis := e.Model.LocalXAxis(transferee.Name)

	boneName := ikBone.Name
	fnos := mot.GetDifferFnos(0, []string{boneName}, densifyDegrees, densifyLength)
	for i, fno := range fnos {
		bf := mot.CalcBF(boneName, fno)
		mot.RegistBF(bf, boneName, fno)
		if i > 0 && i%1000 == 0 {
			log.Debug("densifying", zap.Int("inserted", i), zap.Int("total", len(fnos)))
		}
	}

	fnos = mot.GetBoneFnos(boneName)
	orgMotion := mot.Copy()
	mot.DeleteBone(boneName)

	lastFno := 0
	if len(fnos) > 0 {
		lastFno = fnos[len(fnos)-1]
	}

	for idx, fno := range fnos {
		e.bakeFrame(mot, orgMotion, fno, ikBone, effectorBone, effectorLinks, targetLinks, ikLinks)
		e.transferRotation(mot, orgMotion, ikBone, transferee, localXAxis, fno)

		if lastFno > 0 && idx%1000 == 0 {
			log.Debug("baking", zap.Int("fno", fno), zap.Float64("percent", float64(fno)/float64(lastFno)*100))
		}
	}

	log.Info("baked ik bone", zap.Int("frames", len(fnos)), zap.String("transferee", transferee.Name))
	return nil
}

// transfereePositionTol is the rest-position match tolerance for transferee
// selection: spec §4.6 step 3 compares rest positions "to the logging
// precision used throughout -- 3 decimals," a coarser tolerance than
// geom.Epsilon's 1e-6.
const transfereePositionTol = 0.0005

// selectTransferee picks the bone the solved rotation is folded onto: the
// effector itself if visible, else the first child (by index) of ikBone
// whose rest position coincides with the effector's, else the effector as a
// fallback.
func (e *Engine) selectTransferee(ikBone, effectorBone *skeleton.Bone) *skeleton.Bone {
	if effectorBone.Has(skeleton.Visible) {
		return effectorBone
	}
	for _, child := range e.Model.ChildBones(ikBone) {
		if child.Position.AeqTol(effectorBone.Position, transfereePositionTol) {
			return child
		}
	}
	return effectorBone
}

// bakeFrame runs the CCD convergence loop for a single frame. It first
// registers orgMotion's starting pose on every ik link, then keeps a
// snapshot of the best link rotations seen so far: a regression step
// leaves that snapshot untouched (mot keeps the regressed pose while the
// loop continues), and the snapshot is registered on mot once the loop
// ends.
func (e *Engine) bakeFrame(mot, orgMotion *motion.Motion, fno int, ikBone, effectorBone *skeleton.Bone, effectorLinks, targetLinks skeleton.BoneLinks, ikLinks []ik.Link) {
	targetPos := fk.CalcGlobalPositions(targetLinks, orgMotion, fno)[ikBone.Name]

	best := make(map[string]motion.Keyframe, len(ikLinks)-1)
	for _, link := range ikLinks[1:] {
		bf := orgMotion.CalcBF(link.Bone.Name, fno)
		best[link.Bone.Name] = bf
		mot.RegistBF(bf, link.Bone.Name, fno)
	}

	var prevDiff *geom.Vector3
	for iter := 0; iter < ikBone.IK.Loop; iter++ {
		ik.Step(effectorLinks, mot, fno, targetPos, ikLinks, 1)

		nowPos := fk.CalcGlobalPositions(effectorLinks, mot, fno)[effectorBone.Name]
		diff := targetPos.Sub(nowPos)
		diffLen := diff.Len()

		improved := prevDiff == nil || diffLen < prevDiff.Len()
		if !improved {
			if (prevDiff != nil && diff.Eq(*prevDiff)) || diff.AllLE(stallTolerance) {
				break
			}
			continue
		}

		for _, link := range ikLinks[1:] {
			best[link.Bone.Name] = mot.CalcBF(link.Bone.Name, fno)
		}
		if diffLen < acceptDistance {
			break
		}
		stalled := (prevDiff != nil && diff.Eq(*prevDiff)) || diff.AllLE(stallTolerance)
		d := diff
		prevDiff = &d
		if stalled {
			break
		}
	}

	for _, link := range ikLinks[1:] {
		mot.RegistBF(best[link.Bone.Name], link.Bone.Name, fno)
	}
}

// transferRotation folds ikBone's (and its parent-suffix companion's, if
// any) solved rotation onto transferee at fno via a swing-twist split about
// localXAxis, then deletes nothing further: the ik bone's own track was
// already removed by the caller before the per-frame loop began.
func (e *Engine) transferRotation(mot, orgMotion *motion.Motion, ikBone, transferee *skeleton.Bone, localXAxis geom.Vector3, fno int) {
	ikBf := orgMotion.CalcBF(ikBone.Name, fno)
	parentBf := orgMotion.CalcBF(ikBone.Name+e.ParentSuffix, fno)
	ikQQ := parentBf.Rotation.Mult(ikBf.Rotation)

	qx, _, _, qyz := geom.SeparateLocalQQ(fno, ikBone.Name, ikQQ, localXAxis)
	globalXQQ := geom.FromAxisAndAngle(localXAxis, qx.ToDegree())

	transfereeBf := mot.CalcBF(transferee.Name, fno)
	transfereeBf.Rotation = globalXQQ.Mult(qyz).Mult(transfereeBf.Rotation)
	mot.RegistBF(transfereeBf, transferee.Name, fno)
}
