package bake

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/nagadomi/motion-supporter/internal/motion"
	"github.com/nagadomi/motion-supporter/internal/skeleton"
)

// defaultPoolWorkers is the concurrency limit when a caller doesn't supply
// one, and also the hard cap spec §4.7 places on the pool regardless of how
// large the user-configured worker budget is: "Pool size = min(5,
// user_configured_max_workers)", mirroring
// original_source/src/service/ConvertIKtoFKService.py's
// ThreadPoolExecutor(max_workers=min(5, self.options.max_workers)).
const defaultPoolWorkers = 5

// Pool is the bounded concurrency shell around an Engine: one job per
// IK-capable bone that has keyframes, first-exception join semantics via
// errgroup.Group. mot's per-bone shard locking plus the disjointness of
// each job's ik_links and transferee across different IK bones makes
// concurrent mutation of the shared store safe.
type Pool struct {
	Engine     *Engine
	MaxWorkers int
}

// size is the effective concurrency limit: the caller's requested worker
// budget, clamped to defaultPoolWorkers per spec §4.7's min(5, ...) rule.
func (p *Pool) size() int {
	if p.MaxWorkers <= 0 || p.MaxWorkers > defaultPoolWorkers {
		return defaultPoolWorkers
	}
	return p.MaxWorkers
}

// RunAll bakes every job bone concurrently and returns the first job error,
// if any, only after every job has finished. A panic inside a job (spec §7
// taxonomy #4, "unexpected runtime fault") is recovered in the job itself
// rather than left to crash the process, since errgroup.Group does not
// recover panics raised on the goroutines it spawns; the panic is logged at
// DPanic severity and surfaced as that job's error so the other in-flight
// jobs still run to completion per spec §5's cancellation model.
func (p *Pool) RunAll(ctx context.Context, mot *motion.Motion) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.size())

	for _, bone := range jobBones(p.Engine.Model, mot) {
		bone := bone
		g.Go(func() error {
			return runJob(p.Engine.logger(), bone.Name, func() error {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				return p.Engine.BakeBone(mot, bone)
			})
		})
	}

	return g.Wait()
}

// runJob invokes fn, recovering any panic so one job's unexpected runtime
// fault (spec §7 taxonomy #4) can't crash the process or abort sibling jobs
// that errgroup.Group would otherwise let run to completion: a panic inside
// an errgroup goroutine is never recovered by errgroup itself.
func runJob(logger *zap.Logger, boneName string, fn func() error) (jobErr error) {
	defer func() {
		if r := recover(); r != nil {
			logger.DPanic("bake job panicked", zap.String("bone", boneName), zap.Any("recovered", r))
			jobErr = fmt.Errorf("bake: bone %q: panic: %v", boneName, r)
		}
	}()
	return fn()
}

// jobBones returns the bones a Pool would submit jobs for: every IK-capable
// bone in model with at least one keyframe in mot.
func jobBones(model *skeleton.Model, mot *motion.Motion) []*skeleton.Bone {
	var bones []*skeleton.Bone
	for _, b := range model.Bones() {
		if b.HasIK() && mot.HasKeys(b.Name) {
			bones = append(bones, b)
		}
	}
	return bones
}
