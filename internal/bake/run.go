package bake

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/nagadomi/motion-supporter/internal/motion"
	"github.com/nagadomi/motion-supporter/internal/skeleton"
)

// Run is the top-level conversion entrypoint: build an Engine and Pool for
// model, bake every IK bone in mot, and log the outcome before returning.
// A DomainError from any job is logged at Error level identifying the
// offending bone; any other panic surfacing from a job is recovered,
// logged, and returned as an error rather than crashing the whole run. The
// logger is always flushed before Run returns, mirroring a single
// deferred shutdown rather than leaving that to the caller.
func Run(ctx context.Context, model *skeleton.Model, mot *motion.Motion, logger *zap.Logger, maxWorkers int) (err error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	defer func() {
		if r := recover(); r != nil {
			logger.DPanic("bake run panicked", zap.Any("recovered", r))
			err = fmt.Errorf("bake: panic: %v", r)
		}
		_ = logger.Sync()
	}()

	engine := NewEngine(model, logger)
	pool := &Pool{Engine: engine, MaxWorkers: maxWorkers}

	if runErr := pool.RunAll(ctx, mot); runErr != nil {
		var domainErr *DomainError
		if errors.As(runErr, &domainErr) {
			logger.Error("bake failed: domain error", zap.String("bone", domainErr.BoneName), zap.Error(domainErr))
		} else {
			logger.Error("bake failed", zap.Error(runErr))
		}
		return runErr
	}

	logger.Info("bake run complete")
	return nil
}
