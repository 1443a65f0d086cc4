// Package pipeline orchestrates the full generation run: catalog
// normalization, greedy construction, genetic optimization, conflict
// resolution, and NEP compliance auditing.
package pipeline

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kasakgupta/timetable-scheduler/internal/catalog"
	"github.com/kasakgupta/timetable-scheduler/internal/compliance"
	"github.com/kasakgupta/timetable-scheduler/internal/dto"
	"github.com/kasakgupta/timetable-scheduler/internal/genetic"
	"github.com/kasakgupta/timetable-scheduler/internal/greedy"
	"github.com/kasakgupta/timetable-scheduler/internal/resolver"
	"github.com/kasakgupta/timetable-scheduler/internal/rng"
	appErrors "github.com/kasakgupta/timetable-scheduler/pkg/errors"
	"github.com/kasakgupta/timetable-scheduler/pkg/config"
)

// Pipeline wires the four generation phases plus the compliance auditor
// behind a single Run entrypoint.
type Pipeline struct {
	cfg       config.SchedulerConfig
	validator *validator.Validate
	logger    *zap.Logger
}

// New builds a Pipeline bound to the scheduler configuration.
func New(cfg config.SchedulerConfig, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{cfg: cfg, validator: validator.New(), logger: logger}
}

// Run executes catalog normalization, greedy construction, genetic
// optimization, conflict resolution, and compliance auditing, returning
// the final rendered document. The context is checked once before greedy
// construction; greedy stops with an error at a requirement boundary, and
// the genetic optimizer stops at a generation boundary and returns its
// best chromosome so far, which the remaining phases still process.
func (p *Pipeline) Run(ctx context.Context, req dto.GenerateRequest) (*dto.ScheduleDocument, error) {
	if err := p.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, "invalid generation request")
	}

	cat, err := catalog.Normalize(req)
	if err != nil {
		return nil, err
	}
	p.logger.Info("catalog normalized",
		zap.Int("requirements", len(cat.Requirements)),
		zap.Int("rooms", len(cat.Rooms)),
		zap.Int("faculty", len(cat.Faculty)),
	)

	if err := ctx.Err(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrCancelled.Code, appErrors.ErrCancelled.Message)
	}

	greedyScheduler := greedy.New(p.cfg, cat, req.HeavySubjects)
	seed, err := greedyScheduler.Schedule(ctx)
	if err != nil {
		return nil, err
	}
	p.logger.Info("greedy construction complete",
		zap.Int("placed", len(seed.Assignments)),
		zap.Int("unplaced", len(seed.Unplaced)),
	)

	level := req.OptimizationLevel
	if level == "" {
		level = "med"
	}

	optimizer := genetic.New(p.cfg, cat, req.HeavySubjects, rng.New(req.RandomSeed), level)
	result, err := optimizer.Optimize(ctx, seed)
	if err != nil {
		return nil, err
	}
	optimized := genetic.ChromosomeToSchedule(result.Best)
	optimized.Unplaced = seed.Unplaced
	optimized.GenerationsUsed = result.GenerationsUsed
	optimized.PopulationSize = result.PopulationSize
	p.logger.Info("genetic optimization complete",
		zap.Float64("fitness", optimized.FitnessScore),
		zap.Int("generations", optimized.GenerationsUsed),
	)

	res := resolver.New(p.cfg, cat)
	resolved, err := res.Resolve(ctx, optimized)
	if err != nil {
		return nil, err
	}
	p.logger.Info("conflict resolution complete", zap.Int("residual_conflicts", len(resolved.Conflicts)))

	auditor := compliance.New(p.cfg)
	resolved.Compliance = auditor.Audit(req.ProgramType, cat.Subjects)

	doc := p.render(cat, resolved)
	doc.RunID = uuid.NewString()
	return doc, nil
}
