// pkg/pipeline/runner.go
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StageFunc is one unit of pipeline work.
type StageFunc func(ctx context.Context) error

// Stage pairs a name with the work it performs.
type Stage struct {
	Name string
	Run  StageFunc
}

// StageResult records the outcome of one executed stage.
type StageResult struct {
	Name     string
	Category ErrorCategory
	Err      error
	Duration time.Duration
}

// RunSummary aggregates the outcome of a pipeline run.
type RunSummary struct {
	RunID     string
	StartTime time.Time
	EndTime   time.Time
	Stages    []StageResult
	Failed    bool
}

// Duration returns the total wall time of the run.
func (s RunSummary) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}

// Runner executes stages sequentially and fails fast: the first stage
// error stops the run, and stages after it never execute.
type Runner struct {
	logger *zap.Logger
	stages []Stage
}

// NewRunner creates an empty Runner.
func NewRunner(logger *zap.Logger) *Runner {
	return &Runner{logger: logger.Named("pipeline")}
}

// Add appends a stage to the run order.
func (r *Runner) Add(name string, fn StageFunc) *Runner {
	r.stages = append(r.stages, Stage{Name: name, Run: fn})
	return r
}

// Run executes the stages in order. A cancelled context stops the run
// before the next stage starts.
func (r *Runner) Run(ctx context.Context) RunSummary {
	summary := RunSummary{
		RunID:     uuid.New().String(),
		StartTime: time.Now(),
	}

	r.logger.Info("pipeline run starting",
		zap.String("run_id", summary.RunID),
		zap.Int("stages", len(r.stages)))

	for _, stage := range r.stages {
		if err := ctx.Err(); err != nil {
			summary.Failed = true
			summary.Stages = append(summary.Stages, StageResult{
				Name:     stage.Name,
				Category: ErrorCategoryUnknown,
				Err:      err,
			})
			r.logger.Error("pipeline run cancelled",
				zap.String("run_id", summary.RunID),
				zap.String("stage", stage.Name),
				zap.Error(err))
			break
		}

		start := time.Now()
		r.logger.Info("stage starting",
			zap.String("run_id", summary.RunID),
			zap.String("stage", stage.Name))

		err := stage.Run(ctx)
		result := StageResult{
			Name:     stage.Name,
			Category: Categorize(err),
			Err:      err,
			Duration: time.Since(start),
		}
		summary.Stages = append(summary.Stages, result)

		if err != nil {
			summary.Failed = true
			r.logger.Error("stage failed, aborting run",
				zap.String("run_id", summary.RunID),
				zap.String("stage", stage.Name),
				zap.String("category", result.Category.String()),
				zap.Duration("duration", result.Duration),
				zap.Error(err))
			break
		}

		r.logger.Info("stage complete",
			zap.String("run_id", summary.RunID),
			zap.String("stage", stage.Name),
			zap.Duration("duration", result.Duration))
	}

	summary.EndTime = time.Now()
	r.logger.Info("pipeline run finished",
		zap.String("run_id", summary.RunID),
		zap.Bool("failed", summary.Failed),
		zap.Int("stages_executed", len(summary.Stages)),
		zap.Duration("duration", summary.Duration()))
	return summary
}
