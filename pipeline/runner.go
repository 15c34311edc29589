package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/agrofield/cropsense/catalog"
	"github.com/agrofield/cropsense/dataset"
	"github.com/agrofield/cropsense/synth"
)

// CorrectedPrefix is prepended to an input's file name to form its
// corrected output name.
const CorrectedPrefix = "corrected_"

// Report describes one finished correction run.
type Report struct {
	RunID        string
	Input        string
	Output       string
	Rows         int
	FallbackRows int
	UnknownCrops map[string]int
	Seed         int64
	StartedAt    time.Time
	Duration     time.Duration
}

// Options configure a Runner. Zero values fall back to the built-in
// catalog, the default logger, a time-based seed, and no metrics or
// events.
type Options struct {
	Catalog   *catalog.Catalog
	Seed      int64
	Logger    *slog.Logger
	Metrics   *Metrics
	Publisher *Publisher
}

// Runner corrects dataset files.
type Runner struct {
	cat     *catalog.Catalog
	seed    int64
	logger  *slog.Logger
	metrics *Metrics
	pub     *Publisher
}

// NewRunner builds a Runner from options.
func NewRunner(opts Options) *Runner {
	cat := opts.Catalog
	if cat == nil {
		cat = catalog.Builtin()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		cat:     cat,
		seed:    opts.Seed,
		logger:  logger,
		metrics: opts.Metrics,
		pub:     opts.Publisher,
	}
}

// CorrectFile corrects one dataset file into output. The output is only
// written after the whole dataset corrected cleanly; a failing run leaves
// no partial file behind.
func (r *Runner) CorrectFile(ctx context.Context, input, output string) (*Report, error) {
	report := &Report{
		RunID:     uuid.New().String(),
		Input:     input,
		Output:    output,
		Seed:      r.seed,
		StartedAt: time.Now(),
	}
	if report.Seed == 0 {
		report.Seed = time.Now().UnixNano()
	}

	logger := r.logger.With("run_id", report.RunID, "input", input)

	src, err := dataset.ReadFile(input)
	if err != nil {
		return nil, r.finishFailed(ctx, logger, report, err)
	}

	corrector := synth.NewCorrector(synth.New(r.cat, synth.NewRand(report.Seed)))
	corrected, stats, err := corrector.Correct(src)
	if err != nil {
		return nil, r.finishFailed(ctx, logger, report, err)
	}
	report.Rows = stats.Rows
	report.FallbackRows = stats.FallbackRows()
	report.UnknownCrops = stats.UnknownProfiles

	if err := corrected.WriteFile(output); err != nil {
		return nil, r.finishFailed(ctx, logger, report, err)
	}
	report.Duration = time.Since(report.StartedAt)

	for crop, rows := range stats.UnknownProfiles {
		logger.Debug("crop not in profile catalog, used default profile", "crop", crop, "rows", rows)
	}
	for crop, rows := range stats.UnmappedSeasons {
		logger.Debug("crop has no season assignment, used default weather", "crop", crop, "rows", rows)
	}
	logger.Info("dataset corrected",
		"output", output,
		"rows", report.Rows,
		"fallback_rows", report.FallbackRows,
		"seed", report.Seed,
		"duration", report.Duration)

	r.metrics.RecordRun("completed", report.Rows, report.FallbackRows, report.Duration)
	if err := r.pub.Publish(ctx, completedEvent(report)); err != nil {
		logger.Warn("failed to publish run event", "error", err)
	}
	return report, nil
}

// finishFailed accounts for a failed run and returns its cause.
func (r *Runner) finishFailed(ctx context.Context, logger *slog.Logger, report *Report, cause error) error {
	report.Duration = time.Since(report.StartedAt)
	logger.Error("correction run failed", "error", cause, "duration", report.Duration)
	r.metrics.RecordRun("failed", 0, 0, report.Duration)
	if err := r.pub.Publish(ctx, failedEvent(report, cause)); err != nil {
		logger.Warn("failed to publish run event", "error", err)
	}
	return cause
}

// CorrectGlob corrects every dataset file the patterns match, writing
// outputs via OutputPath. The batch stops at the first failing file.
func (r *Runner) CorrectGlob(ctx context.Context, patterns []string, outDir string) ([]*Report, error) {
	inputs, err := ResolveInputs(patterns)
	if err != nil {
		return nil, err
	}

	reports := make([]*Report, 0, len(inputs))
	for _, input := range inputs {
		report, err := r.CorrectFile(ctx, input, OutputPath(input, outDir))
		if err != nil {
			return reports, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// OutputPath names the corrected copy of an input file: the input's base
// name with CorrectedPrefix, placed in outDir, or next to the input when
// outDir is empty.
func OutputPath(input, outDir string) string {
	if outDir == "" {
		outDir = filepath.Dir(input)
	}
	return filepath.Join(outDir, CorrectedPrefix+filepath.Base(input))
}
