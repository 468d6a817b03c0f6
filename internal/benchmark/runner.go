// internal/benchmark/runner.go
// Package benchmark runs the trial loop that pits the single-pass
// strategy against the two-round strategy and aggregates the judge's
// verdicts.
package benchmark

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/factorylens/hazardbench/internal/appconfig"
	"github.com/factorylens/hazardbench/internal/assess"
	"github.com/factorylens/hazardbench/internal/hazard"
	"github.com/factorylens/hazardbench/internal/judge"
	"github.com/factorylens/hazardbench/internal/metrics"
	"github.com/factorylens/hazardbench/internal/providers"
)

// FullBenchmarkTrials is the trial count a full benchmark requires.
const FullBenchmarkTrials = 5

// ValidationError reports a benchmark invocation that cannot start,
// such as a wrong trial count. It aborts the run before any model call.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "benchmark: " + e.Reason
}

// GroundTruthSource supplies the authoritative reference assessment for
// an image. The console implementation blocks on human input; tests
// substitute a scripted source.
type GroundTruthSource interface {
	GroundTruth(imagePath string) (hazard.GroundTruth, error)
}

// Runner owns one benchmark run. Trials execute sequentially; each
// trial's records are owned by that trial and never mutated after the
// judge has scored it.
type Runner struct {
	cfg        *appconfig.Config
	singlePass *assess.SinglePass
	twoRound   *assess.TwoRound
	judge      judge.Judge
	truths     GroundTruthSource
	latencies  *metrics.Aggregator
}

// NewRunner wires a runner from the shared provider and the injected
// human-input collaborators.
func NewRunner(cfg *appconfig.Config, provider providers.VisionProvider, answers assess.AnswerSource, truths GroundTruthSource, j judge.Judge) *Runner {
	return &Runner{
		cfg:        cfg,
		singlePass: assess.NewSinglePass(cfg, provider),
		twoRound:   assess.NewTwoRound(cfg, provider, answers),
		judge:      j,
		truths:     truths,
		latencies:  metrics.NewAggregator(),
	}
}

// RunFull executes the complete benchmark over exactly
// FullBenchmarkTrials images. A trial whose image cannot be read is
// skipped and the summary reflects completed trials only; a wrong path
// count is a ValidationError raised before any model call.
func (r *Runner) RunFull(ctx context.Context, imagePaths []string) (*hazard.Report, error) {
	if len(imagePaths) != FullBenchmarkTrials {
		return nil, &ValidationError{
			Reason: fmt.Sprintf("a full benchmark requires exactly %d image paths, got %d", FullBenchmarkTrials, len(imagePaths)),
		}
	}

	bar := progressbar.NewOptions(len(imagePaths),
		progressbar.OptionSetDescription("Benchmarking hazard images"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
	)

	trials := make([]hazard.Trial, 0, len(imagePaths))
	for i, path := range imagePaths {
		trial, err := r.runTrial(ctx, i+1, path)
		if err != nil {
			log.Printf("Skipping trial %d (%s): %v", i+1, path, err)
			_ = bar.Add(1)
			continue
		}
		trials = append(trials, trial)
		_ = bar.Add(1)
	}

	r.latencies.LogSummary()

	return &hazard.Report{
		Summary:         hazard.Summarize(trials),
		DetailedResults: trials,
	}, nil
}

// runTrial executes both strategies, collects the ground truth, and has
// the judge score the pair. Only image acquisition failures abort a
// trial; per-call model failures surface as error records inside it.
func (r *Runner) runTrial(ctx context.Context, number int, path string) (hazard.Trial, error) {
	img, err := assess.LoadImage(path)
	if err != nil {
		return hazard.Trial{}, err
	}

	log.Printf("Trial %d/%d: %s", number, FullBenchmarkTrials, path)

	start := time.Now()
	single := r.singlePass.Assess(ctx, img)
	r.latencies.Observe(metrics.StageSinglePass, time.Since(start))
	log.Printf("Trial %d single-pass mode: %s (confidence %s)", number, single.Mode, single.Record.Confidence)

	start = time.Now()
	two := r.twoRound.Run(ctx, img)
	r.latencies.Observe(metrics.StageTwoRound, time.Since(start))
	log.Printf("Trial %d two-round state: %s", number, two.State)

	truth, err := r.truths.GroundTruth(path)
	if err != nil {
		return hazard.Trial{}, fmt.Errorf("ground truth entry: %w", err)
	}

	start = time.Now()
	score := r.judge.Score(ctx, single.Record, two.Record, truth)
	r.latencies.Observe(metrics.StageJudge, time.Since(start))

	return hazard.Trial{
		Number:     number,
		ImagePath:  path,
		SinglePass: single.Record,
		TwoRound:   two.Record,
		Clarification: hazard.Clarification{
			FollowUpQuestion: two.FollowUpQuestion,
			Answer:           two.Answer,
		},
		GroundTruth: truth,
		Evaluation:  score,
	}, nil
}

// RunSingle performs the ad-hoc single-image mode: one single-pass
// assessment, no judging.
func (r *Runner) RunSingle(ctx context.Context, path string) (hazard.Assessment, error) {
	img, err := assess.LoadImage(path)
	if err != nil {
		return hazard.Assessment{}, err
	}
	return r.singlePass.Assess(ctx, img), nil
}

// RunSingleTwoRound performs the ad-hoc two-round mode on one image.
func (r *Runner) RunSingleTwoRound(ctx context.Context, path string) (assess.TwoRoundOutcome, error) {
	img, err := assess.LoadImage(path)
	if err != nil {
		return assess.TwoRoundOutcome{}, err
	}
	return r.twoRound.Run(ctx, img), nil
}
