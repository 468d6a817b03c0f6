// internal/judge/judge.go
// Package judge scores the two assessment strategies against the ground
// truth by delegating the comparison to the same class of model under
// test.
package judge

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/k0kubun/pp"

	"github.com/factorylens/hazardbench/internal/appconfig"
	"github.com/factorylens/hazardbench/internal/extract"
	"github.com/factorylens/hazardbench/internal/hazard"
	"github.com/factorylens/hazardbench/internal/logging"
	"github.com/factorylens/hazardbench/internal/providers"
)

// Judge produces a comparative accuracy verdict for one trial.
type Judge interface {
	Score(ctx context.Context, singlePass, twoRound hazard.HazardRecord, truth hazard.GroundTruth) hazard.ScoreResult
}

// LLM delegates scoring to a language model. The delegate's declared
// winner is passed through as-is; it is never recomputed from the two
// scores here.
type LLM struct {
	provider providers.VisionProvider
	model    string
	debug    bool
}

// NewLLM constructs a model-backed judge.
func NewLLM(cfg *appconfig.Config, provider providers.VisionProvider) *LLM {
	return &LLM{
		provider: provider,
		model:    cfg.JudgeModelName(),
		debug:    cfg.Debug,
	}
}

// verdictPayload is the wire shape of an evaluation reply. Accuracies
// are decoded as floats because delegates occasionally answer with
// fractional percentages.
type verdictPayload struct {
	Method1Accuracy   *float64 `json:"method1_accuracy"`
	Method2Accuracy   *float64 `json:"method2_accuracy"`
	Winner            *string  `json:"winner"`
	Method1Analysis   *string  `json:"method1_analysis"`
	Method2Analysis   *string  `json:"method2_analysis"`
	OverallAssessment *string  `json:"overall_assessment"`
}

// Score compares both records against the ground truth. Transport or
// extraction failure degrades the trial to a zero-for-both error verdict
// instead of discarding it.
func (j *LLM) Score(ctx context.Context, singlePass, twoRound hazard.HazardRecord, truth hazard.GroundTruth) hazard.ScoreResult {
	raw, err := j.provider.Generate(ctx, providers.GenerateRequest{
		Model:  j.model,
		Prompt: evaluationPrompt(singlePass, twoRound, truth),
	})
	if err != nil {
		logging.LogEvent("judge call failed: %v", err)
		return errorScore(err)
	}

	var payload verdictPayload
	if _, err := extract.Decode(raw, &payload); err != nil {
		logging.LogEvent("judge extraction failed: %v", err)
		return errorScore(err)
	}
	if j.debug {
		pp.Println(payload)
	}

	return hazard.ScoreResult{
		SinglePassScore:    clamp(payload.Method1Accuracy),
		TwoRoundScore:      clamp(payload.Method2Accuracy),
		Winner:             mapWinner(payload.Winner),
		SinglePassAnalysis: strings.TrimSpace(derefString(payload.Method1Analysis)),
		TwoRoundAnalysis:   strings.TrimSpace(derefString(payload.Method2Analysis)),
		OverallAssessment:  strings.TrimSpace(derefString(payload.OverallAssessment)),
	}
}

// evaluationPrompt renders the comparison request. The prompt labels the
// strategies METHOD 1 and METHOD 2, and the delegate answers in those
// terms.
func evaluationPrompt(singlePass, twoRound hazard.HazardRecord, truth hazard.GroundTruth) string {
	return fmt.Sprintf(`You are an expert evaluator comparing two safety assessment methods against the ground truth.

METHOD 1 RESULT (single-pass analysis):
Issue: %s
Location: %s
Note: %s

METHOD 2 RESULT (two-round analysis with follow-up):
Issue: %s
Location: %s
Note: %s

GROUND TRUTH (CORRECT ANSWER):
Issue: %s
Location: %s
Note: %s

TASK: Compare each method against the ground truth and determine accuracy percentages.

OUTPUT FORMAT (JSON only):
{
    "method1_accuracy": 85,
    "method2_accuracy": 92,
    "winner": "method1|method2|tie",
    "method1_analysis": "detailed comparison of method 1 vs ground truth",
    "method2_analysis": "detailed comparison of method 2 vs ground truth",
    "overall_assessment": "which method performed better and why"
}`,
		orNA(singlePass.Issue), orNA(singlePass.Location), orNA(singlePass.Note),
		orNA(twoRound.Issue), orNA(twoRound.Location), orNA(twoRound.Note),
		orNA(truth.ActualIssue), orNA(truth.ActualLocation), orNA(truth.ActualNote))
}

func mapWinner(s *string) hazard.Winner {
	switch strings.ToLower(strings.TrimSpace(derefString(s))) {
	case "method1":
		return hazard.WinnerSinglePass
	case "method2":
		return hazard.WinnerTwoRound
	case "tie":
		return hazard.WinnerTie
	}
	return hazard.WinnerError
}

func errorScore(err error) hazard.ScoreResult {
	return hazard.ScoreResult{
		SinglePassScore:   0,
		TwoRoundScore:     0,
		Winner:            hazard.WinnerError,
		OverallAssessment: fmt.Sprintf("evaluation failed: %v", err),
	}
}

func clamp(v *float64) int {
	if v == nil {
		return 0
	}
	score := int(math.Round(*v))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
