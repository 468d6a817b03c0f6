// internal/judge/judge_test.go
package judge

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/factorylens/hazardbench/internal/appconfig"
	"github.com/factorylens/hazardbench/internal/hazard"
	"github.com/factorylens/hazardbench/internal/providers"
)

type stubProvider struct {
	reply string
	err   error
	calls []providers.GenerateRequest
}

func (s *stubProvider) Generate(_ context.Context, req providers.GenerateRequest) (string, error) {
	s.calls = append(s.calls, req)
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func (s *stubProvider) Close() error { return nil }

func sampleRecords() (hazard.HazardRecord, hazard.HazardRecord, hazard.GroundTruth) {
	single := hazard.HazardRecord{Issue: "oil spill", Location: "loading dock", Note: "slip risk"}
	two := hazard.HazardRecord{Issue: "hydraulic oil spill", Location: "loading dock, bay 3", Note: "slip risk near forklift path"}
	truth := hazard.GroundTruth{ActualIssue: "hydraulic oil leak", ActualLocation: "loading dock bay 3", ActualNote: "forklift seal failure"}
	return single, two, truth
}

// TestScore verifies a well-formed verdict: the delegate's winner label
// is mapped onto the strategy names and its scores pass through.
func TestScore(t *testing.T) {
	provider := &stubProvider{reply: "```json\n" + `{
		"method1_accuracy": 72,
		"method2_accuracy": 91,
		"winner": "method2",
		"method1_analysis": "missed the oil type and the bay",
		"method2_analysis": "matched issue, location and cause",
		"overall_assessment": "the clarifying question recovered the missing detail"
	}` + "\n```"}

	j := NewLLM(&appconfig.Config{JudgeModel: "judge-model"}, provider)
	single, two, truth := sampleRecords()

	got := j.Score(context.Background(), single, two, truth)

	if got.SinglePassScore != 72 || got.TwoRoundScore != 91 {
		t.Fatalf("unexpected scores: %d / %d", got.SinglePassScore, got.TwoRoundScore)
	}
	if got.Winner != hazard.WinnerTwoRound {
		t.Fatalf("expected winner %q, got %q", hazard.WinnerTwoRound, got.Winner)
	}
	if got.TwoRoundAnalysis == "" || got.OverallAssessment == "" {
		t.Fatalf("expected analyses to pass through, got %+v", got)
	}

	if len(provider.calls) != 1 {
		t.Fatalf("expected one model call, got %d", len(provider.calls))
	}
	req := provider.calls[0]
	if req.Model != "judge-model" {
		t.Fatalf("expected the judge model, got %q", req.Model)
	}
	if len(req.Image) != 0 {
		t.Fatal("expected a text-only evaluation call")
	}
	for _, want := range []string{"METHOD 1", "METHOD 2", "GROUND TRUTH", "hydraulic oil leak"} {
		if !strings.Contains(req.Prompt, want) {
			t.Fatalf("expected prompt to contain %q", want)
		}
	}
}

// TestScoreEmptyFieldsRenderNA checks that blank record fields appear
// as N/A in the evaluation prompt rather than empty lines.
func TestScoreEmptyFieldsRenderNA(t *testing.T) {
	provider := &stubProvider{reply: `{"method1_accuracy": 0, "method2_accuracy": 50, "winner": "method2"}`}
	j := NewLLM(&appconfig.Config{}, provider)

	_, two, truth := sampleRecords()
	j.Score(context.Background(), hazard.HazardRecord{}, two, truth)

	if !strings.Contains(provider.calls[0].Prompt, "N/A") {
		t.Fatal("expected empty fields to render as N/A")
	}
}

// TestScoreClamping covers fractional rounding, range clamping, and the
// nil-score fallback.
func TestScoreClamping(t *testing.T) {
	provider := &stubProvider{reply: `{"method1_accuracy": 87.5, "method2_accuracy": 120, "winner": "method1"}`}
	j := NewLLM(&appconfig.Config{}, provider)
	single, two, truth := sampleRecords()

	got := j.Score(context.Background(), single, two, truth)

	if got.SinglePassScore != 88 {
		t.Fatalf("expected 87.5 to round to 88, got %d", got.SinglePassScore)
	}
	if got.TwoRoundScore != 100 {
		t.Fatalf("expected 120 to clamp to 100, got %d", got.TwoRoundScore)
	}

	provider.reply = `{"method2_accuracy": -5, "winner": "tie"}`
	got = j.Score(context.Background(), single, two, truth)
	if got.SinglePassScore != 0 || got.TwoRoundScore != 0 {
		t.Fatalf("expected missing and negative scores to clamp to 0, got %d / %d", got.SinglePassScore, got.TwoRoundScore)
	}
	if got.Winner != hazard.WinnerTie {
		t.Fatalf("expected tie, got %q", got.Winner)
	}
}

// TestScoreUnknownWinner maps an unrecognized winner label to the error
// verdict without discarding the scores.
func TestScoreUnknownWinner(t *testing.T) {
	provider := &stubProvider{reply: `{"method1_accuracy": 60, "method2_accuracy": 70, "winner": "both"}`}
	j := NewLLM(&appconfig.Config{}, provider)
	single, two, truth := sampleRecords()

	got := j.Score(context.Background(), single, two, truth)

	if got.Winner != hazard.WinnerError {
		t.Fatalf("expected error winner, got %q", got.Winner)
	}
	if got.SinglePassScore != 60 || got.TwoRoundScore != 70 {
		t.Fatalf("expected scores to survive the unknown label, got %d / %d", got.SinglePassScore, got.TwoRoundScore)
	}
}

// TestScoreDegradedVerdicts checks the zero-for-both error verdict on
// transport failure and on an unparseable reply.
func TestScoreDegradedVerdicts(t *testing.T) {
	single, two, truth := sampleRecords()

	failed := NewLLM(&appconfig.Config{}, &stubProvider{err: errors.New("connection reset")})
	got := failed.Score(context.Background(), single, two, truth)
	if got.SinglePassScore != 0 || got.TwoRoundScore != 0 || got.Winner != hazard.WinnerError {
		t.Fatalf("unexpected verdict after transport failure: %+v", got)
	}
	if !strings.Contains(got.OverallAssessment, "evaluation failed") {
		t.Fatalf("expected failure note, got %q", got.OverallAssessment)
	}

	garbled := NewLLM(&appconfig.Config{}, &stubProvider{reply: "The first method seems better to me overall."})
	got = garbled.Score(context.Background(), single, two, truth)
	if got.SinglePassScore != 0 || got.TwoRoundScore != 0 || got.Winner != hazard.WinnerError {
		t.Fatalf("unexpected verdict after unparseable reply: %+v", got)
	}
}
