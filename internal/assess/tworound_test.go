// internal/assess/tworound_test.go
package assess

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/factorylens/hazardbench/internal/hazard"
)

type scriptedAnswers struct {
	answer string
	err    error
	asked  []string
}

func (s *scriptedAnswers) Answer(question string) (string, error) {
	s.asked = append(s.asked, question)
	return s.answer, s.err
}

// TestTwoRoundHappyPath drives the state machine end to end: the first
// call yields a follow-up question, the scripted answer is folded into
// the second call verbatim, and the final reply becomes the record.
func TestTwoRoundHappyPath(t *testing.T) {
	initial := `{
		"initial_analysis": "something reflective near the conveyor",
		"confidence_level": "low",
		"follow_up_question": "What is the reflective object near the conveyor belt?",
		"reasoning": "cannot distinguish metal debris from a tool left behind"
	}`
	final := `{
		"confidence_level": "high",
		"issue": "sharp metal debris on walkway",
		"location": "west wall, alongside the conveyor belt",
		"note": "laceration risk for passing workers",
		"capa": "remove debris and add a debris tray under the cutter"
	}`

	provider := &stubProvider{t: t, replies: []string{initial, final}}
	answers := &scriptedAnswers{answer: "metal shard visible near conveyor belt, west wall"}
	tr := NewTwoRound(testConfig(), provider, answers)

	got := tr.Run(context.Background(), testImage())

	if got.State != StateDone {
		t.Fatalf("expected done state, got %q", got.State)
	}
	if got.FollowUpQuestion != "What is the reflective object near the conveyor belt?" {
		t.Fatalf("unexpected follow-up question: %q", got.FollowUpQuestion)
	}
	if got.Answer != answers.answer {
		t.Fatalf("unexpected answer: %q", got.Answer)
	}
	if got.Record.Issue != "sharp metal debris on walkway" {
		t.Fatalf("unexpected issue: %q", got.Record.Issue)
	}
	if got.Record.Confidence != hazard.ConfidenceHigh {
		t.Fatalf("expected high confidence, got %q", got.Record.Confidence)
	}

	if len(answers.asked) != 1 || answers.asked[0] != got.FollowUpQuestion {
		t.Fatalf("expected the question to be posed once, got %v", answers.asked)
	}

	if len(provider.calls) != 2 {
		t.Fatalf("expected two model calls, got %d", len(provider.calls))
	}
	finalReq := provider.calls[1]
	if !strings.Contains(finalReq.Prompt, got.FollowUpQuestion) {
		t.Fatal("expected second prompt to restate the follow-up question")
	}
	if !strings.Contains(finalReq.Prompt, "metal shard visible near conveyor belt, west wall") {
		t.Fatal("expected second prompt to carry the answer verbatim")
	}
	if !bytes.Equal(provider.calls[0].Image, finalReq.Image) {
		t.Fatal("expected both calls to carry the same image")
	}
}

// TestTwoRoundMissingQuestion errors the run when the initial analysis
// fails to produce a follow-up question.
func TestTwoRoundMissingQuestion(t *testing.T) {
	initial := `{"initial_analysis": "clear aisle, no hazards seen", "confidence_level": "high"}`

	provider := &stubProvider{t: t, replies: []string{initial}}
	answers := &scriptedAnswers{}
	tr := NewTwoRound(testConfig(), provider, answers)

	got := tr.Run(context.Background(), testImage())

	if got.State != StateErrored {
		t.Fatalf("expected errored state, got %q", got.State)
	}
	if got.Record.Confidence != hazard.ConfidenceError {
		t.Fatalf("expected error record, got %+v", got.Record)
	}
	if len(answers.asked) != 0 {
		t.Fatal("expected no clarification without a question")
	}
	if len(provider.calls) != 1 {
		t.Fatalf("expected no second call, got %d calls", len(provider.calls))
	}
}

// TestTwoRoundFirstCallFailure checks the errored transition straight
// from the initial call.
func TestTwoRoundFirstCallFailure(t *testing.T) {
	provider := &stubProvider{
		t:       t,
		replies: []string{""},
		errs:    []error{errors.New("deadline exceeded")},
	}
	tr := NewTwoRound(testConfig(), provider, &scriptedAnswers{})

	got := tr.Run(context.Background(), testImage())

	if got.State != StateErrored {
		t.Fatalf("expected errored state, got %q", got.State)
	}
	if got.Record.Error == "" {
		t.Fatal("expected cause in record")
	}
}

// TestTwoRoundAnswerFailure errors the run when the clarification step
// cannot produce an answer.
func TestTwoRoundAnswerFailure(t *testing.T) {
	initial := `{"follow_up_question": "Is the valve labeled?"}`

	provider := &stubProvider{t: t, replies: []string{initial}}
	tr := NewTwoRound(testConfig(), provider, &scriptedAnswers{err: errors.New("input closed")})

	got := tr.Run(context.Background(), testImage())

	if got.State != StateErrored {
		t.Fatalf("expected errored state, got %q", got.State)
	}
	if got.FollowUpQuestion == "" {
		t.Fatal("expected the question to be retained for diagnostics")
	}
}

// TestTwoRoundFinalUnparseable preserves the second call's raw reply
// when it cannot be decoded.
func TestTwoRoundFinalUnparseable(t *testing.T) {
	initial := `{"follow_up_question": "Is the guard rail bolted down?"}`
	finalRaw := "Thanks, that clears it up!"

	provider := &stubProvider{t: t, replies: []string{initial, finalRaw}}
	tr := NewTwoRound(testConfig(), provider, &scriptedAnswers{answer: "yes, bolted at both ends"})

	got := tr.Run(context.Background(), testImage())

	if got.State != StateErrored {
		t.Fatalf("expected errored state, got %q", got.State)
	}
	if got.Record.Raw != finalRaw {
		t.Fatalf("expected raw reply to be preserved, got %q", got.Record.Raw)
	}
}
