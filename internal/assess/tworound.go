// internal/assess/tworound.go
package assess

import (
	"context"
	"errors"
	"strings"

	"github.com/factorylens/hazardbench/internal/appconfig"
	"github.com/factorylens/hazardbench/internal/extract"
	"github.com/factorylens/hazardbench/internal/hazard"
	"github.com/factorylens/hazardbench/internal/logging"
	"github.com/factorylens/hazardbench/internal/providers"
)

// AnswerSource supplies the clarifying answer for a two-round run. The
// console implementation blocks on human input; tests substitute a
// scripted source.
type AnswerSource interface {
	Answer(question string) (string, error)
}

// RunState tracks where a two-round run is in its lifecycle. States
// only move forward; Errored is reachable from any of them.
type RunState string

const (
	StateStart                 RunState = "start"
	StateInitialAnalysisSent   RunState = "initial_analysis_sent"
	StateAwaitingClarification RunState = "awaiting_clarification"
	StateFinalCallSent         RunState = "final_call_sent"
	StateDone                  RunState = "done"
	StateErrored               RunState = "errored"
)

// TwoRoundOutcome is the result of one two-round run. The question and
// answer are kept alongside the record for auditability.
type TwoRoundOutcome struct {
	Record           hazard.HazardRecord
	FollowUpQuestion string
	Answer           string
	State            RunState
}

// TwoRound runs the two-call strategy: an initial analysis that must
// produce exactly one follow-up question, a blocking clarification
// step, and a final call that folds the answer back in.
type TwoRound struct {
	provider providers.VisionProvider
	model    string
	answers  AnswerSource
	debug    bool
}

// NewTwoRound constructs a two-round assessor with an injected answer source.
func NewTwoRound(cfg *appconfig.Config, provider providers.VisionProvider, answers AnswerSource) *TwoRound {
	return &TwoRound{
		provider: provider,
		model:    cfg.ModelName(),
		answers:  answers,
		debug:    cfg.Debug,
	}
}

// Run executes the state machine for one image. Extraction or transport
// failure at either call moves the run to Errored with the offending
// raw text preserved; the run is not retried.
func (t *TwoRound) Run(ctx context.Context, img Image) TwoRoundOutcome {
	outcome := TwoRoundOutcome{State: StateStart}

	raw, err := t.provider.Generate(ctx, providers.GenerateRequest{
		Model:        t.model,
		SystemPrompt: inspectorSystemPrompt,
		Prompt:       initialAnalysisPrompt,
		Image:        img.Data,
		MIMEType:     img.MIMEType,
	})
	outcome.State = StateInitialAnalysisSent
	if err != nil {
		return t.errored(outcome, err, "")
	}

	var initial initialPayload
	if _, err := extract.Decode(raw, &initial); err != nil {
		return t.errored(outcome, err, raw)
	}

	question := strings.TrimSpace(deref(initial.FollowUpQuestion))
	if question == "" {
		return t.errored(outcome, errors.New("initial analysis produced no follow-up question"), raw)
	}
	outcome.FollowUpQuestion = question

	outcome.State = StateAwaitingClarification
	answer, err := t.answers.Answer(question)
	if err != nil {
		return t.errored(outcome, err, "")
	}
	outcome.Answer = answer

	finalRaw, err := t.provider.Generate(ctx, providers.GenerateRequest{
		Model:        t.model,
		SystemPrompt: inspectorSystemPrompt,
		Prompt:       finalRoundPrompt(question, answer),
		Image:        img.Data,
		MIMEType:     img.MIMEType,
	})
	outcome.State = StateFinalCallSent
	if err != nil {
		return t.errored(outcome, err, "")
	}

	var payload assessmentPayload
	doc, err := extract.Decode(finalRaw, &payload)
	if err != nil {
		return t.errored(outcome, err, finalRaw)
	}
	if err := extract.ValidateAssessment(doc); err != nil {
		return t.errored(outcome, err, finalRaw)
	}

	confidence, _ := hazard.ParseConfidence(deref(payload.ConfidenceLevel))
	outcome.Record = hazard.HazardRecord{
		Issue:      strings.TrimSpace(deref(payload.Issue)),
		Location:   strings.TrimSpace(deref(payload.Location)),
		Note:       strings.TrimSpace(deref(payload.Note)),
		CAPA:       strings.TrimSpace(deref(payload.CAPA)),
		Confidence: confidence,
	}
	outcome.State = StateDone
	return outcome
}

func (t *TwoRound) errored(outcome TwoRoundOutcome, err error, raw string) TwoRoundOutcome {
	logging.LogEvent("two-round run errored in state %s: %v", outcome.State, err)
	outcome.Record = hazard.ErrorRecord(err.Error(), raw)
	outcome.State = StateErrored
	return outcome
}
