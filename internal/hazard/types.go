// internal/hazard/types.go
// Package hazard defines the structured records exchanged between the
// assessors, the judge, and the benchmark aggregator.
package hazard

import "strings"

// ConfidenceLevel is the confidence tier a model declares for its own
// assessment. The tier is trusted as reported; nothing in this package
// re-verifies it.
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
	ConfidenceError  ConfidenceLevel = "error"
)

// ParseConfidence maps a raw confidence string onto a known tier. The
// second return value reports whether the input named a genuine tier;
// "error" is a valid tier but never a trustworthy one.
func ParseConfidence(s string) (ConfidenceLevel, bool) {
	switch ConfidenceLevel(strings.ToLower(strings.TrimSpace(s))) {
	case ConfidenceHigh:
		return ConfidenceHigh, true
	case ConfidenceMedium:
		return ConfidenceMedium, true
	case ConfidenceLow:
		return ConfidenceLow, true
	case ConfidenceError:
		return ConfidenceError, true
	}
	return ConfidenceError, false
}

// Trustworthy reports whether the tier is strong enough to act on
// without further clarification.
func (c ConfidenceLevel) Trustworthy() bool {
	return c == ConfidenceHigh || c == ConfidenceMedium
}

// HazardRecord is one structured safety assessment. When Confidence is
// ConfidenceError the remaining fields are diagnostic placeholders, not
// a genuine assessment, and Raw preserves the offending model reply.
type HazardRecord struct {
	Issue      string          `json:"issue,omitempty"`
	Location   string          `json:"location,omitempty"`
	Note       string          `json:"note,omitempty"`
	Confidence ConfidenceLevel `json:"confidence_level"`
	CAPA       string          `json:"capa,omitempty"`
	Error      string          `json:"error,omitempty"`
	Raw        string          `json:"raw_response,omitempty"`
}

// Complete reports whether the three core assessment fields are all
// populated. Partially filled records are never auto-filled.
func (r HazardRecord) Complete() bool {
	return strings.TrimSpace(r.Issue) != "" &&
		strings.TrimSpace(r.Location) != "" &&
		strings.TrimSpace(r.Note) != ""
}

// ErrorRecord builds the diagnostic placeholder record used when a model
// call or extraction fails. raw may be empty when no reply was received.
func ErrorRecord(cause string, raw string) HazardRecord {
	return HazardRecord{
		Issue:      "assessment failed",
		Confidence: ConfidenceError,
		Error:      cause,
		Raw:        raw,
	}
}

// BoundingBox localizes one detected hazard within the image. All
// coordinates are percentages in [0,100]; no ordering is guaranteed.
type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Label  string  `json:"label"`
}

// AssessmentMode tags what a single-pass assessment produced.
type AssessmentMode string

const (
	ModeAutoFill AssessmentMode = "auto_fill"
	ModeFollowUp AssessmentMode = "follow_up_question"
	ModeError    AssessmentMode = "error"
)

// Assessment is the outcome of one single-pass analysis. Record carries
// the structured fields; in ModeFollowUp the record fields stay empty
// and FollowUpQuestion holds the clarifying question instead.
type Assessment struct {
	Mode             AssessmentMode `json:"mode"`
	Record           HazardRecord   `json:"record"`
	Boxes            []BoundingBox  `json:"bounding_boxes,omitempty"`
	FollowUpQuestion string         `json:"follow_up_question,omitempty"`
}

// GroundTruth is the authoritative reference assessment supplied by a
// human reviewer and used to score the competing strategies.
type GroundTruth struct {
	ActualIssue    string `json:"actual_issue"`
	ActualLocation string `json:"actual_location"`
	ActualNote     string `json:"actual_note"`
}

// Winner names the strategy a comparison favored.
type Winner string

const (
	WinnerSinglePass Winner = "single_pass"
	WinnerTwoRound   Winner = "two_round"
	WinnerTie        Winner = "tie"
	WinnerError      Winner = "error"
)

// ScoreResult is the judge's comparative accuracy verdict for one trial.
// Scores are independent integers in [0,100]. Winner is the delegate's
// own declaration and is never recomputed from the scores here.
type ScoreResult struct {
	SinglePassScore    int    `json:"single_pass_accuracy"`
	TwoRoundScore      int    `json:"two_round_accuracy"`
	Winner             Winner `json:"winner"`
	SinglePassAnalysis string `json:"single_pass_analysis,omitempty"`
	TwoRoundAnalysis   string `json:"two_round_analysis,omitempty"`
	OverallAssessment  string `json:"overall_assessment,omitempty"`
}

// Clarification records the one question/answer exchange of a two-round
// run, kept for auditability.
type Clarification struct {
	FollowUpQuestion string `json:"follow_up_question"`
	Answer           string `json:"answer"`
}

// Trial owns the records produced during one benchmark iteration. A
// trial is immutable once the judge has scored it.
type Trial struct {
	Number        int           `json:"test_number"`
	ImagePath     string        `json:"image_path"`
	SinglePass    HazardRecord  `json:"single_pass_result"`
	TwoRound      HazardRecord  `json:"two_round_result"`
	Clarification Clarification `json:"clarification"`
	GroundTruth   GroundTruth   `json:"ground_truth"`
	Evaluation    ScoreResult   `json:"evaluation"`
}

// BenchmarkSummary aggregates the per-trial scores. It is derived from
// the set of completed trials and recomputed whenever that set changes.
type BenchmarkSummary struct {
	TotalTests        int     `json:"total_tests"`
	SinglePassAverage float64 `json:"single_pass_average"`
	TwoRoundAverage   float64 `json:"two_round_average"`
	SinglePassScores  []int   `json:"single_pass_scores"`
	TwoRoundScores    []int   `json:"two_round_scores"`
	Winner            Winner  `json:"winner"`
}

// Report is the persisted output of a full benchmark run.
type Report struct {
	Summary         BenchmarkSummary `json:"benchmark_summary"`
	DetailedResults []Trial          `json:"detailed_results"`
}
