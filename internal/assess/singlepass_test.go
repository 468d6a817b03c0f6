// internal/assess/singlepass_test.go
package assess

import (
	"context"
	"errors"
	"testing"

	"github.com/factorylens/hazardbench/internal/appconfig"
	"github.com/factorylens/hazardbench/internal/hazard"
	"github.com/factorylens/hazardbench/internal/providers"
)

// stubProvider replays scripted replies in call order. A nil error and
// empty reply at an index beyond the script is a test bug surfaced by
// the fatal in Generate.
type stubProvider struct {
	t       *testing.T
	replies []string
	errs    []error
	calls   []providers.GenerateRequest
}

func (s *stubProvider) Generate(_ context.Context, req providers.GenerateRequest) (string, error) {
	s.calls = append(s.calls, req)
	i := len(s.calls) - 1
	if i >= len(s.replies) {
		s.t.Fatalf("unexpected provider call %d", i+1)
	}
	if s.errs != nil && s.errs[i] != nil {
		return "", s.errs[i]
	}
	return s.replies[i], nil
}

func (s *stubProvider) Close() error { return nil }

func testConfig() *appconfig.Config {
	return &appconfig.Config{Model: "test-model"}
}

func testImage() Image {
	return Image{Path: "floor.jpg", Data: []byte{0xff, 0xd8, 0xff}, MIMEType: "image/jpeg"}
}

// TestSinglePassAutoFill verifies the trustworthy-confidence path: a
// complete high-confidence reply auto-fills the record and carries the
// bounding boxes through.
func TestSinglePassAutoFill(t *testing.T) {
	reply := "```json\n" + `{
		"confidence_level": "high",
		"mode": "auto_fill",
		"issue": "unguarded press brake",
		"location": "stamping cell 2",
		"note": "operator reaching past the light curtain",
		"capa": "re-commission the light curtain and retrain operators",
		"bounding_boxes": [{"x": 12, "y": 30, "width": 25, "height": 40, "label": "press brake"}]
	}` + "\n```"

	provider := &stubProvider{t: t, replies: []string{reply}}
	sp := NewSinglePass(testConfig(), provider)

	got := sp.Assess(context.Background(), testImage())

	if got.Mode != hazard.ModeAutoFill {
		t.Fatalf("expected auto_fill mode, got %q", got.Mode)
	}
	if got.Record.Issue != "unguarded press brake" {
		t.Fatalf("unexpected issue: %q", got.Record.Issue)
	}
	if got.Record.Confidence != hazard.ConfidenceHigh {
		t.Fatalf("expected high confidence, got %q", got.Record.Confidence)
	}
	if got.Record.CAPA == "" {
		t.Fatal("expected CAPA to be carried through")
	}
	if len(got.Boxes) != 1 || got.Boxes[0].Label != "press brake" {
		t.Fatalf("expected bounding boxes to be carried through, got %+v", got.Boxes)
	}

	if len(provider.calls) != 1 {
		t.Fatalf("expected exactly one model call, got %d", len(provider.calls))
	}
	req := provider.calls[0]
	if req.Model != "test-model" || len(req.Image) == 0 || req.MIMEType != "image/jpeg" {
		t.Fatalf("unexpected request shape: %+v", req)
	}
}

// TestSinglePassFollowUp checks the gate's fallback to the follow-up
// question: on low confidence the record fields stay empty and only the
// question is surfaced.
func TestSinglePassFollowUp(t *testing.T) {
	reply := `{
		"confidence_level": "low",
		"mode": "follow_up_question",
		"issue": "possibly a liquid on the floor",
		"follow_up_question": "Is the dark patch near the forklift a liquid spill or a shadow?"
	}`

	provider := &stubProvider{t: t, replies: []string{reply}}
	sp := NewSinglePass(testConfig(), provider)

	got := sp.Assess(context.Background(), testImage())

	if got.Mode != hazard.ModeFollowUp {
		t.Fatalf("expected follow_up_question mode, got %q", got.Mode)
	}
	if got.FollowUpQuestion == "" {
		t.Fatal("expected a follow-up question")
	}
	if got.Record.Issue != "" || got.Record.Location != "" || got.Record.Note != "" {
		t.Fatalf("expected empty record fields in follow-up mode, got %+v", got.Record)
	}
	if got.Record.Confidence != hazard.ConfidenceLow {
		t.Fatalf("expected low confidence to be preserved, got %q", got.Record.Confidence)
	}
}

// TestSinglePassDeclaredFollowUpWins ensures an explicit follow-up mode
// declaration takes precedence even when the declared confidence alone
// would have allowed auto-fill.
func TestSinglePassDeclaredFollowUpWins(t *testing.T) {
	reply := `{
		"confidence_level": "high",
		"mode": "follow_up_question",
		"follow_up_question": "Which direction does the emergency exit open?"
	}`

	provider := &stubProvider{t: t, replies: []string{reply}}
	sp := NewSinglePass(testConfig(), provider)

	if got := sp.Assess(context.Background(), testImage()); got.Mode != hazard.ModeFollowUp {
		t.Fatalf("expected follow_up_question mode, got %q", got.Mode)
	}
}

// TestSinglePassGateErrors covers the degraded outcomes: low confidence
// without a question, unknown confidence without a question, and a
// trustworthy tier with a missing core field.
func TestSinglePassGateErrors(t *testing.T) {
	cases := []struct {
		name  string
		reply string
	}{
		{"low confidence no question", `{"confidence_level": "low", "issue": "maybe a spill"}`},
		{"unknown confidence no question", `{"confidence_level": "certain", "issue": "spill"}`},
		{"partial record", `{"confidence_level": "high", "issue": "spill", "location": "dock"}`},
	}

	for _, tc := range cases {
		provider := &stubProvider{t: t, replies: []string{tc.reply}}
		sp := NewSinglePass(testConfig(), provider)

		got := sp.Assess(context.Background(), testImage())
		if got.Mode != hazard.ModeError {
			t.Fatalf("%s: expected error mode, got %q", tc.name, got.Mode)
		}
		if got.Record.Confidence != hazard.ConfidenceError {
			t.Fatalf("%s: expected error confidence, got %q", tc.name, got.Record.Confidence)
		}
	}
}

// TestSinglePassTransportError folds a failed model call into an
// error-mode assessment instead of propagating it.
func TestSinglePassTransportError(t *testing.T) {
	provider := &stubProvider{
		t:       t,
		replies: []string{""},
		errs:    []error{errors.New("connection refused")},
	}
	sp := NewSinglePass(testConfig(), provider)

	got := sp.Assess(context.Background(), testImage())

	if got.Mode != hazard.ModeError {
		t.Fatalf("expected error mode, got %q", got.Mode)
	}
	if got.Record.Error == "" {
		t.Fatal("expected cause in record")
	}
	if got.Record.Raw != "" {
		t.Fatalf("expected empty raw for transport failure, got %q", got.Record.Raw)
	}
}

// TestSinglePassUnparseableReply preserves the offending raw reply in
// the error record.
func TestSinglePassUnparseableReply(t *testing.T) {
	raw := "I am unable to inspect the image you describe."
	provider := &stubProvider{t: t, replies: []string{raw}}
	sp := NewSinglePass(testConfig(), provider)

	got := sp.Assess(context.Background(), testImage())

	if got.Mode != hazard.ModeError {
		t.Fatalf("expected error mode, got %q", got.Mode)
	}
	if got.Record.Raw != raw {
		t.Fatalf("expected raw reply to be preserved, got %q", got.Record.Raw)
	}
}
