// internal/assess/singlepass.go
// Package assess implements the two assessment strategies under
// comparison: a confidence-gated single pass and a two-round analysis
// with one clarifying question.
package assess

import (
	"context"
	"errors"
	"strings"

	"github.com/k0kubun/pp"

	"github.com/factorylens/hazardbench/internal/appconfig"
	"github.com/factorylens/hazardbench/internal/extract"
	"github.com/factorylens/hazardbench/internal/hazard"
	"github.com/factorylens/hazardbench/internal/logging"
	"github.com/factorylens/hazardbench/internal/providers"
)

var (
	errMissingConfidence = errors.New("confidence tier missing or unrecognized")
	errLowConfidence     = errors.New("low confidence without a follow-up question")
	errPartialRecord     = errors.New("incomplete record at declared confidence")
)

// SinglePass issues one model call per image and gates the outcome on
// the confidence tier the model declares for itself. The tier is
// trusted as reported; no independent verification happens here.
type SinglePass struct {
	provider providers.VisionProvider
	model    string
	debug    bool
}

// NewSinglePass constructs a single-pass assessor.
func NewSinglePass(cfg *appconfig.Config, provider providers.VisionProvider) *SinglePass {
	return &SinglePass{
		provider: provider,
		model:    cfg.ModelName(),
		debug:    cfg.Debug,
	}
}

// Assess analyzes one image. Transport and extraction failures are
// folded into an error-mode assessment rather than returned; this is a
// terminal outcome for the trial and is never retried here.
func (s *SinglePass) Assess(ctx context.Context, img Image) hazard.Assessment {
	raw, err := s.provider.Generate(ctx, providers.GenerateRequest{
		Model:        s.model,
		SystemPrompt: singlePassSystemPrompt,
		Prompt:       singlePassUserPrompt,
		Image:        img.Data,
		MIMEType:     img.MIMEType,
	})
	if err != nil {
		logging.LogEvent("single-pass call failed for %s: %v", img.Path, err)
		return errorAssessment(err, "")
	}

	var payload assessmentPayload
	doc, err := extract.Decode(raw, &payload)
	if err != nil {
		logging.LogEvent("single-pass extraction failed for %s: %v", img.Path, err)
		return errorAssessment(err, raw)
	}
	if err := extract.ValidateAssessment(doc); err != nil {
		logging.LogEvent("single-pass payload rejected for %s: %v", img.Path, err)
		return errorAssessment(err, raw)
	}
	if s.debug {
		pp.Println(payload)
	}

	return gate(payload)
}

// gate classifies a decoded payload into an output mode. AutoFill
// requires a trustworthy declared tier and all three core fields;
// anything weaker falls back to the follow-up question when one was
// offered, and to an error outcome when none was.
func gate(payload assessmentPayload) hazard.Assessment {
	confidence, known := hazard.ParseConfidence(deref(payload.ConfidenceLevel))
	question := strings.TrimSpace(deref(payload.FollowUpQuestion))
	declaredMode := strings.TrimSpace(deref(payload.Mode))

	record := hazard.HazardRecord{
		Issue:      strings.TrimSpace(deref(payload.Issue)),
		Location:   strings.TrimSpace(deref(payload.Location)),
		Note:       strings.TrimSpace(deref(payload.Note)),
		CAPA:       strings.TrimSpace(deref(payload.CAPA)),
		Confidence: confidence,
	}

	followUp := hazard.Assessment{
		Mode:             hazard.ModeFollowUp,
		Record:           hazard.HazardRecord{Confidence: confidence},
		FollowUpQuestion: question,
	}

	switch {
	case declaredMode == string(hazard.ModeFollowUp) && question != "":
		return followUp
	case !known || confidence == hazard.ConfidenceError:
		if question != "" {
			return followUp
		}
		return errorAssessment(errMissingConfidence, "")
	case !confidence.Trustworthy():
		if question != "" {
			return followUp
		}
		return errorAssessment(errLowConfidence, "")
	case !record.Complete():
		// Declared confidence with a null core field: treated as an
		// error outcome rather than silently filling the rest.
		return errorAssessment(errPartialRecord, "")
	}

	return hazard.Assessment{
		Mode:   hazard.ModeAutoFill,
		Record: record,
		Boxes:  payload.BoundingBoxes,
	}
}

func errorAssessment(err error, raw string) hazard.Assessment {
	return hazard.Assessment{
		Mode:   hazard.ModeError,
		Record: hazard.ErrorRecord(err.Error(), raw),
	}
}
