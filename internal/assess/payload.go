// internal/assess/payload.go
package assess

import "github.com/factorylens/hazardbench/internal/hazard"

// assessmentPayload is the wire shape of an assessment reply. Pointer
// fields distinguish a missing key from an empty value; extra keys in
// the reply are ignored by the decoder.
type assessmentPayload struct {
	ConfidenceLevel  *string              `json:"confidence_level"`
	Mode             *string              `json:"mode"`
	Issue            *string              `json:"issue"`
	Location         *string              `json:"location"`
	Note             *string              `json:"note"`
	CAPA             *string              `json:"capa"`
	FollowUpQuestion *string              `json:"follow_up_question"`
	BoundingBoxes    []hazard.BoundingBox `json:"bounding_boxes"`
}

// initialPayload is the wire shape of a two-round first call.
type initialPayload struct {
	InitialAnalysis  *string `json:"initial_analysis"`
	ConfidenceLevel  *string `json:"confidence_level"`
	FollowUpQuestion *string `json:"follow_up_question"`
	Reasoning        *string `json:"reasoning"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
