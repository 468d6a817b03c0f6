// internal/extract/schema.go
package extract

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// assessmentSchema constrains the shape of an assessment payload before
// field mapping. Every field is optional; the schema only rejects
// replies whose present fields have the wrong type, or bounding boxes
// outside the 0-100 percentage range.
const assessmentSchema = `{
	"type": "object",
	"properties": {
		"confidence_level":   {"type": ["string", "null"]},
		"mode":               {"type": ["string", "null"]},
		"issue":              {"type": ["string", "null"]},
		"location":           {"type": ["string", "null"]},
		"note":               {"type": ["string", "null"]},
		"capa":               {"type": ["string", "null"]},
		"follow_up_question": {"type": ["string", "null"]},
		"initial_analysis":   {"type": ["string", "null"]},
		"reasoning":          {"type": ["string", "null"]},
		"bounding_boxes": {
			"type": ["array", "null"],
			"items": {
				"type": "object",
				"properties": {
					"x":      {"type": "number", "minimum": 0, "maximum": 100},
					"y":      {"type": "number", "minimum": 0, "maximum": 100},
					"width":  {"type": "number", "minimum": 0, "maximum": 100},
					"height": {"type": "number", "minimum": 0, "maximum": 100},
					"label":  {"type": "string"}
				}
			}
		}
	}
}`

// ValidateAssessment checks a decoded assessment document against the
// payload schema. doc must be the bytes returned by Decode. A violation
// is reported as an ExtractionError carrying the first failed check.
func ValidateAssessment(doc []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(assessmentSchema)
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return &ExtractionError{Raw: string(doc), Err: err}
	}
	if !result.Valid() {
		first := result.Errors()[0]
		return &ExtractionError{Raw: string(doc), Err: fmt.Errorf("schema violation: %s", first)}
	}
	return nil
}
