// internal/extract/extract.go
// Package extract turns free-form model replies into structured records.
// Replies are commonly wrapped in markdown code fences and occasionally
// contain near-JSON; both are tolerated before a decode is declared
// failed.
package extract

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"github.com/factorylens/hazardbench/internal/util"
)

// ExtractionError reports a reply that could not be interpreted as the
// expected structured payload. The full raw reply is preserved for
// diagnostics.
type ExtractionError struct {
	Raw string
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract: %v (raw: %s)", e.Err, util.TruncateRunes(strings.TrimSpace(e.Raw), 200))
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// StripFences removes a markdown code fence wrapping the payload. When
// the reply embeds a ```json block inside surrounding prose, only the
// block's content is kept. A reply without fences passes through
// untouched apart from whitespace trimming.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, "```json"); i >= 0 {
		rest := s[i+len("```json"):]
		if j := strings.Index(rest, "```"); j >= 0 {
			return strings.TrimSpace(rest[:j])
		}
		return strings.TrimSpace(rest)
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// Decode strips fences and unmarshals the remainder into v. Replies
// that are almost JSON are run through jsonrepair before the decode is
// abandoned. The returned bytes are the document that actually decoded,
// suitable for schema validation. Unknown keys are ignored and missing
// keys leave their fields zero; the caller decides whether a partially
// populated record is acceptable.
func Decode(raw string, v any) ([]byte, error) {
	doc := StripFences(raw)
	if err := json.Unmarshal([]byte(doc), v); err == nil {
		return []byte(doc), nil
	}

	repaired, err := jsonrepair.JSONRepair(doc)
	if err != nil {
		return nil, &ExtractionError{Raw: raw, Err: err}
	}
	if err := json.Unmarshal([]byte(repaired), v); err != nil {
		return nil, &ExtractionError{Raw: raw, Err: err}
	}
	return []byte(repaired), nil
}
