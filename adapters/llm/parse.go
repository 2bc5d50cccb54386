package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedResponse marks model output that failed strict validation.
// Model output is untrusted input; anything that does not match the
// requested shape is rejected here instead of leaking into the domain.
var ErrMalformedResponse = errors.New("malformed model response")

// extractJSON strips markdown fences the model sometimes wraps around JSON
// bodies, even when asked not to.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

// decodeStrict unmarshals into v rejecting unknown fields and trailing
// content.
func decodeStrict(raw string, v any) error {
	dec := json.NewDecoder(strings.NewReader(extractJSON(raw)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: trailing content after JSON body", ErrMalformedResponse)
	}
	return nil
}
