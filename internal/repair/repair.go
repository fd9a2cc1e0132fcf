// Package repair recovers well-formed structured data from generative-model
// output that interleaves reasoning text with the final answer and may carry
// raw control characters inside JSON string literals.
package repair

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedStructure indicates no balanced JSON structure could be located
// in the model output. Callers may retry the model call; this package cannot
// repair it.
var ErrMalformedStructure = errors.New("repair: no balanced JSON structure in model output")

// UnrecoverableStructureError indicates the extracted span still failed to
// parse after sanitization. Both texts are carried for diagnostics.
type UnrecoverableStructureError struct {
	Raw       string // Extracted span before sanitization.
	Sanitized string // Span after control-character escaping.
	Err       error  // Underlying parse error.
}

func (e *UnrecoverableStructureError) Error() string {
	return fmt.Sprintf("repair: sanitized output still unparseable: %v", e.Err)
}

func (e *UnrecoverableStructureError) Unwrap() error { return e.Err }

// Recovered holds the outcome of a successful recovery. It is immutable once
// returned; on failure the caller receives an error and no partial value.
type Recovered struct {
	Reasoning string // Model reasoning preamble, empty when absent.
	Sanitized string // The sanitized JSON span that was parsed.
}

// Recover extracts the structured payload from raw model output into v.
// The procedure — reasoning split, balanced-span extraction, control-character
// sanitization, parse — is applied in order, and each step is idempotent on
// already-clean input: running Recover on its own sanitized output yields the
// same payload.
func Recover(raw string, v any) (*Recovered, error) {
	reasoning, body := splitReasoning(raw)

	span, ok := extractSpan(body)
	if !ok {
		return nil, ErrMalformedStructure
	}

	sanitized := Sanitize(span)
	if err := json.Unmarshal([]byte(sanitized), v); err != nil {
		return nil, &UnrecoverableStructureError{Raw: span, Sanitized: sanitized, Err: err}
	}

	return &Recovered{Reasoning: reasoning, Sanitized: sanitized}, nil
}
