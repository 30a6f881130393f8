package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SchemaValidator validates a parsed struct after JSON extraction.
// Returns nil if valid, or a descriptive error if invalid.
type SchemaValidator[T any] func(T) error

// ExtractJSON decodes the first JSON object in raw LLM output into T.
// Leading prose and markdown fences are skipped; text after the object is ignored.
// If validator is non-nil, the extracted value is validated before return.
func ExtractJSON[T any](raw string, validator SchemaValidator[T]) (T, error) {
	var zero T

	var lastErr error
	rest := raw
	for {
		start := strings.IndexByte(rest, '{')
		if start == -1 {
			break
		}
		var result T
		dec := json.NewDecoder(strings.NewReader(rest[start:]))
		if err := dec.Decode(&result); err != nil {
			lastErr = err
			rest = rest[start+1:]
			continue
		}
		if validator != nil {
			if err := validator(result); err != nil {
				return zero, fmt.Errorf("%w: validation failed: %v", ErrInvalidOutput, err)
			}
		}
		return result, nil
	}

	if lastErr != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, lastErr)
	}
	return zero, fmt.Errorf("%w: no JSON object found in response", ErrInvalidOutput)
}
