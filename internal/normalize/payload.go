// Package normalize converts the untrusted semi-structured output of the
// generative collaborator into domain entities.
//
// The policy is two-tier: a payload whose overall shape is broken (no JSON
// object present, or invalid syntax) is a hard *MalformedResponseError,
// while a malformed sub-record inside a list field is silently dropped and
// conversion continues. Partial recovery beats all-or-nothing here because
// the collaborator's output is probabilistic.
package normalize

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MalformedResponseError reports that no usable JSON object could be
// located or parsed in the collaborator's response.
type MalformedResponseError struct {
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed collaborator response: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed collaborator response: %s", e.Reason)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// IsolateJSON extracts the JSON object substring from a free-text response:
// everything from the first '{' to the last '}'. Models often wrap the
// object in prose or markdown fences, so anything outside the braces is
// discarded.
func IsolateJSON(raw string) (string, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")

	if start == -1 || end == -1 || end < start {
		return "", &MalformedResponseError{Reason: "no JSON object found in response"}
	}

	return raw[start : end+1], nil
}

// Decode isolates and parses the JSON object from a raw response. Both
// failure modes (nothing to isolate, invalid syntax) are the same
// *MalformedResponseError kind: no entity can be built either way.
func Decode(raw string) (map[string]any, error) {
	payload, err := IsolateJSON(raw)
	if err != nil {
		return nil, err
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		return nil, &MalformedResponseError{Reason: "invalid JSON payload", Err: err}
	}

	return data, nil
}
