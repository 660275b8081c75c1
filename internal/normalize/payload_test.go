package normalize

import (
	"errors"
	"testing"
)

func TestDecodeExtractsObjectFromProse(t *testing.T) {
	raw := "Sure! Here is the requested JSON:\n```json\n{\"name\": \"Jane Doe\"}\n```\nLet me know if you need anything else."

	data, err := Decode(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if data["name"] != "Jane Doe" {
		t.Fatalf("unexpected payload: %v", data)
	}
}

func TestDecodeFailsWithoutBraces(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"no braces at all", "I could not produce a result."},
		{"opening brace only", `{"name": "Jane"`},
		{"closing brace only", `"name": "Jane"}`},
		{"closing before opening", `} nothing here {`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.raw)
			if err == nil {
				t.Fatalf("expected error for %q", tc.raw)
			}

			var malformed *MalformedResponseError
			if !errors.As(err, &malformed) {
				t.Fatalf("expected MalformedResponseError, got %T: %v", err, err)
			}
		})
	}
}

func TestDecodeFailsOnInvalidJSON(t *testing.T) {
	_, err := Decode(`{"name": Jane}`)
	if err == nil {
		t.Fatalf("expected error for invalid JSON")
	}

	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedResponseError, got %T: %v", err, err)
	}
}

func TestIsolateJSONKeepsOutermostObject(t *testing.T) {
	raw := `prefix {"outer": {"inner": 1}} suffix`

	payload, err := IsolateJSON(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if payload != `{"outer": {"inner": 1}}` {
		t.Fatalf("unexpected payload: %q", payload)
	}
}
