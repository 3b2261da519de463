// Package canonicalize produces the RFC 8785 (JSON Canonicalization Scheme)
// byte form of arbitrary JSON-like values, plus the base64url encoding used
// throughout the Elydora wire format.
package canonicalize

import (
	"bytes"
	"encoding/json"

	"github.com/gowebpki/jcs"

	"github.com/Elydora-Infrastructure/elydora-go/pkg/contracts"
)

// Marshal returns the RFC 8785 canonical JSON bytes of v.
//
// Strategy (two-pass): first marshal with encoding/json so struct tags and
// omitempty are honored, then canonicalize the intermediate JSON. The second
// pass owns the hard parts of RFC 8785 — object keys ordered by UTF-16 code
// units and numbers serialized per the ES2015 Number-to-String algorithm.
// HTML escaping is disabled on the first pass; the canonical form escapes only
// quote, backslash and control characters.
//
// Non-finite floats are not representable in JSON and fail with a
// VALIDATION_ERROR. A nil value canonicalizes to the literal null.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, contracts.NewValidationError("canonicalize: %v", err)
	}
	intermediate := bytes.TrimSuffix(buf.Bytes(), []byte{'\n'})

	// The canonicalizer wants an object or array at the top level. Scalar
	// payloads (null, strings, numbers) are wrapped in a one-element array for
	// the transform and unwrapped afterwards, so they still get canonical
	// number and string forms.
	if len(intermediate) > 0 && (intermediate[0] == '{' || intermediate[0] == '[') {
		out, err := jcs.Transform(intermediate)
		if err != nil {
			return nil, contracts.NewValidationError("canonicalize: %v", err)
		}
		return out, nil
	}

	wrapped := make([]byte, 0, len(intermediate)+2)
	wrapped = append(wrapped, '[')
	wrapped = append(wrapped, intermediate...)
	wrapped = append(wrapped, ']')
	out, err := jcs.Transform(wrapped)
	if err != nil {
		return nil, contracts.NewValidationError("canonicalize: %v", err)
	}
	return out[1 : len(out)-1], nil
}

// MarshalString is Marshal with a string result.
func MarshalString(v any) (string, error) {
	b, err := Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
