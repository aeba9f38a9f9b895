// Package codec implements the textual encodings that carry a form
// snapshot through a printed page and back out of its extracted text
// layer. Three strategies exist: a checksummed visible marker, an
// invisible zero-width encoding, and a read-only legacy format. All
// functions are pure and safe to call concurrently.
package codec

import (
	"encoding/base64"
	"fmt"
	"unicode/utf8"
)

// EncodeBytes converts text to a base64 string over its UTF-8 bytes.
// The form contains characters like µ, ±, → and ≤, so the conversion
// must go through bytes rather than code points.
func EncodeBytes(text string) string {
	return base64.StdEncoding.EncodeToString([]byte(text))
}

// DecodeBytes reverses EncodeBytes. It returns an error on malformed
// base64 or on byte sequences that are not valid UTF-8; callers treat
// either as "no valid payload", not as a fatal condition.
func DecodeBytes(encoded string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("invalid base64: %w", err)
	}
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("decoded bytes are not valid UTF-8")
	}
	return string(raw), nil
}
