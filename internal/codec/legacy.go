package codec

import (
	"regexp"
	"strings"
)

// Legacy delimiters used by documents printed before the checksummed
// marker format existed. There is deliberately no EncodeLegacy: new
// artifacts are never produced in this format.
const (
	LegacyStart = "DATA::"
	LegacyEnd   = "::END"
)

var legacyPattern = regexp.MustCompile(`(?s)DATA::(.*?)::END`)

// DecodeLegacy reads the old uncheck-summed DATA::<base64>::END
// convention. Extraction may have injected whitespace or other noise
// into the span, so everything outside the base64 alphabet is dropped
// before decoding.
func DecodeLegacy(raw string) (string, bool) {
	m := legacyPattern.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}

	b64 := strings.Map(func(r rune) rune {
		switch {
		case r >= 'A' && r <= 'Z',
			r >= 'a' && r <= 'z',
			r >= '0' && r <= '9',
			r == '+', r == '/', r == '=':
			return r
		}
		return -1
	}, m[1])
	if b64 == "" {
		return "", false
	}

	text, err := DecodeBytes(b64)
	if err != nil {
		return "", false
	}
	return text, true
}
