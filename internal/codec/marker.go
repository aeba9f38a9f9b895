package codec

import (
	"regexp"
	"strings"
)

// Marker codec delimiters. The payload is rendered as a low-opacity
// footer line on the printed page, so the delimiters must survive a
// flatten into a single page's text layer.
const (
	MarkerStart = "@@FORMSEAL:"
	MarkerEnd   = ":FORMSEAL@@"

	// markerWrapWidth is the column at which the encoder inserts a
	// soft space into the base64 body. Some renderers clip a single
	// unbroken run that exceeds the page width.
	markerWrapWidth = 80
)

var markerPattern = regexp.MustCompile(
	`(?s)` + regexp.QuoteMeta(MarkerStart) + `(.*?)` + regexp.QuoteMeta(MarkerEnd))

// EncodeMarker produces the primary embedding for jsonText:
// MarkerStart + checksum + "|" + soft-wrapped base64 + MarkerEnd.
// The checksum is computed over the unwrapped base64 string.
func EncodeMarker(jsonText string) string {
	b64 := EncodeBytes(jsonText)
	sum := Checksum(b64)

	var body strings.Builder
	for i := 0; i < len(b64); i += markerWrapWidth {
		end := i + markerWrapWidth
		if end > len(b64) {
			end = len(b64)
		}
		if i > 0 {
			body.WriteByte(' ')
		}
		body.WriteString(b64[i:end])
	}

	return MarkerStart + sum + "|" + body.String() + MarkerEnd
}

// DecodeMarker locates a marker span in raw extracted text and returns
// the embedded JSON text. The body tolerates any amount of injected
// whitespace; a missing span, a checksum mismatch or a base64/UTF-8
// decode failure all report (_, false) so the caller can fall through
// to the next strategy. Reflowed print output routinely corrupts the
// visible marker, so a mismatch is an expected outcome, not an error.
func DecodeMarker(raw string) (string, bool) {
	m := markerPattern.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}

	captured := m[1]
	sep := strings.Index(captured, "|")
	if sep < 0 {
		return "", false
	}
	wantSum := strings.TrimSpace(captured[:sep])

	b64 := stripWhitespace(captured[sep+1:])
	if b64 == "" || Checksum(b64) != wantSum {
		return "", false
	}

	text, err := DecodeBytes(b64)
	if err != nil {
		return "", false
	}
	return text, true
}

func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', '\f', '\v', ' ':
			return -1
		}
		return r
	}, s)
}
