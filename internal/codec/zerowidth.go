package codec

import "strings"

// Zero-width alphabet. Two invisible code points carry the bits and a
// third frames the payload at both ends. These survive print paths
// that drop the visible footer but keep the character-level text.
const (
	zwZero     = '​' // ZERO WIDTH SPACE
	zwOne      = '‌' // ZERO WIDTH NON-JOINER
	zwSentinel = '‍' // ZERO WIDTH JOINER
)

// EncodeZeroWidth produces the invisible embedding for jsonText: each
// character of the base64 form becomes eight invisible runes, one per
// bit, most significant first, with the sentinel on both sides.
func EncodeZeroWidth(jsonText string) string {
	b64 := EncodeBytes(jsonText)

	var out strings.Builder
	out.Grow(2 + len(b64)*8*3) // zero-width runes are 3 bytes in UTF-8
	out.WriteRune(zwSentinel)
	for i := 0; i < len(b64); i++ {
		c := b64[i]
		for bit := 7; bit >= 0; bit-- {
			if c&(1<<uint(bit)) != 0 {
				out.WriteRune(zwOne)
			} else {
				out.WriteRune(zwZero)
			}
		}
	}
	out.WriteRune(zwSentinel)
	return out.String()
}

// DecodeZeroWidth recovers JSON text from a zero-width embedding in
// raw extracted text. Every rune outside the three-rune alphabet is
// discarded first, so the payload may be interleaved with arbitrary
// visible content. There is no checksum: the sentinel framing plus the
// multiple-of-8 bit-count requirement reject most corruption, which is
// why this strategy is only consulted after the marker codec fails.
func DecodeZeroWidth(raw string) (string, bool) {
	invisible := strings.Map(func(r rune) rune {
		switch r {
		case zwZero, zwOne, zwSentinel:
			return r
		}
		return -1
	}, raw)
	if invisible == "" {
		return "", false
	}

	var bits string
	for _, segment := range strings.Split(invisible, string(zwSentinel)) {
		if segment != "" {
			bits = segment
			break
		}
	}
	if bits == "" {
		return "", false
	}

	runes := []rune(bits)
	if len(runes)%8 != 0 {
		return "", false
	}

	b64 := make([]byte, 0, len(runes)/8)
	for i := 0; i < len(runes); i += 8 {
		var c byte
		for _, r := range runes[i : i+8] {
			c <<= 1
			if r == zwOne {
				c |= 1
			}
		}
		b64 = append(b64, c)
	}

	text, err := DecodeBytes(string(b64))
	if err != nil {
		return "", false
	}
	return text, true
}
