package codec

import (
	"fmt"
	"unicode/utf16"
)

// Checksum computes the rolling hash used by the marker codec: a
// 31-multiplier polynomial over the string's UTF-16 code units,
// reduced to an unsigned 32-bit value and rendered as lowercase hex.
// Documents printed by earlier implementations of this format carry
// exactly this hash, so the algorithm is fixed for interoperability.
func Checksum(s string) string {
	var h uint32
	for _, u := range utf16.Encode([]rune(s)) {
		h = h*31 + uint32(u)
	}
	return fmt.Sprintf("%x", h)
}
