package codec

import (
	"strings"
	"testing"
)

func TestZeroWidthRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"small object", `{"x":1}`},
		{"measurement characters", `{"units":"µΩ ± → ≤"}`},
		{"nested", `{"trip":{"longTime":{"pickup":"0.8","delay":"4"}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DecodeZeroWidth(EncodeZeroWidth(tt.json))
			if !ok {
				t.Fatal("DecodeZeroWidth reported not found on its own output")
			}
			if got != tt.json {
				t.Errorf("round trip mismatch: got %q, want %q", got, tt.json)
			}
		})
	}
}

func TestZeroWidthEncodeIsInvisible(t *testing.T) {
	encoded := EncodeZeroWidth(`{"x":1}`)
	for _, r := range encoded {
		if r != zwZero && r != zwOne && r != zwSentinel {
			t.Fatalf("encoder emitted visible rune %q", r)
		}
	}
}

func TestZeroWidthDecodeInterleaved(t *testing.T) {
	// Extraction flattens the invisible span into surrounding visible
	// text; the decoder must ignore everything outside the alphabet.
	json := `{"serial":"BRK-4415"}`
	encoded := EncodeZeroWidth(json)

	var interleaved strings.Builder
	for i, r := range encoded {
		interleaved.WriteRune(r)
		if i%7 == 0 {
			interleaved.WriteString("x")
		}
	}
	page := "CHECKLIST\n" + interleaved.String() + "\nEND OF REPORT"

	got, ok := DecodeZeroWidth(page)
	if !ok {
		t.Fatal("DecodeZeroWidth failed on interleaved text")
	}
	if got != json {
		t.Errorf("got %q, want %q", got, json)
	}
}

func TestZeroWidthRejectsPartialBits(t *testing.T) {
	// A bit stream that is not a multiple of 8 after sentinel framing
	// must report not found, never panic or return garbage.
	tests := []struct {
		name string
		raw  string
	}{
		{"three bits", string(zwSentinel) + string(zwOne) + string(zwZero) + string(zwOne) + string(zwSentinel)},
		{"truncated payload", func() string {
			enc := []rune(EncodeZeroWidth(`{"x":1}`))
			return string(enc[:len(enc)-4]) // drops 3 bits and the closing sentinel
		}()},
		{"only sentinels", string(zwSentinel) + string(zwSentinel)},
		{"no invisible runes", "perfectly ordinary text"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, ok := DecodeZeroWidth(tt.raw); ok {
				t.Errorf("expected not found, decoded %q", got)
			}
		})
	}
}
