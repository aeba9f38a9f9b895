package codec

import (
	"strings"
	"testing"
)

func TestMarkerRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"small object", `{"count":3,"rows":["a","b"]}`},
		{"empty object", `{}`},
		{"unicode fields", `{"reading":"142 µΩ","limit":"≤ 150"}`},
		{"long payload", `{"rows":[` + strings.Repeat(`{"pole":"A","reading":"120"},`, 40) + `{"pole":"B","reading":"130"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := EncodeMarker(tt.json)
			got, ok := DecodeMarker(encoded)
			if !ok {
				t.Fatal("DecodeMarker reported not found on its own output")
			}
			if got != tt.json {
				t.Errorf("round trip mismatch: got %q, want %q", got, tt.json)
			}
		})
	}
}

func TestMarkerDecodeSurvivesReflow(t *testing.T) {
	// The print/extraction pipeline reflows the footer line: it may
	// replace the soft wrap spaces with newlines, inject runs of
	// whitespace anywhere in the body, and embed the span in the
	// middle of unrelated page text.
	json := `{"serial":"BRK-4415","dielectric":{"result":"PASS"}}`
	encoded := EncodeMarker(json)

	reflowed := strings.ReplaceAll(encoded, " ", "\n   \n")
	reflowed = strings.Replace(reflowed, "=", "=\r\n", 1)
	page := "Dielectric Test Report\nPage 1 of 2\n" + reflowed + "\nInspector: J. Moreau"

	got, ok := DecodeMarker(page)
	if !ok {
		t.Fatal("DecodeMarker failed on reflowed text")
	}
	if got != json {
		t.Errorf("got %q, want %q", got, json)
	}
}

func TestMarkerChecksumSensitivity(t *testing.T) {
	// Flipping any single base64 character inside the body must turn
	// the decode into a clean not-found, never wrong data.
	json := `{"count":3,"rows":["a","b"]}`
	encoded := EncodeMarker(json)

	bodyStart := strings.Index(encoded, "|") + 1
	bodyEnd := strings.Index(encoded, MarkerEnd)
	for i := bodyStart; i < bodyEnd; i++ {
		c := encoded[i]
		if c == ' ' {
			continue
		}
		flipped := byte('A')
		if c == 'A' {
			flipped = 'B'
		}
		corrupted := encoded[:i] + string(flipped) + encoded[i+1:]
		if got, ok := DecodeMarker(corrupted); ok {
			t.Fatalf("corruption at offset %d decoded to %q", i, got)
		}
	}
}

func TestMarkerDecodeNotFound(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"no delimiters", "plain page text with no payload at all"},
		{"start without end", MarkerStart + "deadbeef|QQ=="},
		{"missing separator", MarkerStart + "QQ==" + MarkerEnd},
		{"empty body", MarkerStart + "0|" + MarkerEnd},
		{"wrong checksum", MarkerStart + "0|" + EncodeBytes(`{"x":1}`) + MarkerEnd},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, ok := DecodeMarker(tt.raw); ok {
				t.Errorf("expected not found, decoded %q", got)
			}
		})
	}
}

func TestMarkerWrapWidth(t *testing.T) {
	// The encoder must not emit an unbroken base64 run longer than the
	// wrap width; some renderers clip long runs at the page edge.
	json := `{"rows":[` + strings.Repeat(`"filler entry",`, 30) + `"end"]}`
	encoded := EncodeMarker(json)

	body := encoded[strings.Index(encoded, "|")+1 : strings.Index(encoded, MarkerEnd)]
	for _, run := range strings.Split(body, " ") {
		if len(run) > markerWrapWidth {
			t.Errorf("unbroken run of %d chars exceeds wrap width %d", len(run), markerWrapWidth)
		}
	}
}
