// Package restore recovers a form state from the text layer of an
// uploaded document, and produces the payloads embedded into printed
// output. Decoding tries the marker, zero-width and legacy codecs in
// that fixed order.
//
// Known limitation: if a payload span is split across a page boundary
// the decoder still sees it, because page texts are joined in order
// before decoding; but if extraction reorders the characters the
// marker checksum rejects the span and the restore reports no payload.
package restore

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/switchlab/formseal/internal/codec"
	"github.com/switchlab/formseal/internal/form"
)

// ErrNoPayload means no recognized delimiter pattern was found by any
// strategy. The user may simply have uploaded an unrelated document.
var ErrNoPayload = errors.New("no embedded form data found")

// ErrBadPayload means a strategy produced JSON text that does not
// parse. Once a payload is found, a parse failure indicates genuine
// corruption, so no further fallback is attempted.
var ErrBadPayload = errors.New("embedded form data could not be read")

// PrintPayload carries the two encodings a printed page embeds: the
// marker text goes into the low-opacity footer block and the
// zero-width text into an invisible inline span.
type PrintPayload struct {
	MarkerText    string `json:"markerText"`
	ZeroWidthText string `json:"zeroWidthText"`
}

// SerializeForPrint derives fresh payloads from a state snapshot.
// Payloads are recomputed on every state change, never persisted.
func SerializeForPrint(s *form.State) (PrintPayload, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return PrintPayload{}, fmt.Errorf("serialize form state: %w", err)
	}
	jsonText := string(data)
	return PrintPayload{
		MarkerText:    codec.EncodeMarker(jsonText),
		ZeroWidthText: codec.EncodeZeroWidth(jsonText),
	}, nil
}

// FromExtractedText runs the priority decode chain over raw extracted
// text and reconciles the result onto the current default schema.
// It returns ErrNoPayload when every strategy misses and ErrBadPayload
// when a found payload fails to parse; neither outcome touches any
// live state.
func FromExtractedText(text string) (*form.State, error) {
	return fromExtractedTextAt(text, time.Now())
}

func fromExtractedTextAt(text string, now time.Time) (*form.State, error) {
	jsonText, ok := codec.DecodeMarker(text)
	if !ok {
		jsonText, ok = codec.DecodeZeroWidth(text)
	}
	if !ok {
		jsonText, ok = codec.DecodeLegacy(text)
	}
	if !ok {
		return nil, ErrNoPayload
	}

	var loaded map[string]any
	if err := json.Unmarshal([]byte(jsonText), &loaded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}

	defaults, err := stateToMap(form.DefaultState())
	if err != nil {
		return nil, fmt.Errorf("build default state: %w", err)
	}

	merged := form.Reconcile(defaults, loaded)

	data, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("encode reconciled state: %w", err)
	}
	state := &form.State{}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}

	// The embedded stamp reflects when the document was printed, not
	// when it was loaded. Always re-stamp.
	state.Touch(now)
	return state, nil
}

// TextExtractor supplies the concatenated page text of a document.
type TextExtractor interface {
	ExtractText(path string) (string, error)
}

// Pipeline binds the decode chain to a document text extractor.
type Pipeline struct {
	extractor TextExtractor
}

// NewPipeline creates a restore pipeline over the given extractor.
func NewPipeline(extractor TextExtractor) (*Pipeline, error) {
	if extractor == nil {
		return nil, fmt.Errorf("extractor cannot be nil")
	}
	return &Pipeline{extractor: extractor}, nil
}

// FromFile extracts a document's text and restores the embedded form
// state. Extraction failures surface as a generic read failure,
// distinct from ErrNoPayload; the operation is not retried.
func (p *Pipeline) FromFile(path string) (*form.State, error) {
	text, err := p.extractor.ExtractText(path)
	if err != nil {
		return nil, fmt.Errorf("could not read document: %w", err)
	}
	return FromExtractedText(text)
}

func stateToMap(s *form.State) (map[string]any, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}
