package print

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/switchlab/formseal/internal/form"
	"github.com/switchlab/formseal/internal/pdf"
	"github.com/switchlab/formseal/internal/restore"
)

func testState() *form.State {
	s := form.DefaultState()
	s.General.JobNumber = "J-2031"
	s.General.SerialNumber = "BRK-4415"
	s.General.Model = "NW40-H1"
	s.General.Inspector = "J. Moreau"
	s.Dielectric.InsulationResistance.PhaseA = "520"
	s.Dielectric.InsulationResistance.Result = form.ResultPass
	s.TripDevice.LongTime = form.TripSetting{Pickup: "0.8", Delay: "4", Measured: "0.79", Result: form.ResultPass}
	s.Operation.CloseOpen = form.AnswerYes
	s.ContactResistance[0].Reading = "142"
	s.ContactResistance[0].Result = form.ResultPass
	s.Remarks = "released for shipment"
	return s
}

func TestRenderProducesPDF(t *testing.T) {
	data, err := NewRenderer().Render(testState())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")), "output must be a PDF")
}

func TestRenderEmbedsMarkerPayload(t *testing.T) {
	state := testState()
	data, err := NewRenderer().Render(state)
	require.NoError(t, err)

	// With compression off the payload delimiters sit in the content
	// stream as plain literals.
	assert.Contains(t, string(data), "@@FORMSEAL:")
	assert.Contains(t, string(data), ":FORMSEAL@@")
}

func TestPrintedDocumentRoundTrips(t *testing.T) {
	// The full loop: render to disk, extract the text layer, restore.
	state := testState()
	path := filepath.Join(t.TempDir(), "report.pdf")
	require.NoError(t, NewRenderer().RenderToFile(state, path))

	text, err := pdf.NewExtractor(pdf.DefaultMaxFileSize).ExtractText(path)
	require.NoError(t, err)

	restored, err := restore.FromExtractedText(text)
	require.NoError(t, err)

	assert.Equal(t, "BRK-4415", restored.General.SerialNumber)
	assert.Equal(t, "J. Moreau", restored.General.Inspector)
	assert.Equal(t, form.ResultPass, restored.Dielectric.InsulationResistance.Result)
	assert.Equal(t, "0.79", restored.TripDevice.LongTime.Measured)
	assert.Equal(t, form.AnswerYes, restored.Operation.CloseOpen)
	require.Len(t, restored.ContactResistance, 3)
	assert.Equal(t, "142", restored.ContactResistance[0].Reading)
	assert.Equal(t, "released for shipment", restored.Remarks)
	assert.NotEmpty(t, restored.LastModified)
}
