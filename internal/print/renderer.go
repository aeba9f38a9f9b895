// Package print renders a form state as the printable PDF artifact:
// the visible test report plus the embedded payload that lets the
// document be reloaded later by re-uploading it.
//
// Only the marker payload is embedded here. The zero-width payload is
// produced for text-layer hosts (the browser print path); the core PDF
// fonts carry no glyphs for the zero-width code points.
package print

import (
	"bytes"
	"fmt"
	"os"

	"github.com/jung-kurt/gofpdf"

	"github.com/switchlab/formseal/internal/form"
	"github.com/switchlab/formseal/internal/restore"
)

// Renderer turns a form state into PDF bytes.
type Renderer struct{}

// NewRenderer creates a Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render produces the printable document. Compression is disabled so
// the payload stays in the text layer verbatim for extraction.
func (r *Renderer) Render(state *form.State) ([]byte, error) {
	payload, err := restore.SerializeForPrint(state)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(false)
	pdf.SetAutoPageBreak(true, 30)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(0, 8, "Circuit Breaker Production Test Report", "", "C", false)
	pdf.Ln(4)

	renderGeneral(pdf, tr, state.General)
	renderDielectric(pdf, tr, state.Dielectric)
	renderTripDevice(pdf, tr, state.TripDevice)
	renderChecklist(pdf, tr, state.Operation)
	renderContactResistance(pdf, tr, state.ContactResistance)

	if state.Remarks != "" {
		sectionHeading(pdf, "Remarks")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, tr(state.Remarks), "", "L", false)
	}

	renderPayloadFooter(pdf, payload.MarkerText)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderToFile writes the printable document to path.
func (r *Renderer) RenderToFile(state *form.State, path string) error {
	data, err := r.Render(state)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write PDF: %w", err)
	}
	return nil
}

func sectionHeading(pdf *gofpdf.Fpdf, title string) {
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.MultiCell(0, 6, title, "", "L", false)
	pdf.Ln(1)
}

func labelValue(pdf *gofpdf.Fpdf, tr func(string) string, label, value string) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(45, 5, label, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, tr(value), "", 1, "L", false, 0, "")
}

func renderGeneral(pdf *gofpdf.Fpdf, tr func(string) string, g form.General) {
	sectionHeading(pdf, "General")
	labelValue(pdf, tr, "Job number", g.JobNumber)
	labelValue(pdf, tr, "Serial number", g.SerialNumber)
	labelValue(pdf, tr, "Model", g.Model)
	labelValue(pdf, tr, "Rated current", g.RatedCurrent)
	labelValue(pdf, tr, "Rated voltage", g.RatedVoltage)
	labelValue(pdf, tr, "Inspector", g.Inspector)
	labelValue(pdf, tr, "Test date", g.TestDate)
}

func renderDielectric(pdf *gofpdf.Fpdf, tr func(string) string, d form.Dielectric) {
	sectionHeading(pdf, "Dielectric Tests")

	ir := d.InsulationResistance
	labelValue(pdf, tr, "Insulation test voltage", ir.TestVoltage)
	labelValue(pdf, tr, "Phase A / B / C",
		fmt.Sprintf("%s / %s / %s", ir.PhaseA, ir.PhaseB, ir.PhaseC))
	labelValue(pdf, tr, "Minimum", ir.Minimum)
	labelValue(pdf, tr, "Result", string(ir.Result))

	pf := d.PowerFrequency
	labelValue(pdf, tr, "Withstand voltage", pf.TestVoltage)
	labelValue(pdf, tr, "Kind", string(pf.Kind))
	labelValue(pdf, tr, "Duration", pf.Duration)
	labelValue(pdf, tr, "Withstand result", string(pf.Result))
}

func renderTripDevice(pdf *gofpdf.Fpdf, tr func(string) string, t form.TripDevice) {
	sectionHeading(pdf, "Trip Device Settings")

	pdf.SetFont("Helvetica", "B", 9)
	for _, h := range []string{"Element", "Pickup", "Delay", "Measured", "Result"} {
		pdf.CellFormat(36, 5, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	rows := []struct {
		name    string
		setting form.TripSetting
	}{
		{"Long time", t.LongTime},
		{"Short time", t.ShortTime},
		{"Instantaneous", t.Instantaneous},
		{"Ground fault", t.GroundFault},
	}
	for _, row := range rows {
		pdf.CellFormat(36, 5, row.name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(36, 5, tr(row.setting.Pickup), "1", 0, "C", false, 0, "")
		pdf.CellFormat(36, 5, tr(row.setting.Delay), "1", 0, "C", false, 0, "")
		pdf.CellFormat(36, 5, tr(row.setting.Measured), "1", 0, "C", false, 0, "")
		pdf.CellFormat(36, 5, string(row.setting.Result), "1", 1, "C", false, 0, "")
	}
}

func renderChecklist(pdf *gofpdf.Fpdf, tr func(string) string, c form.Checklist) {
	sectionHeading(pdf, "Operation Checklist")
	labelValue(pdf, tr, "Manual charge", string(c.ManualCharge))
	labelValue(pdf, tr, "Electric charge", string(c.ElectricCharge))
	labelValue(pdf, tr, "Close / open", string(c.CloseOpen))
	labelValue(pdf, tr, "Anti-pumping", string(c.AntiPumping))
	labelValue(pdf, tr, "Shunt trip", string(c.ShuntTrip))
	labelValue(pdf, tr, "Undervoltage trip", string(c.UndervoltageTrip))
	labelValue(pdf, tr, "Auxiliary contacts", string(c.AuxiliaryContacts))
	if c.OperationCount != nil {
		labelValue(pdf, tr, "Operation count", fmt.Sprintf("%d", *c.OperationCount))
	}
}

func renderContactResistance(pdf *gofpdf.Fpdf, tr func(string) string, rows []form.ResistanceRow) {
	sectionHeading(pdf, "Contact Resistance")

	pdf.SetFont("Helvetica", "B", 9)
	for _, h := range []string{"Pole", "Reading", "Limit", "Result"} {
		pdf.CellFormat(45, 5, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, row := range rows {
		pdf.CellFormat(45, 5, tr(row.Pole), "1", 0, "C", false, 0, "")
		pdf.CellFormat(45, 5, tr(row.Reading), "1", 0, "C", false, 0, "")
		pdf.CellFormat(45, 5, tr(row.Limit), "1", 0, "C", false, 0, "")
		pdf.CellFormat(45, 5, string(row.Result), "1", 1, "C", false, 0, "")
	}
}

// renderPayloadFooter prints the marker payload in a small light-gray
// block at the end of the document. It must stay machine-readable, not
// human-readable: the wrap inside MultiCell injects whitespace the
// decoder already tolerates.
func renderPayloadFooter(pdf *gofpdf.Fpdf, markerText string) {
	pdf.Ln(6)
	pdf.SetFont("Courier", "", 6)
	pdf.SetTextColor(200, 200, 200)
	pdf.MultiCell(0, 2.5, markerText, "", "L", false)
	pdf.SetTextColor(0, 0, 0)
}
