// Package form defines the production-test form state and the schema
// reconciliation that lets documents saved by older or newer revisions
// of the form load into the current shape.
package form

import "time"

// Result is the outcome of a single test step.
type Result string

const (
	ResultPass Result = "PASS"
	ResultFail Result = "FAIL"
	ResultNA   Result = "N/A"
)

// Answer is a yes/no checklist response.
type Answer string

const (
	AnswerYes Answer = "YES"
	AnswerNo  Answer = "NO"
	AnswerNA  Answer = "N/A"
)

// Current identifies the kind of test voltage applied. The empty
// value means the field was left blank on the form.
type Current string

const (
	CurrentAC Current = "AC"
	CurrentDC Current = "DC"
)

// State is the complete in-memory form: one breaker production test.
// It is owned by the UI layer, mutable, and always JSON-serializable;
// the codec and restore pipeline only ever see snapshots of it.
type State struct {
	General           General         `json:"general"`
	Dielectric        Dielectric      `json:"dielectric"`
	TripDevice        TripDevice      `json:"tripDevice"`
	Operation         Checklist       `json:"operation"`
	ContactResistance []ResistanceRow `json:"contactResistance"`
	Remarks           string          `json:"remarks"`
	LastModified      string          `json:"lastModified"`
}

// General identifies the breaker under test and the test session.
type General struct {
	JobNumber    string `json:"jobNumber"`
	SerialNumber string `json:"serialNumber"`
	Model        string `json:"model"`
	RatedCurrent string `json:"ratedCurrent"`
	RatedVoltage string `json:"ratedVoltage"`
	Inspector    string `json:"inspector"`
	TestDate     string `json:"testDate"`
}

// Dielectric groups the insulation and withstand voltage tests.
type Dielectric struct {
	InsulationResistance InsulationTest `json:"insulationResistance"`
	PowerFrequency       WithstandTest  `json:"powerFrequency"`
}

// InsulationTest records megger readings per phase.
type InsulationTest struct {
	TestVoltage string `json:"testVoltage"`
	PhaseA      string `json:"phaseA"`
	PhaseB      string `json:"phaseB"`
	PhaseC      string `json:"phaseC"`
	Minimum     string `json:"minimum"`
	Result      Result `json:"result"`
}

// WithstandTest records a power-frequency withstand application.
type WithstandTest struct {
	TestVoltage string  `json:"testVoltage"`
	Kind        Current `json:"kind"`
	Duration    string  `json:"duration"`
	Result      Result  `json:"result"`
}

// TripDevice holds the protection-unit settings and their verification.
type TripDevice struct {
	LongTime      TripSetting `json:"longTime"`
	ShortTime     TripSetting `json:"shortTime"`
	Instantaneous TripSetting `json:"instantaneous"`
	GroundFault   TripSetting `json:"groundFault"`
}

// TripSetting is one protection element: dialed values and the
// measured verification.
type TripSetting struct {
	Pickup   string `json:"pickup"`
	Delay    string `json:"delay"`
	Measured string `json:"measured"`
	Result   Result `json:"result"`
}

// Checklist covers the mechanical and electrical operation checks.
type Checklist struct {
	ManualCharge      Answer `json:"manualCharge"`
	ElectricCharge    Answer `json:"electricCharge"`
	CloseOpen         Answer `json:"closeOpen"`
	AntiPumping       Answer `json:"antiPumping"`
	ShuntTrip         Answer `json:"shuntTrip"`
	UndervoltageTrip  Answer `json:"undervoltageTrip"`
	AuxiliaryContacts Answer `json:"auxiliaryContacts"`
	OperationCount    *int   `json:"operationCount,omitempty"`
}

// ResistanceRow is one contact-resistance measurement. Rows are an
// ordered sequence; the inspector may add or remove them and their
// order on the printed table is meaningful.
type ResistanceRow struct {
	Pole    string `json:"pole"`
	Reading string `json:"reading"`
	Limit   string `json:"limit"`
	Result  Result `json:"result"`
}

// DefaultState constructs the current schema with its default values.
// Every restore starts from a fresh copy of this and merges the loaded
// document onto it.
func DefaultState() *State {
	return &State{
		Dielectric: Dielectric{
			InsulationResistance: InsulationTest{
				TestVoltage: "1000 V DC",
				Minimum:     "≥ 100 MΩ",
				Result:      ResultNA,
			},
			PowerFrequency: WithstandTest{
				Duration: "60 s",
				Result:   ResultNA,
			},
		},
		TripDevice: TripDevice{
			LongTime:      TripSetting{Result: ResultNA},
			ShortTime:     TripSetting{Result: ResultNA},
			Instantaneous: TripSetting{Result: ResultNA},
			GroundFault:   TripSetting{Result: ResultNA},
		},
		Operation: Checklist{
			ManualCharge:      AnswerNA,
			ElectricCharge:    AnswerNA,
			CloseOpen:         AnswerNA,
			AntiPumping:       AnswerNA,
			ShuntTrip:         AnswerNA,
			UndervoltageTrip:  AnswerNA,
			AuxiliaryContacts: AnswerNA,
		},
		ContactResistance: []ResistanceRow{
			{Pole: "A", Limit: "≤ 150 µΩ", Result: ResultNA},
			{Pole: "B", Limit: "≤ 150 µΩ", Result: ResultNA},
			{Pole: "C", Limit: "≤ 150 µΩ", Result: ResultNA},
		},
	}
}

// Touch re-stamps the modified time. The restore pipeline calls this
// after reconciliation so the stamp always reflects the load, never
// the value embedded in the document.
func (s *State) Touch(now time.Time) {
	s.LastModified = now.Format(time.RFC3339)
}
