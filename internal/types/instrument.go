package types

type SignalType string

const (
	SignalAnalogInput   SignalType = "ANALOG_INPUT"
	SignalAnalogOutput  SignalType = "ANALOG_OUTPUT"
	SignalDigitalInput  SignalType = "DIGITAL_INPUT"
	SignalDigitalOutput SignalType = "DIGITAL_OUTPUT"
	SignalThermocouple  SignalType = "THERMOCOUPLE"
	SignalRTD3Wire      SignalType = "RTD_3WIRE"
	SignalRTD4Wire      SignalType = "RTD_4WIRE"
)

// IsAnalog reports whether the signal rides on analog wiring.
// Temperature elements (TC, RTD) are wired like analog inputs.
func (s SignalType) IsAnalog() bool {
	switch s {
	case SignalAnalogInput, SignalAnalogOutput, SignalThermocouple, SignalRTD3Wire, SignalRTD4Wire:
		return true
	}
	return false
}

func (s SignalType) IsDigital() bool {
	return s == SignalDigitalInput || s == SignalDigitalOutput
}

func (s SignalType) IsInput() bool {
	switch s {
	case SignalAnalogInput, SignalDigitalInput, SignalThermocouple, SignalRTD3Wire, SignalRTD4Wire:
		return true
	}
	return false
}

func (s SignalType) IsOutput() bool {
	return s == SignalAnalogOutput || s == SignalDigitalOutput
}

// Instrument is one row of the normalized I/O list. SignalType is derived
// once at construction; terminal and cable fields are filled in as the
// allocation proceeds.
type Instrument struct {
	Tag     string `json:"tag"`
	Type    string `json:"type"`
	Service string `json:"service"`
	Area    string `json:"area"`

	SignalType SignalType `json:"signal_type"`
	LoopNumber string     `json:"loop_number,omitempty"`
	IOTypeHint string     `json:"io_type,omitempty"` // AI/AO/DI/DO override from the source document
	PIDRef     string     `json:"pid_reference,omitempty"`
	Remarks    string     `json:"remarks,omitempty"`

	BranchCableTag          string `json:"branch_cable_tag,omitempty"`
	JBTerminalPositive      string `json:"jb_terminal_positive,omitempty"`
	JBTerminalNegative      string `json:"jb_terminal_negative,omitempty"`
	JBTerminalShield        string `json:"jb_terminal_shield,omitempty"`
	CabinetTerminalPair     string `json:"cabinet_terminal_pair,omitempty"`
	CabinetTerminalPositive string `json:"cabinet_terminal_positive,omitempty"`
	CabinetTerminalNegative string `json:"cabinet_terminal_negative,omitempty"`
}
