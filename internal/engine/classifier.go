// Package engine implements the deterministic allocation rules that turn a
// normalized instrument list into junction box, cable, terminal and I/O card
// assignments.
package engine

import (
	"sort"
	"strings"

	"github.com/icsuite/wireplan/internal/types"
)

// typeClassification maps ISA-style instrument type codes to signal types.
// Lookup is exact match first, then longest registered prefix, then the
// analog-input default (analog wiring tolerates a misclassified digital
// signal better than the reverse).
var typeClassification = map[string]types.SignalType{
	// Analog inputs (4-20mA) - transmitters
	"TIT": types.SignalAnalogInput,
	"PIT": types.SignalAnalogInput,
	"FIT": types.SignalAnalogInput,
	"LIT": types.SignalAnalogInput,
	"PDT": types.SignalAnalogInput,
	"AIT": types.SignalAnalogInput,
	"WIT": types.SignalAnalogInput,
	"TT":  types.SignalAnalogInput,
	"PT":  types.SignalAnalogInput,
	"FT":  types.SignalAnalogInput,
	"LT":  types.SignalAnalogInput,
	"TZT": types.SignalAnalogInput, // safety transmitters
	"PZT": types.SignalAnalogInput,
	"FZT": types.SignalAnalogInput,
	"LZT": types.SignalAnalogInput,

	// Analog inputs - indicators
	"TI":  types.SignalAnalogInput,
	"PI":  types.SignalAnalogInput,
	"FI":  types.SignalAnalogInput,
	"LI":  types.SignalAnalogInput,
	"PDI": types.SignalAnalogInput,
	"AI":  types.SignalAnalogInput,
	"TZI": types.SignalAnalogInput,
	"PZI": types.SignalAnalogInput,
	"FZI": types.SignalAnalogInput,
	"LZI": types.SignalAnalogInput,

	// Analog outputs (4-20mA) - controllers
	"TIC":  types.SignalAnalogOutput,
	"PIC":  types.SignalAnalogOutput,
	"FIC":  types.SignalAnalogOutput,
	"LIC":  types.SignalAnalogOutput,
	"AIC":  types.SignalAnalogOutput,
	"PDIC": types.SignalAnalogOutput,

	// Analog outputs - transducers and control valves
	"TY":  types.SignalAnalogOutput,
	"PY":  types.SignalAnalogOutput,
	"FY":  types.SignalAnalogOutput,
	"LY":  types.SignalAnalogOutput,
	"TCV": types.SignalAnalogOutput,
	"PCV": types.SignalAnalogOutput,
	"FCV": types.SignalAnalogOutput,
	"LCV": types.SignalAnalogOutput,
	"FV":  types.SignalAnalogOutput,
	"PV":  types.SignalAnalogOutput,
	"LV":  types.SignalAnalogOutput,
	"TV":  types.SignalAnalogOutput,

	// Digital inputs (24VDC) - position/limit switches
	"ZS":   types.SignalDigitalInput,
	"ZSC":  types.SignalDigitalInput,
	"ZSO":  types.SignalDigitalInput,
	"ZI":   types.SignalDigitalInput,
	"ZSL":  types.SignalDigitalInput,
	"ZSH":  types.SignalDigitalInput,
	"EZSC": types.SignalDigitalInput,
	"EZSO": types.SignalDigitalInput,
	"EZLO": types.SignalDigitalInput,
	"EZLC": types.SignalDigitalInput,
	"EZA":  types.SignalDigitalInput,
	"BZSC": types.SignalDigitalInput,
	"BZSO": types.SignalDigitalInput,

	// Digital inputs - process switches
	"PS":   types.SignalDigitalInput,
	"PSL":  types.SignalDigitalInput,
	"PSH":  types.SignalDigitalInput,
	"PSLL": types.SignalDigitalInput,
	"PSHH": types.SignalDigitalInput,
	"LS":   types.SignalDigitalInput,
	"LSL":  types.SignalDigitalInput,
	"LSH":  types.SignalDigitalInput,
	"LSLL": types.SignalDigitalInput,
	"LSHH": types.SignalDigitalInput,
	"FS":   types.SignalDigitalInput,
	"FSL":  types.SignalDigitalInput,
	"FSH":  types.SignalDigitalInput,
	"TS":   types.SignalDigitalInput,
	"TSL":  types.SignalDigitalInput,
	"TSH":  types.SignalDigitalInput,
	"TSLL": types.SignalDigitalInput,
	"TSHH": types.SignalDigitalInput,

	// Digital inputs - alarms and status
	"XS":    types.SignalDigitalInput,
	"XA":    types.SignalDigitalInput,
	"TAH":   types.SignalDigitalInput,
	"TAL":   types.SignalDigitalInput,
	"PAH":   types.SignalDigitalInput,
	"PAL":   types.SignalDigitalInput,
	"LAH":   types.SignalDigitalInput,
	"LAL":   types.SignalDigitalInput,
	"LAD":   types.SignalDigitalInput,
	"TAD":   types.SignalDigitalInput,
	"PAD":   types.SignalDigitalInput,
	"FAD":   types.SignalDigitalInput,
	"EEHZY": types.SignalDigitalInput,
	"YS":    types.SignalDigitalInput,
	"YA":    types.SignalDigitalInput,
	"YI":    types.SignalDigitalInput,

	// Digital outputs (24VDC)
	"XV":  types.SignalDigitalOutput,
	"XY":  types.SignalDigitalOutput,
	"SOV": types.SignalDigitalOutput,
	"SDV": types.SignalDigitalOutput,
	"MOV": types.SignalDigitalOutput,
	"HC":  types.SignalDigitalOutput,
	"HS":  types.SignalDigitalOutput,

	// Temperature elements
	"TE": types.SignalRTD3Wire,
}

// prefixesByLength holds the registered type codes sorted longest-first so
// prefix lookup is deterministic.
var prefixesByLength = func() []string {
	prefixes := make([]string, 0, len(typeClassification))
	for p := range typeClassification {
		prefixes = append(prefixes, p)
	}
	sort.Slice(prefixes, func(i, j int) bool {
		if len(prefixes[i]) != len(prefixes[j]) {
			return len(prefixes[i]) > len(prefixes[j])
		}
		return prefixes[i] < prefixes[j]
	})
	return prefixes
}()

// Classify maps an instrument type code to its signal type. Classification
// always succeeds; unknown codes default to analog input.
func Classify(typeCode string) types.SignalType {
	if st, ok := typeClassification[typeCode]; ok {
		return st
	}
	for _, prefix := range prefixesByLength {
		if strings.HasPrefix(typeCode, prefix) {
			return typeClassification[prefix]
		}
	}
	return types.SignalAnalogInput
}

// ClassifyJB derives a junction box class from the instruments landing in
// it. Empty input defaults to analog.
func ClassifyJB(instruments []types.Instrument) types.JBClass {
	hasAnalog := false
	hasDigital := false
	for i := range instruments {
		if instruments[i].SignalType.IsDigital() {
			hasDigital = true
		} else {
			hasAnalog = true
		}
	}
	switch {
	case hasAnalog && hasDigital:
		return types.JBMixed
	case hasDigital:
		return types.JBDigital
	default:
		return types.JBAnalog
	}
}

// JBTagPrefix returns the enclosure tag prefix for a JB class: IA (analog),
// ID (digital), IM (mixed).
func JBTagPrefix(class types.JBClass) string {
	switch class {
	case types.JBDigital:
		return "ID"
	case types.JBMixed:
		return "IM"
	default:
		return "IA"
	}
}

// sisPrefixes are instrument type code prefixes that indicate safety system
// assignment: safety transmitters and ESD/blowdown valve signals.
var sisPrefixes = []string{
	"TZI", "PZI", "LZI", "FZI",
	"TZT", "PZT", "LZT", "FZT",
	"EVI", "EHS",
	"BVI", "BHS",
}

// rtuAreaMarkers mark instruments installed at remote sites served by RTUs.
var rtuAreaMarkers = []string{"DS-1", "DS-3", "RTU"}

// ClassifySystem decides which control system an instrument belongs to:
// SIS for safety-prefixed type codes, RTU for remote-site areas, DCS
// otherwise.
func ClassifySystem(inst *types.Instrument) types.ControlSystem {
	instType := strings.ToUpper(inst.Type)
	for _, prefix := range sisPrefixes {
		if strings.HasPrefix(instType, prefix) {
			return types.SystemSIS
		}
	}
	area := strings.ToUpper(inst.Area)
	for _, marker := range rtuAreaMarkers {
		if strings.Contains(area, marker) {
			return types.SystemRTU
		}
	}
	return types.SystemDCS
}

// IOTypeOf resolves an instrument's hardware I/O type. An explicit io-type
// hint from the source document wins over the signal type mapping.
func IOTypeOf(inst *types.Instrument) types.IOType {
	switch strings.ToUpper(inst.IOTypeHint) {
	case "AI":
		return types.IOTypeAI
	case "AO":
		return types.IOTypeAO
	case "DI":
		return types.IOTypeDI
	case "DO":
		return types.IOTypeDO
	}

	switch inst.SignalType {
	case types.SignalAnalogOutput:
		return types.IOTypeAO
	case types.SignalDigitalInput:
		return types.IOTypeDI
	case types.SignalDigitalOutput:
		return types.IOTypeDO
	default:
		// AI covers analog inputs, thermocouples, RTDs and unknowns.
		return types.IOTypeAI
	}
}

// SplitBySignalCategory partitions instruments into analog and digital
// subsets, preserving input order within each subset. Unrecognized signal
// types land in the analog subset.
func SplitBySignalCategory(instruments []types.Instrument) (analog, digital []types.Instrument) {
	for i := range instruments {
		if instruments[i].SignalType.IsDigital() {
			digital = append(digital, instruments[i])
		} else {
			analog = append(analog, instruments[i])
		}
	}
	return analog, digital
}
