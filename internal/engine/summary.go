package engine

import (
	"math"

	"github.com/icsuite/wireplan/internal/types"
)

// SignalSummary previews an instrument population before allocation: per
// category counts, the signal breakdown and the enclosure plans each
// category would need at the default spare margin.
type SignalSummary struct {
	AnalogCount  int `json:"analog_count"`
	DigitalCount int `json:"digital_count"`
	TotalCount   int `json:"total_count"`

	AnalogJBsNeeded  int `json:"analog_jbs_needed"`
	DigitalJBsNeeded int `json:"digital_jbs_needed"`
	TotalJBsNeeded   int `json:"total_jbs_needed"`

	AnalogPlan  *JBPlan `json:"analog_plan,omitempty"`
	DigitalPlan *JBPlan `json:"digital_plan,omitempty"`

	SignalBreakdown map[string]int `json:"signal_breakdown"`
}

// Summarize computes the pre-allocation preview for a population.
func Summarize(instruments []types.Instrument, sparePercent float64) SignalSummary {
	analog, digital := SplitBySignalCategory(instruments)

	summary := SignalSummary{
		AnalogCount:  len(analog),
		DigitalCount: len(digital),
		TotalCount:   len(analog) + len(digital),
		SignalBreakdown: map[string]int{
			string(types.SignalAnalogInput):   0,
			string(types.SignalAnalogOutput):  0,
			string(types.SignalDigitalInput):  0,
			string(types.SignalDigitalOutput): 0,
			"RTD":                             0,
			"THERMOCOUPLE":                    0,
		},
	}

	for i := range instruments {
		switch instruments[i].SignalType {
		case types.SignalAnalogInput, types.SignalAnalogOutput, types.SignalDigitalInput, types.SignalDigitalOutput:
			summary.SignalBreakdown[string(instruments[i].SignalType)]++
		case types.SignalRTD3Wire, types.SignalRTD4Wire:
			summary.SignalBreakdown["RTD"]++
		case types.SignalThermocouple:
			summary.SignalBreakdown["THERMOCOUPLE"]++
		}
	}

	if len(analog) > 0 {
		plan := PlanJBAllocation(len(analog), sparePercent, "")
		summary.AnalogPlan = &plan
		summary.AnalogJBsNeeded = plan.NumJBs
	}
	if len(digital) > 0 {
		plan := PlanJBAllocation(len(digital), sparePercent, "")
		summary.DigitalPlan = &plan
		summary.DigitalJBsNeeded = plan.NumJBs
	}
	summary.TotalJBsNeeded = summary.AnalogJBsNeeded + summary.DigitalJBsNeeded

	return summary
}

// SizeOption describes what one enclosure size class would cost for a
// population.
type SizeOption struct {
	Size              JBSize `json:"jb_size"`
	NumJBs            int    `json:"num_jbs"`
	EffectiveCapacity int    `json:"effective_capacity"`
	InstrumentsPerJB  []int  `json:"instruments_per_jb"`
	TotalTerminals    int    `json:"total_terminals"`
}

// ConfigurationSuggestion compares the size classes for a population and
// names the one needing the fewest enclosures.
type ConfigurationSuggestion struct {
	InstrumentCount int                   `json:"instrument_count"`
	SparePercent    float64               `json:"spare_percent"`
	Options         map[JBSize]SizeOption `json:"options"`
	Recommended     JBSize                `json:"recommended"`
}

// SuggestJBConfiguration evaluates every size class for a population. The
// recommendation minimizes enclosure count; capacity order breaks ties in
// favor of the smaller box.
func SuggestJBConfiguration(instrumentCount int, sparePercent float64) ConfigurationSuggestion {
	options := make(map[JBSize]SizeOption, 3)

	var recommended JBSize
	best := math.MaxInt
	for _, size := range []JBSize{JBSmall, JBStandard, JBLarge} {
		plan := PlanJBAllocation(instrumentCount, sparePercent, size)
		total := 0
		for _, n := range plan.InstrumentsPerJB {
			t, _ := TerminalsNeeded(n, sparePercent)
			total += t
		}
		options[size] = SizeOption{
			Size:              size,
			NumJBs:            plan.NumJBs,
			EffectiveCapacity: plan.EffectiveCapacity,
			InstrumentsPerJB:  plan.InstrumentsPerJB,
			TotalTerminals:    total,
		}
		if plan.NumJBs < best {
			best = plan.NumJBs
			recommended = size
		}
	}

	return ConfigurationSuggestion{
		InstrumentCount: instrumentCount,
		SparePercent:    sparePercent,
		Options:         options,
		Recommended:     recommended,
	}
}
