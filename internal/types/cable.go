package types

type CableType string

const (
	CableBranch    CableType = "BRANCH"    // instrument to junction box
	CableMultipair CableType = "MULTIPAIR" // junction box to marshalling cabinet
)

// SignalCategory is the coarse analog/digital split used for cable
// construction and junction box segregation.
type SignalCategory string

const (
	CategoryAnalog  SignalCategory = "ANALOG"
	CategoryDigital SignalCategory = "DIGITAL"
)

type Cable struct {
	Tag           string    `json:"tag"`
	Type          CableType `json:"type"`
	Specification string    `json:"specification"` // e.g. "1Px1.5mm²/ISTP", "5PRx1.0mm²/ISP-OS"
	PairCount     int       `json:"pair_count"`
	From          string    `json:"from"`
	To            string    `json:"to"`
}

type BranchCable struct {
	Cable
	InstrumentTag string `json:"instrument_tag"`
}

type MultipairCable struct {
	Cable
	UsedPairs        int    `json:"used_pairs"`
	SparePairs       int    `json:"spare_pairs"`
	TerminalBlockTag string `json:"terminal_block_tag,omitempty"`
}

func (c *MultipairCable) UtilizationPercent() float64 {
	if c.PairCount == 0 {
		return 0
	}
	return float64(c.UsedPairs) / float64(c.PairCount) * 100
}

func (c *MultipairCable) SparePercent() float64 {
	if c.PairCount == 0 {
		return 0
	}
	return float64(c.SparePairs) / float64(c.PairCount) * 100
}
