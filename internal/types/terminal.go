package types

type TerminalStatus string

const (
	TerminalUsed     TerminalStatus = "USED"
	TerminalSpare    TerminalStatus = "SPARE"
	TerminalReserved TerminalStatus = "RESERVED"
)

type Location string

const (
	LocationJunctionBox Location = "JB"
	LocationCabinet     Location = "CABINET"
)

// SpareTag is the instrument-tag sentinel for unassigned terminals and
// channels.
const SpareTag = "SPARE"

// TerminalAllocation is one numbered row in a terminal block.
type TerminalAllocation struct {
	Number        int            `json:"number"`
	Positive      string         `json:"positive"`             // "1+"
	Negative      string         `json:"negative"`             // "1-"
	Shield        string         `json:"shield,omitempty"`     // "1S", JB side only
	Pair          string         `json:"pair,omitempty"`       // "PR1", cabinet side only
	WireColorPos  string         `json:"wire_color_positive"`  // WH
	WireColorNeg  string         `json:"wire_color_negative"`  // BK
	InstrumentTag string         `json:"instrument_tag"`       // tag or "SPARE"
	Status        TerminalStatus `json:"status"`
}

func (a *TerminalAllocation) IsUsed() bool  { return a.Status == TerminalUsed }
func (a *TerminalAllocation) IsSpare() bool { return a.Status == TerminalSpare }

type TerminalBlock struct {
	Tag             string               `json:"tag"`
	Location        Location             `json:"location"`
	ParentEquipment string               `json:"parent_equipment"`
	TotalTerminals  int                  `json:"total_terminals"`
	Allocations     []TerminalAllocation `json:"allocations"`
}

func (b *TerminalBlock) UsedTerminals() int {
	n := 0
	for i := range b.Allocations {
		if b.Allocations[i].IsUsed() {
			n++
		}
	}
	return n
}

func (b *TerminalBlock) SpareTerminals() int {
	n := 0
	for i := range b.Allocations {
		if b.Allocations[i].IsSpare() {
			n++
		}
	}
	return n
}

func (b *TerminalBlock) UtilizationPercent() float64 {
	if b.TotalTerminals == 0 {
		return 0
	}
	return float64(b.UsedTerminals()) / float64(b.TotalTerminals) * 100
}

func (b *TerminalBlock) SparePercent() float64 {
	if b.TotalTerminals == 0 {
		return 0
	}
	return float64(b.SpareTerminals()) / float64(b.TotalTerminals) * 100
}

// Allocation returns the row assigned to the given instrument tag.
func (b *TerminalBlock) Allocation(instrumentTag string) (*TerminalAllocation, bool) {
	for i := range b.Allocations {
		if b.Allocations[i].InstrumentTag == instrumentTag {
			return &b.Allocations[i], true
		}
	}
	return nil, false
}

// JBClass is the junction box classification derived from the signal types
// of its instruments.
type JBClass string

const (
	JBAnalog  JBClass = "ANALOG"
	JBDigital JBClass = "DIGITAL"
	JBMixed   JBClass = "MIXED"
)

type JunctionBox struct {
	Tag               string         `json:"tag"`
	Class             JBClass        `json:"class"`
	Area              string         `json:"area"`
	TerminalBlock     *TerminalBlock `json:"terminal_block,omitempty"`
	MultipairCableTag string         `json:"multipair_cable_tag,omitempty"`
}

func (jb *JunctionBox) InstrumentCount() int {
	if jb.TerminalBlock == nil {
		return 0
	}
	return jb.TerminalBlock.UsedTerminals()
}

type MarshallingCabinet struct {
	Tag            string           `json:"tag"`
	Area           string           `json:"area"`
	TerminalBlocks []*TerminalBlock `json:"terminal_blocks"`
}

func (mc *MarshallingCabinet) TerminalBlock(tag string) (*TerminalBlock, bool) {
	for _, tb := range mc.TerminalBlocks {
		if tb.Tag == tag {
			return tb, true
		}
	}
	return nil, false
}

func (mc *MarshallingCabinet) TotalTerminals() int {
	n := 0
	for _, tb := range mc.TerminalBlocks {
		n += tb.TotalTerminals
	}
	return n
}

func (mc *MarshallingCabinet) UsedTerminals() int {
	n := 0
	for _, tb := range mc.TerminalBlocks {
		n += tb.UsedTerminals()
	}
	return n
}
