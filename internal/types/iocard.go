package types

type ControlSystem string

const (
	SystemDCS ControlSystem = "DCS"
	SystemSIS ControlSystem = "SIS"
	SystemRTU ControlSystem = "RTU"
)

type IOType string

const (
	IOTypeAI IOType = "AI"
	IOTypeAO IOType = "AO"
	IOTypeDI IOType = "DI"
	IOTypeDO IOType = "DO"
)

// AllIOTypes lists the I/O types in allocation order.
var AllIOTypes = []IOType{IOTypeAI, IOTypeAO, IOTypeDI, IOTypeDO}

type SILRating int

const (
	SILNone SILRating = 0
	SIL1    SILRating = 1
	SIL2    SILRating = 2
	SIL3    SILRating = 3
)

// IOModule is a vendor catalog entry. Loaded once from the catalog file and
// treated as immutable.
type IOModule struct {
	Model         string        `json:"model" yaml:"model"`
	IOType        IOType        `json:"io_type" yaml:"io_type"`
	Channels      int           `json:"channels" yaml:"channels"`
	SignalClass   string        `json:"signal_class" yaml:"signal_class"` // "4-20mA", "24VDC"
	Features      []string      `json:"features,omitempty" yaml:"features,omitempty"`
	SILRating     SILRating     `json:"sil_rating,omitempty" yaml:"sil_rating,omitempty"`
	ControlSystem ControlSystem `json:"control_system,omitempty" yaml:"control_system,omitempty"`
	Vendor        string        `json:"vendor,omitempty" yaml:"vendor,omitempty"`
}

func (m *IOModule) IsSafetyRated() bool {
	return m.SILRating > SILNone
}

// ChannelAssignment records what one hardware channel is wired to.
type ChannelAssignment struct {
	Tag     string         `json:"tag"` // instrument tag or "SPARE"
	Service string         `json:"service,omitempty"`
	Type    string         `json:"type,omitempty"`
	Status  TerminalStatus `json:"status"`
}

// IOCard is an allocated instance of an IOModule. Channels 1..TotalChannels
// are all present in Assignments.
type IOCard struct {
	Module        *IOModule                 `json:"module"`
	CardNumber    int                       `json:"card_number"`
	System        ControlSystem             `json:"system"`
	Location      string                    `json:"location"`
	TotalChannels int                       `json:"total_channels"`
	UsedChannels  int                       `json:"used_channels"`
	SpareChannels int                       `json:"spare_channels"`
	Assignments   map[int]ChannelAssignment `json:"assignments"`
}

func (c *IOCard) UtilizationPercent() float64 {
	if c.TotalChannels == 0 {
		return 0
	}
	return float64(c.UsedChannels) / float64(c.TotalChannels) * 100
}

func (c *IOCard) SparePercent() float64 {
	if c.TotalChannels == 0 {
		return 0
	}
	return float64(c.SpareChannels) / float64(c.TotalChannels) * 100
}

// SignalCount tallies hardware I/O points by type.
type SignalCount struct {
	AI int `json:"AI"`
	AO int `json:"AO"`
	DI int `json:"DI"`
	DO int `json:"DO"`
}

func (s SignalCount) Total() int { return s.AI + s.AO + s.DI + s.DO }

func (s SignalCount) Of(t IOType) int {
	switch t {
	case IOTypeAI:
		return s.AI
	case IOTypeAO:
		return s.AO
	case IOTypeDI:
		return s.DI
	case IOTypeDO:
		return s.DO
	}
	return 0
}

// IOAllocationResult is the complete card allocation for one instrument
// population.
type IOAllocationResult struct {
	DCSSummary SignalCount `json:"dcs_summary"`
	SISSummary SignalCount `json:"sis_summary"`
	RTUSummary SignalCount `json:"rtu_summary"`

	DCSCards []*IOCard `json:"dcs_cards"`
	SISCards []*IOCard `json:"sis_cards"`
	RTUCards []*IOCard `json:"rtu_cards"`

	SparePercentTarget float64            `json:"spare_percent_target"` // as percent, e.g. 20.0
	ActualSparePercent map[string]float64 `json:"actual_spare_percent"`

	SegregationRules []string `json:"segregation_rules_applied"`
}

func (r *IOAllocationResult) TotalCards() int {
	return len(r.DCSCards) + len(r.SISCards) + len(r.RTUCards)
}

func (r *IOAllocationResult) AllCards() []*IOCard {
	cards := make([]*IOCard, 0, r.TotalCards())
	cards = append(cards, r.DCSCards...)
	cards = append(cards, r.SISCards...)
	cards = append(cards, r.RTUCards...)
	return cards
}

func (r *IOAllocationResult) Cards(system ControlSystem) []*IOCard {
	switch system {
	case SystemDCS:
		return r.DCSCards
	case SystemSIS:
		return r.SISCards
	case SystemRTU:
		return r.RTUCards
	}
	return nil
}

func (r *IOAllocationResult) Summary(system ControlSystem) SignalCount {
	switch system {
	case SystemDCS:
		return r.DCSSummary
	case SystemSIS:
		return r.SISSummary
	case SystemRTU:
		return r.RTUSummary
	}
	return SignalCount{}
}

// CustomRules carries structured segregation preferences. They are recorded
// in the result's rule descriptions; the allocation arithmetic itself does
// not change.
type CustomRules struct {
	SegregateByArea    bool     `json:"segregate_by_area"`
	SegregateISNonIS   bool     `json:"segregate_is_non_is"`
	MaxCabinetsPerArea int      `json:"max_cabinets_per_area,omitempty"`
	GroupByLoop        bool     `json:"group_by_loop"`
	GroupByUnit        bool     `json:"group_by_unit"`
	AdditionalRules    []string `json:"additional_rules,omitempty"`
}
