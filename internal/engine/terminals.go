package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/icsuite/wireplan/internal/types"
)

// JBSize is a standard junction box size class.
type JBSize string

const (
	JBSmall    JBSize = "SMALL"    // 12 instruments
	JBStandard JBSize = "STANDARD" // 24 instruments
	JBLarge    JBSize = "LARGE"    // 48 instruments
)

// Capacity returns the raw terminal capacity of the size class, before any
// spare reduction.
func (s JBSize) Capacity() int {
	switch s {
	case JBSmall:
		return 12
	case JBLarge:
		return 48
	default:
		return 24
	}
}

// Wire colors used on every terminal row.
const (
	wireColorPositive = "WH"
	wireColorNegative = "BK"
)

// defaultMaxCabinetPairs is the pair ceiling of one cabinet terminal block.
const defaultMaxCabinetPairs = 20

// AllocationResult is the outcome of allocating one terminal block.
type AllocationResult struct {
	TerminalBlock *types.TerminalBlock `json:"terminal_block"`
	UsedCount     int                  `json:"used_count"`
	SpareCount    int                  `json:"spare_count"`
	TotalCount    int                  `json:"total_count"`
}

func (r *AllocationResult) SparePercent() float64 {
	if r.TotalCount == 0 {
		return 0
	}
	return float64(r.SpareCount) / float64(r.TotalCount) * 100
}

// TerminalsNeeded computes the terminal count for a population including the
// spare margin: spares = ceil(n * sparePercent).
func TerminalsNeeded(instrumentCount int, sparePercent float64) (total, spares int) {
	spares = int(math.Ceil(float64(instrumentCount) * sparePercent))
	return instrumentCount + spares, spares
}

// JBPlan distributes an instrument population across junction boxes of one
// size class.
type JBPlan struct {
	TotalInstruments  int     `json:"total_instruments"`
	Size              JBSize  `json:"jb_size"`
	EffectiveCapacity int     `json:"effective_capacity"`
	NumJBs            int     `json:"num_jbs"`
	InstrumentsPerJB  []int   `json:"instruments_per_jb"`
	SparePercent      float64 `json:"spare_percent"`
}

// PlanJBAllocation computes how many junction boxes a population needs and
// how to split it. Size is auto-selected from the count when empty. The
// planning formula thins raw capacity by (1 - sparePercent); the exact
// per-enclosure allocation then re-validates each slice with the ceil-based
// spare formula.
func PlanJBAllocation(instrumentCount int, sparePercent float64, preferred JBSize) JBPlan {
	size := preferred
	if size == "" {
		switch {
		case instrumentCount <= 10:
			size = JBSmall
		case instrumentCount <= 40:
			size = JBStandard
		default:
			size = JBLarge
		}
	}

	effective := int(float64(size.Capacity()) * (1 - sparePercent))
	numJBs := 1
	if instrumentCount > 0 && effective > 0 {
		numJBs = int(math.Ceil(float64(instrumentCount) / float64(effective)))
	}

	// Balanced split: each JB takes ceil(remaining / jbsLeft), so earlier
	// JBs never hold fewer instruments than later ones and counts differ by
	// at most one.
	perJB := make([]int, 0, numJBs)
	remaining := instrumentCount
	for i := 0; i < numJBs; i++ {
		count := int(math.Ceil(float64(remaining) / float64(numJBs-i)))
		perJB = append(perJB, count)
		remaining -= count
	}

	return JBPlan{
		TotalInstruments:  instrumentCount,
		Size:              size,
		EffectiveCapacity: effective,
		NumJBs:            numJBs,
		InstrumentsPerJB:  perJB,
		SparePercent:      sparePercent,
	}
}

// AllocateJBTerminals assigns junction box terminals to instruments in input
// order, then appends spare rows up to the spare target. Terminal numbers
// are contiguous from 1; all used rows precede all spare rows.
//
// Naming: signal terminals "{n}+"/"{n}-", shield terminal "{n}S".
func AllocateJBTerminals(instruments []types.Instrument, jbTag string, sparePercent float64, maxTerminals int) (*AllocationResult, error) {
	count := len(instruments)
	totalNeeded, spares := TerminalsNeeded(count, sparePercent)

	if totalNeeded > maxTerminals {
		plan := PlanJBAllocation(count, sparePercent, "")
		return nil, &CapacityError{
			InstrumentCount: count,
			TotalNeeded:     totalNeeded,
			MaxTerminals:    maxTerminals,
			RecommendedJBs:  plan.NumJBs,
			RecommendedSize: plan.Size,
		}
	}

	allocations := make([]types.TerminalAllocation, 0, totalNeeded)
	for i := range instruments {
		n := i + 1
		allocations = append(allocations, types.TerminalAllocation{
			Number:        n,
			Positive:      fmt.Sprintf("%d+", n),
			Negative:      fmt.Sprintf("%d-", n),
			Shield:        fmt.Sprintf("%dS", n),
			WireColorPos:  wireColorPositive,
			WireColorNeg:  wireColorNegative,
			InstrumentTag: instruments[i].Tag,
			Status:        types.TerminalUsed,
		})
		instruments[i].JBTerminalPositive = fmt.Sprintf("%d+", n)
		instruments[i].JBTerminalNegative = fmt.Sprintf("%d-", n)
		instruments[i].JBTerminalShield = fmt.Sprintf("%dS", n)
	}
	for n := count + 1; n <= totalNeeded; n++ {
		allocations = append(allocations, types.TerminalAllocation{
			Number:        n,
			Positive:      fmt.Sprintf("%d+", n),
			Negative:      fmt.Sprintf("%d-", n),
			Shield:        fmt.Sprintf("%dS", n),
			WireColorPos:  wireColorPositive,
			WireColorNeg:  wireColorNegative,
			InstrumentTag: types.SpareTag,
			Status:        types.TerminalSpare,
		})
	}

	return &AllocationResult{
		TerminalBlock: &types.TerminalBlock{
			Tag:             "TB-" + jbTag,
			Location:        types.LocationJunctionBox,
			ParentEquipment: jbTag,
			TotalTerminals:  totalNeeded,
			Allocations:     allocations,
		},
		UsedCount:  count,
		SpareCount: spares,
		TotalCount: totalNeeded,
	}, nil
}

// AllocateCabinetTerminals mirrors AllocateJBTerminals for the marshalling
// cabinet side. Pairs are named "PR{n}" and a terminal block holds at most
// maxPairs pairs (20 by default; pass 0 to use the default).
func AllocateCabinetTerminals(instruments []types.Instrument, cabinetTag, tbTag string, sparePercent float64, maxPairs int) (*AllocationResult, error) {
	if maxPairs <= 0 {
		maxPairs = defaultMaxCabinetPairs
	}

	count := len(instruments)
	totalNeeded, spares := TerminalsNeeded(count, sparePercent)

	if totalNeeded > maxPairs {
		return nil, &CapacityError{
			InstrumentCount: count,
			TotalNeeded:     totalNeeded,
			MaxTerminals:    maxPairs,
		}
	}

	allocations := make([]types.TerminalAllocation, 0, totalNeeded)
	for i := range instruments {
		n := i + 1
		allocations = append(allocations, types.TerminalAllocation{
			Number:        n,
			Pair:          fmt.Sprintf("PR%d", n),
			Positive:      fmt.Sprintf("%d+", n),
			Negative:      fmt.Sprintf("%d-", n),
			WireColorPos:  wireColorPositive,
			WireColorNeg:  wireColorNegative,
			InstrumentTag: instruments[i].Tag,
			Status:        types.TerminalUsed,
		})
		instruments[i].CabinetTerminalPair = fmt.Sprintf("PR%d", n)
		instruments[i].CabinetTerminalPositive = fmt.Sprintf("%d+", n)
		instruments[i].CabinetTerminalNegative = fmt.Sprintf("%d-", n)
	}
	for n := count + 1; n <= totalNeeded; n++ {
		allocations = append(allocations, types.TerminalAllocation{
			Number:        n,
			Pair:          fmt.Sprintf("PR%d", n),
			Positive:      fmt.Sprintf("%d+", n),
			Negative:      fmt.Sprintf("%d-", n),
			WireColorPos:  wireColorPositive,
			WireColorNeg:  wireColorNegative,
			InstrumentTag: types.SpareTag,
			Status:        types.TerminalSpare,
		})
	}

	return &AllocationResult{
		TerminalBlock: &types.TerminalBlock{
			Tag:             tbTag,
			Location:        types.LocationCabinet,
			ParentEquipment: cabinetTag,
			TotalTerminals:  totalNeeded,
			Allocations:     allocations,
		},
		UsedCount:  count,
		SpareCount: spares,
		TotalCount: totalNeeded,
	}, nil
}

// areaFromTag extracts the area code from a <plant>-<area>-<rest> tag.
func areaFromTag(tag string) string {
	parts := strings.Split(tag, "-")
	if len(parts) >= 2 {
		return parts[1]
	}
	return "000"
}

// NewJunctionBox allocates terminals for one junction box and builds it.
// The population must fit the largest size class.
func NewJunctionBox(jbTag string, instruments []types.Instrument, multipairCableTag string, sparePercent float64) (*types.JunctionBox, *AllocationResult, error) {
	return newJunctionBoxWithCapacity(jbTag, instruments, multipairCableTag, sparePercent, JBLarge.Capacity())
}

func newJunctionBoxWithCapacity(jbTag string, instruments []types.Instrument, multipairCableTag string, sparePercent float64, maxTerminals int) (*types.JunctionBox, *AllocationResult, error) {
	class := ClassifyJB(instruments)

	result, err := AllocateJBTerminals(instruments, jbTag, sparePercent, maxTerminals)
	if err != nil {
		return nil, nil, err
	}

	jb := &types.JunctionBox{
		Tag:               jbTag,
		Class:             class,
		Area:              areaFromTag(jbTag),
		TerminalBlock:     result.TerminalBlock,
		MultipairCableTag: multipairCableTag,
	}
	return jb, result, nil
}

// NewMarshallingCabinet builds a cabinet holding the given terminal blocks.
func NewMarshallingCabinet(cabinetTag string, terminalBlocks []*types.TerminalBlock) *types.MarshallingCabinet {
	return &types.MarshallingCabinet{
		Tag:            cabinetTag,
		Area:           areaFromTag(cabinetTag),
		TerminalBlocks: terminalBlocks,
	}
}

// enclosureSuffix returns the per-enclosure tag suffix: A..Z, then the
// 1-based index as digits.
func enclosureSuffix(idx, total int) string {
	if total <= 1 {
		return ""
	}
	if idx < 26 {
		return string(rune('A' + idx))
	}
	return fmt.Sprintf("%d", idx+1)
}

// MultiJBResult is the outcome of distributing one population over several
// junction boxes.
type MultiJBResult struct {
	Plan          JBPlan               `json:"plan"`
	JunctionBoxes []*types.JunctionBox `json:"junction_boxes"`
	Allocations   []*AllocationResult  `json:"allocations"`
	Assignments   map[string]string    `json:"assignments"` // instrument tag -> JB tag
}

// AllocateMultipleJBs plans the enclosure split and allocates each slice.
// The plan thins capacity by (1 - spare) while the allocator adds spare via
// ceil(n * (1 + spare)); each slice is therefore re-validated against the
// planned size's raw capacity, so an under-provisioned plan surfaces as a
// CapacityError rather than silently overfilling an enclosure.
func AllocateMultipleJBs(instruments []types.Instrument, baseJBTag, baseCableTag string, sparePercent float64, preferred JBSize) (*MultiJBResult, error) {
	plan := PlanJBAllocation(len(instruments), sparePercent, preferred)

	result := &MultiJBResult{
		Plan:        plan,
		Assignments: make(map[string]string, len(instruments)),
	}

	start := 0
	for idx, count := range plan.InstrumentsPerJB {
		slice := instruments[start : start+count]
		start += count

		suffix := enclosureSuffix(idx, plan.NumJBs)
		jbTag := baseJBTag + suffix
		cableTag := baseCableTag + suffix

		jb, alloc, err := newJunctionBoxWithCapacity(jbTag, slice, cableTag, sparePercent, plan.Size.Capacity())
		if err != nil {
			return nil, fmt.Errorf("enclosure %s: %w", jbTag, err)
		}

		result.JunctionBoxes = append(result.JunctionBoxes, jb)
		result.Allocations = append(result.Allocations, alloc)
		for i := range slice {
			result.Assignments[slice[i].Tag] = jbTag
		}
	}

	return result, nil
}

// AutoAllocation is a complete JB-to-cabinet allocation for one signal
// population: the junction boxes, the matching cabinet terminal blocks and
// the cabinet itself.
type AutoAllocation struct {
	MultiJB            *MultiJBResult            `json:"multi_jb"`
	Cabinet            *types.MarshallingCabinet `json:"cabinet"`
	CabinetAllocations []*AllocationResult       `json:"cabinet_allocations"`
}

// AllocateAuto splits a population across junction boxes as needed and
// creates one suffixed cabinet terminal block per junction box.
func AllocateAuto(instruments []types.Instrument, baseJBTag, cabinetTag, baseTBTag, baseCableTag string, sparePercent float64, preferred JBSize) (*AutoAllocation, error) {
	multi, err := AllocateMultipleJBs(instruments, baseJBTag, baseCableTag, sparePercent, preferred)
	if err != nil {
		return nil, err
	}

	blocks := make([]*types.TerminalBlock, 0, multi.Plan.NumJBs)
	cabinetAllocs := make([]*AllocationResult, 0, multi.Plan.NumJBs)

	start := 0
	for idx, count := range multi.Plan.InstrumentsPerJB {
		slice := instruments[start : start+count]
		start += count

		tbTag := baseTBTag + enclosureSuffix(idx, multi.Plan.NumJBs)
		alloc, err := AllocateCabinetTerminals(slice, cabinetTag, tbTag, sparePercent, multi.Plan.Size.Capacity())
		if err != nil {
			return nil, fmt.Errorf("terminal block %s: %w", tbTag, err)
		}

		blocks = append(blocks, alloc.TerminalBlock)
		cabinetAllocs = append(cabinetAllocs, alloc)
	}

	return &AutoAllocation{
		MultiJB:            multi,
		Cabinet:            NewMarshallingCabinet(cabinetTag, blocks),
		CabinetAllocations: cabinetAllocs,
	}, nil
}

// SegregationTags carries the base tags for one signal category.
type SegregationTags struct {
	JBTag    string `json:"jb_tag"`
	CableTag string `json:"cable_tag"`
	TBTag    string `json:"tb_tag"`
}

// SegregatedAllocation is the result of signal-type segregated allocation:
// parallel analog and digital enclosure sets that never mix categories. A
// nil category result means that category had zero instruments.
type SegregatedAllocation struct {
	AnalogInstruments  []types.Instrument `json:"analog_instruments"`
	DigitalInstruments []types.Instrument `json:"digital_instruments"`
	Analog             *AutoAllocation    `json:"analog,omitempty"`
	Digital            *AutoAllocation    `json:"digital,omitempty"`
}

// AllJBs returns every junction box across both categories, analog first.
func (s *SegregatedAllocation) AllJBs() []*types.JunctionBox {
	var jbs []*types.JunctionBox
	if s.Analog != nil {
		jbs = append(jbs, s.Analog.MultiJB.JunctionBoxes...)
	}
	if s.Digital != nil {
		jbs = append(jbs, s.Digital.MultiJB.JunctionBoxes...)
	}
	return jbs
}

// Assignments merges the instrument-to-JB maps of both categories.
func (s *SegregatedAllocation) Assignments() map[string]string {
	merged := make(map[string]string)
	if s.Analog != nil {
		for tag, jb := range s.Analog.MultiJB.Assignments {
			merged[tag] = jb
		}
	}
	if s.Digital != nil {
		for tag, jb := range s.Digital.MultiJB.Assignments {
			merged[tag] = jb
		}
	}
	return merged
}

// AllocateBySignalType partitions instruments into analog and digital
// populations and allocates each independently so no enclosure mixes signal
// categories. Relative input order is preserved within each category.
func AllocateBySignalType(instruments []types.Instrument, analog, digital SegregationTags, cabinetTag string, sparePercent float64, preferred JBSize) (*SegregatedAllocation, error) {
	analogInsts, digitalInsts := SplitBySignalCategory(instruments)

	result := &SegregatedAllocation{
		AnalogInstruments:  analogInsts,
		DigitalInstruments: digitalInsts,
	}

	if len(analogInsts) > 0 {
		alloc, err := AllocateAuto(analogInsts, analog.JBTag, cabinetTag, analog.TBTag, analog.CableTag, sparePercent, preferred)
		if err != nil {
			return nil, fmt.Errorf("analog allocation: %w", err)
		}
		result.Analog = alloc
	}

	if len(digitalInsts) > 0 {
		alloc, err := AllocateAuto(digitalInsts, digital.JBTag, cabinetTag, digital.TBTag, digital.CableTag, sparePercent, preferred)
		if err != nil {
			return nil, fmt.Errorf("digital allocation: %w", err)
		}
		result.Digital = alloc
	}

	return result, nil
}
