package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/icsuite/wireplan/internal/types"
)

// MultipairSizes are the standard multipair cable sizes, ascending.
var MultipairSizes = []int{5, 10, 20}

// branchSpecs gives the branch cable construction per signal type.
// Analog signals need individually shielded pairs (BS5308 part 1 type 2);
// digital signals tolerate overall-shield-only construction. A 4-wire RTD
// consumes two terminal pairs.
var branchSpecs = map[types.SignalType]struct {
	Spec  string
	Pairs int
}{
	types.SignalAnalogInput:   {"1Px1.5mm²/ISTP", 1},
	types.SignalAnalogOutput:  {"1Px1.5mm²/ISTP", 1},
	types.SignalDigitalInput:  {"1Px1.0mm²/OS", 1},
	types.SignalDigitalOutput: {"1Px1.0mm²/OS", 1},
	types.SignalThermocouple:  {"1Px1.5mm²/TC-EXT", 1},
	types.SignalRTD3Wire:      {"3Cx1.5mm²/ISTP", 1},
	types.SignalRTD4Wire:      {"2Px1.5mm²/ISP", 2},
}

// BranchSpec returns the branch cable specification and terminal pair count
// for a signal type.
func BranchSpec(signal types.SignalType) (spec string, pairs int) {
	if s, ok := branchSpecs[signal]; ok {
		return s.Spec, s.Pairs
	}
	return "1Px1.5mm²", 1
}

// CableSizingResult bundles the cables sized for one junction box.
type CableSizingResult struct {
	BranchCables     []types.BranchCable   `json:"branch_cables"`
	MultipairCable   *types.MultipairCable `json:"multipair_cable"`
	TotalPairsNeeded int                   `json:"total_pairs_needed"`
	SparePairs       int                   `json:"spare_pairs"`
	SparePercent     float64               `json:"spare_percent"`
}

// NewBranchCable builds the branch cable connecting one instrument to its
// junction box. The cable tag defaults to the instrument tag.
func NewBranchCable(inst *types.Instrument, jbTag, cableTag string) types.BranchCable {
	spec, pairs := BranchSpec(inst.SignalType)
	if cableTag == "" {
		cableTag = inst.Tag
	}
	return types.BranchCable{
		Cable: types.Cable{
			Tag:           cableTag,
			Type:          types.CableBranch,
			Specification: spec,
			PairCount:     pairs,
			From:          inst.Tag,
			To:            jbTag,
		},
		InstrumentTag: inst.Tag,
	}
}

// MultipairSize selects the smallest standard multipair size covering the
// instrument count plus the spare margin. Non-positive counts take the
// minimum size.
func MultipairSize(instrumentCount int, sparePercent float64) (int, error) {
	if instrumentCount <= 0 {
		return MultipairSizes[0], nil
	}

	required := int(math.Ceil(float64(instrumentCount) * (1 + sparePercent)))
	for _, size := range MultipairSizes {
		if size >= required {
			return size, nil
		}
	}

	return 0, &SizingError{
		InstrumentCount:   instrumentCount,
		RequiredWithSpare: required,
		MaxStandardSize:   MultipairSizes[len(MultipairSizes)-1],
	}
}

// MultipairSpec formats the multipair cable specification for a pair count
// and signal category.
func MultipairSpec(pairCount int, category types.SignalCategory) string {
	if category == types.CategoryDigital {
		return fmt.Sprintf("%dPRx0.75mm²/OS", pairCount)
	}
	return fmt.Sprintf("%dPRx1.0mm²/ISP-OS", pairCount)
}

// DetermineCategory decides a batch's signal category by simple majority.
// Ties and empty batches favor analog.
func DetermineCategory(instruments []types.Instrument) types.SignalCategory {
	analog := 0
	for i := range instruments {
		if instruments[i].SignalType.IsAnalog() {
			analog++
		}
	}
	if analog >= len(instruments)-analog {
		return types.CategoryAnalog
	}
	return types.CategoryDigital
}

// NewMultipairCable sizes and builds the multipair cable from a junction box
// to the marshalling cabinet.
func NewMultipairCable(jbTag, cabinetTag, cableTag string, instrumentCount int, sparePercent float64, category types.SignalCategory) (*types.MultipairCable, error) {
	pairCount, err := MultipairSize(instrumentCount, sparePercent)
	if err != nil {
		return nil, err
	}

	return &types.MultipairCable{
		Cable: types.Cable{
			Tag:           cableTag,
			Type:          types.CableMultipair,
			Specification: MultipairSpec(pairCount, category),
			PairCount:     pairCount,
			From:          jbTag,
			To:            cabinetTag,
		},
		UsedPairs:  instrumentCount,
		SparePairs: pairCount - instrumentCount,
	}, nil
}

// SizeCablesForJB creates branch cables for every instrument on a junction
// box and sizes the multipair home-run. The multipair is sized on total
// terminal pairs, so 4-wire RTDs count double. Category is auto-detected
// when empty.
func SizeCablesForJB(instruments []types.Instrument, jbTag, cabinetTag, multipairTag string, sparePercent float64, category types.SignalCategory) (*CableSizingResult, error) {
	branches := make([]types.BranchCable, 0, len(instruments))
	totalPairs := 0
	for i := range instruments {
		bc := NewBranchCable(&instruments[i], jbTag, "")
		instruments[i].BranchCableTag = bc.Tag
		branches = append(branches, bc)
		totalPairs += bc.PairCount
	}

	if category == "" {
		category = DetermineCategory(instruments)
	}

	multipair, err := NewMultipairCable(jbTag, cabinetTag, multipairTag, totalPairs, sparePercent, category)
	if err != nil {
		return nil, err
	}

	return &CableSizingResult{
		BranchCables:     branches,
		MultipairCable:   multipair,
		TotalPairsNeeded: totalPairs,
		SparePairs:       multipair.SparePairs,
		SparePercent:     multipair.SparePercent(),
	}, nil
}

// SplitMultipairs computes a set of multipair cable sizes when the
// population exceeds one cable, using the largest standard size first.
func SplitMultipairs(instrumentCount int, sparePercent float64) []int {
	required := int(math.Ceil(float64(instrumentCount) * (1 + sparePercent)))

	descending := make([]int, len(MultipairSizes))
	copy(descending, MultipairSizes)
	sort.Sort(sort.Reverse(sort.IntSlice(descending)))

	var cables []int
	remaining := required
	for _, size := range descending {
		for remaining >= size {
			cables = append(cables, size)
			remaining -= size
		}
	}
	if remaining > 0 {
		for _, size := range MultipairSizes {
			if size >= remaining {
				cables = append(cables, size)
				break
			}
		}
	}
	return cables
}
