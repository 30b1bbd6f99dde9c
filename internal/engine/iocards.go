package engine

import (
	"fmt"
	"math"
	"strings"

	"github.com/icsuite/wireplan/internal/types"
)

// ModuleCatalog provides vendor I/O module lookups. Implemented by the
// catalog package.
type ModuleCatalog interface {
	Module(vendor string, system types.ControlSystem, ioType types.IOType, silRequired bool) (*types.IOModule, bool)
	ChannelDensity(vendor string, system types.ControlSystem, ioType types.IOType) int
	VendorSupported(vendor string) bool
	Vendors() []string
}

// Allocator distributes instruments onto vendor I/O cards per control
// system, applying channel-level spare capacity and the standard
// segregation rules.
type Allocator struct {
	vendor       string
	sparePercent float64
	catalog      ModuleCatalog
	rules        *types.CustomRules
}

// NewAllocator builds an allocator for a vendor. An unsupported vendor is
// rejected up front so nothing is partially allocated.
func NewAllocator(catalog ModuleCatalog, vendor string, sparePercent float64) (*Allocator, error) {
	if !catalog.VendorSupported(vendor) {
		return nil, &VendorError{Vendor: vendor, Available: catalog.Vendors()}
	}
	return &Allocator{
		vendor:       vendor,
		sparePercent: sparePercent,
		catalog:      catalog,
	}, nil
}

// SetCustomRules attaches structured segregation preferences. They are
// surfaced in the result's rule descriptions.
func (a *Allocator) SetCustomRules(rules *types.CustomRules) {
	a.rules = rules
}

// resolveSystemOverride maps an override string to a control system. ESD is
// an alias for SIS. Empty or unknown strings mean no override.
func resolveSystemOverride(override string) (types.ControlSystem, bool) {
	switch strings.ToUpper(override) {
	case "SIS", "ESD":
		return types.SystemSIS, true
	case "RTU":
		return types.SystemRTU, true
	case "DCS":
		return types.SystemDCS, true
	}
	return "", false
}

// classifyFunc resolves an instrument's control system. The default is
// ClassifySystem; a system override substitutes a constant function.
type classifyFunc func(*types.Instrument) types.ControlSystem

// CountSignalsBySystem tallies hardware I/O points per control system.
func CountSignalsBySystem(instruments []types.Instrument) map[types.ControlSystem]types.SignalCount {
	return countSignalsBySystem(instruments, ClassifySystem)
}

func countSignalsBySystem(instruments []types.Instrument, classify classifyFunc) map[types.ControlSystem]types.SignalCount {
	counts := map[types.ControlSystem]types.SignalCount{
		types.SystemDCS: {},
		types.SystemSIS: {},
		types.SystemRTU: {},
	}
	for i := range instruments {
		system := classify(&instruments[i])
		count := counts[system]
		switch IOTypeOf(&instruments[i]) {
		case types.IOTypeAI:
			count.AI++
		case types.IOTypeAO:
			count.AO++
		case types.IOTypeDI:
			count.DI++
		case types.IOTypeDO:
			count.DO++
		}
		counts[system] = count
	}
	return counts
}

// CardsNeeded computes the card count for a signal population:
// cards = ceil(ceil(n * (1 + spare)) / channelsPerCard). Returns the card
// count, the used channels and the actual spare channels after rounding up
// to whole cards.
func CardsNeeded(signalCount, channelsPerCard int, sparePercent float64) (numCards, used, spare int) {
	if signalCount == 0 || channelsPerCard <= 0 {
		return 0, 0, 0
	}
	channelsWithSpare := int(math.Ceil(float64(signalCount) * (1 + sparePercent)))
	numCards = int(math.Ceil(float64(channelsWithSpare) / float64(channelsPerCard)))
	return numCards, signalCount, numCards*channelsPerCard - signalCount
}

// moduleFor resolves the catalog module for a system and I/O type. SIS
// requires SIL-rated modules. A catalog miss degrades to a generic module at
// the vendor's channel density so allocation still completes.
func (a *Allocator) moduleFor(system types.ControlSystem, ioType types.IOType) *types.IOModule {
	if module, ok := a.catalog.Module(a.vendor, system, ioType, system == types.SystemSIS); ok {
		return module
	}

	channels := a.catalog.ChannelDensity(a.vendor, system, ioType)
	signalClass := "24VDC"
	if ioType == types.IOTypeAI || ioType == types.IOTypeAO {
		signalClass = "4-20mA"
	}
	return &types.IOModule{
		Model:         fmt.Sprintf("%s-%s-GENERIC", system, ioType),
		IOType:        ioType,
		Channels:      channels,
		SignalClass:   signalClass,
		ControlSystem: system,
		Vendor:        a.vendor,
	}
}

// allocateCardsForIOType creates the cards for one (system, I/O type) group
// and fills channel maps in instrument order, padding with spares.
func (a *Allocator) allocateCardsForIOType(system types.ControlSystem, ioType types.IOType, signalCount int, location string, cardStart int, instruments []types.Instrument) []*types.IOCard {
	if signalCount == 0 {
		return nil
	}

	module := a.moduleFor(system, ioType)
	numCards, _, _ := CardsNeeded(signalCount, module.Channels, a.sparePercent)

	cards := make([]*types.IOCard, 0, numCards)
	instIndex := 0
	for i := 0; i < numCards; i++ {
		signalsOnCard := signalCount - i*module.Channels
		if signalsOnCard > module.Channels {
			signalsOnCard = module.Channels
		}
		if signalsOnCard < 0 {
			signalsOnCard = 0
		}

		assignments := make(map[int]types.ChannelAssignment, module.Channels)
		for ch := 1; ch <= module.Channels; ch++ {
			if instIndex < len(instruments) {
				inst := &instruments[instIndex]
				assignments[ch] = types.ChannelAssignment{
					Tag:     inst.Tag,
					Service: inst.Service,
					Type:    inst.Type,
					Status:  types.TerminalUsed,
				}
				instIndex++
			} else {
				assignments[ch] = types.ChannelAssignment{
					Tag:    types.SpareTag,
					Status: types.TerminalSpare,
				}
			}
		}

		cards = append(cards, &types.IOCard{
			Module:        module,
			CardNumber:    cardStart + i,
			System:        system,
			Location:      location,
			TotalChannels: module.Channels,
			UsedChannels:  signalsOnCard,
			SpareChannels: module.Channels - signalsOnCard,
			Assignments:   assignments,
		})
	}

	return cards
}

// allocateCardsForSystem allocates all card groups for one control system.
// Card numbers run continuously across AI, AO, DI, DO starting at 1.
func (a *Allocator) allocateCardsForSystem(system types.ControlSystem, counts types.SignalCount, location string, byType map[types.IOType][]types.Instrument) []*types.IOCard {
	var cards []*types.IOCard
	counter := 1
	for _, ioType := range types.AllIOTypes {
		group := a.allocateCardsForIOType(system, ioType, counts.Of(ioType), location, counter, byType[ioType])
		cards = append(cards, group...)
		counter += len(group)
	}
	return cards
}

// groupBySystemAndType buckets instruments for channel assignment, keeping
// input order within each bucket.
func groupBySystemAndType(instruments []types.Instrument, classify classifyFunc) map[types.ControlSystem]map[types.IOType][]types.Instrument {
	grouped := map[types.ControlSystem]map[types.IOType][]types.Instrument{
		types.SystemDCS: {},
		types.SystemSIS: {},
		types.SystemRTU: {},
	}
	for i := range instruments {
		system := classify(&instruments[i])
		ioType := IOTypeOf(&instruments[i])
		grouped[system][ioType] = append(grouped[system][ioType], instruments[i])
	}
	return grouped
}

// Allocate performs the complete card allocation. A non-empty
// systemOverride forces every instrument onto one control system.
func (a *Allocator) Allocate(instruments []types.Instrument, systemOverride string) *types.IOAllocationResult {
	classify := classifyFunc(ClassifySystem)
	if target, ok := resolveSystemOverride(systemOverride); ok {
		classify = func(*types.Instrument) types.ControlSystem { return target }
	}

	counts := countSignalsBySystem(instruments, classify)
	grouped := groupBySystemAndType(instruments, classify)

	dcsCards := a.allocateCardsForSystem(types.SystemDCS, counts[types.SystemDCS], "CCR", grouped[types.SystemDCS])
	sisCards := a.allocateCardsForSystem(types.SystemSIS, counts[types.SystemSIS], "CCR", grouped[types.SystemSIS])
	rtuCards := a.allocateCardsForSystem(types.SystemRTU, counts[types.SystemRTU], "DS-1/DS-3", grouped[types.SystemRTU])

	actualSpare := make(map[string]float64)
	for system, cards := range map[string][]*types.IOCard{"DCS": dcsCards, "SIS": sisCards, "RTU": rtuCards} {
		total, used := 0, 0
		for _, c := range cards {
			total += c.TotalChannels
			used += c.UsedChannels
		}
		if total > 0 {
			actualSpare[system] = float64(total-used) / float64(total) * 100
		}
	}

	rules := []string{
		"DCS and SIS on separate systems",
		"Analog and Digital on separate cards",
		"SIL-rated modules for SIS",
		fmt.Sprintf("%.0f%% spare capacity applied", a.sparePercent*100),
	}
	if a.rules != nil {
		if a.rules.SegregateByArea {
			rules = append(rules, "Segregated by plant area")
		}
		if a.rules.SegregateISNonIS {
			rules = append(rules, "IS and non-IS signals on separate cards")
		}
		if a.rules.MaxCabinetsPerArea > 0 {
			rules = append(rules, fmt.Sprintf("Max %d cabinets per area", a.rules.MaxCabinetsPerArea))
		}
		if a.rules.GroupByLoop {
			rules = append(rules, "Signals grouped by control loop")
		}
		if a.rules.GroupByUnit {
			rules = append(rules, "Signals grouped by unit")
		}
		for _, custom := range a.rules.AdditionalRules {
			rules = append(rules, "Custom: "+custom)
		}
	}

	return &types.IOAllocationResult{
		DCSSummary:         counts[types.SystemDCS],
		SISSummary:         counts[types.SystemSIS],
		RTUSummary:         counts[types.SystemRTU],
		DCSCards:           dcsCards,
		SISCards:           sisCards,
		RTUCards:           rtuCards,
		SparePercentTarget: a.sparePercent * 100,
		ActualSparePercent: actualSpare,
		SegregationRules:   rules,
	}
}
