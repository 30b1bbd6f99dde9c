package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icsuite/wireplan/internal/catalog"
	"github.com/icsuite/wireplan/internal/types"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New()
	require.NoError(t, err)
	return cat
}

func TestNewAllocatorUnknownVendor(t *testing.T) {
	_, err := NewAllocator(testCatalog(t), "Siemens", 0.20)
	require.Error(t, err)

	var vendorErr *VendorError
	require.ErrorAs(t, err, &vendorErr)
	assert.Equal(t, "Siemens", vendorErr.Vendor)
	assert.Contains(t, vendorErr.Available, "Yokogawa")
}

func TestCardsNeeded(t *testing.T) {
	tests := []struct {
		name      string
		signals   int
		perCard   int
		spare     float64
		wantCards int
		wantSpare int
	}{
		{"150 AI on 8ch cards", 150, 8, 0.20, 23, 34},
		{"exact fit", 8, 8, 0, 1, 0},
		{"one signal", 1, 8, 0.20, 1, 7},
		{"zero signals", 0, 8, 0.20, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cards, used, spare := CardsNeeded(tt.signals, tt.perCard, tt.spare)
			assert.Equal(t, tt.wantCards, cards)
			assert.Equal(t, tt.signals, used)
			assert.Equal(t, tt.wantSpare, spare)
		})
	}
}

func TestCountSignalsBySystem(t *testing.T) {
	instruments := []types.Instrument{
		{Type: "TIT", Area: "601", SignalType: types.SignalAnalogInput},
		{Type: "FIC", Area: "601", SignalType: types.SignalAnalogOutput},
		{Type: "ZSC", Area: "601", SignalType: types.SignalDigitalInput},
		{Type: "TZT", Area: "601", SignalType: types.SignalAnalogInput},
		{Type: "PIT", Area: "DS-1", SignalType: types.SignalAnalogInput},
	}

	counts := CountSignalsBySystem(instruments)

	assert.Equal(t, types.SignalCount{AI: 1, AO: 1, DI: 1}, counts[types.SystemDCS])
	assert.Equal(t, types.SignalCount{AI: 1}, counts[types.SystemSIS])
	assert.Equal(t, types.SignalCount{AI: 1}, counts[types.SystemRTU])
}

func TestAllocate150AnalogInputs(t *testing.T) {
	instruments := make([]types.Instrument, 0, 150)
	for i := 0; i < 150; i++ {
		instruments = append(instruments, types.Instrument{
			Tag:        fmt.Sprintf("PP01-601-TIT%04d", i+1),
			Type:       "TIT",
			Area:       "601",
			Service:    "Reactor temperature",
			SignalType: types.SignalAnalogInput,
		})
	}

	allocator, err := NewAllocator(testCatalog(t), "Yokogawa", 0.20)
	require.NoError(t, err)

	result := allocator.Allocate(instruments, "")

	// 150 * 1.2 = 180 channels on 8-channel cards -> 23 cards.
	require.Len(t, result.DCSCards, 23)
	assert.Empty(t, result.SISCards)
	assert.Empty(t, result.RTUCards)
	assert.Equal(t, types.SignalCount{AI: 150}, result.DCSSummary)

	// Card numbering starts at 1 and is continuous.
	for i, card := range result.DCSCards {
		assert.Equal(t, i+1, card.CardNumber)
		assert.Equal(t, "CCR", card.Location)
		assert.Equal(t, "AAI143-H00", card.Module.Model)
	}

	// 18 full cards, the 19th holds the remainder of 6, the rest of the 23
	// are pure spare capacity.
	assert.Equal(t, 8, result.DCSCards[0].UsedChannels)
	assert.Equal(t, 6, result.DCSCards[18].UsedChannels)
	assert.Equal(t, 0, result.DCSCards[22].UsedChannels)

	// Channel maps are fully populated, used then spare.
	first := result.DCSCards[0]
	require.Len(t, first.Assignments, 8)
	assert.Equal(t, "PP01-601-TIT0001", first.Assignments[1].Tag)
	assert.Equal(t, types.TerminalUsed, first.Assignments[1].Status)

	remainder := result.DCSCards[18]
	assert.Equal(t, "PP01-601-TIT0150", remainder.Assignments[6].Tag)
	assert.Equal(t, types.SpareTag, remainder.Assignments[7].Tag)

	last := result.DCSCards[22]
	assert.Equal(t, types.SpareTag, last.Assignments[1].Tag)
	assert.Equal(t, types.SpareTag, last.Assignments[8].Tag)
	assert.Equal(t, types.TerminalSpare, last.Assignments[8].Status)

	// Actual spare reflects rounding up to whole cards.
	assert.InDelta(t, float64(23*8-150)/float64(23*8)*100, result.ActualSparePercent["DCS"], 0.01)
}

func TestAllocateSISUsesSafetyModules(t *testing.T) {
	instruments := []types.Instrument{
		{Tag: "PP01-601-TZT0001", Type: "TZT", Area: "601", SignalType: types.SignalAnalogInput},
		{Tag: "PP01-601-EHS0001", Type: "EHS", Area: "601", SignalType: types.SignalDigitalOutput},
	}

	allocator, err := NewAllocator(testCatalog(t), "Yokogawa", 0.20)
	require.NoError(t, err)

	result := allocator.Allocate(instruments, "")

	require.Len(t, result.SISCards, 2)
	assert.Empty(t, result.DCSCards)
	for _, card := range result.SISCards {
		assert.True(t, card.Module.IsSafetyRated(), "module %s", card.Module.Model)
		assert.Equal(t, "CCR", card.Location)
	}
	assert.Equal(t, "ATI4D-00", result.SISCards[0].Module.Model)
	assert.Equal(t, "ADO4D-00", result.SISCards[1].Module.Model)
}

func TestAllocateCardNumberingAcrossIOTypes(t *testing.T) {
	instruments := []types.Instrument{
		{Tag: "T1", Type: "TIT", Area: "601", SignalType: types.SignalAnalogInput},
		{Tag: "V1", Type: "FIC", Area: "601", SignalType: types.SignalAnalogOutput},
		{Tag: "Z1", Type: "ZSC", Area: "601", SignalType: types.SignalDigitalInput},
		{Tag: "X1", Type: "XV", Area: "601", SignalType: types.SignalDigitalOutput},
	}

	allocator, err := NewAllocator(testCatalog(t), "Yokogawa", 0.20)
	require.NoError(t, err)

	result := allocator.Allocate(instruments, "")

	require.Len(t, result.DCSCards, 4)
	wantOrder := []types.IOType{types.IOTypeAI, types.IOTypeAO, types.IOTypeDI, types.IOTypeDO}
	for i, card := range result.DCSCards {
		assert.Equal(t, i+1, card.CardNumber)
		assert.Equal(t, wantOrder[i], card.Module.IOType)
	}
}

func TestAllocateRTULocation(t *testing.T) {
	instruments := []types.Instrument{
		{Tag: "R1", Type: "TIT", Area: "DS-1", SignalType: types.SignalAnalogInput},
	}

	allocator, err := NewAllocator(testCatalog(t), "Yokogawa", 0.20)
	require.NoError(t, err)

	result := allocator.Allocate(instruments, "")

	require.Len(t, result.RTUCards, 1)
	assert.Equal(t, "DS-1/DS-3", result.RTUCards[0].Location)
	assert.Equal(t, "F3AD04-5N", result.RTUCards[0].Module.Model)
}

func TestAllocateSystemOverride(t *testing.T) {
	instruments := []types.Instrument{
		{Tag: "T1", Type: "TIT", Area: "601", SignalType: types.SignalAnalogInput},
		{Tag: "T2", Type: "PIT", Area: "601", SignalType: types.SignalAnalogInput},
	}

	allocator, err := NewAllocator(testCatalog(t), "Yokogawa", 0.20)
	require.NoError(t, err)

	// ESD is an alias for SIS.
	result := allocator.Allocate(instruments, "ESD")
	assert.Empty(t, result.DCSCards)
	require.NotEmpty(t, result.SISCards)
	assert.Equal(t, types.SignalCount{AI: 2}, result.SISSummary)

	rtu := allocator.Allocate(instruments, "rtu")
	assert.Empty(t, rtu.DCSCards)
	assert.NotEmpty(t, rtu.RTUCards)
}

func TestAllocateSegregationRules(t *testing.T) {
	allocator, err := NewAllocator(testCatalog(t), "Yokogawa", 0.20)
	require.NoError(t, err)

	instruments := []types.Instrument{{Tag: "T1", Type: "TIT", Area: "601", SignalType: types.SignalAnalogInput}}
	result := allocator.Allocate(instruments, "")

	assert.Contains(t, result.SegregationRules, "DCS and SIS on separate systems")
	assert.Contains(t, result.SegregationRules, "Analog and Digital on separate cards")
	assert.Contains(t, result.SegregationRules, "SIL-rated modules for SIS")
	assert.Contains(t, result.SegregationRules, "20% spare capacity applied")
	assert.InDelta(t, 20.0, result.SparePercentTarget, 0.001)
}

func TestAllocateCustomRules(t *testing.T) {
	allocator, err := NewAllocator(testCatalog(t), "Yokogawa", 0.20)
	require.NoError(t, err)

	allocator.SetCustomRules(&types.CustomRules{
		SegregateByArea:    true,
		SegregateISNonIS:   true,
		MaxCabinetsPerArea: 3,
		GroupByLoop:        true,
		AdditionalRules:    []string{"Fire and gas on dedicated cards"},
	})

	instruments := []types.Instrument{{Tag: "T1", Type: "TIT", Area: "601", SignalType: types.SignalAnalogInput}}
	result := allocator.Allocate(instruments, "")

	assert.Contains(t, result.SegregationRules, "Segregated by plant area")
	assert.Contains(t, result.SegregationRules, "IS and non-IS signals on separate cards")
	assert.Contains(t, result.SegregationRules, "Max 3 cabinets per area")
	assert.Contains(t, result.SegregationRules, "Signals grouped by control loop")
	assert.Contains(t, result.SegregationRules, "Custom: Fire and gas on dedicated cards")
}

func TestAllocateDeterministic(t *testing.T) {
	instruments := []types.Instrument{
		{Tag: "T1", Type: "TIT", Area: "601", SignalType: types.SignalAnalogInput},
		{Tag: "T2", Type: "ZSC", Area: "601", SignalType: types.SignalDigitalInput},
		{Tag: "T3", Type: "TZT", Area: "601", SignalType: types.SignalAnalogInput},
	}

	allocator, err := NewAllocator(testCatalog(t), "Yokogawa", 0.20)
	require.NoError(t, err)

	first := allocator.Allocate(instruments, "")
	second := allocator.Allocate(instruments, "")

	assert.Equal(t, first.DCSSummary, second.DCSSummary)
	require.Equal(t, len(first.AllCards()), len(second.AllCards()))
	for i := range first.AllCards() {
		assert.Equal(t, first.AllCards()[i].Assignments, second.AllCards()[i].Assignments)
	}
}

type missCatalog struct{}

func (missCatalog) Module(string, types.ControlSystem, types.IOType, bool) (*types.IOModule, bool) {
	return nil, false
}
func (missCatalog) ChannelDensity(string, types.ControlSystem, types.IOType) int { return 16 }
func (missCatalog) VendorSupported(string) bool                                  { return true }
func (missCatalog) Vendors() []string                                            { return []string{"Generic"} }

func TestAllocateGenericModuleFallback(t *testing.T) {
	allocator, err := NewAllocator(missCatalog{}, "Generic", 0.20)
	require.NoError(t, err)

	instruments := []types.Instrument{
		{Tag: "T1", Type: "TIT", Area: "601", SignalType: types.SignalAnalogInput},
		{Tag: "Z1", Type: "ZSC", Area: "601", SignalType: types.SignalDigitalInput},
	}

	result := allocator.Allocate(instruments, "")

	require.Len(t, result.DCSCards, 2)
	assert.Equal(t, "DCS-AI-GENERIC", result.DCSCards[0].Module.Model)
	assert.Equal(t, "4-20mA", result.DCSCards[0].Module.SignalClass)
	assert.Equal(t, 16, result.DCSCards[0].Module.Channels)
	assert.Equal(t, "DCS-DI-GENERIC", result.DCSCards[1].Module.Model)
	assert.Equal(t, "24VDC", result.DCSCards[1].Module.SignalClass)
}
