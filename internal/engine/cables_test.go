package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icsuite/wireplan/internal/types"
)

func TestMultipairSize(t *testing.T) {
	tests := []struct {
		name  string
		count int
		spare float64
		want  int
	}{
		{"4 instruments fit the 5 pair cable", 4, 0.20, 5},
		{"5 instruments need 6 pairs, next size is 10", 5, 0.20, 10},
		{"8 instruments need 10 pairs exactly", 8, 0.20, 10},
		{"16 instruments need 20 pairs", 16, 0.20, 20},
		{"zero count takes the minimum size", 0, 0.20, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			size, err := MultipairSize(tt.count, tt.spare)
			require.NoError(t, err)
			assert.Equal(t, tt.want, size)
		})
	}
}

func TestMultipairSizeTooLarge(t *testing.T) {
	// 17 * 1.2 = 20.4 -> 21 pairs, beyond the largest standard cable.
	_, err := MultipairSize(17, 0.20)
	require.Error(t, err)

	var sizingErr *SizingError
	require.ErrorAs(t, err, &sizingErr)
	assert.Equal(t, 17, sizingErr.InstrumentCount)
	assert.Equal(t, 21, sizingErr.RequiredWithSpare)
	assert.Equal(t, 20, sizingErr.MaxStandardSize)
}

func TestMultipairSizeMonotonic(t *testing.T) {
	prev := 0
	for n := 1; n <= 16; n++ {
		size, err := MultipairSize(n, 0.20)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, size, n)
		assert.GreaterOrEqual(t, size, prev)
		prev = size
	}
}

func TestMultipairSpec(t *testing.T) {
	assert.Equal(t, "5PRx1.0mm²/ISP-OS", MultipairSpec(5, types.CategoryAnalog))
	assert.Equal(t, "10PRx0.75mm²/OS", MultipairSpec(10, types.CategoryDigital))
}

func TestBranchSpec(t *testing.T) {
	tests := []struct {
		signal    types.SignalType
		wantSpec  string
		wantPairs int
	}{
		{types.SignalAnalogInput, "1Px1.5mm²/ISTP", 1},
		{types.SignalAnalogOutput, "1Px1.5mm²/ISTP", 1},
		{types.SignalDigitalInput, "1Px1.0mm²/OS", 1},
		{types.SignalDigitalOutput, "1Px1.0mm²/OS", 1},
		{types.SignalThermocouple, "1Px1.5mm²/TC-EXT", 1},
		{types.SignalRTD3Wire, "3Cx1.5mm²/ISTP", 1},
		{types.SignalRTD4Wire, "2Px1.5mm²/ISP", 2},
		{types.SignalType("UNKNOWN"), "1Px1.5mm²", 1},
	}

	for _, tt := range tests {
		t.Run(string(tt.signal), func(t *testing.T) {
			spec, pairs := BranchSpec(tt.signal)
			assert.Equal(t, tt.wantSpec, spec)
			assert.Equal(t, tt.wantPairs, pairs)
		})
	}
}

func TestDetermineCategory(t *testing.T) {
	analog := types.Instrument{SignalType: types.SignalAnalogInput}
	digital := types.Instrument{SignalType: types.SignalDigitalInput}

	assert.Equal(t, types.CategoryAnalog, DetermineCategory([]types.Instrument{analog, analog, digital}))
	assert.Equal(t, types.CategoryDigital, DetermineCategory([]types.Instrument{analog, digital, digital}))
	// Ties and empty input favor analog.
	assert.Equal(t, types.CategoryAnalog, DetermineCategory([]types.Instrument{analog, digital}))
	assert.Equal(t, types.CategoryAnalog, DetermineCategory(nil))
}

func TestSizeCablesForJB(t *testing.T) {
	instruments := []types.Instrument{
		{Tag: "PP01-601-TIT0001", SignalType: types.SignalAnalogInput},
		{Tag: "PP01-601-PIT0001", SignalType: types.SignalAnalogInput},
		{Tag: "PP01-601-FIT0001", SignalType: types.SignalAnalogInput},
		{Tag: "PP01-601-LIT0001", SignalType: types.SignalAnalogInput},
	}

	result, err := SizeCablesForJB(instruments, "PP01-601-IAJB0001", "PP01-601-MC001", "PP01-601-I0001", 0.20, "")
	require.NoError(t, err)

	assert.Len(t, result.BranchCables, 4)
	assert.Equal(t, 4, result.TotalPairsNeeded)
	assert.Equal(t, 5, result.MultipairCable.PairCount)
	assert.Equal(t, "5PRx1.0mm²/ISP-OS", result.MultipairCable.Specification)
	assert.Equal(t, 1, result.SparePairs)
	assert.Equal(t, "PP01-601-IAJB0001", result.MultipairCable.From)
	assert.Equal(t, "PP01-601-MC001", result.MultipairCable.To)

	// Branch cable tags default to the instrument tag and are written back.
	assert.Equal(t, "PP01-601-TIT0001", result.BranchCables[0].Tag)
	assert.Equal(t, "PP01-601-TIT0001", instruments[0].BranchCableTag)
}

func TestSizeCablesForJBCountsRTD4Double(t *testing.T) {
	instruments := []types.Instrument{
		{Tag: "PP01-601-TE0001", SignalType: types.SignalRTD4Wire},
		{Tag: "PP01-601-TE0002", SignalType: types.SignalRTD4Wire},
		{Tag: "PP01-601-TIT0001", SignalType: types.SignalAnalogInput},
	}

	result, err := SizeCablesForJB(instruments, "JB", "MC", "C1", 0.20, "")
	require.NoError(t, err)

	// 2 + 2 + 1 pairs, with spare -> 6 -> next standard size 10.
	assert.Equal(t, 5, result.TotalPairsNeeded)
	assert.Equal(t, 10, result.MultipairCable.PairCount)
}

func TestSplitMultipairs(t *testing.T) {
	tests := []struct {
		name  string
		count int
		spare float64
		want  []int
	}{
		{"fits one cable", 4, 0.20, []int{5}},
		{"largest first", 30, 0.20, []int{20, 10, 5, 5}},
		{"exact multiple", 50, 0.20, []int{20, 20, 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitMultipairs(tt.count, tt.spare)
			assert.Equal(t, tt.want, got)

			total := 0
			for _, size := range got {
				total += size
			}
			assert.GreaterOrEqual(t, total, tt.count)
		})
	}
}
