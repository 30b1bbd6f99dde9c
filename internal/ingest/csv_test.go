package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icsuite/wireplan/internal/types"
)

func TestReadIOList(t *testing.T) {
	csvData := `tag,type,service,area,io_type,loop
PP01-601-TIT0001,TIT,Reactor temperature,601,,T-001
PP01-601-ZSC0001,ZSC,Valve closed position,601,,Z-001
PP01-601-FIC0001,FIC,Feed flow control,601,AO,F-001
`

	instruments, err := ReadIOList(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, instruments, 3)

	assert.Equal(t, "PP01-601-TIT0001", instruments[0].Tag)
	assert.Equal(t, "TIT", instruments[0].Type)
	assert.Equal(t, "Reactor temperature", instruments[0].Service)
	assert.Equal(t, "601", instruments[0].Area)
	assert.Equal(t, types.SignalAnalogInput, instruments[0].SignalType)
	assert.Equal(t, "T-001", instruments[0].LoopNumber)

	assert.Equal(t, types.SignalDigitalInput, instruments[1].SignalType)

	// Explicit io_type hints survive ingestion.
	assert.Equal(t, "AO", instruments[2].IOTypeHint)
}

func TestReadIOListHeaderAliases(t *testing.T) {
	csvData := `Tag Number,Instrument Type,Service Description,Plant Area,I/O Type,Loop No
PP01-601-PIT0001,PIT,Column pressure,601,AI,P-001
`

	instruments, err := ReadIOList(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, instruments, 1)

	assert.Equal(t, "PP01-601-PIT0001", instruments[0].Tag)
	assert.Equal(t, "PIT", instruments[0].Type)
	assert.Equal(t, "Column pressure", instruments[0].Service)
	assert.Equal(t, "601", instruments[0].Area)
	assert.Equal(t, "AI", instruments[0].IOTypeHint)
}

func TestReadIOListSkipsBlankTags(t *testing.T) {
	csvData := `tag,type
PP01-601-TIT0001,TIT
,PIT
PP01-601-LIT0001,LIT
`

	instruments, err := ReadIOList(strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Len(t, instruments, 2)
}

func TestReadIOListMissingTagColumn(t *testing.T) {
	csvData := `type,service
TIT,Reactor temperature
`
	_, err := ReadIOList(strings.NewReader(csvData))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tag column")
}

func TestReadIOListEmpty(t *testing.T) {
	_, err := ReadIOList(strings.NewReader("tag,type\n"))
	assert.Error(t, err)

	_, err = ReadIOList(strings.NewReader("tag,type\n,TIT\n"))
	assert.Error(t, err)
}

func TestNewInstrumentDerivesFromTag(t *testing.T) {
	// Type and area fall back to the tag's embedded components.
	inst := NewInstrument("PP01-364-TIT0001", "", "", "", "", "")

	assert.Equal(t, "TIT", inst.Type)
	assert.Equal(t, "364", inst.Area)
	assert.Equal(t, types.SignalAnalogInput, inst.SignalType)
}

func TestNewInstrumentNormalizes(t *testing.T) {
	inst := NewInstrument(" PP01-601-ZSC0001 ", " zsc ", " Valve position ", " 601 ", " di ", " Z-1 ")

	assert.Equal(t, "PP01-601-ZSC0001", inst.Tag)
	assert.Equal(t, "ZSC", inst.Type)
	assert.Equal(t, "601", inst.Area)
	assert.Equal(t, "DI", inst.IOTypeHint)
	assert.Equal(t, types.SignalDigitalInput, inst.SignalType)
}

func TestLoadIOList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "iolist.csv")
	data := "tag,type,area\nPP01-601-TIT0001,TIT,601\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	instruments, err := LoadIOList(path)
	require.NoError(t, err)
	assert.Len(t, instruments, 1)

	_, err = LoadIOList(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestFilterByArea(t *testing.T) {
	instruments := []types.Instrument{
		{Tag: "A", Area: "601"},
		{Tag: "B", Area: "364"},
		{Tag: "C", Area: "601"},
	}

	filtered := FilterByArea(instruments, "601")
	require.Len(t, filtered, 2)
	assert.Equal(t, "A", filtered[0].Tag)
	assert.Equal(t, "C", filtered[1].Tag)

	assert.Empty(t, FilterByArea(instruments, "999"))
}

func TestGroupByArea(t *testing.T) {
	instruments := []types.Instrument{
		{Tag: "A", Area: "601"},
		{Tag: "B", Area: "364"},
		{Tag: "C", Area: "601"},
		{Tag: "D"},
	}

	grouped := GroupByArea(instruments)
	assert.Len(t, grouped["601"], 2)
	assert.Len(t, grouped["364"], 1)
	// Unset areas bucket under the placeholder code.
	assert.Len(t, grouped["000"], 1)
}
