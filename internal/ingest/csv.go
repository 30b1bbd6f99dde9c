// Package ingest reads instrument I/O lists into normalized instruments
// ready for allocation. Column headers tolerate the usual naming variants
// found in engineering deliverables.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/icsuite/wireplan/internal/engine"
	"github.com/icsuite/wireplan/internal/types"
)

// Canonical column names.
const (
	colTag     = "tag"
	colType    = "type"
	colService = "service"
	colArea    = "area"
	colIOType  = "io_type"
	colLoop    = "loop"
	colPID     = "pid_ref"
	colRemarks = "remarks"
)

// columnAliases maps header spellings seen in the wild to canonical names.
var columnAliases = map[string]string{
	"tag":                 colTag,
	"tag number":          colTag,
	"tag_number":          colTag,
	"tag no":              colTag,
	"tag no.":             colTag,
	"instrument tag":      colTag,
	"type":                colType,
	"instrument type":     colType,
	"instrument_type":     colType,
	"inst type":           colType,
	"instr type":          colType,
	"service":             colService,
	"description":         colService,
	"service desc":        colService,
	"service description": colService,
	"service_description": colService,
	"area":                colArea,
	"plant area":          colArea,
	"area code":           colArea,
	"location":            colArea,
	"io type":             colIOType,
	"i/o type":            colIOType,
	"io_type":             colIOType,
	"i/o":                 colIOType,
	"loop":                colLoop,
	"loop number":         colLoop,
	"loop no":             colLoop,
	"loop_number":         colLoop,
	"p&id":                colPID,
	"p&id reference":      colPID,
	"p&id ref":            colPID,
	"pid":                 colPID,
	"pid_reference":       colPID,
	"remarks":             colRemarks,
	"notes":               colRemarks,
	"comment":             colRemarks,
	"comments":            colRemarks,
}

// NewInstrument builds a classified instrument from raw I/O list fields.
// The type code falls back to the tag's embedded code when blank.
func NewInstrument(tag, typeCode, service, area, ioTypeHint, loop string) types.Instrument {
	if typeCode == "" {
		parsed := engine.ParseInstrumentTag(tag)
		typeCode = parsed.ItemType
	}
	if area == "" {
		parsed := engine.ParseInstrumentTag(tag)
		if parsed.AreaCode != "" {
			area = parsed.AreaCode
		}
	}

	return types.Instrument{
		Tag:        strings.TrimSpace(tag),
		Type:       strings.ToUpper(strings.TrimSpace(typeCode)),
		Service:    strings.TrimSpace(service),
		Area:       strings.TrimSpace(area),
		SignalType: engine.Classify(strings.ToUpper(strings.TrimSpace(typeCode))),
		IOTypeHint: strings.ToUpper(strings.TrimSpace(ioTypeHint)),
		LoopNumber: strings.TrimSpace(loop),
	}
}

// normalizeHeader maps raw header cells to canonical column names.
// Unrecognized columns keep their lowercased name and are ignored later.
func normalizeHeader(header []string) []string {
	normalized := make([]string, len(header))
	for i, col := range header {
		key := strings.ToLower(strings.TrimSpace(col))
		if canonical, ok := columnAliases[key]; ok {
			normalized[i] = canonical
		} else {
			normalized[i] = key
		}
	}
	return normalized
}

// ReadIOList parses a CSV I/O list from a reader. The first row is the
// header; a tag column is mandatory, everything else is optional. Rows with
// an empty tag are skipped.
func ReadIOList(r io.Reader) ([]types.Instrument, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read I/O list: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("I/O list must have a header and at least one data row")
	}

	header := normalizeHeader(records[0])
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[name] = i
	}
	if _, ok := columns[colTag]; !ok {
		return nil, fmt.Errorf("I/O list is missing a tag column, got header: %v", records[0])
	}

	field := func(record []string, name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return record[idx]
	}

	var instruments []types.Instrument
	for _, record := range records[1:] {
		tag := strings.TrimSpace(field(record, colTag))
		if tag == "" {
			continue
		}
		inst := NewInstrument(
			tag,
			field(record, colType),
			field(record, colService),
			field(record, colArea),
			field(record, colIOType),
			field(record, colLoop),
		)
		inst.PIDRef = strings.TrimSpace(field(record, colPID))
		inst.Remarks = strings.TrimSpace(field(record, colRemarks))
		instruments = append(instruments, inst)
	}

	if len(instruments) == 0 {
		return nil, fmt.Errorf("I/O list contains no instruments")
	}
	return instruments, nil
}

// LoadIOList reads a CSV I/O list from disk.
func LoadIOList(path string) ([]types.Instrument, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open I/O list %s: %w", path, err)
	}
	defer file.Close()

	instruments, err := ReadIOList(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return instruments, nil
}

// FilterByArea returns the instruments in one plant area.
func FilterByArea(instruments []types.Instrument, area string) []types.Instrument {
	var filtered []types.Instrument
	for i := range instruments {
		if strings.EqualFold(instruments[i].Area, area) {
			filtered = append(filtered, instruments[i])
		}
	}
	return filtered
}

// GroupByArea buckets instruments per plant area, keeping input order.
func GroupByArea(instruments []types.Instrument) map[string][]types.Instrument {
	grouped := make(map[string][]types.Instrument)
	for i := range instruments {
		area := instruments[i].Area
		if area == "" {
			area = "000"
		}
		grouped[area] = append(grouped[area], instruments[i])
	}
	return grouped
}
