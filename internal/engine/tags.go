package engine

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/icsuite/wireplan/internal/types"
)

// TagConfig seeds the tag generator with plant identity and sequence starts.
type TagConfig struct {
	PlantCode          string `json:"plant_code" yaml:"plant_code" mapstructure:"plant_code"`
	AreaCode           string `json:"area_code" yaml:"area_code" mapstructure:"area_code"`
	JBSequenceStart    int    `json:"jb_sequence_start" yaml:"jb_sequence_start" mapstructure:"jb_sequence_start"`
	CableSequenceStart int    `json:"cable_sequence_start" yaml:"cable_sequence_start" mapstructure:"cable_sequence_start"`
	TBSequenceStart    int    `json:"tb_sequence_start" yaml:"tb_sequence_start" mapstructure:"tb_sequence_start"`
}

// DefaultTagConfig returns the standard plant identity and sequence starts.
func DefaultTagConfig() TagConfig {
	return TagConfig{
		PlantCode:          "PP01",
		AreaCode:           "601",
		JBSequenceStart:    1,
		CableSequenceStart: 1,
		TBSequenceStart:    1,
	}
}

// TagGenerator issues sequential equipment tags. Counters advance per JB
// class for junction boxes and globally for cables and terminal blocks.
// Safe for concurrent use.
type TagGenerator struct {
	mu           sync.Mutex
	config       TagConfig
	jbCounters   map[types.JBClass]int
	cableCounter int
	tbCounter    int
}

// NewTagGenerator builds a generator. Zero-valued config fields fall back to
// the defaults.
func NewTagGenerator(config TagConfig) *TagGenerator {
	defaults := DefaultTagConfig()
	if config.PlantCode == "" {
		config.PlantCode = defaults.PlantCode
	}
	if config.AreaCode == "" {
		config.AreaCode = defaults.AreaCode
	}
	if config.JBSequenceStart == 0 {
		config.JBSequenceStart = defaults.JBSequenceStart
	}
	if config.CableSequenceStart == 0 {
		config.CableSequenceStart = defaults.CableSequenceStart
	}
	if config.TBSequenceStart == 0 {
		config.TBSequenceStart = defaults.TBSequenceStart
	}

	g := &TagGenerator{config: config}
	g.resetLocked()
	return g
}

func (g *TagGenerator) resetLocked() {
	g.jbCounters = map[types.JBClass]int{
		types.JBAnalog:  g.config.JBSequenceStart,
		types.JBDigital: g.config.JBSequenceStart,
		types.JBMixed:   g.config.JBSequenceStart,
	}
	g.cableCounter = g.config.CableSequenceStart
	g.tbCounter = g.config.TBSequenceStart
}

// Reset restores every counter to its configured start.
func (g *TagGenerator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.resetLocked()
}

// JBTag issues the next junction box tag for a class, e.g.
// "PP01-601-IAJB0001". Each class advances its own sequence.
func (g *TagGenerator) JBTag(class types.JBClass) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	seq := g.jbCounters[class]
	g.jbCounters[class]++
	return fmt.Sprintf("%s-%s-%sJB%04d", g.config.PlantCode, g.config.AreaCode, JBTagPrefix(class), seq)
}

// MultipairCableTag issues the next multipair cable tag, e.g.
// "PP01-601-I0001".
func (g *TagGenerator) MultipairCableTag() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	seq := g.cableCounter
	g.cableCounter++
	return fmt.Sprintf("%s-%s-I%04d", g.config.PlantCode, g.config.AreaCode, seq)
}

// TerminalBlockTag issues a cabinet terminal block tag, e.g. "TB601-I0001".
// When a multipair cable tag is given the block number is derived from it so
// the pair stays matched; otherwise the TB sequence advances.
func (g *TagGenerator) TerminalBlockTag(cableTag string) string {
	if cableTag != "" {
		parts := strings.Split(cableTag, "-")
		if len(parts) >= 3 {
			return fmt.Sprintf("TB%s-%s", g.config.AreaCode, parts[2])
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	seq := g.tbCounter
	g.tbCounter++
	return fmt.Sprintf("TB%s-I%04d", g.config.AreaCode, seq)
}

// DrawingNumber formats an interconnection drawing number, e.g.
// "100478CP-N-PG-PP01-IC-DIC-0004".
func (g *TagGenerator) DrawingNumber(contract, discipline, docType string, sequence int) string {
	if contract == "" {
		contract = "100478"
	}
	if discipline == "" {
		discipline = "IC"
	}
	if docType == "" {
		docType = "DIC"
	}
	return fmt.Sprintf("%sCP-N-PG-%s-%s-%s-%04d", contract, g.config.PlantCode, discipline, docType, sequence)
}

// ParsedTag holds the components of a plant-area-item tag. Zero fields mean
// the tag did not match the expected shape.
type ParsedTag struct {
	Raw       string `json:"raw"`
	PlantCode string `json:"plant_code,omitempty"`
	AreaCode  string `json:"area_code,omitempty"`
	ItemType  string `json:"item_type,omitempty"`
	Sequence  string `json:"sequence,omitempty"`
	JBClass   string `json:"jb_class,omitempty"`
}

var instrumentTagPattern = regexp.MustCompile(`^([A-Z]+)(\d+)$`)

// ParseInstrumentTag splits a tag like "PP01-364-TIT0001" into plant, area,
// type code and sequence.
func ParseInstrumentTag(tag string) ParsedTag {
	result := ParsedTag{Raw: tag}

	parts := strings.Split(tag, "-")
	if len(parts) != 3 {
		return result
	}
	result.PlantCode = parts[0]
	result.AreaCode = parts[1]

	if m := instrumentTagPattern.FindStringSubmatch(parts[2]); m != nil {
		result.ItemType = m[1]
		result.Sequence = m[2]
	} else {
		result.ItemType = parts[2]
	}
	return result
}

// ParseJBTag splits a tag like "PP01-601-IAJB0002" into plant, area, JB
// class and sequence.
func ParseJBTag(tag string) ParsedTag {
	result := ParsedTag{Raw: tag}

	parts := strings.Split(tag, "-")
	if len(parts) != 3 {
		return result
	}
	result.PlantCode = parts[0]
	result.AreaCode = parts[1]

	jbPart := parts[2]
	switch {
	case strings.HasPrefix(jbPart, "IAJB"):
		result.JBClass = string(types.JBAnalog)
		result.Sequence = jbPart[4:]
	case strings.HasPrefix(jbPart, "IDJB"):
		result.JBClass = string(types.JBDigital)
		result.Sequence = jbPart[4:]
	case strings.HasPrefix(jbPart, "IMJB"):
		result.JBClass = string(types.JBMixed)
		result.Sequence = jbPart[4:]
	default:
		result.ItemType = jbPart
	}
	return result
}
