package rest

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/icsuite/wireplan/internal/engine"
	"github.com/icsuite/wireplan/internal/types"
)

// sizeCablesForAllocation sizes branch and multipair cables for every
// junction box in one category's allocation. Slices follow the plan split,
// so cable pair totals line up with the allocated enclosures.
func sizeCablesForAllocation(auto *engine.AutoAllocation, instruments []types.Instrument, cabinetTag string, sparePercent float64, category types.SignalCategory) ([]*engine.CableSizingResult, error) {
	results := make([]*engine.CableSizingResult, 0, len(auto.MultiJB.JunctionBoxes))

	start := 0
	for i, count := range auto.MultiJB.Plan.InstrumentsPerJB {
		slice := instruments[start : start+count]
		start += count

		jb := auto.MultiJB.JunctionBoxes[i]
		result, err := engine.SizeCablesForJB(slice, jb.Tag, cabinetTag, jb.MultipairCableTag, sparePercent, category)
		if err != nil {
			return nil, fmt.Errorf("junction box %s: %w", jb.Tag, err)
		}
		results = append(results, result)
	}
	return results, nil
}

// POST /api/v1/allocations/junction-boxes
func (s *Server) allocateJunctionBoxes(c *gin.Context) {
	var req struct {
		Instruments  []instrumentRow `json:"instruments" binding:"required,min=1,dive"`
		SparePercent *float64        `json:"spare_percent"`
		PlantCode    string          `json:"plant_code"`
		AreaCode     string          `json:"area_code"`
		JBSize       string          `json:"jb_size"`
		CabinetTag   string          `json:"cabinet_tag"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrCodeBadRequest, err.Error(), nil))
		return
	}

	sparePercent := s.sparePercentOrDefault(req.SparePercent)

	tagCfg := s.cfg.Tags
	if req.PlantCode != "" {
		tagCfg.PlantCode = req.PlantCode
	}
	if req.AreaCode != "" {
		tagCfg.AreaCode = req.AreaCode
	}
	gen := engine.NewTagGenerator(tagCfg)

	preferred := engine.JBSize(req.JBSize)
	switch preferred {
	case "", engine.JBSmall, engine.JBStandard, engine.JBLarge:
	default:
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(
			types.ErrCodeBadRequest, fmt.Sprintf("unknown jb_size %q", req.JBSize), nil))
		return
	}

	instruments := toInstruments(req.Instruments)

	cabinetTag := req.CabinetTag
	if cabinetTag == "" {
		cabinetTag = fmt.Sprintf("%s-%s-MC001", tagCfg.PlantCode, tagCfg.AreaCode)
	}

	// Base tags advance the sequences only for categories that exist.
	analogInsts, digitalInsts := engine.SplitBySignalCategory(instruments)
	var analogTags, digitalTags engine.SegregationTags
	if len(analogInsts) > 0 {
		analogTags.JBTag = gen.JBTag(types.JBAnalog)
		analogTags.CableTag = gen.MultipairCableTag()
		analogTags.TBTag = gen.TerminalBlockTag(analogTags.CableTag)
	}
	if len(digitalInsts) > 0 {
		digitalTags.JBTag = gen.JBTag(types.JBDigital)
		digitalTags.CableTag = gen.MultipairCableTag()
		digitalTags.TBTag = gen.TerminalBlockTag(digitalTags.CableTag)
	}

	result, err := engine.AllocateBySignalType(instruments, analogTags, digitalTags, cabinetTag, sparePercent, preferred)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	response := gin.H{
		"run_id":        uuid.New().String(),
		"spare_percent": sparePercent,
		"cabinet_tag":   cabinetTag,
		"assignments":   result.Assignments(),
		"summary":       engine.Summarize(instruments, sparePercent),
	}

	if result.Analog != nil {
		cables, err := sizeCablesForAllocation(result.Analog, result.AnalogInstruments, cabinetTag, sparePercent, types.CategoryAnalog)
		if err != nil {
			respondEngineError(c, err)
			return
		}
		response["analog"] = gin.H{"allocation": result.Analog, "cables": cables}
	}
	if result.Digital != nil {
		cables, err := sizeCablesForAllocation(result.Digital, result.DigitalInstruments, cabinetTag, sparePercent, types.CategoryDigital)
		if err != nil {
			respondEngineError(c, err)
			return
		}
		response["digital"] = gin.H{"allocation": result.Digital, "cables": cables}
	}

	s.logger.Info("Junction box allocation completed",
		zap.String("run_id", response["run_id"].(string)),
		zap.Int("instruments", len(instruments)),
		zap.Int("junction_boxes", len(result.AllJBs())),
	)

	c.JSON(http.StatusOK, response)
}

// POST /api/v1/allocations/io-cards
func (s *Server) allocateIOCards(c *gin.Context) {
	var req struct {
		Instruments    []instrumentRow    `json:"instruments" binding:"required,min=1,dive"`
		Vendor         string             `json:"vendor"`
		SparePercent   *float64           `json:"spare_percent"`
		SystemOverride string             `json:"system_override"`
		CustomRules    *types.CustomRules `json:"custom_rules"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrCodeBadRequest, err.Error(), nil))
		return
	}

	vendor := req.Vendor
	if vendor == "" {
		vendor = s.cfg.Engine.Vendor
	}
	sparePercent := s.sparePercentOrDefault(req.SparePercent)

	allocator, err := engine.NewAllocator(s.catalog, vendor, sparePercent)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	if req.CustomRules != nil {
		allocator.SetCustomRules(req.CustomRules)
	}

	instruments := toInstruments(req.Instruments)
	result := allocator.Allocate(instruments, req.SystemOverride)

	runID := uuid.New().String()
	s.logger.Info("I/O card allocation completed",
		zap.String("run_id", runID),
		zap.String("vendor", vendor),
		zap.Int("instruments", len(instruments)),
		zap.Int("cards", result.TotalCards()),
	)

	c.JSON(http.StatusOK, gin.H{
		"run_id":     runID,
		"vendor":     vendor,
		"allocation": result,
	})
}
