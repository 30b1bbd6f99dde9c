package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/icsuite/wireplan/internal/engine"
	"github.com/icsuite/wireplan/internal/ingest"
	"github.com/icsuite/wireplan/internal/types"
)

// instrumentRow is one I/O list row as posted by clients.
type instrumentRow struct {
	Tag     string `json:"tag" binding:"required"`
	Type    string `json:"type"`
	Service string `json:"service"`
	Area    string `json:"area"`
	IOType  string `json:"io_type"`
	Loop    string `json:"loop"`
	PIDRef  string `json:"pid_ref"`
	Remarks string `json:"remarks"`
}

// toInstruments classifies posted rows into engine instruments.
func toInstruments(rows []instrumentRow) []types.Instrument {
	instruments := make([]types.Instrument, 0, len(rows))
	for _, row := range rows {
		inst := ingest.NewInstrument(row.Tag, row.Type, row.Service, row.Area, row.IOType, row.Loop)
		inst.PIDRef = row.PIDRef
		inst.Remarks = row.Remarks
		instruments = append(instruments, inst)
	}
	return instruments
}

// sparePercentOrDefault resolves the request spare margin against the
// configured default.
func (s *Server) sparePercentOrDefault(requested *float64) float64 {
	if requested != nil {
		return *requested
	}
	return s.cfg.Engine.SparePercent
}

// respondEngineError maps engine errors onto API status codes: capacity and
// sizing problems are unprocessable input, an unknown vendor is a bad
// request.
func respondEngineError(c *gin.Context, err error) {
	var capacityErr *engine.CapacityError
	if errors.As(err, &capacityErr) {
		c.JSON(http.StatusUnprocessableEntity, types.NewErrorResponse(
			types.ErrCodeCapacity, capacityErr.Error(), gin.H{
				"instrument_count": capacityErr.InstrumentCount,
				"total_needed":     capacityErr.TotalNeeded,
				"max_terminals":    capacityErr.MaxTerminals,
				"recommended_jbs":  capacityErr.RecommendedJBs,
				"recommended_size": capacityErr.RecommendedSize,
			}))
		return
	}

	var sizingErr *engine.SizingError
	if errors.As(err, &sizingErr) {
		c.JSON(http.StatusUnprocessableEntity, types.NewErrorResponse(
			types.ErrCodeCableSizing, sizingErr.Error(), gin.H{
				"instrument_count":    sizingErr.InstrumentCount,
				"required_with_spare": sizingErr.RequiredWithSpare,
				"max_standard_size":   sizingErr.MaxStandardSize,
			}))
		return
	}

	var vendorErr *engine.VendorError
	if errors.As(err, &vendorErr) {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(
			types.ErrCodeVendorUnknown, vendorErr.Error(), gin.H{
				"vendor":    vendorErr.Vendor,
				"available": vendorErr.Available,
			}))
		return
	}

	c.JSON(http.StatusInternalServerError, types.NewErrorResponse(
		types.ErrCodeInternal, err.Error(), nil))
}
