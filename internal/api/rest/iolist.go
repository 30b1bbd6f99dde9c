package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/icsuite/wireplan/internal/engine"
	"github.com/icsuite/wireplan/internal/ingest"
	"github.com/icsuite/wireplan/internal/types"
)

// POST /api/v1/iolist/summary
func (s *Server) summarizeIOList(c *gin.Context) {
	var req struct {
		Instruments  []instrumentRow `json:"instruments" binding:"required,min=1,dive"`
		SparePercent *float64        `json:"spare_percent"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrCodeBadRequest, err.Error(), nil))
		return
	}

	instruments := toInstruments(req.Instruments)
	summary := engine.Summarize(instruments, s.sparePercentOrDefault(req.SparePercent))

	c.JSON(http.StatusOK, gin.H{
		"summary":     summary,
		"instruments": instruments,
	})
}

// POST /api/v1/iolist/upload
func (s *Server) uploadIOList(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(
			types.ErrCodeBadRequest, "missing file upload: "+err.Error(), nil))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(
			types.ErrCodeBadRequest, "failed to open upload: "+err.Error(), nil))
		return
	}
	defer file.Close()

	instruments, err := ingest.ReadIOList(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(
			types.ErrCodeBadRequest, err.Error(), nil))
		return
	}

	uploadID := uuid.New().String()
	s.logger.Info("I/O list uploaded",
		zap.String("upload_id", uploadID),
		zap.String("filename", fileHeader.Filename),
		zap.Int("instruments", len(instruments)),
	)

	c.JSON(http.StatusOK, gin.H{
		"upload_id":   uploadID,
		"filename":    fileHeader.Filename,
		"count":       len(instruments),
		"instruments": instruments,
		"summary":     engine.Summarize(instruments, s.cfg.Engine.SparePercent),
	})
}
