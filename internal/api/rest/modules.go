package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/icsuite/wireplan/internal/types"
)

// GET /api/v1/catalog/vendors
func (s *Server) listVendors(c *gin.Context) {
	vendors := s.catalog.Vendors()

	c.JSON(http.StatusOK, gin.H{
		"vendors": vendors,
		"count":   len(vendors),
	})
}

// GET /api/v1/catalog/vendors/:vendor
func (s *Server) getVendorModules(c *gin.Context) {
	vendor := c.Param("vendor")

	if !s.catalog.VendorSupported(vendor) {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(
			types.ErrCodeVendorUnknown, "vendor not found: "+vendor, gin.H{
				"available": s.catalog.Vendors(),
			}))
		return
	}

	grouped := s.catalog.AllModules(vendor)

	systems := make(gin.H, len(grouped))
	total := 0
	for system, modules := range grouped {
		densities := make(map[types.IOType]int, len(types.AllIOTypes))
		for _, ioType := range types.AllIOTypes {
			densities[ioType] = s.catalog.ChannelDensity(vendor, system, ioType)
		}
		systems[string(system)] = gin.H{
			"modules":         modules,
			"channel_density": densities,
		}
		total += len(modules)
	}

	c.JSON(http.StatusOK, gin.H{
		"vendor":       vendor,
		"systems":      systems,
		"module_count": total,
	})
}
