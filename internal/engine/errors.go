package engine

import "fmt"

// SizingError reports that an instrument population does not fit the largest
// standard multipair cable. The caller should split across multiple junction
// boxes instead of retrying.
type SizingError struct {
	InstrumentCount   int
	RequiredWithSpare int
	MaxStandardSize   int
}

func (e *SizingError) Error() string {
	return fmt.Sprintf(
		"too many instruments (%d) for a single multipair cable: %d pairs required with spare, largest standard size is %d",
		e.InstrumentCount, e.RequiredWithSpare, e.MaxStandardSize)
}

// CapacityError reports that an instrument population does not fit one
// enclosure or terminal block. It carries the multi-enclosure remediation so
// the caller can re-invoke the multi-JB path.
type CapacityError struct {
	InstrumentCount int
	TotalNeeded     int
	MaxTerminals    int
	RecommendedJBs  int
	RecommendedSize JBSize
}

func (e *CapacityError) Error() string {
	if e.RecommendedJBs > 0 {
		return fmt.Sprintf(
			"too many instruments (%d) for a single enclosure (max %d terminals, %d needed): recommend %d x %s JBs (%d terminals each)",
			e.InstrumentCount, e.MaxTerminals, e.TotalNeeded,
			e.RecommendedJBs, e.RecommendedSize, e.RecommendedSize.Capacity())
	}
	return fmt.Sprintf(
		"too many instruments (%d) for a single terminal block (max %d, %d needed)",
		e.InstrumentCount, e.MaxTerminals, e.TotalNeeded)
}

// VendorError reports an unsupported vendor name. Nothing is allocated.
type VendorError struct {
	Vendor    string
	Available []string
}

func (e *VendorError) Error() string {
	return fmt.Sprintf("vendor %q not supported, available: %v", e.Vendor, e.Available)
}
