package types

// API error codes surfaced by the REST layer.
const (
	ErrCodeBadRequest    = "bad_request"
	ErrCodeCapacity      = "capacity_exceeded"
	ErrCodeCableSizing   = "cable_sizing"
	ErrCodeVendorUnknown = "vendor_unsupported"
	ErrCodeInternal      = "internal"
)

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// NewErrorResponse builds a consistent API error payload.
func NewErrorResponse(code, message string, details any) ErrorResponse {
	return ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}
