package errors

// ErrorResponse is the envelope every failed API call returns
type ErrorResponse struct {
	Success   bool        `json:"success"`
	RequestID string      `json:"request_id,omitempty"`
	Error     ErrorDetail `json:"error"`
}

// ErrorDetail carries the stable code clients switch on, the hint shown to
// the customer and any reportable details such as a points shortfall
type ErrorDetail struct {
	Code    string         `json:"code"`
	Display string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
