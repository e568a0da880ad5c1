package dto

import "fmt"

// SuccessResponse acknowledges a write that has nothing else to return
type SuccessResponse struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

func NewDeletedResponse(entity, id string) SuccessResponse {
	return SuccessResponse{
		Message: fmt.Sprintf("%s deleted successfully", entity),
		ID:      id,
	}
}
