package types

import (
	ierr "github.com/cbo-rewards/loyalty/internal/errors"
	"github.com/samber/lo"
)

const (
	// DefaultHistoryLimit is used when a history query does not name a limit
	DefaultHistoryLimit = 50
	// MaxQueryLimit bounds every list query
	MaxQueryLimit = 1000
)

// QueryFilter represents a generic query filter with optional fields
type QueryFilter struct {
	Limit  *int `json:"limit,omitempty" form:"limit"`
	Offset *int `json:"offset,omitempty" form:"offset"`
}

// DefaultQueryFilter defines default values for query filters
var DefaultQueryFilter = QueryFilter{
	Limit:  lo.ToPtr(DefaultHistoryLimit),
	Offset: lo.ToPtr(0),
}

// NewDefaultQueryFilter returns a fresh copy of the default filter
func NewDefaultQueryFilter() *QueryFilter {
	return &QueryFilter{
		Limit:  lo.ToPtr(*DefaultQueryFilter.Limit),
		Offset: lo.ToPtr(*DefaultQueryFilter.Offset),
	}
}

// GetLimit returns the limit value or default if not set
func (f QueryFilter) GetLimit() int {
	if f.Limit == nil {
		return *DefaultQueryFilter.Limit
	}
	return *f.Limit
}

// GetOffset returns the offset value or default if not set
func (f QueryFilter) GetOffset() int {
	if f.Offset == nil {
		return *DefaultQueryFilter.Offset
	}
	return *f.Offset
}

func (f QueryFilter) Validate() error {
	if f.Limit != nil && (*f.Limit <= 0 || *f.Limit > MaxQueryLimit) {
		return ierr.NewError("invalid limit").
			WithHintf("Limit must be between 1 and %d", MaxQueryLimit).
			Mark(ierr.ErrValidation)
	}
	if f.Offset != nil && *f.Offset < 0 {
		return ierr.NewError("invalid offset").
			WithHint("Offset must not be negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// IsUnlimited reports whether the filter was built without a limit
func (f QueryFilter) IsUnlimited() bool {
	return f.Limit == nil
}
