package types

// UserFilter narrows user listings
type UserFilter struct {
	*QueryFilter
	Role     *UserRole `json:"role,omitempty" form:"role"`
	BranchID *string   `json:"branch_id,omitempty" form:"branch_id"`
	IsActive *bool     `json:"is_active,omitempty" form:"is_active"`
}

func NewUserFilter() *UserFilter {
	return &UserFilter{QueryFilter: NewDefaultQueryFilter()}
}

func NewNoLimitUserFilter() *UserFilter {
	return &UserFilter{QueryFilter: &QueryFilter{}}
}

func (f *UserFilter) Validate() error {
	if f == nil || f.QueryFilter == nil {
		return nil
	}
	if f.Role != nil {
		if err := f.Role.Validate(); err != nil {
			return err
		}
	}
	return f.QueryFilter.Validate()
}

// TransactionFilter narrows points transaction listings. Results are always
// newest first.
type TransactionFilter struct {
	*QueryFilter
	CustomerID  string           `json:"customer_id,omitempty" form:"customer_id"`
	CustomerIDs []string         `json:"customer_ids,omitempty" form:"-"`
	Type        *TransactionType `json:"type,omitempty" form:"type"`
}

func NewTransactionFilter() *TransactionFilter {
	return &TransactionFilter{QueryFilter: NewDefaultQueryFilter()}
}

func (f *TransactionFilter) Validate() error {
	if f == nil {
		return nil
	}
	if f.Type != nil {
		if err := f.Type.Validate(); err != nil {
			return err
		}
	}
	if f.QueryFilter == nil {
		return nil
	}
	return f.QueryFilter.Validate()
}

// RuleFilter narrows rule listings
type RuleFilter struct {
	Category    string `json:"category,omitempty" form:"category"`
	ServiceType string `json:"service_type,omitempty" form:"service_type"`
	ActiveOnly  bool   `json:"active_only,omitempty" form:"active_only"`
}

// RewardFilter narrows reward listings
type RewardFilter struct {
	ActiveOnly bool `json:"active_only,omitempty" form:"active_only"`
}

// CampaignFilter narrows campaign listings
type CampaignFilter struct {
	Status *CampaignStatus `json:"status,omitempty" form:"status"`
}

// RedemptionFilter narrows redemption listings. Results are newest first.
type RedemptionFilter struct {
	*QueryFilter
	CustomerID string `json:"customer_id,omitempty" form:"customer_id"`
}

func NewRedemptionFilter() *RedemptionFilter {
	return &RedemptionFilter{QueryFilter: NewDefaultQueryFilter()}
}
