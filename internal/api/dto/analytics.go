package dto

// DashboardResponse is the admin overview
type DashboardResponse struct {
	Metrics        DashboardMetrics       `json:"metrics"`
	BranchMetrics  []*BranchMetric        `json:"branch_metrics"`
	RecentActivity []*TransactionResponse `json:"recent_activity"`
}

type DashboardMetrics struct {
	TotalCustomers      int   `json:"total_customers"`
	TotalPointsIssued   int64 `json:"total_points_issued"`
	TotalPointsRedeemed int64 `json:"total_points_redeemed"`
	ActiveCampaigns     int   `json:"active_campaigns"`
}

// BranchMetric aggregates customers by their home branch
type BranchMetric struct {
	BranchID     string `json:"branch_id"`
	BranchName   string `json:"branch_name"`
	Customers    int    `json:"customers"`
	PointsIssued int64  `json:"points_issued"`
}
