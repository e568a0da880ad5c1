package service

import (
	"testing"
	"time"

	"github.com/cbo-rewards/loyalty/internal/api/dto"
	"github.com/cbo-rewards/loyalty/internal/domain/user"
	"github.com/cbo-rewards/loyalty/internal/testutil"
	"github.com/cbo-rewards/loyalty/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type AnalyticsServiceSuite struct {
	testutil.BaseServiceTestSuite
	params ServiceParams
}

func TestAnalyticsService(t *testing.T) {
	suite.Run(t, new(AnalyticsServiceSuite))
}

func (s *AnalyticsServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.params = newTestServiceParams(&s.BaseServiceTestSuite)
}

func (s *AnalyticsServiceSuite) customerAt(username, branchID string) *user.User {
	u, _ := s.CreateCustomer(username, 0)
	u.BranchID = lo.ToPtr(branchID)
	s.Require().NoError(s.GetStores().UserRepo.Update(s.GetContext(), u))
	return u
}

func (s *AnalyticsServiceSuite) TestEmptyDashboard() {
	resp, err := NewAnalyticsService(s.params).GetDashboard(s.GetContext())
	s.Require().NoError(err)
	s.Zero(resp.Metrics.TotalCustomers)
	s.Zero(resp.Metrics.TotalPointsIssued)
	s.Empty(resp.BranchMetrics)
	s.Empty(resp.RecentActivity)
}

func (s *AnalyticsServiceSuite) TestDashboard() {
	branches := NewBranchService(s.params)
	bole, err := branches.CreateBranch(s.GetContext(), &dto.CreateBranchRequest{Name: "Bole", Code: "BOL"})
	s.Require().NoError(err)
	empty, err := branches.CreateBranch(s.GetContext(), &dto.CreateBranchRequest{Name: "Arada", Code: "ARD"})
	s.Require().NoError(err)

	a := s.customerAt("kal", bole.ID)
	b := s.customerAt("mimi", bole.ID)
	s.CreateCustomer("walkin", 0)

	s.CreateActionRule("digital", "app_login", 100, nil)
	earn := NewEarnService(s.params)
	for _, id := range []string{a.ID, a.ID, b.ID} {
		_, err := earn.EarnPoints(s.GetContext(), &dto.EarnPointsRequest{
			CustomerID:  id,
			Category:    "digital",
			ServiceType: "app_login",
		})
		s.Require().NoError(err)
	}

	rw := s.CreateReward("Mug", types.RewardTypeService, 50, types.UnlimitedStock, true)
	_, err = NewRedemptionService(s.params).Redeem(s.GetContext(), a.ID, rw.ID)
	s.Require().NoError(err)

	now := s.GetNow()
	_, err = NewCampaignService(s.params).CreateCampaign(s.GetContext(), &dto.CreateCampaignRequest{
		Name:      "Launch",
		Type:      "bonus",
		StartDate: now.Add(-time.Hour),
		EndDate:   now.Add(time.Hour),
		Budget:    lo.ToPtr(decimal.NewFromInt(1000)),
	})
	s.Require().NoError(err)

	resp, err := NewAnalyticsService(s.params).GetDashboard(s.GetContext())
	s.Require().NoError(err)

	s.Equal(3, resp.Metrics.TotalCustomers)
	s.Equal(int64(300), resp.Metrics.TotalPointsIssued)
	s.Equal(int64(50), resp.Metrics.TotalPointsRedeemed)
	s.Equal(1, resp.Metrics.ActiveCampaigns)
	s.Len(resp.RecentActivity, 4)

	byBranch := lo.KeyBy(resp.BranchMetrics, func(m *dto.BranchMetric) string { return m.BranchID })
	s.Equal(2, byBranch[bole.ID].Customers)
	s.Equal(int64(300), byBranch[bole.ID].PointsIssued)
	s.Equal(0, byBranch[empty.ID].Customers)
	s.Zero(byBranch[empty.ID].PointsIssued)
}
