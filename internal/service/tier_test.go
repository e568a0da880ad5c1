package service

import (
	"testing"

	"github.com/cbo-rewards/loyalty/internal/api/dto"
	ierr "github.com/cbo-rewards/loyalty/internal/errors"
	"github.com/cbo-rewards/loyalty/internal/testutil"
	"github.com/cbo-rewards/loyalty/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type TierServiceSuite struct {
	testutil.BaseServiceTestSuite
	service TierService
}

func TestTierService(t *testing.T) {
	suite.Run(t, new(TierServiceSuite))
}

func (s *TierServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewTierService(newTestServiceParams(&s.BaseServiceTestSuite))
}

func (s *TierServiceSuite) TestCurrentTierWithoutAssignment() {
	customer, _ := s.CreateCustomer("abel", 100000)
	s.CreateTier("Gold", 5000, "1.5")

	current, err := s.service.CurrentTier(s.GetContext(), customer.ID)
	s.Require().NoError(err)
	s.Nil(current)
}

func (s *TierServiceSuite) TestAssignmentIsAuthoritative() {
	customer, _ := s.CreateCustomer("mahlet", 0)
	platinum := s.CreateTier("Platinum", 20000, "2")

	resp, err := s.service.UpdateCustomerTier(s.GetContext(), customer.ID, &dto.UpdateCustomerTierRequest{TierID: platinum.ID})
	s.Require().NoError(err)
	s.Equal(platinum.ID, resp.Assignment.TierID)

	current, err := s.service.CurrentTier(s.GetContext(), customer.ID)
	s.Require().NoError(err)
	s.Require().NotNil(current)
	s.Equal("Platinum", current.Name)

	changed := s.GetPublisher().Events(types.EventCustomerTierChanged)
	s.Require().Len(changed, 1)
	s.Equal(platinum.ID, changed[0].Properties["tier_id"])
}

func (s *TierServiceSuite) TestPromoteCustomer() {
	customer, _ := s.CreateCustomer("samuel", 12000)
	silver := s.CreateTier("Silver", 0, "1")
	gold := s.CreateTier("Gold", 5000, "1.5")
	s.CreateTier("Platinum", 20000, "2")
	s.AssignTier(customer.ID, silver.ID)

	resp, err := s.service.PromoteCustomer(s.GetContext(), customer.ID)
	s.Require().NoError(err)
	s.Equal(gold.ID, resp.Assignment.TierID)

	// already on the right tier
	_, err = s.service.PromoteCustomer(s.GetContext(), customer.ID)
	s.Require().NoError(err)
	s.Len(s.GetPublisher().Events(types.EventCustomerTierChanged), 1)
}

func (s *TierServiceSuite) TestPromoteWithoutReachableTier() {
	customer, _ := s.CreateCustomer("ruta", 10)
	s.CreateTier("Gold", 5000, "1.5")

	_, err := s.service.PromoteCustomer(s.GetContext(), customer.ID)
	s.True(ierr.IsNotFound(err))
}

func (s *TierServiceSuite) TestThresholdsAreUnique() {
	_, err := s.service.CreateTier(s.GetContext(), &dto.CreateTierRequest{
		Name:          "Gold",
		MinimumPoints: 5000,
		Multiplier:    decimal.RequireFromString("1.5"),
	})
	s.Require().NoError(err)

	_, err = s.service.CreateTier(s.GetContext(), &dto.CreateTierRequest{
		Name:          "Gold Plus",
		MinimumPoints: 5000,
		Multiplier:    decimal.RequireFromString("1.75"),
	})
	s.True(ierr.IsValidation(err))
}

func (s *TierServiceSuite) TestUpdateTierInvalidatesCache() {
	customer, _ := s.CreateCustomer("kidist", 0)
	gold := s.CreateTier("Gold", 5000, "1.5")
	s.AssignTier(customer.ID, gold.ID)

	current, err := s.service.CurrentTier(s.GetContext(), customer.ID)
	s.Require().NoError(err)
	s.True(current.Multiplier.Equal(decimal.RequireFromString("1.5")))

	_, err = s.service.UpdateTier(s.GetContext(), gold.ID, &dto.UpdateTierRequest{
		Multiplier: lo.ToPtr(decimal.RequireFromString("1.6")),
	})
	s.Require().NoError(err)

	current, err = s.service.CurrentTier(s.GetContext(), customer.ID)
	s.Require().NoError(err)
	s.True(current.Multiplier.Equal(decimal.RequireFromString("1.6")))
}

func (s *TierServiceSuite) TestDeleteTier() {
	customer, _ := s.CreateCustomer("feven", 0)
	gold := s.CreateTier("Gold", 5000, "1.5")
	bronze := s.CreateTier("Bronze", 100, "1.1")
	s.AssignTier(customer.ID, gold.ID)

	err := s.service.DeleteTier(s.GetContext(), gold.ID)
	s.True(ierr.IsInvalidOperation(err))

	s.Require().NoError(s.service.DeleteTier(s.GetContext(), bronze.ID))
	list, err := s.service.ListTiers(s.GetContext(), false)
	s.Require().NoError(err)
	s.Len(list.Tiers, 1)
}
