package service

import (
	"context"
	"testing"

	"github.com/cbo-rewards/loyalty/internal/api/dto"
	"github.com/cbo-rewards/loyalty/internal/domain/points"
	ierr "github.com/cbo-rewards/loyalty/internal/errors"
	"github.com/cbo-rewards/loyalty/internal/testutil"
	"github.com/cbo-rewards/loyalty/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type UserServiceSuite struct {
	testutil.BaseServiceTestSuite
	service UserService
	ledger  LedgerService
}

func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceSuite))
}

func (s *UserServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	params := newTestServiceParams(&s.BaseServiceTestSuite)
	s.service = NewUserService(params)
	s.ledger = NewLedgerService(params)
}

func (s *UserServiceSuite) TestRegisterCustomer() {
	resp, err := s.service.RegisterCustomer(s.GetContext(), &dto.RegisterCustomerRequest{
		Username:  "gelila",
		Email:     "Gelila@Example.com",
		FirstName: "Gelila",
		LastName:  "Tesfaye",
	})
	s.Require().NoError(err)
	s.Equal("gelila@example.com", resp.User.Email)
	s.Equal(types.UserRoleCustomer, resp.User.Role)
	s.Equal("Gelila Tesfaye", resp.User.FullName)
	s.Zero(resp.Points.AvailablePoints)

	balance, err := s.service.CheckBalance(s.GetContext(), resp.User.ID)
	s.Require().NoError(err)
	s.Zero(balance.Points.TotalPoints)
	s.Nil(balance.Tier)

	s.Len(s.GetPublisher().Events(types.EventCustomerRegistered), 1)

	_, err = s.service.RegisterCustomer(s.GetContext(), &dto.RegisterCustomerRequest{
		Username:  "gelila",
		Email:     "other@example.com",
		FirstName: "G",
		LastName:  "T",
	})
	s.True(ierr.IsAlreadyExists(err))
}

func (s *UserServiceSuite) TestRegisterWithUnknownBranch() {
	_, err := s.service.RegisterCustomer(s.GetContext(), &dto.RegisterCustomerRequest{
		Username:  "nahom",
		Email:     "nahom@example.com",
		FirstName: "Nahom",
		LastName:  "Girma",
		BranchID:  lo.ToPtr("br_missing"),
	})
	s.True(ierr.IsNotFound(err))
}

func (s *UserServiceSuite) TestCreateStaff() {
	_, err := s.service.CreateStaff(s.GetContext(), &dto.CreateStaffRequest{
		Username:  "manager1",
		Email:     "manager1@example.com",
		FirstName: "Branch",
		LastName:  "Manager",
		Role:      types.UserRoleBranchManager,
	})
	s.True(ierr.IsValidation(err))

	_, err = s.service.CreateStaff(s.GetContext(), &dto.CreateStaffRequest{
		Username:  "customer1",
		Email:     "customer1@example.com",
		FirstName: "Not",
		LastName:  "Staff",
		Role:      types.UserRoleCustomer,
	})
	s.True(ierr.IsValidation(err))

	admin, err := s.service.CreateStaff(s.GetContext(), &dto.CreateStaffRequest{
		Username:  "admin1",
		Email:     "admin1@example.com",
		FirstName: "Head",
		LastName:  "Office",
		Role:      types.UserRoleAdmin,
	})
	s.Require().NoError(err)
	s.Equal(types.UserRoleAdmin, admin.Role)
}

func (s *UserServiceSuite) TestGetUserInfo() {
	customer, _ := s.CreateCustomer("bruk", 0)

	ctx := types.SetUserID(s.GetContext(), customer.ID)
	info, err := s.service.GetUserInfo(ctx)
	s.Require().NoError(err)
	s.Equal(customer.ID, info.ID)

	_, err = s.service.GetUserInfo(context.Background())
	s.True(ierr.Is(err, ierr.ErrUnauthenticated))
}

func (s *UserServiceSuite) TestCheckBalanceTierProgress() {
	customer, _ := s.CreateCustomer("sara", 6000)
	silver := s.CreateTier("Silver", 0, "1")
	s.CreateTier("Gold", 5000, "1.5")
	platinum := s.CreateTier("Platinum", 20000, "2")
	s.AssignTier(customer.ID, silver.ID)

	balance, err := s.service.CheckBalance(s.GetContext(), customer.ID)
	s.Require().NoError(err)
	s.Equal("Silver", balance.Tier.Name)
	s.Require().NotNil(balance.NextTier)
	s.Equal(platinum.ID, balance.NextTier.ID)
	s.Equal(int64(14000), *balance.PointsToNextTier)

	_, err = s.service.CheckBalance(s.GetContext(), "usr_missing")
	s.True(ierr.IsNotFound(err))
}

func (s *UserServiceSuite) TestHistory() {
	customer, _ := s.CreateCustomer("tsion", 0)

	history, err := s.service.GetHistory(s.GetContext(), customer.ID, nil)
	s.Require().NoError(err)
	s.NotNil(history.Items)
	s.Empty(history.Items)

	for i := 0; i < 3; i++ {
		_, err := s.ledger.ApplyTransaction(s.GetContext(), &points.Transaction{
			CustomerID: customer.ID,
			Type:       types.TransactionTypeEarn,
			Points:     int64(10 * (i + 1)),
		})
		s.Require().NoError(err)
	}

	filter := types.NewTransactionFilter()
	filter.Limit = lo.ToPtr(2)
	history, err = s.service.GetHistory(s.GetContext(), customer.ID, filter)
	s.Require().NoError(err)
	s.Len(history.Items, 2)
	s.False(history.Items[0].CreatedAt.Before(history.Items[1].CreatedAt))

	_, err = s.service.GetHistory(s.GetContext(), "usr_missing", nil)
	s.True(ierr.IsNotFound(err))
}

func (s *UserServiceSuite) TestListCustomers() {
	gold := s.CreateTier("Gold", 5000, "1.5")
	withTier, _ := s.CreateCustomer("aster", 7000)
	s.CreateCustomer("bereket", 120)
	s.AssignTier(withTier.ID, gold.ID)

	_, err := s.service.CreateStaff(s.GetContext(), &dto.CreateStaffRequest{
		Username:  "admin2",
		Email:     "admin2@example.com",
		FirstName: "Head",
		LastName:  "Office",
		Role:      types.UserRoleAdmin,
	})
	s.Require().NoError(err)

	list, err := s.service.ListCustomers(s.GetContext(), nil)
	s.Require().NoError(err)
	s.Len(list.Items, 2)

	byName := lo.KeyBy(list.Items, func(c *dto.CustomerResponse) string { return c.Username })
	s.Equal("Gold", byName["aster"].TierName)
	s.Equal(int64(7000), byName["aster"].Points)
	s.Equal(defaultTierName, byName["bereket"].TierName)
}
