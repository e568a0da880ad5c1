package service

import (
	"sync/atomic"
	"testing"

	"github.com/cbo-rewards/loyalty/internal/domain/points"
	ierr "github.com/cbo-rewards/loyalty/internal/errors"
	"github.com/cbo-rewards/loyalty/internal/testutil"
	"github.com/cbo-rewards/loyalty/internal/types"
	"github.com/samber/lo"
	"github.com/sourcegraph/conc"
	"github.com/stretchr/testify/suite"
)

type LedgerServiceSuite struct {
	testutil.BaseServiceTestSuite
	service LedgerService
}

func TestLedgerService(t *testing.T) {
	suite.Run(t, new(LedgerServiceSuite))
}

func (s *LedgerServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewLedgerService(newTestServiceParams(&s.BaseServiceTestSuite))
}

func (s *LedgerServiceSuite) earn(customerID string, pts int64) *points.Transaction {
	return &points.Transaction{
		CustomerID:  customerID,
		Type:        types.TransactionTypeEarn,
		Points:      pts,
		Description: "test earn",
		Category:    "banking",
	}
}

func (s *LedgerServiceSuite) redeem(customerID string, pts int64) *points.Transaction {
	return &points.Transaction{
		CustomerID:  customerID,
		Type:        types.TransactionTypeRedeem,
		Points:      pts,
		Description: "test redeem",
		Category:    "lifestyle",
	}
}

func (s *LedgerServiceSuite) TestEarnThenRedeem() {
	customer, _ := s.CreateCustomer("abebe", 0)

	balance, err := s.service.ApplyTransaction(s.GetContext(), s.earn(customer.ID, 500))
	s.Require().NoError(err)
	s.Equal(int64(500), balance.TotalPoints)
	s.Equal(int64(500), balance.AvailablePoints)
	s.Equal(int64(500), balance.LifetimeEarned)

	balance, err = s.service.ApplyTransaction(s.GetContext(), s.redeem(customer.ID, 200))
	s.Require().NoError(err)
	s.Equal(int64(300), balance.TotalPoints)
	s.Equal(int64(300), balance.AvailablePoints)
	s.Equal(int64(500), balance.LifetimeEarned)
	s.Equal(int64(200), balance.LifetimeRedeemed)

	stored, err := s.GetStores().PointsRepo.GetPoints(s.GetContext(), customer.ID)
	s.Require().NoError(err)
	s.Equal(balance.AvailablePoints, stored.AvailablePoints)

	txs, err := s.GetStores().PointsRepo.ListTransactions(s.GetContext(), &types.TransactionFilter{CustomerID: customer.ID})
	s.Require().NoError(err)
	s.Len(txs, 2)
	for _, tx := range txs {
		s.NotEmpty(tx.ID)
		s.Equal(types.TransactionStatusCompleted, tx.Status)
	}
}

func (s *LedgerServiceSuite) TestRedeemMoreThanAvailable() {
	customer, _ := s.CreateCustomer("kebede", 100)

	_, err := s.service.ApplyTransaction(s.GetContext(), s.redeem(customer.ID, 150))
	s.Require().Error(err)
	s.True(ierr.IsInsufficientPoints(err))

	stored, err := s.GetStores().PointsRepo.GetPoints(s.GetContext(), customer.ID)
	s.Require().NoError(err)
	s.Equal(int64(100), stored.AvailablePoints)

	txs, err := s.GetStores().PointsRepo.ListTransactions(s.GetContext(), &types.TransactionFilter{CustomerID: customer.ID})
	s.Require().NoError(err)
	s.Empty(txs)
}

func (s *LedgerServiceSuite) TestUnknownCustomer() {
	_, err := s.service.ApplyTransaction(s.GetContext(), s.earn("usr_missing", 10))
	s.Require().Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *LedgerServiceSuite) TestRejectsInvalidTransaction() {
	customer, _ := s.CreateCustomer("almaz", 0)

	_, err := s.service.ApplyTransaction(s.GetContext(), s.earn(customer.ID, -5))
	s.True(ierr.IsValidation(err))

	_, err = s.service.ApplyTransaction(s.GetContext(), &points.Transaction{
		CustomerID: customer.ID,
		Type:       "adjust",
		Points:     5,
	})
	s.True(ierr.IsValidation(err))

	_, err = s.service.ApplyTransaction(s.GetContext(), nil)
	s.True(ierr.IsValidation(err))
}

func (s *LedgerServiceSuite) TestDuplicateIdempotencyKeyLeavesBalance() {
	customer, _ := s.CreateCustomer("tigist", 0)

	first := s.earn(customer.ID, 40)
	first.IdempotencyKey = lo.ToPtr("atm-1")
	_, err := s.service.ApplyTransaction(s.GetContext(), first)
	s.Require().NoError(err)

	second := s.earn(customer.ID, 40)
	second.IdempotencyKey = lo.ToPtr("atm-1")
	_, err = s.service.ApplyTransaction(s.GetContext(), second)
	s.Require().Error(err)
	s.True(ierr.IsAlreadyExists(err))

	stored, err := s.GetStores().PointsRepo.GetPoints(s.GetContext(), customer.ID)
	s.Require().NoError(err)
	s.Equal(int64(40), stored.AvailablePoints)
}

func (s *LedgerServiceSuite) TestConcurrentRedeemsNeverOverdraw() {
	customer, _ := s.CreateCustomer("dawit", 1000)

	var succeeded, rejected atomic.Int64
	var wg conc.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Go(func() {
			_, err := s.service.ApplyTransaction(s.GetContext(), s.redeem(customer.ID, 100))
			switch {
			case err == nil:
				succeeded.Add(1)
			case ierr.IsInsufficientPoints(err):
				rejected.Add(1)
			}
		})
	}
	wg.Wait()

	s.Equal(int64(10), succeeded.Load())
	s.Equal(int64(15), rejected.Load())

	stored, err := s.GetStores().PointsRepo.GetPoints(s.GetContext(), customer.ID)
	s.Require().NoError(err)
	s.Equal(int64(0), stored.AvailablePoints)
	s.Equal(int64(1000), stored.LifetimeRedeemed)
}

func (s *LedgerServiceSuite) TestConcurrentEarnsAllApplied() {
	customer, _ := s.CreateCustomer("hana", 0)

	var wg conc.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Go(func() {
			_, err := s.service.ApplyTransaction(s.GetContext(), s.earn(customer.ID, 3))
			s.NoError(err)
		})
	}
	wg.Wait()

	stored, err := s.GetStores().PointsRepo.GetPoints(s.GetContext(), customer.ID)
	s.Require().NoError(err)
	s.Equal(int64(150), stored.TotalPoints)
	s.Equal(int64(150), stored.LifetimeEarned)
}
