package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cbo-rewards/loyalty/internal/domain/points"
	"github.com/cbo-rewards/loyalty/internal/domain/reward"
	"github.com/cbo-rewards/loyalty/internal/domain/user"
	ierr "github.com/cbo-rewards/loyalty/internal/errors"
	"github.com/cbo-rewards/loyalty/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type MemoryStoreSuite struct {
	suite.Suite
	ctx context.Context
}

func TestMemoryStores(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *MemoryStoreSuite) TestReadsAreCopies() {
	store := NewRewardStore()
	rw := &reward.Reward{ID: "rwd_1", Name: "Mug", Cost: 50, Stock: 3, IsActive: true}
	s.Require().NoError(store.Create(s.ctx, rw))

	// mutating the caller's value or a read must not leak into the store
	rw.Stock = 99
	got, err := store.Get(s.ctx, "rwd_1")
	s.Require().NoError(err)
	s.Equal(int64(3), got.Stock)

	got.Stock = 0
	again, err := store.Get(s.ctx, "rwd_1")
	s.Require().NoError(err)
	s.Equal(int64(3), again.Stock)
}

func (s *MemoryStoreSuite) TestCreateGetDelete() {
	store := NewRewardStore()
	rw := &reward.Reward{ID: "rwd_1", Name: "Mug", Cost: 50, Stock: 3}
	s.Require().NoError(store.Create(s.ctx, rw))

	err := store.Create(s.ctx, rw)
	s.True(ierr.IsAlreadyExists(err))

	s.Require().NoError(store.Delete(s.ctx, "rwd_1"))
	_, err = store.Get(s.ctx, "rwd_1")
	s.True(ierr.IsNotFound(err))
	s.True(ierr.IsNotFound(store.Delete(s.ctx, "rwd_1")))
}

func (s *MemoryStoreSuite) TestDecrementStock() {
	store := NewRewardStore()
	s.Require().NoError(store.Create(s.ctx, &reward.Reward{ID: "rwd_last", Stock: 1}))
	s.Require().NoError(store.Create(s.ctx, &reward.Reward{ID: "rwd_unlimited", Stock: types.UnlimitedStock}))

	s.Require().NoError(store.DecrementStock(s.ctx, "rwd_last"))
	err := store.DecrementStock(s.ctx, "rwd_last")
	s.True(ierr.IsOutOfStock(err))

	last, err := store.Get(s.ctx, "rwd_last")
	s.Require().NoError(err)
	s.Zero(last.Stock)

	for i := 0; i < 3; i++ {
		s.Require().NoError(store.DecrementStock(s.ctx, "rwd_unlimited"))
	}
	unlimited, err := store.Get(s.ctx, "rwd_unlimited")
	s.Require().NoError(err)
	s.Equal(types.UnlimitedStock, unlimited.Stock)
}

func (s *MemoryStoreSuite) TestListRewardsByCost() {
	store := NewRewardStore()
	s.Require().NoError(store.Create(s.ctx, &reward.Reward{ID: "a", Name: "Flight", Cost: 5000, IsActive: true}))
	s.Require().NoError(store.Create(s.ctx, &reward.Reward{ID: "b", Name: "Mug", Cost: 50, IsActive: true}))
	s.Require().NoError(store.Create(s.ctx, &reward.Reward{ID: "c", Name: "Retired", Cost: 10, IsActive: false}))

	all, err := store.List(s.ctx, nil)
	s.Require().NoError(err)
	s.Equal([]string{"c", "b", "a"}, lo.Map(all, func(r *reward.Reward, _ int) string { return r.ID }))

	active, err := store.List(s.ctx, &types.RewardFilter{ActiveOnly: true})
	s.Require().NoError(err)
	s.Len(active, 2)
}

func (s *MemoryStoreSuite) TestUsernameAndEmailAreUnique() {
	store := NewUserStore()
	s.Require().NoError(store.Create(s.ctx, &user.User{ID: "usr_1", Username: "abebe", Email: "abebe@example.et"}))

	err := store.Create(s.ctx, &user.User{ID: "usr_2", Username: "ABEBE", Email: "other@example.et"})
	s.True(ierr.IsAlreadyExists(err))

	err = store.Create(s.ctx, &user.User{ID: "usr_3", Username: "kebede", Email: "Abebe@Example.et"})
	s.True(ierr.IsAlreadyExists(err))

	found, err := store.GetByUsername(s.ctx, "Abebe")
	s.Require().NoError(err)
	s.Equal("usr_1", found.ID)
}

func (s *MemoryStoreSuite) TestTransactionsNewestFirstWithPaging() {
	store := NewPointsStore()
	base := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		s.Require().NoError(store.CreateTransaction(s.ctx, &points.Transaction{
			ID:         fmt.Sprintf("txn_%d", i),
			CustomerID: "usr_1",
			Type:       types.TransactionTypeEarn,
			Points:     int64(10 * (i + 1)),
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}))
	}

	filter := types.NewTransactionFilter()
	filter.CustomerID = "usr_1"
	filter.Limit = lo.ToPtr(2)
	filter.Offset = lo.ToPtr(1)

	page, err := store.ListTransactions(s.ctx, filter)
	s.Require().NoError(err)
	s.Equal([]string{"txn_3", "txn_2"}, lo.Map(page, func(t *points.Transaction, _ int) string { return t.ID }))

	filter.Offset = lo.ToPtr(10)
	page, err = store.ListTransactions(s.ctx, filter)
	s.Require().NoError(err)
	s.Empty(page)
}

func (s *MemoryStoreSuite) TestIdempotencyKeyIsPerCustomer() {
	store := NewPointsStore()
	tx := &points.Transaction{
		ID:             "txn_1",
		CustomerID:     "usr_1",
		Type:           types.TransactionTypeEarn,
		Points:         10,
		IdempotencyKey: lo.ToPtr("core-1"),
	}
	s.Require().NoError(store.CreateTransaction(s.ctx, tx))

	dup := *tx
	dup.ID = "txn_2"
	s.True(ierr.IsAlreadyExists(store.CreateTransaction(s.ctx, &dup)))

	other := *tx
	other.ID = "txn_3"
	other.CustomerID = "usr_2"
	s.Require().NoError(store.CreateTransaction(s.ctx, &other))

	found, err := store.GetTransactionByIdempotencyKey(s.ctx, "usr_1", "core-1")
	s.Require().NoError(err)
	s.Equal("txn_1", found.ID)
}

func (s *MemoryStoreSuite) TestSumTransactionPointsByType() {
	store := NewPointsStore()
	add := func(id, customer string, typ types.TransactionType, pts int64) {
		s.Require().NoError(store.CreateTransaction(s.ctx, &points.Transaction{
			ID: id, CustomerID: customer, Type: typ, Points: pts,
		}))
	}
	add("t1", "usr_1", types.TransactionTypeEarn, 100)
	add("t2", "usr_1", types.TransactionTypeRedeem, 40)
	add("t3", "usr_2", types.TransactionTypeEarn, 25)

	earned, err := store.SumTransactionPoints(s.ctx, &types.TransactionFilter{Type: lo.ToPtr(types.TransactionTypeEarn)})
	s.Require().NoError(err)
	s.Equal(int64(125), earned)

	mine, err := store.SumTransactionPoints(s.ctx, &types.TransactionFilter{CustomerID: "usr_1"})
	s.Require().NoError(err)
	s.Equal(int64(140), mine)
}
