package service

import (
	"context"
	"time"

	"github.com/cbo-rewards/loyalty/internal/domain/points"
	ierr "github.com/cbo-rewards/loyalty/internal/errors"
	"github.com/cbo-rewards/loyalty/internal/types"
)

// LedgerService is the only writer of points balances. Every change is
// recorded as a Transaction in the same unit of work as the balance update.
type LedgerService interface {
	// ApplyTransaction records tx and moves the customer's balance by its
	// points, serialised per customer
	ApplyTransaction(ctx context.Context, tx *points.Transaction) (*points.Points, error)
}

type ledgerService struct {
	ServiceParams
}

func NewLedgerService(params ServiceParams) LedgerService {
	return &ledgerService{ServiceParams: params}
}

func customerLockKey(customerID string) string {
	return "points:" + customerID
}

func rewardLockKey(rewardID string) string {
	return "reward:" + rewardID
}

func (s *ledgerService) ApplyTransaction(ctx context.Context, tx *points.Transaction) (*points.Points, error) {
	if tx == nil {
		return nil, ierr.NewError("transaction is required").
			WithHint("Transaction is required").
			Mark(ierr.ErrValidation)
	}
	if err := tx.Validate(); err != nil {
		return nil, err
	}

	unlock := s.Locker.Lock(customerLockKey(tx.CustomerID))
	defer unlock()

	return s.applyLocked(ctx, tx)
}

// applyLocked expects the caller to hold the customer lock. Callers that
// need to do more work under the same lock, like redemption, use it
// directly inside their own WithTx.
func (s *ledgerService) applyLocked(ctx context.Context, tx *points.Transaction) (*points.Points, error) {
	if err := tx.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if tx.ID == "" {
		tx.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TRANSACTION)
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = now
	}
	if tx.Status == "" {
		tx.Status = types.TransactionStatusCompleted
	}

	var updated *points.Points
	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		balance, err := s.PointsRepo.GetPointsForUpdate(ctx, tx.CustomerID)
		if err != nil {
			return err
		}

		switch tx.Type {
		case types.TransactionTypeEarn:
			balance.TotalPoints += tx.Points
			balance.AvailablePoints += tx.Points
			balance.LifetimeEarned += tx.Points
		case types.TransactionTypeRedeem:
			if balance.AvailablePoints < tx.Points {
				return ierr.NewError("insufficient points").
					WithHint("Not enough points available for this redemption").
					WithReportableDetails(map[string]any{
						"available": balance.AvailablePoints,
						"required":  tx.Points,
						"shortfall": tx.Points - balance.AvailablePoints,
					}).
					Mark(ierr.ErrInsufficientPoints)
			}
			balance.TotalPoints -= tx.Points
			balance.AvailablePoints -= tx.Points
			balance.LifetimeRedeemed += tx.Points
		}
		balance.UpdatedAt = now

		// insert first: the log entry is the part that can be rejected
		// (duplicate idempotency key) and must not leave a moved balance
		if err := s.PointsRepo.CreateTransaction(ctx, tx); err != nil {
			return err
		}
		if err := s.PointsRepo.UpdatePoints(ctx, balance); err != nil {
			return err
		}

		updated = balance
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Debugw("applied points transaction",
		"transaction_id", tx.ID,
		"customer_id", tx.CustomerID,
		"type", tx.Type,
		"points", tx.Points,
		"available_points", updated.AvailablePoints,
	)
	return updated, nil
}
