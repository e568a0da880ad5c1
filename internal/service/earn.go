package service

import (
	"context"
	"fmt"

	"github.com/cbo-rewards/loyalty/internal/api/dto"
	"github.com/cbo-rewards/loyalty/internal/domain/points"
	ierr "github.com/cbo-rewards/loyalty/internal/errors"
	"github.com/cbo-rewards/loyalty/internal/types"
	"github.com/samber/lo"
)

type EarnService interface {
	// EarnPoints matches a rule for the action, prices it and credits the
	// customer. A repeated idempotency key returns the original credit.
	EarnPoints(ctx context.Context, req *dto.EarnPointsRequest) (*dto.EarnPointsResponse, error)
}

type earnService struct {
	ServiceParams
}

func NewEarnService(params ServiceParams) EarnService {
	return &earnService{ServiceParams: params}
}

func (s *earnService) EarnPoints(ctx context.Context, req *dto.EarnPointsRequest) (*dto.EarnPointsResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.UserRepo.GetByID(ctx, req.CustomerID); err != nil {
		return nil, err
	}

	if req.IdempotencyKey != nil {
		if resp, ok, err := s.replay(ctx, req.CustomerID, *req.IdempotencyKey); err != nil || ok {
			return resp, err
		}
	}

	ruleService := NewRuleService(s.ServiceParams)
	matched, err := ruleService.FindRule(ctx, req.Category, req.ServiceType)
	if err != nil {
		return nil, err
	}

	tierService := NewTierService(s.ServiceParams)
	currentTier, err := tierService.CurrentTier(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	earned, err := ComputeEarnedPoints(matched, currentTier, req.Amount)
	if err != nil {
		return nil, err
	}

	metadata := req.Metadata.Copy()
	if metadata == nil {
		metadata = types.Metadata{}
	}
	metadata[types.MetadataKeyServiceType] = req.ServiceType

	tx := &points.Transaction{
		CustomerID:     req.CustomerID,
		Type:           types.TransactionTypeEarn,
		Points:         earned,
		Description:    fmt.Sprintf("Points earned from %s", matched.Name),
		Category:       req.Category,
		Amount:         req.Amount,
		RuleID:         lo.ToPtr(matched.ID),
		Status:         types.TransactionStatusCompleted,
		IdempotencyKey: req.IdempotencyKey,
		Metadata:       metadata,
	}
	if req.Amount != nil {
		tx.Currency = lo.Ternary(req.Currency != "", req.Currency, s.Config.Ledger.Currency)
	}

	ledger := NewLedgerService(s.ServiceParams)
	balance, err := ledger.ApplyTransaction(ctx, tx)
	if err != nil {
		// a concurrent request with the same key won the insert
		if req.IdempotencyKey != nil && ierr.IsAlreadyExists(err) {
			if resp, ok, replayErr := s.replay(ctx, req.CustomerID, *req.IdempotencyKey); replayErr == nil && ok {
				return resp, nil
			}
		}
		return nil, err
	}

	s.Logger.Infow("points earned",
		"customer_id", req.CustomerID,
		"rule_id", matched.ID,
		"points", earned,
		"transaction_id", tx.ID,
	)

	s.publishEvent(ctx, types.EventPointsEarned, req.CustomerID, map[string]any{
		"transaction_id": tx.ID,
		"rule_id":        matched.ID,
		"points":         earned,
		"category":       req.Category,
		"service_type":   req.ServiceType,
	})

	if s.Config.Tier.AutoPromote {
		if _, err := tierService.PromoteCustomer(ctx, req.CustomerID); err != nil && !ierr.IsNotFound(err) {
			s.Logger.Warnw("auto promotion failed",
				"customer_id", req.CustomerID,
				"error", err,
			)
		}
	}

	return &dto.EarnPointsResponse{
		Transaction:  dto.NewTransactionResponse(tx),
		PointsEarned: earned,
		Balance:      dto.NewPointsResponse(balance),
	}, nil
}

// replay looks up an earlier earn under the same idempotency key
func (s *earnService) replay(ctx context.Context, customerID, key string) (*dto.EarnPointsResponse, bool, error) {
	existing, err := s.PointsRepo.GetTransactionByIdempotencyKey(ctx, customerID, key)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, err
	}

	balance, err := s.PointsRepo.GetPoints(ctx, customerID)
	if err != nil {
		return nil, false, err
	}

	s.Logger.Infow("duplicate earn request",
		"customer_id", customerID,
		"idempotency_key", key,
		"transaction_id", existing.ID,
	)
	return &dto.EarnPointsResponse{
		Transaction:  dto.NewTransactionResponse(existing),
		PointsEarned: existing.Points,
		Balance:      dto.NewPointsResponse(balance),
		Duplicate:    true,
	}, true, nil
}
