package service

import (
	"context"
	"fmt"
	"time"

	"github.com/cbo-rewards/loyalty/internal/api/dto"
	"github.com/cbo-rewards/loyalty/internal/domain/points"
	"github.com/cbo-rewards/loyalty/internal/domain/redemption"
	"github.com/cbo-rewards/loyalty/internal/domain/reward"
	ierr "github.com/cbo-rewards/loyalty/internal/errors"
	"github.com/cbo-rewards/loyalty/internal/idempotency"
	"github.com/cbo-rewards/loyalty/internal/types"
	"github.com/cbo-rewards/loyalty/internal/voucher"
	"github.com/samber/lo"
)

// RedeemResult is what one successful redemption produced
type RedeemResult struct {
	Redemption  *redemption.Redemption
	Transaction *points.Transaction
	Reward      *reward.Reward
	Balance     *points.Points
}

type RedemptionService interface {
	// Redeem exchanges points for one unit of a reward. Checks run in a
	// fixed order and nothing is written unless all of them pass.
	Redeem(ctx context.Context, customerID, rewardID string) (*RedeemResult, error)
	RedeemPoints(ctx context.Context, req *dto.RedeemPointsRequest) (*dto.RedeemPointsResponse, error)

	GetRedemption(ctx context.Context, id string) (*dto.RedemptionResponse, error)
	ListRedemptions(ctx context.Context, filter *types.RedemptionFilter) (*dto.ListRedemptionsResponse, error)

	// GetVoucherQRCode renders the voucher of a redemption as a PNG
	GetVoucherQRCode(ctx context.Context, id string, size int) ([]byte, error)
}

type redemptionService struct {
	ServiceParams
	idempGen *idempotency.Generator
}

func NewRedemptionService(params ServiceParams) RedemptionService {
	return &redemptionService{
		ServiceParams: params,
		idempGen:      idempotency.NewGenerator(),
	}
}

func (s *redemptionService) RedeemPoints(ctx context.Context, req *dto.RedeemPointsRequest) (*dto.RedeemPointsResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	result, err := s.Redeem(ctx, req.CustomerID, req.RewardID)
	if err != nil {
		return nil, err
	}

	return &dto.RedeemPointsResponse{
		Redemption:  dto.NewRedemptionResponse(result.Redemption, result.Reward),
		Transaction: dto.NewTransactionResponse(result.Transaction),
		Balance:     dto.NewPointsResponse(result.Balance),
	}, nil
}

func (s *redemptionService) Redeem(ctx context.Context, customerID, rewardID string) (*RedeemResult, error) {
	if customerID == "" || rewardID == "" {
		return nil, ierr.NewError("customer_id and reward_id are required").
			WithHint("Customer ID and reward ID are required").
			Mark(ierr.ErrValidation)
	}

	// customer before reward, everywhere
	unlockCustomer := s.Locker.Lock(customerLockKey(customerID))
	defer unlockCustomer()
	unlockReward := s.Locker.Lock(rewardLockKey(rewardID))
	defer unlockReward()

	ledger := &ledgerService{ServiceParams: s.ServiceParams}
	result := &RedeemResult{}

	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		rw, err := s.RewardRepo.GetForUpdate(ctx, rewardID)
		if err != nil {
			return err
		}

		balance, err := s.PointsRepo.GetPointsForUpdate(ctx, customerID)
		if err != nil {
			return err
		}

		if err := checkRedeemable(rw, balance); err != nil {
			return err
		}

		redeemedAt := time.Now().UTC()
		record := &redemption.Redemption{
			ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_REDEMPTION),
			CustomerID: customerID,
			RewardID:   rw.ID,
			PointsUsed: rw.Cost,
			Value:      rw.Value,
			Status:     types.RedemptionStatusCompleted,
			RedeemedAt: redeemedAt,
			CreatedAt:  redeemedAt,
		}
		if rw.IsVoucher() {
			code := types.GenerateShortIDWithPrefix(s.Config.Redemption.VoucherPrefix, types.SHORT_ID_VOUCHER_LENGTH)
			record.Code = &code
			record.ExpiresAt = lo.ToPtr(redeemedAt.AddDate(0, s.Config.Redemption.VoucherValidityMonths, 0))
		}

		idempotencyKey := s.idempGen.GenerateKey(idempotency.ScopeRedemption, map[string]interface{}{
			"customer_id":   customerID,
			"redemption_id": record.ID,
		})
		tx := &points.Transaction{
			CustomerID:     customerID,
			Type:           types.TransactionTypeRedeem,
			Points:         rw.Cost,
			Description:    fmt.Sprintf("Redeemed %s", rw.Name),
			Category:       rw.Category,
			Amount:         lo.ToPtr(rw.Value),
			Currency:       s.Config.Ledger.Currency,
			Status:         types.TransactionStatusCompleted,
			IdempotencyKey: &idempotencyKey,
			Metadata: types.Metadata{
				types.MetadataKeyRedemptionID: record.ID,
			},
			CreatedAt: redeemedAt,
		}

		updated, err := ledger.applyLocked(ctx, tx)
		if err != nil {
			return err
		}
		if err := s.RedemptionRepo.Create(ctx, record); err != nil {
			return err
		}
		if !rw.IsUnlimited() {
			if err := s.RewardRepo.DecrementStock(ctx, rw.ID); err != nil {
				return err
			}
			rw.Stock--
		}

		result.Redemption = record
		result.Transaction = tx
		result.Reward = rw
		result.Balance = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("points redeemed",
		"customer_id", customerID,
		"reward_id", rewardID,
		"redemption_id", result.Redemption.ID,
		"points", result.Redemption.PointsUsed,
	)

	s.publishEvent(ctx, types.EventPointsRedeemed, customerID, map[string]any{
		"redemption_id":  result.Redemption.ID,
		"transaction_id": result.Transaction.ID,
		"reward_id":      rewardID,
		"points":         result.Redemption.PointsUsed,
	})

	return result, nil
}

// checkRedeemable applies the redemption checks after both records were
// found: active, then affordable, then in stock
func checkRedeemable(rw *reward.Reward, balance *points.Points) error {
	if !rw.IsActive {
		return ierr.NewError("reward is not active").
			WithHint("Reward is not available").
			WithReportableDetails(map[string]any{
				"reward_id": rw.ID,
			}).
			Mark(ierr.ErrRewardUnavailable)
	}

	if balance.AvailablePoints < rw.Cost {
		return ierr.NewError("insufficient points").
			WithHint("Insufficient points").
			WithReportableDetails(map[string]any{
				"available": balance.AvailablePoints,
				"required":  rw.Cost,
				"shortfall": rw.Cost - balance.AvailablePoints,
			}).
			Mark(ierr.ErrInsufficientPoints)
	}

	if !rw.InStock() {
		return ierr.NewError("reward is out of stock").
			WithHint("Reward is out of stock").
			WithReportableDetails(map[string]any{
				"reward_id": rw.ID,
			}).
			Mark(ierr.ErrOutOfStock)
	}
	return nil
}

func (s *redemptionService) GetRedemption(ctx context.Context, id string) (*dto.RedemptionResponse, error) {
	r, err := s.RedemptionRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	rw, err := s.RewardRepo.Get(ctx, r.RewardID)
	if err != nil && !ierr.IsNotFound(err) {
		return nil, err
	}
	return dto.NewRedemptionResponse(r, rw), nil
}

func (s *redemptionService) ListRedemptions(ctx context.Context, filter *types.RedemptionFilter) (*dto.ListRedemptionsResponse, error) {
	if filter == nil {
		filter = types.NewRedemptionFilter()
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}
	if err := filter.QueryFilter.Validate(); err != nil {
		return nil, err
	}

	items, err := s.RedemptionRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	rewards := make(map[string]*reward.Reward)
	for _, id := range lo.Uniq(lo.Map(items, func(r *redemption.Redemption, _ int) string { return r.RewardID })) {
		rw, err := s.RewardRepo.Get(ctx, id)
		if err != nil {
			if ierr.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		rewards[id] = rw
	}

	resp := lo.Map(items, func(r *redemption.Redemption, _ int) *dto.RedemptionResponse {
		return dto.NewRedemptionResponse(r, rewards[r.RewardID])
	})
	list := types.NewListResponse(resp, len(resp), filter.GetLimit(), filter.GetOffset())
	return &list, nil
}

func (s *redemptionService) GetVoucherQRCode(ctx context.Context, id string, size int) ([]byte, error) {
	r, err := s.RedemptionRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !r.HasVoucher() {
		return nil, ierr.NewError("redemption has no voucher").
			WithHint("Only voucher redemptions have a QR code").
			WithReportableDetails(map[string]any{
				"redemption_id": id,
			}).
			Mark(ierr.ErrInvalidOperation)
	}
	return voucher.GenerateQRCode(voucher.Payload(*r.Code, r.ExpiresAt), size)
}
