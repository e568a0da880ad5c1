package types

import (
	ierr "github.com/cbo-rewards/loyalty/internal/errors"
	"github.com/samber/lo"
)

// TransactionType represents the direction of a points transaction
type TransactionType string

const (
	TransactionTypeEarn   TransactionType = "earn"
	TransactionTypeRedeem TransactionType = "redeem"
)

func (t TransactionType) Validate() error {
	allowed := []TransactionType{TransactionTypeEarn, TransactionTypeRedeem}
	if !lo.Contains(allowed, t) {
		return ierr.NewError("invalid transaction type").
			WithHintf("Transaction type must be one of %v", allowed).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// TransactionStatus represents the status of a points transaction
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
)

// DefaultCurrency is the currency recorded on amount based earn transactions
// when the caller does not send one
const DefaultCurrency = "ETB"

// Metadata keys written on transactions
const (
	MetadataKeyRedemptionID = "redemptionId"
	MetadataKeyServiceType  = "serviceType"
)
