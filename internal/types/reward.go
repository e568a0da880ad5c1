package types

// RewardType classifies catalog entries. Only vouchers carry a code and expiry.
type RewardType string

const (
	RewardTypeCashback RewardType = "cashback"
	RewardTypeVoucher  RewardType = "voucher"
	RewardTypeDiscount RewardType = "discount"
	RewardTypeService  RewardType = "service"
)

// UnlimitedStock marks a reward that is never decremented on redemption
const UnlimitedStock int64 = -1

type RedemptionStatus string

const (
	RedemptionStatusCompleted RedemptionStatus = "completed"
	RedemptionStatusCancelled RedemptionStatus = "cancelled"
)
