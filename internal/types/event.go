package types

// Event names published on the loyalty topic
const (
	EventPointsEarned        = "points.earned"
	EventPointsRedeemed      = "points.redeemed"
	EventCustomerRegistered  = "customer.registered"
	EventCustomerTierChanged = "customer.tier_changed"
)
