package types

const (
	HeaderAuthorization = "Authorization"
	HeaderRequestID     = "X-Request-ID"
	HeaderIdempotency   = "Idempotency-Key"
)
