package errors

import (
	"net/http"

	"github.com/cockroachdb/errors"
)

// Sentinel errors. Domain errors are built with NewError(...).Mark(sentinel)
// so callers branch on the sentinel and never on the message text.
var (
	ErrNotFound         = errors.New(ErrCodeNotFound)
	ErrAlreadyExists    = errors.New(ErrCodeAlreadyExists)
	ErrValidation       = errors.New(ErrCodeValidation)
	ErrInvalidOperation = errors.New(ErrCodeInvalidOperation)
	ErrPermissionDenied = errors.New(ErrCodePermissionDenied)
	ErrUnauthenticated  = errors.New(ErrCodeUnauthenticated)
	ErrRateLimited      = errors.New(ErrCodeRateLimited)
	ErrDatabase         = errors.New(ErrCodeDatabase)
	ErrSystem           = errors.New(ErrCodeSystemError)

	// loyalty engine
	ErrRuleNotFound       = errors.New(ErrCodeRuleNotFound)
	ErrRewardUnavailable  = errors.New(ErrCodeRewardUnavailable)
	ErrInsufficientPoints = errors.New(ErrCodeInsufficientPoints)
	ErrOutOfStock         = errors.New(ErrCodeOutOfStock)
)

const (
	ErrCodeSystemError      = "system_error"
	ErrCodeNotFound         = "not_found"
	ErrCodeAlreadyExists    = "already_exists"
	ErrCodeValidation       = "validation_error"
	ErrCodeInvalidOperation = "invalid_operation"
	ErrCodePermissionDenied = "permission_denied"
	ErrCodeUnauthenticated  = "unauthenticated"
	ErrCodeRateLimited      = "rate_limited"
	ErrCodeDatabase         = "database_error"

	ErrCodeRuleNotFound       = "rule_not_found"
	ErrCodeRewardUnavailable  = "reward_unavailable"
	ErrCodeInsufficientPoints = "insufficient_points"
	ErrCodeOutOfStock         = "out_of_stock"
)

// statusCodes is ordered so the most specific sentinel wins when an error
// carries more than one mark.
var statusCodes = []struct {
	err    error
	status int
	code   string
}{
	{ErrRuleNotFound, http.StatusBadRequest, ErrCodeRuleNotFound},
	{ErrRewardUnavailable, http.StatusBadRequest, ErrCodeRewardUnavailable},
	{ErrInsufficientPoints, http.StatusBadRequest, ErrCodeInsufficientPoints},
	{ErrOutOfStock, http.StatusBadRequest, ErrCodeOutOfStock},
	{ErrNotFound, http.StatusNotFound, ErrCodeNotFound},
	{ErrAlreadyExists, http.StatusConflict, ErrCodeAlreadyExists},
	{ErrValidation, http.StatusBadRequest, ErrCodeValidation},
	{ErrInvalidOperation, http.StatusBadRequest, ErrCodeInvalidOperation},
	{ErrUnauthenticated, http.StatusUnauthorized, ErrCodeUnauthenticated},
	{ErrPermissionDenied, http.StatusForbidden, ErrCodePermissionDenied},
	{ErrRateLimited, http.StatusTooManyRequests, ErrCodeRateLimited},
	{ErrDatabase, http.StatusInternalServerError, ErrCodeDatabase},
	{ErrSystem, http.StatusInternalServerError, ErrCodeSystemError},
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

func Is(err, reference error) bool {
	return errors.Is(err, reference)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsInvalidOperation checks if an error is an invalid operation error
func IsInvalidOperation(err error) bool {
	return errors.Is(err, ErrInvalidOperation)
}

// IsPermissionDenied checks if an error is a permission denied error
func IsPermissionDenied(err error) bool {
	return errors.Is(err, ErrPermissionDenied)
}

func IsRuleNotFound(err error) bool {
	return errors.Is(err, ErrRuleNotFound)
}

func IsRewardUnavailable(err error) bool {
	return errors.Is(err, ErrRewardUnavailable)
}

func IsInsufficientPoints(err error) bool {
	return errors.Is(err, ErrInsufficientPoints)
}

func IsOutOfStock(err error) bool {
	return errors.Is(err, ErrOutOfStock)
}

// IsTerminal reports whether err is a business rejection that retrying
// with the same input cannot fix.
func IsTerminal(err error) bool {
	return IsValidation(err) ||
		IsNotFound(err) ||
		IsPermissionDenied(err) ||
		IsRuleNotFound(err) ||
		IsRewardUnavailable(err) ||
		IsInsufficientPoints(err) ||
		IsOutOfStock(err)
}

func HTTPStatusFromErr(err error) int {
	for _, s := range statusCodes {
		if errors.Is(err, s.err) {
			return s.status
		}
	}
	return http.StatusInternalServerError
}

// CodeFromErr returns the machine readable code of the first matching sentinel.
func CodeFromErr(err error) string {
	for _, s := range statusCodes {
		if errors.Is(err, s.err) {
			return s.code
		}
	}
	return ErrCodeSystemError
}
