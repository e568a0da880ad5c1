package cache

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Cache stores JSON encoded values so every provider hands back the same
// shape regardless of where the bytes lived
type Cache interface {
	// Get decodes the cached value into dest and reports whether the key was found
	Get(ctx context.Context, key string, dest interface{}) bool

	// Set adds a value to the cache with the specified expiration.
	// An expiration of 0 uses the configured TTL.
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration)

	// Delete removes a key from the cache
	Delete(ctx context.Context, key string)

	// DeleteByPrefix removes all keys with the given prefix
	DeleteByPrefix(ctx context.Context, prefix string)

	// Flush removes all items from the cache
	Flush(ctx context.Context)
}

// Predefined cache key prefixes for different entity types
const (
	PrefixTier           = "tier:v1:"
	PrefixTierList       = "tier_list:v1:"
	PrefixTierAssignment = "tier_assignment:v1:"
	PrefixRuleList       = "rule_list:v1:"
)

// GenerateKey creates a cache key from a prefix and a set of parameters
// It joins all parameters with a colon and appends them to the prefix
func GenerateKey(prefix string, params ...interface{}) string {
	parts := make([]string, len(params)+1)
	parts[0] = prefix

	for i, param := range params {
		parts[i+1] = fmt.Sprintf("%v", param)
	}

	return strings.Join(parts, ":")
}
