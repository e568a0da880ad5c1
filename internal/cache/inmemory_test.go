package cache

import (
	"context"
	"testing"
	"time"

	"github.com/cbo-rewards/loyalty/internal/config"
	"github.com/cbo-rewards/loyalty/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedTier struct {
	ID         string   `json:"id"`
	Multiplier string   `json:"multiplier"`
	Benefits   []string `json:"benefits"`
}

func newTestCache() *InMemoryCache {
	cfg := config.GetDefaultConfig()
	return NewInMemoryCache(cfg, logger.NewNoopLogger())
}

func TestInMemoryCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	c := newTestCache()

	key := GenerateKey(PrefixTier, "tier_gold")
	c.Set(ctx, key, cachedTier{ID: "tier_gold", Multiplier: "1.5", Benefits: []string{"Priority support"}}, 0)

	var got cachedTier
	require.True(t, c.Get(ctx, key, &got))
	assert.Equal(t, "tier_gold", got.ID)
	assert.Equal(t, "1.5", got.Multiplier)
	assert.Equal(t, []string{"Priority support"}, got.Benefits)

	var miss cachedTier
	assert.False(t, c.Get(ctx, GenerateKey(PrefixTier, "unknown"), &miss))
}

func TestInMemoryCache_DeleteByPrefix(t *testing.T) {
	ctx := context.Background()
	c := newTestCache()

	c.Set(ctx, GenerateKey(PrefixTierAssignment, "cust_1"), "gold", time.Minute)
	c.Set(ctx, GenerateKey(PrefixTierAssignment, "cust_2"), "silver", time.Minute)
	c.Set(ctx, GenerateKey(PrefixRuleList, "active"), []string{"rule_1"}, time.Minute)

	c.DeleteByPrefix(ctx, PrefixTierAssignment)

	var s string
	assert.False(t, c.Get(ctx, GenerateKey(PrefixTierAssignment, "cust_1"), &s))
	assert.False(t, c.Get(ctx, GenerateKey(PrefixTierAssignment, "cust_2"), &s))

	var rules []string
	assert.True(t, c.Get(ctx, GenerateKey(PrefixRuleList, "active"), &rules))
	assert.Equal(t, []string{"rule_1"}, rules)
}

func TestGenerateKey(t *testing.T) {
	assert.Equal(t, "tier:v1::abc:2", GenerateKey(PrefixTier, "abc", 2))
}
