package idempotency

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateKeyIsStable(t *testing.T) {
	g := NewGenerator()
	a := g.GenerateKey(ScopeRedemption, map[string]interface{}{"redemption_id": "rdm_1", "customer_id": "usr_1"})
	b := g.GenerateKey(ScopeRedemption, map[string]interface{}{"customer_id": "usr_1", "redemption_id": "rdm_1"})

	assert.Equal(t, a, b)
	assert.True(t, strings.HasPrefix(a, "redemption-"))
	assert.True(t, g.ValidateKey(ScopeRedemption, map[string]interface{}{"customer_id": "usr_1", "redemption_id": "rdm_1"}, a))
}

func TestGenerateKeyDiffersByScope(t *testing.T) {
	g := NewGenerator()
	params := map[string]interface{}{"customer_id": "usr_1"}

	assert.NotEqual(t, g.GenerateKey(ScopeRedemption, params), g.GenerateKey(ScopeSeed, params))
}
