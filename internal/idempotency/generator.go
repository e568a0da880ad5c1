package idempotency

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// Scope represents the scope of idempotency
type Scope string

const (
	// ScopeRedemption keys the debit written for one redemption
	ScopeRedemption Scope = "redemption"
	// ScopeSeed keys the opening balance written by the seeder
	ScopeSeed Scope = "seed"
)

// Generator derives stable idempotency keys for transactions the service
// writes on its own behalf. Client supplied keys are stored as sent.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// GenerateKey hashes the scope and the sorted params into a short key
func (g *Generator) GenerateKey(scope Scope, params map[string]interface{}) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(string(scope))
	for _, k := range keys {
		b.WriteString(fmt.Sprintf(":%s=%v", k, params[k]))
	}

	hash := sha256.Sum256([]byte(b.String()))
	return fmt.Sprintf("%s-%s", scope, hex.EncodeToString(hash[:8]))
}

// ValidateKey reports whether key was generated from scope and params
func (g *Generator) ValidateKey(scope Scope, params map[string]interface{}, key string) bool {
	return g.GenerateKey(scope, params) == key
}
