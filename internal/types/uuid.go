package types

import (
	"fmt"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"
	"github.com/teris-io/shortid"
)

// GenerateUUID returns a k-sortable unique identifier
func GenerateUUID() string {
	return ulid.Make().String()
}

// GenerateUUIDWithPrefix returns a k-sortable unique identifier
// with a prefix ex txn_01HV6Z8W4Y3Q8K2M5N7P9R0S1T
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}

var (
	sidGenerator *shortid.Shortid
	once         sync.Once
)

func initializeSID() {
	var err error
	sidGenerator, err = shortid.New(1, shortid.DefaultABC, 2342)
	if err != nil {
		panic("failed to initialize shortid generator: " + err.Error())
	}
}

// GenerateShortIDWithPrefix returns an upper cased short ID with a prefix,
// capped at maxLen characters in total, e.g. `CBO-X7K2M9QA`.
func GenerateShortIDWithPrefix(prefix string, maxLen int) string {
	once.Do(initializeSID)

	id, err := sidGenerator.Generate()
	if err != nil {
		return ""
	}
	id = strings.NewReplacer("-", "", "_", "").Replace(id)

	availableLen := maxLen - len(prefix)
	if availableLen <= 0 {
		return ""
	}
	if len(id) > availableLen {
		id = id[:availableLen]
	}

	return strings.ToUpper(prefix + id)
}

const (
	UUID_PREFIX_USER            = "usr"
	UUID_PREFIX_TRANSACTION     = "txn"
	UUID_PREFIX_RULE            = "rule"
	UUID_PREFIX_TIER            = "tier"
	UUID_PREFIX_TIER_ASSIGNMENT = "tasg"
	UUID_PREFIX_CAMPAIGN        = "camp"
	UUID_PREFIX_REWARD          = "rwd"
	UUID_PREFIX_REDEMPTION      = "rdm"
	UUID_PREFIX_BRANCH          = "br"
	UUID_PREFIX_EVENT           = "evt"
	UUID_PREFIX_REQUEST         = "req"
)

const (
	SHORT_ID_PREFIX_VOUCHER = "CBO-"
	SHORT_ID_VOUCHER_LENGTH = 14
)
