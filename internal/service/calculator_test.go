package service

import (
	"testing"

	"github.com/cbo-rewards/loyalty/internal/domain/tier"
	ierr "github.com/cbo-rewards/loyalty/internal/errors"
	"github.com/cbo-rewards/loyalty/internal/testutil"
	"github.com/cbo-rewards/loyalty/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeEarnedPoints(t *testing.T) {
	gold := &tier.Tier{Name: "Gold", Multiplier: decimal.RequireFromString("1.5")}
	platinum := &tier.Tier{Name: "Platinum", Multiplier: decimal.RequireFromString("2")}
	bronze := &tier.Tier{Name: "Bronze", Multiplier: decimal.RequireFromString("1.25")}

	tests := []struct {
		name     string
		unit     types.RuleUnit
		ppu      int64
		unitVal  string
		maximum  *int64
		tier     *tier.Tier
		amount   *decimal.Decimal
		expected int64
	}{
		{
			name:     "amount rule without tier",
			unit:     types.RuleUnitAmount,
			ppu:      1,
			unitVal:  "100",
			amount:   lo.ToPtr(decimal.NewFromInt(2000)),
			expected: 20,
		},
		{
			name:     "gold multiplies base",
			unit:     types.RuleUnitAmount,
			ppu:      1,
			unitVal:  "100",
			tier:     gold,
			amount:   lo.ToPtr(decimal.NewFromInt(2000)),
			expected: 30,
		},
		{
			name:     "maximum caps after multiplier",
			unit:     types.RuleUnitAmount,
			ppu:      1,
			unitVal:  "100",
			maximum:  lo.ToPtr(int64(25)),
			tier:     gold,
			amount:   lo.ToPtr(decimal.NewFromInt(2000)),
			expected: 25,
		},
		{
			name:     "partial units are floored",
			unit:     types.RuleUnitAmount,
			ppu:      1,
			unitVal:  "100",
			amount:   lo.ToPtr(decimal.NewFromInt(199)),
			expected: 1,
		},
		{
			name:     "below one unit earns nothing",
			unit:     types.RuleUnitAmount,
			ppu:      1,
			unitVal:  "100",
			amount:   lo.ToPtr(decimal.NewFromInt(99)),
			expected: 0,
		},
		{
			name:     "multiplied result is floored",
			unit:     types.RuleUnitAmount,
			ppu:      1,
			unitVal:  "100",
			tier:     bronze,
			amount:   lo.ToPtr(decimal.NewFromInt(700)),
			expected: 8,
		},
		{
			name:     "fractional amount",
			unit:     types.RuleUnitAmount,
			ppu:      3,
			unitVal:  "10",
			amount:   lo.ToPtr(decimal.RequireFromString("33.33")),
			expected: 9,
		},
		{
			name:     "action rule ignores amount",
			unit:     types.RuleUnitAction,
			ppu:      50,
			unitVal:  "1",
			amount:   lo.ToPtr(decimal.NewFromInt(100000)),
			expected: 50,
		},
		{
			name:     "action rule without amount",
			unit:     types.RuleUnitAction,
			ppu:      50,
			unitVal:  "1",
			tier:     platinum,
			expected: 100,
		},
		{
			name:     "action rule capped",
			unit:     types.RuleUnitAction,
			ppu:      50,
			unitVal:  "1",
			maximum:  lo.ToPtr(int64(10)),
			expected: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := testutil.NewRule("banking", "transfer", tt.unit, tt.ppu, tt.unitVal, tt.maximum)
			got, err := ComputeEarnedPoints(r, tt.tier, tt.amount)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestComputeEarnedPoints_InvalidInput(t *testing.T) {
	amountRule := testutil.NewRule("banking", "transfer", types.RuleUnitAmount, 1, "100", nil)

	t.Run("missing amount", func(t *testing.T) {
		_, err := ComputeEarnedPoints(amountRule, nil, nil)
		require.Error(t, err)
		assert.True(t, ierr.IsValidation(err))
	})

	t.Run("zero amount", func(t *testing.T) {
		_, err := ComputeEarnedPoints(amountRule, nil, lo.ToPtr(decimal.Zero))
		require.Error(t, err)
		assert.True(t, ierr.IsValidation(err))
	})

	t.Run("nil rule", func(t *testing.T) {
		_, err := ComputeEarnedPoints(nil, nil, lo.ToPtr(decimal.NewFromInt(10)))
		require.Error(t, err)
		assert.True(t, ierr.IsValidation(err))
	})
}

func TestComputeEarnedPoints_Properties(t *testing.T) {
	r := testutil.NewRule("cards", "purchase", types.RuleUnitAmount, 2, "50", nil)
	gold := &tier.Tier{Name: "Gold", Multiplier: decimal.RequireFromString("1.5")}

	t.Run("monotonic in amount", func(t *testing.T) {
		previous := int64(0)
		for amount := int64(1); amount <= 5000; amount += 37 {
			got, err := ComputeEarnedPoints(r, gold, lo.ToPtr(decimal.NewFromInt(amount)))
			require.NoError(t, err)
			assert.GreaterOrEqual(t, got, previous, "amount %d", amount)
			previous = got
		}
	})

	t.Run("same input same output", func(t *testing.T) {
		amount := lo.ToPtr(decimal.RequireFromString("1234.56"))
		first, err := ComputeEarnedPoints(r, gold, amount)
		require.NoError(t, err)
		second, err := ComputeEarnedPoints(r, gold, amount)
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Equal(t, "1234.56", amount.String())
	})

	t.Run("rule multiplier is not applied", func(t *testing.T) {
		boosted := *r
		boosted.Multiplier = decimal.NewFromInt(10)
		plain, err := ComputeEarnedPoints(r, nil, lo.ToPtr(decimal.NewFromInt(500)))
		require.NoError(t, err)
		got, err := ComputeEarnedPoints(&boosted, nil, lo.ToPtr(decimal.NewFromInt(500)))
		require.NoError(t, err)
		assert.Equal(t, plain, got)
	})
}
