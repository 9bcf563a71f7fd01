package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCouponCode_Format(t *testing.T) {
	t.Parallel()

	code, err := generateCouponCode()
	assert.NoError(t, err)

	parts := strings.Split(code, "-")
	assert.Len(t, parts, 3)
	assert.Equal(t, "THRYFT", parts[0])
	assert.Len(t, parts[1], 4)
	assert.Len(t, parts[2], 4)

	// Ambiguous characters are excluded from the alphabet.
	for _, r := range parts[1] + parts[2] {
		assert.NotContains(t, "01OI", string(r))
	}
}

func TestGenerateCouponCode_Unique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := generateCouponCode()
		assert.NoError(t, err)
		assert.False(t, seen[code], "duplicate code %s", code)
		seen[code] = true
	}
}

func TestCouponTiers_CostsScaleWithDiscount(t *testing.T) {
	t.Parallel()

	small := couponTiers["small"]
	medium := couponTiers["medium"]
	large := couponTiers["large"]

	assert.Less(t, small.Coins, medium.Coins)
	assert.Less(t, medium.Coins, large.Coins)
	assert.Less(t, small.Discount, medium.Discount)
	assert.Less(t, medium.Discount, large.Discount)
}
