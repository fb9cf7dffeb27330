//go:build unit

package checkout_test

import (
	"testing"

	"marketplace-api/internal/domain/checkout"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func groupWithSubtotal(subtotals ...int64) []*checkout.ShopGroup {
	groups := make([]*checkout.ShopGroup, 0, len(subtotals))
	for _, s := range subtotals {
		groups = append(groups, &checkout.ShopGroup{
			ShopID: uuid.New(),
			Items: []checkout.Item{
				{VariantID: uuid.New(), UnitPriceCents: s, Quantity: 1},
			},
		})
	}
	return groups
}

func shares(groups []*checkout.ShopGroup) []int64 {
	out := make([]int64, len(groups))
	for i, g := range groups {
		out[i] = g.SystemShareCents
	}
	return out
}

func TestAllocateSystemDiscount(t *testing.T) {
	tests := []struct {
		name     string
		payables []int64
		discount int64
		expected []int64
	}{
		{
			name:     "even split",
			payables: []int64{100, 100},
			discount: 50,
			expected: []int64{25, 25},
		},
		{
			name:     "proportional split",
			payables: []int64{300, 100},
			discount: 100,
			expected: []int64{75, 25},
		},
		{
			name:     "remainder goes to last group",
			payables: []int64{100, 100, 100},
			discount: 100,
			expected: []int64{33, 33, 34},
		},
		{
			name:     "last group clamp spills backward",
			payables: []int64{3, 3, 1},
			discount: 6,
			expected: []int64{2, 3, 1},
		},
		{
			name:     "discount exceeding payable sum is capped",
			payables: []int64{40, 60},
			discount: 500,
			expected: []int64{40, 60},
		},
		{
			name:     "zero discount allocates nothing",
			payables: []int64{100, 200},
			discount: 0,
			expected: []int64{0, 0},
		},
		{
			name:     "single group absorbs everything",
			payables: []int64{250},
			discount: 99,
			expected: []int64{99},
		},
		{
			name:     "zero payable group gets no share",
			payables: []int64{0, 100},
			discount: 50,
			expected: []int64{0, 50},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups := groupWithSubtotal(tt.payables...)
			checkout.AllocateSystemDiscount(groups, tt.discount)
			if diff := cmp.Diff(tt.expected, shares(groups)); diff != "" {
				t.Errorf("share mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAllocateSystemDiscount_Properties(t *testing.T) {
	cases := []struct {
		payables []int64
		discount int64
	}{
		{[]int64{1, 1, 1, 1, 1, 1, 1}, 5},
		{[]int64{999, 1, 500}, 777},
		{[]int64{123456, 654321, 111111}, 100000},
		{[]int64{7, 13, 17, 19}, 42},
		{[]int64{2, 2, 2}, 7},
	}

	for _, c := range cases {
		groups := groupWithSubtotal(c.payables...)
		var payableSum int64
		for _, p := range c.payables {
			payableSum += p
		}
		checkout.AllocateSystemDiscount(groups, c.discount)

		var allocated int64
		for i, g := range groups {
			require.GreaterOrEqual(t, g.SystemShareCents, int64(0), "share %d must be non-negative", i)
			require.LessOrEqual(t, g.SystemShareCents, g.PayableCents(), "share %d must not exceed payable", i)
			allocated += g.SystemShareCents
		}

		want := min(c.discount, payableSum)
		assert.Equal(t, want, allocated, "allocated sum must equal the effective discount")
	}
}
