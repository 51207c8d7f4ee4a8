package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/nft-registry/internal/domain"
	"github.com/feral-file/nft-registry/internal/registry"
)

func ts(v uint64) *domain.Timestamp { return &v }

func TestActiveSchedules(t *testing.T) {
	schedules := []domain.MintSchedule{
		{Name: "open", Active: true},
		{Name: "inactive", Active: false},
		{Name: "windowed", Active: true, StartTime: ts(100), EndTime: ts(200)},
		{Name: "members", Active: true, WhitelistOnly: true},
		{Name: "upcoming", Active: true, StartTime: ts(1000)},
	}

	tests := []struct {
		name        string
		now         domain.Timestamp
		whitelisted bool
		expected    []string
	}{
		{
			name:        "inside window, whitelisted",
			now:         150,
			whitelisted: true,
			expected:    []string{"open", "windowed", "members"},
		},
		{
			name:        "inside window, not whitelisted",
			now:         150,
			whitelisted: false,
			expected:    []string{"open", "windowed"},
		},
		{
			name:        "after window",
			now:         300,
			whitelisted: false,
			expected:    []string{"open"},
		},
		{
			name:        "everything open",
			now:         1500,
			whitelisted: true,
			expected:    []string{"open", "members", "upcoming"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			active := registry.ActiveSchedules(schedules, tt.now, tt.whitelisted)
			names := make([]string, 0, len(active))
			for _, s := range active {
				names = append(names, s.Name)
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}

func TestBestPrice_TierSelection(t *testing.T) {
	schedules := []domain.MintSchedule{
		{
			Name:   "standard",
			Active: true,
			Tiers: []domain.BundleTier{
				{Quantity: 1, Price: 10},
				{Quantity: 5, Price: 40},
			},
		},
	}

	tests := []struct {
		name     string
		quantity uint64
		expected uint64
	}{
		// 5-bundle applies once, remainder priced by another 5-bundle
		{name: "quantity 7 uses the 5-tier", quantity: 7, expected: 80},
		// the 5-tier is ineligible below its minimum; singles apply
		{name: "quantity 3 uses the 1-tier", quantity: 3, expected: 30},
		{name: "quantity 1", quantity: 1, expected: 10},
		{name: "quantity 5 exact", quantity: 5, expected: 40},
		{name: "quantity 10 exact", quantity: 10, expected: 80},
		{name: "quantity 6", quantity: 6, expected: 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price := registry.BestPrice(tt.quantity, schedules)
			require.NotNil(t, price)
			assert.Equal(t, tt.expected, *price)
		})
	}
}

func TestBestPrice_MinimumAcrossSchedules(t *testing.T) {
	schedules := []domain.MintSchedule{
		{
			Name:   "expensive",
			Active: true,
			Tiers:  []domain.BundleTier{{Quantity: 1, Price: 20}},
		},
		{
			Name:   "sale",
			Active: true,
			Tiers:  []domain.BundleTier{{Quantity: 2, Price: 15}},
		},
	}

	// quantity 2: 2x20=40 vs 1x15=15
	price := registry.BestPrice(2, schedules)
	require.NotNil(t, price)
	assert.Equal(t, uint64(15), *price)

	// quantity 1: the 2-tier is ineligible, only the expensive single applies
	price = registry.BestPrice(1, schedules)
	require.NotNil(t, price)
	assert.Equal(t, uint64(20), *price)
}

func TestBestPrice_NoEligibleTier(t *testing.T) {
	schedules := []domain.MintSchedule{
		{
			Name:   "bulk-only",
			Active: true,
			Tiers:  []domain.BundleTier{{Quantity: 10, Price: 50}},
		},
	}

	assert.Nil(t, registry.BestPrice(3, schedules))
	assert.Nil(t, registry.BestPrice(1, nil))
}

func TestBestPrice_IgnoresZeroQuantityTiers(t *testing.T) {
	schedules := []domain.MintSchedule{
		{
			Name:   "broken",
			Active: true,
			Tiers:  []domain.BundleTier{{Quantity: 0, Price: 1}, {Quantity: 2, Price: 6}},
		},
	}

	price := registry.BestPrice(4, schedules)
	require.NotNil(t, price)
	assert.Equal(t, uint64(12), *price)
	assert.Nil(t, registry.BestPrice(1, schedules))
}
