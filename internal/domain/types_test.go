package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/nft-registry/internal/domain"
)

func TestApproval_Valid(t *testing.T) {
	expiry := domain.Timestamp(1000)

	tests := []struct {
		name     string
		approval domain.Approval
		now      domain.Timestamp
		expected bool
	}{
		{
			name:     "no expiry never expires",
			approval: domain.Approval{Spender: "carol"},
			now:      ^domain.Timestamp(0),
			expected: true,
		},
		{
			name:     "before expiry",
			approval: domain.Approval{Spender: "carol", ExpiresAt: &expiry},
			now:      999,
			expected: true,
		},
		{
			name:     "exactly at expiry is expired",
			approval: domain.Approval{Spender: "carol", ExpiresAt: &expiry},
			now:      1000,
			expected: false,
		},
		{
			name:     "after expiry",
			approval: domain.Approval{Spender: "carol", ExpiresAt: &expiry},
			now:      1001,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.approval.Valid(tt.now))
		})
	}
}

func TestMintSchedule_Contains(t *testing.T) {
	start := domain.Timestamp(100)
	end := domain.Timestamp(200)

	unbounded := domain.MintSchedule{}
	assert.True(t, unbounded.Contains(0))
	assert.True(t, unbounded.Contains(5000))

	// Both bounds are inclusive.
	windowed := domain.MintSchedule{StartTime: &start, EndTime: &end}
	assert.False(t, windowed.Contains(99))
	assert.True(t, windowed.Contains(100))
	assert.True(t, windowed.Contains(150))
	assert.True(t, windowed.Contains(200))
	assert.False(t, windowed.Contains(201))

	openEnded := domain.MintSchedule{StartTime: &start}
	assert.True(t, openEnded.Contains(5000))
	assert.False(t, openEnded.Contains(50))
}

func TestTransferError_Sentinels(t *testing.T) {
	var err error = &domain.TransferError{Code: domain.TransferErrNotFound}
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NotErrorIs(t, err, domain.ErrUnauthorized)

	generic := domain.GenericError(1, "Self-approval is unnecessary")
	assert.Equal(t, domain.TransferErrGeneric, generic.Code)
	assert.Contains(t, generic.Error(), "Self-approval is unnecessary")

	self := domain.ErrSelfApproval()
	require.NotNil(t, self)
	assert.Equal(t, uint64(1), self.ErrorCode)
	assert.True(t, errors.Is(self, generic))
}

func TestSupportedStandards(t *testing.T) {
	standards := domain.SupportedStandards()
	require.Len(t, standards, 3)

	names := make([]string, len(standards))
	for i, s := range standards {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"ICRC-3", "ICRC-7", "ICRC-37"}, names)
}
