package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/nft-registry/internal/domain"
	"github.com/feral-file/nft-registry/internal/registry"
)

func TestTxLog_AppendAssignsGaplessIDs(t *testing.T) {
	log := registry.NewTxLog()

	for i := 0; i < 5; i++ {
		id := log.Append(domain.TxKindTransfer, 1, "alice", "bob", nil, domain.OpStandardTransfer, 100)
		assert.Equal(t, uint64(i), id)
	}

	page, total := log.Range(0, 100)
	assert.Equal(t, uint64(5), total)
	require.Len(t, page, 5)
	for i, tx := range page {
		assert.Equal(t, uint64(i), tx.ID)
	}
}

func TestTxLog_RangeDefaultsAndCap(t *testing.T) {
	log := registry.NewTxLog()
	for i := 0; i < 250; i++ {
		log.Append(domain.TxKindMint, 0, "registry", "alice", nil, domain.OpMintNFT, 100)
	}

	// length 0 falls back to the default page size
	page, total := log.Range(0, 0)
	assert.Equal(t, uint64(250), total)
	assert.Len(t, page, domain.DefaultTakeValue)

	// oversized length is capped
	page, _ = log.Range(0, 9999)
	assert.Len(t, page, domain.MaxTransactionPageLength)

	// pages address by index
	page, _ = log.Range(240, 100)
	require.Len(t, page, 10)
	assert.Equal(t, uint64(240), page[0].ID)

	// start past the end yields an empty page with the true total
	page, total = log.Range(1000, 10)
	assert.Empty(t, page)
	assert.Equal(t, uint64(250), total)
}

func TestTxLog_Get(t *testing.T) {
	log := registry.NewTxLog()
	log.Append(domain.TxKindUpload, 0, "alice", "registry", nil, "upload_file:art.svg", 100)
	log.Append(domain.TxKindMint, 0, "registry", "bob", nil, domain.OpMintNFT, 200)

	tx, ok := log.Get(1)
	require.True(t, ok)
	assert.Equal(t, domain.OpMintNFT, tx.Operation)
	assert.Equal(t, domain.Timestamp(200), tx.Timestamp)

	_, ok = log.Get(99)
	assert.False(t, ok)
}
