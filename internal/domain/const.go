package domain

const (
	// MaxQueryBatchSize caps batched query requests (owner-of, balance-of,
	// token metadata).
	MaxQueryBatchSize = 100

	// MaxUpdateBatchSize caps batched mutating requests (transfer,
	// transfer_from, approve).
	MaxUpdateBatchSize = 20

	// DefaultTakeValue is the page size used when a listing call omits take.
	DefaultTakeValue = 10

	// MaxTakeValue caps the page size of listing calls.
	MaxTakeValue = 100

	// MaxTransactionPageLength caps one transaction range query.
	MaxTransactionPageLength = 100
)
