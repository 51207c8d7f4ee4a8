package rest

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/feral-file/nft-registry/internal/domain"
	"github.com/feral-file/nft-registry/internal/registry"
)

// tokenIDsRequest is the body of the batch token lookups.
type tokenIDsRequest struct {
	TokenIDs []domain.TokenID `json:"token_ids"`
}

// ownersRequest is the body of the batch balance lookup.
type ownersRequest struct {
	Owners []domain.Identity `json:"owners"`
}

// mintBundleRequest asks for a bundle of the given size.
type mintBundleRequest struct {
	Quantity uint64 `json:"quantity"`
}

// adminRequest adds an admin or whitelist entry.
type adminRequest struct {
	Principal domain.Identity `json:"principal"`
	Type      string          `json:"type,omitempty"`
}

// baseURLRequest replaces the collection base URL.
type baseURLRequest struct {
	BaseURL string `json:"base_url"`
}

// batchResult is the wire shape of one element of a mutating batch outcome:
// the settlement timestamp on success, the structured error otherwise.
type batchResult struct {
	Timestamp *domain.Timestamp     `json:"timestamp,omitempty"`
	Error     *domain.TransferError `json:"error,omitempty"`
}

func toBatchResults(results []registry.TransferResult) []batchResult {
	out := make([]batchResult, len(results))
	for i, r := range results {
		if r.Err != nil {
			out[i] = batchResult{Error: r.Err}
			continue
		}
		ts := r.Timestamp
		out[i] = batchResult{Timestamp: &ts}
	}
	return out
}

// transactionsResponse is one page of the transaction log.
type transactionsResponse struct {
	Transactions []domain.Transaction `json:"transactions"`
	Total        uint64               `json:"total"`
}

// uintQuery parses an optional unsigned query parameter, returning def when
// the parameter is absent.
func uintQuery(c *gin.Context, name string, def uint64) (uint64, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return v, nil
}

// checkQueryBatch rejects oversized batch query bodies.
func checkQueryBatch(n int) error {
	if n > domain.MaxQueryBatchSize {
		return fmt.Errorf("batch size %d exceeds limit %d", n, domain.MaxQueryBatchSize)
	}
	return nil
}

// checkUpdateBatch rejects empty or oversized mutating batches.
func checkUpdateBatch(n int) error {
	if n == 0 {
		return fmt.Errorf("batch must not be empty")
	}
	if n > domain.MaxUpdateBatchSize {
		return fmt.Errorf("batch size %d exceeds limit %d", n, domain.MaxUpdateBatchSize)
	}
	return nil
}
