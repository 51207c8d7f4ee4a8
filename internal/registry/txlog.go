package registry

import "github.com/feral-file/nft-registry/internal/domain"

// TxLog is the append-only transaction ledger. IDs start at 0, increase by
// one per append, and are never reordered or mutated after append. Not safe
// for concurrent use; the Registry serializes access.
type TxLog struct {
	entries  []domain.Transaction
	nextID   uint64
	archives []domain.ArchiveInfo
}

// NewTxLog creates an empty transaction log.
func NewTxLog() *TxLog {
	return &TxLog{}
}

// Append records one state-changing operation and returns its transaction id.
func (t *TxLog) Append(kind string, tokenID domain.TokenID, from, to domain.Identity, memo []byte, operation string, ts domain.Timestamp) uint64 {
	id := t.nextID
	t.nextID++

	t.entries = append(t.entries, domain.Transaction{
		ID:        id,
		Kind:      kind,
		Timestamp: ts,
		TokenID:   tokenID,
		From:      from,
		To:        to,
		Memo:      memo,
		Operation: operation,
	})
	return id
}

// Range returns up to length transactions starting at index start, plus the
// total number of transactions held. Length defaults to 10 and is capped at
// MaxTransactionPageLength.
func (t *TxLog) Range(start uint64, length uint64) ([]domain.Transaction, uint64) {
	if length == 0 {
		length = domain.DefaultTakeValue
	}
	if length > domain.MaxTransactionPageLength {
		length = domain.MaxTransactionPageLength
	}

	total := uint64(len(t.entries))
	if start >= total {
		return nil, total
	}
	end := start + length
	if end > total {
		end = total
	}

	out := make([]domain.Transaction, end-start)
	copy(out, t.entries[start:end])
	return out, total
}

// Get returns the transaction with the given id.
func (t *TxLog) Get(id uint64) (domain.Transaction, bool) {
	for _, tx := range t.entries {
		if tx.ID == id {
			return tx, true
		}
	}
	return domain.Transaction{}, false
}

// Archives returns the external archive pointers.
func (t *TxLog) Archives() []domain.ArchiveInfo {
	out := make([]domain.ArchiveInfo, len(t.archives))
	copy(out, t.archives)
	return out
}
