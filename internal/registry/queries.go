package registry

import "github.com/feral-file/nft-registry/internal/domain"

// TotalSupply returns the number of minted tokens.
func (r *Registry) TotalSupply() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ledger.TotalSupply()
}

// OwnerOf resolves each token id to its owner, nil for unknown ids. The
// result parallels the request slice.
func (r *Registry) OwnerOf(ids []domain.TokenID) []*domain.Identity {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Identity, len(ids))
	for i, id := range ids {
		if owner, ok := r.ledger.Owner(id); ok {
			out[i] = &owner
		}
	}
	return out
}

// BalanceOf returns each identity's owned-token count, parallel to the
// request slice.
func (r *Registry) BalanceOf(owners []domain.Identity) []uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]uint64, len(owners))
	for i, owner := range owners {
		out[i] = r.ledger.BalanceOf(owner)
	}
	return out
}

// TokenMetadata returns each token's metadata, nil for unknown ids, parallel
// to the request slice.
func (r *Registry) TokenMetadata(ids []domain.TokenID) []*domain.Metadata {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Metadata, len(ids))
	for i, id := range ids {
		if token, ok := r.ledger.Token(id); ok {
			md := token.Metadata
			out[i] = &md
		}
	}
	return out
}

// Token returns the full token record, nil when absent.
func (r *Registry) Token(id domain.TokenID) *domain.Token {
	r.mu.RLock()
	defer r.mu.RUnlock()

	token, ok := r.ledger.Token(id)
	if !ok {
		return nil
	}
	return token
}

// Tokens lists token ids from the inclusive cursor prev.
func (r *Registry) Tokens(prev domain.TokenID, take uint64) []domain.TokenID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ledger.ListTokens(prev, take)
}

// TokensOf lists the identity's token ids strictly after the cursor prev.
func (r *Registry) TokensOf(owner domain.Identity, prev domain.TokenID, take uint64) []domain.TokenID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ledger.TokensOf(owner, prev, take)
}

// UserTokens returns full records for every token the identity owns,
// ascending by id.
func (r *Registry) UserTokens(owner domain.Identity) []domain.Token {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.ledger.OwnedIDs(owner)
	out := make([]domain.Token, 0, len(ids))
	for _, id := range ids {
		if token, ok := r.ledger.Token(id); ok {
			out = append(out, *token)
		}
	}
	return out
}

// TransferHistory returns a token's transfer records, empty for unknown ids.
func (r *Registry) TransferHistory(id domain.TokenID) []domain.TransferRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	token, ok := r.ledger.Token(id)
	if !ok {
		return nil
	}
	return token.TransferHistory
}

// Transactions returns a page of the transaction log plus the total count.
func (r *Registry) Transactions(start uint64, length uint64) ([]domain.Transaction, uint64) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.log.Range(start, length)
}

// Transaction returns the transaction with the given id, nil when absent.
func (r *Registry) Transaction(id uint64) *domain.Transaction {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tx, ok := r.log.Get(id)
	if !ok {
		return nil
	}
	return &tx
}

// Archives returns the external archive pointers.
func (r *Registry) Archives() []domain.ArchiveInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.log.Archives()
}
