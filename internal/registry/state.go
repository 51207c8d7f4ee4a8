package registry

import (
	"github.com/feral-file/nft-registry/internal/domain"
)

// State is the serializable image of the registry's core state, exchanged
// with the snapshot layer. Maps marshal with string keys under
// encoding/json, so the shape round-trips as-is.
type State struct {
	TokenCounter        uint64                                                     `json:"token_counter"`
	Tokens              map[domain.TokenID]domain.Token                            `json:"tokens"`
	TokenApprovals      map[domain.TokenID]map[domain.Identity]domain.Approval     `json:"token_approvals"`
	CollectionApprovals map[domain.Identity]map[domain.Identity]domain.Approval    `json:"collection_approvals"`
	Transactions        []domain.Transaction                                       `json:"transactions"`
	TxCounter           uint64                                                     `json:"tx_counter"`
	Archives            []domain.ArchiveInfo                                       `json:"archives"`
	Details             domain.CollectionDetails                                   `json:"details"`
	MintedAssets        []string                                                   `json:"minted_assets"`
}

// Export copies the registry's core state for snapshotting. The ownership
// index is derived and deliberately not exported; Restore rebuilds it from
// token owner fields, so the two can never diverge across a restore.
func (r *Registry) Export() State {
	r.mu.RLock()
	defer r.mu.RUnlock()

	st := State{
		TokenCounter:        r.ledger.nextID,
		Tokens:              make(map[domain.TokenID]domain.Token, len(r.ledger.tokens)),
		TokenApprovals:      make(map[domain.TokenID]map[domain.Identity]domain.Approval, len(r.approvals.token)),
		CollectionApprovals: make(map[domain.Identity]map[domain.Identity]domain.Approval, len(r.approvals.collection)),
		Transactions:        append([]domain.Transaction(nil), r.log.entries...),
		TxCounter:           r.log.nextID,
		Archives:            append([]domain.ArchiveInfo(nil), r.log.archives...),
		Details:             r.copyDetails(),
		MintedAssets:        make([]string, 0, len(r.mintedAssets)),
	}

	for id, token := range r.ledger.tokens {
		st.Tokens[id] = *copyToken(token)
	}
	for id, spenders := range r.approvals.token {
		m := make(map[domain.Identity]domain.Approval, len(spenders))
		for spender, approval := range spenders {
			m[spender] = approval
		}
		st.TokenApprovals[id] = m
	}
	for owner, spenders := range r.approvals.collection {
		m := make(map[domain.Identity]domain.Approval, len(spenders))
		for spender, approval := range spenders {
			m[spender] = approval
		}
		st.CollectionApprovals[owner] = m
	}
	for key := range r.mintedAssets {
		st.MintedAssets = append(st.MintedAssets, key)
	}
	return st
}

// Restore replaces the registry's core state wholesale from a snapshot.
func (r *Registry) Restore(st State) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ledger := NewLedger()
	ledger.nextID = st.TokenCounter
	for id, token := range st.Tokens {
		t := token
		ledger.tokens[id] = &t
		ledger.indexFor(t.Owner)[id] = struct{}{}
		if id >= ledger.nextID {
			ledger.nextID = id + 1
		}
	}
	r.ledger = ledger

	approvals := NewApprovals()
	for id, spenders := range st.TokenApprovals {
		m := make(map[domain.Identity]domain.Approval, len(spenders))
		for spender, approval := range spenders {
			m[spender] = approval
		}
		approvals.token[id] = m
	}
	for owner, spenders := range st.CollectionApprovals {
		m := make(map[domain.Identity]domain.Approval, len(spenders))
		for spender, approval := range spenders {
			m[spender] = approval
		}
		approvals.collection[owner] = m
	}
	r.approvals = approvals

	log := NewTxLog()
	log.entries = append([]domain.Transaction(nil), st.Transactions...)
	log.nextID = st.TxCounter
	if n := uint64(len(log.entries)); log.nextID < n {
		log.nextID = n
	}
	log.archives = append([]domain.ArchiveInfo(nil), st.Archives...)
	r.log = log

	r.details = st.Details
	r.mintedAssets = make(map[string]bool, len(st.MintedAssets))
	for _, key := range st.MintedAssets {
		r.mintedAssets[key] = true
	}
}
