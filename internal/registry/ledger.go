package registry

import (
	"sort"

	"github.com/feral-file/nft-registry/internal/domain"
)

// Ledger owns the token records, the derived owner index, and the token id
// counter. It is not safe for concurrent use; the Registry serializes access.
type Ledger struct {
	nextID  domain.TokenID
	tokens  map[domain.TokenID]*domain.Token
	byOwner map[domain.Identity]map[domain.TokenID]struct{}
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		tokens:  make(map[domain.TokenID]*domain.Token),
		byOwner: make(map[domain.Identity]map[domain.TokenID]struct{}),
	}
}

// Owner returns the current owner of a token.
func (l *Ledger) Owner(id domain.TokenID) (domain.Identity, bool) {
	token, ok := l.tokens[id]
	if !ok {
		return "", false
	}
	return token.Owner, true
}

// Token returns a deep copy of the token record.
func (l *Ledger) Token(id domain.TokenID) (*domain.Token, bool) {
	token, ok := l.tokens[id]
	if !ok {
		return nil, false
	}
	return copyToken(token), true
}

// TotalSupply returns the number of minted tokens.
func (l *Ledger) TotalSupply() uint64 {
	return uint64(len(l.tokens))
}

// BalanceOf returns the number of tokens the identity owns.
func (l *Ledger) BalanceOf(owner domain.Identity) uint64 {
	return uint64(len(l.byOwner[owner]))
}

// Issue allocates the next token id, inserts a record owned by owner, and
// updates the owner index. IDs are dense, start at 0, and are never reused
// even if burning is ever added.
func (l *Ledger) Issue(owner domain.Identity, metadata domain.Metadata, now domain.Timestamp) domain.TokenID {
	id := l.nextID
	l.nextID++

	l.tokens[id] = &domain.Token{
		ID:        id,
		Owner:     owner,
		Metadata:  metadata,
		CreatedAt: now,
	}
	l.indexFor(owner)[id] = struct{}{}
	return id
}

// SetOwner is the single mutation primitive all transfers funnel through: it
// moves the id between owner index entries, updates the token's owner field,
// and appends a transfer-history entry, all together. Returns ErrNotFound
// when the token does not exist.
func (l *Ledger) SetOwner(id domain.TokenID, to domain.Identity, ts domain.Timestamp) error {
	token, ok := l.tokens[id]
	if !ok {
		return domain.ErrNotFound
	}

	from := token.Owner
	delete(l.byOwner[from], id)
	if len(l.byOwner[from]) == 0 {
		delete(l.byOwner, from)
	}
	l.indexFor(to)[id] = struct{}{}

	token.Owner = to
	token.TransferHistory = append(token.TransferHistory, domain.TransferRecord{
		From:      from,
		To:        to,
		Timestamp: ts,
	})
	return nil
}

// TokensOf returns the ids owned by owner that are strictly greater than
// prev, ascending, capped at take (clamped). The exclusive cursor pairs with
// the inclusive one of ListTokens; the asymmetry is deliberate and must not
// be unified.
func (l *Ledger) TokensOf(owner domain.Identity, prev domain.TokenID, take uint64) []domain.TokenID {
	take = clampTake(take)
	ids := make([]domain.TokenID, 0, len(l.byOwner[owner]))
	for id := range l.byOwner[owner] {
		if id > prev {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	if uint64(len(ids)) > take {
		ids = ids[:take]
	}
	return ids
}

// ListTokens returns all ids greater than or equal to prev, ascending,
// capped at take (clamped). The cursor is inclusive here.
func (l *Ledger) ListTokens(prev domain.TokenID, take uint64) []domain.TokenID {
	take = clampTake(take)
	ids := make([]domain.TokenID, 0, len(l.tokens))
	for id := range l.tokens {
		if id >= prev {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	if uint64(len(ids)) > take {
		ids = ids[:take]
	}
	return ids
}

// OwnedIDs returns all ids owned by owner, ascending, without pagination.
func (l *Ledger) OwnedIDs(owner domain.Identity) []domain.TokenID {
	ids := make([]domain.TokenID, 0, len(l.byOwner[owner]))
	for id := range l.byOwner[owner] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (l *Ledger) indexFor(owner domain.Identity) map[domain.TokenID]struct{} {
	set, ok := l.byOwner[owner]
	if !ok {
		set = make(map[domain.TokenID]struct{})
		l.byOwner[owner] = set
	}
	return set
}

func clampTake(take uint64) uint64 {
	if take == 0 {
		return domain.DefaultTakeValue
	}
	if take > domain.MaxTakeValue {
		return domain.MaxTakeValue
	}
	return take
}

func copyToken(t *domain.Token) *domain.Token {
	out := *t
	out.TransferHistory = append([]domain.TransferRecord(nil), t.TransferHistory...)
	if t.Metadata.Properties != nil {
		props := make(map[string]domain.Property, len(t.Metadata.Properties))
		for k, v := range t.Metadata.Properties {
			props[k] = v
		}
		out.Metadata.Properties = props
	}
	return &out
}
