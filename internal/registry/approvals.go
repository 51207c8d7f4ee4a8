package registry

import "github.com/feral-file/nft-registry/internal/domain"

// Approvals owns delegated-transfer grants: token-scoped keyed by
// (token id, spender) and collection-scoped keyed by (owner, spender).
// Expiry is logical, checked at read time, never swept. Not safe for
// concurrent use; the Registry serializes access.
type Approvals struct {
	token      map[domain.TokenID]map[domain.Identity]domain.Approval
	collection map[domain.Identity]map[domain.Identity]domain.Approval
}

// NewApprovals creates an empty approval engine.
func NewApprovals() *Approvals {
	return &Approvals{
		token:      make(map[domain.TokenID]map[domain.Identity]domain.Approval),
		collection: make(map[domain.Identity]map[domain.Identity]domain.Approval),
	}
}

// GrantToken stores or overwrites a token-scoped approval.
func (a *Approvals) GrantToken(tokenID domain.TokenID, spender domain.Identity, expiresAt *domain.Timestamp, now domain.Timestamp) {
	spenders, ok := a.token[tokenID]
	if !ok {
		spenders = make(map[domain.Identity]domain.Approval)
		a.token[tokenID] = spenders
	}
	spenders[spender] = domain.Approval{
		Spender:   spender,
		TokenID:   tokenID,
		ExpiresAt: expiresAt,
		CreatedAt: now,
	}
}

// GrantCollection stores or overwrites a collection-scoped approval.
// TokenID is 0 in the stored record; it is meaningless at collection scope.
func (a *Approvals) GrantCollection(owner, spender domain.Identity, expiresAt *domain.Timestamp, now domain.Timestamp) {
	spenders, ok := a.collection[owner]
	if !ok {
		spenders = make(map[domain.Identity]domain.Approval)
		a.collection[owner] = spenders
	}
	spenders[spender] = domain.Approval{
		Spender:   spender,
		ExpiresAt: expiresAt,
		CreatedAt: now,
	}
}

// IsApproved reports whether spender holds a non-expired token-scoped
// approval for tokenID, or a non-expired collection-scoped approval from
// owner.
func (a *Approvals) IsApproved(spender, owner domain.Identity, tokenID domain.TokenID, now domain.Timestamp) bool {
	if approval, ok := a.token[tokenID][spender]; ok && approval.Valid(now) {
		return true
	}
	approval, ok := a.collection[owner][spender]
	return ok && approval.Valid(now)
}

// ConsumeToken deletes the token-scoped approval for (tokenID, spender) if
// present. Called exactly once per successful delegated transfer; collection
// grants are left untouched so a delegate may reuse them until revoked or
// expired.
func (a *Approvals) ConsumeToken(tokenID domain.TokenID, spender domain.Identity) {
	spenders, ok := a.token[tokenID]
	if !ok {
		return
	}
	delete(spenders, spender)
	if len(spenders) == 0 {
		delete(a.token, tokenID)
	}
}
