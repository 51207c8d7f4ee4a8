package registry

import (
	"sync"

	"github.com/feral-file/nft-registry/internal/adapter"
	"github.com/feral-file/nft-registry/internal/assets"
	"github.com/feral-file/nft-registry/internal/domain"
)

// AccessGate supplies the admin and whitelist predicates the core consumes.
// Membership management lives in the acl package.
type AccessGate interface {
	IsAdmin(domain.Identity) bool
	IsWhitelisted(domain.Identity) bool
}

// PaymentVerifier is the reserved settlement hook: it is consulted with the
// computed bundle price before any mint-state mutation. Collecting and
// validating an actual monetary transfer is out of scope; the default
// verifier accepts everything.
type PaymentVerifier interface {
	VerifyPayment(buyer domain.Identity, quantity uint64, price uint64) error
}

type acceptAllVerifier struct{}

func (acceptAllVerifier) VerifyPayment(domain.Identity, uint64, uint64) error { return nil }

// Registry is the root object owning the combined ledger, approval,
// transaction-log, schedule, and collection state. Every mutating operation
// runs under the write lock for its whole call, which gives the same
// per-call atomicity a single-threaded dispatcher would; queries share the
// read lock.
type Registry struct {
	mu sync.RWMutex

	clock    adapter.Clock
	acl      AccessGate
	assets   assets.Store
	verifier PaymentVerifier

	// identity is the principal the registry itself acts under; it is the
	// "from" side of mint transactions and the "to" side of uploads.
	identity domain.Identity

	ledger       *Ledger
	approvals    *Approvals
	log          *TxLog
	details      domain.CollectionDetails
	mintedAssets map[string]bool
}

// Option configures a Registry.
type Option func(*Registry)

// WithClock overrides the wall clock, for tests.
func WithClock(clock adapter.Clock) Option {
	return func(r *Registry) { r.clock = clock }
}

// WithPaymentVerifier installs a settlement hook.
func WithPaymentVerifier(v PaymentVerifier) Option {
	return func(r *Registry) { r.verifier = v }
}

// WithIdentity sets the registry's own principal.
func WithIdentity(id domain.Identity) Option {
	return func(r *Registry) { r.identity = id }
}

// WithCollectionDetails seeds the collection configuration.
func WithCollectionDetails(details domain.CollectionDetails) Option {
	return func(r *Registry) { r.details = details }
}

// New creates a registry backed by the given access gate and asset store.
func New(gate AccessGate, store assets.Store, opts ...Option) *Registry {
	r := &Registry{
		clock:        adapter.NewClock(),
		acl:          gate,
		assets:       store,
		verifier:     acceptAllVerifier{},
		identity:     "registry",
		ledger:       NewLedger(),
		approvals:    NewApprovals(),
		log:          NewTxLog(),
		mintedAssets: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Transfer executes a batch of owner-initiated transfers. Elements are
// evaluated and committed independently in order; the result slice parallels
// the request slice.
func (r *Registry) Transfer(caller domain.Identity, reqs []TransferRequest) []TransferResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	results := make([]TransferResult, len(reqs))
	for i, req := range reqs {
		results[i] = r.transferOne(caller, req)
	}
	return results
}

func (r *Registry) transferOne(caller domain.Identity, req TransferRequest) TransferResult {
	owner, ok := r.ledger.Owner(req.TokenID)
	if !ok {
		return TransferResult{Err: domain.ErrNotFound}
	}
	if owner != caller {
		return TransferResult{Err: domain.ErrUnauthorized}
	}

	ts := r.clock.NowNanos()
	if req.CreatedAtTime != nil {
		ts = *req.CreatedAtTime
	}

	if err := r.ledger.SetOwner(req.TokenID, req.To, ts); err != nil {
		return TransferResult{Err: domain.ErrNotFound}
	}
	r.log.Append(domain.TxKindTransfer, req.TokenID, caller, req.To, req.Memo, domain.OpStandardTransfer, ts)
	return TransferResult{Timestamp: ts}
}

// TransferFrom executes a batch of delegated transfers. Each element
// requires the stated from to own the token and the caller to hold a valid
// approval; a used token-scoped approval is consumed, collection-scoped
// approvals are not.
func (r *Registry) TransferFrom(caller domain.Identity, reqs []TransferFromRequest) []TransferResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	results := make([]TransferResult, len(reqs))
	for i, req := range reqs {
		results[i] = r.transferFromOne(caller, req)
	}
	return results
}

func (r *Registry) transferFromOne(caller domain.Identity, req TransferFromRequest) TransferResult {
	owner, ok := r.ledger.Owner(req.TokenID)
	if !ok {
		return TransferResult{Err: domain.ErrNotFound}
	}
	if owner != req.From {
		return TransferResult{Err: domain.ErrUnauthorized}
	}

	now := r.clock.NowNanos()
	if !r.approvals.IsApproved(caller, req.From, req.TokenID, now) {
		return TransferResult{Err: domain.ErrUnauthorized}
	}

	ts := now
	if req.CreatedAtTime != nil {
		ts = *req.CreatedAtTime
	}

	if err := r.ledger.SetOwner(req.TokenID, req.To, ts); err != nil {
		return TransferResult{Err: domain.ErrNotFound}
	}
	r.approvals.ConsumeToken(req.TokenID, caller)
	r.log.Append(domain.TxKindTransfer, req.TokenID, req.From, req.To, req.Memo, domain.OpTransferFrom, ts)
	return TransferResult{Timestamp: ts}
}

// ApproveTokens executes a batch of token-scoped approvals. Each element
// requires the caller to own the token.
func (r *Registry) ApproveTokens(caller domain.Identity, reqs []ApprovalRequest) []TransferResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	results := make([]TransferResult, len(reqs))
	for i, req := range reqs {
		results[i] = r.approveTokenOne(caller, req)
	}
	return results
}

func (r *Registry) approveTokenOne(caller domain.Identity, req ApprovalRequest) TransferResult {
	owner, ok := r.ledger.Owner(req.TokenID)
	if !ok {
		return TransferResult{Err: domain.ErrNotFound}
	}
	if owner != caller {
		return TransferResult{Err: domain.ErrUnauthorized}
	}

	ts := r.clock.NowNanos()
	r.approvals.GrantToken(req.TokenID, req.Spender, req.ExpiresAt, ts)
	r.log.Append(domain.TxKindApprove, req.TokenID, caller, req.Spender, req.Memo, domain.OpTokenApproval, ts)
	return TransferResult{Timestamp: ts}
}

// ApproveCollection approves a spender for the caller's whole collection.
// Self-approval is rejected.
func (r *Registry) ApproveCollection(caller domain.Identity, req CollectionApprovalRequest) (domain.Timestamp, *domain.TransferError) {
	if caller == req.Spender {
		return 0, domain.ErrSelfApproval()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ts := r.clock.NowNanos()
	r.approvals.GrantCollection(caller, req.Spender, req.ExpiresAt, ts)
	r.log.Append(domain.TxKindApprove, 0, caller, req.Spender, req.Memo, domain.OpCollectionApproval, ts)
	return ts, nil
}

// IsApproved reports whether spender may currently transfer the token on
// owner's behalf.
func (r *Registry) IsApproved(spender, owner domain.Identity, tokenID domain.TokenID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.approvals.IsApproved(spender, owner, tokenID, r.clock.NowNanos())
}
