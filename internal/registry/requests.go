package registry

import "github.com/feral-file/nft-registry/internal/domain"

// TransferRequest is one element of a direct transfer batch.
type TransferRequest struct {
	To            domain.Identity   `json:"to"`
	TokenID       domain.TokenID    `json:"token_id"`
	Memo          []byte            `json:"memo,omitempty"`
	CreatedAtTime *domain.Timestamp `json:"created_at_time,omitempty"`
}

// TransferFromRequest is one element of a delegated transfer batch.
type TransferFromRequest struct {
	From          domain.Identity   `json:"from"`
	To            domain.Identity   `json:"to"`
	TokenID       domain.TokenID    `json:"token_id"`
	Memo          []byte            `json:"memo,omitempty"`
	CreatedAtTime *domain.Timestamp `json:"created_at_time,omitempty"`
}

// ApprovalRequest is one element of a token approval batch.
type ApprovalRequest struct {
	Spender   domain.Identity   `json:"spender"`
	TokenID   domain.TokenID    `json:"token_id"`
	ExpiresAt *domain.Timestamp `json:"expires_at,omitempty"`
	Memo      []byte            `json:"memo,omitempty"`
}

// CollectionApprovalRequest approves a spender for the caller's whole
// collection.
type CollectionApprovalRequest struct {
	Spender   domain.Identity   `json:"spender"`
	ExpiresAt *domain.Timestamp `json:"expires_at,omitempty"`
	Memo      []byte            `json:"memo,omitempty"`
}

// TransferResult is the per-element outcome of a mutating batch: the
// settlement timestamp on success, the structured error otherwise. Batch
// elements commit independently; one failure never rolls back siblings.
type TransferResult struct {
	Timestamp domain.Timestamp
	Err       *domain.TransferError
}

// MintReceipt describes a completed mint.
type MintReceipt struct {
	TokenID  domain.TokenID  `json:"token_id"`
	Quantity uint64          `json:"quantity"`
	Price    uint64          `json:"price"`
	Metadata domain.Metadata `json:"metadata"`
}

// BundleOffer is one purchasable bundle visible to a given identity.
type BundleOffer struct {
	Schedule string `json:"schedule"`
	Quantity uint64 `json:"quantity"`
	Price    uint64 `json:"price"`
}

// ScheduleUpdate upserts a mint schedule by name. Nil fields keep the
// current value on update and fall back to safe defaults on insert
// (inactive, not whitelist-only). Tiers always overwrite.
type ScheduleUpdate struct {
	Name          string              `json:"name"`
	Tiers         []domain.BundleTier `json:"tiers"`
	StartTime     *domain.Timestamp   `json:"start_time,omitempty"`
	EndTime       *domain.Timestamp   `json:"end_time,omitempty"`
	Active        *bool               `json:"active,omitempty"`
	WhitelistOnly *bool               `json:"whitelist_only,omitempty"`
}

// CollectionUpdate updates collection details. Nil fields keep the current
// value. MaxSupply is rejected once any token has been minted.
type CollectionUpdate struct {
	Name           *string `json:"name,omitempty"`
	Symbol         *string `json:"symbol,omitempty"`
	Description    *string `json:"description,omitempty"`
	MaxSupply      *uint64 `json:"max_supply,omitempty"`
	BaseURL        *string `json:"base_url,omitempty"`
	PricingEnabled *bool   `json:"pricing_enabled,omitempty"`
}

// UploadRequest stores a blob in the asset store. Key is generated when
// absent.
type UploadRequest struct {
	Key         *string `json:"key,omitempty"`
	ContentType string  `json:"content_type"`
	Data        []byte  `json:"data"`
	Description *string `json:"description,omitempty"`
}
