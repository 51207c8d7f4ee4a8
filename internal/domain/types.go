package domain

// Identity is an opaque principal identifier supplied by the environment.
// The registry never interprets its contents; it is only compared for
// equality and used as a map key.
type Identity string

// Anonymous is the identity assigned to callers that present no principal.
const Anonymous Identity = "anonymous"

// Timestamp is a wall-clock instant in nanoseconds since the Unix epoch.
type Timestamp = uint64

// TokenID is a dense, monotonically increasing token identifier assigned at
// mint time. IDs start at 0 and are never reused.
type TokenID = uint64

// Token is a uniquely identified, singly-owned asset record.
type Token struct {
	ID              TokenID          `json:"token_id"`
	Owner           Identity         `json:"owner"`
	Metadata        Metadata         `json:"metadata"`
	CreatedAt       Timestamp        `json:"created_at"`
	TransferHistory []TransferRecord `json:"transfer_history"`
}

// TransferRecord is one entry of a token's append-only transfer history.
type TransferRecord struct {
	From      Identity  `json:"from"`
	To        Identity  `json:"to"`
	Timestamp Timestamp `json:"timestamp"`
}

// Metadata describes a token's content.
type Metadata struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	ImageURL    string              `json:"image_url"`
	ContentURL  *string             `json:"content_url,omitempty"`
	ContentType *string             `json:"content_type,omitempty"`
	Properties  map[string]Property `json:"properties,omitempty"`
}

// Approval is a delegated-transfer grant. For token-scoped approvals TokenID
// is the granted token; for collection-scoped approvals it is 0 and unused.
type Approval struct {
	Spender   Identity   `json:"spender"`
	TokenID   TokenID    `json:"token_id"`
	ExpiresAt *Timestamp `json:"expires_at,omitempty"`
	CreatedAt Timestamp  `json:"created_at"`
}

// Valid reports whether the approval is usable at the given instant. A nil
// ExpiresAt never expires.
func (a Approval) Valid(now Timestamp) bool {
	return a.ExpiresAt == nil || *a.ExpiresAt > now
}

// Transaction is an immutable, sequentially indexed ledger entry describing
// one state-changing operation. TokenID is 0 for collection-level events.
type Transaction struct {
	ID        uint64    `json:"transaction_id"`
	Kind      string    `json:"kind"`
	Timestamp Timestamp `json:"timestamp"`
	TokenID   TokenID   `json:"token_id"`
	From      Identity  `json:"from"`
	To        Identity  `json:"to"`
	Memo      []byte    `json:"memo,omitempty"`
	Operation string    `json:"operation"`
}

// Transaction kinds.
const (
	TxKindTransfer = "transfer"
	TxKindMint     = "mint"
	TxKindApprove  = "approve"
	TxKindUpload   = "upload"
)

// Operation descriptors attached to transactions.
const (
	OpStandardTransfer   = "standard_transfer"
	OpTransferFrom       = "transfer_from"
	OpTokenApproval      = "token_approval"
	OpCollectionApproval = "collection_approval"
	OpMintNFT            = "mint_nft"
)

// ArchiveInfo points at a range of transactions held by an external archive.
// Archival itself is out of scope; the registry only serves these pointers.
type ArchiveInfo struct {
	ArchiveID string `json:"archive_id"`
	Start     uint64 `json:"start"`
	End       uint64 `json:"end"`
}

// BundleTier maps a minimum purchased quantity to the total price of one
// bundle of that quantity.
type BundleTier struct {
	Quantity uint64 `json:"quantity"`
	Price    uint64 `json:"price"`
}

// MintSchedule is a named, time-boxed, audience-gated configuration
// controlling when and at what price new tokens may be issued. Nil time
// bounds are unbounded on that side.
type MintSchedule struct {
	Name          string       `json:"name"`
	Tiers         []BundleTier `json:"tiers"`
	StartTime     *Timestamp   `json:"start_time,omitempty"`
	EndTime       *Timestamp   `json:"end_time,omitempty"`
	Active        bool         `json:"active"`
	WhitelistOnly bool         `json:"whitelist_only"`
}

// Contains reports whether the schedule's time window contains the instant.
func (s MintSchedule) Contains(now Timestamp) bool {
	if s.StartTime != nil && now < *s.StartTime {
		return false
	}
	if s.EndTime != nil && now > *s.EndTime {
		return false
	}
	return true
}

// CollectionDetails is the singleton collection configuration.
type CollectionDetails struct {
	Name           string         `json:"name"`
	Symbol         string         `json:"symbol"`
	Description    string         `json:"description"`
	MaxSupply      *uint64        `json:"max_supply,omitempty"`
	BaseURL        string         `json:"base_url"`
	PricingEnabled bool           `json:"pricing_enabled"`
	Schedules      []MintSchedule `json:"schedules,omitempty"`
}

// Standard names a token standard the registry conforms to.
type Standard struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// SupportedStandards lists the standards implemented by the registry.
func SupportedStandards() []Standard {
	return []Standard{
		{Name: "ICRC-3", URL: "https://github.com/dfinity/ICRC/tree/main/ICRCs/ICRC-3"},
		{Name: "ICRC-7", URL: "https://github.com/dfinity/ICRC/tree/main/ICRCs/ICRC-7"},
		{Name: "ICRC-37", URL: "https://github.com/dfinity/ICRC/tree/main/ICRCs/ICRC-37"},
	}
}

// MetadataEntry is one key/value pair of collection or token metadata.
type MetadataEntry struct {
	Key   string   `json:"key"`
	Value Property `json:"value"`
}
