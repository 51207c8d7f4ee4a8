package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/feral-file/nft-registry/internal/acl"
	"github.com/feral-file/nft-registry/internal/api/middleware"
	"github.com/feral-file/nft-registry/internal/domain"
	"github.com/feral-file/nft-registry/internal/registry"
)

// Snapshotter persists the current application state on demand.
type Snapshotter interface {
	SaveSnapshot(c *gin.Context) error
}

// SnapshotFunc adapts a plain function to Snapshotter.
type SnapshotFunc func(c *gin.Context) error

func (f SnapshotFunc) SaveSnapshot(c *gin.Context) error { return f(c) }

// Handler defines the interface for REST API handlers
type Handler interface {
	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)

	// GetCollection returns the collection details and total supply
	// GET /api/v1/collection
	GetCollection(c *gin.Context)

	// GetCollectionMetadata returns the icrc7-style metadata entries
	// GET /api/v1/collection/metadata
	GetCollectionMetadata(c *gin.Context)

	// GetStandards returns the supported token standards
	// GET /api/v1/collection/standards
	GetStandards(c *gin.Context)

	// OwnerOf resolves owners for a batch of token ids (parallel arrays)
	// POST /api/v1/tokens/owner-of
	OwnerOf(c *gin.Context)

	// BalanceOf returns owned-token counts for a batch of identities
	// POST /api/v1/tokens/balance-of
	BalanceOf(c *gin.Context)

	// TokenMetadata returns metadata for a batch of token ids
	// POST /api/v1/tokens/metadata
	TokenMetadata(c *gin.Context)

	// ListTokens pages over all token ids; the prev cursor is inclusive
	// GET /api/v1/tokens?prev=<id>&take=<n>
	ListTokens(c *gin.Context)

	// GetToken returns the full token record
	// GET /api/v1/tokens/:id
	GetToken(c *gin.Context)

	// GetTransferHistory returns a token's transfer records
	// GET /api/v1/tokens/:id/history
	GetTransferHistory(c *gin.Context)

	// TokensOf pages over an owner's token ids; the prev cursor is exclusive
	// GET /api/v1/owners/:owner/tokens?prev=<id>&take=<n>
	TokensOf(c *gin.Context)

	// UserTokens returns full records for every token the owner holds
	// GET /api/v1/owners/:owner/nfts
	UserTokens(c *gin.Context)

	// ListTransactions returns a page of the transaction log plus the total
	// GET /api/v1/transactions?start=<id>&length=<n>
	ListTransactions(c *gin.Context)

	// GetTransaction returns a single transaction by id
	// GET /api/v1/transactions/:id
	GetTransaction(c *gin.Context)

	// ListArchives returns the external archive pointers
	// GET /api/v1/archives
	ListArchives(c *gin.Context)

	// ActiveSchedules returns the mint schedules open to the caller
	// GET /api/v1/schedules/active
	ActiveSchedules(c *gin.Context)

	// AvailableBundles returns the purchasable bundles for the caller
	// GET /api/v1/bundles
	AvailableBundles(c *gin.Context)

	// CheckApproval reports whether spender may move owner's token
	// GET /api/v1/approvals/check?spender=<p>&owner=<p>&token_id=<id>
	CheckApproval(c *gin.Context)

	// WhoAmI echoes the resolved caller principal
	// GET /api/v1/whoami
	WhoAmI(c *gin.Context)

	// Transfer executes a batch of owner-initiated transfers
	// POST /api/v1/transfers
	Transfer(c *gin.Context)

	// TransferFrom executes a batch of delegated transfers
	// POST /api/v1/transfers/from
	TransferFrom(c *gin.Context)

	// ApproveTokens grants a batch of token-scoped approvals
	// POST /api/v1/approvals/tokens
	ApproveTokens(c *gin.Context)

	// ApproveCollection grants a collection-scoped approval
	// POST /api/v1/approvals/collection
	ApproveCollection(c *gin.Context)

	// Mint mints a single token to the caller (whitelist-gated)
	// POST /api/v1/mint
	Mint(c *gin.Context)

	// MintBundle mints a priced bundle of tokens to the caller
	// POST /api/v1/mint/bundle
	MintBundle(c *gin.Context)

	// UpsertSchedule inserts or updates a mint schedule (admin)
	// PUT /api/v1/schedules/:name
	UpsertSchedule(c *gin.Context)

	// RemoveSchedule deletes a mint schedule (admin)
	// DELETE /api/v1/schedules/:name
	RemoveSchedule(c *gin.Context)

	// UpdateCollection patches the collection details (admin)
	// PATCH /api/v1/collection
	UpdateCollection(c *gin.Context)

	// UpdateBaseURL replaces the collection base URL (admin)
	// PUT /api/v1/collection/base-url
	UpdateBaseURL(c *gin.Context)

	// ListAdmins returns the admin roster
	// GET /api/v1/admins
	ListAdmins(c *gin.Context)

	// AddAdmin registers an admin principal (system admins only)
	// POST /api/v1/admins
	AddAdmin(c *gin.Context)

	// RemoveAdmin removes an admin principal (system admins only)
	// DELETE /api/v1/admins/:principal
	RemoveAdmin(c *gin.Context)

	// CheckWhitelist reports whether a principal is whitelisted
	// GET /api/v1/whitelist/:principal
	CheckWhitelist(c *gin.Context)

	// AddToWhitelist whitelists a principal (admin)
	// POST /api/v1/whitelist
	AddToWhitelist(c *gin.Context)

	// RemoveFromWhitelist removes a principal from the whitelist (admin)
	// DELETE /api/v1/whitelist/:principal
	RemoveFromWhitelist(c *gin.Context)

	// UploadAsset stores a blob in the asset store (admin)
	// POST /api/v1/assets
	UploadAsset(c *gin.Context)

	// ListAssets returns metadata for all stored assets
	// GET /api/v1/assets
	ListAssets(c *gin.Context)

	// DownloadAsset serves an asset blob with its stored content type
	// GET /asset/:key
	DownloadAsset(c *gin.Context)

	// SaveSnapshot persists the current state (admin)
	// POST /api/v1/snapshot
	SaveSnapshot(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	registry *registry.Registry
	acl      *acl.List
	snapshot Snapshotter
}

// NewHandler creates a new REST API handler
func NewHandler(reg *registry.Registry, accessList *acl.List, snapshot Snapshotter) Handler {
	return &handler{
		registry: reg,
		acl:      accessList,
		snapshot: snapshot,
	}
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"supply": h.registry.TotalSupply(),
	})
}

func (h *handler) GetCollection(c *gin.Context) {
	details := h.registry.CollectionDetails()
	c.JSON(http.StatusOK, gin.H{
		"name":            details.Name,
		"symbol":          details.Symbol,
		"description":     details.Description,
		"max_supply":      details.MaxSupply,
		"base_url":        details.BaseURL,
		"pricing_enabled": details.PricingEnabled,
		"total_supply":    h.registry.TotalSupply(),
	})
}

func (h *handler) GetCollectionMetadata(c *gin.Context) {
	c.JSON(http.StatusOK, h.registry.CollectionMetadata())
}

func (h *handler) GetStandards(c *gin.Context) {
	c.JSON(http.StatusOK, domain.SupportedStandards())
}

func (h *handler) OwnerOf(c *gin.Context) {
	var req tokenIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := checkQueryBatch(len(req.TokenIDs)); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, h.registry.OwnerOf(req.TokenIDs))
}

func (h *handler) BalanceOf(c *gin.Context) {
	var req ownersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := checkQueryBatch(len(req.Owners)); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, h.registry.BalanceOf(req.Owners))
}

func (h *handler) TokenMetadata(c *gin.Context) {
	var req tokenIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := checkQueryBatch(len(req.TokenIDs)); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, h.registry.TokenMetadata(req.TokenIDs))
}

func (h *handler) ListTokens(c *gin.Context) {
	prev, err := uintQuery(c, "prev", 0)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	take, err := uintQuery(c, "take", 0)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, h.registry.Tokens(prev, take))
}

func (h *handler) GetToken(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid token id")
		return
	}
	token := h.registry.Token(id)
	if token == nil {
		respondNotFound(c, "Token not found")
		return
	}
	c.JSON(http.StatusOK, token)
}

func (h *handler) GetTransferHistory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid token id")
		return
	}
	if h.registry.Token(id) == nil {
		respondNotFound(c, "Token not found")
		return
	}
	history := h.registry.TransferHistory(id)
	if history == nil {
		history = []domain.TransferRecord{}
	}
	c.JSON(http.StatusOK, history)
}

func (h *handler) TokensOf(c *gin.Context) {
	owner := domain.Identity(c.Param("owner"))
	prev, err := uintQuery(c, "prev", 0)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	take, err := uintQuery(c, "take", 0)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, h.registry.TokensOf(owner, prev, take))
}

func (h *handler) UserTokens(c *gin.Context) {
	owner := domain.Identity(c.Param("owner"))
	c.JSON(http.StatusOK, h.registry.UserTokens(owner))
}

func (h *handler) ListTransactions(c *gin.Context) {
	start, err := uintQuery(c, "start", 0)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	length, err := uintQuery(c, "length", 0)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	page, total := h.registry.Transactions(start, length)
	c.JSON(http.StatusOK, transactionsResponse{Transactions: page, Total: total})
}

func (h *handler) GetTransaction(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid transaction id")
		return
	}
	tx := h.registry.Transaction(id)
	if tx == nil {
		respondNotFound(c, "Transaction not found")
		return
	}
	c.JSON(http.StatusOK, tx)
}

func (h *handler) ListArchives(c *gin.Context) {
	c.JSON(http.StatusOK, h.registry.Archives())
}

func (h *handler) ActiveSchedules(c *gin.Context) {
	c.JSON(http.StatusOK, h.registry.ActiveSchedulesFor(middleware.Principal(c)))
}

func (h *handler) AvailableBundles(c *gin.Context) {
	offers := h.registry.AvailableBundles(middleware.Principal(c))
	if offers == nil {
		offers = []registry.BundleOffer{}
	}
	c.JSON(http.StatusOK, offers)
}

func (h *handler) CheckApproval(c *gin.Context) {
	spender := domain.Identity(c.Query("spender"))
	owner := domain.Identity(c.Query("owner"))
	if spender == "" || owner == "" {
		respondBadRequest(c, "spender and owner are required")
		return
	}
	tokenID, err := uintQuery(c, "token_id", 0)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"approved": h.registry.IsApproved(spender, owner, tokenID),
	})
}

func (h *handler) WhoAmI(c *gin.Context) {
	principal := middleware.Principal(c)
	c.JSON(http.StatusOK, gin.H{
		"principal":   principal,
		"admin":       h.acl.IsAdmin(principal),
		"whitelisted": h.acl.IsWhitelisted(principal),
	})
}

func (h *handler) Transfer(c *gin.Context) {
	var reqs []registry.TransferRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := checkUpdateBatch(len(reqs)); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	results := h.registry.Transfer(middleware.Principal(c), reqs)
	c.JSON(http.StatusOK, toBatchResults(results))
}

func (h *handler) TransferFrom(c *gin.Context) {
	var reqs []registry.TransferFromRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := checkUpdateBatch(len(reqs)); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	results := h.registry.TransferFrom(middleware.Principal(c), reqs)
	c.JSON(http.StatusOK, toBatchResults(results))
}

func (h *handler) ApproveTokens(c *gin.Context) {
	var reqs []registry.ApprovalRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := checkUpdateBatch(len(reqs)); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	results := h.registry.ApproveTokens(middleware.Principal(c), reqs)
	c.JSON(http.StatusOK, toBatchResults(results))
}

func (h *handler) ApproveCollection(c *gin.Context) {
	var req registry.CollectionApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	ts, terr := h.registry.ApproveCollection(middleware.Principal(c), req)
	if terr != nil {
		c.JSON(http.StatusOK, batchResult{Error: terr})
		return
	}
	c.JSON(http.StatusOK, batchResult{Timestamp: &ts})
}

func (h *handler) Mint(c *gin.Context) {
	receipt, err := h.registry.Mint(c.Request.Context(), middleware.Principal(c))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, receipt)
}

func (h *handler) MintBundle(c *gin.Context) {
	var req mintBundleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	receipt, err := h.registry.MintBundle(c.Request.Context(), middleware.Principal(c), req.Quantity)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, receipt)
}

func (h *handler) UpsertSchedule(c *gin.Context) {
	var update registry.ScheduleUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	update.Name = c.Param("name")
	if update.Name == "" {
		respondBadRequest(c, "Schedule name is required")
		return
	}
	if err := h.registry.UpsertSchedule(middleware.Principal(c), update); err != nil {
		respondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) RemoveSchedule(c *gin.Context) {
	if err := h.registry.RemoveSchedule(middleware.Principal(c), c.Param("name")); err != nil {
		respondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) UpdateCollection(c *gin.Context) {
	var update registry.CollectionUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := h.registry.UpdateCollectionDetails(middleware.Principal(c), update); err != nil {
		respondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) UpdateBaseURL(c *gin.Context) {
	var req baseURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if req.BaseURL == "" {
		respondBadRequest(c, "base_url is required")
		return
	}
	if err := h.registry.UpdateBaseURL(middleware.Principal(c), req.BaseURL); err != nil {
		respondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) ListAdmins(c *gin.Context) {
	c.JSON(http.StatusOK, h.acl.Admins())
}

func (h *handler) AddAdmin(c *gin.Context) {
	var req adminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if req.Principal == "" {
		respondBadRequest(c, "principal is required")
		return
	}
	typ := acl.AdminType(req.Type)
	if typ == "" {
		typ = acl.AdminFunctional
	}
	if err := h.acl.AddAdmin(middleware.Principal(c), req.Principal, typ); err != nil {
		respondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) RemoveAdmin(c *gin.Context) {
	principal := domain.Identity(c.Param("principal"))
	if err := h.acl.RemoveAdmin(middleware.Principal(c), principal); err != nil {
		respondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) CheckWhitelist(c *gin.Context) {
	principal := domain.Identity(c.Param("principal"))
	c.JSON(http.StatusOK, gin.H{
		"principal":   principal,
		"whitelisted": h.acl.IsWhitelisted(principal),
	})
}

func (h *handler) AddToWhitelist(c *gin.Context) {
	var req adminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if req.Principal == "" {
		respondBadRequest(c, "principal is required")
		return
	}
	if err := h.acl.AddToWhitelist(middleware.Principal(c), req.Principal); err != nil {
		respondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) RemoveFromWhitelist(c *gin.Context) {
	principal := domain.Identity(c.Param("principal"))
	if err := h.acl.RemoveFromWhitelist(middleware.Principal(c), principal); err != nil {
		respondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) UploadAsset(c *gin.Context) {
	var req registry.UploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}
	if req.ContentType == "" || len(req.Data) == 0 {
		respondBadRequest(c, "content_type and data are required")
		return
	}
	key, err := h.registry.UploadAsset(c.Request.Context(), middleware.Principal(c), req)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"key": key})
}

func (h *handler) ListAssets(c *gin.Context) {
	list, err := h.registry.ListAssets(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "Failed to list assets")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *handler) DownloadAsset(c *gin.Context) {
	asset, err := h.registry.DownloadAsset(c.Request.Context(), c.Param("key"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.Data(http.StatusOK, asset.ContentType, asset.Data)
}

func (h *handler) SaveSnapshot(c *gin.Context) {
	if !h.acl.IsAdmin(middleware.Principal(c)) {
		respondForbidden(c, "only admins can trigger snapshots")
		return
	}
	if err := h.snapshot.SaveSnapshot(c); err != nil {
		respondInternalError(c, err, "Failed to save snapshot")
		return
	}
	c.Status(http.StatusNoContent)
}
