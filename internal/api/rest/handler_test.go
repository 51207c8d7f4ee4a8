package rest_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/nft-registry/internal/acl"
	"github.com/feral-file/nft-registry/internal/api/middleware"
	"github.com/feral-file/nft-registry/internal/api/rest"
	"github.com/feral-file/nft-registry/internal/assets"
	"github.com/feral-file/nft-registry/internal/domain"
	"github.com/feral-file/nft-registry/internal/registry"
)

type testEnv struct {
	router        *gin.Engine
	registry      *registry.Registry
	snapshotCalls int
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	accessList := acl.New()
	accessList.Seed([]domain.Identity{"alice"}, []domain.Identity{"bob"})
	reg := registry.New(accessList, assets.NewMemoryStore(),
		registry.WithCollectionDetails(domain.CollectionDetails{
			Name:    "Orbit",
			Symbol:  "ORB",
			BaseURL: "http://127.0.0.1:4943",
		}),
	)

	env := &testEnv{registry: reg}
	snapshot := rest.SnapshotFunc(func(*gin.Context) error {
		env.snapshotCalls++
		return nil
	})

	router := gin.New()
	router.Use(middleware.Identity())
	rest.SetupRoutes(router, rest.NewHandler(reg, accessList, snapshot))
	env.router = router
	return env
}

// do runs one request as the given principal and decodes the JSON response
// into out when non-nil.
func (e *testEnv) do(t *testing.T, method, path, principal string, body any, out any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if principal != "" {
		req.Header.Set(middleware.PrincipalHeader, principal)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	if out != nil && rec.Code < 300 && rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec
}

func (e *testEnv) uploadSVG(t *testing.T, key string) {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/v1/assets", "alice", map[string]any{
		"key":          key,
		"content_type": assets.SVGContentType,
		"data":         []byte("<svg></svg>"),
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestHealthCheck(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/health", "", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWhoAmI(t *testing.T) {
	env := newTestEnv(t)

	var body map[string]any
	env.do(t, http.MethodGet, "/api/v1/whoami", "alice", nil, &body)
	assert.Equal(t, "alice", body["principal"])
	assert.Equal(t, true, body["admin"])

	// No header means the anonymous principal.
	body = nil
	env.do(t, http.MethodGet, "/api/v1/whoami", "", nil, &body)
	assert.Equal(t, string(domain.Anonymous), body["principal"])
	assert.Equal(t, false, body["admin"])
}

func TestUploadAsset_Authorization(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/assets", "bob", map[string]any{
		"content_type": assets.SVGContentType,
		"data":         []byte("<svg></svg>"),
	}, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	var created map[string]string
	rec = env.do(t, http.MethodPost, "/api/v1/assets", "alice", map[string]any{
		"content_type": assets.SVGContentType,
		"data":         []byte("<svg></svg>"),
	}, &created)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEmpty(t, created["key"])

	// The stored blob is publicly downloadable.
	rec = env.do(t, http.MethodGet, "/asset/"+created["key"], "", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<svg></svg>", rec.Body.String())
}

func TestMintAndQueryFlow(t *testing.T) {
	env := newTestEnv(t)
	env.uploadSVG(t, "orbit-1.svg")

	// Strangers are not whitelisted.
	rec := env.do(t, http.MethodPost, "/api/v1/mint", "stranger", nil, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	var receipt registry.MintReceipt
	rec = env.do(t, http.MethodPost, "/api/v1/mint", "bob", nil, &receipt)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Orbit #0", receipt.Metadata.Name)

	var owners []*domain.Identity
	env.do(t, http.MethodPost, "/api/v1/tokens/owner-of", "", map[string]any{
		"token_ids": []uint64{receipt.TokenID, 999},
	}, &owners)
	require.Len(t, owners, 2)
	require.NotNil(t, owners[0])
	assert.Equal(t, domain.Identity("bob"), *owners[0])
	assert.Nil(t, owners[1])

	var token domain.Token
	rec = env.do(t, http.MethodGet, fmt.Sprintf("/api/v1/tokens/%d", receipt.TokenID), "", nil, &token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.Identity("bob"), token.Owner)

	rec = env.do(t, http.MethodGet, "/api/v1/tokens/999", "", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTransferBatch(t *testing.T) {
	env := newTestEnv(t)
	env.uploadSVG(t, "orbit-1.svg")

	var receipt registry.MintReceipt
	env.do(t, http.MethodPost, "/api/v1/mint", "bob", nil, &receipt)

	var results []struct {
		Timestamp *uint64               `json:"timestamp"`
		Error     *domain.TransferError `json:"error"`
	}
	rec := env.do(t, http.MethodPost, "/api/v1/transfers", "bob", []map[string]any{
		{"to": "carol", "token_id": receipt.TokenID},
		{"to": "carol", "token_id": 999},
	}, &results)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, results, 2)

	assert.NotNil(t, results[0].Timestamp)
	assert.Nil(t, results[0].Error)
	require.NotNil(t, results[1].Error)
	assert.Equal(t, domain.TransferErrNotFound, results[1].Error.Code)

	// An oversized batch is rejected outright.
	oversized := make([]map[string]any, domain.MaxUpdateBatchSize+1)
	for i := range oversized {
		oversized[i] = map[string]any{"to": "carol", "token_id": 0}
	}
	rec = env.do(t, http.MethodPost, "/api/v1/transfers", "bob", oversized, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestApprovalEndpoints(t *testing.T) {
	env := newTestEnv(t)
	env.uploadSVG(t, "orbit-1.svg")

	var receipt registry.MintReceipt
	env.do(t, http.MethodPost, "/api/v1/mint", "bob", nil, &receipt)

	rec := env.do(t, http.MethodPost, "/api/v1/approvals/tokens", "bob", []map[string]any{
		{"spender": "carol", "token_id": receipt.TokenID},
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var status map[string]bool
	path := fmt.Sprintf("/api/v1/approvals/check?spender=carol&owner=bob&token_id=%d", receipt.TokenID)
	env.do(t, http.MethodGet, path, "", nil, &status)
	assert.True(t, status["approved"])

	// Self-approval of the collection is answered with the structured error.
	var result struct {
		Error *domain.TransferError `json:"error"`
	}
	rec = env.do(t, http.MethodPost, "/api/v1/approvals/collection", "bob", map[string]any{
		"spender": "bob",
	}, &result)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, result.Error)
	assert.Equal(t, domain.TransferErrGeneric, result.Error.Code)
}

func TestScheduleEndpoints(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPut, "/api/v1/schedules/drop", "bob", map[string]any{
		"tiers": []map[string]any{{"quantity": 1, "price": 10}},
	}, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodPut, "/api/v1/schedules/drop", "alice", map[string]any{
		"tiers":  []map[string]any{{"quantity": 1, "price": 10}},
		"active": true,
	}, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	var offers []registry.BundleOffer
	env.do(t, http.MethodGet, "/api/v1/bundles", "bob", nil, &offers)
	require.Len(t, offers, 1)
	assert.Equal(t, registry.BundleOffer{Schedule: "drop", Quantity: 1, Price: 10}, offers[0])

	rec = env.do(t, http.MethodDelete, "/api/v1/schedules/drop", "alice", nil, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = env.do(t, http.MethodDelete, "/api/v1/schedules/drop", "alice", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSnapshotEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/snapshot", "bob", nil, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Zero(t, env.snapshotCalls)

	rec = env.do(t, http.MethodPost, "/api/v1/snapshot", "alice", nil, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 1, env.snapshotCalls)
}

func TestCollectionEndpoints(t *testing.T) {
	env := newTestEnv(t)

	var details map[string]any
	env.do(t, http.MethodGet, "/api/v1/collection", "", nil, &details)
	assert.Equal(t, "Orbit", details["name"])
	assert.Equal(t, "ORB", details["symbol"])
	assert.Equal(t, float64(0), details["total_supply"])

	var standards []domain.Standard
	env.do(t, http.MethodGet, "/api/v1/collection/standards", "", nil, &standards)
	assert.Len(t, standards, 3)

	rec := env.do(t, http.MethodPatch, "/api/v1/collection", "alice", map[string]any{
		"description": "Generative orbits",
	}, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	details = nil
	env.do(t, http.MethodGet, "/api/v1/collection", "", nil, &details)
	assert.Equal(t, "Generative orbits", details["description"])
}
