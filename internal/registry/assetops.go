package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/feral-file/nft-registry/internal/assets"
	"github.com/feral-file/nft-registry/internal/domain"
)

// UploadAsset stores a blob in the asset store. Admin only. SVG payloads
// tolerate hex- or base64-encoded bodies; other content types are stored
// verbatim. A missing key is generated from a UUID and the content type's
// subtype. The upload is recorded in the transaction log.
func (r *Registry) UploadAsset(ctx context.Context, caller domain.Identity, req UploadRequest) (string, error) {
	if !r.acl.IsAdmin(caller) {
		return "", ErrAdminOnly
	}

	key := generateAssetKey(req.ContentType)
	if req.Key != nil && *req.Key != "" {
		key = *req.Key
	}

	data := req.Data
	if req.ContentType == assets.SVGContentType {
		data = assets.NormalizeSVG(data)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.NowNanos()
	err := r.assets.Put(ctx, assets.Asset{
		Key:         key,
		ContentType: req.ContentType,
		Data:        data,
		Description: req.Description,
		UploadedBy:  caller,
		CreatedAt:   now,
		ModifiedAt:  now,
	})
	if err != nil {
		return "", err
	}

	r.log.Append(domain.TxKindUpload, 0, caller, r.identity, nil, "upload_file:"+key, now)
	return key, nil
}

// DownloadAsset retrieves an asset; open to everyone.
func (r *Registry) DownloadAsset(ctx context.Context, key string) (*assets.Asset, error) {
	return r.assets.Get(ctx, key)
}

// ListAssets returns metadata for all stored assets.
func (r *Registry) ListAssets(ctx context.Context) ([]assets.Metadata, error) {
	return r.assets.List(ctx)
}

func generateAssetKey(contentType string) string {
	ext := "bin"
	if idx := strings.LastIndex(contentType, "/"); idx >= 0 && idx+1 < len(contentType) {
		ext = contentType[idx+1:]
	}
	return fmt.Sprintf("asset-%s.%s", uuid.NewString(), ext)
}
