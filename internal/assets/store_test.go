package assets_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/feral-file/nft-registry/internal/assets"
)

// Both implementations must behave identically, so they share one suite.
func TestStores(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		runStoreSuite(t, assets.NewMemoryStore())
	})

	t.Run("sqlite", func(t *testing.T) {
		db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "assets.db"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })

		store, err := assets.NewSQLiteStore(context.Background(), db)
		require.NoError(t, err)
		runStoreSuite(t, store)
	})
}

func runStoreSuite(t *testing.T, store assets.Store) {
	ctx := context.Background()
	description := "first piece"

	t.Run("get missing", func(t *testing.T) {
		_, err := store.Get(ctx, "nope")
		assert.ErrorIs(t, err, assets.ErrNotFound)
	})

	t.Run("put and get", func(t *testing.T) {
		err := store.Put(ctx, assets.Asset{
			Key:         "b-art.svg",
			ContentType: assets.SVGContentType,
			Data:        []byte("<svg>b</svg>"),
			Description: &description,
			UploadedBy:  "alice",
			CreatedAt:   100,
			ModifiedAt:  100,
		})
		require.NoError(t, err)

		asset, err := store.Get(ctx, "b-art.svg")
		require.NoError(t, err)
		assert.Equal(t, "b-art.svg", asset.Key)
		assert.Equal(t, assets.SVGContentType, asset.ContentType)
		assert.Equal(t, []byte("<svg>b</svg>"), asset.Data)
		require.NotNil(t, asset.Description)
		assert.Equal(t, description, *asset.Description)
		assert.Equal(t, uint64(100), asset.CreatedAt)
	})

	t.Run("put overwrites", func(t *testing.T) {
		err := store.Put(ctx, assets.Asset{
			Key:         "b-art.svg",
			ContentType: assets.SVGContentType,
			Data:        []byte("<svg>b2</svg>"),
			UploadedBy:  "alice",
			CreatedAt:   100,
			ModifiedAt:  200,
		})
		require.NoError(t, err)

		asset, err := store.Get(ctx, "b-art.svg")
		require.NoError(t, err)
		assert.Equal(t, []byte("<svg>b2</svg>"), asset.Data)
		assert.Equal(t, uint64(200), asset.ModifiedAt)
	})

	t.Run("list in key order", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, assets.Asset{
			Key:         "a-art.svg",
			ContentType: assets.SVGContentType,
			Data:        []byte("<svg>a</svg>"),
			UploadedBy:  "alice",
			CreatedAt:   150,
			ModifiedAt:  150,
		}))

		list, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "a-art.svg", list[0].Key)
		assert.Equal(t, "b-art.svg", list[1].Key)
		assert.Equal(t, len("<svg>a</svg>"), list[0].Size)
	})

	t.Run("dump carries data", func(t *testing.T) {
		dump, err := store.Dump(ctx)
		require.NoError(t, err)
		require.Len(t, dump, 2)
		assert.Equal(t, []byte("<svg>a</svg>"), dump[0].Data)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "a-art.svg"))
		_, err := store.Get(ctx, "a-art.svg")
		assert.ErrorIs(t, err, assets.ErrNotFound)

		// Deleting an absent key is a no-op.
		assert.NoError(t, store.Delete(ctx, "a-art.svg"))
	})
}
