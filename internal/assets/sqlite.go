package assets

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/feral-file/nft-registry/internal/domain"
)

const assetsSchema = `
CREATE TABLE IF NOT EXISTS assets (
	key          TEXT PRIMARY KEY,
	content_type TEXT NOT NULL,
	data         BLOB NOT NULL,
	description  TEXT,
	uploaded_by  TEXT NOT NULL,
	created_at   INTEGER NOT NULL,
	modified_at  INTEGER NOT NULL
)`

// SQLiteStore is a Store backed by a sqlite database. database/sql serializes
// access, so it is safe for concurrent use.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates the assets table if needed and returns the store.
func NewSQLiteStore(ctx context.Context, db *sql.DB) (*SQLiteStore, error) {
	if _, err := db.ExecContext(ctx, assetsSchema); err != nil {
		return nil, fmt.Errorf("failed to create assets table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Put(ctx context.Context, asset Asset) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO assets (key, content_type, data, description, uploaded_by, created_at, modified_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			content_type = excluded.content_type,
			data         = excluded.data,
			description  = excluded.description,
			uploaded_by  = excluded.uploaded_by,
			modified_at  = excluded.modified_at`,
		asset.Key, asset.ContentType, asset.Data, asset.Description,
		string(asset.UploadedBy), int64(asset.CreatedAt), int64(asset.ModifiedAt))
	if err != nil {
		return fmt.Errorf("failed to store asset %q: %w", asset.Key, err)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (*Asset, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT key, content_type, data, description, uploaded_by, created_at, modified_at
		FROM assets WHERE key = ?`, key)

	asset, err := scanAsset(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load asset %q: %w", key, err)
	}
	return asset, nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]Metadata, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT key, content_type, length(data), description, uploaded_by, created_at, modified_at
		FROM assets ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	defer rows.Close()

	var out []Metadata
	for rows.Next() {
		var (
			meta        Metadata
			description sql.NullString
			uploadedBy  string
			createdAt   int64
			modifiedAt  int64
		)
		if err := rows.Scan(&meta.Key, &meta.ContentType, &meta.Size, &description, &uploadedBy, &createdAt, &modifiedAt); err != nil {
			return nil, fmt.Errorf("failed to scan asset row: %w", err)
		}
		if description.Valid {
			meta.Description = &description.String
		}
		meta.UploadedBy = domain.Identity(uploadedBy)
		meta.CreatedAt = uint64(createdAt)
		meta.ModifiedAt = uint64(modifiedAt)
		out = append(out, meta)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM assets WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete asset %q: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Dump(ctx context.Context) ([]Asset, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT key, content_type, data, description, uploaded_by, created_at, modified_at
		FROM assets ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to dump assets: %w", err)
	}
	defer rows.Close()

	var out []Asset
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset row: %w", err)
		}
		out = append(out, *asset)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAsset(row rowScanner) (*Asset, error) {
	var (
		asset       Asset
		description sql.NullString
		uploadedBy  string
		createdAt   int64
		modifiedAt  int64
	)
	if err := row.Scan(&asset.Key, &asset.ContentType, &asset.Data, &description, &uploadedBy, &createdAt, &modifiedAt); err != nil {
		return nil, err
	}
	if description.Valid {
		asset.Description = &description.String
	}
	asset.UploadedBy = domain.Identity(uploadedBy)
	asset.CreatedAt = uint64(createdAt)
	asset.ModifiedAt = uint64(modifiedAt)
	return &asset, nil
}
