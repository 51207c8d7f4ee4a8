// Package snapshot persists the full in-memory registry state as versioned
// JSON documents in sqlite. Restore attempts the current schema first and
// falls back to each known prior shape, so a node can always come back up on
// an old snapshot, possibly with partial state.
package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/feral-file/nft-registry/internal/acl"
	"github.com/feral-file/nft-registry/internal/assets"
	"github.com/feral-file/nft-registry/internal/domain"
	"github.com/feral-file/nft-registry/internal/registry"
)

// SchemaVersion is the version written by Save.
const SchemaVersion = 3

// State is the complete serializable application state (current schema).
type State struct {
	Core      registry.State                    `json:"core"`
	Admins    map[domain.Identity]acl.AdminType `json:"admins"`
	Whitelist []domain.Identity                 `json:"whitelist"`
	Assets    []assets.Asset                    `json:"assets"`
}

// stateV2 kept only the asset pipeline and admin set.
type stateV2 struct {
	Assets       []assets.Asset                    `json:"assets"`
	Admins       map[domain.Identity]acl.AdminType `json:"admins"`
	MintedAssets []string                          `json:"minted_assets"`
}

// stateV1 kept only the assets.
type stateV1 struct {
	Assets []assets.Asset `json:"assets"`
}

const snapshotSchema = `
CREATE TABLE IF NOT EXISTS snapshots (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	version    INTEGER NOT NULL,
	created_at INTEGER NOT NULL,
	payload    BLOB NOT NULL
)`

// OpenDatabase opens (creating if needed) the sqlite database backing both
// snapshots and the asset store.
func OpenDatabase(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// Store reads and writes state snapshots.
type Store struct {
	db *sql.DB
}

// NewStore creates the snapshots table if needed and returns the store.
func NewStore(ctx context.Context, db *sql.DB) (*Store, error) {
	if _, err := db.ExecContext(ctx, snapshotSchema); err != nil {
		return nil, fmt.Errorf("failed to create snapshots table: %w", err)
	}
	return &Store{db: db}, nil
}

// Save appends a snapshot row with the current schema version.
func (s *Store) Save(ctx context.Context, st *State, now domain.Timestamp) error {
	payload, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO snapshots (version, created_at, payload) VALUES (?, ?, ?)`,
		SchemaVersion, int64(now), payload)
	if err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}
	return nil
}

// Load reads the newest snapshot and decodes it, degrading through prior
// schema versions when the current one does not apply. The returned restored
// version tells the caller how much state came back: fields absent from a
// legacy shape are zero-valued. Returns (nil, 0, nil) when no snapshot
// exists.
func (s *Store) Load(ctx context.Context) (*State, int, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT version, payload FROM snapshots ORDER BY id DESC LIMIT 1`)

	var (
		version int
		payload []byte
	)
	if err := row.Scan(&version, &payload); err == sql.ErrNoRows {
		return nil, 0, nil
	} else if err != nil {
		return nil, 0, fmt.Errorf("failed to read snapshot: %w", err)
	}

	return decode(payload, version)
}

// decode tries the declared version first, then every older shape in
// reverse chronological order.
func decode(payload []byte, version int) (*State, int, error) {
	if version >= 3 {
		var st State
		if err := json.Unmarshal(payload, &st); err == nil && st.Core.Tokens != nil {
			return &st, 3, nil
		}
	}

	if version >= 2 || version == 0 {
		var legacy stateV2
		if err := json.Unmarshal(payload, &legacy); err == nil && legacy.Admins != nil {
			st := &State{
				Admins: legacy.Admins,
				Assets: legacy.Assets,
			}
			st.Core.MintedAssets = legacy.MintedAssets
			return st, 2, nil
		}
	}

	var oldest stateV1
	if err := json.Unmarshal(payload, &oldest); err == nil && oldest.Assets != nil {
		return &State{Assets: oldest.Assets}, 1, nil
	}

	return nil, 0, fmt.Errorf("snapshot payload matches no known schema (declared version %d)", version)
}
