package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/nft-registry/internal/config"
)

func TestLoadRegistryConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadRegistryConfig("", t.TempDir())
	require.NoError(t, err)

	assert.False(t, cfg.Debug)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "registry.db", cfg.Database.Path)
	assert.Equal(t, "http://127.0.0.1:4943", cfg.Collection.BaseURL)
	assert.Equal(t, "registry", cfg.RegistryPrincipal)
}

func TestLoadRegistryConfig_EnvOverrides(t *testing.T) {
	t.Setenv("NFT_REGISTRY_SERVER_PORT", "9090")
	t.Setenv("NFT_REGISTRY_DEBUG", "true")
	t.Setenv("NFT_REGISTRY_DATABASE_PATH", "/tmp/other.db")
	t.Setenv("NFT_REGISTRY_COLLECTION_NAME", "Orbit")

	cfg, err := config.LoadRegistryConfig("", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "/tmp/other.db", cfg.Database.Path)
	assert.Equal(t, "Orbit", cfg.Collection.Name)
}

func TestLoadRegistryConfig_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(`
debug: true
server:
  port: 7070
database:
  path: data/registry.db
collection:
  name: Orbit
  symbol: ORB
  max_supply: 100
acl:
  admins:
    - root
  whitelist:
    - member
`), 0o644))

	cfg, err := config.LoadRegistryConfig(configPath, dir)
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "data/registry.db", cfg.Database.Path)
	assert.Equal(t, "Orbit", cfg.Collection.Name)
	assert.Equal(t, uint64(100), cfg.Collection.MaxSupply)
	assert.Equal(t, []string{"root"}, cfg.ACL.Admins)
	assert.Equal(t, []string{"member"}, cfg.ACL.Whitelist)
}
