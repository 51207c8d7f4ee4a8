package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// DatabaseConfig holds the sqlite database configuration. One file backs
// both the asset blob store and the state snapshots.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// CollectionConfig seeds the collection details on first start. A snapshot
// restore overrides these values.
type CollectionConfig struct {
	Name           string `mapstructure:"name"`
	Symbol         string `mapstructure:"symbol"`
	Description    string `mapstructure:"description"`
	BaseURL        string `mapstructure:"base_url"`
	MaxSupply      uint64 `mapstructure:"max_supply"` // 0 means unset
	PricingEnabled bool   `mapstructure:"pricing_enabled"`
}

// ACLConfig seeds the admin and whitelist sets on first start. Seeded admins
// are system admins and are whitelisted automatically.
type ACLConfig struct {
	Admins    []string `mapstructure:"admins"`
	Whitelist []string `mapstructure:"whitelist"`
}

// RegistryConfig holds configuration for the registry service
type RegistryConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Collection CollectionConfig `mapstructure:"collection"`
	ACL        ACLConfig        `mapstructure:"acl"`

	// RegistryPrincipal is the identity the registry itself acts under
	// (the "from" side of mint transactions).
	RegistryPrincipal string `mapstructure:"registry_principal"`
}

// LoadRegistryConfig loads configuration for the registry service
func LoadRegistryConfig(configFile string, envPath string) (*RegistryConfig, error) {
	v := configureViper("registryd", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("database.path", "registry.db")
	v.SetDefault("collection.base_url", "http://127.0.0.1:4943")
	v.SetDefault("registry_principal", "registry")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use environment variables
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg RegistryConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Database.Path == "" {
		return nil, errors.New("database.path is required")
	}

	return &cfg, nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("NFT_REGISTRY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		"registry_principal",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		// Database
		"database.path",
		// Collection
		"collection.name",
		"collection.symbol",
		"collection.description",
		"collection.base_url",
		"collection.max_supply",
		"collection.pricing_enabled",
		// ACL
		"acl.admins",
		"acl.whitelist",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}
