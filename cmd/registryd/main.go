package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/nft-registry/internal/acl"
	"github.com/feral-file/nft-registry/internal/adapter"
	"github.com/feral-file/nft-registry/internal/api/rest"
	"github.com/feral-file/nft-registry/internal/api/server"
	"github.com/feral-file/nft-registry/internal/assets"
	"github.com/feral-file/nft-registry/internal/config"
	"github.com/feral-file/nft-registry/internal/domain"
	"github.com/feral-file/nft-registry/internal/logger"
	"github.com/feral-file/nft-registry/internal/registry"
	"github.com/feral-file/nft-registry/internal/snapshot"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadRegistryConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:     cfg.Debug,
		SentryDSN: cfg.SentryDSN,
		Tags: map[string]string{
			"service": "registryd",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.Info("Starting NFT registry")

	// Open the database backing assets and snapshots
	db, err := snapshot.OpenDatabase(cfg.Database.Path)
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err), zap.String("path", cfg.Database.Path))
	}
	defer db.Close()

	assetStore, err := assets.NewSQLiteStore(ctx, db)
	if err != nil {
		logger.Fatal("Failed to initialize asset store", zap.Error(err))
	}

	snapStore, err := snapshot.NewStore(ctx, db)
	if err != nil {
		logger.Fatal("Failed to initialize snapshot store", zap.Error(err))
	}

	// Build the core
	accessList := acl.New()
	reg := registry.New(accessList, assetStore,
		registry.WithIdentity(domain.Identity(cfg.RegistryPrincipal)),
		registry.WithCollectionDetails(collectionDetails(cfg)),
	)

	// Restore the last snapshot, degrading through legacy schemas
	if err := restoreState(ctx, cfg, snapStore, reg, accessList, assetStore); err != nil {
		logger.Fatal("Failed to restore state", zap.Error(err))
	}

	clock := adapter.NewClock()
	saver := rest.SnapshotFunc(func(c *gin.Context) error {
		return saveState(c.Request.Context(), snapStore, reg, accessList, assetStore, clock)
	})

	// Create server config
	serverConfig := server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Create and start server
	srv := server.New(serverConfig, reg, accessList, saver)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.Error(err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	logger.Info("Shutting down server...")

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(err, zap.String("component", "shutdown"))
	}

	// Persist a final snapshot so a restart resumes where we stopped
	if err := saveState(shutdownCtx, snapStore, reg, accessList, assetStore, clock); err != nil {
		logger.Error(err, zap.String("component", "snapshot"))
	} else {
		logger.Info("Saved shutdown snapshot")
	}

	logger.Info("Registry stopped")
}

// collectionDetails maps the seed configuration onto collection details. A
// configured max supply of 0 means unbounded.
func collectionDetails(cfg *config.RegistryConfig) domain.CollectionDetails {
	details := domain.CollectionDetails{
		Name:           cfg.Collection.Name,
		Symbol:         cfg.Collection.Symbol,
		Description:    cfg.Collection.Description,
		BaseURL:        cfg.Collection.BaseURL,
		PricingEnabled: cfg.Collection.PricingEnabled,
	}
	if cfg.Collection.MaxSupply > 0 {
		maxSupply := cfg.Collection.MaxSupply
		details.MaxSupply = &maxSupply
	}
	return details
}

// restoreState loads the newest snapshot into the core. On a fresh start, or
// when a legacy snapshot carried no admin set, the access lists are seeded
// from configuration instead.
func restoreState(ctx context.Context, cfg *config.RegistryConfig, snapStore *snapshot.Store, reg *registry.Registry, accessList *acl.List, assetStore assets.Store) error {
	st, version, err := snapStore.Load(ctx)
	if err != nil {
		return err
	}

	if st == nil {
		logger.Info("No snapshot found, starting fresh")
		accessList.Seed(identities(cfg.ACL.Admins), identities(cfg.ACL.Whitelist))
		return nil
	}

	if version < snapshot.SchemaVersion {
		logger.Warn("Restored from legacy snapshot, missing fields default to empty",
			zap.Int("version", version),
			zap.Int("current", snapshot.SchemaVersion),
		)
	}

	reg.Restore(st.Core)
	if len(st.Admins) > 0 {
		accessList.Restore(st.Admins, st.Whitelist)
	} else {
		accessList.Seed(identities(cfg.ACL.Admins), identities(cfg.ACL.Whitelist))
	}

	// Legacy snapshots carried assets inline; reinsert any the store lost.
	for _, asset := range st.Assets {
		if _, err := assetStore.Get(ctx, asset.Key); err == nil {
			continue
		}
		if err := assetStore.Put(ctx, asset); err != nil {
			return fmt.Errorf("failed to reinsert asset %s: %w", asset.Key, err)
		}
	}

	logger.Info("Restored state from snapshot",
		zap.Int("version", version),
		zap.Uint64("total_supply", reg.TotalSupply()),
	)
	return nil
}

// saveState composes and stores a full snapshot of the running system.
func saveState(ctx context.Context, snapStore *snapshot.Store, reg *registry.Registry, accessList *acl.List, assetStore assets.Store, clock adapter.Clock) error {
	dump, err := assetStore.Dump(ctx)
	if err != nil {
		return fmt.Errorf("failed to dump assets: %w", err)
	}

	admins, whitelist := accessList.Export()
	st := snapshot.State{
		Core:      reg.Export(),
		Admins:    admins,
		Whitelist: whitelist,
		Assets:    dump,
	}
	return snapStore.Save(ctx, &st, clock.NowNanos())
}

func identities(values []string) []domain.Identity {
	out := make([]domain.Identity, 0, len(values))
	for _, v := range values {
		out = append(out, domain.Identity(v))
	}
	return out
}
