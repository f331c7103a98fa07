package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	"QuickSales/app/api"
	"QuickSales/app/config"
	"QuickSales/app/database"
	"QuickSales/app/services"
	"QuickSales/app/store"
)

func main() {
	_ = godotenv.Load()

	dataDir, err := config.GetConfigDir()
	if err != nil {
		zlog.Fatal().Err(err).Msg("could not resolve data directory")
	}

	logger := services.NewLoggerService(dataDir)
	defer logger.Close()

	cfg, err := config.LoadOrCreate()
	if err != nil {
		zlog.Fatal().Err(err).Msg("could not load configuration")
	}

	cache, err := database.OpenLocalCache(filepath.Join(dataDir, "local.db"))
	if err != nil {
		zlog.Fatal().Err(err).Msg("could not open local cache")
	}
	defer cache.Close()

	// A missing or unreachable remote is not fatal; the system runs from
	// the local cache until reconfigured.
	var remote *database.RemoteStore
	remoteURL, accessKey := cfg.EffectiveRemote()
	if remoteURL == "" {
		zlog.Info().Msg("no remote endpoint configured, starting offline")
	} else {
		remote, err = database.ConnectRemote(database.BuildRemoteDSN(remoteURL, accessKey))
		if err != nil {
			zlog.Warn().Err(err).Msg("remote unreachable, starting offline")
		}
	}

	entityStore := store.New()

	var engine *services.SyncEngine
	if remote != nil {
		engine = services.NewSyncEngine(entityStore, cache, remote)
	} else {
		engine = services.NewSyncEngine(entityStore, cache, nil)
	}

	bootCtx, cancelBoot := context.WithTimeout(context.Background(), 30*time.Second)
	engine.Bootstrap(bootCtx)
	cancelBoot()

	inventory := services.NewInventoryService(entityStore)
	sales := services.NewSalesService(entityStore)
	customers := services.NewCustomerService(entityStore, engine)
	backup := services.NewBackupService(entityStore, cache)
	insight := services.NewInsightService(entityStore, cfg.EffectiveInsightKey(), cfg.Insight.Model)

	server := api.NewServer(inventory, sales, customers, backup, insight, engine)

	httpServer := &http.Server{
		Addr:    ":" + cfg.HTTPPort(),
		Handler: server.Router(),
	}

	go func() {
		defer logger.RecoverPanic("http")
		zlog.Info().Str("addr", httpServer.Addr).Msg("serving")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal().Err(err).Msg("http server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	zlog.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(ctx)

	// Flush pending changes before the process dies
	engine.Flush()
	if remote != nil {
		remote.Close()
	}
}
