package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"eventbridge/internal/client/kalshi"
	polymarketgamma "eventbridge/internal/client/polymarket/gamma"
	"eventbridge/internal/config"
	cronrunner "eventbridge/internal/cron"
	"eventbridge/internal/db"
	"eventbridge/internal/logger"
	gormrepository "eventbridge/internal/repository/gorm"
	"eventbridge/internal/service"
)

func main() {
	cfgPath := os.Getenv("BRIDGE_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	cfg, err := config.Load(cfgPath, envFlag("BRIDGE_ENV_ONLY"))
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close(dbConn)

	if err := db.SetTimezone(dbConn, cfg.DB.Timezone); err != nil {
		logger.Warn("failed to set timezone", zap.Error(err))
	}
	if err := db.AutoMigrate(dbConn); err != nil {
		logger.Fatal("auto-migrate failed", zap.Error(err))
	}

	store := gormrepository.New(dbConn.Gorm)
	kalshiClient := kalshi.NewClient(&http.Client{Timeout: cfg.Kalshi.Timeout}, cfg.Kalshi.BaseURL)
	gammaClient := polymarketgamma.NewClient(&http.Client{Timeout: cfg.Gamma.Timeout}, cfg.Gamma.BaseURL)

	ingestService := &service.IngestService{Store: store, Logger: logger, BatchSize: cfg.Ingest.BatchSize}
	syncService := &service.FeedSyncService{
		Store:     store,
		Kalshi:    kalshiClient,
		Gamma:     gammaClient,
		Logger:    logger,
		BatchSize: cfg.Ingest.BatchSize,
	}
	queryService := &service.QueryService{Repo: store, Logger: logger}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if path := os.Getenv("BRIDGE_IMPORT_FILE"); path != "" {
		entity := service.Entity(strings.ToLower(os.Getenv("BRIDGE_IMPORT_ENTITY")))
		if err := importFile(ctx, ingestService, entity, path); err != nil {
			logger.Fatal("import failed", zap.String("path", path), zap.Error(err))
		}
	}

	opts := service.SyncOptions{
		Scope:        cfg.FeedSync.Scope,
		Limit:        cfg.FeedSync.PageLimit,
		MaxPages:     cfg.FeedSync.MaxPages,
		Resume:       cfg.FeedSync.Resume,
		KalshiStatus: cfg.FeedSync.KalshiStatus,
		Closed:       parseClosedFilter(cfg.FeedSync.Closed),
	}
	runSync := func(ctx context.Context) error {
		result, err := syncService.Sync(ctx, opts)
		if err != nil {
			return err
		}
		logger.Info("feed sync ok",
			zap.String("scope", result.Scope),
			zap.Int("pages", result.Pages),
			zap.Int("inserted", result.Inserted),
			zap.Int("updated", result.Updated),
			zap.Int("skipped", result.Skipped),
		)
		return nil
	}

	if envFlag("BRIDGE_RUN_ONCE") || !cfg.Cron.Enabled {
		if err := runSync(ctx); err != nil {
			logger.Error("feed sync failed", zap.Error(err))
		}
		for _, state := range queryService.ListSyncStates(ctx) {
			logger.Info("sync state", zap.String("scope", state.Scope), zap.Stringp("cursor", state.Cursor), zap.Stringp("last_error", state.LastError))
		}
		return
	}

	cronRunner := cronrunner.New(ctx, logger)
	if _, err := cronRunner.Add("feed_sync", cfg.Cron.FeedSync, runSync); err != nil {
		logger.Fatal("cron register feed sync failed", zap.Error(err))
	}
	cronRunner.Start()
	defer cronRunner.Stop()

	<-ctx.Done()
	logger.Info("shutting down")
}

func importFile(ctx context.Context, svc *service.IngestService, entity service.Entity, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var records []map[string]any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&records); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	_, err = svc.BulkInsert(ctx, entity, records, 0)
	return err
}

func envFlag(name string) bool {
	raw := os.Getenv(name)
	return strings.EqualFold(raw, "true") || raw == "1"
}

func parseClosedFilter(value string) *bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "open":
		v := false
		return &v
	case "closed":
		v := true
		return &v
	default:
		return nil
	}
}
