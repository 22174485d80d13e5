package main

import (
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	appcfg "github.com/hoho-hoi/othello/internal/config"
	"github.com/hoho-hoi/othello/internal/msgcat"
	"github.com/hoho-hoi/othello/internal/obslog"
	"github.com/hoho-hoi/othello/internal/server/httpapi"
	game "github.com/hoho-hoi/othello/internal/service/game"
)

func main() {
	cfg, err := appcfg.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if err := obslog.InitFromEnv(); err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	logger := obslog.L()
	defer func() { _ = logger.Sync() }()

	// Current-game store: Redis when configured, otherwise in-process.
	var store game.CurrentStore
	var redisStore *game.RedisStore
	if cfg.RedisURL != "" {
		redisStore, err = game.NewRedisStore(cfg.RedisURL, cfg.StagedImportTTL)
		if err != nil {
			log.Fatalf("redis init error: %v", err)
		}
		store = redisStore
	} else {
		logger.Warn("REDIS_URL not set, using in-memory game store")
		store = game.NewMemoryStore()
	}

	// Finished-game archive: Postgres when configured, otherwise in-process.
	var archive game.Archive
	var db *sql.DB
	if cfg.DatabaseURL != "" {
		db, err = sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("postgres init error: %v", err)
		}
		if err := db.Ping(); err != nil {
			log.Fatalf("postgres ping error: %v", err)
		}
		archive = game.NewArchive(db)
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory archive")
		archive = game.NewMemoryArchive()
	}

	cat, err := msgcat.New(cfg.MessageDir)
	if err != nil {
		log.Fatalf("message catalog error: %v", err)
	}

	svc := game.NewService(store, archive, game.Config{HistoryLimit: cfg.HistoryLimit}, logger)
	srv := httpapi.NewServer(svc, cat, cfg.BoardImageSize, logger)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("othello server listening", zap.String("addr", cfg.ListenAddr))
		errCh <- srv.ListenAndServe(cfg.ListenAddr)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}

	if redisStore != nil {
		_ = redisStore.Close()
	}
	if db != nil {
		_ = db.Close()
	}
}
