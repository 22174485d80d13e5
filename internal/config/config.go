package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type AppConfig struct {
	ListenAddr string

	RedisURL    string
	DatabaseURL string

	StagedImportTTL time.Duration
	HistoryLimit    int

	MessageDir string

	BoardImageSize int
}

func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		ListenAddr:      "127.0.0.1:8480",
		StagedImportTTL: time.Hour,
		HistoryLimit:    10,
		BoardImageSize:  640,
	}

	if v := strings.TrimSpace(os.Getenv("LISTEN_ADDR")); v != "" {
		cfg.ListenAddr = v
	}

	cfg.RedisURL = strings.TrimSpace(os.Getenv("REDIS_URL"))
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))

	if v := strings.TrimSpace(os.Getenv("STAGED_IMPORT_TTL")); v != "" { // seconds
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.StagedImportTTL = time.Duration(n) * time.Second
		}
	}
	if v := strings.TrimSpace(os.Getenv("HISTORY_LIMIT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HistoryLimit = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("BOARD_IMAGE_SIZE")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 160 && n <= 2048 {
			cfg.BoardImageSize = n
		}
	}
	cfg.MessageDir = strings.TrimSpace(os.Getenv("MESSAGE_DIR"))

	if cfg.ListenAddr == "" {
		return nil, errors.New("LISTEN_ADDR is required")
	}

	return cfg, nil
}
