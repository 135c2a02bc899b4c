package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/ace-ranking/internal/club"
	"github.com/mauv0809/ace-ranking/internal/config"
	"github.com/mauv0809/ace-ranking/internal/database"
)

// Open builds the repository selected by cfg. The returned func releases it.
func Open(cfg config.Config) (club.Repository, func(), error) {
	switch cfg.StorageBackend {
	case config.BackendFile:
		log.Info("Using file storage", "dir", cfg.DataDir)
		return NewFile(cfg.DataDir), func() {}, nil
	case config.BackendSQLite:
		dbPath := cfg.DBName
		if cfg.Turso.PrimaryURL == "" && dbPath != ":memory:" && !filepath.IsAbs(dbPath) {
			if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("failed to create data dir: %w", err)
			}
			dbPath = filepath.Join(cfg.DataDir, dbPath)
		}
		db, teardown, err := database.InitDB(dbPath, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
		if err != nil {
			return nil, nil, err
		}
		return NewSQL(db), teardown, nil
	}
	return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
}
