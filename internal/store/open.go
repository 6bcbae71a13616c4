package store

import (
	"fmt"

	"github.com/localnerve/lessonsync/internal/config"
	"github.com/localnerve/lessonsync/internal/database"
)

// Open creates a Store for the configured backend.
//
// Supported backends:
//
//	"json"     - one JSON file per document in DATA_DIR (default)
//	"database" - documents table through gorm, dialect from DB_TYPE
//	"memory"   - in-memory (ephemeral, for testing)
//
// The returned close function releases the backend's resources.
func Open(cfg *config.Config) (*Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.StoreBackend {
	case config.BackendJSON, "":
		return New(NewFileBackend(cfg.DataDir)), noop, nil

	case config.BackendMemory:
		return New(NewMemoryBackend()), noop, nil

	case config.BackendDatabase:
		db, err := database.Connect(cfg)
		if err != nil {
			return nil, nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			database.Close(db)
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return New(&DatabaseBackend{DB: db}), func() error { return database.Close(db) }, nil
	}

	return nil, nil, fmt.Errorf("unknown store backend: %q (supported: json, database, memory)", cfg.StoreBackend)
}
