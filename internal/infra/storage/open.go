package storage

import (
	"context"
	"database/sql"
	"fmt"

	"organist_rotation/internal/domain/roster"
	"organist_rotation/internal/infra/config"
)

// Open builds the schedule repository selected by cfg.StorageDriver. The
// returned close function releases any database connection and is never nil.
func Open(ctx context.Context, cfg *config.AppConfig) (roster.Repository, func() error, error) {
	noop := func() error { return nil }

	var (
		db      *sql.DB
		dialect Dialect
		err     error
	)
	switch cfg.StorageDriver {
	case config.DriverFile, "":
		return NewFileScheduleRepository(cfg.ScheduleFile), noop, nil
	case config.DriverSQLite:
		db, err = NewSQLiteConnection(cfg.StorageDSN)
		dialect = DialectSQLite
	case config.DriverPostgres:
		db, err = NewPostgresConnection(cfg.StorageDSN)
		dialect = DialectPostgres
	default:
		return nil, noop, fmt.Errorf("unknown storage driver: %s", cfg.StorageDriver)
	}
	if err != nil {
		return nil, noop, err
	}

	repo := NewSQLScheduleRepository(db, dialect)
	if err := repo.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, noop, err
	}
	return repo, db.Close, nil
}
