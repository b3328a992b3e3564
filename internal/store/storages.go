package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-record-keeper/internal/config"
	"github.com/MKhiriev/go-record-keeper/internal/logger"
)

// Storages aggregates every repository the service layer depends on.
type Storages struct {
	UserRepository         UserRepository
	RecordRepository       RecordRepository
	GroupRepository        GroupRepository
	AttemptStateRepository AttemptStateRepository
}

// NewStorages connects to the configured database backend, applies the
// embedded migrations, and wires all repositories over the shared
// connection.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	var (
		db  *DB
		err error
	)

	switch cfg.DB.Driver {
	case config.DriverSQLite:
		db, err = NewConnectSQLite(ctx, cfg.DB, log)
	default:
		db, err = NewConnectPostgres(ctx, cfg.DB, log)
	}
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("error applying migrations: %w", err)
	}

	return &Storages{
		UserRepository:         NewUserRepository(db, log),
		RecordRepository:       NewRecordRepository(db, log),
		GroupRepository:        NewGroupRepository(db, log),
		AttemptStateRepository: NewAttemptStateRepository(db, log),
	}, nil
}
