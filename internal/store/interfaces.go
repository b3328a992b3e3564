package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/MKhiriev/go-record-keeper/models"
)

// UserRepository persists user accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
}

// RecordRepository persists records together with their sharing ledger.
// GetRecord and ListRecords always return records with SharedWith loaded.
type RecordRepository interface {
	CreateRecord(ctx context.Context, record models.Record) (models.Record, error)
	GetRecord(ctx context.Context, recordID int64) (models.Record, error)
	// ListRecords returns every record visible to the user: owned,
	// directly shared, or reachable through group membership/ownership.
	// asAdmin skips the visibility predicate entirely, mirroring the
	// admin override of per-record authorization. recordType optionally
	// narrows the result ("" means all types).
	ListRecords(ctx context.Context, userID int64, recordType string, asAdmin bool) ([]models.Record, error)
	UpdateRecord(ctx context.Context, record models.Record) error
	DeleteRecord(ctx context.Context, recordID int64) error

	// UpsertShare writes one sharing-ledger row; granting to a user that
	// already holds a share overwrites the permission.
	UpsertShare(ctx context.Context, recordID, userID int64, permission models.Permission) error
	DeleteShare(ctx context.Context, recordID, userID int64) error
}

// GroupRepository persists groups and their membership rows.
// GetGroup returns groups with Members loaded.
type GroupRepository interface {
	CreateGroup(ctx context.Context, group models.Group) (models.Group, error)
	GetGroup(ctx context.Context, groupID int64) (models.Group, error)
	RenameGroup(ctx context.Context, groupID int64, name string) error
	DeleteGroup(ctx context.Context, groupID int64) error

	UpsertMember(ctx context.Context, groupID, userID int64, role models.Role) error
	DeleteMember(ctx context.Context, groupID, userID int64) error
}

// AttemptStateRepository persists failed-passcode counters. The
// compare-and-swap contract serializes concurrent attempts: the
// increment-and-check-threshold sequence of the lock service is one
// atomic row operation here.
type AttemptStateRepository interface {
	// GetAttemptState loads the state for (recordID, scopeKey). When no
	// row exists it returns the zero state (FailedCount 0, no lockout),
	// not an error.
	GetAttemptState(ctx context.Context, recordID int64, scopeKey string) (models.AttemptState, error)

	// CompareAndSwapAttemptState writes next only if the stored
	// FailedCount still equals expectedCount (a missing row counts as 0).
	// Returns [ErrAttemptStateConflict] when another attempt got there
	// first; the caller reloads and retries.
	CompareAndSwapAttemptState(ctx context.Context, next models.AttemptState, expectedCount int) error

	// ResetAttemptState removes the row for (recordID, scopeKey).
	// Called on successful unlock. Absent rows are a no-op.
	ResetAttemptState(ctx context.Context, recordID int64, scopeKey string) error

	// ClearRecordAttempts removes every attempt row of the record.
	// Called when a new lock passcode is set.
	ClearRecordAttempts(ctx context.Context, recordID int64) error

	// DeleteExpired removes rows whose lockout expired before the given
	// instant. Используется фоновым клинером; returns the number of rows
	// removed.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
