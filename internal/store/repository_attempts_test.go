package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/MKhiriev/go-record-keeper/internal/logger"
	"github.com/MKhiriev/go-record-keeper/models"
)

func newTestAttemptRepo(t *testing.T) (*attemptStateRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &attemptStateRepository{
		DB:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func TestGetAttemptState_NoRowMeansZeroState(t *testing.T) {
	repo, mock, db := newTestAttemptRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT record_id, scope_key, failed_count, locked_until").
		WithArgs(int64(10), "user:2").
		WillReturnError(sql.ErrNoRows)

	state, err := repo.GetAttemptState(context.Background(), 10, "user:2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.FailedCount != 0 || state.LockedUntil != nil {
		t.Fatalf("expected zero state, got %+v", state)
	}
	if state.RecordID != 10 || state.ScopeKey != "user:2" {
		t.Fatalf("expected keys to be set, got %+v", state)
	}
}

func TestGetAttemptState_WithLockout(t *testing.T) {
	repo, mock, db := newTestAttemptRepo(t)
	defer db.Close()

	until := time.Now().Add(5 * time.Minute)
	rows := sqlmock.
		NewRows([]string{"record_id", "scope_key", "failed_count", "locked_until"}).
		AddRow(10, "user:2", 3, until)

	mock.ExpectQuery("SELECT record_id, scope_key, failed_count, locked_until").
		WithArgs(int64(10), "user:2").
		WillReturnRows(rows)

	state, err := repo.GetAttemptState(context.Background(), 10, "user:2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.FailedCount != 3 {
		t.Errorf("FailedCount = %d, want 3", state.FailedCount)
	}
	if state.LockedUntil == nil || !state.LockedUntil.Equal(until) {
		t.Errorf("LockedUntil = %v, want %v", state.LockedUntil, until)
	}
}

func TestCompareAndSwapAttemptState_InsertPath(t *testing.T) {
	repo, mock, db := newTestAttemptRepo(t)
	defer db.Close()

	next := models.AttemptState{RecordID: 10, ScopeKey: "user:2", FailedCount: 1}

	mock.ExpectExec("INSERT INTO attempt_states").
		WithArgs(int64(10), "user:2", 1, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.CompareAndSwapAttemptState(context.Background(), next, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCompareAndSwapAttemptState_UpdatePath(t *testing.T) {
	repo, mock, db := newTestAttemptRepo(t)
	defer db.Close()

	next := models.AttemptState{RecordID: 10, ScopeKey: "user:2", FailedCount: 2}

	mock.ExpectExec("UPDATE attempt_states").
		WithArgs(int64(10), "user:2", 2, sqlmock.AnyArg(), sqlmock.AnyArg(), 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.CompareAndSwapAttemptState(context.Background(), next, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCompareAndSwapAttemptState_Conflict(t *testing.T) {
	repo, mock, db := newTestAttemptRepo(t)
	defer db.Close()

	next := models.AttemptState{RecordID: 10, ScopeKey: "user:2", FailedCount: 3}

	// Another attempt advanced the counter: zero rows match the guard.
	mock.ExpectExec("UPDATE attempt_states").
		WithArgs(int64(10), "user:2", 3, sqlmock.AnyArg(), sqlmock.AnyArg(), 2).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.CompareAndSwapAttemptState(context.Background(), next, 2)
	if !errors.Is(err, ErrAttemptStateConflict) {
		t.Fatalf("err = %v, want ErrAttemptStateConflict", err)
	}
}

func TestDeleteExpired(t *testing.T) {
	repo, mock, db := newTestAttemptRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM attempt_states").
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 7))

	n, err := repo.DeleteExpired(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 7 {
		t.Errorf("deleted = %d, want 7", n)
	}
}
