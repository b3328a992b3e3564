package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-record-keeper/internal/validators"
	"github.com/MKhiriev/go-record-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidatedRecordService(t *testing.T) (*recordServiceFixture, RecordService) {
	t.Helper()
	f := newRecordServiceFixture(t)
	return f, NewRecordValidationService().Wrap(f.svc)
}

// ─────────────────────────────────────────────
// Validation wrapper
// ─────────────────────────────────────────────

func TestRecordValidationService_RejectsBeforeInnerRuns(t *testing.T) {
	f, svc := newValidatedRecordService(t)

	createCalled := false
	f.records.createFn = func(_ context.Context, record models.Record) (models.Record, error) {
		createCalled = true
		record.RecordID = 10
		return record, nil
	}

	_, err := svc.CreateRecord(context.Background(), alice, models.Record{
		Type:    "diary",
		Content: "text",
	})
	require.ErrorIs(t, err, ErrInvalidDataProvided)
	require.ErrorIs(t, err, validators.ErrInvalidRecordType)
	assert.False(t, createCalled)
}

func TestRecordValidationService_PassesValidCreate(t *testing.T) {
	f, svc := newValidatedRecordService(t)

	f.records.createFn = func(_ context.Context, record models.Record) (models.Record, error) {
		record.RecordID = 10
		return record, nil
	}

	created, err := svc.CreateRecord(context.Background(), alice, models.Record{
		Type:    models.Note,
		Title:   "groceries",
		Content: "milk, eggs",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), created.RecordID)
}

func TestRecordValidationService_UpdateRequiresRecordID(t *testing.T) {
	_, svc := newValidatedRecordService(t)

	_, err := svc.UpdateRecord(context.Background(), alice, models.Record{
		Type:    models.Note,
		Content: "text",
	})
	require.ErrorIs(t, err, ErrInvalidDataProvided)
	require.ErrorIs(t, err, validators.ErrInvalidRecordID)
}

func TestRecordValidationService_GrantShare(t *testing.T) {
	f, svc := newValidatedRecordService(t)

	err := svc.GrantShare(context.Background(), alice, 10, 0, models.PermissionView)
	require.ErrorIs(t, err, validators.ErrInvalidUserID)

	err = svc.GrantShare(context.Background(), alice, 10, bob.ID, models.Permission("all"))
	require.ErrorIs(t, err, validators.ErrInvalidPermission)

	// валидный запрос идёт дальше, до проверки доступа
	f.serveRecord(models.Record{RecordID: 10, OwnerID: alice.ID, Type: models.Note, Content: "x"})
	var granted models.Share
	f.records.upsertShareFn = func(_ context.Context, recordID, userID int64, permission models.Permission) error {
		granted = models.Share{UserID: userID, Permission: permission}
		return nil
	}
	require.NoError(t, svc.GrantShare(context.Background(), alice, 10, bob.ID, models.PermissionEdit))
	assert.Equal(t, models.Share{UserID: bob.ID, Permission: models.PermissionEdit}, granted)
}

func TestRecordValidationService_ReadsPassThrough(t *testing.T) {
	f, svc := newValidatedRecordService(t)

	f.serveRecord(models.Record{RecordID: 10, OwnerID: alice.ID, Type: models.Note, Content: "x"})

	got, err := svc.GetRecord(context.Background(), alice, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(10), got.RecordID)

	_, err = svc.GetRecord(context.Background(), alice, 404)
	require.ErrorIs(t, err, ErrNotFound)
}
