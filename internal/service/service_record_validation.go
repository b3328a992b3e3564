package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-record-keeper/internal/validators"
	"github.com/MKhiriev/go-record-keeper/models"
)

// RecordValidationService decorates a RecordService with structural input
// validation. Requests that fail validation never reach the inner service;
// they fail with ErrInvalidDataProvided wrapping the specific validator error.
type RecordValidationService struct {
	inner     RecordService
	validator validators.Validator
}

// NewRecordValidationService returns a RecordServiceWrapper that validates
// inputs before delegating to the wrapped service.
func NewRecordValidationService() RecordServiceWrapper {
	return &RecordValidationService{
		validator: validators.NewRecordValidator(),
	}
}

// Wrap installs the inner service and returns the decorated RecordService.
func (v *RecordValidationService) Wrap(inner RecordService) RecordService {
	v.inner = inner
	return v
}

func (v *RecordValidationService) CreateRecord(ctx context.Context, actor models.Actor, record models.Record) (models.Record, error) {
	if err := v.validator.Validate(ctx, record,
		validators.FieldType, validators.FieldTitle, validators.FieldContent, validators.FieldGroupID); err != nil {
		return models.Record{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.CreateRecord(ctx, actor, record)
}

func (v *RecordValidationService) GetRecord(ctx context.Context, actor models.Actor, recordID int64) (models.Record, error) {
	return v.inner.GetRecord(ctx, actor, recordID)
}

func (v *RecordValidationService) ListRecords(ctx context.Context, actor models.Actor, recordType string) ([]models.Record, error) {
	return v.inner.ListRecords(ctx, actor, recordType)
}

func (v *RecordValidationService) UpdateRecord(ctx context.Context, actor models.Actor, record models.Record) (models.Record, error) {
	if err := v.validator.Validate(ctx, record,
		validators.FieldRecordID, validators.FieldType, validators.FieldTitle, validators.FieldContent, validators.FieldGroupID); err != nil {
		return models.Record{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.UpdateRecord(ctx, actor, record)
}

func (v *RecordValidationService) DeleteRecord(ctx context.Context, actor models.Actor, recordID int64) error {
	return v.inner.DeleteRecord(ctx, actor, recordID)
}

func (v *RecordValidationService) GrantShare(ctx context.Context, actor models.Actor, recordID, userID int64, permission models.Permission) error {
	if err := v.validator.Validate(ctx, models.Share{UserID: userID, Permission: permission}); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.GrantShare(ctx, actor, recordID, userID, permission)
}

func (v *RecordValidationService) RevokeShare(ctx context.Context, actor models.Actor, recordID, userID int64) error {
	if err := v.validator.Validate(ctx, models.Share{UserID: userID}, validators.FieldUserID); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.RevokeShare(ctx, actor, recordID, userID)
}

func (v *RecordValidationService) SetLock(ctx context.Context, actor models.Actor, recordID int64, passcode string) error {
	return v.inner.SetLock(ctx, actor, recordID, passcode)
}

func (v *RecordValidationService) ClearLock(ctx context.Context, actor models.Actor, recordID int64) error {
	return v.inner.ClearLock(ctx, actor, recordID)
}

func (v *RecordValidationService) Reveal(ctx context.Context, actor models.Actor, recordID int64, candidate *string) (models.Record, error) {
	return v.inner.Reveal(ctx, actor, recordID, candidate)
}

func (v *RecordValidationService) Protect(record models.Record) models.Record {
	return v.inner.Protect(record)
}
