package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-record-keeper/internal/access"
	"github.com/MKhiriev/go-record-keeper/internal/adapter"
	"github.com/MKhiriev/go-record-keeper/internal/crypto"
	"github.com/MKhiriev/go-record-keeper/internal/logger"
	"github.com/MKhiriev/go-record-keeper/internal/store"
	"github.com/MKhiriev/go-record-keeper/models"
)

// recordService is the concrete implementation of RecordService: a thin
// orchestrator over the authorization resolver, the content protector,
// and the record repository. Every operation authorizes before touching
// content; masking and encryption come after.
type recordService struct {
	records  store.RecordRepository
	groups   store.GroupRepository
	resolver access.Resolver
	cipher   crypto.FieldCipher
	lock     LockService
	notifier adapter.AlertNotifier

	logger *logger.Logger
}

// NewRecordService constructs a RecordService.
func NewRecordService(
	records store.RecordRepository,
	groups store.GroupRepository,
	cipher crypto.FieldCipher,
	lock LockService,
	notifier adapter.AlertNotifier,
	logger *logger.Logger,
) RecordService {
	return &recordService{
		records:  records,
		groups:   groups,
		resolver: access.NewResolver(),
		cipher:   cipher,
		lock:     lock,
		notifier: notifier,
		logger:   logger,
	}
}

// CreateRecord persists a new record owned by the actor. The content is
// encrypted before storage when the record is flagged IsEncrypted. Lock
// state cannot be set here; SetLock is the only entry point for that.
func (s *recordService) CreateRecord(ctx context.Context, actor models.Actor, record models.Record) (models.Record, error) {
	if record.Type != models.Note && record.Type != models.PasswordEntry {
		return models.Record{}, fmt.Errorf("%w: unknown record type %q", ErrInvalidDataProvided, record.Type)
	}
	if record.Content == "" {
		return models.Record{}, fmt.Errorf("%w: empty content", ErrInvalidDataProvided)
	}

	record.OwnerID = actor.ID
	record.IsLocked = false
	record.LockPasscodeHash = ""
	record.SharedWith = nil

	if record.IsEncrypted {
		ciphertext, err := s.cipher.EncryptField(record.Content)
		if err != nil {
			return models.Record{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
		}
		record.Content = ciphertext
	}

	created, err := s.records.CreateRecord(ctx, record)
	if err != nil {
		return models.Record{}, fmt.Errorf("creating record: %w", err)
	}

	return s.Protect(created), nil
}

// GetRecord returns the record sanitized for outbound transport: content
// masked while locked, ciphertext left opaque. Reveal is the entry point
// for actual content.
func (s *recordService) GetRecord(ctx context.Context, actor models.Actor, recordID int64) (models.Record, error) {
	record, _, err := s.loadAuthorized(ctx, actor, recordID, access.ActionRead)
	if err != nil {
		return models.Record{}, err
	}

	return s.Protect(record), nil
}

// ListRecords returns every record visible to the actor, each sanitized
// with Protect. Visibility (own, shared, group-reachable) is resolved by
// the repository query; system administrators list all records, matching
// their per-record override.
func (s *recordService) ListRecords(ctx context.Context, actor models.Actor, recordType string) ([]models.Record, error) {
	if recordType != "" && recordType != models.Note && recordType != models.PasswordEntry {
		return nil, fmt.Errorf("%w: unknown record type %q", ErrInvalidDataProvided, recordType)
	}

	records, err := s.records.ListRecords(ctx, actor.ID, recordType, actor.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}

	protected := make([]models.Record, 0, len(records))
	for _, record := range records {
		protected = append(protected, s.Protect(record))
	}

	return protected, nil
}

// UpdateRecord overwrites the mutable fields of an existing record:
// title, content, type, group tag, and encryption flag. Ownership, shares,
// and lock state are managed through their dedicated operations.
func (s *recordService) UpdateRecord(ctx context.Context, actor models.Actor, record models.Record) (models.Record, error) {
	if record.Type != models.Note && record.Type != models.PasswordEntry {
		return models.Record{}, fmt.Errorf("%w: unknown record type %q", ErrInvalidDataProvided, record.Type)
	}
	if record.Content == "" {
		return models.Record{}, fmt.Errorf("%w: empty content", ErrInvalidDataProvided)
	}

	existing, _, err := s.loadAuthorized(ctx, actor, record.RecordID, access.ActionWrite)
	if err != nil {
		return models.Record{}, err
	}

	updated := existing
	updated.Type = record.Type
	updated.Title = record.Title
	updated.Content = record.Content
	updated.GroupID = record.GroupID
	updated.IsEncrypted = record.IsEncrypted

	if updated.IsEncrypted {
		ciphertext, err := s.cipher.EncryptField(updated.Content)
		if err != nil {
			return models.Record{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
		}
		updated.Content = ciphertext
	}

	if err := s.records.UpdateRecord(ctx, updated); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return models.Record{}, ErrNotFound
		}
		return models.Record{}, fmt.Errorf("updating record: %w", err)
	}

	return s.Protect(updated), nil
}

// DeleteRecord removes a record. Only the owner or a system admin may
// delete; group admins and edit shares cannot.
func (s *recordService) DeleteRecord(ctx context.Context, actor models.Actor, recordID int64) error {
	record, err := s.loadRecord(ctx, recordID)
	if err != nil {
		return err
	}

	if !s.resolver.CanDelete(actor, record) {
		return ErrAccessDenied
	}

	if err := s.records.DeleteRecord(ctx, recordID); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("deleting record: %w", err)
	}

	return nil
}

// GrantShare adds or overwrites a direct (user, permission) share.
func (s *recordService) GrantShare(ctx context.Context, actor models.Actor, recordID, userID int64, permission models.Permission) error {
	if permission != models.PermissionView && permission != models.PermissionEdit {
		return fmt.Errorf("%w: unknown permission %q", ErrInvalidDataProvided, permission)
	}

	if _, _, err := s.loadAuthorized(ctx, actor, recordID, access.ActionWrite); err != nil {
		return err
	}

	if err := s.records.UpsertShare(ctx, recordID, userID, permission); err != nil {
		return fmt.Errorf("granting share: %w", err)
	}

	return nil
}

// RevokeShare removes a direct share. Revoking an absent share is a no-op.
func (s *recordService) RevokeShare(ctx context.Context, actor models.Actor, recordID, userID int64) error {
	if _, _, err := s.loadAuthorized(ctx, actor, recordID, access.ActionWrite); err != nil {
		return err
	}

	if err := s.records.DeleteShare(ctx, recordID, userID); err != nil {
		return fmt.Errorf("revoking share: %w", err)
	}

	return nil
}

// SetLock installs a passcode lock on the record. Writer-only; clears any
// accumulated attempt state so the new passcode starts with a clean slate.
func (s *recordService) SetLock(ctx context.Context, actor models.Actor, recordID int64, passcode string) error {
	record, _, err := s.loadAuthorized(ctx, actor, recordID, access.ActionWrite)
	if err != nil {
		return err
	}

	locked, err := s.lock.SetLock(ctx, record, passcode)
	if err != nil {
		return err
	}

	if err := s.records.UpdateRecord(ctx, locked); err != nil {
		return fmt.Errorf("persisting lock: %w", err)
	}

	return nil
}

// ClearLock removes the passcode lock from the record. Writer-only.
func (s *recordService) ClearLock(ctx context.Context, actor models.Actor, recordID int64) error {
	record, _, err := s.loadAuthorized(ctx, actor, recordID, access.ActionWrite)
	if err != nil {
		return err
	}

	unlocked, err := s.lock.ClearLock(ctx, record)
	if err != nil {
		return err
	}

	if err := s.records.UpdateRecord(ctx, unlocked); err != nil {
		return fmt.Errorf("persisting lock removal: %w", err)
	}

	return nil
}

// Reveal runs the full content pipeline in fixed order: authorize read,
// then verify the passcode if the record is locked, then decrypt if the
// record is encrypted. The returned record carries plaintext content and
// no passcode digest.
func (s *recordService) Reveal(ctx context.Context, actor models.Actor, recordID int64, candidate *string) (models.Record, error) {
	log := logger.FromContext(ctx)

	record, _, err := s.loadAuthorized(ctx, actor, recordID, access.ActionRead)
	if err != nil {
		return models.Record{}, err
	}

	if record.IsLocked {
		if candidate == nil {
			return models.Record{}, ErrPasscodeRequired
		}

		result, err := s.lock.VerifyPasscode(ctx, record, UserScopeKey(actor.ID), *candidate)
		if err != nil {
			return models.Record{}, err
		}

		switch result.Outcome {
		case models.OutcomeRejected:
			return models.Record{}, &PasscodeRejectedError{RemainingAttempts: result.RemainingAttempts}
		case models.OutcomeLockedOut:
			return models.Record{}, &LockedOutError{RetryAfter: result.RetryAfter}
		}
	}

	if record.IsEncrypted {
		plaintext, err := s.cipher.DecryptField(record.Content)
		if err != nil {
			log.Err(err).
				Int64("recordID", record.RecordID).
				Msg("stored ciphertext could not be decrypted")
			s.alert(ctx, adapter.Alert{
				Kind:     "decrypt_integrity_fault",
				Message:  "stored ciphertext could not be decrypted",
				RecordID: record.RecordID,
			})
			return models.Record{}, ErrDecryptionFailure
		}
		record.Content = plaintext
	}

	record.LockPasscodeHash = ""
	return record, nil
}

// Protect implements the outbound sanitization surface.
func (s *recordService) Protect(record models.Record) models.Record {
	record = s.lock.MaskIfLocked(record, false)
	record.LockPasscodeHash = ""
	return record
}

// loadRecord fetches a record, translating absence into ErrNotFound.
func (s *recordService) loadRecord(ctx context.Context, recordID int64) (models.Record, error) {
	record, err := s.records.GetRecord(ctx, recordID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return models.Record{}, ErrNotFound
		}
		return models.Record{}, fmt.Errorf("loading record: %w", err)
	}
	return record, nil
}

// loadAuthorized fetches the record and its group (when tagged) and runs
// the resolver for the given action. Existence is resolved first, so an
// absent record is ErrNotFound for everyone while an existing record the
// actor may not touch is uniformly ErrAccessDenied.
func (s *recordService) loadAuthorized(ctx context.Context, actor models.Actor, recordID int64, action access.Action) (models.Record, *models.Group, error) {
	record, err := s.loadRecord(ctx, recordID)
	if err != nil {
		return models.Record{}, nil, err
	}

	group := s.resolveGroup(ctx, record)

	if !s.resolver.Can(actor, action, record, group) {
		return models.Record{}, nil, ErrAccessDenied
	}

	return record, group, nil
}

// resolveGroup dereferences the record's group tag. A dangling tag is an
// external-state inconsistency: it is logged and alerted, and the group
// path simply contributes nothing to authorization. The actor never sees
// a lookup error.
func (s *recordService) resolveGroup(ctx context.Context, record models.Record) *models.Group {
	if record.GroupID == nil {
		return nil
	}

	log := logger.FromContext(ctx)

	group, err := s.groups.GetGroup(ctx, *record.GroupID)
	if err != nil {
		log.Err(err).
			Int64("recordID", record.RecordID).
			Int64("groupID", *record.GroupID).
			Msg("record references an unresolvable group")
		s.alert(ctx, adapter.Alert{
			Kind:     "group_unresolvable",
			Message:  "record references an unresolvable group",
			RecordID: record.RecordID,
			GroupID:  *record.GroupID,
		})
		return nil
	}

	return &group
}

// alert delivers an internal alert; delivery failures are logged and
// dropped, never propagated into the request path.
func (s *recordService) alert(ctx context.Context, a adapter.Alert) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, a); err != nil {
		logger.FromContext(ctx).Err(err).Str("kind", a.Kind).Msg("internal alert delivery failed")
	}
}
