package service

import (
	"context"

	"github.com/MKhiriev/go-record-keeper/models"
)

// RecordService orchestrates record operations: every read and write goes
// through the authorization resolver first, then through the content
// protector (masking, encryption) as needed.
type RecordService interface {
	CreateRecord(ctx context.Context, actor models.Actor, record models.Record) (models.Record, error)
	GetRecord(ctx context.Context, actor models.Actor, recordID int64) (models.Record, error)
	// ListRecords returns the records visible to the actor, sanitized for
	// outbound transport. recordType optionally narrows by type ("" = all).
	ListRecords(ctx context.Context, actor models.Actor, recordType string) ([]models.Record, error)
	UpdateRecord(ctx context.Context, actor models.Actor, record models.Record) (models.Record, error)
	DeleteRecord(ctx context.Context, actor models.Actor, recordID int64) error

	// GrantShare adds or overwrites a direct share; RevokeShare removes it.
	// Both require write access to the record.
	GrantShare(ctx context.Context, actor models.Actor, recordID, userID int64, permission models.Permission) error
	RevokeShare(ctx context.Context, actor models.Actor, recordID, userID int64) error

	// SetLock installs a passcode lock on the record (writers only) and
	// clears any accumulated attempt state. ClearLock removes the lock.
	SetLock(ctx context.Context, actor models.Actor, recordID int64, passcode string) error
	ClearLock(ctx context.Context, actor models.Actor, recordID int64) error

	// Reveal runs the full pipeline in fixed order: authorize read →
	// verify passcode if locked → decrypt if encrypted. candidate may be
	// nil; a locked record then fails with ErrPasscodeRequired.
	Reveal(ctx context.Context, actor models.Actor, recordID int64, candidate *string) (models.Record, error)

	// Protect sanitizes a record for outbound transport: masks locked
	// content and strips the passcode digest. Content stays ciphertext
	// when encrypted.
	Protect(record models.Record) models.Record
}

// GroupService manages groups and their membership.
type GroupService interface {
	CreateGroup(ctx context.Context, actor models.Actor, name string) (models.Group, error)
	GetGroup(ctx context.Context, actor models.Actor, groupID int64) (models.Group, error)
	RenameGroup(ctx context.Context, actor models.Actor, groupID int64, name string) error
	DeleteGroup(ctx context.Context, actor models.Actor, groupID int64) error

	AddMember(ctx context.Context, actor models.Actor, groupID, userID int64, role models.Role) error
	RemoveMember(ctx context.Context, actor models.Actor, groupID, userID int64) error
}

// AuthService handles account registration, credential verification, and
// JWT lifecycle. It supplies the authenticated Actor identity everything
// else trusts.
type AuthService interface {
	RegisterUser(ctx context.Context, login, name, password string) (models.User, error)
	Login(ctx context.Context, login, password string) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// LockService is the passcode-gating half of the content protector. It
// owns AttemptState and knows nothing about authorization; the record
// service authorizes before calling it.
type LockService interface {
	// MaskIfLocked replaces the content with the lock sentinel when the
	// record is locked and the caller has not unlocked it. No failure mode.
	MaskIfLocked(record models.Record, unlocked bool) models.Record

	// VerifyPasscode runs one passcode attempt for the given scope.
	// Outcomes are values; the error return covers persistence faults only.
	VerifyPasscode(ctx context.Context, record models.Record, scopeKey, candidate string) (models.UnlockResult, error)

	// SetLock returns a copy of the record locked with the given passcode
	// and clears any existing attempt state for the record.
	SetLock(ctx context.Context, record models.Record, passcode string) (models.Record, error)

	// ClearLock returns a copy of the record with the lock removed and
	// clears any existing attempt state for the record.
	ClearLock(ctx context.Context, record models.Record) (models.Record, error)
}

// RecordServiceWrapper defines middleware composition for RecordService.
// Implementations wrap an existing RecordService to add behavior such as
// request validation or logging.
type RecordServiceWrapper interface {
	Wrap(RecordService) RecordService
}
