// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-record-keeper/internal/logger"
	"github.com/MKhiriev/go-record-keeper/internal/service"
	"github.com/MKhiriev/go-record-keeper/models"
)

// ─────────────────────────────────────────────
// Mock services
// ─────────────────────────────────────────────

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type mockAuthService struct {
	registerUserFn func(ctx context.Context, login, name, password string) (models.User, error)
	loginFn        func(ctx context.Context, login, password string) (models.User, error)
	createTokenFn  func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn   func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockAuthService) RegisterUser(ctx context.Context, login, name, password string) (models.User, error) {
	return m.registerUserFn(ctx, login, name, password)
}

func (m *mockAuthService) Login(ctx context.Context, login, password string) (models.User, error) {
	return m.loginFn(ctx, login, password)
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return m.createTokenFn(ctx, user)
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseTokenFn(ctx, tokenString)
}

// mockRecordService implements service.RecordService with per-test overrides.
type mockRecordService struct {
	createFn      func(ctx context.Context, actor models.Actor, record models.Record) (models.Record, error)
	getFn         func(ctx context.Context, actor models.Actor, recordID int64) (models.Record, error)
	listFn        func(ctx context.Context, actor models.Actor, recordType string) ([]models.Record, error)
	updateFn      func(ctx context.Context, actor models.Actor, record models.Record) (models.Record, error)
	deleteFn      func(ctx context.Context, actor models.Actor, recordID int64) error
	grantShareFn  func(ctx context.Context, actor models.Actor, recordID, userID int64, permission models.Permission) error
	revokeShareFn func(ctx context.Context, actor models.Actor, recordID, userID int64) error
	setLockFn     func(ctx context.Context, actor models.Actor, recordID int64, passcode string) error
	clearLockFn   func(ctx context.Context, actor models.Actor, recordID int64) error
	revealFn      func(ctx context.Context, actor models.Actor, recordID int64, candidate *string) (models.Record, error)
}

func (m *mockRecordService) CreateRecord(ctx context.Context, actor models.Actor, record models.Record) (models.Record, error) {
	return m.createFn(ctx, actor, record)
}

func (m *mockRecordService) GetRecord(ctx context.Context, actor models.Actor, recordID int64) (models.Record, error) {
	return m.getFn(ctx, actor, recordID)
}

func (m *mockRecordService) ListRecords(ctx context.Context, actor models.Actor, recordType string) ([]models.Record, error) {
	return m.listFn(ctx, actor, recordType)
}

func (m *mockRecordService) UpdateRecord(ctx context.Context, actor models.Actor, record models.Record) (models.Record, error) {
	return m.updateFn(ctx, actor, record)
}

func (m *mockRecordService) DeleteRecord(ctx context.Context, actor models.Actor, recordID int64) error {
	return m.deleteFn(ctx, actor, recordID)
}

func (m *mockRecordService) GrantShare(ctx context.Context, actor models.Actor, recordID, userID int64, permission models.Permission) error {
	return m.grantShareFn(ctx, actor, recordID, userID, permission)
}

func (m *mockRecordService) RevokeShare(ctx context.Context, actor models.Actor, recordID, userID int64) error {
	return m.revokeShareFn(ctx, actor, recordID, userID)
}

func (m *mockRecordService) SetLock(ctx context.Context, actor models.Actor, recordID int64, passcode string) error {
	return m.setLockFn(ctx, actor, recordID, passcode)
}

func (m *mockRecordService) ClearLock(ctx context.Context, actor models.Actor, recordID int64) error {
	return m.clearLockFn(ctx, actor, recordID)
}

func (m *mockRecordService) Reveal(ctx context.Context, actor models.Actor, recordID int64, candidate *string) (models.Record, error) {
	return m.revealFn(ctx, actor, recordID, candidate)
}

func (m *mockRecordService) Protect(record models.Record) models.Record {
	return record
}

// mockGroupService implements service.GroupService with per-test overrides.
type mockGroupService struct {
	createFn       func(ctx context.Context, actor models.Actor, name string) (models.Group, error)
	getFn          func(ctx context.Context, actor models.Actor, groupID int64) (models.Group, error)
	renameFn       func(ctx context.Context, actor models.Actor, groupID int64, name string) error
	deleteFn       func(ctx context.Context, actor models.Actor, groupID int64) error
	addMemberFn    func(ctx context.Context, actor models.Actor, groupID, userID int64, role models.Role) error
	removeMemberFn func(ctx context.Context, actor models.Actor, groupID, userID int64) error
}

func (m *mockGroupService) CreateGroup(ctx context.Context, actor models.Actor, name string) (models.Group, error) {
	return m.createFn(ctx, actor, name)
}

func (m *mockGroupService) GetGroup(ctx context.Context, actor models.Actor, groupID int64) (models.Group, error) {
	return m.getFn(ctx, actor, groupID)
}

func (m *mockGroupService) RenameGroup(ctx context.Context, actor models.Actor, groupID int64, name string) error {
	return m.renameFn(ctx, actor, groupID, name)
}

func (m *mockGroupService) DeleteGroup(ctx context.Context, actor models.Actor, groupID int64) error {
	return m.deleteFn(ctx, actor, groupID)
}

func (m *mockGroupService) AddMember(ctx context.Context, actor models.Actor, groupID, userID int64, role models.Role) error {
	return m.addMemberFn(ctx, actor, groupID, userID, role)
}

func (m *mockGroupService) RemoveMember(ctx context.Context, actor models.Actor, groupID, userID int64) error {
	return m.removeMemberFn(ctx, actor, groupID, userID)
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// newTestHandler builds a Handler around the given service mocks. Nil mocks
// are fine for routes a test never touches.
func newTestHandler(auth service.AuthService, records service.RecordService, groups service.GroupService) *Handler {
	return NewHandler(&service.Services{
		AuthService:   auth,
		RecordService: records,
		GroupService:  groups,
	}, logger.Nop())
}

// injectNopLogger кладёт nop-логгер в контекст запроса.
func injectNopLogger(r *http.Request) *http.Request {
	nop := logger.Nop()
	ctx := nop.Logger.WithContext(r.Context())
	return r.WithContext(ctx)
}

// tokenFor is the parseTokenFn of an auth mock that accepts any token string
// and resolves it to the given identity.
func tokenFor(userID int64, isAdmin bool) func(ctx context.Context, tokenString string) (models.Token, error) {
	return func(_ context.Context, _ string) (models.Token, error) {
		return models.Token{UserID: userID, IsAdmin: isAdmin}, nil
	}
}
