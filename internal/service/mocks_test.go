// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-record-keeper/internal/adapter"
	"github.com/MKhiriev/go-record-keeper/internal/store"
	"github.com/MKhiriev/go-record-keeper/models"
)

var errStorage = errors.New("storage error")

// ─────────────────────────────────────────────
// Mock: store.RecordRepository
// ─────────────────────────────────────────────

type mockRecordRepository struct {
	createFn      func(ctx context.Context, record models.Record) (models.Record, error)
	getFn         func(ctx context.Context, recordID int64) (models.Record, error)
	listFn        func(ctx context.Context, userID int64, recordType string, asAdmin bool) ([]models.Record, error)
	updateFn      func(ctx context.Context, record models.Record) error
	deleteFn      func(ctx context.Context, recordID int64) error
	upsertShareFn func(ctx context.Context, recordID, userID int64, permission models.Permission) error
	deleteShareFn func(ctx context.Context, recordID, userID int64) error
}

func (m *mockRecordRepository) CreateRecord(ctx context.Context, record models.Record) (models.Record, error) {
	if m.createFn != nil {
		return m.createFn(ctx, record)
	}
	return record, nil
}

func (m *mockRecordRepository) GetRecord(ctx context.Context, recordID int64) (models.Record, error) {
	if m.getFn != nil {
		return m.getFn(ctx, recordID)
	}
	return models.Record{}, store.ErrRecordNotFound
}

func (m *mockRecordRepository) ListRecords(ctx context.Context, userID int64, recordType string, asAdmin bool) ([]models.Record, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID, recordType, asAdmin)
	}
	return nil, nil
}

func (m *mockRecordRepository) UpdateRecord(ctx context.Context, record models.Record) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, record)
	}
	return nil
}

func (m *mockRecordRepository) DeleteRecord(ctx context.Context, recordID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, recordID)
	}
	return nil
}

func (m *mockRecordRepository) UpsertShare(ctx context.Context, recordID, userID int64, permission models.Permission) error {
	if m.upsertShareFn != nil {
		return m.upsertShareFn(ctx, recordID, userID, permission)
	}
	return nil
}

func (m *mockRecordRepository) DeleteShare(ctx context.Context, recordID, userID int64) error {
	if m.deleteShareFn != nil {
		return m.deleteShareFn(ctx, recordID, userID)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: store.GroupRepository
// ─────────────────────────────────────────────

type mockGroupRepository struct {
	createFn       func(ctx context.Context, group models.Group) (models.Group, error)
	getFn          func(ctx context.Context, groupID int64) (models.Group, error)
	renameFn       func(ctx context.Context, groupID int64, name string) error
	deleteFn       func(ctx context.Context, groupID int64) error
	upsertMemberFn func(ctx context.Context, groupID, userID int64, role models.Role) error
	deleteMemberFn func(ctx context.Context, groupID, userID int64) error
}

func (m *mockGroupRepository) CreateGroup(ctx context.Context, group models.Group) (models.Group, error) {
	if m.createFn != nil {
		return m.createFn(ctx, group)
	}
	return group, nil
}

func (m *mockGroupRepository) GetGroup(ctx context.Context, groupID int64) (models.Group, error) {
	if m.getFn != nil {
		return m.getFn(ctx, groupID)
	}
	return models.Group{}, store.ErrGroupNotFound
}

func (m *mockGroupRepository) RenameGroup(ctx context.Context, groupID int64, name string) error {
	if m.renameFn != nil {
		return m.renameFn(ctx, groupID, name)
	}
	return nil
}

func (m *mockGroupRepository) DeleteGroup(ctx context.Context, groupID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, groupID)
	}
	return nil
}

func (m *mockGroupRepository) UpsertMember(ctx context.Context, groupID, userID int64, role models.Role) error {
	if m.upsertMemberFn != nil {
		return m.upsertMemberFn(ctx, groupID, userID, role)
	}
	return nil
}

func (m *mockGroupRepository) DeleteMember(ctx context.Context, groupID, userID int64) error {
	if m.deleteMemberFn != nil {
		return m.deleteMemberFn(ctx, groupID, userID)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: store.UserRepository
// ─────────────────────────────────────────────

type mockUserRepository struct {
	createFn      func(ctx context.Context, user models.User) (models.User, error)
	findByLoginFn func(ctx context.Context, login string) (models.User, error)
	findByIDFn    func(ctx context.Context, userID int64) (models.User, error)
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return user, nil
}

func (m *mockUserRepository) FindUserByLogin(ctx context.Context, login string) (models.User, error) {
	if m.findByLoginFn != nil {
		return m.findByLoginFn(ctx, login)
	}
	return models.User{}, store.ErrUserNotFound
}

func (m *mockUserRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, userID)
	}
	return models.User{}, store.ErrUserNotFound
}

// ─────────────────────────────────────────────
// In-memory AttemptStateRepository
// ─────────────────────────────────────────────

// memAttemptStates is a real in-memory implementation of the CAS contract,
// so lock tests exercise the same serialization the SQL repository gives.
type memAttemptStates struct {
	mu     sync.Mutex
	states map[string]models.AttemptState

	// casErr, when set, is returned by the next CompareAndSwapAttemptState
	// call and then cleared. Used to simulate one losing race.
	casErr error
}

func newMemAttemptStates() *memAttemptStates {
	return &memAttemptStates{states: make(map[string]models.AttemptState)}
}

func attemptKey(recordID int64, scopeKey string) string {
	return fmt.Sprintf("%d@%s", recordID, scopeKey)
}

func (m *memAttemptStates) GetAttemptState(_ context.Context, recordID int64, scopeKey string) (models.AttemptState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.states[attemptKey(recordID, scopeKey)]
	if !ok {
		return models.AttemptState{RecordID: recordID, ScopeKey: scopeKey}, nil
	}
	return state, nil
}

func (m *memAttemptStates) CompareAndSwapAttemptState(_ context.Context, next models.AttemptState, expectedCount int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.casErr != nil {
		err := m.casErr
		m.casErr = nil
		return err
	}

	key := attemptKey(next.RecordID, next.ScopeKey)
	current, ok := m.states[key]
	currentCount := 0
	if ok {
		currentCount = current.FailedCount
	}
	if currentCount != expectedCount {
		return store.ErrAttemptStateConflict
	}

	m.states[key] = next
	return nil
}

func (m *memAttemptStates) ResetAttemptState(_ context.Context, recordID int64, scopeKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.states, attemptKey(recordID, scopeKey))
	return nil
}

func (m *memAttemptStates) ClearRecordAttempts(_ context.Context, recordID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key, state := range m.states {
		if state.RecordID == recordID {
			delete(m.states, key)
		}
	}
	return nil
}

func (m *memAttemptStates) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var removed int64
	for key, state := range m.states {
		if state.LockedUntil != nil && state.LockedUntil.Before(before) {
			delete(m.states, key)
			removed++
		}
	}
	return removed, nil
}

// ─────────────────────────────────────────────
// Mock: adapter.AlertNotifier
// ─────────────────────────────────────────────

type mockNotifier struct {
	mu     sync.Mutex
	alerts []adapter.Alert
}

func (m *mockNotifier) Notify(_ context.Context, alert adapter.Alert) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.alerts = append(m.alerts, alert)
	return nil
}

func (m *mockNotifier) sent() []adapter.Alert {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]adapter.Alert(nil), m.alerts...)
}
