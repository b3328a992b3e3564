package service

import (
	"fmt"

	"github.com/MKhiriev/go-record-keeper/internal/adapter"
	"github.com/MKhiriev/go-record-keeper/internal/config"
	"github.com/MKhiriev/go-record-keeper/internal/crypto"
	"github.com/MKhiriev/go-record-keeper/internal/logger"
	"github.com/MKhiriev/go-record-keeper/internal/store"
)

// Services aggregates every application service behind one struct the
// transport layer depends on.
type Services struct {
	AuthService   AuthService
	RecordService RecordService
	GroupService  GroupService
	LockService   LockService
}

// NewServices wires the full service layer: the field cipher keyed from
// configuration, the Argon2id hasher shared by auth and lock, and the
// services on top of the repositories.
//
// Fails when the encryption key is missing or unusable; the process must
// not start without field encryption.
func NewServices(storages store.Storages, cfg *config.StructuredConfig, notifier adapter.AlertNotifier, logger *logger.Logger) (*Services, error) {
	cipher, err := crypto.NewFieldCipher(cfg.App.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("initializing field cipher: %w", err)
	}

	hasher := crypto.NewPasscodeHasher()
	lockService := NewLockService(storages.AttemptStateRepository, hasher, cfg.App, logger)
	recordService := NewRecordService(storages.RecordRepository, storages.GroupRepository, cipher, lockService, notifier, logger)

	return &Services{
		AuthService:   NewAuthService(storages.UserRepository, hasher, cfg.App, logger),
		RecordService: NewRecordValidationService().Wrap(recordService),
		GroupService:  NewGroupService(storages.GroupRepository, logger),
		LockService:   lockService,
	}, nil
}
