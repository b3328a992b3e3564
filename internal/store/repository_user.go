package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"

	"github.com/MKhiriev/go-record-keeper/internal/logger"
	"github.com/MKhiriev/go-record-keeper/models"
)

// userRepository is the SQL-backed implementation of [UserRepository].
// It handles user account creation and lookup against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user account and returns the fully populated
// [models.User] with server-assigned fields (UserID, CreatedAt).
//
// A unique-constraint violation on the login column is translated into
// [ErrLoginAlreadyExists].
func (u *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := u.db.QueryRowContext(ctx, createUser, user.Login, user.PasswordHash, user.Name, user.IsAdmin)

	var created models.User
	if err := row.Scan(
		&created.UserID,
		&created.Login,
		&created.PasswordHash,
		&created.Name,
		&created.IsAdmin,
		&created.CreatedAt,
	); err != nil {
		if postgresErrorCode(err) == pgerrcode.UniqueViolation {
			log.Warn().Str("func", "userRepository.CreateUser").Str("login", user.Login).Msg("login already taken")
			return models.User{}, ErrLoginAlreadyExists
		}
		log.Err(err).Str("func", "userRepository.CreateUser").Msg("failed to insert user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return created, nil
}

// FindUserByLogin looks up an account by its unique login.
// Returns [ErrUserNotFound] when no such account exists.
func (u *userRepository) FindUserByLogin(ctx context.Context, login string) (models.User, error) {
	return u.findUser(ctx, findUserByLogin, login)
}

// FindUserByID looks up an account by its internal identifier.
// Returns [ErrUserNotFound] when no such account exists.
func (u *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	return u.findUser(ctx, findUserByID, userID)
}

func (u *userRepository) findUser(ctx context.Context, query string, arg any) (models.User, error) {
	log := logger.FromContext(ctx)

	var user models.User
	err := u.db.QueryRowContext(ctx, query, arg).Scan(
		&user.UserID,
		&user.Login,
		&user.PasswordHash,
		&user.Name,
		&user.IsAdmin,
		&user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "userRepository.findUser").Msg("failed to query user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, nil
}
