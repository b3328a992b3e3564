package config

import "errors"

var (
	// ErrNoEncryptionKey is returned when no field encryption key was supplied by any configuration source.
	ErrNoEncryptionKey = errors.New("encryption key is not set")
	// ErrNoTokenSignKey is returned when no JWT signing key was supplied by any configuration source.
	ErrNoTokenSignKey = errors.New("token sign key is not set")
	// ErrNoDatabaseDSN is returned when no database connection string was supplied by any configuration source.
	ErrNoDatabaseDSN = errors.New("database DSN is not set")
)
