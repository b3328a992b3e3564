// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// record keeper server handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or log entries to describe the outcome of an operation.
// Keeping them in one place ensures consistent wording throughout the API.
package app

const (
	// MsgInvalidJSON is returned when the request body cannot be decoded
	// as JSON at all.
	MsgInvalidJSON = "Invalid JSON was passed"

	// MsgInvalidDataProvided is returned when the request body decodes but
	// fails validation (e.g. missing required fields, unknown record type).
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidLoginPassword is returned when the supplied login/password
	// combination does not match any existing user record. Deliberately the
	// same wording for an unknown login and a wrong password.
	MsgInvalidLoginPassword = "invalid login/password"

	// MsgLoginAlreadyExists is returned when a registration attempt is
	// rejected because the requested login is already in use.
	MsgLoginAlreadyExists = "login already exists"

	// MsgInvalidRecordID is returned when the record ID segment of the URL
	// is not a positive integer.
	MsgInvalidRecordID = "invalid record id"

	// MsgInvalidGroupID is returned when the group ID segment of the URL is
	// not a positive integer.
	MsgInvalidGroupID = "invalid group id"

	// MsgInvalidURLParameters is returned when some other URL segment (e.g.
	// the user ID of a share or membership row) fails to parse.
	MsgInvalidURLParameters = "invalid url parameters"
)
