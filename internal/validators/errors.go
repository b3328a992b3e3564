package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidRecordID   = errors.New("invalid record ID")
	ErrInvalidUserID     = errors.New("invalid user ID")
	ErrInvalidGroupID    = errors.New("invalid group ID")
	ErrInvalidRecordType = errors.New("invalid record type")
	ErrTitleTooLong      = errors.New("title is too long")
	ErrEmptyContent      = errors.New("content is required")
	ErrInvalidPermission = errors.New("invalid share permission")
	ErrInvalidRole       = errors.New("invalid group role")
	ErrEmptyGroupName    = errors.New("group name is required")
)
