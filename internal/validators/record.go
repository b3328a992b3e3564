package validators

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-record-keeper/models"
)

// Field name constants used to specify which fields should be validated.
// These constants are passed to Validate or internal validation methods
// to restrict validation to a subset of fields (field-level scoping).
const (
	// FieldRecordID targets the internal identifier of a record.
	FieldRecordID = "record_id"

	// FieldUserID targets a user identifier in share and membership inputs.
	FieldUserID = "user_id"

	// FieldGroupID targets the optional group tag of a record.
	FieldGroupID = "group_id"

	// FieldType targets the semantic record type field (note, password entry).
	FieldType = "type"

	// FieldTitle targets the non-sensitive display title of a record.
	FieldTitle = "title"

	// FieldContent targets the content payload of a record.
	FieldContent = "content"

	// FieldPermission targets the permission level of a direct share.
	FieldPermission = "permission"

	// FieldRole targets the role of a group membership row.
	FieldRole = "role"

	// FieldName targets the display name of a group.
	FieldName = "name"
)

// maxTitleLength bounds the record title in runes.
const maxTitleLength = 255

// allowedRecordTypes is the exhaustive set of record types accepted by the
// validator. Any type not present in this slice is considered invalid.
var allowedRecordTypes = []string{
	models.Note,
	models.PasswordEntry,
}

// RecordValidator implements the Validator interface for the record-related
// domain models: Record, Share, Group, and GroupMember.
//
// It supports both value and pointer receivers for every model type
// and allows optional field-level scoping via variadic field name arguments.
type RecordValidator struct {
}

// NewRecordValidator constructs a new RecordValidator
// and returns it as the Validator interface.
func NewRecordValidator() Validator {
	return &RecordValidator{}
}

// Validate dispatches validation to the appropriate type-specific method
// based on the dynamic type of obj. Both value and pointer forms of each
// supported model are accepted.
//
// Supported types:
//   - models.Record / *models.Record
//   - models.Share / *models.Share
//   - models.Group / *models.Group
//   - models.GroupMember / *models.GroupMember
//
// Returns ErrUnsupportedType if obj does not match any known model.
// Optional fields restrict validation to the named subset; when omitted,
// a sensible default set of fields is validated.
func (v *RecordValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Record:
		return v.validateRecord(ctx, value, fields...)
	case *models.Record:
		return v.validateRecord(ctx, *value, fields...)

	case models.Share:
		return v.validateShare(ctx, value, fields...)
	case *models.Share:
		return v.validateShare(ctx, *value, fields...)

	case models.Group:
		return v.validateGroup(ctx, value, fields...)
	case *models.Group:
		return v.validateGroup(ctx, *value, fields...)

	case models.GroupMember:
		return v.validateGroupMember(ctx, value, fields...)
	case *models.GroupMember:
		return v.validateGroupMember(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func isValidRecordType(t string) bool {
	for _, allowed := range allowedRecordTypes {
		if t == allowed {
			return true
		}
	}
	return false
}

func (v *RecordValidator) validateRecord(ctx context.Context, record models.Record, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldType, FieldTitle, FieldContent}
	}

	for _, f := range fields {
		switch f {
		case FieldRecordID:
			if record.RecordID <= 0 {
				return ErrInvalidRecordID
			}
		case FieldGroupID:
			if record.GroupID != nil && *record.GroupID <= 0 {
				return ErrInvalidGroupID
			}
		case FieldType:
			if !isValidRecordType(record.Type) {
				return ErrInvalidRecordType
			}
		case FieldTitle:
			if utf8.RuneCountInString(record.Title) > maxTitleLength {
				return ErrTitleTooLong
			}
		case FieldContent:
			if record.Content == "" {
				return ErrEmptyContent
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RecordValidator) validateShare(ctx context.Context, share models.Share, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldPermission}
	}

	for _, f := range fields {
		switch f {
		case FieldUserID:
			if share.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldPermission:
			if !share.Permission.Valid() {
				return ErrInvalidPermission
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RecordValidator) validateGroup(ctx context.Context, group models.Group, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if strings.TrimSpace(group.Name) == "" {
				return ErrEmptyGroupName
			}
		case FieldGroupID:
			if group.GroupID <= 0 {
				return ErrInvalidGroupID
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RecordValidator) validateGroupMember(ctx context.Context, member models.GroupMember, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldRole}
	}

	for _, f := range fields {
		switch f {
		case FieldUserID:
			if member.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldRole:
			if !member.Role.Valid() {
				return ErrInvalidRole
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
