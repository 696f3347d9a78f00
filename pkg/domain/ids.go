package domain

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	dErrors "smp/pkg/domain-errors"
)

// UserID identifies a registry user (the owner of service groups).
type UserID uuid.UUID

// OperationID identifies one registration coordinator run for correlation in
// logs and audit events.
type OperationID uuid.UUID

// NewUserID returns a random user ID.
func NewUserID() UserID { return UserID(uuid.New()) }

// NewOperationID returns a random operation ID.
func NewOperationID() OperationID { return OperationID(uuid.New()) }

func (id UserID) String() string      { return uuid.UUID(id).String() }
func (id UserID) IsNil() bool         { return uuid.UUID(id) == uuid.Nil }
func (id OperationID) String() string { return uuid.UUID(id).String() }

// ParseUserID parses a canonical UUID string into a UserID.
func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID(s)
	return UserID(u), err
}

func parseUUID(s string) (uuid.UUID, error) {
	if strings.TrimSpace(s) == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id is required")
	}
	if !utf8.ValidString(s) || len(s) > 64 {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id is malformed")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "id is not a valid uuid")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id must not be the nil uuid")
	}
	return u, nil
}

// MarshalText renders the canonical UUID form so stored documents stay readable.
func (id UserID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *UserID) UnmarshalText(b []byte) error {
	u, err := uuid.ParseBytes(b)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInvalidInput, "id is not a valid uuid")
	}
	*id = UserID(u)
	return nil
}
