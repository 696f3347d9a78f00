package models

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	id "smp/pkg/domain"
	dErrors "smp/pkg/domain-errors"
)

const maxUserNameLength = 256

// User owns service groups. Names are unique per registry.
type User struct {
	ID           id.UserID `json:"id"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewUser validates the name and hashes the password with bcrypt.
func NewUser(name, password string, now time.Time) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "user name is required")
	}
	if len(name) > maxUserNameLength {
		return nil, dErrors.Newf(dErrors.CodeValidation, "user name exceeds %d characters", maxUserNameLength)
	}
	if password == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "password is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, "password cannot be hashed")
	}
	return &User{
		ID:           id.NewUserID(),
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    now,
	}, nil
}

// CheckPassword compares password against the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// NameKey is the case-insensitive uniqueness key of the user name.
func (u *User) NameKey() string {
	return UserNameKey(u.Name)
}

// UserNameKey normalises a user name for lookup.
func UserNameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
