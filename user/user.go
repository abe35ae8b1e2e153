package user

import (
	"gomovies/errs"
	"strings"
	"time"
)

var (
	ErrInvalidEmail   = errs.Errorf(errs.EINVALID, "user: invalid email")
	ErrUserIDRequired = errs.Errorf(errs.EINVALID, "user: id is required")
	ErrUserNotFound   = errs.Errorf(errs.ENOTFOUND, "user: not found")
	ErrNotLoggedIn    = errs.Errorf(errs.EUNAUTHORIZED, "must be logged in")

	ErrEmailAlreadyExists = errs.Errorf(errs.ECONFLICT, "user: email already exists")
)

// User is an identity established through the federated identity provider.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u User) Validate() error {
	email := strings.TrimSpace(u.Email)
	if email == "" || !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	return nil
}

// DisplayName falls back to "User" when the provider gave no name.
func (u User) DisplayName() string {
	if name := strings.TrimSpace(u.Name); name != "" {
		return name
	}
	return "User"
}
