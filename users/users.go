package users

import (
	"strconv"
)

// User is the identity returned by the backend for the signed-in account.
type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// IDString is the user identifier as it appears in page paths.
func (u User) IDString() string {
	return strconv.FormatInt(u.ID, 10)
}

// Credentials are sent to both the register and login endpoints.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Registration is the sign-up form. ConfirmPassword never leaves the console.
type Registration struct {
	Email           string `validate:"required,email"`
	Password        string `validate:"required,password"`
	ConfirmPassword string `validate:"required"`
}

func (r Registration) Credentials() Credentials {
	return Credentials{Email: r.Email, Password: r.Password}
}
