package customer

import (
	"errors"
	"regexp"
)

var (
	ErrNotFound           = errors.New("customer not found")
	ErrUsernameTaken      = errors.New("username already in use")
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid username or password")

	ErrInvalidUsername = errors.New("username must be 4-20 letters, digits or underscores")
	ErrInvalidPassword = errors.New("password must be at least 6 characters")
	ErrInvalidEmail    = errors.New("email is malformed")
	ErrInvalidPhone    = errors.New("phone must be 8-15 digits")
)

// Customer maps to the `customers` table. Password holds whatever the
// configured Verifier expects (plaintext by default, bcrypt hash when the
// bcrypt verifier is in use).
type Customer struct {
	ID       int64  `json:"custNum"`
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
	Name     string `json:"custName"`
	Email    string `json:"custEmail"`
	Phone    string `json:"custPhone,omitempty"`
	Address  string `json:"custAddress,omitempty"`
}

var (
	usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]{4,20}$`)
	emailRe    = regexp.MustCompile(`^[^@\s]+@[^@\s]+$`)
	phoneRe    = regexp.MustCompile(`^[0-9]{8,15}$`)
)

// Validate checks the registration fields and returns the first violation.
func (c Customer) Validate() error {
	if !usernameRe.MatchString(c.Username) {
		return ErrInvalidUsername
	}
	if len(c.Password) < 6 {
		return ErrInvalidPassword
	}
	if !emailRe.MatchString(c.Email) {
		return ErrInvalidEmail
	}
	if c.Phone != "" && !phoneRe.MatchString(c.Phone) {
		return ErrInvalidPhone
	}
	return nil
}

// sanitize blanks the password before a customer leaves the API.
func sanitize(c Customer) Customer {
	c.Password = ""
	return c
}
