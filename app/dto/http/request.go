package http

import (
	"errors"
	"net/mail"
	"strings"

	"github.com/vibast-solutions/ms-go-session/config"
)

type SignupRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (r *SignupRequest) Validate(policy config.PasswordPolicy) error {
	if strings.TrimSpace(r.Email) == "" {
		return errors.New("email is required")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return errors.New("invalid email format")
	}
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	if len(strings.TrimSpace(r.Name)) < 3 {
		return errors.New("name must be at least 3 characters")
	}
	if r.Password == "" {
		return errors.New("password is required")
	}
	return policy.Validate(r.Password)
}

type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *SigninRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" || r.Password == "" {
		return errors.New("email and password are required")
	}
	return nil
}
