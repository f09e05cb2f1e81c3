package dto

import (
	"strings"

	"teslo/internal/models"
)

// CreateUserDTO is the registration request body.
type CreateUserDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=50,password"`
	FullName string `json:"fullName" validate:"required,min=1"`
}

// Validate checks the registration fields.
func (d *CreateUserDTO) Validate() error {
	d.Email = NormalizeEmail(d.Email)
	d.FullName = strings.TrimSpace(d.FullName)
	return validateStruct(d)
}

// LoginUserDTO is the login request body.
type LoginUserDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=50"`
}

// Validate checks the login fields.
func (d *LoginUserDTO) Validate() error {
	d.Email = NormalizeEmail(d.Email)
	return validateStruct(d)
}

// AuthResponse is returned by register, login and token-login.
type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
