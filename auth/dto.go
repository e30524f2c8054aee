// Package auth provides authentication and authorization functionality.
// This file defines the request and response payloads for the /auth routes.
package auth

// RegisterRequest represents the registration request payload.
type RegisterRequest struct {
	Username        string `json:"username" validate:"required,min=3,max=150" example:"newuser"`
	Email           string `json:"email" validate:"required,email" example:"user@example.com"`
	Password        string `json:"password" validate:"required,min=8" example:"strongpassword123"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password" example:"strongpassword123"`
}

// LoginRequest represents the login request payload.
type LoginRequest struct {
	Username string `json:"username" example:"newuser"`
	Password string `json:"password" example:"strongpassword123"`
}

// RegisterResponse is returned on successful registration: the account
// fields plus the raw session token, which is only ever handed out here.
type RegisterResponse struct {
	*Member
	Token string `json:"token"`
}

// LoginResponse is returned on successful login.
type LoginResponse struct {
	Token string  `json:"token"`
	User  *Member `json:"user"`
}

// LogoutResponse acknowledges a revoked session.
type LogoutResponse struct {
	Message string `json:"message" example:"Successfully logged out"`
}
