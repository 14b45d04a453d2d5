package dto

// RegisterRequestDTO is the payload for POST /auth/register.
type RegisterRequestDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequestDTO is the payload for POST /auth/login.
type LoginRequestDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenResponseDTO carries the access token issued at login.
type TokenResponseDTO struct {
	AccessToken string `json:"access_token"`
}

// MessageResponseDTO is a generic confirmation body.
type MessageResponseDTO struct {
	Message string `json:"message"`
}

// ErrorResponseDTO is the body returned on every failure.
type ErrorResponseDTO struct {
	Error string `json:"error"`
}
