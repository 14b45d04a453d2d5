package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Imsaurav1/Ai-pdf-analyzer/internal/api/v1/dto"
	"github.com/Imsaurav1/Ai-pdf-analyzer/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type AuthHandler struct {
	authService service.AuthService
	validate    *validator.Validate
	logger      zerolog.Logger
}

func NewAuthHandler(authService service.AuthService, v *validator.Validate, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, validate: v, logger: logger}
}

// RegisterRoutes mounts v1 auth routes
func (h *AuthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/auth/register", h.register)
	mux.HandleFunc("/auth/login", h.login)
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}

	// 1. Decode request body into DTO
	var req dto.RegisterRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload: "+err.Error())
		return
	}

	// 2. Validate DTO
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	// 3. Call service to create the account
	if err := h.authService.Register(r.Context(), req.Email, req.Password); err != nil {
		switch {
		case errors.Is(err, service.ErrEmailAlreadyRegistered):
			writeError(w, http.StatusBadRequest, "User already exists")
		default:
			h.logger.Error().Err(err).Msg("Registration failed")
			writeError(w, http.StatusInternalServerError, "Failed to register user")
		}
		return
	}

	// 4. Return confirmation
	writeJSON(w, http.StatusCreated, dto.MessageResponseDTO{Message: "User created"})
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}

	// 1. Decode request body into DTO
	var req dto.LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload: "+err.Error())
		return
	}

	// 2. Validate DTO
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	// 3. Exchange credentials for a token
	token, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			writeError(w, http.StatusBadRequest, "Invalid credentials")
		default:
			h.logger.Error().Err(err).Msg("Login failed")
			writeError(w, http.StatusInternalServerError, "Failed to log in")
		}
		return
	}

	// 4. Return the access token
	writeJSON(w, http.StatusOK, dto.TokenResponseDTO{AccessToken: token})
}
