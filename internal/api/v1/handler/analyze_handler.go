package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Imsaurav1/Ai-pdf-analyzer/internal/api/v1/dto"
	"github.com/Imsaurav1/Ai-pdf-analyzer/internal/middleware"
	"github.com/Imsaurav1/Ai-pdf-analyzer/internal/model"
	"github.com/Imsaurav1/Ai-pdf-analyzer/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type AnalyzeHandler struct {
	analyzeService service.AnalyzeService
	validate       *validator.Validate
	logger         zerolog.Logger
}

func NewAnalyzeHandler(analyzeService service.AnalyzeService, v *validator.Validate, logger zerolog.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{analyzeService: analyzeService, validate: v, logger: logger}
}

// RegisterRoutes mounts v1 analyze routes
func (h *AnalyzeHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/analyze", authMw(http.HandlerFunc(h.analyze)))
	mux.Handle("/analyses", authMw(http.HandlerFunc(h.listAnalyses)))
	mux.Handle("/users/me", authMw(http.HandlerFunc(h.getProfile)))
}

func (h *AnalyzeHandler) analyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}

	// 1. Extract the authenticated email from context
	email, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || email == "" {
		writeError(w, http.StatusUnauthorized, "Unauthorized: user not found in context")
		return
	}

	// 2. Decode request body into DTO
	var req dto.AnalyzeRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload: "+err.Error())
		return
	}

	// 3. Validate DTO
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	// 4. Run the analysis pipeline
	rec, err := h.analyzeService.Analyze(r.Context(), email, req.Text, model.DocumentType(req.DocumentType))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDocumentType):
			writeError(w, http.StatusBadRequest, "document_type must be \"resume\" or \"general\"")
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "User not found")
		case errors.Is(err, service.ErrQuotaExceeded):
			writeError(w, http.StatusTooManyRequests, "Daily request limit reached")
		case errors.Is(err, service.ErrAnalysisFailed):
			writeError(w, http.StatusBadGateway, "Analysis provider failed")
		default:
			h.logger.Error().Err(err).Str("user", email).Msg("Analyze request failed")
			writeError(w, http.StatusInternalServerError, "Failed to analyze document")
		}
		return
	}

	// 5. Return the raw analysis result
	writeJSON(w, http.StatusOK, dto.AnalyzeResponseDTO{Result: rec.Summary})
}

func (h *AnalyzeHandler) listAnalyses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}

	// 1. Extract the authenticated email from context
	email, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || email == "" {
		writeError(w, http.StatusUnauthorized, "Unauthorized: user not found in context")
		return
	}

	// 2. Parse limit and offset from query parameters
	limit := 10 // Default limit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		l, err := strconv.Atoi(limitStr)
		if err == nil && l > 0 {
			limit = l
		}
	}

	offset := 0 // Default offset
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		o, err := strconv.Atoi(offsetStr)
		if err == nil && o >= 0 {
			offset = o
		}
	}

	// 3. Call service to get past analyses
	records, err := h.analyzeService.History(r.Context(), email, limit, offset)
	if err != nil {
		h.logger.Error().Err(err).Str("user", email).Msg("Failed to list analyses")
		writeError(w, http.StatusInternalServerError, "Failed to retrieve analyses")
		return
	}

	// 4. Map domain models to response DTOs
	items := make([]dto.AnalysisHistoryItemDTO, 0, len(records))
	for _, rec := range records {
		items = append(items, dto.AnalysisHistoryItemDTO{
			ID:           rec.ID,
			DocumentType: string(rec.DocumentType),
			Summary:      rec.Summary,
			Strengths:    rec.Strengths,
			Weaknesses:   rec.Weaknesses,
			Suggestions:  rec.Suggestions,
			TokensUsed:   rec.TokensUsed,
			CreatedAt:    rec.CreatedAt,
		})
	}

	// 5. Return response
	writeJSON(w, http.StatusOK, items)
}

func (h *AnalyzeHandler) getProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}

	email, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || email == "" {
		writeError(w, http.StatusUnauthorized, "Unauthorized: user not found in context")
		return
	}

	user, err := h.analyzeService.Profile(r.Context(), email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "User not found")
		default:
			h.logger.Error().Err(err).Str("user", email).Msg("Failed to fetch profile")
			writeError(w, http.StatusInternalServerError, "Failed to retrieve profile")
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.UserProfileResponseDTO{
		Email:             user.Email,
		SubscriptionTier:  user.SubscriptionTier,
		DailyRequestCount: user.DailyRequestCount,
		TotalRequestCount: user.TotalRequestCount,
		LastResetDate:     user.LastResetDate,
		CreatedAt:         user.CreatedAt,
	})
}
