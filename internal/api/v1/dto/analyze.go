package dto

import "time"

// AnalyzeRequestDTO is the payload for POST /analyze.
type AnalyzeRequestDTO struct {
	Text         string `json:"text" validate:"required"`
	DocumentType string `json:"document_type" validate:"required"`
}

// AnalyzeResponseDTO carries the raw analysis result text.
type AnalyzeResponseDTO struct {
	Result string `json:"result"`
}

// AnalysisHistoryItemDTO is one past analysis in GET /analyses.
type AnalysisHistoryItemDTO struct {
	ID           string    `json:"id"`
	DocumentType string    `json:"document_type"`
	Summary      string    `json:"summary"`
	Strengths    []string  `json:"strengths"`
	Weaknesses   []string  `json:"weaknesses"`
	Suggestions  []string  `json:"suggestions"`
	TokensUsed   int       `json:"tokens_used"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserProfileResponseDTO is returned by GET /users/me.
type UserProfileResponseDTO struct {
	Email             string    `json:"email"`
	SubscriptionTier  string    `json:"subscription_tier"`
	DailyRequestCount int       `json:"daily_request_count"`
	TotalRequestCount int       `json:"total_request_count"`
	LastResetDate     string    `json:"last_reset_date"`
	CreatedAt         time.Time `json:"created_at"`
}
