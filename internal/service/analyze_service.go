package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Imsaurav1/Ai-pdf-analyzer/internal/model"
	"github.com/Imsaurav1/Ai-pdf-analyzer/internal/repository"
	"github.com/Imsaurav1/Ai-pdf-analyzer/internal/util"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrQuotaExceeded       = errors.New("daily quota exceeded")
	ErrAnalysisFailed      = errors.New("analysis provider failure")
	ErrInvalidDocumentType = errors.New("invalid document type")
)

// AnalyzeService coordinates one analysis request end to end: user lookup,
// quota admission, the provider call, record persistence and counter updates.
type AnalyzeService interface {
	Analyze(ctx context.Context, email, rawText string, documentType model.DocumentType) (*model.AnalysisRecord, error)
	History(ctx context.Context, email string, limit, offset int) ([]model.AnalysisRecord, error)
	Profile(ctx context.Context, email string) (*model.User, error)
}

type analyzeService struct {
	userRepo     repository.UserRepository
	analysisRepo repository.AnalysisRepository
	quota        QuotaService
	gateway      AnalysisGateway
	textLimit    int
	logger       zerolog.Logger
}

// NewAnalyzeService creates an AnalyzeService. textLimit caps the cleaned
// input length sent to the provider.
func NewAnalyzeService(
	userRepo repository.UserRepository,
	analysisRepo repository.AnalysisRepository,
	quota QuotaService,
	gateway AnalysisGateway,
	textLimit int,
	logger zerolog.Logger,
) AnalyzeService {
	return &analyzeService{
		userRepo:     userRepo,
		analysisRepo: analysisRepo,
		quota:        quota,
		gateway:      gateway,
		textLimit:    textLimit,
		logger:       logger.With().Str("service", "AnalyzeService").Logger(),
	}
}

func (s *analyzeService) Analyze(ctx context.Context, email, rawText string, documentType model.DocumentType) (*model.AnalysisRecord, error) {
	if !documentType.Valid() {
		return nil, ErrInvalidDocumentType
	}

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("fetching user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	cleaned := util.CleanText(rawText, s.textLimit)

	today := time.Now().Format("2006-01-02")
	allowed, err := s.quota.Evaluate(ctx, user, today)
	if err != nil {
		return nil, fmt.Errorf("evaluating quota: %w", err)
	}
	if !allowed {
		return nil, ErrQuotaExceeded
	}

	result, err := s.gateway.Analyze(ctx, cleaned, documentType)
	if err != nil {
		// A failed provider call must not consume quota or leave a record.
		s.logger.Error().Err(err).Str("user", email).Msg("Analysis provider call failed")
		return nil, fmt.Errorf("%w: %v", ErrAnalysisFailed, err)
	}

	rec := &model.AnalysisRecord{
		ID:           uuid.New().String(),
		UserEmail:    user.Email,
		DocumentType: documentType,
		Summary:      result,
		Strengths:    []string{},
		Weaknesses:   []string{},
		Suggestions:  []string{},
		TokensUsed:   util.TextLength(cleaned),
	}
	if documentType == model.DocumentTypeResume {
		// The resume prompt asks the model for JSON but the response is not
		// guaranteed to be valid JSON, so parsing is best effort.
		if strengths, weaknesses, suggestions, ok := parseResumeCritique(result); ok {
			rec.Strengths = strengths
			rec.Weaknesses = weaknesses
			rec.Suggestions = suggestions
		}
	}

	if err := s.analysisRepo.InsertAnalysis(ctx, rec); err != nil {
		return nil, fmt.Errorf("persisting analysis: %w", err)
	}

	if err := s.userRepo.IncrementRequestCounts(ctx, user.Email); err != nil {
		// The analysis completed and is recorded; a lost increment is a rare
		// inconsistency for a background audit to reconcile, not a caller
		// error.
		s.logger.Error().Err(err).Str("user", email).Str("analysis_id", rec.ID).
			Msg("Analysis recorded but counter increment failed")
	}

	return rec, nil
}

func (s *analyzeService) History(ctx context.Context, email string, limit, offset int) ([]model.AnalysisRecord, error) {
	records, err := s.analysisRepo.ListAnalysesByUser(ctx, email, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing analyses: %w", err)
	}
	return records, nil
}

func (s *analyzeService) Profile(ctx context.Context, email string) (*model.User, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("fetching user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

type resumeCritique struct {
	Summary     string   `json:"summary"`
	Strengths   []string `json:"strengths"`
	Weaknesses  []string `json:"weaknesses"`
	Suggestions []string `json:"suggestions"`
}

// parseResumeCritique extracts the structured lists from a model response
// that followed the resume prompt's JSON shape. Models often wrap JSON in
// fences or prose, so it parses the outermost brace-delimited object.
func parseResumeCritique(raw string) (strengths, weaknesses, suggestions []string, ok bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return nil, nil, nil, false
	}

	var critique resumeCritique
	if err := json.Unmarshal([]byte(raw[start:end+1]), &critique); err != nil {
		return nil, nil, nil, false
	}
	return emptySlice(critique.Strengths), emptySlice(critique.Weaknesses), emptySlice(critique.Suggestions), true
}

func emptySlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
