package service

import (
	"context"
	"strings"
	"testing"

	"github.com/Imsaurav1/Ai-pdf-analyzer/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const testTextLimit = 6000

func newAnalyzeFixture(limit int) (*MockUserRepository, *MockAnalysisRepository, *MockAnalysisGateway, AnalyzeService) {
	mockUsers := new(MockUserRepository)
	mockAnalyses := new(MockAnalysisRepository)
	mockGateway := new(MockAnalysisGateway)
	quota := NewQuotaService(mockUsers, limit, zerolog.Nop())
	svc := NewAnalyzeService(mockUsers, mockAnalyses, quota, mockGateway, testTextLimit, zerolog.Nop())
	return mockUsers, mockAnalyses, mockGateway, svc
}

func freeUser(count int, resetDate string) *model.User {
	return &model.User{
		Email:             "a@b.com",
		DailyRequestCount: count,
		TotalRequestCount: 10,
		LastResetDate:     resetDate,
		SubscriptionTier:  model.TierFree,
	}
}

func TestAnalyzeService_Analyze(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects unknown document type before any lookup", func(t *testing.T) {
		mockUsers, mockAnalyses, mockGateway, svc := newAnalyzeFixture(5)

		_, err := svc.Analyze(ctx, "a@b.com", "text", model.DocumentType("invoice"))

		assert.ErrorIs(t, err, ErrInvalidDocumentType)
		mockUsers.AssertNotCalled(t, "GetUserByEmail", mock.Anything, mock.Anything)
		mockAnalyses.AssertNotCalled(t, "InsertAnalysis", mock.Anything, mock.Anything)
		mockGateway.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing user", func(t *testing.T) {
		mockUsers, _, _, svc := newAnalyzeFixture(5)
		mockUsers.On("GetUserByEmail", mock.Anything, "a@b.com").Return(nil, nil).Once()

		_, err := svc.Analyze(ctx, "a@b.com", "text", model.DocumentTypeGeneral)

		assert.ErrorIs(t, err, ErrUserNotFound)
		mockUsers.AssertExpectations(t)
	})

	t.Run("quota exceeded performs no analysis and no writes", func(t *testing.T) {
		mockUsers, mockAnalyses, mockGateway, svc := newAnalyzeFixture(5)
		mockUsers.On("GetUserByEmail", mock.Anything, "a@b.com").Return(freeUser(5, today()), nil).Once()

		_, err := svc.Analyze(ctx, "a@b.com", "text", model.DocumentTypeGeneral)

		assert.ErrorIs(t, err, ErrQuotaExceeded)
		mockGateway.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything, mock.Anything)
		mockAnalyses.AssertNotCalled(t, "InsertAnalysis", mock.Anything, mock.Anything)
		mockUsers.AssertNotCalled(t, "IncrementRequestCounts", mock.Anything, mock.Anything)
	})

	t.Run("provider failure leaves counters and records untouched", func(t *testing.T) {
		mockUsers, mockAnalyses, mockGateway, svc := newAnalyzeFixture(5)
		mockUsers.On("GetUserByEmail", mock.Anything, "a@b.com").Return(freeUser(0, today()), nil).Once()
		mockGateway.On("Analyze", mock.Anything, mock.Anything, model.DocumentTypeGeneral).
			Return("", assert.AnError).Once()

		_, err := svc.Analyze(ctx, "a@b.com", "text", model.DocumentTypeGeneral)

		assert.ErrorIs(t, err, ErrAnalysisFailed)
		mockAnalyses.AssertNotCalled(t, "InsertAnalysis", mock.Anything, mock.Anything)
		mockUsers.AssertNotCalled(t, "IncrementRequestCounts", mock.Anything, mock.Anything)
		mockGateway.AssertExpectations(t)
	})

	t.Run("success at one below the limit records and increments", func(t *testing.T) {
		mockUsers, mockAnalyses, mockGateway, svc := newAnalyzeFixture(5)
		mockUsers.On("GetUserByEmail", mock.Anything, "a@b.com").Return(freeUser(4, today()), nil).Once()
		mockGateway.On("Analyze", mock.Anything, "some resume text", model.DocumentTypeGeneral).
			Return("a fine summary", nil).Once()
		mockAnalyses.On("InsertAnalysis", mock.Anything, mock.MatchedBy(func(rec *model.AnalysisRecord) bool {
			return rec.UserEmail == "a@b.com" &&
				rec.Summary == "a fine summary" &&
				rec.TokensUsed == len("some resume text") &&
				rec.ID != ""
		})).Return(nil).Once()
		mockUsers.On("IncrementRequestCounts", mock.Anything, "a@b.com").Return(nil).Once()

		rec, err := svc.Analyze(ctx, "a@b.com", "some\t resume\n text", model.DocumentTypeGeneral)

		assert.NoError(t, err)
		assert.Equal(t, "a fine summary", rec.Summary)
		assert.Empty(t, rec.Strengths)
		mockUsers.AssertExpectations(t)
		mockAnalyses.AssertExpectations(t)
		mockGateway.AssertExpectations(t)
	})

	t.Run("stale reset date admits a user who was at the limit yesterday", func(t *testing.T) {
		mockUsers, mockAnalyses, mockGateway, svc := newAnalyzeFixture(5)
		mockUsers.On("GetUserByEmail", mock.Anything, "a@b.com").Return(freeUser(5, yesterday()), nil).Once()
		mockUsers.On("ResetDailyUsage", mock.Anything, "a@b.com", today()).Return(nil).Once()
		mockGateway.On("Analyze", mock.Anything, mock.Anything, model.DocumentTypeGeneral).
			Return("summary", nil).Once()
		mockAnalyses.On("InsertAnalysis", mock.Anything, mock.Anything).Return(nil).Once()
		mockUsers.On("IncrementRequestCounts", mock.Anything, "a@b.com").Return(nil).Once()

		_, err := svc.Analyze(ctx, "a@b.com", "text", model.DocumentTypeGeneral)

		assert.NoError(t, err)
		mockUsers.AssertExpectations(t)
	})

	t.Run("input is normalized and truncated before the provider call", func(t *testing.T) {
		mockUsers, mockAnalyses, mockGateway, svc := newAnalyzeFixture(5)
		mockUsers.On("GetUserByEmail", mock.Anything, "a@b.com").Return(freeUser(0, today()), nil).Once()

		long := strings.Repeat("x ", testTextLimit) // collapses then truncates
		mockGateway.On("Analyze", mock.Anything, mock.MatchedBy(func(text string) bool {
			return len([]rune(text)) == testTextLimit
		}), model.DocumentTypeGeneral).Return("summary", nil).Once()
		mockAnalyses.On("InsertAnalysis", mock.Anything, mock.MatchedBy(func(rec *model.AnalysisRecord) bool {
			return rec.TokensUsed == testTextLimit
		})).Return(nil).Once()
		mockUsers.On("IncrementRequestCounts", mock.Anything, "a@b.com").Return(nil).Once()

		_, err := svc.Analyze(ctx, "a@b.com", long, model.DocumentTypeGeneral)

		assert.NoError(t, err)
		mockGateway.AssertExpectations(t)
	})

	t.Run("resume response with valid JSON fills the structured fields", func(t *testing.T) {
		mockUsers, mockAnalyses, mockGateway, svc := newAnalyzeFixture(5)
		mockUsers.On("GetUserByEmail", mock.Anything, "a@b.com").Return(freeUser(0, today()), nil).Once()
		raw := "```json\n{\"summary\":\"solid\",\"strengths\":[\"go\"],\"weaknesses\":[\"brevity\"],\"suggestions\":[\"add dates\"]}\n```"
		mockGateway.On("Analyze", mock.Anything, mock.Anything, model.DocumentTypeResume).
			Return(raw, nil).Once()
		mockAnalyses.On("InsertAnalysis", mock.Anything, mock.Anything).Return(nil).Once()
		mockUsers.On("IncrementRequestCounts", mock.Anything, "a@b.com").Return(nil).Once()

		rec, err := svc.Analyze(ctx, "a@b.com", "resume text", model.DocumentTypeResume)

		assert.NoError(t, err)
		assert.Equal(t, raw, rec.Summary)
		assert.Equal(t, []string{"go"}, rec.Strengths)
		assert.Equal(t, []string{"brevity"}, rec.Weaknesses)
		assert.Equal(t, []string{"add dates"}, rec.Suggestions)
	})

	t.Run("resume response that is not JSON keeps empty structured fields", func(t *testing.T) {
		mockUsers, mockAnalyses, mockGateway, svc := newAnalyzeFixture(5)
		mockUsers.On("GetUserByEmail", mock.Anything, "a@b.com").Return(freeUser(0, today()), nil).Once()
		mockGateway.On("Analyze", mock.Anything, mock.Anything, model.DocumentTypeResume).
			Return("just prose, no JSON here", nil).Once()
		mockAnalyses.On("InsertAnalysis", mock.Anything, mock.Anything).Return(nil).Once()
		mockUsers.On("IncrementRequestCounts", mock.Anything, "a@b.com").Return(nil).Once()

		rec, err := svc.Analyze(ctx, "a@b.com", "resume text", model.DocumentTypeResume)

		assert.NoError(t, err)
		assert.Equal(t, []string{}, rec.Strengths)
		assert.Equal(t, []string{}, rec.Weaknesses)
		assert.Equal(t, []string{}, rec.Suggestions)
	})

	t.Run("lost counter increment still returns the result", func(t *testing.T) {
		mockUsers, mockAnalyses, mockGateway, svc := newAnalyzeFixture(5)
		mockUsers.On("GetUserByEmail", mock.Anything, "a@b.com").Return(freeUser(0, today()), nil).Once()
		mockGateway.On("Analyze", mock.Anything, mock.Anything, model.DocumentTypeGeneral).
			Return("summary", nil).Once()
		mockAnalyses.On("InsertAnalysis", mock.Anything, mock.Anything).Return(nil).Once()
		mockUsers.On("IncrementRequestCounts", mock.Anything, "a@b.com").Return(assert.AnError).Once()

		rec, err := svc.Analyze(ctx, "a@b.com", "text", model.DocumentTypeGeneral)

		assert.NoError(t, err)
		assert.Equal(t, "summary", rec.Summary)
	})
}

func TestParseResumeCritique(t *testing.T) {
	t.Run("bare JSON", func(t *testing.T) {
		s, w, g, ok := parseResumeCritique(`{"summary":"x","strengths":["a"],"weaknesses":[],"suggestions":["b"]}`)
		assert.True(t, ok)
		assert.Equal(t, []string{"a"}, s)
		assert.Equal(t, []string{}, w)
		assert.Equal(t, []string{"b"}, g)
	})

	t.Run("JSON wrapped in prose", func(t *testing.T) {
		_, _, _, ok := parseResumeCritique("Here you go:\n{\"strengths\":[\"a\"]}\nHope this helps!")
		assert.True(t, ok)
	})

	t.Run("no JSON at all", func(t *testing.T) {
		_, _, _, ok := parseResumeCritique("no braces anywhere")
		assert.False(t, ok)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		_, _, _, ok := parseResumeCritique("{not json}")
		assert.False(t, ok)
	})
}
