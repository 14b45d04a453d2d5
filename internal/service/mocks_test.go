package service

import (
	"context"

	"github.com/Imsaurav1/Ai-pdf-analyzer/internal/model"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock type for the repository.UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, u *model.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) ResetDailyUsage(ctx context.Context, email, date string) error {
	args := m.Called(ctx, email, date)
	return args.Error(0)
}

func (m *MockUserRepository) IncrementRequestCounts(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

// MockAnalysisRepository is a mock type for the repository.AnalysisRepository interface
type MockAnalysisRepository struct {
	mock.Mock
}

func (m *MockAnalysisRepository) InsertAnalysis(ctx context.Context, rec *model.AnalysisRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockAnalysisRepository) ListAnalysesByUser(ctx context.Context, email string, limit, offset int) ([]model.AnalysisRecord, error) {
	args := m.Called(ctx, email, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AnalysisRecord), args.Error(1)
}

// MockAnalysisGateway is a mock type for the AnalysisGateway interface
type MockAnalysisGateway struct {
	mock.Mock
}

func (m *MockAnalysisGateway) Analyze(ctx context.Context, text string, documentType model.DocumentType) (string, error) {
	args := m.Called(ctx, text, documentType)
	return args.String(0), args.Error(1)
}
