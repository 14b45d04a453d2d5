package service

import (
	"context"

	"github.com/Imsaurav1/Ai-pdf-analyzer/internal/model"
	"github.com/Imsaurav1/Ai-pdf-analyzer/internal/repository"

	"github.com/rs/zerolog"
)

// QuotaService decides whether a user may perform one more analysis today.
type QuotaService interface {
	// Evaluate applies the day-rollover rule and the daily limit. On a day
	// boundary it persists the counter reset before deciding, and mutates the
	// passed user so the caller sees the post-reset counters. It never
	// increments: the per-request increment happens only after the guarded
	// analysis succeeds.
	Evaluate(ctx context.Context, user *model.User, today string) (bool, error)
}

type quotaService struct {
	userRepo   repository.UserRepository
	dailyLimit int
	logger     zerolog.Logger
}

// NewQuotaService creates a QuotaService with the given daily limit.
func NewQuotaService(userRepo repository.UserRepository, dailyLimit int, logger zerolog.Logger) QuotaService {
	return &quotaService{
		userRepo:   userRepo,
		dailyLimit: dailyLimit,
		logger:     logger.With().Str("service", "QuotaService").Logger(),
	}
}

func (s *quotaService) Evaluate(ctx context.Context, user *model.User, today string) (bool, error) {
	if user.LastResetDate != today {
		// The stored counter belongs to a previous day: persist the reset
		// before any admission decision so a crash cannot replay yesterday's
		// count against today.
		if err := s.userRepo.ResetDailyUsage(ctx, user.Email, today); err != nil {
			return false, err
		}
		user.DailyRequestCount = 0
		user.LastResetDate = today
		s.logger.Debug().Str("user", user.Email).Str("date", today).Msg("Daily usage counter reset")
	}

	return user.DailyRequestCount < s.dailyLimit, nil
}
