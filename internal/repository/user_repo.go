package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Imsaurav1/Ai-pdf-analyzer/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository persists user accounts and their usage counters.
type UserRepository interface {
	CreateUser(ctx context.Context, u *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	// ResetDailyUsage zeroes the daily counter and stamps the given date in a
	// single atomic update. Called on day rollover before any admission check.
	ResetDailyUsage(ctx context.Context, email, date string) error
	// IncrementRequestCounts bumps both the daily and the lifetime counter by
	// one. The increment happens in the database, not read-modify-write.
	IncrementRequestCounts(ctx context.Context, email string) error
}

type userRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepo creates a new UserRepository.
func NewUserRepo(pool *pgxpool.Pool) UserRepository {
	return &userRepo{pool: pool}
}

func (r *userRepo) CreateUser(ctx context.Context, u *model.User) error {
	const q = `
        INSERT INTO users (email, password_hash, daily_request_count, total_request_count, last_reset_date, subscription_tier)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING created_at
    `
	err := r.pool.QueryRow(ctx, q,
		u.Email,
		u.PasswordHash,
		u.DailyRequestCount,
		u.TotalRequestCount,
		u.LastResetDate,
		u.SubscriptionTier,
	).Scan(&u.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting user %s: %w", u.Email, err)
	}
	return nil
}

func (r *userRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `
        SELECT email, password_hash, daily_request_count, total_request_count, last_reset_date, subscription_tier, created_at
        FROM users
        WHERE email = $1
    `
	var u model.User
	err := r.pool.QueryRow(ctx, q, email).Scan(
		&u.Email,
		&u.PasswordHash,
		&u.DailyRequestCount,
		&u.TotalRequestCount,
		&u.LastResetDate,
		&u.SubscriptionTier,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetching user %s: %w", email, err)
	}
	return &u, nil
}

func (r *userRepo) ResetDailyUsage(ctx context.Context, email, date string) error {
	const q = `
        UPDATE users
        SET daily_request_count = 0,
            last_reset_date = $2
        WHERE email = $1
    `
	if _, err := r.pool.Exec(ctx, q, email, date); err != nil {
		return fmt.Errorf("resetting daily usage for user %s: %w", email, err)
	}
	return nil
}

func (r *userRepo) IncrementRequestCounts(ctx context.Context, email string) error {
	const q = `
        UPDATE users
        SET daily_request_count = daily_request_count + 1,
            total_request_count = total_request_count + 1
        WHERE email = $1
    `
	if _, err := r.pool.Exec(ctx, q, email); err != nil {
		return fmt.Errorf("incrementing request counts for user %s: %w", email, err)
	}
	return nil
}
