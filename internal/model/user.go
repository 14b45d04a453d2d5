package model

import "time"

// User represents a registered account and its usage counters.
type User struct {
	Email             string    `db:"email" json:"email"`
	PasswordHash      string    `db:"password_hash" json:"-"`
	DailyRequestCount int       `db:"daily_request_count" json:"daily_request_count"`
	TotalRequestCount int       `db:"total_request_count" json:"total_request_count"`
	LastResetDate     string    `db:"last_reset_date" json:"last_reset_date"`
	SubscriptionTier  string    `db:"subscription_tier" json:"subscription_tier"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
}

// TierFree is the only subscription tier currently defined.
const TierFree = "free"
