package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Imsaurav1/Ai-pdf-analyzer/internal/model"
	"github.com/Imsaurav1/Ai-pdf-analyzer/internal/repository"
	"github.com/Imsaurav1/Ai-pdf-analyzer/internal/util"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
)

// AuthService registers users and exchanges credentials for access tokens.
type AuthService interface {
	Register(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string) (string, error)
}

type authService struct {
	userRepo  repository.UserRepository
	jwtSecret string
	jwtTTL    time.Duration
	logger    zerolog.Logger
}

// NewAuthService creates an AuthService issuing tokens with the given secret and TTL.
func NewAuthService(userRepo repository.UserRepository, jwtSecret string, jwtTTL time.Duration, logger zerolog.Logger) AuthService {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		jwtTTL:    jwtTTL,
		logger:    logger.With().Str("service", "AuthService").Logger(),
	}
}

func (s *authService) Register(ctx context.Context, email, password string) error {
	email = util.NormalizeEmail(email)

	existing, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("checking existing user: %w", err)
	}
	if existing != nil {
		return ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	user := &model.User{
		Email:            email,
		PasswordHash:     string(hash),
		SubscriptionTier: model.TierFree,
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("user", email).Msg("Failed to create user")
		return fmt.Errorf("creating user: %w", err)
	}
	return nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	email = util.NormalizeEmail(email)

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("fetching user: %w", err)
	}
	// A missing user and a wrong password produce the same error so login
	// responses cannot be used to probe which emails are registered.
	if user == nil {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := util.IssueJWT(user.Email, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", fmt.Errorf("issuing token: %w", err)
	}
	return token, nil
}
