package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/nerdbug/user-service/app/observability/metrics"
	"github.com/nerdbug/user-service/internal/types"
)

var _ AuthService = (*AuthServiceImpl)(nil)

// AuthService orchestrates registration and login: validation, hashing,
// uniqueness checks, persistence and token issuance.
type AuthService interface {
	// Register creates the account and returns the stored record plus a
	// signed token bound to {id, email}.
	Register(ctx context.Context, req RegisterRequest) (*types.User, string, error)
	// Login verifies credentials and returns a signed token.
	Login(ctx context.Context, req LoginRequest) (string, error)
}

type AuthServiceImpl struct {
	repo    AuthRepo
	hasher  Hasher
	tokens  TokenService
	metrics *metrics.AppMetrics
	logger  *slog.Logger
}

func NewAuthService(repo AuthRepo, hasher Hasher, tokens TokenService, appMetrics *metrics.AppMetrics, logger *slog.Logger) *AuthServiceImpl {
	return &AuthServiceImpl{
		repo:    repo,
		hasher:  hasher,
		tokens:  tokens,
		metrics: appMetrics,
		logger:  logger,
	}
}

func (s *AuthServiceImpl) Register(ctx context.Context, req RegisterRequest) (*types.User, string, error) {
	l := s.logger.With(slog.String("method", "Register"), slog.String("email", req.Email))

	if err := validateRegister(req); err != nil {
		s.countSignup(ctx, "validation_error")
		return nil, "", err
	}

	hashedPassword, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.countSignup(ctx, "error")
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	// Advisory pre-check only. The users_email_key constraint is the
	// authoritative guard against a concurrent duplicate registration.
	_, err = s.repo.GetUserByEmail(ctx, req.Email)
	if err == nil {
		s.countSignup(ctx, "conflict")
		return nil, "", fmt.Errorf("email %s: %w", req.Email, types.ErrConflict)
	}
	if !errors.Is(err, types.ErrNotFound) {
		s.countSignup(ctx, "error")
		return nil, "", fmt.Errorf("failed to check existing user: %w", err)
	}

	user := &types.User{
		ID:        uuid.New(),
		Email:     req.Email,
		Password:  hashedPassword,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      "user",
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, types.ErrConflict) {
			// Lost the race to a concurrent registration with the same email.
			s.countSignup(ctx, "conflict")
			return nil, "", err
		}
		s.countSignup(ctx, "error")
		return nil, "", err
	}

	// Defensive re-read of the created record rather than trusting the
	// write path's input.
	created, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		s.countSignup(ctx, "error")
		return nil, "", fmt.Errorf("failed to read back created user: %w", err)
	}

	signature, err := s.tokens.Issue(created.ID.String(), created.Email)
	if err != nil {
		s.countSignup(ctx, "error")
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	l.InfoContext(ctx, "User registered", slog.String("userID", created.ID.String()))
	s.countSignup(ctx, "success")
	return created, signature, nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, req LoginRequest) (string, error) {
	l := s.logger.With(slog.String("method", "Login"), slog.String("email", req.Email))

	if err := validateLogin(req); err != nil {
		s.countLogin(ctx, "validation_error")
		return "", err
	}

	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			s.countLogin(ctx, "not_found")
			return "", types.ErrNotFound
		}
		s.countLogin(ctx, "error")
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	ok, err := s.hasher.Verify(req.Password, user.Password)
	if err != nil {
		// Malformed stored hash, not a credential mismatch.
		s.countLogin(ctx, "error")
		return "", fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		l.WarnContext(ctx, "Password mismatch")
		s.countLogin(ctx, "invalid_credentials")
		return "", types.ErrInvalidCredentials
	}

	signature, err := s.tokens.Issue(user.ID.String(), user.Email)
	if err != nil {
		s.countLogin(ctx, "error")
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	s.countLogin(ctx, "success")
	return signature, nil
}

func (s *AuthServiceImpl) countSignup(ctx context.Context, status string) {
	if s.metrics != nil {
		s.metrics.SignupRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
	}
}

func (s *AuthServiceImpl) countLogin(ctx context.Context, status string) {
	if s.metrics != nil {
		s.metrics.LoginRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
	}
}
