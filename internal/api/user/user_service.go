package user

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/nerdbug/user-service/app/observability/metrics"
	"github.com/nerdbug/user-service/internal/types"
)

var _ UserService = (*UserServiceImpl)(nil)

// UserService exposes the profile operations: the caller's own profile,
// its removal, and the unauthenticated full listing.
type UserService interface {
	// GetProfile returns the identity's record with the password hash withheld.
	GetProfile(ctx context.Context, id uuid.UUID) (*types.User, error)
	// RemoveProfile re-checks existence and hard-deletes the record.
	RemoveProfile(ctx context.Context, id uuid.UUID) error
	// ListAll returns every user, sanitized, with the total count.
	ListAll(ctx context.Context) (int, []types.User, error)
}

type UserServiceImpl struct {
	repo    UserRepo
	metrics *metrics.AppMetrics
	logger  *slog.Logger
}

func NewUserService(repo UserRepo, appMetrics *metrics.AppMetrics, logger *slog.Logger) *UserServiceImpl {
	return &UserServiceImpl{
		repo:    repo,
		metrics: appMetrics,
		logger:  logger,
	}
}

func (s *UserServiceImpl) GetProfile(ctx context.Context, id uuid.UUID) (*types.User, error) {
	user, err := s.timedGet(ctx, "get_profile", id)
	if err != nil {
		return nil, err
	}
	sanitized := user.Sanitized()
	return &sanitized, nil
}

func (s *UserServiceImpl) RemoveProfile(ctx context.Context, id uuid.UUID) error {
	l := s.logger.With(slog.String("method", "RemoveProfile"), slog.String("userID", id.String()))

	// Existence is re-checked so a vanished record reports NotFound rather
	// than a silent zero-row delete.
	if _, err := s.timedGet(ctx, "remove_profile", id); err != nil {
		return err
	}

	count, err := s.repo.DeleteUser(ctx, id)
	if err != nil {
		s.countDBError(ctx, "delete_user")
		return err
	}
	if count == 0 {
		// Deleted concurrently between the check and the delete.
		return types.ErrNotFound
	}

	l.InfoContext(ctx, "User profile removed")
	return nil
}

func (s *UserServiceImpl) ListAll(ctx context.Context) (int, []types.User, error) {
	start := time.Now()
	count, users, err := s.repo.ListUsers(ctx)
	s.recordDBDuration(ctx, "list_users", time.Since(start))
	if err != nil {
		s.countDBError(ctx, "list_users")
		return 0, nil, fmt.Errorf("failed to list users: %w", err)
	}

	// The listing never exposes password hashes either.
	for i := range users {
		users[i] = users[i].Sanitized()
	}
	return count, users, nil
}

func (s *UserServiceImpl) timedGet(ctx context.Context, op string, id uuid.UUID) (*types.User, error) {
	start := time.Now()
	user, err := s.repo.GetUserByID(ctx, id)
	s.recordDBDuration(ctx, op, time.Since(start))
	return user, err
}

func (s *UserServiceImpl) recordDBDuration(ctx context.Context, op string, d time.Duration) {
	if s.metrics != nil {
		s.metrics.DbQueryDurationSeconds.Record(ctx, d.Seconds(), metric.WithAttributes(attribute.String("operation", op)))
	}
}

func (s *UserServiceImpl) countDBError(ctx context.Context, op string) {
	if s.metrics != nil {
		s.metrics.DbQueryErrorsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", op)))
	}
}
