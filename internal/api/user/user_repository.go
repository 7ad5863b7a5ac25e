package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/nerdbug/user-service/internal/api/auth"
	"github.com/nerdbug/user-service/internal/types"
)

var _ UserRepo = (*PostgresUserRepo)(nil)

// UserRepo is the profile-side store surface: reads, hard deletes and the
// full listing.
type UserRepo interface {
	// GetUserByID returns types.ErrNotFound when no user matches.
	GetUserByID(ctx context.Context, id uuid.UUID) (*types.User, error)
	// DeleteUser hard-removes the record and reports how many rows went away.
	DeleteUser(ctx context.Context, id uuid.UUID) (int64, error)
	// ListUsers returns every user with the total count.
	ListUsers(ctx context.Context) (int, []types.User, error)
}

type PostgresUserRepo struct {
	logger *slog.Logger
	db     auth.PGXQuerier
}

func NewPostgresUserRepo(db auth.PGXQuerier, logger *slog.Logger) *PostgresUserRepo {
	return &PostgresUserRepo{
		logger: logger,
		db:     db,
	}
}

func (r *PostgresUserRepo) GetUserByID(ctx context.Context, id uuid.UUID) (*types.User, error) {
	var user types.User
	err := r.db.QueryRow(ctx,
		`SELECT id, email, password, first_name, last_name, role, created_at, updated_at
         FROM users WHERE id = $1`,
		id).Scan(&user.ID, &user.Email, &user.Password, &user.FirstName,
		&user.LastName, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("get user by id: query failed: %w", err)
	}
	return &user, nil
}

func (r *PostgresUserRepo) DeleteUser(ctx context.Context, id uuid.UUID) (int64, error) {
	ctx, span := otel.Tracer("UserRepo").Start(ctx, "DeleteUser", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "DELETE"),
		attribute.String("db.sql.table", "users"),
	))
	defer span.End()

	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "delete failed")
		return 0, fmt.Errorf("delete user: db delete failed: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *PostgresUserRepo) ListUsers(ctx context.Context) (int, []types.User, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, email, password, first_name, last_name, role, created_at, updated_at
         FROM users ORDER BY created_at`)
	if err != nil {
		return 0, nil, fmt.Errorf("list users: query failed: %w", err)
	}
	defer rows.Close()

	users := make([]types.User, 0)
	for rows.Next() {
		var user types.User
		if err := rows.Scan(&user.ID, &user.Email, &user.Password, &user.FirstName,
			&user.LastName, &user.Role, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return 0, nil, fmt.Errorf("list users: scan failed: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return 0, nil, fmt.Errorf("list users: rows iteration failed: %w", err)
	}
	return len(users), users, nil
}
