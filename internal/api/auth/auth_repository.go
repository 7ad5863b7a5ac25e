package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/nerdbug/user-service/internal/types"
)

// uniqueViolation is the Postgres error code raised when the users_email_key
// constraint rejects a concurrent duplicate insert.
const uniqueViolation = "23505"

// PGXQuerier is the subset of pgxpool.Pool the repositories need. Narrowing
// it here lets tests substitute a pgxmock pool.
type PGXQuerier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ AuthRepo = (*PostgresAuthRepo)(nil)

// AuthRepo is the user-store surface the account service and auth gate need.
type AuthRepo interface {
	// CreateUser persists a new user. Returns types.ErrConflict if the email
	// unique constraint is violated.
	CreateUser(ctx context.Context, user *types.User) error
	// GetUserByEmail returns types.ErrNotFound when no user matches.
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)
	// GetUserByID returns types.ErrNotFound when no user matches.
	GetUserByID(ctx context.Context, id uuid.UUID) (*types.User, error)
}

type PostgresAuthRepo struct {
	logger *slog.Logger
	db     PGXQuerier
}

func NewPostgresAuthRepo(db PGXQuerier, logger *slog.Logger) *PostgresAuthRepo {
	return &PostgresAuthRepo{
		logger: logger,
		db:     db,
	}
}

func (r *PostgresAuthRepo) CreateUser(ctx context.Context, user *types.User) error {
	ctx, span := otel.Tracer("AuthRepo").Start(ctx, "CreateUser", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "users"),
	))
	defer span.End()

	now := time.Now()
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, email, password, first_name, last_name, role, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		user.ID, user.Email, user.Password, user.FirstName, user.LastName, user.Role, now, now)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			span.SetStatus(codes.Error, "duplicate email")
			return fmt.Errorf("email %s: %w", user.Email, types.ErrConflict)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
		return fmt.Errorf("create user: db insert failed: %w", err)
	}
	return nil
}

func (r *PostgresAuthRepo) GetUserByEmail(ctx context.Context, email string) (*types.User, error) {
	var user types.User
	err := r.db.QueryRow(ctx,
		`SELECT id, email, password, first_name, last_name, role, created_at, updated_at
         FROM users WHERE email = $1`,
		email).Scan(&user.ID, &user.Email, &user.Password, &user.FirstName,
		&user.LastName, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("get user by email: query failed: %w", err)
	}
	return &user, nil
}

func (r *PostgresAuthRepo) GetUserByID(ctx context.Context, id uuid.UUID) (*types.User, error) {
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
