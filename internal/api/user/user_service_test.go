package user

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nerdbug/user-service/internal/types"
)

// MockUserRepo is a mock implementation of the UserRepo interface
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetUserByID(ctx context.Context, id uuid.UUID) (*types.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.User), args.Error(1)
}

func (m *MockUserRepo) DeleteUser(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepo) ListUsers(ctx context.Context) (int, []types.User, error) {
	args := m.Called(ctx)
	if args.Get(1) == nil {
		return args.Int(0), nil, args.Error(2)
	}
	return args.Int(0), args.Get(1).([]types.User), args.Error(2)
}

func TestGetProfile(t *testing.T) {
	t.Run("WithholdsPasswordHash", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		service := NewUserService(mockRepo, nil, slog.Default())
		ctx := context.Background()

		stored := &types.User{
			ID:       uuid.New(),
			Email:    "test@example.com",
			Password: "stored-hash",
			Role:     "user",
		}
		mockRepo.On("GetUserByID", ctx, stored.ID).Return(stored, nil).Once()

		profile, err := service.GetProfile(ctx, stored.ID)

		require.NoError(t, err)
		assert.Equal(t, stored.ID, profile.ID)
		assert.Equal(t, stored.Email, profile.Email)
		assert.Empty(t, profile.Password)
		// The stored record itself must not be mutated.
		assert.Equal(t, "stored-hash", stored.Password)
		mockRepo.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		service := NewUserService(mockRepo, nil, slog.Default())
		ctx := context.Background()

		id := uuid.New()
		mockRepo.On("GetUserByID", ctx, id).Return(nil, types.ErrNotFound).Once()

		_, err := service.GetProfile(ctx, id)

		assert.ErrorIs(t, err, types.ErrNotFound)
	})
}

func TestRemoveProfile(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		service := NewUserService(mockRepo, nil, slog.Default())
		ctx := context.Background()

		user := &types.User{ID: uuid.New(), Email: "test@example.com"}
		mockRepo.On("GetUserByID", ctx, user.ID).Return(user, nil).Once()
		mockRepo.On("DeleteUser", ctx, user.ID).Return(int64(1), nil).Once()

		err := service.RemoveProfile(ctx, user.ID)

		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("AlreadyGone", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		service := NewUserService(mockRepo, nil, slog.Default())
		ctx := context.Background()

		id := uuid.New()
		mockRepo.On("GetUserByID", ctx, id).Return(nil, types.ErrNotFound).Once()

		err := service.RemoveProfile(ctx, id)

		assert.ErrorIs(t, err, types.ErrNotFound)
		mockRepo.AssertNotCalled(t, "DeleteUser", mock.Anything, mock.Anything)
	})

	t.Run("DeletedConcurrently", func(t *testing.T) {
		// Existence check passes but the delete affects zero rows.
		mockRepo := new(MockUserRepo)
		service := NewUserService(mockRepo, nil, slog.Default())
		ctx := context.Background()

		user := &types.User{ID: uuid.New()}
		mockRepo.On("GetUserByID", ctx, user.ID).Return(user, nil).Once()
		mockRepo.On("DeleteUser", ctx, user.ID).Return(int64(0), nil).Once()

		err := service.RemoveProfile(ctx, user.ID)

		assert.ErrorIs(t, err, types.ErrNotFound)
	})
}

func TestListAll(t *testing.T) {
	t.Run("SanitizesEveryRecord", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		service := NewUserService(mockRepo, nil, slog.Default())
		ctx := context.Background()

		stored := []types.User{
			{ID: uuid.New(), Email: "a@example.com", Password: "hash-a"},
			{ID: uuid.New(), Email: "b@example.com", Password: "hash-b"},
		}
		mockRepo.On("ListUsers", ctx).Return(2, stored, nil).Once()

		count, users, err := service.ListAll(ctx)

		require.NoError(t, err)
		assert.Equal(t, 2, count)
		require.Len(t, users, 2)
		for _, u := range users {
			assert.Empty(t, u.Password)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		service := NewUserService(mockRepo, nil, slog.Default())
		ctx := context.Background()

		mockRepo.On("ListUsers", ctx).Return(0, []types.User{}, nil).Once()

		count, users, err := service.ListAll(ctx)

		require.NoError(t, err)
		assert.Zero(t, count)
		assert.Empty(t, users)
	})
}
