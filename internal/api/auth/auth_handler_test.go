package auth

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nerdbug/user-service/internal/types"
)

// MockAuthService is a mock implementation of the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req RegisterRequest) (*types.User, string, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*types.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) Login(ctx context.Context, req LoginRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func postJSON(t *testing.T, handler http.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func TestSignupHandler(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		mockService := new(MockAuthService)
		handler := NewHandlerImpl(mockService, slog.Default())

		user := &types.User{
			ID:        uuid.New(),
			Email:     "new@example.com",
			Password:  "stored-hash",
			FirstName: "New",
			LastName:  "User",
			Role:      "user",
		}
		mockService.On("Register", mock.Anything, mock.AnythingOfType("RegisterRequest")).
			Return(user, "signed.token.value", nil).Once()

		rr := postJSON(t, handler.Signup, "/signup",
			`{"email":"new@example.com","password":"abc123","firstName":"New","lastName":"User"}`)

		assert.Equal(t, http.StatusCreated, rr.Code)

		var resp RegisterResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "User created successfully", resp.Msg)
		assert.Equal(t, "signed.token.value", resp.Signature)
		assert.Equal(t, user.ID, resp.User.ID)
		assert.Empty(t, resp.User.Password)
		mockService.AssertExpectations(t)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		mockService := new(MockAuthService)
		handler := NewHandlerImpl(mockService, slog.Default())

		mockService.On("Register", mock.Anything, mock.AnythingOfType("RegisterRequest")).
			Return(nil, "", types.ErrConflict).Once()

		rr := postJSON(t, handler.Signup, "/signup",
			`{"email":"existing@example.com","password":"abc123","firstName":"A","lastName":"B"}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"msg":"User already exist"}`, rr.Body.String())
	})

	t.Run("ValidationError", func(t *testing.T) {
		mockService := new(MockAuthService)
		handler := NewHandlerImpl(mockService, slog.Default())

		mockService.On("Register", mock.Anything, mock.AnythingOfType("RegisterRequest")).
			Return(nil, "", &types.ValidationError{Field: "password", Message: "Password must be 3-30 alphanumeric characters"}).Once()

		rr := postJSON(t, handler.Signup, "/signup",
			`{"email":"a@example.com","password":"!!","firstName":"A","lastName":"B"}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"Error":"Password must be 3-30 alphanumeric characters"}`, rr.Body.String())
	})

	t.Run("InternalError", func(t *testing.T) {
		mockService := new(MockAuthService)
		handler := NewHandlerImpl(mockService, slog.Default())

		mockService.On("Register", mock.Anything, mock.AnythingOfType("RegisterRequest")).
			Return(nil, "", types.ErrInternal).Once()

		rr := postJSON(t, handler.Signup, "/signup",
			`{"email":"a@example.com","password":"abc123","firstName":"A","lastName":"B"}`)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "/signup", body["route"])
		assert.Contains(t, body, "Error")
	})

	t.Run("MalformedBody", func(t *testing.T) {
		mockService := new(MockAuthService)
		handler := NewHandlerImpl(mockService, slog.Default())

		rr := postJSON(t, handler.Signup, "/signup", `{"email":`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})
}

func TestLoginHandler(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		mockService := new(MockAuthService)
		handler := NewHandlerImpl(mockService, slog.Default())

		mockService.On("Login", mock.Anything, LoginRequest{Email: "test@example.com", Password: "abc123"}).
			Return("signed.token.value", nil).Once()

		rr := postJSON(t, handler.Login, "/login",
			`{"email":"test@example.com","password":"abc123"}`)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.JSONEq(t, `{"msg":"Login successfully","signature":"signed.token.value"}`, rr.Body.String())
		mockService.AssertExpectations(t)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		mockService := new(MockAuthService)
		handler := NewHandlerImpl(mockService, slog.Default())

		mockService.On("Login", mock.Anything, mock.AnythingOfType("LoginRequest")).
			Return("", types.ErrNotFound).Once()

		rr := postJSON(t, handler.Login, "/login",
			`{"email":"nobody@example.com","password":"abc123"}`)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.JSONEq(t, `{"msg":"User not found"}`, rr.Body.String())
	})

	t.Run("WrongPassword", func(t *testing.T) {
		mockService := new(MockAuthService)
		handler := NewHandlerImpl(mockService, slog.Default())

		mockService.On("Login", mock.Anything, mock.AnythingOfType("LoginRequest")).
			Return("", types.ErrInvalidCredentials).Once()

		rr := postJSON(t, handler.Login, "/login",
			`{"email":"test@example.com","password":"wrong1"}`)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.JSONEq(t, `{"msg":"Password incorrect"}`, rr.Body.String())
	})
}
