package auth

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nerdbug/user-service/internal/types"
)

func TestAuthenticate(t *testing.T) {
	tokens := newTestTokenService("test-secret", time.Hour)

	// Probe handler records the identity the gate attached to the context.
	newProbe := func(gotID, gotEmail *string) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id, ok := GetUserIDFromContext(r.Context()); ok {
				*gotID = id
			}
			if email, ok := GetUserEmailFromContext(r.Context()); ok {
				*gotEmail = email
			}
			w.WriteHeader(http.StatusOK)
		})
	}

	serve := func(t *testing.T, repo AuthRepo, authHeader string, gotID, gotEmail *string) *httptest.ResponseRecorder {
		t.Helper()
		gate := Authenticate(slog.Default(), tokens, repo)
		req := httptest.NewRequest(http.MethodGet, "/my-profile", nil)
		if authHeader != "" {
			req.Header.Set("Authorization", authHeader)
		}
		rr := httptest.NewRecorder()
		gate(newProbe(gotID, gotEmail)).ServeHTTP(rr, req)
		return rr
	}

	t.Run("Success", func(t *testing.T) {
		user := &types.User{ID: uuid.New(), Email: "test@example.com"}
		token, err := tokens.Issue(user.ID.String(), user.Email)
		require.NoError(t, err)

		mockRepo := new(MockAuthRepo)
		mockRepo.On("GetUserByID", mock.Anything, user.ID).Return(user, nil).Once()

		var gotID, gotEmail string
		rr := serve(t, mockRepo, "Bearer "+token, &gotID, &gotEmail)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, user.ID.String(), gotID)
		assert.Equal(t, user.Email, gotEmail)
		mockRepo.AssertExpectations(t)
	})

	t.Run("MissingHeader", func(t *testing.T) {
		rr := serve(t, new(MockAuthRepo), "", nil, nil)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.JSONEq(t, `{"error":"There is no token attached to header"}`, rr.Body.String())
	})

	t.Run("MalformedHeader", func(t *testing.T) {
		rr := serve(t, new(MockAuthRepo), "Token abc.def.ghi", nil, nil)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.JSONEq(t, `{"error":"Authorization header format must be Bearer {token}"}`, rr.Body.String())
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		expired := newTestTokenService("test-secret", -time.Hour)
		token, err := expired.Issue(uuid.NewString(), "test@example.com")
		require.NoError(t, err)

		rr := serve(t, new(MockAuthRepo), "Bearer "+token, nil, nil)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.JSONEq(t, `{"error":"Token has expired"}`, rr.Body.String())
	})

	t.Run("WrongSignature", func(t *testing.T) {
		other := newTestTokenService("another-secret", time.Hour)
		token, err := other.Issue(uuid.NewString(), "test@example.com")
		require.NoError(t, err)

		rr := serve(t, new(MockAuthRepo), "Bearer "+token, nil, nil)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.JSONEq(t, `{"error":"Invalid token signature"}`, rr.Body.String())
	})

	t.Run("DeletedUser", func(t *testing.T) {
		// A structurally valid token for an account that no longer exists
		// must not pass the gate.
		userID := uuid.New()
		token, err := tokens.Issue(userID.String(), "gone@example.com")
		require.NoError(t, err)

		mockRepo := new(MockAuthRepo)
		mockRepo.On("GetUserByID", mock.Anything, userID).Return(nil, types.ErrNotFound).Once()

		rr := serve(t, mockRepo, "Bearer "+token, nil, nil)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.JSONEq(t, `{"error":"Not authorized. Please login and try again."}`, rr.Body.String())
		mockRepo.AssertExpectations(t)
	})

	t.Run("GarbageToken", func(t *testing.T) {
		rr := serve(t, new(MockAuthRepo), "Bearer not-a-jwt", nil, nil)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.JSONEq(t, `{"error":"Invalid or expired token"}`, rr.Body.String())
	})
}
