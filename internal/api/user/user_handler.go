package user

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/nerdbug/user-service/internal/api"
	"github.com/nerdbug/user-service/internal/api/auth"
	"github.com/nerdbug/user-service/internal/types"
)

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	GetAllUsers(w http.ResponseWriter, r *http.Request)
	MyProfile(w http.ResponseWriter, r *http.Request)
	RemoveProfile(w http.ResponseWriter, r *http.Request)
	UpdateProfile(w http.ResponseWriter, r *http.Request)
}

// ListUsersResponse is the body of the unauthenticated user listing.
type ListUsersResponse struct {
	Message string       `json:"message"`
	Count   int          `json:"Count"`
	Users   []types.User `json:"Users"`
}

type HandlerImpl struct {
	userService UserService
	logger      *slog.Logger
}

func NewHandlerImpl(userService UserService, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		userService: userService,
		logger:      logger,
	}
}

// GetAllUsers godoc
// @Summary      List all users
// @Description  Unauthenticated listing of every user with the total count.
// @Tags         User
// @Produce      json
// @Success      200 {object} ListUsersResponse
// @Failure      500 {object} map[string]string
// @Router       /get-all-users [get]
func (h *HandlerImpl) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "GetAllUsers"))

	count, users, err := h.userService.ListAll(ctx)
	if err != nil {
		l.ErrorContext(ctx, "Failed to list users", slog.Any("error", err))
		api.ServerErrorResponse(w, r, "/get-all-users", err)
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, ListUsersResponse{
		Message: "You have successfully retrieved all users",
		Count:   count,
		Users:   users,
	})
}

// MyProfile godoc
// @Summary      Get the caller's profile
// @Tags         User
// @Produce      json
// @Success      200 {object} map[string]types.User
// @Failure      401 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Security     BearerAuth
// @Router       /my-profile [get]
func (h *HandlerImpl) MyProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "MyProfile"))

	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}

	profile, err := h.userService.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			// Token outlived the account; tokens are not invalidated on deletion.
			api.ErrorResponse(w, r, http.StatusNotFound, "User not found")
			return
		}
		l.ErrorContext(ctx, "Failed to get profile", slog.Any("error", err))
		api.ServerErrorResponse(w, r, "/my-profile", err)
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, map[string]types.User{"msg": *profile})
}

// RemoveProfile godoc
// @Summary      Delete the caller's profile
// @Tags         User
// @Produce      json
// @Success      200 {object} map[string]string
// @Failure      401 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Security     BearerAuth
// @Router       /remove [delete]
func (h *HandlerImpl) RemoveProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "RemoveProfile"))

	userID, ok := h.callerID(w, r)
	if !ok {
		return
	}

	if err := h.userService.RemoveProfile(ctx, userID); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "User not found")
			return
		}
		l.ErrorContext(ctx, "Failed to remove profile", slog.Any("error", err))
		api.ServerErrorResponse(w, r, "/remove", err)
		return
	}

	api.MsgResponse(w, r, http.StatusOK, "Your profile as been removed from the database")
}

// UpdateProfile is the PATCH /update route. The operation was never
// implemented upstream and the mutable field set is undecided, so it fails
// fast instead of silently doing nothing.
func (h *HandlerImpl) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.callerID(w, r); !ok {
		return
	}
	api.ErrorResponse(w, r, http.StatusNotImplemented, "Profile update is not implemented")
}

// callerID pulls the authenticated identity the middleware attached.
func (h *HandlerImpl) callerID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userIDStr, ok := auth.GetUserIDFromContext(r.Context())
	if !ok || userIDStr == "" {
		h.logger.ErrorContext(r.Context(), "User ID not found in context")
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Invalid user ID format", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusUnauthorized, "Authentication required")
		return uuid.Nil, false
	}
	return userID, true
}
