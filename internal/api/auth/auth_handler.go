package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/nerdbug/user-service/internal/api"
	"github.com/nerdbug/user-service/internal/types"
)

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	Signup(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

// HandlerImpl handles HTTP requests for account registration and login.
type HandlerImpl struct {
	authService AuthService
	logger      *slog.Logger
}

func NewHandlerImpl(authService AuthService, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		authService: authService,
		logger:      logger,
	}
}

// Signup godoc
// @Summary      Register a new user
// @Description  Creates an account and returns a signed token plus the created record.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Success      201 {object} RegisterResponse
// @Failure      400 {object} map[string]string
// @Failure      500 {object} map[string]string
// @Router       /signup [post]
func (h *HandlerImpl) Signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "Signup"))

	var req RegisterRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request", slog.Any("error", err))
		api.ValidationErrorResponse(w, r, err.Error())
		return
	}

	user, signature, err := h.authService.Register(ctx, req)
	if err != nil {
		var ve *types.ValidationError
		switch {
		case errors.As(err, &ve):
			l.WarnContext(ctx, "Signup validation failed", slog.String("field", ve.Field))
			api.ValidationErrorResponse(w, r, ve.Message)
		case errors.Is(err, types.ErrConflict):
			api.MsgResponse(w, r, http.StatusBadRequest, "User already exist")
		default:
			l.ErrorContext(ctx, "Signup failed", slog.Any("error", err))
			api.ServerErrorResponse(w, r, "/signup", err)
		}
		return
	}

	api.WriteJSONResponse(w, r, http.StatusCreated, RegisterResponse{
		Msg:       "User created successfully",
		Signature: signature,
		User:      user.Sanitized(),
	})
}

// Login godoc
// @Summary      Login a user
// @Description  Verifies credentials and returns a signed token.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Success      201 {object} LoginResponse
// @Failure      400 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /login [post]
func (h *HandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "Login"))

	var req LoginRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request", slog.Any("error", err))
		api.ValidationErrorResponse(w, r, err.Error())
		return
	}

	signature, err := h.authService.Login(ctx, req)
	if err != nil {
		var ve *types.ValidationError
		switch {
		case errors.As(err, &ve):
			api.ValidationErrorResponse(w, r, ve.Message)
		case errors.Is(err, types.ErrNotFound):
			// Not-found and wrong-password share the status code on purpose;
			// the distinct messages are part of the observed contract.
			api.MsgResponse(w, r, http.StatusNotFound, "User not found")
		case errors.Is(err, types.ErrInvalidCredentials):
			api.MsgResponse(w, r, http.StatusNotFound, "Password incorrect")
		default:
			l.ErrorContext(ctx, "Login failed", slog.Any("error", err))
			api.ServerErrorResponse(w, r, "/login", err)
		}
		return
	}

	api.WriteJSONResponse(w, r, http.StatusCreated, LoginResponse{
		Msg:       "Login successfully",
		Signature: signature,
	})
}
