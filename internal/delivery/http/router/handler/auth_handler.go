package handler

import (
	"log/slog"
	"net/http"

	"sokoni/internal/delivery/http/response"
	"sokoni/internal/domain/entity"
	"sokoni/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	SessionStore usecase.SessionStore
	Logger       *slog.Logger
}

// AuthHandler holds dependencies for session-related handlers.
type AuthHandler struct {
	sessions usecase.SessionStore
	logger   *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler.
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		sessions: params.SessionStore,
		logger:   params.Logger,
	}
}

// RegisterRequest represents the request body for account registration.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Role     string `json:"role"`
}

// LoginRequest represents the request body for logging in.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest represents the request body for a partial profile update.
type UpdateProfileRequest struct {
	Name             *string             `json:"name"`
	Bio              *string             `json:"bio"`
	AvatarURL        *string             `json:"avatar_url"`
	Website          *string             `json:"website"`
	StoreName        *string             `json:"store_name"`
	StoreDescription *string             `json:"store_description"`
	Preferences      *entity.Preferences `json:"preferences"`
}

// sessionPayload is the envelope returned by every session-establishing call.
type sessionPayload struct {
	User        *entity.User `json:"user"`
	AccessToken string       `json:"access_token,omitempty"`
}

// Register handles account registration. The new account is logged in
// immediately.
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	user, err := h.sessions.Register(c.Request().Context(), usecase.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     req.Role,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, h.sessionPayload(user), "Account registered successfully")
}

// Login handles the login request.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	user, err := h.sessions.Login(c.Request().Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, h.sessionPayload(user), "Login successful")
}

// Logout ends the session. Local state is always cleared; the response
// reports whether the remote session was acknowledged as ended.
func (h *AuthHandler) Logout(c echo.Context) error {
	result := h.sessions.Logout(c.Request().Context())

	return response.Success(c, http.StatusOK, map[string]bool{
		"remote_session_ended": result.RemoteSessionEnded,
	}, "Logout successful")
}

// Session reports the current authentication state, rehydrating from the
// remote session when one exists.
func (h *AuthHandler) Session(c echo.Context) error {
	user, ok := h.sessions.CheckAuth(c.Request().Context())
	if !ok {
		return response.Unauthorized(c, "SESSION_EXPIRED", "No active session")
	}

	return response.Success(c, http.StatusOK, h.sessionPayload(user), "Session active")
}

// UpdateProfile applies a partial, local-only update to the signed-in user.
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}

	user, err := h.sessions.UpdateProfile(usecase.ProfilePatch{
		Name:             req.Name,
		Bio:              req.Bio,
		AvatarURL:        req.AvatarURL,
		Website:          req.Website,
		StoreName:        req.StoreName,
		StoreDescription: req.StoreDescription,
		Preferences:      req.Preferences,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, user, "Profile updated")
}

func (h *AuthHandler) sessionPayload(user *entity.User) sessionPayload {
	payload := sessionPayload{User: user}
	if token, ok := h.sessions.AccessToken(); ok {
		payload.AccessToken = token
	}

	return payload
}
