package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"koita-chat-api/internal/domain/user"
	"koita-chat-api/internal/infrastructure/metrics"
	"koita-chat-api/internal/interfaces/httpserver/requests"
	"koita-chat-api/internal/interfaces/httpserver/responses"
	"koita-chat-api/internal/utils/platformerrors"
)

const MsgLoggedOut = "Déconnexion réussie"

// AccountService registers and logs users in.
type AccountService interface {
	Register(ctx context.Context, in user.RegisterInput) (*user.AuthResult, error)
	Login(ctx context.Context, email, password string) (*user.AuthResult, error)
}

// AuthHandler exposes the /api/auth endpoints.
type AuthHandler struct {
	accounts AccountService
	log      zerolog.Logger
}

func NewAuthHandler(accounts AccountService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		accounts: accounts,
		log:      log.With().Str("handler", "auth").Logger(),
	}
}

// Register handles POST /api/auth/register
// @Summary Register a user
// @Description Creates an account with default settings and returns a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body requests.RegisterRequest true "Account"
// @Success 201 {object} responses.AuthResponse
// @Failure 400 {object} platformerrors.HTTPErrorResponse
// @Failure 500 {object} platformerrors.HTTPErrorResponse
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req requests.RegisterRequest
	if !bindJSON(c, &req, h.log) {
		metrics.RecordAuth("register", false)
		return
	}

	result, err := h.accounts.Register(c.Request.Context(), user.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		metrics.RecordAuth("register", false)
		platformerrors.WriteError(c, err, h.log)
		return
	}
	metrics.RecordAuth("register", true)

	c.JSON(http.StatusCreated, responses.AuthResponse{
		Token: result.Token,
		User:  responses.NewUserResponse(result.User, result.User.Preferences),
	})
}

// Login handles POST /api/auth/login
// @Summary Log in
// @Description Verifies credentials and returns a bearer token with the user's settings
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body requests.LoginRequest true "Credentials"
// @Success 200 {object} responses.AuthResponse
// @Failure 400 {object} platformerrors.HTTPErrorResponse
// @Failure 500 {object} platformerrors.HTTPErrorResponse
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req requests.LoginRequest
	if !bindJSON(c, &req, h.log) {
		metrics.RecordAuth("login", false)
		return
	}

	result, err := h.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		metrics.RecordAuth("login", false)
		platformerrors.WriteError(c, err, h.log)
		return
	}
	metrics.RecordAuth("login", true)

	c.JSON(http.StatusOK, responses.AuthResponse{
		Token:   result.Token,
		User:    responses.NewUserResponse(result.User, result.Settings),
		Message: responses.Welcome(result.User),
	})
}

// Logout handles POST /api/auth/logout
// @Summary Log out
// @Description Tokens are stateless; the client discards its token
// @Tags Auth
// @Produce json
// @Success 200 {object} responses.MessageOnlyResponse
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, responses.MessageOnlyResponse{Message: MsgLoggedOut})
}
