package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"koita-chat-api/internal/domain/user"
	"koita-chat-api/internal/domain/usersettings"
	"koita-chat-api/internal/interfaces/httpserver/requests"
	"koita-chat-api/internal/interfaces/httpserver/responses"
	"koita-chat-api/internal/utils/platformerrors"
)

const (
	MsgProfileUpdated  = "Profil mis à jour avec succès"
	MsgSettingsUpdated = "Paramètres mis à jour avec succès"
	MsgPasswordUpdated = "Mot de passe mis à jour avec succès"
)

type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*user.Profile, error)
	UpdateProfile(ctx context.Context, userID string, update user.ProfileUpdate) (*user.User, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
}

type SettingsService interface {
	Update(ctx context.Context, userID string, patch usersettings.Patch) (*usersettings.UserSettings, error)
}

// UserHandler exposes the /api/users endpoints.
type UserHandler struct {
	profiles ProfileService
	settings SettingsService
	log      zerolog.Logger
}

func NewUserHandler(profiles ProfileService, settings SettingsService, log zerolog.Logger) *UserHandler {
	return &UserHandler{
		profiles: profiles,
		settings: settings,
		log:      log.With().Str("handler", "user").Logger(),
	}
}

// GetProfile handles GET /api/users/profile
// @Summary Get the caller's profile
// @Description User, settings and the five most recent saved conversations
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} responses.ProfileResponse
// @Failure 401 {object} platformerrors.HTTPErrorResponse
// @Failure 404 {object} platformerrors.HTTPErrorResponse
// @Router /api/users/profile [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	profile, err := h.profiles.GetProfile(c.Request.Context(), principal.UserID)
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}
	c.JSON(http.StatusOK, responses.NewProfileResponse(profile))
}

// UpdateProfile handles PUT /api/users/profile
// @Summary Update the caller's profile
// @Tags Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body requests.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} responses.UpdateProfileResponse
// @Failure 400 {object} platformerrors.HTTPErrorResponse
// @Failure 401 {object} platformerrors.HTTPErrorResponse
// @Router /api/users/profile [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req requests.UpdateProfileRequest
	if !bindJSON(c, &req, h.log) {
		return
	}

	updated, err := h.profiles.UpdateProfile(c.Request.Context(), principal.UserID, user.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Avatar:    req.Avatar,
	})
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}

	c.JSON(http.StatusOK, responses.UpdateProfileResponse{
		Success: true,
		User:    responses.NewUserResponse(updated, nil),
		Message: MsgProfileUpdated,
	})
}

// UpdateSettings handles PUT /api/users/settings
// @Summary Update the caller's settings
// @Description Absent fields keep their current value; settings are created when missing
// @Tags Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body requests.UpdateSettingsRequest true "Settings patch"
// @Success 200 {object} responses.UpdateSettingsResponse
// @Failure 400 {object} platformerrors.HTTPErrorResponse
// @Failure 401 {object} platformerrors.HTTPErrorResponse
// @Router /api/users/settings [put]
func (h *UserHandler) UpdateSettings(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req requests.UpdateSettingsRequest
	if !bindJSON(c, &req, h.log) {
		return
	}

	updated, err := h.settings.Update(c.Request.Context(), principal.UserID, *req.Settings)
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}

	c.JSON(http.StatusOK, responses.UpdateSettingsResponse{
		Success:  true,
		Settings: updated,
		Message:  MsgSettingsUpdated,
	})
}

// ChangePassword handles PUT /api/users/password
// @Summary Change the caller's password
// @Tags Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body requests.ChangePasswordRequest true "Passwords"
// @Success 200 {object} responses.SuccessResponse
// @Failure 400 {object} platformerrors.HTTPErrorResponse
// @Failure 401 {object} platformerrors.HTTPErrorResponse
// @Router /api/users/password [put]
func (h *UserHandler) ChangePassword(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req requests.ChangePasswordRequest
	if !bindJSON(c, &req, h.log) {
		return
	}

	if err := h.profiles.ChangePassword(c.Request.Context(), principal.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}
	c.JSON(http.StatusOK, responses.SuccessResponse{Success: true, Message: MsgPasswordUpdated})
}
