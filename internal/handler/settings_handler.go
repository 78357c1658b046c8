package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"vtcal/internal/errors"
	"vtcal/internal/model"
	"vtcal/internal/service"
)

// SettingsHandler handles preference endpoints.
type SettingsHandler struct {
	settingsService service.SettingsService
	identity        *Identity
}

// NewSettingsHandler creates a new settings handler.
func NewSettingsHandler(settingsService service.SettingsService, identity *Identity) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService, identity: identity}
}

// UpdateSettingsRequest carries the full preference set; updates replace the
// row wholesale, there is no partial update.
type UpdateSettingsRequest struct {
	UserID                uint   `json:"userId"`
	EmailNotifications    bool   `json:"email_notifications"`
	PushNotifications     bool   `json:"push_notifications"`
	ReminderBeforeHours   int    `json:"reminder_before_hours" validate:"min=0"`
	ReminderBeforeMinutes int    `json:"reminder_before_minutes" validate:"min=0"`
	PrivacyMode           string `json:"privacy_mode" validate:"required"`
	DataSharing           bool   `json:"data_sharing"`
}

// GetSettings godoc
// @Summary Get a user's settings, creating defaults on first read
// @Tags settings
// @Produce json
// @Param userId query int false "User id"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} errors.ErrorResponse
// @Router /settings [get]
func (h *SettingsHandler) GetSettings(c echo.Context) error {
	userID := h.identity.Resolve(c, queryUserID(c))

	setting, err := h.settingsService.Get(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errors.ErrorResponse{Error: "Failed to fetch settings"})
	}
	return c.JSON(http.StatusOK, echo.Map{"settings": setting})
}

// UpdateSettings godoc
// @Summary Replace a user's settings
// @Tags settings
// @Accept json
// @Produce json
// @Param request body UpdateSettingsRequest true "Full settings"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /settings [put]
func (h *SettingsHandler) UpdateSettings(c echo.Context) error {
	var req UpdateSettingsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.ErrorResponse{Error: err.Error()})
	}

	userID := h.identity.Resolve(c, req.UserID)
	setting := &model.Setting{
		EmailNotifications:    req.EmailNotifications,
		PushNotifications:     req.PushNotifications,
		ReminderBeforeHours:   req.ReminderBeforeHours,
		ReminderBeforeMinutes: req.ReminderBeforeMinutes,
		PrivacyMode:           req.PrivacyMode,
		DataSharing:           req.DataSharing,
	}
	if err := h.settingsService.Update(c.Request().Context(), userID, setting); err != nil {
		return c.JSON(http.StatusInternalServerError, errors.ErrorResponse{Error: "Failed to update settings"})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
