package handler

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"

	"vtcal/internal/errors"
	"vtcal/internal/provider"
	"vtcal/internal/service"
)

// LinkHandler handles external account linking and sync.
type LinkHandler struct {
	linkService service.LinkService
	canvas      provider.Provider
	google      provider.Provider
	identity    *Identity
}

// NewLinkHandler creates a new link handler.
func NewLinkHandler(linkService service.LinkService, canvas, google provider.Provider, identity *Identity) *LinkHandler {
	return &LinkHandler{
		linkService: linkService,
		canvas:      canvas,
		google:      google,
		identity:    identity,
	}
}

// LinkCanvasRequest represents a Canvas link request.
type LinkCanvasRequest struct {
	UserID      uint   `json:"userId"`
	CanvasToken string `json:"canvasToken"`
}

// LinkGoogleRequest represents a Google Calendar link request.
type LinkGoogleRequest struct {
	UserID      uint   `json:"userId"`
	GoogleToken string `json:"googleToken"`
}

// LinkResponse reports a sync run.
type LinkResponse struct {
	Success       bool `json:"success"`
	CoursesLinked int  `json:"coursesLinked"`
	SyncedCount   int  `json:"syncedCount"`
}

// LinkCanvas godoc
// @Summary Link a Canvas account and sync assignments
// @Tags sync
// @Accept json
// @Produce json
// @Param request body LinkCanvasRequest true "User id and Canvas bearer token"
// @Success 200 {object} LinkResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /canvas/link [post]
func (h *LinkHandler) LinkCanvas(c echo.Context) error {
	var req LinkCanvasRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid request body"})
	}
	if req.CanvasToken == "" {
		return c.JSON(http.StatusBadRequest, errors.ErrorResponse{Error: "Canvas token required"})
	}

	userID := h.identity.Resolve(c, req.UserID)
	result, err := h.linkService.LinkAccount(c.Request().Context(), userID, req.CanvasToken, h.canvas)
	if err != nil {
		// cause stays server-side; the client sees a generic failure
		log.Error("canvas link", "user_id", userID, "err", err)
		return c.JSON(http.StatusInternalServerError, errors.ErrorResponse{Error: "Failed to link Canvas account"})
	}

	return c.JSON(http.StatusOK, LinkResponse{
		Success:       true,
		CoursesLinked: result.CoursesLinked,
		SyncedCount:   result.SyncedCount,
	})
}

// LinkGoogle godoc
// @Summary Link a Google Calendar account and sync events
// @Tags sync
// @Accept json
// @Produce json
// @Param request body LinkGoogleRequest true "User id and Google bearer token"
// @Success 200 {object} LinkResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /google/link [post]
func (h *LinkHandler) LinkGoogle(c echo.Context) error {
	var req LinkGoogleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid request body"})
	}
	if req.GoogleToken == "" {
		return c.JSON(http.StatusBadRequest, errors.ErrorResponse{Error: "Google token required"})
	}

	userID := h.identity.Resolve(c, req.UserID)
	result, err := h.linkService.LinkAccount(c.Request().Context(), userID, req.GoogleToken, h.google)
	if err != nil {
		log.Error("google link", "user_id", userID, "err", err)
		return c.JSON(http.StatusInternalServerError, errors.ErrorResponse{Error: "Failed to link Google account"})
	}

	return c.JSON(http.StatusOK, LinkResponse{
		Success:       true,
		CoursesLinked: result.CoursesLinked,
		SyncedCount:   result.SyncedCount,
	})
}
