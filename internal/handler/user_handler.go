package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"vtcal/internal/errors"
	"vtcal/internal/service"
)

// UserHandler handles profile endpoints.
type UserHandler struct {
	authService service.AuthService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(authService service.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

// GetUser godoc
// @Summary Get a user's profile
// @Tags users
// @Produce json
// @Param id path int true "User id"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Router /user/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid user id"})
	}

	user, err := h.authService.GetUser(c.Request().Context(), uint(id))
	if err != nil {
		if err == service.ErrUserNotFound {
			return c.JSON(http.StatusNotFound, errors.ErrorResponse{Error: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, errors.ErrorResponse{Error: "Database error"})
	}

	return c.JSON(http.StatusOK, echo.Map{"user": user})
}
