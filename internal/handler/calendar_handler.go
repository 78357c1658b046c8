package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"vtcal/internal/errors"
	"vtcal/internal/service"
)

// CalendarHandler handles event and course endpoints.
type CalendarHandler struct {
	calendarService service.CalendarService
	identity        *Identity
}

// NewCalendarHandler creates a new calendar handler.
func NewCalendarHandler(calendarService service.CalendarService, identity *Identity) *CalendarHandler {
	return &CalendarHandler{calendarService: calendarService, identity: identity}
}

// AddEventRequest represents a manual event creation request.
type AddEventRequest struct {
	UserID      uint   `json:"userId"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate" validate:"required"`
}

// UpdateEventRequest represents an event update request.
type UpdateEventRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate" validate:"required"`
	Completed   bool   `json:"completed"`
}

// ListEvents godoc
// @Summary List a user's events in due-date order
// @Tags calendar
// @Produce json
// @Param userId query int false "User id"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} errors.ErrorResponse
// @Router /calendar/events [get]
func (h *CalendarHandler) ListEvents(c echo.Context) error {
	userID := h.identity.Resolve(c, queryUserID(c))

	events, err := h.calendarService.ListEvents(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errors.ErrorResponse{Error: "Failed to fetch events"})
	}
	return c.JSON(http.StatusOK, echo.Map{"events": events})
}

// AddEvent godoc
// @Summary Create a manual event
// @Tags calendar
// @Accept json
// @Produce json
// @Param request body AddEventRequest true "Event data"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /calendar/events [post]
func (h *CalendarHandler) AddEvent(c echo.Context) error {
	var req AddEventRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.ErrorResponse{Error: err.Error()})
	}
	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errors.ErrorResponse{Error: "Invalid due date"})
	}

	userID := h.identity.Resolve(c, req.UserID)
	id, err := h.calendarService.AddEvent(c.Request().Context(), userID, req.Title, req.Description, dueDate)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errors.ErrorResponse{Error: "Failed to add event"})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "id": id})
}

// UpdateEvent godoc
// @Summary Update an event
// @Tags calendar
// @Accept json
// @Produce json
// @Param id path int true "Event id"
// @Param request body UpdateEventRequest true "Event data"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /calendar/events/{id} [put]
func (h *CalendarHandler) UpdateEvent(c echo.Context) error {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid event id"})
	}

	var req UpdateEventRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.ErrorResponse{Error: err.Error()})
	}
	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errors.ErrorResponse{Error: "Invalid due date"})
	}

	userID := h.identity.Resolve(c, queryUserID(c))
	err = h.calendarService.UpdateEvent(c.Request().Context(), userID, uint(eventID), req.Title, req.Description, dueDate, req.Completed)
	if err != nil {
		if err == service.ErrEventNotFound {
			return c.JSON(http.StatusNotFound, errors.ErrorResponse{Error: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, errors.ErrorResponse{Error: "Failed to update event"})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// DeleteEvent godoc
// @Summary Delete an event
// @Tags calendar
// @Produce json
// @Param id path int true "Event id"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Router /calendar/events/{id} [delete]
func (h *CalendarHandler) DeleteEvent(c echo.Context) error {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid event id"})
	}

	userID := h.identity.Resolve(c, queryUserID(c))
	if err := h.calendarService.DeleteEvent(c.Request().Context(), userID, uint(eventID)); err != nil {
		if err == service.ErrEventNotFound {
			return c.JSON(http.StatusNotFound, errors.ErrorResponse{Error: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, errors.ErrorResponse{Error: "Failed to delete event"})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// ListCourses godoc
// @Summary List a user's linked Canvas courses
// @Tags calendar
// @Produce json
// @Param userId query int false "User id"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} errors.ErrorResponse
// @Router /canvas/courses [get]
func (h *CalendarHandler) ListCourses(c echo.Context) error {
	userID := h.identity.Resolve(c, queryUserID(c))

	courses, err := h.calendarService.ListCourses(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errors.ErrorResponse{Error: "Database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"courses": courses})
}
