package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"vtcal/internal/errors"
	"vtcal/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
	identity    *Identity
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, identity *Identity) *AuthHandler {
	return &AuthHandler{authService: authService, identity: identity}
}

// RegisterRequest represents a registration request.
type RegisterRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	CanvasUserID string `json:"canvasUserId"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VerifyTwoFactorRequest represents a second-factor verification request.
type VerifyTwoFactorRequest struct {
	UserID uint   `json:"userId"`
	Code   string `json:"code"`
}

// SetupTwoFactorRequest represents a second-factor enrollment request.
type SetupTwoFactorRequest struct {
	UserID uint `json:"userId"`
}

// Register godoc
// @Summary Register a new student account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid request body"})
	}

	user, err := h.authService.Register(c.Request().Context(), req.Email, req.Password, req.CanvasUserID)
	if err != nil {
		switch err {
		case service.ErrNotVTEmail, service.ErrEmailExists:
			return c.JSON(http.StatusBadRequest, errors.ErrorResponse{Error: err.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, errors.ErrorResponse{Error: "Registration failed"})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"userId":  user.ID,
		"email":   user.VTEmail,
	})
}

// Login godoc
// @Summary Authenticate with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid request body"})
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password, c.RealIP())
	if err != nil {
		switch err {
		case service.ErrInvalidVTEmail:
			return c.JSON(http.StatusBadRequest, errors.ErrorResponse{Error: err.Error()})
		case service.ErrInvalidCredentials:
			return c.JSON(http.StatusUnauthorized, errors.ErrorResponse{Error: err.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, errors.ErrorResponse{Error: "Login failed"})
		}
	}

	if result.RequiresTwoFactor {
		return c.JSON(http.StatusOK, echo.Map{
			"success":     true,
			"requires2FA": true,
			"userId":      result.UserID,
			"message":     "Two-factor authentication required",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":      true,
		"requires2FA":  false,
		"userId":       result.UserID,
		"sessionToken": result.SessionToken,
	})
}

// VerifyTwoFactor godoc
// @Summary Verify a one-time code and complete login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body VerifyTwoFactorRequest true "User id and code"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/verify-2fa [post]
func (h *AuthHandler) VerifyTwoFactor(c echo.Context) error {
	var req VerifyTwoFactorRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid request body"})
	}

	result, err := h.authService.VerifyTwoFactor(c.Request().Context(), req.UserID, req.Code, c.RealIP())
	if err != nil {
		switch err {
		case service.ErrInvalidSession, service.ErrInvalidTwoFactorCode:
			return c.JSON(http.StatusUnauthorized, errors.ErrorResponse{Error: err.Error()})
		case service.ErrTwoFactorNotEnabled:
			return c.JSON(http.StatusBadRequest, errors.ErrorResponse{Error: err.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, errors.ErrorResponse{Error: "Verification failed"})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":      true,
		"userId":       result.UserID,
		"sessionToken": result.SessionToken,
		"email":        result.Email,
	})
}

// SetupTwoFactor godoc
// @Summary Enable the second factor and mint a shared secret
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SetupTwoFactorRequest true "User id"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/setup-2fa [post]
func (h *AuthHandler) SetupTwoFactor(c echo.Context) error {
	var req SetupTwoFactorRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errors.ErrorResponse{Error: "invalid request body"})
	}

	userID := h.identity.Resolve(c, req.UserID)
	if userID == 0 {
		return c.JSON(http.StatusUnauthorized, errors.ErrorResponse{Error: "Not authenticated"})
	}

	setup, err := h.authService.SetupTwoFactor(c.Request().Context(), userID)
	if err != nil {
		if err == service.ErrInvalidSession {
			return c.JSON(http.StatusUnauthorized, errors.ErrorResponse{Error: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, errors.ErrorResponse{Error: "Failed to set up 2FA"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":    true,
		"secret":     setup.Secret,
		"otpauthUrl": setup.OTPAuthURL,
	})
}

// TwoFactorQR godoc
// @Summary QR code for the enrolled second factor
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/2fa-qr [get]
func (h *AuthHandler) TwoFactorQR(c echo.Context) error {
	userID := h.identity.Resolve(c, queryUserID(c))
	if userID == 0 {
		return c.JSON(http.StatusUnauthorized, errors.ErrorResponse{Error: "Not authenticated"})
	}

	dataURL, err := h.authService.TwoFactorQR(c.Request().Context(), userID)
	if err != nil {
		switch err {
		case service.ErrInvalidSession:
			return c.JSON(http.StatusUnauthorized, errors.ErrorResponse{Error: err.Error()})
		case service.ErrTwoFactorNotEnabled:
			return c.JSON(http.StatusBadRequest, errors.ErrorResponse{Error: err.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, errors.ErrorResponse{Error: "Failed to generate QR code"})
		}
	}

	return c.JSON(http.StatusOK, map[string]string{"qrCode": dataURL})
}
