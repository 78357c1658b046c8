package router

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"vtcal/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	authHandler *handler.AuthHandler,
	linkHandler *handler.LinkHandler,
	calendarHandler *handler.CalendarHandler,
	settingsHandler *handler.SettingsHandler,
	userHandler *handler.UserHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	api.GET("/health", handler.Health)

	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/verify-2fa", authHandler.VerifyTwoFactor)
	api.POST("/auth/setup-2fa", authHandler.SetupTwoFactor)
	api.GET("/auth/2fa-qr", authHandler.TwoFactorQR)

	api.POST("/canvas/link", linkHandler.LinkCanvas)
	api.GET("/canvas/courses", calendarHandler.ListCourses)
	api.POST("/google/link", linkHandler.LinkGoogle)

	api.GET("/calendar/events", calendarHandler.ListEvents)
	api.POST("/calendar/events", calendarHandler.AddEvent)
	api.PUT("/calendar/events/:id", calendarHandler.UpdateEvent)
	api.DELETE("/calendar/events/:id", calendarHandler.DeleteEvent)

	api.GET("/user/:id", userHandler.GetUser)

	api.GET("/settings", settingsHandler.GetSettings)
	api.PUT("/settings", settingsHandler.UpdateSettings)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
