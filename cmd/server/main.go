package main

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "vtcal/docs" // swagger docs

	"vtcal/internal/cache"
	"vtcal/internal/config"
	"vtcal/internal/db"
	"vtcal/internal/handler"
	"vtcal/internal/model"
	"vtcal/internal/provider"
	"vtcal/internal/repository"
	"vtcal/internal/router"
	"vtcal/internal/service"
)

// @title VT Calendar API
// @version 1.0
// @description Student calendar aggregator: Canvas and Google Calendar sync, manual events, and notification settings.
// @host localhost:3001
// @BasePath /api
// @schemes http
func main() {
	cfg := config.Load()

	gormDB, err := db.NewSQLite(cfg.DatabasePath)
	if err != nil {
		log.Fatal("database init", "err", err)
	}

	// Schema is created idempotently on every start; there are no migrations.
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Event{},
		&model.ConnectedAccount{},
		&model.LoginSession{},
		&model.Setting{},
	); err != nil {
		log.Fatal("auto-migrate", "err", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	sessionRepo := repository.NewSessionRepository(gormDB)
	courseRepo := repository.NewCourseRepository(gormDB)
	eventRepo := repository.NewEventRepository(gormDB)
	accountRepo := repository.NewAccountRepository(gormDB)
	settingRepo := repository.NewSettingRepository(gormDB)

	// Providers
	canvas := provider.NewCanvas(cfg.CanvasBaseURL)
	google := provider.NewGoogle(cfg.GoogleBaseURL)

	// Services
	if cfg.TwoFactorDevBypass {
		log.Warn("2FA dev bypass is enabled; the code 000000 is accepted for every account")
	}
	authService := service.NewAuthService(userRepo, sessionRepo, cfg.TwoFactorDevBypass)
	linkService := service.NewLinkService(courseRepo, eventRepo, accountRepo, cacheClient)
	calendarService := service.NewCalendarService(eventRepo, courseRepo, cacheClient)
	settingsService := service.NewSettingsService(settingRepo)

	// Handlers
	identity := handler.NewIdentity(userRepo)
	authHandler := handler.NewAuthHandler(authService, identity)
	linkHandler := handler.NewLinkHandler(linkService, canvas, google, identity)
	calendarHandler := handler.NewCalendarHandler(calendarService, identity)
	settingsHandler := handler.NewSettingsHandler(settingsService, identity)
	userHandler := handler.NewUserHandler(authService)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestID())

	router.Register(e, authHandler, linkHandler, calendarHandler, settingsHandler, userHandler)

	addr := cfg.ServerHost + ":" + cfg.ServerPort
	log.Info("VT Calendar server running", "addr", "http://"+addr)
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatal("server start", "err", err)
	}
}
