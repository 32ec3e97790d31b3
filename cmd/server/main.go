package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/meetline/api/internal/config"
	"github.com/meetline/api/internal/firebase"
	"github.com/meetline/api/internal/handler"
	"github.com/meetline/api/internal/identity"
	"github.com/meetline/api/internal/repository"
	"github.com/meetline/api/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx := context.Background()
	if err := firebase.Connect(ctx, cfg.FirebaseProjectID, cfg.FirebaseCredentialsFile); err != nil {
		return fmt.Errorf("connect firebase: %w", err)
	}
	defer firebase.Firestore().Close()

	slog.Info("firebase connected", "project", cfg.FirebaseProjectID)

	userRepo := repository.NewUserRepository(firebase.Firestore())
	meetingRepo := repository.NewMeetingRepository(firebase.Firestore())

	provider := identity.NewProvider(firebase.Auth())
	verifier := identity.NewVerifier(firebase.Auth())

	var passwords service.PasswordGrant
	if cfg.FirebaseWebAPIKey != "" {
		passwords = identity.NewPasswordClient(cfg.FirebaseWebAPIKey)
	} else {
		slog.Warn("FIREBASE_WEB_API_KEY not set, login is disabled")
	}

	userHandler := handler.NewUserHandler(service.NewUserService(userRepo, provider, passwords))
	meetingHandler := handler.NewMeetingHandler(service.NewMeetingService(meetingRepo))

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handler.HTTPErrorHandler
	e.Validator = handler.NewAppValidator()

	e.Use(handler.RequestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderAccept, echo.HeaderAuthorization, echo.HeaderContentType},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	gate := handler.Auth(verifier)
	api := e.Group("/api/v1")

	users := api.Group("/users")
	users.POST("/register", userHandler.Register)
	users.POST("/login", userHandler.Login)
	users.POST("/request-password-reset", userHandler.RequestPasswordReset)
	users.POST("/reset-password", userHandler.ResetPassword)
	users.GET("/profile", userHandler.GetProfile, gate)
	users.PUT("/profile", userHandler.UpdateProfile, gate)
	users.PUT("/email", userHandler.UpdateEmail, gate)
	users.DELETE("/profile", userHandler.DeleteProfile, gate)

	meetings := api.Group("/meetings", gate)
	meetings.POST("", meetingHandler.Create)
	meetings.GET("", meetingHandler.List)
	meetings.GET("/:id", meetingHandler.GetByID)
	meetings.PUT("/:id", meetingHandler.Update)
	meetings.DELETE("/:id", meetingHandler.Delete)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Port)
		errCh <- e.Start(fmt.Sprintf(":%d", cfg.Port))
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", "signal", sig)
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}
