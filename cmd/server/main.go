package main

import (
	"log"
	"net/http"

	_ "aidfind/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"aidfind/internal/auth"
	"aidfind/internal/cache"
	"aidfind/internal/config"
	"aidfind/internal/db"
	"aidfind/internal/handler"
	"aidfind/internal/model"
	"aidfind/internal/repository"
	"aidfind/internal/router"
	"aidfind/internal/service"
)

// @title AidFind API
// @version 1.0
// @description Matches people requesting medical aid with volunteers who can provide it.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Admin{},
		&model.AidRequest{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	adminRepo := repository.NewAdminRepository(gormDB)
	requestRepo := repository.NewAidRequestRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService)
	adminService := service.NewAdminService(adminRepo, userRepo, requestRepo, jwtService, cacheClient)
	requestService := service.NewRequestService(requestRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	adminHandler := handler.NewAdminHandler(adminService)
	requestHandler := handler.NewRequestHandler(requestService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		adminHandler,
		requestHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
