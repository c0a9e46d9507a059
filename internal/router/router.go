package router

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"aidfind/internal/auth"
	"aidfind/internal/config"
	"aidfind/internal/errors"
	"aidfind/internal/handler"
	"aidfind/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	adminHandler *handler.AdminHandler,
	requestHandler *handler.RequestHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     strings.Split(cfg.CORSOrigins, ","),
		AllowCredentials: true,
	}))

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/admin/signup", adminHandler.Signup)
	api.POST("/admin/login", adminHandler.Login)
	api.GET("/requests", requestHandler.ListPending)

	// Secured routes (require a valid bearer token)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}))

	secured.POST("/requests", requestHandler.Create, requireRole(model.RoleSeeker))
	secured.GET("/requests/my-requests", requestHandler.ListMine)
	secured.GET("/requests/engaged", requestHandler.ListEngaged, requireRole(model.RoleDonor))
	secured.PATCH("/requests/:id/status", requestHandler.UpdateStatus)

	// Back-office routes
	adminAPI := secured.Group("/admin", requireRole(model.RoleAdmin))
	adminAPI.GET("/users", adminHandler.ListUsers)
	adminAPI.GET("/requests", adminHandler.ListRequests)
	adminAPI.DELETE("/users/:id", adminHandler.DeleteUser)
}

// requireRole gates a route on the caller's claimed role.
func requireRole(role model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := handler.CurrentClaims(c)
			if err != nil {
				return err
			}
			if claims.Role != role {
				return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
					Error: "access denied: " + string(role) + " role required",
					Code:  "ROLE_REQUIRED",
				})
			}
			return next(c)
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
