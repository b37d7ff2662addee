package api

import (
	"database/sql"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/tagblog/tagblog/internal/api/handler"
	"github.com/tagblog/tagblog/internal/api/middleware"
	"github.com/tagblog/tagblog/internal/core/csrf"
	"github.com/tagblog/tagblog/internal/core/service"
	"github.com/tagblog/tagblog/internal/infrastructure/config"
	"github.com/tagblog/tagblog/internal/infrastructure/db/sqlite"
	"github.com/tagblog/tagblog/internal/session"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *sql.DB, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(session.Middleware(session.NewStore([]byte(cfg.SecretKey))))

	// --- Dependencies ---
	userRepo := sqlite.NewUserRepository(db)
	postRepo := sqlite.NewPostRepository(db)
	commentRepo := sqlite.NewCommentRepository(db)

	authService := service.NewAuthService(userRepo, cfg.SecretKey, cfg.AdminPassword, 24*time.Hour)
	postService := service.NewPostService(postRepo)
	commentService := service.NewCommentService(commentRepo, postRepo)

	csrfService := csrf.NewService([]byte(cfg.SecretKey))

	authHandler := handler.NewAuthHandler(authService, csrfService)
	postHandler := handler.NewPostHandler(postService)
	commentHandler := handler.NewCommentHandler(commentService)

	// Identity resolution runs on every request: browser session first, then
	// an optional API bearer token.
	e.Use(middleware.LoadUser(authService))
	e.Use(middleware.BearerAuth(cfg.SecretKey, authService))

	requireUser := middleware.RequireUser()

	// --- Auth routes ---
	e.GET("/auth/register", authHandler.RegisterPage)
	e.POST("/auth/register", authHandler.Register)
	e.GET("/auth/login", authHandler.LoginPage)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/logout", authHandler.Logout)

	// --- Blog routes ---
	e.GET("/posts", postHandler.List)
	e.GET("/posts/:id", postHandler.Get)
	e.POST("/posts", postHandler.Create, requireUser)
	e.PUT("/posts/:id", postHandler.Update, requireUser)
	e.DELETE("/posts/:id", postHandler.Delete, requireUser)
	e.GET("/posts/:id/comments", commentHandler.ListForPost)
	e.POST("/posts/:id/comments", commentHandler.Create, requireUser)
	e.DELETE("/comments/:id", commentHandler.Delete, requireUser)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness)  // readiness – is the database up?
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}
