package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/brightpaths/org-system/docs"
	"github.com/brightpaths/org-system/internal/api/handler"
	"github.com/brightpaths/org-system/internal/api/middleware"
	"github.com/brightpaths/org-system/internal/core/domain"
	"github.com/brightpaths/org-system/internal/core/ports"
	"github.com/brightpaths/org-system/internal/core/service"
	"github.com/brightpaths/org-system/internal/infrastructure/config"
	mongorepo "github.com/brightpaths/org-system/internal/infrastructure/db/mongo"
	redisrepo "github.com/brightpaths/org-system/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The audit sink is injected so its worker lifecycle stays owned by main.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, audit ports.AuditSink, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("orgtree"))

	// --- Repositories ---
	userRepo := mongorepo.NewUserRepository(db)
	requestRepo := mongorepo.NewPromotionRequestRepository(db)
	catalogRepo := mongorepo.NewProgramCatalogRepository(db)

	catalogTTL := time.Duration(cfg.Redis.CatalogTTLSeconds) * time.Second
	catalog := redisrepo.NewCatalogCache(rdb, catalogRepo, catalogTTL, log)

	// --- Services ---
	tree := service.NewOrgTree(userRepo, log)
	cascade := service.NewCascadePropagator(tree, userRepo, log)
	validator := service.NewPromotionValidator(userRepo, requestRepo, catalog)
	promotions := service.NewPromotionWorkflow(userRepo, requestRepo, validator, cascade, audit, log)
	org := service.NewOrgTreeService(tree, cascade, userRepo, catalog, audit, log)
	auth := service.NewAuthService(userRepo, cfg.JWTSecret, 24*time.Hour)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(auth)
	promotionHandler := handler.NewPromotionHandler(promotions)
	orgHandler := handler.NewOrgHandler(org)
	catalogHandler := handler.NewCatalogHandler(catalog)
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	jwtAuth := middleware.JWTAuth(cfg.JWTSecret)
	adminOnly := middleware.RequireRole(domain.RoleAdministrator)

	// --- Public routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	e.GET("/health", healthHandler.Liveness)             // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness)   // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Authenticated routes ---
	v1 := e.Group("/v1", jwtAuth)

	v1.POST("/promotions/validate", promotionHandler.Validate)
	v1.POST("/promotions", promotionHandler.Create)
	v1.GET("/promotions/pending", promotionHandler.ListPending, adminOnly)
	v1.POST("/promotions/:id/approve", promotionHandler.Approve, adminOnly)
	v1.POST("/promotions/:id/reject", promotionHandler.Reject, adminOnly)

	v1.GET("/org/users/:id/tree", orgHandler.Tree)
	v1.PUT("/org/users/:id/attributes", orgHandler.UpdateAttributes)

	v1.GET("/programs/:program/sites", catalogHandler.Sites)

	return e
}
