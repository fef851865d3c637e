package app

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/kartikey1112/hrms-dashboard/internal/auth"
	"github.com/kartikey1112/hrms-dashboard/internal/config"
	"github.com/kartikey1112/hrms-dashboard/internal/employee"
	"github.com/kartikey1112/hrms-dashboard/internal/leave"
	"github.com/kartikey1112/hrms-dashboard/internal/messaging/kafka"
	"github.com/kartikey1112/hrms-dashboard/internal/middleware"
	"github.com/kartikey1112/hrms-dashboard/internal/web"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const providerTimeout = 10 * time.Second

func registerModules(
	router *gin.Engine,
	cfg config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	reg *prometheus.Registry,
	logger *zap.Logger,
) error {
	// --- Session ---
	provider := auth.NewProvider(cfg.ServiceURL, cfg.PublicKey, &http.Client{Timeout: providerTimeout})
	sessionStore := auth.NewSessionStore(provider, rdb, cfg.SessionCacheTTL, cfg.JWTSecret)
	requireSession := middleware.RequireSession(sessionStore, cfg.SessionCookie)

	// --- Global middleware ---
	metrics := middleware.NewHTTPMetrics(reg)
	router.Use(
		middleware.RequestID(),
		metrics.Middleware(),
		middleware.SessionGate(sessionStore, cfg.SessionCookie),
	)
	router.GET("/metrics", metrics.Handler())
	router.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	authService := auth.NewService(provider, sessionStore)
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, outboxRepo)
	leaveService := leave.NewService(db, leaveRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, cfg.SessionCookie, cfg.IsProduction())
	employeeHandler := employee.NewHandler(employeeService)
	leaveHandler := leave.NewHandler(leaveService)
	webHandler := web.NewHandler(employeeService, leaveService)

	// --- Routes Registration ---
	api := router.Group("/api")
	{
		auth.RegisterRoutes(api, authHandler, requireSession, logger)
		employee.RegisterRoutes(api, employeeHandler, requireSession, rdb, logger)
		leave.RegisterRoutes(api, leaveHandler, requireSession, rdb, logger)
	}

	web.RegisterRoutes(router, webHandler)

	return nil
}
