package routes

import (
	"net/http"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"dispatch-dashboard/internal/controllers"
	"dispatch-dashboard/internal/detrack"
	"dispatch-dashboard/internal/repositories"
	"dispatch-dashboard/internal/services"
	"dispatch-dashboard/pkg/config"
	"dispatch-dashboard/pkg/middleware"
	"dispatch-dashboard/pkg/service"
)

// InitRouter wires repositories, services and controllers and mounts every
// route group. Kept in one place so the dependency graph is readable.
func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, jwtSvc service.JWTService, logger *zap.Logger, cfg *config.Config) {
	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)

	// Repositories
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)
	sessionRepo := repositories.NewSessionRepository(cacheRepo, cfg.Session.TTL)
	crmRepo := repositories.NewCRMRepository(dbConn, logger)
	staffRepo := repositories.NewStaffRepository(dbConn, logger)

	// Services
	jobsClient := detrack.NewClient(cfg.Detrack, &http.Client{}, logger)
	authService := services.NewAuthService(staffRepo, sessionRepo, jwtSvc, logger)
	dashboardService := services.NewDashboardService(jobsClient, crmRepo, sessionRepo, cfg.Detrack, logger)
	exportService := services.NewExportService(sessionRepo, logger)

	// Controllers
	authController := controllers.NewAuthController(authService, logger)
	dashboardController := controllers.NewDashboardController(dashboardService, logger)
	exportController := controllers.NewExportController(exportService, logger)

	runAuthRouter(api, authController, authMW)
	runDashboardRouter(api, dashboardController, exportController, authMW)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
}

func runAuthRouter(api *echo.Group, ctrl *controllers.AuthController, authMW *middleware.AuthMiddleware) {
	auth := api.Group("/auth")
	auth.POST("/login", ctrl.Login)
	auth.POST("/refresh", ctrl.Refresh)
	auth.POST("/logout", ctrl.Logout, authMW.Auth)
}

func runDashboardRouter(api *echo.Group, ctrl *controllers.DashboardController, exportCtrl *controllers.ExportController, authMW *middleware.AuthMiddleware) {
	dashboard := api.Group("/dashboard", authMW.Auth)
	dashboard.POST("/fetch", ctrl.Fetch)
	dashboard.GET("/summary", ctrl.Summary)
	dashboard.GET("/failed", ctrl.Failed)
	dashboard.GET("/routes", ctrl.RouteOptions)
	dashboard.GET("/routes/plot", ctrl.RoutePlot)
	dashboard.GET("/export", exportCtrl.Export)
}
