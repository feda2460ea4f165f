package controllers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"dispatch-dashboard/internal/services"
	apperrors "dispatch-dashboard/pkg/errors"
	"dispatch-dashboard/pkg/utils"
)

type DashboardController struct {
	dashboardService services.DashboardServiceInterface
	logger           *zap.Logger
}

func NewDashboardController(ds services.DashboardServiceInterface, logger *zap.Logger) *DashboardController {
	return &DashboardController{
		dashboardService: ds,
		logger:           logger,
	}
}

// Fetch triggers the full pipeline for the requested date (today when
// omitted) and returns the new summary.
func (ctrl *DashboardController) Fetch(c echo.Context) error {
	sessionID, err := utils.GetSessionIDFromCtx(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	date := time.Now()
	if dateStr := c.QueryParam("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return utils.ErrorResponse(c,
				apperrors.NewHttpError(http.StatusBadRequest, "date must be YYYY-MM-DD", err, nil),
				ctrl.logger)
		}
		date = parsed
	}

	summary, err := ctrl.dashboardService.FetchAndProcess(c.Request().Context(), sessionID, date)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	message := "data fetched, cleaned and grouped"
	if summary.NoData {
		message = "no data retrieved for this date"
	}
	return utils.SuccessResponse(c, summary, message, http.StatusOK)
}

func (ctrl *DashboardController) Summary(c echo.Context) error {
	sessionID, err := utils.GetSessionIDFromCtx(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	summary, err := ctrl.dashboardService.GetSummary(c.Request().Context(), sessionID)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, summary, "summary of jobs by route number", http.StatusOK)
}

func (ctrl *DashboardController) Failed(c echo.Context) error {
	sessionID, err := utils.GetSessionIDFromCtx(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	failed, err := ctrl.dashboardService.GetFailed(c.Request().Context(), sessionID)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, failed, "failed jobs", http.StatusOK)
}

func (ctrl *DashboardController) RouteOptions(c echo.Context) error {
	sessionID, err := utils.GetSessionIDFromCtx(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	options, err := ctrl.dashboardService.GetRouteOptions(c.Request().Context(), sessionID)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, options, "plottable routes", http.StatusOK)
}

func (ctrl *DashboardController) RoutePlot(c echo.Context) error {
	sessionID, err := utils.GetSessionIDFromCtx(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	route := c.QueryParam("route")
	if route == "" {
		return utils.ErrorResponse(c,
			apperrors.NewHttpError(http.StatusBadRequest, "route query parameter is required", nil, nil),
			ctrl.logger)
	}

	plot, err := ctrl.dashboardService.GetRoutePlot(c.Request().Context(), sessionID, route)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, plot, "route plot", http.StatusOK)
}
