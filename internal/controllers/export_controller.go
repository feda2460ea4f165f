package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"dispatch-dashboard/internal/services"
	apperrors "dispatch-dashboard/pkg/errors"
	"dispatch-dashboard/pkg/utils"
)

type ExportController struct {
	exportService services.ExportServiceInterface
	logger        *zap.Logger
}

func NewExportController(exportService services.ExportServiceInterface, logger *zap.Logger) *ExportController {
	return &ExportController{exportService: exportService, logger: logger}
}

// Export streams the cleaned job table as a downloadable file. format=csv
// (default) or format=xlsx.
func (ctrl *ExportController) Export(c echo.Context) error {
	sessionID, err := utils.GetSessionIDFromCtx(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	format := strings.ToLower(c.QueryParam("format"))
	if format == "" {
		format = "csv"
	}

	var (
		payload     []byte
		filename    string
		contentType string
	)
	switch format {
	case "csv":
		payload, err = ctrl.exportService.ExportCSV(c.Request().Context(), sessionID)
		filename, contentType = services.CSVExportFilename, "text/csv; charset=utf-8"
	case "xlsx":
		payload, err = ctrl.exportService.ExportXLSX(c.Request().Context(), sessionID)
		filename, contentType = services.XLSXExportFilename, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return utils.ErrorResponse(c,
			apperrors.NewHttpError(http.StatusBadRequest, "format must be csv or xlsx", nil, nil),
			ctrl.logger)
	}
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Blob(http.StatusOK, contentType, payload)
}
