package handlers

import (
	"fmt"
	"net/http"
	"time"

	"labdesk/internal/analytics"
	"labdesk/internal/common"
	"labdesk/internal/services"

	"github.com/labstack/echo/v4"
)

// AnalyticsHandlers handles HTTP requests for revenue analytics
type AnalyticsHandlers struct {
	analyticsService *analytics.Service
	reportService    services.ReportServiceInterface
}

// NewAnalyticsHandlers creates a new analytics handlers instance
func NewAnalyticsHandlers(analyticsService *analytics.Service, reportService services.ReportServiceInterface) *AnalyticsHandlers {
	return &AnalyticsHandlers{
		analyticsService: analyticsService,
		reportService:    reportService,
	}
}

func parseDateRange(c echo.Context) (time.Time, time.Time, error) {
	fromParam := c.QueryParam("from")
	toParam := c.QueryParam("to")

	now := time.Now()
	fromDate := now
	toDate := now

	if fromParam != "" {
		parsed, err := time.ParseInLocation("2006-01-02", fromParam, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, common.NewValidationError("from", "must be a valid date (YYYY-MM-DD)")
		}
		fromDate = parsed
	}
	if toParam != "" {
		parsed, err := time.ParseInLocation("2006-01-02", toParam, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, common.NewValidationError("to", "must be a valid date (YYYY-MM-DD)")
		}
		toDate = parsed
	}

	return fromDate, toDate, nil
}

// GetSummary handles GET /analytics/summary
func (h *AnalyticsHandlers) GetSummary(c echo.Context) error {
	ctx := c.Request().Context()

	fromDate, toDate, err := parseDateRange(c)
	if err != nil {
		return common.RespondError(c, err)
	}

	summary, err := h.analyticsService.Aggregate(ctx, fromDate, toDate)
	if err != nil {
		return common.RespondError(c, err)
	}

	return c.JSON(http.StatusOK, summary)
}

// DownloadRevenueReport handles GET /analytics/report.xlsx
func (h *AnalyticsHandlers) DownloadRevenueReport(c echo.Context) error {
	ctx := c.Request().Context()

	fromDate, toDate, err := parseDateRange(c)
	if err != nil {
		return common.RespondError(c, err)
	}

	summary, err := h.analyticsService.Aggregate(ctx, fromDate, toDate)
	if err != nil {
		return common.RespondError(c, err)
	}

	data, err := h.reportService.BuildRevenueXLSX(ctx, summary, fromDate, toDate)
	if err != nil {
		return common.SendServerError(c, "Failed to generate revenue report: "+err.Error())
	}

	filename := fmt.Sprintf("revenue-%s-%s.xlsx", fromDate.Format("20060102"), toDate.Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
