package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/svml/uriage-bot/internal/application/service"
	"github.com/svml/uriage-bot/internal/infrastructure/export"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	summaryService  *service.SummaryService
	settingsService *service.SettingsService
	exporter        *export.ExcelExporter
	logger          Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	summaryService *service.SummaryService,
	settingsService *service.SettingsService,
	exporter *export.ExcelExporter,
	logger Logger,
) *Handlers {
	return &Handlers{
		summaryService:  summaryService,
		settingsService: settingsService,
		exporter:        exporter,
		logger:          logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   "1.0.0",
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    response,
	})
}

// ListReports handles GET /api/tenants/:tenantID/reports?month=YYYY-MM
func (h *Handlers) ListReports(c *gin.Context) {
	tenantID := c.Param("tenantID")
	year, month, ok := h.bindMonth(c)
	if !ok {
		return
	}

	summary, err := h.summaryService.Monthly(c.Request.Context(), tenantID, year, month)
	if err != nil {
		h.logger.Error("Failed to build monthly summary",
			"tenant_id", tenantID, "error", err)
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to retrieve reports",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    summary,
	})
}

// DownloadSummary handles GET /api/tenants/:tenantID/summary.xlsx?month=YYYY-MM
func (h *Handlers) DownloadSummary(c *gin.Context) {
	tenantID := c.Param("tenantID")
	year, month, ok := h.bindMonth(c)
	if !ok {
		return
	}

	summary, err := h.summaryService.Monthly(c.Request.Context(), tenantID, year, month)
	if err != nil {
		h.logger.Error("Failed to build monthly summary",
			"tenant_id", tenantID, "error", err)
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to retrieve reports",
		})
		return
	}

	workbook, err := h.exporter.Export(summary)
	if err != nil {
		h.logger.Error("Failed to export workbook",
			"tenant_id", tenantID, "error", err)
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to export workbook",
		})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+h.exporter.Filename(summary)+`"`)
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		workbook)
}

// GetSettings handles GET /api/tenants/:tenantID/settings
func (h *Handlers) GetSettings(c *gin.Context) {
	tenantID := c.Param("tenantID")

	settings, err := h.settingsService.Get(c.Request.Context(), tenantID)
	if err != nil {
		h.logger.Error("Failed to load settings",
			"tenant_id", tenantID, "error", err)
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to retrieve settings",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    settings,
	})
}

// bindMonth parses the required month query parameter (YYYY-MM). It writes
// the error response itself and reports whether parsing succeeded.
func (h *Handlers) bindMonth(c *gin.Context) (int, time.Month, bool) {
	raw := c.Query("month")
	t, err := time.Parse("2006-01", raw)
	if err != nil {
		h.logger.Error("Invalid month parameter", "month", raw, "error", err)
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "month must be formatted as YYYY-MM",
		})
		return 0, 0, false
	}
	return t.Year(), t.Month(), true
}
