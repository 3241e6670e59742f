package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/alerthe/alerthe-server/internal/service/reporting"
)

// ReportHandler exposes the monthly PDF export.
type ReportHandler struct {
	svc    *reporting.Service
	loc    *time.Location
	logger *zap.Logger
}

// NewReportHandler constructs the HTTP handler adapter for report exports.
func NewReportHandler(svc *reporting.Service, loc *time.Location, logger *zap.Logger) *ReportHandler {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{svc: svc, loc: loc, logger: logger}
}

// ExportMonthly streams the PDF for the requested month; without query
// parameters it targets the current month in report local time.
func (h *ReportHandler) ExportMonthly(c *gin.Context) {
	year, month, err := h.targetMonth(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.svc.GenerateMonthlyReport(c.Request.Context(), year, month)
	if err != nil {
		switch {
		case errors.Is(err, reporting.ErrSourceUnavailable):
			h.logger.Error("incident source unavailable", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "incident source unavailable"})
		case errors.Is(err, reporting.ErrRenderFailure):
			h.logger.Error("report rendering failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "report rendering failed"})
		default:
			h.logger.Error("report generation failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "report generation failed"})
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename))
	c.Data(http.StatusOK, "application/pdf", report.Content)
}

func (h *ReportHandler) targetMonth(c *gin.Context) (int, time.Month, error) {
	now := time.Now().In(h.loc)
	year, month := now.Year(), now.Month()

	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 2000 || parsed > 9999 {
			return 0, 0, fmt.Errorf("invalid year %q", raw)
		}
		year = parsed
	}
	if raw := c.Query("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 12 {
			return 0, 0, fmt.Errorf("invalid month %q", raw)
		}
		month = time.Month(parsed)
	}

	return year, month, nil
}
