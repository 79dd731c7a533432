package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hadir-app/hadir-api/internal/dto"
	"github.com/hadir-app/hadir-api/internal/models"
	"github.com/hadir-app/hadir-api/internal/service"
	appErrors "github.com/hadir-app/hadir-api/pkg/errors"
	"github.com/hadir-app/hadir-api/pkg/response"
)

type reportService interface {
	Monthly(ctx context.Context, year int, month time.Month, employeeID string) ([]dto.MonthlyReportRow, error)
}

type exportService interface {
	ExportMonthly(ctx context.Context, year int, month time.Month, format service.ReportFormat) (*service.ExportResult, error)
}

type holidayService interface {
	ListByMonth(ctx context.Context, year int, month time.Month) ([]models.PublicHoliday, error)
	Create(ctx context.Context, req service.CreateHolidayRequest) (*models.PublicHoliday, error)
}

// ReportArchiver persists rendered reports and serves them back through
// signed tokens.
type ReportArchiver interface {
	Archive(result *service.ExportResult) (string, error)
	Open(token string) (io.ReadCloser, string, string, error)
}

// ReportHandler exposes monthly report, report export and holiday endpoints.
type ReportHandler struct {
	reports  reportService
	exports  exportService
	holidays holidayService
	archive  ReportArchiver
	now      func() time.Time
}

// NewReportHandler constructs the handler. archive may be nil, which
// disables replayable download links.
func NewReportHandler(reports reportService, exports exportService, holidays holidayService, archive ReportArchiver) *ReportHandler {
	return &ReportHandler{reports: reports, exports: exports, holidays: holidays, archive: archive, now: time.Now}
}

// parsePeriod reads month/year query params, defaulting to the current
// month when absent.
func (h *ReportHandler) parsePeriod(c *gin.Context) (int, time.Month, error) {
	now := h.now()
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil || year < 1 {
		return 0, 0, appErrors.Clone(appErrors.ErrValidation, "invalid year")
	}
	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil || month < 1 || month > 12 {
		return 0, 0, appErrors.Clone(appErrors.ErrValidation, "invalid month, expected 1-12")
	}
	return year, time.Month(month), nil
}

// Monthly godoc
// @Summary Monthly per-employee attendance report
// @Tags Reports
// @Produce json
// @Param year query int false "Year (defaults to current)"
// @Param month query int false "Month 1-12 (defaults to current)"
// @Param employeeId query string false "Limit to one employee"
// @Success 200 {object} response.Envelope
// @Router /reports/monthly [get]
func (h *ReportHandler) Monthly(c *gin.Context) {
	year, month, err := h.parsePeriod(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	rows, err := h.reports.Monthly(c.Request.Context(), year, month, c.Query("employeeId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rows, "")
}

// Export godoc
// @Summary Download the monthly report as CSV or PDF
// @Tags Reports
// @Produce octet-stream
// @Param year query int false "Year (defaults to current)"
// @Param month query int false "Month 1-12 (defaults to current)"
// @Param format query string true "csv or pdf"
// @Success 200 {file} file
// @Router /reports/monthly/export [get]
func (h *ReportHandler) Export(c *gin.Context) {
	year, month, err := h.parsePeriod(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.exports.ExportMonthly(c.Request.Context(), year, month, service.ReportFormat(c.DefaultQuery("format", "csv")))
	if err != nil {
		response.Error(c, err)
		return
	}
	if h.archive != nil {
		if token, err := h.archive.Archive(result); err == nil {
			c.Header("X-Download-Token", token)
		}
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Content)
}

// Download godoc
// @Summary Fetch a previously exported report via a signed token
// @Tags Reports
// @Produce octet-stream
// @Param token path string true "Signed download token"
// @Success 200 {file} file
// @Router /reports/exports/{token} [get]
func (h *ReportHandler) Download(c *gin.Context) {
	if h.archive == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "report archive disabled"))
		return
	}
	file, contentType, name, err := h.archive.Open(c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close() //nolint:errcheck
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, file)
}

// Holidays godoc
// @Summary List public holidays within a month
// @Tags Reports
// @Produce json
// @Param year query int false "Year (defaults to current)"
// @Param month query int false "Month 1-12 (defaults to current)"
// @Success 200 {object} response.Envelope
// @Router /reports/holidays [get]
func (h *ReportHandler) Holidays(c *gin.Context) {
	year, month, err := h.parsePeriod(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	holidays, err := h.holidays.ListByMonth(c.Request.Context(), year, month)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, holidays, "")
}

// CreateHoliday godoc
// @Summary Register a public holiday
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body service.CreateHolidayRequest true "Holiday payload"
// @Success 201 {object} response.Envelope
// @Router /reports/holidays [post]
func (h *ReportHandler) CreateHoliday(c *gin.Context) {
	var req service.CreateHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid payload"))
		return
	}
	holiday, err := h.holidays.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, holiday, "holiday created")
}
