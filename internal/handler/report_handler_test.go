package handler

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hadir-app/hadir-api/internal/dto"
	"github.com/hadir-app/hadir-api/internal/models"
	"github.com/hadir-app/hadir-api/internal/service"
	appErrors "github.com/hadir-app/hadir-api/pkg/errors"
)

type reportServiceMock struct {
	rows      []dto.MonthlyReportRow
	err       error
	lastYear  int
	lastMonth time.Month
	lastEmpID string
}

func (m *reportServiceMock) Monthly(ctx context.Context, year int, month time.Month, employeeID string) ([]dto.MonthlyReportRow, error) {
	m.lastYear = year
	m.lastMonth = month
	m.lastEmpID = employeeID
	return m.rows, m.err
}

type exportServiceMock struct {
	result     *service.ExportResult
	err        error
	lastFormat service.ReportFormat
}

func (m *exportServiceMock) ExportMonthly(ctx context.Context, year int, month time.Month, format service.ReportFormat) (*service.ExportResult, error) {
	m.lastFormat = format
	return m.result, m.err
}

type holidayServiceMock struct {
	listResp   []models.PublicHoliday
	listErr    error
	createResp *models.PublicHoliday
	createErr  error
	lastCreate service.CreateHolidayRequest
}

func (m *holidayServiceMock) ListByMonth(ctx context.Context, year int, month time.Month) ([]models.PublicHoliday, error) {
	return m.listResp, m.listErr
}

func (m *holidayServiceMock) Create(ctx context.Context, req service.CreateHolidayRequest) (*models.PublicHoliday, error) {
	m.lastCreate = req
	return m.createResp, m.createErr
}

type archiverMock struct {
	token       string
	archiveErr  error
	content     string
	contentType string
	name        string
	openErr     error
	lastToken   string
	archived    *service.ExportResult
}

func (m *archiverMock) Archive(result *service.ExportResult) (string, error) {
	m.archived = result
	return m.token, m.archiveErr
}

func (m *archiverMock) Open(token string) (io.ReadCloser, string, string, error) {
	m.lastToken = token
	if m.openErr != nil {
		return nil, "", "", m.openErr
	}
	return io.NopCloser(strings.NewReader(m.content)), m.contentType, m.name, nil
}

func newReportFixture(reports *reportServiceMock, exports *exportServiceMock, holidays *holidayServiceMock, archive ReportArchiver) *ReportHandler {
	handler := NewReportHandler(reports, exports, holidays, archive)
	handler.now = func() time.Time {
		return time.Date(2026, time.January, 15, 9, 0, 0, 0, time.UTC)
	}
	return handler
}

func TestReportHandlerMonthlyDefaultsToCurrentPeriod(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reports := &reportServiceMock{rows: []dto.MonthlyReportRow{{EmployeeID: "emp-1", Percentage: 95}}}
	handler := newReportFixture(reports, &exportServiceMock{}, &holidayServiceMock{}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/reports/monthly", nil)
	c.Request = req

	handler.Monthly(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2026, reports.lastYear)
	assert.Equal(t, time.January, reports.lastMonth)
	assert.Empty(t, reports.lastEmpID)
}

func TestReportHandlerMonthlyExplicitPeriod(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reports := &reportServiceMock{}
	handler := newReportFixture(reports, &exportServiceMock{}, &holidayServiceMock{}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/reports/monthly?year=2025&month=12&employeeId=emp-1", nil)
	c.Request = req

	handler.Monthly(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2025, reports.lastYear)
	assert.Equal(t, time.December, reports.lastMonth)
	assert.Equal(t, "emp-1", reports.lastEmpID)
}

func TestReportHandlerMonthlyInvalidMonth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newReportFixture(&reportServiceMock{}, &exportServiceMock{}, &holidayServiceMock{}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/reports/monthly?month=13", nil)
	c.Request = req

	handler.Monthly(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid month")
}

func TestReportHandlerExportCSV(t *testing.T) {
	gin.SetMode(gin.TestMode)
	exports := &exportServiceMock{
		result: &service.ExportResult{
			Content:     []byte("Name,Present\nBudi,20\n"),
			ContentType: "text/csv",
			Filename:    "attendance-report-2026-01.csv",
		},
	}
	archive := &archiverMock{token: "signed-token"}
	handler := newReportFixture(&reportServiceMock{}, exports, &holidayServiceMock{}, archive)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/reports/monthly/export?format=csv", nil)
	c.Request = req

	handler.Export(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, service.FormatCSV, exports.lastFormat)
	assert.Equal(t, `attachment; filename="attendance-report-2026-01.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "signed-token", w.Header().Get("X-Download-Token"))
	assert.Equal(t, "Name,Present\nBudi,20\n", w.Body.String())
	require.NotNil(t, archive.archived)
	assert.Equal(t, "attendance-report-2026-01.csv", archive.archived.Filename)
}

func TestReportHandlerExportWithoutArchive(t *testing.T) {
	gin.SetMode(gin.TestMode)
	exports := &exportServiceMock{
		result: &service.ExportResult{Content: []byte("%PDF-1.3"), ContentType: "application/pdf", Filename: "attendance-report-2026-01.pdf"},
	}
	handler := newReportFixture(&reportServiceMock{}, exports, &holidayServiceMock{}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/reports/monthly/export?format=pdf", nil)
	c.Request = req

	handler.Export(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("X-Download-Token"))
}

func TestReportHandlerExportUnsupportedFormat(t *testing.T) {
	gin.SetMode(gin.TestMode)
	exports := &exportServiceMock{err: appErrors.Clone(appErrors.ErrValidation, "unsupported format, expected csv or pdf")}
	handler := newReportFixture(&reportServiceMock{}, exports, &holidayServiceMock{}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/reports/monthly/export?format=xlsx", nil)
	c.Request = req

	handler.Export(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReportHandlerDownload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	archive := &archiverMock{
		content:     "Name,Present\n",
		contentType: "text/csv",
		name:        "attendance-report-2026-01.csv",
	}
	handler := newReportFixture(&reportServiceMock{}, &exportServiceMock{}, &holidayServiceMock{}, archive)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/reports/exports/signed-token", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "token", Value: "signed-token"}}

	handler.Download(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "signed-token", archive.lastToken)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Equal(t, "Name,Present\n", w.Body.String())
}

func TestReportHandlerDownloadInvalidToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	archive := &archiverMock{openErr: appErrors.Clone(appErrors.ErrValidation, "invalid or expired download token")}
	handler := newReportFixture(&reportServiceMock{}, &exportServiceMock{}, &holidayServiceMock{}, archive)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/reports/exports/bogus", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "token", Value: "bogus"}}

	handler.Download(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReportHandlerDownloadArchiveDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newReportFixture(&reportServiceMock{}, &exportServiceMock{}, &holidayServiceMock{}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/reports/exports/any", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "token", Value: "any"}}

	handler.Download(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestReportHandlerHolidays(t *testing.T) {
	gin.SetMode(gin.TestMode)
	holidays := &holidayServiceMock{
		listResp: []models.PublicHoliday{{ID: "hol-1", Name: "New Year"}},
	}
	handler := newReportFixture(&reportServiceMock{}, &exportServiceMock{}, holidays, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/reports/holidays?year=2026&month=1", nil)
	c.Request = req

	handler.Holidays(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "New Year")
}

func TestReportHandlerCreateHoliday(t *testing.T) {
	gin.SetMode(gin.TestMode)
	holidays := &holidayServiceMock{
		createResp: &models.PublicHoliday{ID: "hol-1", Name: "Independence Day"},
	}
	handler := newReportFixture(&reportServiceMock{}, &exportServiceMock{}, holidays, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/reports/holidays", bytes.NewBufferString(`{"date":"2026-08-17","name":"Independence Day","national":true}`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.CreateHoliday(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "2026-08-17", holidays.lastCreate.Date)
	assert.True(t, holidays.lastCreate.National)
}

func TestReportHandlerCreateHolidayInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newReportFixture(&reportServiceMock{}, &exportServiceMock{}, &holidayServiceMock{}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/reports/holidays", bytes.NewBufferString(`{"date":`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.CreateHoliday(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
