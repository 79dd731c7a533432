package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hadir-app/hadir-api/internal/models"
	"github.com/hadir-app/hadir-api/internal/service"
	appErrors "github.com/hadir-app/hadir-api/pkg/errors"
)

type attendanceServiceMock struct {
	checkInResp  *models.AttendanceRecord
	checkInErr   error
	checkOutResp *models.AttendanceRecord
	checkOutErr  error
	listResp     []models.AttendanceDetail
	listPage     *models.Pagination
	listErr      error
	lastCheckIn  service.CheckInRequest
	lastCheckOut service.CheckOutRequest
	lastList     service.ListRequest
}

func (m *attendanceServiceMock) CheckIn(ctx context.Context, req service.CheckInRequest) (*models.AttendanceRecord, error) {
	m.lastCheckIn = req
	return m.checkInResp, m.checkInErr
}

func (m *attendanceServiceMock) CheckOut(ctx context.Context, req service.CheckOutRequest) (*models.AttendanceRecord, error) {
	m.lastCheckOut = req
	return m.checkOutResp, m.checkOutErr
}

func (m *attendanceServiceMock) List(ctx context.Context, req service.ListRequest) ([]models.AttendanceDetail, *models.Pagination, error) {
	m.lastList = req
	return m.listResp, m.listPage, m.listErr
}

func TestAttendanceHandlerCheckInSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	checkIn := time.Date(2026, time.January, 5, 8, 30, 0, 0, time.UTC)
	mockSvc := &attendanceServiceMock{
		checkInResp: &models.AttendanceRecord{
			ID:         "att-1",
			EmployeeID: "emp-1",
			Status:     models.AttendanceStatusPresent,
			CheckIn:    &checkIn,
		},
	}
	handler := NewAttendanceHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/attendance/check-in", bytes.NewBufferString(`{"employeeId":"emp-1"}`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.CheckIn(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "emp-1", mockSvc.lastCheckIn.EmployeeID)

	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "att-1", envelope.Data["id"])
	assert.Equal(t, "PRESENT", envelope.Data["status"])
}

func TestAttendanceHandlerCheckInInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAttendanceHandler(&attendanceServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/attendance/check-in", bytes.NewBufferString(`{"employeeId":`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.CheckIn(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAttendanceHandlerCheckInConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &attendanceServiceMock{
		checkInErr: appErrors.Clone(appErrors.ErrConflict, "already checked in today"),
	}
	handler := NewAttendanceHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/attendance/check-in", bytes.NewBufferString(`{"employeeId":"emp-1"}`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.CheckIn(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already checked in today")
}

func TestAttendanceHandlerCheckOutSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &attendanceServiceMock{
		checkOutResp: &models.AttendanceRecord{ID: "att-1", EmployeeID: "emp-1"},
	}
	handler := NewAttendanceHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/attendance/check-out", bytes.NewBufferString(`{"id":"att-1"}`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.CheckOut(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "att-1", mockSvc.lastCheckOut.ID)
}

func TestAttendanceHandlerListQueryParsing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &attendanceServiceMock{
		listResp: []models.AttendanceDetail{},
		listPage: &models.Pagination{Page: 2, PageSize: 10, TotalCount: 35},
	}
	handler := NewAttendanceHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/attendance?employeeId=emp-1&status=present&dateFrom=2026-01-01&dateTo=2026-01-31&page=2&pageSize=10", nil)
	c.Request = req

	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "emp-1", mockSvc.lastList.EmployeeID)
	require.NotNil(t, mockSvc.lastList.Status)
	assert.Equal(t, "present", *mockSvc.lastList.Status)
	require.NotNil(t, mockSvc.lastList.DateFrom)
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), *mockSvc.lastList.DateFrom)
	require.NotNil(t, mockSvc.lastList.DateTo)
	assert.Equal(t, 2, mockSvc.lastList.Page)
	assert.Equal(t, 10, mockSvc.lastList.PageSize)

	var envelope struct {
		Data []interface{}          `json:"data"`
		Meta map[string]interface{} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	pagination, ok := envelope.Meta["pagination"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(35), pagination["total_count"])
}

func TestAttendanceHandlerListDefaults(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &attendanceServiceMock{listPage: &models.Pagination{Page: 1, PageSize: 50}}
	handler := NewAttendanceHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/attendance", nil)
	c.Request = req

	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, mockSvc.lastList.Page)
	assert.Equal(t, 50, mockSvc.lastList.PageSize)
	assert.Nil(t, mockSvc.lastList.Status)
	assert.Nil(t, mockSvc.lastList.DateFrom)
}

func TestAttendanceHandlerListBadDateFrom(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAttendanceHandler(&attendanceServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/attendance?dateFrom=01-01-2026", nil)
	c.Request = req

	handler.List(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "dateFrom")
}
