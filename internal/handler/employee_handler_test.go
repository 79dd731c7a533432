package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hadir-app/hadir-api/internal/models"
	"github.com/hadir-app/hadir-api/internal/service"
	appErrors "github.com/hadir-app/hadir-api/pkg/errors"
)

type employeeServiceMock struct {
	listResp   []models.EmployeeWithCount
	listErr    error
	getResp    *models.EmployeeWithCount
	getErr     error
	createResp *models.Employee
	createErr  error
	updateResp *models.Employee
	updateErr  error
	deleteErr  error
	lastFilter service.EmployeeListRequest
	lastID     string
	lastCreate service.CreateEmployeeRequest
	lastUpdate service.UpdateEmployeeRequest
}

func (m *employeeServiceMock) List(ctx context.Context, req service.EmployeeListRequest) ([]models.EmployeeWithCount, error) {
	m.lastFilter = req
	return m.listResp, m.listErr
}

func (m *employeeServiceMock) Get(ctx context.Context, id string) (*models.EmployeeWithCount, error) {
	m.lastID = id
	return m.getResp, m.getErr
}

func (m *employeeServiceMock) Create(ctx context.Context, req service.CreateEmployeeRequest) (*models.Employee, error) {
	m.lastCreate = req
	return m.createResp, m.createErr
}

func (m *employeeServiceMock) Update(ctx context.Context, id string, req service.UpdateEmployeeRequest) (*models.Employee, error) {
	m.lastID = id
	m.lastUpdate = req
	return m.updateResp, m.updateErr
}

func (m *employeeServiceMock) Delete(ctx context.Context, id string) error {
	m.lastID = id
	return m.deleteErr
}

func TestEmployeeHandlerListFilters(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &employeeServiceMock{
		listResp: []models.EmployeeWithCount{{Employee: models.Employee{ID: "emp-1", FullName: "Budi Santoso"}}},
	}
	handler := NewEmployeeHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/employees?search=budi&jobTitle=Engineer&activeOnly=true", nil)
	c.Request = req

	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "budi", mockSvc.lastFilter.Search)
	assert.Equal(t, "Engineer", mockSvc.lastFilter.JobTitle)
	require.NotNil(t, mockSvc.lastFilter.ActiveOnly)
	assert.True(t, *mockSvc.lastFilter.ActiveOnly)
}

func TestEmployeeHandlerListBadActiveOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewEmployeeHandler(&employeeServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/employees?activeOnly=yes-please", nil)
	c.Request = req

	handler.List(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEmployeeHandlerGetNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &employeeServiceMock{getErr: appErrors.Clone(appErrors.ErrNotFound, "employee not found")}
	handler := NewEmployeeHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/employees/missing", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	handler.Get(c)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "missing", mockSvc.lastID)
}

func TestEmployeeHandlerCreateSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &employeeServiceMock{
		createResp: &models.Employee{ID: "emp-1", FullName: "Budi Santoso", Email: "budi@example.com"},
	}
	handler := NewEmployeeHandler(mockSvc)

	payload, _ := json.Marshal(service.CreateEmployeeRequest{
		FullName: "Budi Santoso",
		Email:    "budi@example.com",
		JobTitle: "Engineer",
		HireDate: "2024-03-01",
	})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/employees", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "budi@example.com", mockSvc.lastCreate.Email)

	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "emp-1", envelope.Data["id"])
}

func TestEmployeeHandlerCreateInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewEmployeeHandler(&employeeServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/employees", bytes.NewBufferString(`{"fullName":`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEmployeeHandlerUpdatePartial(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &employeeServiceMock{
		updateResp: &models.Employee{ID: "emp-1", JobTitle: "Staff Engineer"},
	}
	handler := NewEmployeeHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPut, "/employees/emp-1", bytes.NewBufferString(`{"jobTitle":"Staff Engineer"}`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "emp-1"}}

	handler.Update(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "emp-1", mockSvc.lastID)
	require.NotNil(t, mockSvc.lastUpdate.JobTitle)
	assert.Equal(t, "Staff Engineer", *mockSvc.lastUpdate.JobTitle)
	assert.Nil(t, mockSvc.lastUpdate.Email)
}

func TestEmployeeHandlerDelete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &employeeServiceMock{}
	handler := NewEmployeeHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodDelete, "/employees/emp-1", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "emp-1"}}

	handler.Delete(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "emp-1", mockSvc.lastID)
	assert.Contains(t, w.Body.String(), "employee deleted")
}
