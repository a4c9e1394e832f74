package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prepvio_backend/internal/repositories"
	"prepvio_backend/internal/services"
	"prepvio_backend/internal/services/dto"
	"prepvio_backend/pkg/apperrors"
)

// fakeEmployeeService answers Create from canned data so the tests can
// exercise the HTTP envelope without a store.
type fakeEmployeeService struct {
	createErr error
}

func (f *fakeEmployeeService) Create(req *dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &dto.EmployeeResponse{
		ID:           "9a1f2c34-0000-4000-8000-000000000001",
		Name:         req.Name,
		Email:        req.Email,
		DepartmentID: req.DepartmentID,
		Position:     req.Position,
		Salary:       req.Salary,
	}, nil
}

func (f *fakeEmployeeService) GetByID(id string) (*dto.EmployeeResponse, error) {
	return nil, apperrors.ErrNotFound(errors.New("employee not found"))
}

func (f *fakeEmployeeService) List(criteria repositories.EmployeeFilter) (*dto.EmployeeListResponse, error) {
	return &dto.EmployeeListResponse{}, nil
}

func (f *fakeEmployeeService) Update(id string, req *dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	return nil, apperrors.ErrNotFound(errors.New("employee not found"))
}

func (f *fakeEmployeeService) Delete(id string) error { return nil }

func newEmployeeRouter(svc services.EmployeeService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewEmployeeHandler(NewBaseHandler(), svc)
	r.POST("/employees/add", h.Create)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestEmployeeCreate_EnvelopeAndID(t *testing.T) {
	r := newEmployeeRouter(&fakeEmployeeService{})

	w := postJSON(t, r, "/employees/add", gin.H{
		"name":         "Jordan Miles",
		"email":        "jordan@prepvio.io",
		"departmentId": "5e2a66d4-93b7-4a41-b6c8-2f37a9a1f001",
		"position":     "Support Engineer",
		"salary":       550000,
		"joiningDate":  "2026-02-01",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		Success  bool                 `json:"success"`
		Employee dto.EmployeeResponse `json:"employee"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.NotEmpty(t, body.Employee.ID)
	assert.Equal(t, "jordan@prepvio.io", body.Employee.Email)
}

func TestEmployeeCreate_ValidationEnvelope(t *testing.T) {
	r := newEmployeeRouter(&fakeEmployeeService{})

	// Missing email and department.
	w := postJSON(t, r, "/employees/add", gin.H{
		"name":        "Jordan Miles",
		"position":    "Support Engineer",
		"joiningDate": "2026-02-01",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code    string            `json:"code"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Contains(t, body.Error.Details, "email")
	assert.Contains(t, body.Error.Details, "departmentId")
}

func TestEmployeeCreate_ConflictEnvelope(t *testing.T) {
	r := newEmployeeRouter(&fakeEmployeeService{
		createErr: apperrors.ErrAlreadyExists(errors.New("duplicate email")),
	})

	w := postJSON(t, r, "/employees/add", gin.H{
		"name":         "Jordan Miles",
		"email":        "jordan@prepvio.io",
		"departmentId": "5e2a66d4-93b7-4a41-b6c8-2f37a9a1f001",
		"position":     "Support Engineer",
		"salary":       550000,
		"joiningDate":  "2026-02-01",
	})

	require.Equal(t, http.StatusConflict, w.Code)

	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, string(apperrors.CodeAlreadyExists), body.Error.Code)
}
