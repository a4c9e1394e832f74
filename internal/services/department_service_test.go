package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prepvio_backend/internal/models"
	"prepvio_backend/internal/repositories"
	"prepvio_backend/internal/services/dto"
	"prepvio_backend/pkg/apperrors"
)

func newDepartmentFixture(t *testing.T) (DepartmentService, *fakeEmployeeRepo, *fakeDepartmentRepo) {
	t.Helper()
	employees := newFakeEmployeeRepo()
	departments := newFakeDepartmentRepo()
	return NewDepartmentService(departments, employees), employees, departments
}

func TestDepartmentCreate_DuplicateNameRejected(t *testing.T) {
	svc, _, _ := newDepartmentFixture(t)

	_, err := svc.Create(&dto.CreateDepartmentRequest{Name: "Sales"})
	require.NoError(t, err)

	_, err = svc.Create(&dto.CreateDepartmentRequest{Name: "Sales"})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeAlreadyExists, appErr.Code)
}

func TestDepartmentEmployeeCount_RecomputedPerRead(t *testing.T) {
	svc, employees, _ := newDepartmentFixture(t)

	created, err := svc.Create(&dto.CreateDepartmentRequest{Name: "Support"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), created.EmployeeCount)

	require.NoError(t, employees.Create(&models.Employee{Email: "a@prepvio.app", DepartmentID: created.ID}))
	require.NoError(t, employees.Create(&models.Employee{Email: "b@prepvio.app", DepartmentID: created.ID}))

	got, err := svc.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.EmployeeCount)
}

func TestDepartmentDelete_DoesNotCascade(t *testing.T) {
	svc, employees, _ := newDepartmentFixture(t)

	created, err := svc.Create(&dto.CreateDepartmentRequest{Name: "Marketing"})
	require.NoError(t, err)
	require.NoError(t, employees.Create(&models.Employee{Email: "c@prepvio.app", DepartmentID: created.ID}))

	require.NoError(t, svc.Delete(created.ID))

	// The employee survives with its dangling reference.
	remaining, _, err := employees.FindWithFilter(repositories.EmployeeFilter{DepartmentID: created.ID})
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, created.ID, remaining[0].DepartmentID)

	// The department itself is gone.
	_, err = svc.GetByID(created.ID)
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.HTTPCode)
}

func TestDepartmentDelete_MissingIs404(t *testing.T) {
	svc, _, _ := newDepartmentFixture(t)

	err := svc.Delete("missing")
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.HTTPCode)
}
