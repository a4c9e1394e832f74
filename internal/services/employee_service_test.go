package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prepvio_backend/internal/models"
	"prepvio_backend/internal/repositories"
	"prepvio_backend/internal/services/dto"
	"prepvio_backend/pkg/apperrors"
)

type fakeEmployeeRepo struct {
	employees map[string]*models.Employee
	nextID    int
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: map[string]*models.Employee{}}
}

func (f *fakeEmployeeRepo) Create(employee *models.Employee) error {
	for _, e := range f.employees {
		if e.Email == employee.Email {
			return repositories.ErrEmployeeAlreadyExists
		}
	}
	f.nextID++
	employee.ID = fmt.Sprintf("emp-%d", f.nextID)
	f.employees[employee.ID] = employee
	return nil
}

func (f *fakeEmployeeRepo) FindByID(id string) (*models.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return nil, repositories.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) FindWithFilter(criteria repositories.EmployeeFilter) ([]models.Employee, int64, error) {
	var out []models.Employee
	for _, e := range f.employees {
		if criteria.DepartmentID != "" && e.DepartmentID != criteria.DepartmentID {
			continue
		}
		out = append(out, *e)
	}
	return out, int64(len(out)), nil
}

func (f *fakeEmployeeRepo) Update(employee *models.Employee) error {
	if _, ok := f.employees[employee.ID]; !ok {
		return repositories.ErrEmployeeNotFound
	}
	f.employees[employee.ID] = employee
	return nil
}

func (f *fakeEmployeeRepo) Delete(id string) error {
	if _, ok := f.employees[id]; !ok {
		return repositories.ErrEmployeeNotFound
	}
	delete(f.employees, id)
	return nil
}

func (f *fakeEmployeeRepo) CountByDepartment(departmentID string) (int64, error) {
	var n int64
	for _, e := range f.employees {
		if e.DepartmentID == departmentID {
			n++
		}
	}
	return n, nil
}

type fakeDepartmentRepo struct {
	departments map[string]*models.Department
	nextID      int
}

func newFakeDepartmentRepo() *fakeDepartmentRepo {
	return &fakeDepartmentRepo{departments: map[string]*models.Department{}}
}

func (f *fakeDepartmentRepo) Create(department *models.Department) error {
	for _, d := range f.departments {
		if d.Name == department.Name {
			return repositories.ErrDepartmentAlreadyExists
		}
	}
	f.nextID++
	department.ID = fmt.Sprintf("dep-%d", f.nextID)
	f.departments[department.ID] = department
	return nil
}

func (f *fakeDepartmentRepo) FindByID(id string) (*models.Department, error) {
	d, ok := f.departments[id]
	if !ok {
		return nil, repositories.ErrDepartmentNotFound
	}
	return d, nil
}

func (f *fakeDepartmentRepo) FindAll() ([]models.Department, error) {
	var out []models.Department
	for _, d := range f.departments {
		out = append(out, *d)
	}
	return out, nil
}

func (f *fakeDepartmentRepo) Update(department *models.Department) error {
	if _, ok := f.departments[department.ID]; !ok {
		return repositories.ErrDepartmentNotFound
	}
	f.departments[department.ID] = department
	return nil
}

func (f *fakeDepartmentRepo) Delete(id string) error {
	if _, ok := f.departments[id]; !ok {
		return repositories.ErrDepartmentNotFound
	}
	delete(f.departments, id)
	return nil
}

func newEmployeeFixture(t *testing.T) (EmployeeService, *fakeEmployeeRepo, *fakeDepartmentRepo, string) {
	t.Helper()
	employees := newFakeEmployeeRepo()
	departments := newFakeDepartmentRepo()
	svc := NewEmployeeService(employees, departments)

	dep := &models.Department{Name: "Engineering"}
	require.NoError(t, departments.Create(dep))
	return svc, employees, departments, dep.ID
}

func TestEmployeeCreate(t *testing.T) {
	svc, _, _, depID := newEmployeeFixture(t)

	resp, err := svc.Create(&dto.CreateEmployeeRequest{
		Name:         "Jordan Lee",
		Email:        "jordan@prepvio.app",
		DepartmentID: depID,
		Position:     "Backend Engineer",
		Salary:       900000,
		JoiningDate:  "2025-02-01",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "Engineering", resp.Department)
	assert.Equal(t, "active", resp.Status)
}

func TestEmployeeCreate_DuplicateEmailRejected(t *testing.T) {
	svc, _, _, depID := newEmployeeFixture(t)

	req := &dto.CreateEmployeeRequest{
		Name:         "Jordan Lee",
		Email:        "jordan@prepvio.app",
		DepartmentID: depID,
		Position:     "Backend Engineer",
		JoiningDate:  "2025-02-01",
	}
	_, err := svc.Create(req)
	require.NoError(t, err)

	_, err = svc.Create(req)
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeAlreadyExists, appErr.Code)
}

func TestEmployeeCreate_UnknownDepartmentRejected(t *testing.T) {
	svc, _, _, _ := newEmployeeFixture(t)

	_, err := svc.Create(&dto.CreateEmployeeRequest{
		Name:         "Jordan Lee",
		Email:        "jordan@prepvio.app",
		DepartmentID: "missing",
		Position:     "Backend Engineer",
		JoiningDate:  "2025-02-01",
	})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.HTTPCode)
}

func TestEmployeeCreate_BadJoiningDate(t *testing.T) {
	svc, _, _, depID := newEmployeeFixture(t)

	_, err := svc.Create(&dto.CreateEmployeeRequest{
		Name:         "Jordan Lee",
		Email:        "jordan@prepvio.app",
		DepartmentID: depID,
		Position:     "Backend Engineer",
		JoiningDate:  "01/02/2025",
	})
	require.Error(t, err)
}

func TestEmployeeUpdate_PartialFields(t *testing.T) {
	svc, _, _, depID := newEmployeeFixture(t)
	created, err := svc.Create(&dto.CreateEmployeeRequest{
		Name:         "Jordan Lee",
		Email:        "jordan@prepvio.app",
		DepartmentID: depID,
		Position:     "Backend Engineer",
		Salary:       900000,
		JoiningDate:  "2025-02-01",
	})
	require.NoError(t, err)

	position := "Staff Engineer"
	updated, err := svc.Update(created.ID, &dto.UpdateEmployeeRequest{Position: &position})
	require.NoError(t, err)

	assert.Equal(t, "Staff Engineer", updated.Position)
	assert.Equal(t, "Jordan Lee", updated.Name)
	assert.Equal(t, int64(900000), updated.Salary)
}

func TestEmployeeDelete_ThenNotFound(t *testing.T) {
	svc, _, _, depID := newEmployeeFixture(t)
	created, err := svc.Create(&dto.CreateEmployeeRequest{
		Name:         "Jordan Lee",
		Email:        "jordan@prepvio.app",
		DepartmentID: depID,
		Position:     "Backend Engineer",
		JoiningDate:  "2025-02-01",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(created.ID))

	_, err = svc.GetByID(created.ID)
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.HTTPCode)
}
