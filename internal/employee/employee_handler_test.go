package employee_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kartikey1112/hrms-dashboard/internal/employee"
	employeeerrors "github.com/kartikey1112/hrms-dashboard/internal/employee/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeService struct {
	CreateFn  func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error)
	ListFn    func(ctx context.Context, q employee.ListQuery) (employee.ListResult, error)
	GetByIDFn func(ctx context.Context, id string) (employee.EmployeeResponse, error)
	UpdateFn  func(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error)
	DeleteFn  func(ctx context.Context, id string) error
}

func (f *fakeEmployeeService) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.CreateFn(ctx, req)
}
func (f *fakeEmployeeService) List(ctx context.Context, q employee.ListQuery) (employee.ListResult, error) {
	return f.ListFn(ctx, q)
}
func (f *fakeEmployeeService) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeEmployeeService) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.UpdateFn(ctx, id, req)
}
func (f *fakeEmployeeService) Delete(ctx context.Context, id string) error {
	return f.DeleteFn(ctx, id)
}
func (f *fakeEmployeeService) Options() employee.OptionsResponse {
	return employee.OptionsResponse{
		Departments: employee.Departments,
		Roles:       employee.Roles,
		Statuses:    employee.Statuses,
	}
}

func setupRouter(h *employee.Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/employees", h.List)
	r.POST("/api/employees", h.Create)
	r.GET("/api/employees/options", h.Options)
	r.GET("/api/employees/:id", h.GetByID)
	r.PUT("/api/employees/:id", h.Update)
	r.DELETE("/api/employees/:id", h.Delete)
	return r
}

func serve(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

func TestEmployeeHandler_List(t *testing.T) {
	t.Run("success - envelope and pagination", func(t *testing.T) {
		svc := &fakeEmployeeService{
			ListFn: func(_ context.Context, q employee.ListQuery) (employee.ListResult, error) {
				assert.Equal(t, "jo", q.Search)
				assert.Equal(t, "Engineering", q.Department)
				assert.Equal(t, "", q.Status)
				assert.Equal(t, 2, q.Page)
				assert.Equal(t, 20, q.Limit)
				return employee.ListResult{
					Employees: []employee.EmployeeResponse{{ID: uuid.NewString(), Name: "John"}},
					Total:     45,
				}, nil
			},
		}
		r := setupRouter(employee.NewHandler(svc))

		w := serve(r, http.MethodGet, "/api/employees?page=2&search=jo&department=Engineering", "")

		require.Equal(t, http.StatusOK, w.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Len(t, body["employees"], 1)
		assert.EqualValues(t, 2, body["page"])
		assert.EqualValues(t, 20, body["limit"])
		assert.EqualValues(t, 45, body["total"])
		assert.EqualValues(t, 3, body["totalPages"])
		assert.Equal(t, true, body["hasMore"])
	})

	t.Run("success - malformed paging clamps to one and empty list is []", func(t *testing.T) {
		svc := &fakeEmployeeService{
			ListFn: func(_ context.Context, q employee.ListQuery) (employee.ListResult, error) {
				assert.Equal(t, 1, q.Page)
				assert.Equal(t, 1, q.Limit)
				return employee.ListResult{}, nil
			},
		}
		r := setupRouter(employee.NewHandler(svc))

		w := serve(r, http.MethodGet, "/api/employees?page=abc&limit=-5", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t,
			`{"employees":[],"page":1,"limit":1,"total":0,"totalPages":0,"hasMore":false}`,
			w.Body.String(),
		)
	})

	t.Run("negative - upstream failure", func(t *testing.T) {
		svc := &fakeEmployeeService{
			ListFn: func(context.Context, employee.ListQuery) (employee.ListResult, error) {
				return employee.ListResult{}, employeeerrors.Query(errors.New("connection refused"))
			},
		}
		r := setupRouter(employee.NewHandler(svc))

		w := serve(r, http.MethodGet, "/api/employees", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), `"error":"connection refused"`)
	})
}

func TestEmployeeHandler_Create(t *testing.T) {
	t.Run("success - returns created record with 200", func(t *testing.T) {
		id := uuid.NewString()
		svc := &fakeEmployeeService{
			CreateFn: func(_ context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				assert.Equal(t, "John Doe", req.Name)
				return employee.EmployeeResponse{ID: id, Name: req.Name, Email: req.Email, Status: employee.StatusActive}, nil
			},
		}
		r := setupRouter(employee.NewHandler(svc))

		body := `{"name":"John Doe","email":"john@acme.io","department":"Engineering","role":"Developer"}`
		w := serve(r, http.MethodPost, "/api/employees", body)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), id)
	})

	t.Run("negative - invalid email", func(t *testing.T) {
		r := setupRouter(employee.NewHandler(&fakeEmployeeService{}))

		body := `{"name":"John","email":"not-an-email","department":"Engineering","role":"Developer"}`
		w := serve(r, http.MethodPost, "/api/employees", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	})

	t.Run("negative - unknown department", func(t *testing.T) {
		r := setupRouter(employee.NewHandler(&fakeEmployeeService{}))

		body := `{"name":"John","email":"john@acme.io","department":"Space","role":"Developer"}`
		w := serve(r, http.MethodPost, "/api/employees", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("negative - duplicate email", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(context.Context, employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeAlreadyExists
			},
		}
		r := setupRouter(employee.NewHandler(svc))

		body := `{"name":"John","email":"john@acme.io","department":"Engineering","role":"Developer"}`
		w := serve(r, http.MethodPost, "/api/employees", body)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestEmployeeHandler_GetUpdateDelete(t *testing.T) {
	id := uuid.NewString()

	t.Run("success - get by id", func(t *testing.T) {
		svc := &fakeEmployeeService{
			GetByIDFn: func(_ context.Context, got string) (employee.EmployeeResponse, error) {
				assert.Equal(t, id, got)
				return employee.EmployeeResponse{ID: id, Name: "John"}, nil
			},
		}
		w := serve(setupRouter(employee.NewHandler(svc)), http.MethodGet, "/api/employees/"+id, "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("negative - get unknown id", func(t *testing.T) {
		svc := &fakeEmployeeService{
			GetByIDFn: func(context.Context, string) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
			},
		}
		w := serve(setupRouter(employee.NewHandler(svc)), http.MethodGet, "/api/employees/"+id, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("success - update", func(t *testing.T) {
		svc := &fakeEmployeeService{
			UpdateFn: func(_ context.Context, got string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
				assert.Equal(t, id, got)
				return employee.EmployeeResponse{ID: id, Name: req.Name, Status: req.Status}, nil
			},
		}
		body := `{"name":"Jane","email":"jane@acme.io","department":"HR","role":"Lead","status":"Inactive"}`
		w := serve(setupRouter(employee.NewHandler(svc)), http.MethodPut, "/api/employees/"+id, body)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"Inactive"`)
	})

	t.Run("negative - update missing status", func(t *testing.T) {
		body := `{"name":"Jane","email":"jane@acme.io","department":"HR","role":"Lead"}`
		w := serve(setupRouter(employee.NewHandler(&fakeEmployeeService{})), http.MethodPut, "/api/employees/"+id, body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("success - delete", func(t *testing.T) {
		svc := &fakeEmployeeService{
			DeleteFn: func(context.Context, string) error { return nil },
		}
		w := serve(setupRouter(employee.NewHandler(svc)), http.MethodDelete, "/api/employees/"+id, "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"deleted":true}`, w.Body.String())
	})
}

func TestEmployeeHandler_Options(t *testing.T) {
	w := serve(setupRouter(employee.NewHandler(&fakeEmployeeService{})), http.MethodGet, "/api/employees/options", "")

	require.Equal(t, http.StatusOK, w.Code)
	var body employee.OptionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body.Departments, "Legal")
	assert.Contains(t, body.Roles, "Junior")
	assert.Equal(t, []string{"Active", "Inactive"}, body.Statuses)
}
