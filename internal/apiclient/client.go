// Package apiclient talks to the HRMS HTTP API on behalf of terminal
// clients. It identifies itself as a CLI client so the server answers with
// tokens in the body instead of cookies.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kartikey1112/hrms-dashboard/internal/auth"
	"github.com/kartikey1112/hrms-dashboard/internal/employee"
	"github.com/kartikey1112/hrms-dashboard/internal/leave"
	"github.com/kartikey1112/hrms-dashboard/internal/listview"
	"github.com/kartikey1112/hrms-dashboard/internal/middleware"
	"github.com/kartikey1112/hrms-dashboard/internal/shared/request"
	"github.com/kartikey1112/hrms-dashboard/internal/shared/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api: %d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("api: %d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  *zap.Logger
}

func New(baseURL, accessToken string, httpClient *http.Client, logger ...*zap.Logger) *Client {
	l := zap.L().Named("apiclient")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("apiclient")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	// Sign-out answers with a redirect meant for browsers.
	noRedirect := *httpClient
	noRedirect.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   accessToken,
		http:    &noRedirect,
		logger:  l,
	}
}

func (c *Client) WithToken(accessToken string) *Client {
	cp := *c
	cp.token = accessToken
	return &cp
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any, header http.Header) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Client-Type", string(request.ClientCLI))
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	for k, v := range header {
		req.Header[k] = v
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("api request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var payload response.ErrorBody
		_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&payload)
		if payload.Error == "" {
			payload.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Code: payload.Code, Message: payload.Error}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent || resp.StatusCode >= 300 {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func listQuery(q listview.Query) url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Department != "" {
		v.Set("department", q.Department)
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	return v
}

func toPage[T any](items []T, meta response.PageMeta) listview.Page[T] {
	return listview.Page[T]{
		Items:      items,
		Total:      meta.Total,
		Page:       meta.Page,
		Limit:      meta.Limit,
		TotalPages: meta.TotalPages,
		HasMore:    meta.HasMore,
	}
}

func idempotent() http.Header {
	return http.Header{middleware.IdempotencyHeader: []string{uuid.NewString()}}
}

// --- Auth ---

func (c *Client) Login(ctx context.Context, email, password string) (auth.SessionResponse, error) {
	var out auth.SessionResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, auth.LoginRequest{Email: email, Password: password}, &out, nil)
	return out, err
}

func (c *Client) Refresh(ctx context.Context, refreshToken string) (auth.SessionResponse, error) {
	var out auth.SessionResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/refresh", nil, auth.RefreshRequest{RefreshToken: refreshToken}, &out, nil)
	return out, err
}

func (c *Client) SignOut(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/signout", nil, nil, nil, nil)
}

func (c *Client) Me(ctx context.Context) (auth.ProfileResponse, error) {
	var out auth.ProfileResponse
	err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, nil, &out, nil)
	return out, err
}

func (c *Client) UpdateProfile(ctx context.Context, name string) (auth.ProfileResponse, error) {
	var out auth.ProfileResponse
	err := c.do(ctx, http.MethodPut, "/api/auth/profile", nil, auth.UpdateProfileRequest{Name: name}, &out, nil)
	return out, err
}

// --- Employees ---

type employeePage struct {
	Employees []employee.EmployeeResponse `json:"employees"`
	response.PageMeta
}

func (c *Client) ListEmployees(ctx context.Context, q listview.Query) (listview.Page[employee.EmployeeResponse], error) {
	var out employeePage
	if err := c.do(ctx, http.MethodGet, "/api/employees", listQuery(q), nil, &out, nil); err != nil {
		return listview.Page[employee.EmployeeResponse]{}, err
	}
	return toPage(out.Employees, out.PageMeta), nil
}

func (c *Client) EmployeeOptions(ctx context.Context) (employee.OptionsResponse, error) {
	var out employee.OptionsResponse
	err := c.do(ctx, http.MethodGet, "/api/employees/options", nil, nil, &out, nil)
	return out, err
}

func (c *Client) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	var out employee.EmployeeResponse
	err := c.do(ctx, http.MethodPost, "/api/employees", nil, req, &out, idempotent())
	return out, err
}

func (c *Client) UpdateEmployee(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	var out employee.EmployeeResponse
	err := c.do(ctx, http.MethodPut, "/api/employees/"+url.PathEscape(id), nil, req, &out, nil)
	return out, err
}

func (c *Client) DeleteEmployee(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/employees/"+url.PathEscape(id), nil, nil, nil, nil)
}

// --- Leaves ---

type leavePage struct {
	Leaves []leave.LeaveResponse `json:"leaves"`
	response.PageMeta
}

func (c *Client) ListLeaves(ctx context.Context, q listview.Query) (listview.Page[leave.LeaveResponse], error) {
	var out leavePage
	q.Department = ""
	if err := c.do(ctx, http.MethodGet, "/api/leaves", listQuery(q), nil, &out, nil); err != nil {
		return listview.Page[leave.LeaveResponse]{}, err
	}
	return toPage(out.Leaves, out.PageMeta), nil
}

func (c *Client) CreateLeave(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	var out leave.LeaveResponse
	err := c.do(ctx, http.MethodPost, "/api/leaves", nil, req, &out, idempotent())
	return out, err
}

func (c *Client) UpdateLeaveStatus(ctx context.Context, id, status string) (leave.LeaveResponse, error) {
	var out leave.LeaveResponse
	err := c.do(ctx, http.MethodPatch, "/api/leaves/"+url.PathEscape(id)+"/status", nil, leave.UpdateStatusRequest{Status: status}, &out, nil)
	return out, err
}
