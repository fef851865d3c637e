package web

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"strconv"

	"github.com/kartikey1112/hrms-dashboard/internal/employee"
	"github.com/kartikey1112/hrms-dashboard/internal/leave"
	"github.com/kartikey1112/hrms-dashboard/internal/shared/apperror"
	"github.com/kartikey1112/hrms-dashboard/internal/shared/pagination"
	"github.com/kartikey1112/hrms-dashboard/internal/shared/response"
	"github.com/kartikey1112/hrms-dashboard/internal/shared/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded page templates for gin's HTML renderer.
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))
}

type EmployeeLister interface {
	List(ctx context.Context, q employee.ListQuery) (employee.ListResult, error)
	Options() employee.OptionsResponse
}

type LeaveLister interface {
	List(ctx context.Context, q leave.ListQuery) (leave.ListResult, error)
}

type Handler struct {
	employees EmployeeLister
	leaves    LeaveLister
	logger    *zap.Logger
}

func NewHandler(employees EmployeeLister, leaves LeaveLister, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("web.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("web.handler")
	}
	return &Handler{employees: employees, leaves: leaves, logger: l}
}

type pageData struct {
	Title string
	User  session.User
	Error string
}

func (h *Handler) base(c *gin.Context, title string) pageData {
	u, _ := session.UserFrom(c.Request.Context())
	return pageData{Title: title, User: u}
}

func (h *Handler) renderError(c *gin.Context, data pageData, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("page data unavailable",
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", httpErr.Status),
		zap.String("message", httpErr.Message),
	)
	data.Error = httpErr.Message
	c.HTML(httpErr.Status, "error", data)
}

func (h *Handler) Login(c *gin.Context) {
	c.HTML(http.StatusOK, "login", h.base(c, "Sign in"))
}

type overviewData struct {
	pageData
	Employees       int64
	ActiveEmployees int64
	PendingLeaves   int64
}

func (h *Handler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	data := overviewData{pageData: h.base(c, "Dashboard")}
	one := pagination.Params{Page: 1, Limit: 1}

	all, err := h.employees.List(ctx, employee.ListQuery{Params: one})
	if err != nil {
		h.renderError(c, data.pageData, err)
		return
	}
	active, err := h.employees.List(ctx, employee.ListQuery{Status: employee.StatusActive, Params: one})
	if err != nil {
		h.renderError(c, data.pageData, err)
		return
	}
	pending, err := h.leaves.List(ctx, leave.ListQuery{Status: leave.StatusPending, Params: one})
	if err != nil {
		h.renderError(c, data.pageData, err)
		return
	}

	data.Employees = all.Total
	data.ActiveEmployees = active.Total
	data.PendingLeaves = pending.Total
	c.HTML(http.StatusOK, "dashboard", data)
}

// pager keeps the current filters in the previous/next links.
type pager struct {
	response.PageMeta
	PrevURL string
	NextURL string
}

func newPager(c *gin.Context, meta response.PageMeta) pager {
	link := func(page int) string {
		q := c.Request.URL.Query()
		q.Set("page", strconv.Itoa(page))
		return c.Request.URL.Path + "?" + q.Encode()
	}
	p := pager{PageMeta: meta}
	if meta.Page > 1 {
		p.PrevURL = link(meta.Page - 1)
	}
	if meta.HasMore {
		p.NextURL = link(meta.Page + 1)
	}
	return p
}

type directoryData struct {
	pageData
	Query     employee.ListQuery
	Options   employee.OptionsResponse
	Employees []employee.EmployeeResponse
	Pager     pager
}

func (h *Handler) EmployeeDirectory(c *gin.Context) {
	p := pagination.Parse(c.Query("page"), c.Query("limit"))
	data := directoryData{
		pageData: h.base(c, "Employee Directory"),
		Query: employee.ListQuery{
			Search:     c.Query("search"),
			Department: c.Query("department"),
			Status:     c.Query("status"),
			Params:     p,
		},
		Options: h.employees.Options(),
	}

	res, err := h.employees.List(c.Request.Context(), data.Query)
	if err != nil {
		h.renderError(c, data.pageData, err)
		return
	}

	data.Employees = res.Employees
	data.Pager = newPager(c, response.NewPageMeta(res.Total, p.Page, p.Limit))
	c.HTML(http.StatusOK, "employee-directory", data)
}

type leavesData struct {
	pageData
	Query    leave.ListQuery
	Statuses []string
	Leaves   []leave.LeaveResponse
	Pager    pager
}

func (h *Handler) LeaveRequests(c *gin.Context) {
	p := pagination.Parse(c.Query("page"), c.Query("limit"))
	data := leavesData{
		pageData: h.base(c, "Leave Requests"),
		Query: leave.ListQuery{
			Search: c.Query("search"),
			Status: c.Query("status"),
			Params: p,
		},
		Statuses: leave.Statuses,
	}

	res, err := h.leaves.List(c.Request.Context(), data.Query)
	if err != nil {
		h.renderError(c, data.pageData, err)
		return
	}

	data.Leaves = res.Leaves
	data.Pager = newPager(c, response.NewPageMeta(res.Total, p.Page, p.Limit))
	c.HTML(http.StatusOK, "leave-requests", data)
}

func (h *Handler) Profile(c *gin.Context) {
	c.HTML(http.StatusOK, "profile", h.base(c, "Profile"))
}
