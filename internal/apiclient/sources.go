package apiclient

import (
	"context"

	"github.com/kartikey1112/hrms-dashboard/internal/employee"
	"github.com/kartikey1112/hrms-dashboard/internal/leave"
	"github.com/kartikey1112/hrms-dashboard/internal/listview"
)

// EmployeeSource backs the employee directory list view.
type EmployeeSource struct {
	Client *Client
}

var (
	_ listview.Source[employee.EmployeeResponse, employee.Draft]  = EmployeeSource{}
	_ listview.Updater[employee.EmployeeResponse, employee.Draft] = EmployeeSource{}
	_ listview.Deleter                                            = EmployeeSource{}
	_ listview.Source[leave.LeaveResponse, leave.Draft]           = LeaveSource{}
	_ listview.StatusSetter[leave.LeaveResponse]                  = LeaveSource{}
)

func (s EmployeeSource) List(ctx context.Context, q listview.Query) (listview.Page[employee.EmployeeResponse], error) {
	return s.Client.ListEmployees(ctx, q)
}

func (s EmployeeSource) Create(ctx context.Context, d employee.Draft) (employee.EmployeeResponse, error) {
	return s.Client.CreateEmployee(ctx, d.CreateRequest())
}

func (s EmployeeSource) Update(ctx context.Context, id string, d employee.Draft) (employee.EmployeeResponse, error) {
	return s.Client.UpdateEmployee(ctx, id, d.UpdateRequest())
}

func (s EmployeeSource) Delete(ctx context.Context, id string) error {
	return s.Client.DeleteEmployee(ctx, id)
}

func EmployeeFacets(e employee.EmployeeResponse) listview.Filters {
	return listview.Filters{Department: e.Department, Status: e.Status}
}

// LeaveSource backs the leave request list view. Requests are filed and
// then approved or rejected; they are never edited or deleted.
type LeaveSource struct {
	Client *Client
}

func (s LeaveSource) List(ctx context.Context, q listview.Query) (listview.Page[leave.LeaveResponse], error) {
	return s.Client.ListLeaves(ctx, q)
}

func (s LeaveSource) Create(ctx context.Context, d leave.Draft) (leave.LeaveResponse, error) {
	return s.Client.CreateLeave(ctx, d.CreateRequest())
}

func LeaveFacets(l leave.LeaveResponse) listview.Filters {
	return listview.Filters{Status: l.Status}
}

func (s LeaveSource) SetStatus(ctx context.Context, id, status string) (leave.LeaveResponse, error) {
	return s.Client.UpdateLeaveStatus(ctx, id, status)
}
