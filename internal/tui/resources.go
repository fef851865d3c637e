package tui

import (
	"github.com/kartikey1112/hrms-dashboard/internal/apiclient"
	"github.com/kartikey1112/hrms-dashboard/internal/employee"
	"github.com/kartikey1112/hrms-dashboard/internal/leave"
	"github.com/kartikey1112/hrms-dashboard/internal/listview"

	"go.uber.org/zap"
)

// NewEmployeeList builds the directory view. Filter values and form choices
// come from opts, normally fetched from the options endpoint.
func NewEmployeeList(
	source listview.Source[employee.EmployeeResponse, employee.Draft],
	opts employee.OptionsResponse,
	theme Theme,
	logger *zap.Logger,
) *List[employee.EmployeeResponse, employee.Draft] {
	fields := make([]FormField[employee.Draft], 0, len(employee.FormFields))
	for _, f := range employee.FormFields {
		fields = append(fields, FormField[employee.Draft]{
			Label:   f.String(),
			Choices: f.Choices(opts),
			Get:     func(d employee.Draft) string { return d.Get(f) },
			Set:     func(d *employee.Draft, v string) { d.Set(f, v) },
		})
	}

	return NewList(ListConfig[employee.EmployeeResponse, employee.Draft]{
		Title:  "Employee Directory",
		Source: source,
		Columns: []Column[employee.EmployeeResponse]{
			{Title: "Name", Width: 22, Value: func(e employee.EmployeeResponse) string { return e.Name }},
			{Title: "Email", Width: 28, Value: func(e employee.EmployeeResponse) string { return e.Email }},
			{Title: "Department", Width: 12, Value: func(e employee.EmployeeResponse) string { return e.Department }},
			{Title: "Role", Width: 12, Value: func(e employee.EmployeeResponse) string { return e.Role }},
			{Title: "Status", Width: 9, Value: func(e employee.EmployeeResponse) string { return e.Status }},
		},
		Fields:      fields,
		Facets:      apiclient.EmployeeFacets,
		NewDraft:    employee.NewDraft,
		DraftFrom:   employee.DraftFrom,
		Departments: opts.Departments,
		Statuses:    opts.Statuses,
		Theme:       theme,
		Logger:      logger,
	})
}

func NewLeaveList(source listview.Source[leave.LeaveResponse, leave.Draft], theme Theme, logger *zap.Logger) *List[leave.LeaveResponse, leave.Draft] {
	fields := make([]FormField[leave.Draft], 0, len(leave.FormFields))
	for _, f := range leave.FormFields {
		fields = append(fields, FormField[leave.Draft]{
			Label: f.String(),
			Get:   func(d leave.Draft) string { return d.Get(f) },
			Set:   func(d *leave.Draft, v string) { d.Set(f, v) },
		})
	}

	return NewList(ListConfig[leave.LeaveResponse, leave.Draft]{
		Title:  "Leave Requests",
		Source: source,
		Columns: []Column[leave.LeaveResponse]{
			{Title: "Employee", Width: 22, Value: func(l leave.LeaveResponse) string { return l.EmployeeName }},
			{Title: "Type", Width: 14, Value: func(l leave.LeaveResponse) string { return l.Type }},
			{Title: "Start", Width: 11, Value: func(l leave.LeaveResponse) string { return l.StartDate }},
			{Title: "End", Width: 11, Value: func(l leave.LeaveResponse) string { return l.EndDate }},
			{Title: "Status", Width: 9, Value: func(l leave.LeaveResponse) string { return l.Status }},
		},
		Fields:   fields,
		Facets:   apiclient.LeaveFacets,
		NewDraft: leave.NewDraft,
		Statuses: leave.Statuses,
		Actions: []RowAction{
			{Key: "A", Label: "Approve", Status: leave.StatusApproved},
			{Key: "R", Label: "Reject", Status: leave.StatusRejected},
		},
		Theme:  theme,
		Logger: logger,
	})
}
