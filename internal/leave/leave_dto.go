package leave

import (
	"time"

	"github.com/kartikey1112/hrms-dashboard/internal/shared/pagination"
)

type CreateLeaveRequest struct {
	EmployeeID   string `json:"employee_id" binding:"required,uuid"`
	EmployeeName string `json:"employee_name" binding:"omitempty,max=200"`
	Type         string `json:"type" binding:"required,max=50"`
	StartDate    string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate      string `json:"end_date" binding:"required,datetime=2006-01-02"`
	Status       string `json:"status" binding:"omitempty,oneof=Pending Approved Rejected"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Approved Rejected"`
}

// ListQuery is the server side view of a leave list fetch. Empty strings
// disable the corresponding filter.
type ListQuery struct {
	Search string
	Status string
	pagination.Params
}

type LeaveResponse struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	Type         string    `json:"type"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ListResult struct {
	Leaves []LeaveResponse
	Total  int64
}
