package employee

import (
	"time"

	"github.com/kartikey1112/hrms-dashboard/internal/shared/pagination"
)

type CreateEmployeeRequest struct {
	Name       string `json:"name" binding:"required,max=200"`
	Email      string `json:"email" binding:"required,email"`
	Department string `json:"department" binding:"required,oneof=Engineering Finance Operations Sales HR Marketing Product Support Legal"`
	Role       string `json:"role" binding:"required,oneof=Manager Developer Analyst Coordinator Specialist Director Lead Associate Senior Junior"`
	Status     string `json:"status" binding:"omitempty,oneof=Active Inactive"`
}

type UpdateEmployeeRequest struct {
	Name       string `json:"name" binding:"required,max=200"`
	Email      string `json:"email" binding:"required,email"`
	Department string `json:"department" binding:"required,oneof=Engineering Finance Operations Sales HR Marketing Product Support Legal"`
	Role       string `json:"role" binding:"required,oneof=Manager Developer Analyst Coordinator Specialist Director Lead Associate Senior Junior"`
	Status     string `json:"status" binding:"required,oneof=Active Inactive"`
}

// ListQuery is the server side view of a directory fetch. Empty strings
// disable the corresponding filter.
type ListQuery struct {
	Search     string
	Department string
	Status     string
	pagination.Params
}

type EmployeeResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	Role       string    `json:"role"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type ListResult struct {
	Employees []EmployeeResponse
	Total     int64
}

type OptionsResponse struct {
	Departments []string `json:"departments"`
	Roles       []string `json:"roles"`
	Statuses    []string `json:"statuses"`
}
