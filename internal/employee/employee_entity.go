package employee

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

var (
	Departments = []string{
		"Engineering", "Finance", "Operations", "Sales", "HR",
		"Marketing", "Product", "Support", "Legal",
	}
	Roles = []string{
		"Manager", "Developer", "Analyst", "Coordinator", "Specialist",
		"Director", "Lead", "Associate", "Senior", "Junior",
	}
	Statuses = []string{StatusActive, StatusInactive}
)

type Employee struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name       string    `gorm:"type:text;not null"`
	Email      string    `gorm:"type:text;not null;uniqueIndex:uq_employee_email"`
	Department string    `gorm:"type:text;not null;index"`
	Role       string    `gorm:"type:text;not null"`
	Status     string    `gorm:"type:text;not null;default:'Active';index"`
	CreatedAt  time.Time `gorm:"not null;index"`
	UpdatedAt  time.Time `gorm:"not null"`
}

func (Employee) TableName() string {
	return "employees"
}
