package leave

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

var Statuses = []string{StatusPending, StatusApproved, StatusRejected}

const dateLayout = "2006-01-02"

type Leave struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID   uuid.UUID `gorm:"type:uuid;not null;index"`
	EmployeeName string    `gorm:"type:text;not null"`
	Type         string    `gorm:"type:text;not null"`
	StartDate    time.Time `gorm:"type:date;not null"`
	EndDate      time.Time `gorm:"type:date;not null"`
	Status       string    `gorm:"type:text;not null;default:'Pending';index"`
	CreatedAt    time.Time `gorm:"not null;index"`
	UpdatedAt    time.Time `gorm:"not null"`
}

func (Leave) TableName() string {
	return "leaves"
}
