package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FeedbackRequest lifecycle. A request starts pending and moves to
// fulfilled when the targeted manager creates feedback for the requesting
// employee, or to rejected when the manager declines it. Both end states
// are terminal.
const (
	RequestPending   = "pending"
	RequestFulfilled = "fulfilled"
	RequestRejected  = "rejected"
)

// FeedbackRequest is an employee-initiated solicitation for feedback
// from a specific manager.
type FeedbackRequest struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index" json:"employee_id"`
	ManagerID  uuid.UUID `gorm:"type:uuid;not null;index" json:"manager_id"`
	Message    *string   `json:"message"`
	Status     string    `gorm:"not null;default:'pending'" json:"status"` // pending, fulfilled, rejected
	CreatedAt  time.Time `json:"created_at"`

	// Relations
	Employee User `gorm:"foreignKey:EmployeeID" json:"-"`
	Manager  User `gorm:"foreignKey:ManagerID" json:"-"`
}

func (r *FeedbackRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
