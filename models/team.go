package models

import "github.com/google/uuid"

// TeamAssignment links an employee to the manager supervising them.
// Rows are created by manager action and never updated or deleted.
// The composite key keeps a given pair unique; nothing prevents an
// employee from appearing under more than one manager.
type TeamAssignment struct {
	ManagerID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"manager_id"`
	EmployeeID uuid.UUID `gorm:"type:uuid;primaryKey" json:"employee_id"`

	// Relations
	Manager  User `gorm:"foreignKey:ManagerID" json:"-"`
	Employee User `gorm:"foreignKey:EmployeeID" json:"-"`
}

func (TeamAssignment) TableName() string {
	return "teams"
}
