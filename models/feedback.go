package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sentiment values for feedback tone
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// Tag is a free-form label attached to feedback. Tags are created lazily
// the first time a manager uses an unseen name and are never updated or
// deleted. Name uniqueness is enforced by the database index.
type Tag struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"uniqueIndex;not null" json:"name"`
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Feedback is a structured review written by a manager for an employee.
// It is mutated at most once after creation: the owning employee sets
// Acknowledged and optionally EmployeeReply.
type Feedback struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ManagerID      uuid.UUID `gorm:"type:uuid;not null;index" json:"manager_id"`
	EmployeeID     uuid.UUID `gorm:"type:uuid;not null;index" json:"employee_id"`
	Strengths      string    `gorm:"not null" json:"strengths"`
	AreasToImprove string    `gorm:"not null" json:"areas_to_improve"`
	Sentiment      string    `gorm:"not null" json:"sentiment"` // positive, neutral, negative
	Acknowledged   bool      `gorm:"default:false" json:"acknowledged"`
	EmployeeReply  *string   `json:"employee_reply"`
	CreatedAt      time.Time `json:"created_at"`

	// Relations
	Tags     []Tag `gorm:"many2many:feedback_tags" json:"tags"`
	Employee User  `gorm:"foreignKey:EmployeeID" json:"-"`
}

func (f *Feedback) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
