package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"feedloop/middleware"
	"feedloop/models"
	"feedloop/utils"
)

type DashboardController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewDashboardController(db *gorm.DB, logger *log.Logger) *DashboardController {
	return &DashboardController{
		DB:     db,
		Logger: logger,
	}
}

type FeedbackDigest struct {
	ID        uuid.UUID `json:"id"`
	Sentiment string    `json:"sentiment"`
	CreatedAt time.Time `json:"created_at"`
}

type TeamFeedbackEntry struct {
	EmployeeID    uuid.UUID        `json:"employee_id"`
	EmployeeName  string           `json:"employee_name"`
	FeedbackCount int              `json:"feedback_count"`
	Feedbacks     []FeedbackDigest `json:"feedbacks"`
}

// Dashboard computes the calling manager's sentiment rollup, grouped by
// employee. It is a pure read recomputed on every call; the fetch is
// ordered by creation time so grouping comes out deterministic.
func (dc *DashboardController) Dashboard(c *fiber.Ctx) error {
	manager := middleware.CurrentUser(c)

	var feedbacks []models.Feedback
	err := dc.DB.Preload("Employee").
		Where("manager_id = ?", manager.ID).
		Order("created_at asc").
		Find(&feedbacks).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load dashboard", nil)
	}

	// All three buckets are present even when zero.
	sentimentSummary := map[string]int{
		models.SentimentPositive: 0,
		models.SentimentNeutral:  0,
		models.SentimentNegative: 0,
	}

	entries := make([]*TeamFeedbackEntry, 0)
	byEmployee := make(map[uuid.UUID]*TeamFeedbackEntry)

	for _, fb := range feedbacks {
		sentimentSummary[fb.Sentiment]++

		entry, ok := byEmployee[fb.EmployeeID]
		if !ok {
			entry = &TeamFeedbackEntry{
				EmployeeID:   fb.EmployeeID,
				EmployeeName: fb.Employee.Name,
			}
			byEmployee[fb.EmployeeID] = entry
			entries = append(entries, entry)
		}
		entry.FeedbackCount++
		entry.Feedbacks = append(entry.Feedbacks, FeedbackDigest{
			ID:        fb.ID,
			Sentiment: fb.Sentiment,
			CreatedAt: fb.CreatedAt,
		})
	}

	return c.JSON(fiber.Map{
		"sentiment_summary": sentimentSummary,
		"team_feedback":     entries,
	})
}
