package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"feedloop/middleware"
	"feedloop/models"
	"feedloop/utils"
)

type FeedbackController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewFeedbackController(db *gorm.DB, logger *log.Logger) *FeedbackController {
	return &FeedbackController{
		DB:     db,
		Logger: logger,
	}
}

type CreateFeedbackRequest struct {
	EmployeeID     uuid.UUID `json:"employee_id" validate:"required"`
	Strengths      string    `json:"strengths" validate:"required"`
	AreasToImprove string    `json:"areas_to_improve" validate:"required"`
	Sentiment      string    `json:"sentiment" validate:"required,oneof=positive neutral negative"`
	Tags           []string  `json:"tags"`
}

type AcknowledgeRequest struct {
	Reply *string `json:"reply"`
}

// CreateFeedback inserts feedback with its tag set and fulfills any
// matching pending feedback request, all in one transaction.
func (fc *FeedbackController) CreateFeedback(c *fiber.Ctx) error {
	manager := middleware.CurrentUser(c)

	var req CreateFeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	var employee models.User
	if err := fc.DB.Where("id = ? AND role = ?", req.EmployeeID, models.RoleEmployee).First(&employee).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Employee not found", nil)
	}

	feedback := models.Feedback{
		ManagerID:      manager.ID,
		EmployeeID:     req.EmployeeID,
		Strengths:      req.Strengths,
		AreasToImprove: req.AreasToImprove,
		Sentiment:      req.Sentiment,
	}

	err := fc.DB.Transaction(func(tx *gorm.DB) error {
		tags := make([]models.Tag, 0, len(req.Tags))
		for _, name := range req.Tags {
			tag, err := resolveTag(tx, name)
			if err != nil {
				return err
			}
			tags = append(tags, tag)
		}
		feedback.Tags = tags

		if err := tx.Create(&feedback).Error; err != nil {
			return err
		}

		// Fulfill the matching pending request, if any.
		return tx.Model(&models.FeedbackRequest{}).
			Where("manager_id = ? AND employee_id = ? AND status = ?",
				manager.ID, req.EmployeeID, models.RequestPending).
			Update("status", models.RequestFulfilled).Error
	})
	if err != nil {
		fc.Logger.Printf("failed to create feedback: %v", err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create feedback", nil)
	}

	var created models.Feedback
	if err := fc.DB.Preload("Tags").First(&created, "id = ?", feedback.ID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load feedback", nil)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// resolveTag creates a tag on first use and returns the canonical row.
// The insert skips on conflict so a concurrent creation of the same name
// never errors the surrounding transaction; the unique index on name is
// the authority and the follow-up fetch returns whichever row won.
func resolveTag(tx *gorm.DB, name string) (models.Tag, error) {
	tag := models.Tag{Name: name}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&tag).Error; err != nil {
		return tag, err
	}

	var resolved models.Tag
	if err := tx.Where("name = ?", name).First(&resolved).Error; err != nil {
		return resolved, err
	}
	return resolved, nil
}

// MyFeedbacks lists the calling employee's feedback, newest first.
func (fc *FeedbackController) MyFeedbacks(c *fiber.Ctx) error {
	employee := middleware.CurrentUser(c)

	var feedbacks []models.Feedback
	err := fc.DB.Preload("Tags").
		Where("employee_id = ?", employee.ID).
		Order("created_at desc").
		Find(&feedbacks).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list feedback", nil)
	}

	return c.JSON(feedbacks)
}

// FeedbacksForEmployee lists feedback the calling manager has written
// for one employee, newest first.
func (fc *FeedbackController) FeedbacksForEmployee(c *fiber.Ctx) error {
	manager := middleware.CurrentUser(c)

	employeeID, err := utils.ParseUUIDParam(c, "employee_id")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid employee id", err)
	}

	var feedbacks []models.Feedback
	err = fc.DB.Preload("Tags").
		Where("manager_id = ? AND employee_id = ?", manager.ID, employeeID).
		Order("created_at desc").
		Find(&feedbacks).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list feedback", nil)
	}

	return c.JSON(feedbacks)
}

// Acknowledge marks feedback as seen by its owning employee. Ownership
// failures surface as 404 so non-owners can't probe for record ids.
func (fc *FeedbackController) Acknowledge(c *fiber.Ctx) error {
	employee := middleware.CurrentUser(c)

	feedbackID, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid feedback id", err)
	}

	// Body is optional; acknowledging without a reply is fine.
	var req AcknowledgeRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
		}
	}

	var feedback models.Feedback
	if err := fc.DB.Where("id = ? AND employee_id = ?", feedbackID, employee.ID).First(&feedback).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Feedback not found", nil)
	}

	feedback.Acknowledged = true
	if req.Reply != nil {
		feedback.EmployeeReply = req.Reply
	}

	if err := fc.DB.Save(&feedback).Error; err != nil {
		fc.Logger.Printf("failed to acknowledge feedback %s: %v", feedbackID, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to acknowledge feedback", nil)
	}

	var updated models.Feedback
	if err := fc.DB.Preload("Tags").First(&updated, "id = ?", feedback.ID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load feedback", nil)
	}

	return c.JSON(updated)
}
