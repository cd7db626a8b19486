package controller

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"feedloop/middleware"
	"feedloop/models"
	"feedloop/utils"
)

type FeedbackRequestController struct {
	DB       *gorm.DB
	Logger   *log.Logger
	Notifier utils.Notifier
}

func NewFeedbackRequestController(db *gorm.DB, logger *log.Logger, notifier utils.Notifier) *FeedbackRequestController {
	return &FeedbackRequestController{
		DB:       db,
		Logger:   logger,
		Notifier: notifier,
	}
}

type CreateFeedbackRequestRequest struct {
	ManagerID uuid.UUID `json:"manager_id" validate:"required"`
	Message   *string   `json:"message"`
}

// Create files a pending feedback request and emails the manager about
// it. Delivery is best-effort: the request is created even when the
// notification can't go out.
func (rc *FeedbackRequestController) Create(c *fiber.Ctx) error {
	employee := middleware.CurrentUser(c)

	var req CreateFeedbackRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	request := models.FeedbackRequest{
		EmployeeID: employee.ID,
		ManagerID:  req.ManagerID,
		Message:    req.Message,
		Status:     models.RequestPending,
	}
	if err := rc.DB.Create(&request).Error; err != nil {
		rc.Logger.Printf("failed to create feedback request: %v", err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create feedback request", nil)
	}

	// Notify the manager when the target resolves to a real account.
	var manager models.User
	if err := rc.DB.Where("id = ?", req.ManagerID).First(&manager).Error; err == nil {
		message := "No message provided."
		if req.Message != nil && *req.Message != "" {
			message = *req.Message
		}
		subject := fmt.Sprintf("📩 Feedback Request from %s", employee.Name)
		body := fmt.Sprintf(
			"Hi %s,\n\nYou have a new feedback request from %s.\nMessage: %s\n\nPlease log in to the feedback system to respond.\n\nThanks!",
			manager.Name, employee.Name, message,
		)
		utils.NotifyAsync(rc.Notifier, manager.Email, subject, body)
	}

	return c.Status(fiber.StatusCreated).JSON(request)
}

// Notifications lists requests addressed to the calling manager, newest
// first.
func (rc *FeedbackRequestController) Notifications(c *fiber.Ctx) error {
	manager := middleware.CurrentUser(c)

	var requests []models.FeedbackRequest
	err := rc.DB.
		Where("manager_id = ?", manager.ID).
		Order("created_at desc").
		Find(&requests).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list feedback requests", nil)
	}

	return c.JSON(requests)
}

// Reject declines a pending request addressed to the calling manager.
// Fulfilled and rejected requests can't transition any further.
func (rc *FeedbackRequestController) Reject(c *fiber.Ctx) error {
	manager := middleware.CurrentUser(c)

	requestID, err := utils.ParseUUIDParam(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request id", err)
	}

	var request models.FeedbackRequest
	if err := rc.DB.Where("id = ? AND manager_id = ?", requestID, manager.ID).First(&request).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Feedback request not found", nil)
	}

	if request.Status != models.RequestPending {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Feedback request is not pending", nil)
	}

	request.Status = models.RequestRejected
	if err := rc.DB.Save(&request).Error; err != nil {
		rc.Logger.Printf("failed to reject feedback request %s: %v", requestID, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to reject feedback request", nil)
	}

	return c.JSON(request)
}
