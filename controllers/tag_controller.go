package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"feedloop/models"
	"feedloop/utils"
)

type TagController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewTagController(db *gorm.DB, logger *log.Logger) *TagController {
	return &TagController{
		DB:     db,
		Logger: logger,
	}
}

type CreateTagRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

func (tc *TagController) CreateTag(c *fiber.Ctx) error {
	var req CreateTagRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	var existing models.Tag
	if err := tc.DB.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Tag already exists", nil)
	}

	tag := models.Tag{Name: req.Name}
	if err := tc.DB.Create(&tag).Error; err != nil {
		if utils.IsDuplicateKey(err) {
			return utils.ErrorResponse(c, fiber.StatusConflict, "Tag already exists", nil)
		}
		tc.Logger.Printf("failed to create tag: %v", err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create tag", nil)
	}

	return c.Status(fiber.StatusCreated).JSON(tag)
}

func (tc *TagController) ListTags(c *fiber.Ctx) error {
	var tags []models.Tag
	if err := tc.DB.Find(&tags).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list tags", nil)
	}
	return c.JSON(tags)
}
