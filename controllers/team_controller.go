package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"feedloop/middleware"
	"feedloop/models"
	"feedloop/utils"
)

type TeamController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewTeamController(db *gorm.DB, logger *log.Logger) *TeamController {
	return &TeamController{
		DB:     db,
		Logger: logger,
	}
}

// Assign puts an employee on the calling manager's team. The target must
// resolve to a role=employee user, which also guarantees the manager and
// employee are distinct accounts.
func (tc *TeamController) Assign(c *fiber.Ctx) error {
	manager := middleware.CurrentUser(c)

	employeeID, err := uuid.Parse(c.Query("employee_id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid employee_id", err)
	}

	var employee models.User
	if err := tc.DB.Where("id = ? AND role = ?", employeeID, models.RoleEmployee).First(&employee).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Employee not found", nil)
	}

	var existing models.TeamAssignment
	if err := tc.DB.Where("manager_id = ? AND employee_id = ?", manager.ID, employeeID).First(&existing).Error; err == nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Employee is already in your team", nil)
	}

	assignment := models.TeamAssignment{
		ManagerID:  manager.ID,
		EmployeeID: employeeID,
	}
	if err := tc.DB.Create(&assignment).Error; err != nil {
		if utils.IsDuplicateKey(err) {
			return utils.ErrorResponse(c, fiber.StatusConflict, "Employee is already in your team", nil)
		}
		tc.Logger.Printf("failed to create team assignment: %v", err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to assign employee", nil)
	}

	return c.JSON(fiber.Map{
		"detail": "Employee " + employee.Name + " assigned to your team.",
	})
}

// MyManager returns the manager the calling employee is assigned to.
func (tc *TeamController) MyManager(c *fiber.Ctx) error {
	employee := middleware.CurrentUser(c)

	var manager models.User
	err := tc.DB.
		Joins("JOIN teams ON teams.manager_id = users.id").
		Where("teams.employee_id = ?", employee.ID).
		First(&manager).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "No manager assigned", nil)
	}

	return c.JSON(manager)
}

// UnassignedEmployees lists employees that no manager has claimed yet.
func (tc *TeamController) UnassignedEmployees(c *fiber.Ctx) error {
	var employees []models.User
	subquery := tc.DB.Model(&models.TeamAssignment{}).Select("employee_id")
	err := tc.DB.
		Where("role = ?", models.RoleEmployee).
		Where("id NOT IN (?)", subquery).
		Find(&employees).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list unassigned employees", nil)
	}

	return c.JSON(employees)
}
