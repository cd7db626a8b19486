package routes

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"

	controller "feedloop/controllers"
	"feedloop/middleware"
	"feedloop/models"
	"feedloop/utils"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, notifier utils.Notifier) {
	authController := controller.NewAuthController(db, log.New(os.Stdout, "AUTH: ", log.LstdFlags))
	tagController := controller.NewTagController(db, log.New(os.Stdout, "TAG: ", log.LstdFlags))
	teamController := controller.NewTeamController(db, log.New(os.Stdout, "TEAM: ", log.LstdFlags))
	feedbackController := controller.NewFeedbackController(db, log.New(os.Stdout, "FEEDBACK: ", log.LstdFlags))
	requestController := controller.NewFeedbackRequestController(db, log.New(os.Stdout, "REQUEST: ", log.LstdFlags), notifier)
	dashboardController := controller.NewDashboardController(db, log.New(os.Stdout, "DASHBOARD: ", log.LstdFlags))

	requestLogger := logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	})

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "running",
			"version": "1.0.0",
		})
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Public auth endpoints
	auth := app.Group("/auth", requestLogger)
	auth.Post("/register", authController.Register)
	auth.Post("/login", authController.Login)
	auth.Get("/me", middleware.Protected(db), authController.Me)

	// Tag listing is public; creation is a manager operation.
	tags := app.Group("/tags", requestLogger)
	tags.Post("/", middleware.Protected(db), middleware.RequireRole(models.RoleManager), tagController.CreateTag)
	tags.Get("/", tagController.ListTags)

	feedbacks := app.Group("/feedbacks", requestLogger, middleware.Protected(db))
	feedbacks.Post("/", middleware.RequireRole(models.RoleManager), feedbackController.CreateFeedback)
	feedbacks.Get("/me", middleware.RequireRole(models.RoleEmployee), feedbackController.MyFeedbacks)
	feedbacks.Get("/employee/:employee_id", middleware.RequireRole(models.RoleManager), feedbackController.FeedbacksForEmployee)
	feedbacks.Patch("/:id/acknowledge", middleware.RequireRole(models.RoleEmployee), feedbackController.Acknowledge)

	requests := app.Group("/feedback-requests", requestLogger, middleware.Protected(db))
	requests.Post("/", middleware.RequireRole(models.RoleEmployee), requestController.Create)
	requests.Get("/my-manager", middleware.RequireRole(models.RoleEmployee), teamController.MyManager)
	requests.Get("/notifications", middleware.RequireRole(models.RoleManager), requestController.Notifications)
	requests.Patch("/:id/reject", middleware.RequireRole(models.RoleManager), requestController.Reject)

	teams := app.Group("/teams", requestLogger, middleware.Protected(db), middleware.RequireRole(models.RoleManager))
	teams.Post("/assign", teamController.Assign)

	app.Get("/unassigned-employees", requestLogger, middleware.Protected(db), middleware.RequireRole(models.RoleManager), teamController.UnassignedEmployees)
	app.Get("/dashboard", requestLogger, middleware.Protected(db), middleware.RequireRole(models.RoleManager), dashboardController.Dashboard)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "Not Found",
			"message": "The requested resource was not found",
		})
	})
}
