package server

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"

	"github.com/optisale/optisale/internal/controllers"
)

type HTTPServerDependencies struct {
	DashboardController *controllers.DashboardController
}

// NewHTTPServer wires the dashboard API routes. The UI in front of this
// server owns all rendering; these endpoints only hand it partitioned
// CRM data, summaries and chat replies.
func NewHTTPServer(deps HTTPServerDependencies) *fiber.App {
	router := fiber.New(fiber.Config{
		AppName: "optisale-dashboard",
	})

	router.Use(cors.New())
	router.Use(logger.New())

	router.Get("/health", func(c fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":    "healthy",
			"service":   "optisale-dashboard",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	api := router.Group("/api")

	api.Get("/deals", deps.DashboardController.GetDeals)
	api.Get("/deals/by-stage", deps.DashboardController.GetDealsByStage)
	api.Get("/leads", deps.DashboardController.GetLeads)
	api.Get("/leads/by-status", deps.DashboardController.GetLeadsByStatus)
	api.Get("/tasks", deps.DashboardController.GetTasks)
	api.Get("/tasks/by-status", deps.DashboardController.GetTasksByStatus)
	api.Get("/notes", deps.DashboardController.GetNotes)

	api.Get("/summary", deps.DashboardController.GetSummary)
	api.Get("/owners", deps.DashboardController.GetOwners)
	api.Get("/stats", deps.DashboardController.GetStats)
	api.Get("/status", deps.DashboardController.GetStatus)

	api.Post("/chat", deps.DashboardController.Chat)

	return router
}
