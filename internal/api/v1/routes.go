package v1

import (
	"github.com/gofiber/fiber/v2"

	"task-management/internal/api/v1/handlers"
)

// RegisterRoutes mendaftarkan seluruh route API.
// requireAuth adalah middleware bearer-token dari internal/middleware.
func RegisterRoutes(app *fiber.App, authHandler *handlers.AuthHandler, taskHandler *handlers.TaskHandler, requireAuth fiber.Handler) {
	app.Get("/hello", handlers.Hello)

	api := app.Group("/api")

	// Auth
	authRoutes := api.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)

	// User
	userRoutes := api.Group("/users", requireAuth)
	userRoutes.Get("/test", handlers.UserTest)

	// Task: route statis didaftarkan sebelum /:id
	taskRoutes := api.Group("/tasks", requireAuth)
	taskRoutes.Get("/", taskHandler.ListTasks)
	taskRoutes.Post("/", taskHandler.CreateTask)
	taskRoutes.Get("/status/:status", taskHandler.TasksByStatus)
	taskRoutes.Get("/priority/:priority", taskHandler.TasksByPriority)
	taskRoutes.Get("/:id", taskHandler.GetTask)
	taskRoutes.Put("/:id", taskHandler.UpdateTask)
	taskRoutes.Delete("/:id", taskHandler.DeleteTask)
}
