package adminRoutes

import (
	adminController "lms/controllers/admin"
	"lms/middleware"
	adminValidator "lms/validators/admin"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes sets up user management and platform stats routes
func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin",
		middleware.JWTMiddleware,
		middleware.RequireRoles("admin"),
	)

	// User management
	adminGroup.Get("/users", adminValidator.UserList(), adminController.GetAllUsers)
	adminGroup.Get("/user/:id", adminValidator.GetUser(), adminController.GetUserDetails)
	adminGroup.Put("/user/:id", adminValidator.UpdateUser(), adminController.UpdateUser)
	adminGroup.Delete("/user/:id", adminValidator.DeleteUser(), adminController.DeleteUser)
	adminGroup.Post("/users/bulk", adminValidator.BulkOperation(), adminController.BulkUserOperations)

	// Enrollment management
	adminGroup.Post("/enroll", adminValidator.EnrollUser(), adminController.EnrollUserInCourse)
	adminGroup.Delete("/enrollment/:id", adminValidator.UnenrollUser(), adminController.UnenrollUser)

	// Dashboard
	adminGroup.Get("/stats", adminController.GetPlatformStats)
}
