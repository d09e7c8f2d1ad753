package authRoutes

import (
	authController "lms/controllers/auth"
	"lms/middleware"
	authValidator "lms/validators/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes sets up registration, login and profile routes
func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authValidator.Signup(), authController.Signup)
	authGroup.Post("/login", authValidator.Login(), authController.Login)
	authGroup.Post("/forgot-password", authValidator.ForgotPassword(), authController.ForgotPassword)
	authGroup.Put("/reset-password/:resetToken", authValidator.ResetPassword(), authController.ResetPassword)

	userGroup := app.Group("/user")

	userGroup.Get("/me", middleware.JWTMiddleware, authController.Me)
	userGroup.Put("/profile", middleware.JWTMiddleware, authValidator.UpdateProfile(), authController.UpdateProfile)
	userGroup.Put("/password", middleware.JWTMiddleware, authValidator.ChangePassword(), authController.ChangePassword)
}
