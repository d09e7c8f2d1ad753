package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up the public catalog and review routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	courseGroup.Get("/list", middleware.OptionalJWTMiddleware, validators.CourseList(), controllers.GetAllCourses)
	courseGroup.Get("/:id", middleware.OptionalJWTMiddleware, validators.GetCourseDetail(), controllers.GetCourseDetails)

	// Reviews
	courseGroup.Get("/:id/reviews", validators.ReviewList(), controllers.GetCourseReviews)
	courseGroup.Post("/:id/review", middleware.JWTMiddleware, validators.AddReview(), controllers.AddReview)
}

// SetupInstructorCourseRoutes sets up course authoring routes for
// instructors and admins
func SetupInstructorCourseRoutes(app *fiber.App) {
	instructorGroup := app.Group("/instructor/course",
		middleware.JWTMiddleware,
		middleware.RequireRoles("instructor", "admin"),
	)

	// Course CRUD
	instructorGroup.Post("/create", validators.CreateCourse(), controllers.CreateCourse)
	instructorGroup.Get("/list", controllers.GetInstructorCourses)
	instructorGroup.Put("/:id", validators.UpdateCourse(), controllers.UpdateCourse)
	instructorGroup.Delete("/:id", validators.DeleteCourse(), controllers.DeleteCourse)
	instructorGroup.Post("/:id/publish", validators.PublishCourse(), controllers.TogglePublish)

	// Curriculum management
	instructorGroup.Post("/:id/section", validators.AddSection(), controllers.AddSection)
	instructorGroup.Post("/:course_id/section/:section_id/lecture", validators.AddLecture(), controllers.AddLecture)
	instructorGroup.Put("/:id/syllabus", validators.UpdateSyllabus(), controllers.UpdateSyllabus)
}
