package enrollmentRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupEnrollmentRoutes sets up enrollment, progress and note routes
func SetupEnrollmentRoutes(app *fiber.App) {
	courseGroup := app.Group("/course", middleware.JWTMiddleware)
	courseGroup.Post("/:id/enroll", validators.EnrollCourse(), controllers.EnrollInCourse)

	enrollmentGroup := app.Group("/enrollment", middleware.JWTMiddleware)

	enrollmentGroup.Get("/list", validators.EnrollmentList(), controllers.GetMyEnrollments)
	enrollmentGroup.Get("/analytics", controllers.GetLearningAnalytics)
	enrollmentGroup.Get("/:id", validators.GetEnrollment(), controllers.GetEnrollmentDetails)
	enrollmentGroup.Post("/:id/lecture/:lecture_id/complete", validators.CompleteLecture(), controllers.CompleteLecture)

	// Notes
	enrollmentGroup.Post("/:id/note", validators.AddNote(), controllers.AddNote)
	enrollmentGroup.Get("/:id/notes", validators.NoteList(), controllers.GetNotes)
	enrollmentGroup.Put("/:id/note/:note_id", validators.UpdateNote(), controllers.UpdateNote)
	enrollmentGroup.Delete("/:id/note/:note_id", validators.DeleteNote(), controllers.DeleteNote)
}
