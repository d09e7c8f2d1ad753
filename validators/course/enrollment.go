package courseValidator

import (
	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// EnrollCourse validator middleware
func EnrollCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := parseCourseID(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
		}
		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// EnrollmentList validator middleware
func EnrollmentList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Status string `json:"status"`
		})

		reqData.Status = c.Query("status")
		switch reqData.Status {
		case "", "all", "completed", "in-progress":
		default:
			return middleware.ValidationErrorResponse(c, map[string]string{
				"status": "Status must be all, completed or in-progress!",
			})
		}

		c.Locals("validatedEnrollmentList", reqData)
		return c.Next()
	}
}

// GetEnrollment validator middleware
func GetEnrollment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		enrollmentID, ok := parseCourseID(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid enrollment ID!", nil)
		}
		c.Locals("enrollmentID", enrollmentID)
		return c.Next()
	}
}

// CompleteLecture validator middleware
func CompleteLecture() fiber.Handler {
	return func(c *fiber.Ctx) error {
		enrollmentID, ok := parseCourseID(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid enrollment ID!", nil)
		}
		lectureID, ok := parseCourseID(c, "lecture_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lecture ID!", nil)
		}

		reqData := new(struct {
			WatchTime *int `json:"watch_time"`
		})
		// Body is optional for this endpoint
		if len(c.Body()) > 0 {
			if err := c.BodyParser(reqData); err != nil {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
			}
		}

		if reqData.WatchTime != nil && *reqData.WatchTime < 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"watch_time": "Watch time must be zero or greater!",
			})
		}

		c.Locals("enrollmentID", enrollmentID)
		c.Locals("lectureID", lectureID)
		c.Locals("validatedCompletion", reqData)
		return c.Next()
	}
}
