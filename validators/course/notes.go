package courseValidator

import (
	"strings"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// AddNote validator middleware
func AddNote() fiber.Handler {
	return func(c *fiber.Ctx) error {
		enrollmentID, ok := parseCourseID(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid enrollment ID!", nil)
		}

		reqData := new(struct {
			LectureID uint   `json:"lecture_id"`
			Content   string `json:"content"`
			Timestamp *int   `json:"timestamp"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.LectureID == 0 {
			errors["lecture_id"] = "Lecture ID is required!"
		}
		if strings.TrimSpace(reqData.Content) == "" {
			errors["content"] = "Note content is required!"
		}
		if len(reqData.Content) > 2000 {
			errors["content"] = "Note content must not exceed 2000 characters!"
		}
		if reqData.Timestamp != nil && *reqData.Timestamp < 0 {
			errors["timestamp"] = "Timestamp must be zero or greater!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("enrollmentID", enrollmentID)
		c.Locals("validatedNote", reqData)
		return c.Next()
	}
}

// NoteList validator middleware
func NoteList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		enrollmentID, ok := parseCourseID(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid enrollment ID!", nil)
		}
		c.Locals("enrollmentID", enrollmentID)
		return c.Next()
	}
}

// UpdateNote validator middleware
func UpdateNote() fiber.Handler {
	return func(c *fiber.Ctx) error {
		enrollmentID, ok := parseCourseID(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid enrollment ID!", nil)
		}
		noteID, ok := parseCourseID(c, "note_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid note ID!", nil)
		}

		reqData := new(struct {
			Content string `json:"content"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Content) == "" {
			errors["content"] = "Note content is required!"
		}
		if len(reqData.Content) > 2000 {
			errors["content"] = "Note content must not exceed 2000 characters!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("enrollmentID", enrollmentID)
		c.Locals("noteID", noteID)
		c.Locals("validatedNoteUpdate", reqData)
		return c.Next()
	}
}

// DeleteNote validator middleware
func DeleteNote() fiber.Handler {
	return func(c *fiber.Ctx) error {
		enrollmentID, ok := parseCourseID(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid enrollment ID!", nil)
		}
		noteID, ok := parseCourseID(c, "note_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid note ID!", nil)
		}
		c.Locals("enrollmentID", enrollmentID)
		c.Locals("noteID", noteID)
		return c.Next()
	}
}
