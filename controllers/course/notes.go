package controllers

import (
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// loadOwnedEnrollment fetches an enrollment and enforces ownership. The
// returned status is 0 when the caller may proceed.
func loadOwnedEnrollment(c *fiber.Ctx, enrollmentID int) (*courseModels.Enrollment, int, string) {
	user := middleware.CurrentUser(c)
	if user == nil {
		return nil, fiber.StatusUnauthorized, "User not found!"
	}

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("id = ?", enrollmentID).First(&enrollment).Error; err != nil {
		return nil, fiber.StatusNotFound, "Enrollment not found!"
	}

	if enrollment.UserID != user.ID {
		return nil, fiber.StatusForbidden, "Not authorized to access this enrollment!"
	}

	return &enrollment, 0, ""
}

// AddNote attaches a note to a lecture inside the caller's enrollment
func AddNote(c *fiber.Ctx) error {
	enrollmentID := c.Locals("enrollmentID").(int)

	enrollment, status, message := loadOwnedEnrollment(c, enrollmentID)
	if status != 0 {
		return middleware.JsonResponse(c, status, false, message, nil)
	}

	reqData, ok := c.Locals("validatedNote").(*struct {
		LectureID uint   `json:"lecture_id"`
		Content   string `json:"content"`
		Timestamp *int   `json:"timestamp"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	note := courseModels.Note{
		EnrollmentID: enrollment.ID,
		LectureID:    reqData.LectureID,
		Content:      reqData.Content,
	}
	if reqData.Timestamp != nil {
		note.Timestamp = *reqData.Timestamp
	}

	if err := database.Database.Db.Create(&note).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add note!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Note added successfully!", note)
}

// GetNotes lists all notes in the caller's enrollment
func GetNotes(c *fiber.Ctx) error {
	enrollmentID := c.Locals("enrollmentID").(int)

	enrollment, status, message := loadOwnedEnrollment(c, enrollmentID)
	if status != 0 {
		return middleware.JsonResponse(c, status, false, message, nil)
	}

	var notes []courseModels.Note
	if err := database.Database.Db.
		Where("enrollment_id = ?", enrollment.ID).
		Order("created_at desc").
		Find(&notes).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch notes!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notes fetched successfully!", fiber.Map{
		"notes": notes,
		"count": len(notes),
	})
}

// UpdateNote replaces the content of one note in the caller's enrollment
func UpdateNote(c *fiber.Ctx) error {
	enrollmentID := c.Locals("enrollmentID").(int)
	noteID := c.Locals("noteID").(int)

	enrollment, status, message := loadOwnedEnrollment(c, enrollmentID)
	if status != 0 {
		return middleware.JsonResponse(c, status, false, message, nil)
	}

	reqData, ok := c.Locals("validatedNoteUpdate").(*struct {
		Content string `json:"content"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var note courseModels.Note
	if err := database.Database.Db.
		Where("id = ? AND enrollment_id = ?", noteID, enrollment.ID).
		First(&note).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Note not found!", nil)
	}

	note.Content = reqData.Content
	if err := database.Database.Db.Save(&note).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update note!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Note updated successfully!", note)
}

// DeleteNote removes one note from the caller's enrollment
func DeleteNote(c *fiber.Ctx) error {
	enrollmentID := c.Locals("enrollmentID").(int)
	noteID := c.Locals("noteID").(int)

	enrollment, status, message := loadOwnedEnrollment(c, enrollmentID)
	if status != 0 {
		return middleware.JsonResponse(c, status, false, message, nil)
	}

	var note courseModels.Note
	if err := database.Database.Db.
		Where("id = ? AND enrollment_id = ?", noteID, enrollment.ID).
		First(&note).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Note not found!", nil)
	}

	if err := database.Database.Db.Unscoped().Delete(&note).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete note!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Note deleted successfully!", nil)
}
