package controllers

import (
	"errors"
	"log"
	"sort"
	"time"

	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// EnrollInCourse creates the enrollment record for (caller, course)
func EnrollInCourse(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !course.IsPublished {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Cannot enroll in unpublished course!", nil)
	}

	// Check if user is already enrolled
	var existingEnrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ?", user.ID, courseID).First(&existingEnrollment).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You are already enrolled in this course!", nil)
	}

	enrollment := courseModels.Enrollment{
		UserID:         user.ID,
		CourseID:       course.ID,
		LastAccessedAt: time.Now(),
	}

	if err := db.Create(&enrollment).Error; err != nil {
		// Two concurrent enrolls race past the pre-check; the unique index
		// rejects the loser and we report the same conflict.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "You are already enrolled in this course!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}

	// Counter update is a separate write from the enrollment insert;
	// drift is healed by the hourly reconciliation sweep.
	if err := db.Model(&courseModels.Course{}).Where("id = ?", course.ID).
		UpdateColumn("enrollment_count", gorm.Expr("enrollment_count + 1")).Error; err != nil {
		log.Printf("Failed to bump enrollment count for course %d: %v", course.ID, err)
	}

	go utils.SendEnrollmentEmail(user.Email, user.FirstName, course.Title)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrolled in course successfully!", enrollment)
}

// GetMyEnrollments lists the caller's enrollments, optionally filtered by
// completion status
func GetMyEnrollments(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	status := "all"
	if reqData, ok := c.Locals("validatedEnrollmentList").(*struct {
		Status string `json:"status"`
	}); ok && reqData.Status != "" {
		status = reqData.Status
	}

	db := database.Database.Db.Where("user_id = ?", user.ID)

	switch status {
	case "completed":
		db = db.Where("is_completed = ?", true)
	case "in-progress":
		db = db.Where("is_completed = ?", false)
	}

	var enrollments []courseModels.Enrollment
	if err := db.Preload("Course").Order("last_accessed_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": enrollments,
		"count":       len(enrollments),
	})
}

// GetEnrollmentDetails returns one enrollment the caller owns
func GetEnrollmentDetails(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	enrollmentID := c.Locals("enrollmentID").(int)

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.
		Preload("Course.Sections.Lectures").
		Preload("CompletedLectures").
		Preload("Notes").
		Where("id = ?", enrollmentID).
		First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	// Check ownership
	if enrollment.UserID != user.ID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not authorized to access this enrollment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment fetched successfully!", enrollment)
}

// CompleteLecture records a lecture completion and recomputes progress.
// Completing the same lecture twice is a no-op for the completion set; the
// last-accessed marker is refreshed either way.
func CompleteLecture(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	enrollmentID := c.Locals("enrollmentID").(int)
	lectureID := c.Locals("lectureID").(int)

	watchTime := 0
	if reqData, ok := c.Locals("validatedCompletion").(*struct {
		WatchTime *int `json:"watch_time"`
	}); ok && reqData.WatchTime != nil {
		watchTime = *reqData.WatchTime
	}

	db := database.Database.Db

	var enrollment courseModels.Enrollment
	if err := db.Preload("CompletedLectures").Where("id = ?", enrollmentID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	// Check ownership
	if enrollment.UserID != user.ID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not authorized to access this enrollment!", nil)
	}

	var course courseModels.Course
	if err := db.Where("id = ?", enrollment.CourseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// The lecture must belong to the enrollment's course
	var lectureCount int64
	db.Model(&courseModels.Lecture{}).
		Joins("JOIN sections ON sections.id = lectures.section_id").
		Where("lectures.id = ? AND sections.course_id = ?", lectureID, course.ID).
		Count(&lectureCount)
	if lectureCount == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lecture not found in this course!", nil)
	}

	wasCompleted := enrollment.IsCompleted

	if !enrollment.HasCompleted(uint(lectureID)) {
		completion := courseModels.LectureCompletion{
			EnrollmentID: enrollment.ID,
			LectureID:    uint(lectureID),
			CompletedAt:  time.Now(),
			WatchTime:    watchTime,
		}
		if err := db.Create(&completion).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark lecture as completed!", nil)
		}
		enrollment.CompletedLectures = append(enrollment.CompletedLectures, completion)

		enrollment.ApplyProgress(course.TotalLectures)
	}

	lectureRef := uint(lectureID)
	enrollment.LastAccessedLecture = &lectureRef
	enrollment.LastAccessedAt = time.Now()

	// Certificate is issued the moment the completion latch fires
	if enrollment.IsCompleted && !wasCompleted {
		enrollment.CertificateIssued = true
		enrollment.CertificateID = utils.GenerateCertificateID()
		go utils.SendCourseCompletionEmail(user.Email, user.FirstName, course.Title, enrollment.CertificateID)
	}

	if err := db.Save(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update enrollment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lecture marked as completed!", fiber.Map{
		"enrollment": enrollment,
		"progress":   enrollment.Progress,
	})
}

// GetLearningAnalytics aggregates the caller's learning activity
func GetLearningAnalytics(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var enrollments []courseModels.Enrollment
	if err := database.Database.Db.
		Preload("Course").
		Preload("CompletedLectures").
		Where("user_id = ?", user.ID).
		Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch analytics!", nil)
	}

	totalCourses := len(enrollments)
	completedCourses := 0
	totalLecturesCompleted := 0
	progressSum := 0

	type categoryStats struct {
		Total     int `json:"total"`
		Completed int `json:"completed"`
	}
	categoryBreakdown := make(map[string]*categoryStats)

	for _, enrollment := range enrollments {
		if enrollment.IsCompleted {
			completedCourses++
		}
		totalLecturesCompleted += len(enrollment.CompletedLectures)
		progressSum += enrollment.Progress

		if enrollment.Course != nil {
			stats, ok := categoryBreakdown[enrollment.Course.Category]
			if !ok {
				stats = &categoryStats{}
				categoryBreakdown[enrollment.Course.Category] = stats
			}
			stats.Total++
			if enrollment.IsCompleted {
				stats.Completed++
			}
		}
	}

	averageProgress := 0
	if totalCourses > 0 {
		averageProgress = (progressSum + totalCourses/2) / totalCourses
	}

	// Five most recently accessed enrollments
	sort.Slice(enrollments, func(i, j int) bool {
		return enrollments[i].LastAccessedAt.After(enrollments[j].LastAccessedAt)
	})
	recentActivity := make([]fiber.Map, 0, 5)
	for i, enrollment := range enrollments {
		if i >= 5 {
			break
		}
		courseTitle := ""
		if enrollment.Course != nil {
			courseTitle = enrollment.Course.Title
		}
		recentActivity = append(recentActivity, fiber.Map{
			"course":        courseTitle,
			"progress":      enrollment.Progress,
			"last_accessed": enrollment.LastAccessedAt,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Analytics fetched successfully!", fiber.Map{
		"overview": fiber.Map{
			"total_courses":            totalCourses,
			"completed_courses":        completedCourses,
			"in_progress_courses":      totalCourses - completedCourses,
			"total_lectures_completed": totalLecturesCompleted,
			"average_progress":         averageProgress,
		},
		"category_breakdown": categoryBreakdown,
		"recent_activity":    recentActivity,
	})
}
