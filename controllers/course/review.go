package controllers

import (
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// AddReview lets an enrolled student rate a course, once
func AddReview(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedReview").(*struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Only enrolled students may review
	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ?", user.ID, courseID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You must be enrolled to review this course!", nil)
	}

	course, err := loadCourseTree(courseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// One review per user per course
	for _, review := range course.Reviews {
		if review.UserID == user.ID {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "You have already reviewed this course!", nil)
		}
	}

	course.Reviews = append(course.Reviews, courseModels.Review{
		UserID:  user.ID,
		Rating:  reqData.Rating,
		Comment: reqData.Comment,
	})

	if err := saveCourseTree(course); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add review!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Review added successfully!", fiber.Map{
		"course":         course,
		"average_rating": course.AverageRating,
		"rating_count":   course.RatingCount,
	})
}

// GetCourseReviews returns the paginated review list for a course
func GetCourseReviews(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var total int64
	db.Model(&courseModels.Review{}).Where("course_id = ?", courseID).Count(&total)

	var reviews []courseModels.Review
	if err := db.Where("course_id = ?", courseID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&reviews).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch reviews!", nil)
	}

	response := map[string]interface{}{
		"reviews":        reviews,
		"average_rating": course.AverageRating,
		"rating_count":   course.RatingCount,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reviews fetched successfully!", response)
}
