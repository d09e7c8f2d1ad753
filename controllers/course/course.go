package controllers

import (
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// GetAllCourses lists published courses with catalog filters
func GetAllCourses(c *fiber.Ctx) error {
	reqData, _ := c.Locals("validatedCourseList").(*struct {
		Page     *int     `json:"page"`
		Limit    *int     `json:"limit"`
		Category string   `json:"category"`
		Level    string   `json:"level"`
		Search   string   `json:"search"`
		MinPrice *float64 `json:"min_price"`
		MaxPrice *float64 `json:"max_price"`
		Rating   *float64 `json:"rating"`
		Sort     string   `json:"sort"`
	})

	// Set default pagination
	page := 1
	limit := 10
	if reqData != nil && reqData.Page != nil {
		page = *reqData.Page
	}
	if reqData != nil && reqData.Limit != nil {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	// Build query with filters
	db := database.Database.Db.Model(&courseModels.Course{}).Where("is_published = ?", true)

	if reqData != nil {
		if reqData.Category != "" {
			db = db.Where("category = ?", reqData.Category)
		}
		if reqData.Level != "" {
			db = db.Where("level = ?", reqData.Level)
		}
		if reqData.Search != "" {
			like := "%" + reqData.Search + "%"
			db = db.Where("title ILIKE ? OR description ILIKE ?", like, like)
		}
		if reqData.MinPrice != nil {
			db = db.Where("price >= ?", *reqData.MinPrice)
		}
		if reqData.MaxPrice != nil {
			db = db.Where("price <= ?", *reqData.MaxPrice)
		}
		if reqData.Rating != nil {
			db = db.Where("average_rating >= ?", *reqData.Rating)
		}
	}

	order := "created_at desc"
	if reqData != nil {
		switch reqData.Sort {
		case "price":
			order = "price asc"
		case "-price":
			order = "price desc"
		case "rating":
			order = "average_rating desc"
		case "popular":
			order = "enrollment_count desc"
		}
	}

	// Get total count
	var total int64
	db.Count(&total)

	// Fetch paginated data
	var courses []courseModels.Course
	if err := db.Offset(offset).Limit(limit).Order(order).Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	response := map[string]interface{}{
		"courses": courses,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", response)
}

// GetCourseDetails returns one course with its full section/lecture tree
func GetCourseDetails(c *fiber.Ctx) error {
	// The endpoint is public; a token only enables the enrollment flag
	userID, hasUser := c.Locals("userId").(uint)

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.
		Preload("Sections.Lectures").
		Preload("Reviews").
		Where("id = ? AND is_published = ?", courseID, true).
		First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Check if the caller is enrolled
	var enrollment courseModels.Enrollment
	isEnrolled := hasUser && database.Database.Db.
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&enrollment).Error == nil

	result := fiber.Map{
		"course":      course,
		"is_enrolled": isEnrolled,
	}
	if isEnrolled {
		result["enrollment"] = enrollment
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", result)
}
