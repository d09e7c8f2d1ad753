package courseValidator

import (
	"strconv"
	"strings"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

var validLevels = map[string]bool{
	"beginner":     true,
	"intermediate": true,
	"advanced":     true,
	"all-levels":   true,
}

// parseCourseID reads the :id route param into an int
func parseCourseID(c *fiber.Ctx, param string) (int, bool) {
	idStr := strings.TrimSpace(c.Params(param))
	if idStr == "" {
		return 0, false
	}
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// CourseList validator middleware for the public catalog listing
func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
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

		errors := make(map[string]string)

		if v := c.Query("page"); v != "" {
			page, err := strconv.Atoi(v)
			if err != nil || page < 1 {
				errors["page"] = "Page must be a positive number!"
			} else {
				reqData.Page = &page
			}
		}
		if v := c.Query("limit"); v != "" {
			limit, err := strconv.Atoi(v)
			if err != nil || limit < 1 || limit > 100 {
				errors["limit"] = "Limit must be between 1 and 100!"
			} else {
				reqData.Limit = &limit
			}
		}
		if v := c.Query("min_price"); v != "" {
			minPrice, err := strconv.ParseFloat(v, 64)
			if err != nil || minPrice < 0 {
				errors["min_price"] = "Invalid minimum price!"
			} else {
				reqData.MinPrice = &minPrice
			}
		}
		if v := c.Query("max_price"); v != "" {
			maxPrice, err := strconv.ParseFloat(v, 64)
			if err != nil || maxPrice < 0 {
				errors["max_price"] = "Invalid maximum price!"
			} else {
				reqData.MaxPrice = &maxPrice
			}
		}
		if v := c.Query("rating"); v != "" {
			rating, err := strconv.ParseFloat(v, 64)
			if err != nil || rating < 0 || rating > 5 {
				errors["rating"] = "Rating must be between 0 and 5!"
			} else {
				reqData.Rating = &rating
			}
		}

		reqData.Category = c.Query("category")
		reqData.Search = c.Query("search")
		reqData.Sort = c.Query("sort")

		if reqData.Level = c.Query("level"); reqData.Level != "" && !validLevels[reqData.Level] {
			errors["level"] = "Invalid course level!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourseList", reqData)
		return c.Next()
	}
}

// GetCourseDetail validator middleware
func GetCourseDetail() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := parseCourseID(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
		}
		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// CreateCourse validator middleware
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title            string   `json:"title"`
			Description      string   `json:"description"`
			ShortDescription string   `json:"short_description"`
			Category         string   `json:"category"`
			Level            string   `json:"level"`
			Language         string   `json:"language"`
			Price            *float64 `json:"price"`
			ThumbnailURL     string   `json:"thumbnail_url"`
			PreviewVideoURL  string   `json:"preview_video_url"`
			Requirements     []string `json:"requirements"`
			WhatYouWillLearn []string `json:"what_you_will_learn"`
			TargetAudience   []string `json:"target_audience"`
			Tags             []string `json:"tags"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Title)) < 5 {
			errors["title"] = "Title must be at least 5 characters long!"
		}
		if len(reqData.Title) > 200 {
			errors["title"] = "Title must not exceed 200 characters!"
		}
		if len(strings.TrimSpace(reqData.Description)) < 20 {
			errors["description"] = "Description must be at least 20 characters long!"
		}
		if len(reqData.Description) > 2000 {
			errors["description"] = "Description must not exceed 2000 characters!"
		}
		if strings.TrimSpace(reqData.Category) == "" {
			errors["category"] = "Category is required!"
		}
		if reqData.Level == "" || !validLevels[reqData.Level] {
			errors["level"] = "Invalid course level!"
		}
		if reqData.Price == nil || *reqData.Price < 0 {
			errors["price"] = "Price must be zero or greater!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourse validator middleware
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := parseCourseID(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
		}

		reqData := new(struct {
			Title            string   `json:"title"`
			Description      string   `json:"description"`
			ShortDescription string   `json:"short_description"`
			Category         string   `json:"category"`
			Level            string   `json:"level"`
			Language         string   `json:"language"`
			Price            *float64 `json:"price"`
			ThumbnailURL     string   `json:"thumbnail_url"`
			PreviewVideoURL  string   `json:"preview_video_url"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Title != "" && len(strings.TrimSpace(reqData.Title)) < 5 {
			errors["title"] = "Title must be at least 5 characters long!"
		}
		if len(reqData.Title) > 200 {
			errors["title"] = "Title must not exceed 200 characters!"
		}
		if reqData.Level != "" && !validLevels[reqData.Level] {
			errors["level"] = "Invalid course level!"
		}
		if reqData.Price != nil && *reqData.Price < 0 {
			errors["price"] = "Price must be zero or greater!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

// DeleteCourse validator middleware
func DeleteCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := parseCourseID(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
		}
		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// PublishCourse validator middleware
func PublishCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := parseCourseID(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
		}
		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// AddSection validator middleware
func AddSection() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := parseCourseID(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
		}

		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			OrderIndex  *int   `json:"order_index"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Section title is required!"
		}
		if reqData.OrderIndex != nil && *reqData.OrderIndex < 0 {
			errors["order_index"] = "Order index must be zero or greater!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedSection", reqData)
		return c.Next()
	}
}

// AddLecture validator middleware
func AddLecture() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := parseCourseID(c, "course_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
		}
		sectionID, ok := parseCourseID(c, "section_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid section ID!", nil)
		}

		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			VideoURL    string `json:"video_url"`
			Duration    *int   `json:"duration"`
			OrderIndex  *int   `json:"order_index"`
			IsFree      bool   `json:"is_free"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Lecture title is required!"
		}
		if reqData.Duration != nil && *reqData.Duration < 0 {
			errors["duration"] = "Duration must be zero or greater!"
		}
		if reqData.OrderIndex != nil && *reqData.OrderIndex < 0 {
			errors["order_index"] = "Order index must be zero or greater!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("sectionID", sectionID)
		c.Locals("validatedLecture", reqData)
		return c.Next()
	}
}

// UpdateSyllabus validator middleware
func UpdateSyllabus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := parseCourseID(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course ID!", nil)
		}

		reqData := new(struct {
			Sections []struct {
				Title       string `json:"title"`
				Description string `json:"description"`
				Lectures    []struct {
					Title       string `json:"title"`
					Description string `json:"description"`
					VideoURL    string `json:"video_url"`
					Duration    int    `json:"duration"`
					IsFree      bool   `json:"is_free"`
				} `json:"lectures"`
			} `json:"sections"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(reqData.Sections) == 0 {
			errors["sections"] = "At least one section is required!"
		}
		for _, section := range reqData.Sections {
			if strings.TrimSpace(section.Title) == "" {
				errors["sections"] = "Every section needs a title!"
				break
			}
			for _, lecture := range section.Lectures {
				if strings.TrimSpace(lecture.Title) == "" {
					errors["sections"] = "Every lecture needs a title!"
					break
				}
				if lecture.Duration < 0 {
					errors["sections"] = "Lecture duration must be zero or greater!"
					break
				}
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedSyllabus", reqData)
		return c.Next()
	}
}
