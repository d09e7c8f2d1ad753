package controllers

import (
	"time"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// canModifyCourse is the single ownership check for course mutations:
// the owning instructor or an admin.
func canModifyCourse(user *models.User, course *courseModels.Course) bool {
	return course.InstructorID == user.ID || user.Role == models.RoleAdmin
}

// saveCourseTree recomputes derived fields and persists the course with its
// owned children in one transaction. Every content mutation funnels through
// here so derived fields stay consistent with the tree at rest.
func saveCourseTree(course *courseModels.Course) error {
	course.RecomputeDerived()
	return database.Database.Db.Transaction(func(tx *gorm.DB) error {
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(course).Error
	})
}

// loadCourseTree fetches a course with sections, lectures and reviews loaded
func loadCourseTree(courseID int) (*courseModels.Course, error) {
	var course courseModels.Course
	err := database.Database.Db.
		Preload("Sections.Lectures").
		Preload("Reviews").
		Where("id = ?", courseID).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// CreateCourse creates a new draft course owned by the caller
func CreateCourse(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*struct {
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
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course := courseModels.Course{
		Title:            reqData.Title,
		Slug:             courseModels.Slugify(reqData.Title),
		Description:      reqData.Description,
		ShortDescription: reqData.ShortDescription,
		InstructorID:     user.ID,
		Category:         reqData.Category,
		Level:            reqData.Level,
		Price:            *reqData.Price,
		ThumbnailURL:     reqData.ThumbnailURL,
		PreviewVideoURL:  reqData.PreviewVideoURL,
		Requirements:     courseModels.StringList(reqData.Requirements),
		WhatYouWillLearn: courseModels.StringList(reqData.WhatYouWillLearn),
		TargetAudience:   courseModels.StringList(reqData.TargetAudience),
		Tags:             courseModels.StringList(reqData.Tags),
		Status:           courseModels.StatusDraft,
		IsPublished:      false,
	}
	if reqData.Language != "" {
		course.Language = reqData.Language
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// UpdateCourse applies a partial update to a course the caller owns
func UpdateCourse(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	course, err := loadCourseTree(courseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !canModifyCourse(user, course) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not authorized to modify this course!", nil)
	}

	reqData, ok := c.Locals("validatedCourseUpdate").(*struct {
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
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Update only provided fields
	if reqData.Title != "" {
		course.Title = reqData.Title
		course.Slug = courseModels.Slugify(reqData.Title)
	}
	if reqData.Description != "" {
		course.Description = reqData.Description
	}
	if reqData.ShortDescription != "" {
		course.ShortDescription = reqData.ShortDescription
	}
	if reqData.Category != "" {
		course.Category = reqData.Category
	}
	if reqData.Level != "" {
		course.Level = reqData.Level
	}
	if reqData.Language != "" {
		course.Language = reqData.Language
	}
	if reqData.Price != nil {
		course.Price = *reqData.Price
	}
	if reqData.ThumbnailURL != "" {
		course.ThumbnailURL = reqData.ThumbnailURL
	}
	if reqData.PreviewVideoURL != "" {
		course.PreviewVideoURL = reqData.PreviewVideoURL
	}

	if err := saveCourseTree(course); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// DeleteCourse hard-deletes a course with its content tree and enrollments
func DeleteCourse(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !canModifyCourse(user, &course) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not authorized to modify this course!", nil)
	}

	if err := deleteCourseCascade(course.ID); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// deleteCourseCascade removes a course and every record that only exists
// because of it: lectures, sections, reviews, enrollments with their
// completions and notes.
func deleteCourseCascade(courseID uint) error {
	return database.Database.Db.Transaction(func(tx *gorm.DB) error {
		var sectionIDs []uint
		if err := tx.Model(&courseModels.Section{}).Where("course_id = ?", courseID).Pluck("id", &sectionIDs).Error; err != nil {
			return err
		}
		if len(sectionIDs) > 0 {
			if err := tx.Unscoped().Where("section_id IN ?", sectionIDs).Delete(&courseModels.Lecture{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Unscoped().Where("course_id = ?", courseID).Delete(&courseModels.Section{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("course_id = ?", courseID).Delete(&courseModels.Review{}).Error; err != nil {
			return err
		}

		var enrollmentIDs []uint
		if err := tx.Model(&courseModels.Enrollment{}).Where("course_id = ?", courseID).Pluck("id", &enrollmentIDs).Error; err != nil {
			return err
		}
		if len(enrollmentIDs) > 0 {
			if err := tx.Unscoped().Where("enrollment_id IN ?", enrollmentIDs).Delete(&courseModels.LectureCompletion{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Where("enrollment_id IN ?", enrollmentIDs).Delete(&courseModels.Note{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Where("course_id = ?", courseID).Delete(&courseModels.Enrollment{}).Error; err != nil {
				return err
			}
		}

		return tx.Unscoped().Where("id = ?", courseID).Delete(&courseModels.Course{}).Error
	})
}

// TogglePublish flips a course between draft and published
func TogglePublish(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ?", courseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !canModifyCourse(user, &course) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not authorized to modify this course!", nil)
	}

	course.IsPublished = !course.IsPublished
	if course.IsPublished {
		course.Status = courseModels.StatusPublished
	} else {
		course.Status = courseModels.StatusDraft
	}
	// publishedAt is stamped once, on the first publish
	if course.IsPublished && course.PublishedAt == nil {
		now := time.Now()
		course.PublishedAt = &now
	}

	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update publish status!", nil)
	}

	message := "Course unpublished successfully!"
	if course.IsPublished {
		message = "Course published successfully!"
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, message, course)
}

// AddSection appends a section to a course's ordered list
func AddSection(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	course, err := loadCourseTree(courseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !canModifyCourse(user, course) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not authorized to modify this course!", nil)
	}

	reqData, ok := c.Locals("validatedSection").(*struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		OrderIndex  *int   `json:"order_index"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	section := courseModels.Section{
		Title:       reqData.Title,
		Description: reqData.Description,
	}
	if reqData.OrderIndex != nil {
		section.OrderIndex = *reqData.OrderIndex
	} else {
		section.OrderIndex = len(course.Sections)
	}

	course.Sections = append(course.Sections, section)

	if err := saveCourseTree(course); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add section!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Section added successfully!", course)
}

// AddLecture appends a lecture to a section within a course
func AddLecture(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)
	sectionID := c.Locals("sectionID").(int)

	course, err := loadCourseTree(courseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !canModifyCourse(user, course) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not authorized to modify this course!", nil)
	}

	// The section must belong to this course
	sectionIndex := -1
	for i := range course.Sections {
		if course.Sections[i].ID == uint(sectionID) {
			sectionIndex = i
			break
		}
	}
	if sectionIndex < 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section not found!", nil)
	}

	reqData, ok := c.Locals("validatedLecture").(*struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		VideoURL    string `json:"video_url"`
		Duration    *int   `json:"duration"`
		OrderIndex  *int   `json:"order_index"`
		IsFree      bool   `json:"is_free"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	lecture := courseModels.Lecture{
		Title:       reqData.Title,
		Description: reqData.Description,
		VideoURL:    reqData.VideoURL,
		IsFree:      reqData.IsFree,
	}
	if reqData.Duration != nil {
		lecture.Duration = *reqData.Duration
	}
	if reqData.OrderIndex != nil {
		lecture.OrderIndex = *reqData.OrderIndex
	} else {
		lecture.OrderIndex = len(course.Sections[sectionIndex].Lectures)
	}

	course.Sections[sectionIndex].Lectures = append(course.Sections[sectionIndex].Lectures, lecture)

	if err := saveCourseTree(course); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add lecture!", nil)
	}

	go utils.ProbeLectureVideo(course.ID, reqData.VideoURL)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lecture added successfully!", course)
}

// UpdateSyllabus replaces a course's section tree wholesale
func UpdateSyllabus(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	course, err := loadCourseTree(courseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !canModifyCourse(user, course) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Not authorized to modify this course!", nil)
	}

	reqData, ok := c.Locals("validatedSyllabus").(*struct {
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
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Drop the old tree, then write the replacement in one transaction
	err = database.Database.Db.Transaction(func(tx *gorm.DB) error {
		var sectionIDs []uint
		if err := tx.Model(&courseModels.Section{}).Where("course_id = ?", course.ID).Pluck("id", &sectionIDs).Error; err != nil {
			return err
		}
		if len(sectionIDs) > 0 {
			if err := tx.Unscoped().Where("section_id IN ?", sectionIDs).Delete(&courseModels.Lecture{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Where("course_id = ?", course.ID).Delete(&courseModels.Section{}).Error; err != nil {
				return err
			}
		}

		course.Sections = nil
		for sectionOrder, sectionData := range reqData.Sections {
			section := courseModels.Section{
				Title:       sectionData.Title,
				Description: sectionData.Description,
				OrderIndex:  sectionOrder,
			}
			for lectureOrder, lectureData := range sectionData.Lectures {
				section.Lectures = append(section.Lectures, courseModels.Lecture{
					Title:       lectureData.Title,
					Description: lectureData.Description,
					VideoURL:    lectureData.VideoURL,
					Duration:    lectureData.Duration,
					OrderIndex:  lectureOrder,
					IsFree:      lectureData.IsFree,
				})
			}
			course.Sections = append(course.Sections, section)
		}

		course.RecomputeDerived()
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(course).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update syllabus!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course syllabus updated successfully!", course)
}

// GetInstructorCourses lists courses owned by the caller
func GetInstructorCourses(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var courses []courseModels.Course
	if err := database.Database.Db.
		Where("instructor_id = ?", user.ID).
		Order("created_at desc").
		Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Instructor courses fetched successfully!", fiber.Map{
		"courses": courses,
		"count":   len(courses),
	})
}
