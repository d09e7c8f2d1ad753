package adminController

import (
	"errors"
	"log"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

// GetAllUsers lists users with optional role, search and active filters
func GetAllUsers(c *fiber.Ctx) error {
	reqData, _ := c.Locals("validatedUserList").(*struct {
		Page     *int   `json:"page"`
		Limit    *int   `json:"limit"`
		Role     string `json:"role"`
		Search   string `json:"search"`
		IsActive *bool  `json:"is_active"`
	})

	page := 1
	limit := 20
	if reqData != nil {
		if reqData.Page != nil && *reqData.Page > 0 {
			page = *reqData.Page
		}
		if reqData.Limit != nil && *reqData.Limit > 0 {
			limit = *reqData.Limit
		}
	}

	db := database.Database.Db.Model(&models.User{})

	if reqData != nil {
		if reqData.Role != "" {
			db = db.Where("role = ?", reqData.Role)
		}
		if reqData.Search != "" {
			search := "%" + reqData.Search + "%"
			db = db.Where("first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?", search, search, search)
		}
		if reqData.IsActive != nil {
			db = db.Where("is_active = ?", *reqData.IsActive)
		}
	}

	var total int64
	db.Count(&total)

	var users []models.User
	if err := db.Order("created_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully!", fiber.Map{
		"users": users,
		"pagination": fiber.Map{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// GetUserDetails returns one user together with their enrollments
func GetUserDetails(c *fiber.Ctx) error {
	userID := c.Locals("targetUserID").(int)

	var user models.User
	if err := database.Database.Db.Where("id = ?", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	var enrollments []courseModels.Enrollment
	database.Database.Db.Preload("Course").Where("user_id = ?", user.ID).Find(&enrollments)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User fetched successfully!", fiber.Map{
		"user":        user,
		"enrollments": enrollments,
	})
}

// UpdateUser lets an admin change a user's role and active flag
func UpdateUser(c *fiber.Ctx) error {
	userID := c.Locals("targetUserID").(int)

	reqData, ok := c.Locals("validatedUserUpdate").(*struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Role      string `json:"role"`
		IsActive  *bool  `json:"is_active"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ?", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if reqData.FirstName != "" {
		user.FirstName = reqData.FirstName
	}
	if reqData.LastName != "" {
		user.LastName = reqData.LastName
	}
	if reqData.Role != "" {
		user.Role = reqData.Role
	}
	if reqData.IsActive != nil {
		user.IsActive = *reqData.IsActive
	}

	if err := database.Database.Db.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User updated successfully!", user)
}

// deleteUserData removes a user's enrollments (decrementing each course
// counter), archives their courses if they are an instructor, and finally
// removes the user record
func deleteUserData(db *gorm.DB, user *models.User) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var enrollments []courseModels.Enrollment
		if err := tx.Where("user_id = ?", user.ID).Find(&enrollments).Error; err != nil {
			return err
		}

		for _, enrollment := range enrollments {
			if err := tx.Model(&courseModels.Course{}).
				Where("id = ? AND enrollment_count > 0", enrollment.CourseID).
				UpdateColumn("enrollment_count", gorm.Expr("enrollment_count - 1")).Error; err != nil {
				return err
			}

			enrollmentIDs := []uint{enrollment.ID}
			if err := tx.Unscoped().Where("enrollment_id IN ?", enrollmentIDs).Delete(&courseModels.LectureCompletion{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Where("enrollment_id IN ?", enrollmentIDs).Delete(&courseModels.Note{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Unscoped().Where("user_id = ?", user.ID).Delete(&courseModels.Enrollment{}).Error; err != nil {
			return err
		}

		// Instructor courses stay visible but stop accepting enrollments
		if user.Role == models.RoleInstructor {
			if err := tx.Model(&courseModels.Course{}).
				Where("instructor_id = ?", user.ID).
				Updates(map[string]interface{}{
					"status":       courseModels.StatusArchived,
					"is_published": false,
				}).Error; err != nil {
				return err
			}
		}

		return tx.Unscoped().Delete(user).Error
	})
}

// DeleteUser removes a user and their learning data. Admins cannot delete
// their own account.
func DeleteUser(c *fiber.Ctx) error {
	admin := middleware.CurrentUser(c)
	if admin == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	userID := c.Locals("targetUserID").(int)

	if uint(userID) == admin.ID {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You cannot delete your own account!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ?", userID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if err := deleteUserData(database.Database.Db, &user); err != nil {
		log.Printf("Failed to delete user %d: %v", user.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User deleted successfully!", nil)
}

// BulkUserOperations applies activate, deactivate or delete to a set of
// users. The caller's own account is always skipped.
func BulkUserOperations(c *fiber.Ctx) error {
	admin := middleware.CurrentUser(c)
	if admin == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedBulkOperation").(*struct {
		UserIDs   []uint `json:"user_ids"`
		Operation string `json:"operation"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	userIDs := make([]uint, 0, len(reqData.UserIDs))
	for _, id := range reqData.UserIDs {
		if id != admin.ID {
			userIDs = append(userIDs, id)
		}
	}
	if len(userIDs) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No users to operate on!", nil)
	}

	db := database.Database.Db
	affected := 0

	switch reqData.Operation {
	case "activate":
		result := db.Model(&models.User{}).Where("id IN ?", userIDs).Update("is_active", true)
		affected = int(result.RowsAffected)
	case "deactivate":
		result := db.Model(&models.User{}).Where("id IN ?", userIDs).Update("is_active", false)
		affected = int(result.RowsAffected)
	case "delete":
		var users []models.User
		db.Where("id IN ?", userIDs).Find(&users)
		for i := range users {
			if err := deleteUserData(db, &users[i]); err != nil {
				log.Printf("Failed to delete user %d: %v", users[i].ID, err)
				continue
			}
			affected++
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Bulk operation completed!", fiber.Map{
		"operation": reqData.Operation,
		"affected":  affected,
	})
}

// EnrollUserInCourse enrolls any user into any course. Unlike self-service
// enrollment, the course does not have to be published.
func EnrollUserInCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedAdminEnroll").(*struct {
		UserID   uint `json:"user_id"`
		CourseID uint `json:"course_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ?", reqData.UserID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	var course courseModels.Course
	if err := db.Where("id = ?", reqData.CourseID).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	enrollment := courseModels.Enrollment{
		UserID:   user.ID,
		CourseID: course.ID,
	}
	if err := db.Create(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "User is already enrolled in this course!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll user!", nil)
	}

	db.Model(&courseModels.Course{}).Where("id = ?", course.ID).
		UpdateColumn("enrollment_count", gorm.Expr("enrollment_count + 1"))

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User enrolled successfully!", enrollment)
}

// UnenrollUser removes an enrollment and its learning data
func UnenrollUser(c *fiber.Ctx) error {
	enrollmentID := c.Locals("enrollmentID").(int)

	db := database.Database.Db

	var enrollment courseModels.Enrollment
	if err := db.Where("id = ?", enrollmentID).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("enrollment_id = ?", enrollment.ID).Delete(&courseModels.LectureCompletion{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("enrollment_id = ?", enrollment.ID).Delete(&courseModels.Note{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Delete(&enrollment).Error; err != nil {
			return err
		}
		return tx.Model(&courseModels.Course{}).
			Where("id = ? AND enrollment_count > 0", enrollment.CourseID).
			UpdateColumn("enrollment_count", gorm.Expr("enrollment_count - 1")).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to unenroll user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User unenrolled successfully!", nil)
}

// GetPlatformStats aggregates platform wide counters for the admin dashboard
func GetPlatformStats(c *fiber.Ctx) error {
	db := database.Database.Db

	var totalUsers, totalStudents, totalInstructors int64
	db.Model(&models.User{}).Count(&totalUsers)
	db.Model(&models.User{}).Where("role = ?", models.RoleStudent).Count(&totalStudents)
	db.Model(&models.User{}).Where("role = ?", models.RoleInstructor).Count(&totalInstructors)

	var totalCourses, publishedCourses int64
	db.Model(&courseModels.Course{}).Count(&totalCourses)
	db.Model(&courseModels.Course{}).Where("is_published = ?", true).Count(&publishedCourses)

	var totalEnrollments, completedEnrollments int64
	db.Model(&courseModels.Enrollment{}).Count(&totalEnrollments)
	db.Model(&courseModels.Enrollment{}).Where("is_completed = ?", true).Count(&completedEnrollments)

	var totalRevenue float64
	db.Model(&courseModels.Course{}).
		Select("COALESCE(SUM(price * enrollment_count), 0)").
		Scan(&totalRevenue)

	monthStart := now.BeginningOfMonth()
	var newUsersThisMonth, newEnrollmentsThisMonth int64
	db.Model(&models.User{}).Where("created_at >= ?", monthStart).Count(&newUsersThisMonth)
	db.Model(&courseModels.Enrollment{}).Where("created_at >= ?", monthStart).Count(&newEnrollmentsThisMonth)

	var recentEnrollments []courseModels.Enrollment
	db.Preload("Course").Order("created_at desc").Limit(10).Find(&recentEnrollments)

	var topCourses []courseModels.Course
	db.Where("is_published = ?", true).Order("enrollment_count desc").Limit(5).Find(&topCourses)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Platform stats fetched successfully!", fiber.Map{
		"users": fiber.Map{
			"total":          totalUsers,
			"students":       totalStudents,
			"instructors":    totalInstructors,
			"new_this_month": newUsersThisMonth,
		},
		"courses": fiber.Map{
			"total":     totalCourses,
			"published": publishedCourses,
		},
		"enrollments": fiber.Map{
			"total":          totalEnrollments,
			"completed":      completedEnrollments,
			"new_this_month": newEnrollmentsThisMonth,
		},
		"total_revenue":      totalRevenue,
		"recent_enrollments": recentEnrollments,
		"top_courses":        topCourses,
	})
}
