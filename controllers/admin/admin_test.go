package adminController_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/routers/adminRoutes"
	"lms/routers/enrollmentRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var userSeq int

func setupAdminApp(t *testing.T) *fiber.App {
	t.Helper()

	config.LoadConfig()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	adminRoutes.SetupAdminRoutes(app)
	enrollmentRoutes.SetupEnrollmentRoutes(app)
	return app
}

func createUser(t *testing.T, role string) (models.User, string) {
	t.Helper()

	userSeq++
	user := models.User{
		FirstName: "Test",
		LastName:  fmt.Sprintf("User%d", userSeq),
		Email:     fmt.Sprintf("admin-test-%d@example.com", userSeq),
		Password:  "not-a-real-hash",
		Role:      role,
		IsActive:  true,
	}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.FirstName, user.Role, user.Email)
	require.NoError(t, err)
	return user, token
}

func createCourse(t *testing.T, instructorID uint, published bool) courseModels.Course {
	t.Helper()

	userSeq++
	course := courseModels.Course{
		Title:        fmt.Sprintf("Course %d", userSeq),
		Slug:         fmt.Sprintf("course-%d", userSeq),
		Description:  "A course used by the admin tests.",
		InstructorID: instructorID,
		Category:     "programming",
		Level:        "beginner",
		Price:        10,
		IsPublished:  published,
		Status:       courseModels.StatusDraft,
	}
	if published {
		course.Status = courseModels.StatusPublished
	}
	require.NoError(t, database.Database.Db.Create(&course).Error)
	return course
}

func doRequest(t *testing.T, app *fiber.App, method, target, token, body string) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, target, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &envelope))
	return resp.StatusCode, envelope
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	app := setupAdminApp(t)
	_, studentToken := createUser(t, "student")
	_, instructorToken := createUser(t, "instructor")

	for _, token := range []string{studentToken, instructorToken} {
		status, _ := doRequest(t, app, "GET", "/admin/users", token, "")
		assert.Equal(t, 403, status)
	}

	status, _ := doRequest(t, app, "GET", "/admin/users", "", "")
	assert.Equal(t, 401, status)
}

func TestGetAllUsersFilters(t *testing.T) {
	app := setupAdminApp(t)
	_, adminToken := createUser(t, "admin")
	createUser(t, "student")
	createUser(t, "student")
	createUser(t, "instructor")

	status, envelope := doRequest(t, app, "GET", "/admin/users?role=student", adminToken, "")
	require.Equal(t, 200, status)

	data := envelope["data"].(map[string]interface{})
	assert.Len(t, data["users"], 2)
	assert.Equal(t, float64(2), data["pagination"].(map[string]interface{})["total"])

	status, _ = doRequest(t, app, "GET", "/admin/users?role=wizard", adminToken, "")
	assert.Equal(t, 422, status)
}

func TestAdminUpdateUser(t *testing.T) {
	app := setupAdminApp(t)
	_, adminToken := createUser(t, "admin")
	student, _ := createUser(t, "student")

	status, envelope := doRequest(t, app,
		"PUT", fmt.Sprintf("/admin/user/%d", student.ID), adminToken,
		`{"role": "instructor", "is_active": false}`)
	require.Equal(t, 200, status)

	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, "instructor", data["role"])
	assert.Equal(t, false, data["is_active"])
}

func TestAdminCannotDeleteSelf(t *testing.T) {
	app := setupAdminApp(t)
	admin, adminToken := createUser(t, "admin")

	status, _ := doRequest(t, app,
		"DELETE", fmt.Sprintf("/admin/user/%d", admin.ID), adminToken, "")

	assert.Equal(t, 400, status)
}

func TestDeleteStudentCleansEnrollments(t *testing.T) {
	app := setupAdminApp(t)
	_, adminToken := createUser(t, "admin")
	instructor, _ := createUser(t, "instructor")
	student, studentToken := createUser(t, "student")
	course := createCourse(t, instructor.ID, true)

	status, _ := doRequest(t, app,
		"POST", fmt.Sprintf("/course/%d/enroll", course.ID), studentToken, "")
	require.Equal(t, 201, status)

	status, _ = doRequest(t, app,
		"DELETE", fmt.Sprintf("/admin/user/%d", student.ID), adminToken, "")
	require.Equal(t, 200, status)

	db := database.Database.Db
	var count int64
	db.Model(&models.User{}).Where("id = ?", student.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&courseModels.Enrollment{}).Where("user_id = ?", student.ID).Count(&count)
	assert.Zero(t, count)

	var updated courseModels.Course
	require.NoError(t, db.First(&updated, course.ID).Error)
	assert.Zero(t, updated.EnrollmentCount)
}

func TestDeleteInstructorArchivesCourses(t *testing.T) {
	app := setupAdminApp(t)
	_, adminToken := createUser(t, "admin")
	instructor, _ := createUser(t, "instructor")
	course := createCourse(t, instructor.ID, true)

	status, _ := doRequest(t, app,
		"DELETE", fmt.Sprintf("/admin/user/%d", instructor.ID), adminToken, "")
	require.Equal(t, 200, status)

	var updated courseModels.Course
	require.NoError(t, database.Database.Db.First(&updated, course.ID).Error)
	assert.Equal(t, courseModels.StatusArchived, updated.Status)
	assert.False(t, updated.IsPublished)
}

func TestBulkDeactivateSkipsSelf(t *testing.T) {
	app := setupAdminApp(t)
	admin, adminToken := createUser(t, "admin")
	first, _ := createUser(t, "student")
	second, _ := createUser(t, "student")

	body := fmt.Sprintf(`{"user_ids": [%d, %d, %d], "operation": "deactivate"}`,
		admin.ID, first.ID, second.ID)
	status, envelope := doRequest(t, app, "POST", "/admin/users/bulk", adminToken, body)
	require.Equal(t, 200, status)

	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["affected"])

	var adminRow models.User
	require.NoError(t, database.Database.Db.First(&adminRow, admin.ID).Error)
	assert.True(t, adminRow.IsActive)
}

func TestAdminEnrollAndUnenroll(t *testing.T) {
	app := setupAdminApp(t)
	_, adminToken := createUser(t, "admin")
	instructor, _ := createUser(t, "instructor")
	student, _ := createUser(t, "student")

	// Admin enrollment works even for unpublished courses
	course := createCourse(t, instructor.ID, false)

	body := fmt.Sprintf(`{"user_id": %d, "course_id": %d}`, student.ID, course.ID)
	status, envelope := doRequest(t, app, "POST", "/admin/enroll", adminToken, body)
	require.Equal(t, 201, status, "message: %v", envelope["message"])
	enrollmentID := int(envelope["data"].(map[string]interface{})["ID"].(float64))

	var updated courseModels.Course
	require.NoError(t, database.Database.Db.First(&updated, course.ID).Error)
	assert.Equal(t, 1, updated.EnrollmentCount)

	status, _ = doRequest(t, app, "POST", "/admin/enroll", adminToken, body)
	assert.Equal(t, 409, status)

	status, _ = doRequest(t, app,
		"DELETE", fmt.Sprintf("/admin/enrollment/%d", enrollmentID), adminToken, "")
	require.Equal(t, 200, status)

	require.NoError(t, database.Database.Db.First(&updated, course.ID).Error)
	assert.Zero(t, updated.EnrollmentCount)
}

func TestPlatformStats(t *testing.T) {
	app := setupAdminApp(t)
	_, adminToken := createUser(t, "admin")
	instructor, _ := createUser(t, "instructor")
	student, _ := createUser(t, "student")
	course := createCourse(t, instructor.ID, true)

	body := fmt.Sprintf(`{"user_id": %d, "course_id": %d}`, student.ID, course.ID)
	status, _ := doRequest(t, app, "POST", "/admin/enroll", adminToken, body)
	require.Equal(t, 201, status)

	status, envelope := doRequest(t, app, "GET", "/admin/stats", adminToken, "")
	require.Equal(t, 200, status)

	data := envelope["data"].(map[string]interface{})
	users := data["users"].(map[string]interface{})
	assert.Equal(t, float64(3), users["total"])
	assert.Equal(t, float64(1), users["students"])
	assert.Equal(t, float64(1), users["instructors"])

	courses := data["courses"].(map[string]interface{})
	assert.Equal(t, float64(1), courses["total"])
	assert.Equal(t, float64(1), courses["published"])

	enrollments := data["enrollments"].(map[string]interface{})
	assert.Equal(t, float64(1), enrollments["total"])
	assert.Equal(t, float64(1), enrollments["new_this_month"])

	// price 10 * one enrollment
	assert.Equal(t, float64(10), data["total_revenue"])
}
