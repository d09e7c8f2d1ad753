package controllers_test

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
	"lms/routers/courseRoutes"
	"lms/routers/enrollmentRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var userSeq int

// setupTestApp wires the routes against a fresh in-memory database
func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	config.LoadConfig()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	// The in-memory database lives per connection; keep a single one
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	courseRoutes.SetupCourseRoutes(app)
	courseRoutes.SetupInstructorCourseRoutes(app)
	enrollmentRoutes.SetupEnrollmentRoutes(app)
	return app
}

// createUser inserts a user and returns it with a signed token
func createUser(t *testing.T, role string) (models.User, string) {
	t.Helper()

	userSeq++
	user := models.User{
		FirstName: "Test",
		LastName:  fmt.Sprintf("User%d", userSeq),
		Email:     fmt.Sprintf("user%d@example.com", userSeq),
		Password:  "not-a-real-hash",
		Role:      role,
		IsActive:  true,
	}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.FirstName, user.Role, user.Email)
	require.NoError(t, err)

	return user, token
}

// createPublishedCourse inserts a course with two sections of two lectures
func createPublishedCourse(t *testing.T, instructorID uint) courseModels.Course {
	t.Helper()

	userSeq++
	course := courseModels.Course{
		Title:        fmt.Sprintf("Go Fundamentals %d", userSeq),
		Slug:         fmt.Sprintf("go-fundamentals-%d", userSeq),
		Description:  "Learn the Go programming language from the ground up.",
		InstructorID: instructorID,
		Category:     "programming",
		Level:        "beginner",
		Price:        49.99,
		IsPublished:  true,
		Status:       courseModels.StatusPublished,
		Sections: []courseModels.Section{
			{
				Title:      "Getting Started",
				OrderIndex: 0,
				Lectures: []courseModels.Lecture{
					{Title: "Installation", Duration: 10, OrderIndex: 0},
					{Title: "Hello World", Duration: 15, OrderIndex: 1},
				},
			},
			{
				Title:      "Core Concepts",
				OrderIndex: 1,
				Lectures: []courseModels.Lecture{
					{Title: "Types", Duration: 20, OrderIndex: 0},
					{Title: "Functions", Duration: 25, OrderIndex: 1},
				},
			},
		},
	}
	course.RecomputeDerived()
	require.NoError(t, database.Database.Db.Create(&course).Error)
	return course
}

// doRequest runs a request through the app and decodes the envelope
func doRequest(t *testing.T, app *fiber.App, method, target, token string, body string) (int, map[string]interface{}) {
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

func dataField(t *testing.T, envelope map[string]interface{}) map[string]interface{} {
	t.Helper()
	data, ok := envelope["data"].(map[string]interface{})
	require.True(t, ok, "expected object data, got %v", envelope["data"])
	return data
}
