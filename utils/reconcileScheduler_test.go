package utils_test

import (
	"testing"

	"lms/database"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDb(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}
	return db
}

func TestReconcileEnrollmentCounts(t *testing.T) {
	db := setupDb(t)

	user := models.User{FirstName: "Test", Email: "reconcile@example.com", Password: "x", Role: "student", IsActive: true}
	require.NoError(t, db.Create(&user).Error)

	drifted := courseModels.Course{
		Title: "Drifted", Slug: "drifted", Description: "d",
		InstructorID: 1, Category: "programming", Level: "beginner",
		EnrollmentCount: 5,
	}
	require.NoError(t, db.Create(&drifted).Error)
	require.NoError(t, db.Create(&courseModels.Enrollment{UserID: user.ID, CourseID: drifted.ID}).Error)

	accurate := courseModels.Course{
		Title: "Accurate", Slug: "accurate", Description: "a",
		InstructorID: 1, Category: "programming", Level: "beginner",
		EnrollmentCount: 0,
	}
	require.NoError(t, db.Create(&accurate).Error)

	utils.ReconcileEnrollmentCounts()

	var healed courseModels.Course
	require.NoError(t, db.First(&healed, drifted.ID).Error)
	assert.Equal(t, 1, healed.EnrollmentCount)

	var untouched courseModels.Course
	require.NoError(t, db.First(&untouched, accurate.ID).Error)
	assert.Zero(t, untouched.EnrollmentCount)
}

func TestGenerateCertificateID(t *testing.T) {
	first := utils.GenerateCertificateID()
	second := utils.GenerateCertificateID()

	assert.Regexp(t, `^CERT-[0-9A-F]{8}$`, first)
	assert.NotEqual(t, first, second)
}
