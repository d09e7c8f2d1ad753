package controllers_test

import (
	"fmt"
	"testing"

	"lms/database"
	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const createCourseBody = `{
	"title": "Practical Go Services",
	"description": "Build and operate production web services in Go.",
	"category": "programming",
	"level": "intermediate",
	"price": 79.99,
	"tags": ["go", "backend"]
}`

func TestCreateCourseLifecycle(t *testing.T) {
	app := setupTestApp(t)
	_, token := createUser(t, "instructor")

	status, envelope := doRequest(t, app,
		"POST", "/instructor/course/create", token, createCourseBody)
	require.Equal(t, 201, status, "message: %v", envelope["message"])

	data := dataField(t, envelope)
	courseID := int(data["ID"].(float64))
	assert.Equal(t, "practical-go-services", data["slug"])
	assert.Equal(t, courseModels.StatusDraft, data["status"])
	assert.Equal(t, false, data["is_published"])

	// Drafts are invisible in the public catalog
	status, envelope = doRequest(t, app, "GET", "/course/list", "", "")
	require.Equal(t, 200, status)
	assert.Empty(t, dataField(t, envelope)["courses"])

	status, _ = doRequest(t, app, "GET", fmt.Sprintf("/course/%d", courseID), "", "")
	assert.Equal(t, 404, status)

	// Publish, then the catalog picks it up
	status, envelope = doRequest(t, app,
		"POST", fmt.Sprintf("/instructor/course/%d/publish", courseID), token, "")
	require.Equal(t, 200, status)
	data = dataField(t, envelope)
	assert.Equal(t, true, data["is_published"])
	assert.Equal(t, courseModels.StatusPublished, data["status"])
	assert.NotNil(t, data["published_at"])

	status, envelope = doRequest(t, app, "GET", "/course/list", "", "")
	require.Equal(t, 200, status)
	assert.Len(t, dataField(t, envelope)["courses"], 1)

	status, envelope = doRequest(t, app, "GET", fmt.Sprintf("/course/%d", courseID), "", "")
	require.Equal(t, 200, status)
	assert.Equal(t, false, dataField(t, envelope)["is_enrolled"])

	// Unpublishing puts it back into draft without clearing publishedAt
	status, envelope = doRequest(t, app,
		"POST", fmt.Sprintf("/instructor/course/%d/publish", courseID), token, "")
	require.Equal(t, 200, status)
	data = dataField(t, envelope)
	assert.Equal(t, false, data["is_published"])
	assert.Equal(t, courseModels.StatusDraft, data["status"])
	assert.NotNil(t, data["published_at"])
}

func TestCreateCourseRequiresInstructorRole(t *testing.T) {
	app := setupTestApp(t)
	_, token := createUser(t, "student")

	status, _ := doRequest(t, app,
		"POST", "/instructor/course/create", token, createCourseBody)

	assert.Equal(t, 403, status)
}

func TestCreateCourseValidation(t *testing.T) {
	app := setupTestApp(t)
	_, token := createUser(t, "instructor")

	status, _ := doRequest(t, app,
		"POST", "/instructor/course/create", token,
		`{"title": "Go", "description": "short", "category": "", "level": "wizard"}`)

	assert.Equal(t, 422, status)
}

func TestCourseOwnership(t *testing.T) {
	app := setupTestApp(t)
	owner, _ := createUser(t, "instructor")
	_, rivalToken := createUser(t, "instructor")
	_, adminToken := createUser(t, "admin")
	course := createPublishedCourse(t, owner.ID)

	update := `{"title": "Renamed Go Course"}`

	status, _ := doRequest(t, app,
		"PUT", fmt.Sprintf("/instructor/course/%d", course.ID), rivalToken, update)
	assert.Equal(t, 403, status)

	status, _ = doRequest(t, app,
		"DELETE", fmt.Sprintf("/instructor/course/%d", course.ID), rivalToken, "")
	assert.Equal(t, 403, status)

	// Admins can modify anyone's course
	status, envelope := doRequest(t, app,
		"PUT", fmt.Sprintf("/instructor/course/%d", course.ID), adminToken, update)
	require.Equal(t, 200, status)
	data := dataField(t, envelope)
	assert.Equal(t, "Renamed Go Course", data["title"])
	assert.Equal(t, "renamed-go-course", data["slug"])
}

func TestAddSectionAndLectureRecomputeTotals(t *testing.T) {
	app := setupTestApp(t)
	_, token := createUser(t, "instructor")

	status, envelope := doRequest(t, app,
		"POST", "/instructor/course/create", token, createCourseBody)
	require.Equal(t, 201, status)
	courseID := int(dataField(t, envelope)["ID"].(float64))

	status, envelope = doRequest(t, app,
		"POST", fmt.Sprintf("/instructor/course/%d/section", courseID), token,
		`{"title": "Introduction"}`)
	require.Equal(t, 201, status)

	sections := dataField(t, envelope)["sections"].([]interface{})
	require.Len(t, sections, 1)
	sectionID := int(sections[0].(map[string]interface{})["ID"].(float64))

	status, envelope = doRequest(t, app,
		"POST", fmt.Sprintf("/instructor/course/%d/section/%d/lecture", courseID, sectionID), token,
		`{"title": "Why Go", "duration": 30, "video_url": "https://cdn.example.com/why-go.mp4"}`)
	require.Equal(t, 201, status)

	data := dataField(t, envelope)
	assert.Equal(t, float64(1), data["total_lectures"])
	assert.Equal(t, float64(30), data["total_duration"])

	// Lecture into a section of another course is rejected
	other := createPublishedCourse(t, 9999)
	status, _ = doRequest(t, app,
		"POST", fmt.Sprintf("/instructor/course/%d/section/%d/lecture", courseID, other.Sections[0].ID),
		token, `{"title": "Smuggled", "duration": 5}`)
	assert.Equal(t, 404, status)
}

func TestUpdateSyllabusRebuildsTree(t *testing.T) {
	app := setupTestApp(t)
	instructor, token := createUser(t, "instructor")
	course := createPublishedCourse(t, instructor.ID)

	syllabus := `{
		"sections": [
			{
				"title": "Rebuilt Section",
				"lectures": [
					{"title": "Only Lecture", "duration": 45}
				]
			}
		]
	}`

	status, envelope := doRequest(t, app,
		"PUT", fmt.Sprintf("/instructor/course/%d/syllabus", course.ID), token, syllabus)
	require.Equal(t, 200, status, "message: %v", envelope["message"])

	data := dataField(t, envelope)
	assert.Equal(t, float64(1), data["total_lectures"])
	assert.Equal(t, float64(45), data["total_duration"])

	var sectionCount, lectureCount int64
	database.Database.Db.Model(&courseModels.Section{}).Where("course_id = ?", course.ID).Count(&sectionCount)
	assert.Equal(t, int64(1), sectionCount)
	database.Database.Db.Model(&courseModels.Lecture{}).Count(&lectureCount)
	assert.Equal(t, int64(1), lectureCount)
}

func TestDeleteCourseCascades(t *testing.T) {
	app := setupTestApp(t)
	instructor, instructorToken := createUser(t, "instructor")
	_, studentToken := createUser(t, "student")
	course := createPublishedCourse(t, instructor.ID)

	status, _ := doRequest(t, app,
		"POST", fmt.Sprintf("/course/%d/enroll", course.ID), studentToken, "")
	require.Equal(t, 201, status)

	status, _ = doRequest(t, app,
		"DELETE", fmt.Sprintf("/instructor/course/%d", course.ID), instructorToken, "")
	require.Equal(t, 200, status)

	db := database.Database.Db
	var count int64
	db.Model(&courseModels.Course{}).Where("id = ?", course.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&courseModels.Section{}).Where("course_id = ?", course.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&courseModels.Enrollment{}).Where("course_id = ?", course.ID).Count(&count)
	assert.Zero(t, count)
}

func TestGetInstructorCourses(t *testing.T) {
	app := setupTestApp(t)
	first, firstToken := createUser(t, "instructor")
	second, _ := createUser(t, "instructor")
	createPublishedCourse(t, first.ID)
	createPublishedCourse(t, second.ID)

	status, envelope := doRequest(t, app, "GET", "/instructor/course/list", firstToken, "")
	require.Equal(t, 200, status)

	courses := dataField(t, envelope)["courses"].([]interface{})
	require.Len(t, courses, 1)
	assert.Equal(t, float64(first.ID), courses[0].(map[string]interface{})["instructor_id"])
}
