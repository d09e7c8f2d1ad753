package controllers_test

import (
	"fmt"
	"testing"

	"lms/database"
	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddReviewRequiresEnrollment(t *testing.T) {
	app := setupTestApp(t)
	instructor, _ := createUser(t, "instructor")
	_, token := createUser(t, "student")
	course := createPublishedCourse(t, instructor.ID)

	status, _ := doRequest(t, app,
		"POST", fmt.Sprintf("/course/%d/review", course.ID), token,
		`{"rating": 5, "comment": "great course"}`)

	assert.Equal(t, 403, status)
}

func TestAddReviewUpdatesCourseRating(t *testing.T) {
	app := setupTestApp(t)
	instructor, _ := createUser(t, "instructor")
	_, firstToken := createUser(t, "student")
	_, secondToken := createUser(t, "student")
	course := createPublishedCourse(t, instructor.ID)

	for _, token := range []string{firstToken, secondToken} {
		status, _ := doRequest(t, app,
			"POST", fmt.Sprintf("/course/%d/enroll", course.ID), token, "")
		require.Equal(t, 201, status)
	}

	status, envelope := doRequest(t, app,
		"POST", fmt.Sprintf("/course/%d/review", course.ID), firstToken,
		`{"rating": 5, "comment": "excellent"}`)
	require.Equal(t, 201, status)
	assert.Equal(t, float64(5), dataField(t, envelope)["average_rating"])

	status, envelope = doRequest(t, app,
		"POST", fmt.Sprintf("/course/%d/review", course.ID), secondToken,
		`{"rating": 4, "comment": "solid"}`)
	require.Equal(t, 201, status)
	assert.Equal(t, 4.5, dataField(t, envelope)["average_rating"])
	assert.Equal(t, float64(2), dataField(t, envelope)["rating_count"])

	var updated courseModels.Course
	require.NoError(t, database.Database.Db.First(&updated, course.ID).Error)
	assert.Equal(t, 4.5, updated.AverageRating)
	assert.Equal(t, 2, updated.RatingCount)
}

func TestAddReviewTwiceConflicts(t *testing.T) {
	app := setupTestApp(t)
	instructor, _ := createUser(t, "instructor")
	_, token := createUser(t, "student")
	course := createPublishedCourse(t, instructor.ID)

	status, _ := doRequest(t, app,
		"POST", fmt.Sprintf("/course/%d/enroll", course.ID), token, "")
	require.Equal(t, 201, status)

	status, _ = doRequest(t, app,
		"POST", fmt.Sprintf("/course/%d/review", course.ID), token,
		`{"rating": 5, "comment": "excellent"}`)
	require.Equal(t, 201, status)

	status, _ = doRequest(t, app,
		"POST", fmt.Sprintf("/course/%d/review", course.ID), token,
		`{"rating": 1, "comment": "changed my mind"}`)
	assert.Equal(t, 409, status)

	// Rejected duplicate leaves the aggregates untouched
	var updated courseModels.Course
	require.NoError(t, database.Database.Db.First(&updated, course.ID).Error)
	assert.Equal(t, float64(5), updated.AverageRating)
	assert.Equal(t, 1, updated.RatingCount)
}

func TestAddReviewValidation(t *testing.T) {
	app := setupTestApp(t)
	instructor, _ := createUser(t, "instructor")
	_, token := createUser(t, "student")
	course := createPublishedCourse(t, instructor.ID)

	status, _ := doRequest(t, app,
		"POST", fmt.Sprintf("/course/%d/review", course.ID), token,
		`{"rating": 6, "comment": "off the scale"}`)

	assert.Equal(t, 422, status)
}

func TestGetCourseReviews(t *testing.T) {
	app := setupTestApp(t)
	instructor, _ := createUser(t, "instructor")
	_, token := createUser(t, "student")
	course := createPublishedCourse(t, instructor.ID)

	status, _ := doRequest(t, app,
		"POST", fmt.Sprintf("/course/%d/enroll", course.ID), token, "")
	require.Equal(t, 201, status)

	status, _ = doRequest(t, app,
		"POST", fmt.Sprintf("/course/%d/review", course.ID), token,
		`{"rating": 4, "comment": "solid"}`)
	require.Equal(t, 201, status)

	status, envelope := doRequest(t, app,
		"GET", fmt.Sprintf("/course/%d/reviews", course.ID), "", "")
	require.Equal(t, 200, status)

	data := dataField(t, envelope)
	reviews := data["reviews"].([]interface{})
	assert.Len(t, reviews, 1)
	assert.Equal(t, float64(4), data["average_rating"])

	status, _ = doRequest(t, app, "GET", "/course/9999/reviews", "", "")
	assert.Equal(t, 404, status)
}
