package course

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressPercent(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		total     int
		want      int
	}{
		{"no lectures", 0, 0, 0},
		{"negative total", 3, -1, 0},
		{"nothing completed", 0, 10, 0},
		{"quarter", 1, 4, 25},
		{"one third rounds up", 1, 3, 33},
		{"two thirds rounds up", 2, 3, 67},
		{"half", 1, 2, 50},
		{"exact tenth", 7, 10, 70},
		{"all completed", 4, 4, 100},
		{"one of eight", 1, 8, 13},
		{"completions exceed shrunken course", 5, 3, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProgressPercent(tt.completed, tt.total))
		})
	}
}

func TestApplyProgressUpdatesPercentage(t *testing.T) {
	enrollment := Enrollment{
		CompletedLectures: []LectureCompletion{
			{LectureID: 1},
			{LectureID: 2},
		},
	}

	enrollment.ApplyProgress(4)

	assert.Equal(t, 50, enrollment.Progress)
	assert.False(t, enrollment.IsCompleted)
	assert.Nil(t, enrollment.CompletedAt)
}

func TestApplyProgressFiresCompletionLatch(t *testing.T) {
	enrollment := Enrollment{
		CompletedLectures: []LectureCompletion{
			{LectureID: 1},
			{LectureID: 2},
			{LectureID: 3},
		},
	}

	enrollment.ApplyProgress(3)

	assert.Equal(t, 100, enrollment.Progress)
	assert.True(t, enrollment.IsCompleted)
	require.NotNil(t, enrollment.CompletedAt)
}

func TestApplyProgressLatchIsOneWay(t *testing.T) {
	enrollment := Enrollment{
		CompletedLectures: []LectureCompletion{
			{LectureID: 1},
			{LectureID: 2},
		},
	}

	enrollment.ApplyProgress(2)
	require.True(t, enrollment.IsCompleted)
	completedAt := enrollment.CompletedAt

	// Course later grows; the enrollment stays completed at 100
	enrollment.ApplyProgress(10)

	assert.True(t, enrollment.IsCompleted)
	assert.Equal(t, 100, enrollment.Progress)
	assert.Equal(t, completedAt, enrollment.CompletedAt)
}

func TestApplyProgressEmptyCourse(t *testing.T) {
	enrollment := Enrollment{}

	enrollment.ApplyProgress(0)

	assert.Equal(t, 0, enrollment.Progress)
	assert.False(t, enrollment.IsCompleted)
}

func TestHasCompleted(t *testing.T) {
	enrollment := Enrollment{
		CompletedLectures: []LectureCompletion{
			{LectureID: 7},
		},
	}

	assert.True(t, enrollment.HasCompleted(7))
	assert.False(t, enrollment.HasCompleted(8))
}
