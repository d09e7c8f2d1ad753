package course

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Go Basics", "go-basics"},
		{"  Advanced   Go  ", "advanced-go"},
		{"C++ & Rust: A Comparison!", "c-rust-a-comparison"},
		{"already-slugged", "already-slugged"},
		{"Trailing punctuation?!", "trailing-punctuation"},
		{"---", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.title), "title %q", tt.title)
	}
}

func TestRecomputeDerivedContentTotals(t *testing.T) {
	course := Course{
		Sections: []Section{
			{
				Lectures: []Lecture{
					{Duration: 10},
					{Duration: 20},
				},
			},
			{
				Lectures: []Lecture{
					{Duration: 5},
				},
			},
		},
	}

	course.RecomputeDerived()

	assert.Equal(t, 35, course.TotalDuration)
	assert.Equal(t, 3, course.TotalLectures)
}

func TestRecomputeDerivedRating(t *testing.T) {
	course := Course{
		Reviews: []Review{
			{Rating: 5},
			{Rating: 4},
			{Rating: 4},
		},
	}

	course.RecomputeDerived()

	assert.Equal(t, 4.3, course.AverageRating)
	assert.Equal(t, 3, course.RatingCount)
}

func TestRecomputeDerivedNoReviews(t *testing.T) {
	course := Course{
		AverageRating: 4.5,
		RatingCount:   9,
	}

	course.RecomputeDerived()

	assert.Zero(t, course.AverageRating)
	assert.Zero(t, course.RatingCount)
}

func TestRecomputeDerivedEmptyCourse(t *testing.T) {
	var course Course

	course.RecomputeDerived()

	assert.Zero(t, course.TotalDuration)
	assert.Zero(t, course.TotalLectures)
}
