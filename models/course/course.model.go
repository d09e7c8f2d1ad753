package course

import (
	"encoding/json"
	"math"
	"regexp"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Course status values
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// Course represents a marketplace course. Sections, lectures and reviews are
// owned child rows: they have no lifecycle outside their course, and the write
// path saves the whole tree in one transaction.
type Course struct {
	gorm.Model
	Title            string         `json:"title" gorm:"size:200;not null"`
	Slug             string         `json:"slug" gorm:"index"`
	Description      string         `json:"description" gorm:"size:2000;not null"`
	ShortDescription string         `json:"short_description" gorm:"size:300"`
	InstructorID     uint           `json:"instructor_id" gorm:"index;not null"`
	Category         string         `json:"category" gorm:"not null"`
	Level            string         `json:"level" gorm:"not null"` // Beginner, Intermediate, Advanced, All Levels
	Language         string         `json:"language" gorm:"default:'English'"`
	Price            float64        `json:"price" gorm:"default:0"`
	DiscountPrice    float64        `json:"discount_price" gorm:"default:0"`
	ThumbnailURL     string         `json:"thumbnail_url"`
	PreviewVideoURL  string         `json:"preview_video_url"`
	Requirements     datatypes.JSON `json:"requirements"`
	WhatYouWillLearn datatypes.JSON `json:"what_you_will_learn"`
	TargetAudience   datatypes.JSON `json:"target_audience"`
	Tags             datatypes.JSON `json:"tags"`
	Sections         []Section      `json:"sections" gorm:"constraint:OnDelete:CASCADE"`
	Reviews          []Review       `json:"reviews" gorm:"constraint:OnDelete:CASCADE"`
	IsPublished      bool           `json:"is_published" gorm:"default:false"`
	PublishedAt      *time.Time     `json:"published_at"`
	Status           string         `json:"status" gorm:"default:'draft'"` // draft, published, archived
	EnrollmentCount  int            `json:"enrollment_count" gorm:"default:0"`
	TotalDuration    int            `json:"total_duration" gorm:"default:0"` // minutes, derived
	TotalLectures    int            `json:"total_lectures" gorm:"default:0"` // derived
	AverageRating    float64        `json:"average_rating" gorm:"default:0"` // derived
	RatingCount      int            `json:"rating_count" gorm:"default:0"`   // derived
}

var (
	slugNonWord = regexp.MustCompile(`[^\w\s-]`)
	slugSpaces  = regexp.MustCompile(`\s+`)
	slugHyphens = regexp.MustCompile(`-+`)
)

// Slugify derives a URL slug from a course title. Collisions are not resolved.
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugNonWord.ReplaceAllString(slug, "")
	slug = slugSpaces.ReplaceAllString(slug, "-")
	slug = slugHyphens.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// RecomputeDerived refreshes totalDuration, totalLectures, averageRating and
// ratingCount from the loaded section/lecture tree and review list. Callers
// must invoke it right before persisting a content or review mutation, with
// the full tree preloaded; derived values are never trusted from client input.
func (course *Course) RecomputeDerived() {
	totalDuration := 0
	totalLectures := 0
	for _, section := range course.Sections {
		totalLectures += len(section.Lectures)
		for _, lecture := range section.Lectures {
			totalDuration += lecture.Duration
		}
	}
	course.TotalDuration = totalDuration
	course.TotalLectures = totalLectures

	if len(course.Reviews) == 0 {
		course.AverageRating = 0
		course.RatingCount = 0
		return
	}

	sum := 0
	for _, review := range course.Reviews {
		sum += review.Rating
	}
	// Mean rating, rounded to one decimal place
	course.AverageRating = math.Round(float64(sum)/float64(len(course.Reviews))*10) / 10
	course.RatingCount = len(course.Reviews)
}

// StringList marshals a string slice into a JSON column value
func StringList(values []string) datatypes.JSON {
	if values == nil {
		values = []string{}
	}
	data, _ := json.Marshal(values)
	return data
}
