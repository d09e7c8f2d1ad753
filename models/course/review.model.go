package course

import "gorm.io/gorm"

// Review is a student rating on a course, one per user per course
type Review struct {
	gorm.Model
	CourseID uint   `json:"course_id" gorm:"not null;uniqueIndex:idx_course_reviewer"`
	UserID   uint   `json:"user_id" gorm:"not null;uniqueIndex:idx_course_reviewer"` // Who gave the review
	Rating   int    `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment  string `json:"comment" gorm:"size:1000;not null"`
}
