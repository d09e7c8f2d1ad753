package course

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment binds one user to one course and tracks their progress. The
// (user_id, course_id) unique index is the only duplicate-enrollment guard;
// a losing concurrent enroll is rejected by the store and surfaced as a
// conflict.
type Enrollment struct {
	gorm.Model
	UserID              uint                `json:"user_id" gorm:"not null;uniqueIndex:idx_user_course"`
	CourseID            uint                `json:"course_id" gorm:"not null;uniqueIndex:idx_user_course"`
	Course              *Course             `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	Progress            int                 `json:"progress" gorm:"default:0"` // completion percentage (0-100)
	CompletedLectures   []LectureCompletion `json:"completed_lectures" gorm:"constraint:OnDelete:CASCADE"`
	LastAccessedLecture *uint               `json:"last_accessed_lecture"`
	LastAccessedAt      time.Time           `json:"last_accessed_at"`
	IsCompleted         bool                `json:"is_completed" gorm:"default:false"`
	CompletedAt         *time.Time          `json:"completed_at"`
	CertificateIssued   bool                `json:"certificate_issued" gorm:"default:false"`
	CertificateID       string              `json:"certificate_id" gorm:"default:''"`
	Notes               []Note              `json:"notes" gorm:"constraint:OnDelete:CASCADE"`
}

// LectureCompletion records one completed lecture within an enrollment.
// A lecture appears at most once per enrollment.
type LectureCompletion struct {
	gorm.Model
	EnrollmentID uint      `json:"enrollment_id" gorm:"not null;uniqueIndex:idx_enrollment_lecture"`
	LectureID    uint      `json:"lecture_id" gorm:"not null;uniqueIndex:idx_enrollment_lecture"`
	CompletedAt  time.Time `json:"completed_at"`
	WatchTime    int       `json:"watch_time" gorm:"default:0"` // seconds
}

// Note is a student's note on a lecture, addressable and removable on its own
type Note struct {
	gorm.Model
	EnrollmentID uint   `json:"enrollment_id" gorm:"index;not null"`
	LectureID    uint   `json:"lecture_id" gorm:"not null"`
	Content      string `json:"content" gorm:"size:2000;not null"`
	Timestamp    int    `json:"timestamp" gorm:"default:0"` // video position in seconds
}

// HasCompleted reports whether the lecture is already in the completion set
func (enrollment *Enrollment) HasCompleted(lectureID uint) bool {
	for _, completion := range enrollment.CompletedLectures {
		if completion.LectureID == lectureID {
			return true
		}
	}
	return false
}

// ApplyProgress recomputes the progress percentage against the course's
// current lecture total and fires the one-way completion latch. Once an
// enrollment is completed, both the flag and the stored percentage stay
// fixed even if the course later gains lectures; the stale percentage is
// accepted rather than re-derived retroactively.
func (enrollment *Enrollment) ApplyProgress(totalLectures int) {
	if enrollment.IsCompleted {
		return
	}

	enrollment.Progress = ProgressPercent(len(enrollment.CompletedLectures), totalLectures)

	if enrollment.Progress >= 100 {
		enrollment.IsCompleted = true
		now := time.Now()
		enrollment.CompletedAt = &now
	}
}
