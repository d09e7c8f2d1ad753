package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Section is an ordered grouping of lectures within a course
type Section struct {
	gorm.Model
	CourseID    uint      `json:"course_id" gorm:"index;not null"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	OrderIndex  int       `json:"order_index" gorm:"default:0"` // Section order in course
	Lectures    []Lecture `json:"lectures" gorm:"constraint:OnDelete:CASCADE"`
}

// Lecture is the atomic content unit within a section
type Lecture struct {
	gorm.Model
	SectionID   uint           `json:"section_id" gorm:"index;not null"`
	Title       string         `json:"title" gorm:"not null"`
	Description string         `json:"description" gorm:"type:text"`
	VideoURL    string         `json:"video_url" gorm:"not null"`
	Duration    int            `json:"duration" gorm:"default:0"` // minutes
	Resources   datatypes.JSON `json:"resources"`                 // [{title, url, type}]
	OrderIndex  int            `json:"order_index" gorm:"default:0"`
	IsFree      bool           `json:"is_free" gorm:"default:false"` // free preview
}
