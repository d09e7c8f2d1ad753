package course

import "math"

// ProgressPercent computes the completion percentage for an enrollment.
// Rounding is half-up to the nearest integer. A course with no lectures
// yields 0, and the result is clamped to [0, 100] in case the completion
// set outgrows a shrunken course.
func ProgressPercent(completedCount, totalLectures int) int {
	if totalLectures <= 0 {
		return 0
	}

	percent := int(math.Round(float64(completedCount) / float64(totalLectures) * 100))

	if percent > 100 {
		percent = 100
	}
	if percent < 0 {
		percent = 0
	}
	return percent
}
