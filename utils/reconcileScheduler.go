package utils

import (
	"log"
	"time"

	"lms/database"
	courseModels "lms/models/course"

	"github.com/robfig/cron/v3"
)

// logReconciler logs reconciliation events with timestamp
func logReconciler(message string) {
	log.Printf("[ENROLLMENT-RECONCILER %s] %s", time.Now().Format(time.RFC3339), message)
}

// ReconcileEnrollmentCounts recounts enrollments per course and corrects any
// drifted enrollment_count values. The enroll path increments the counter in
// a separate write from the enrollment insert, so a crash in between leaves
// the counter understated until this sweep runs.
func ReconcileEnrollmentCounts() {
	db := database.Database.Db

	var courses []courseModels.Course
	if err := db.Select("id", "enrollment_count").Find(&courses).Error; err != nil {
		logReconciler("Error fetching courses: " + err.Error())
		return
	}

	fixed := 0
	for _, course := range courses {
		var actual int64
		if err := db.Model(&courseModels.Enrollment{}).Where("course_id = ?", course.ID).Count(&actual).Error; err != nil {
			logReconciler("Error counting enrollments: " + err.Error())
			continue
		}

		if int(actual) == course.EnrollmentCount {
			continue
		}

		if err := db.Model(&courseModels.Course{}).Where("id = ?", course.ID).
			UpdateColumn("enrollment_count", actual).Error; err != nil {
			logReconciler("Error updating enrollment count: " + err.Error())
			continue
		}
		fixed++
	}

	if fixed > 0 {
		logReconciler("Corrected enrollment counts")
	}
}

// StartReconcileScheduler runs the enrollment-count sweep every hour
func StartReconcileScheduler() *cron.Cron {
	scheduler := cron.New()

	if _, err := scheduler.AddFunc("@hourly", ReconcileEnrollmentCounts); err != nil {
		log.Fatalf("Failed to schedule enrollment reconciliation: %v", err)
	}

	scheduler.Start()
	logReconciler("Scheduler started")
	return scheduler
}
