package utils

import (
	"fmt"
	"log"
	"time"

	"lms/config"

	"github.com/go-resty/resty/v2"
)

// VerifyVideoURL checks that a lecture's video URL is reachable. Content
// authoring does not block on this; callers run it in a goroutine and the
// result is only logged.
func VerifyVideoURL(videoURL string) error {
	client := resty.New().
		SetTimeout(time.Duration(config.AppConfig.VideoProbeTimeout) * time.Second)

	resp, err := client.R().Head(videoURL)
	if err != nil {
		return err
	}

	if resp.StatusCode() >= 400 {
		return fmt.Errorf("video URL returned status %d", resp.StatusCode())
	}
	return nil
}

// ProbeLectureVideo logs a warning when a newly added lecture's video URL
// does not respond
func ProbeLectureVideo(courseID uint, videoURL string) {
	if videoURL == "" {
		return
	}
	if err := VerifyVideoURL(videoURL); err != nil {
		log.Printf("Warning: video URL unreachable for course %d: %v", courseID, err)
	}
}
