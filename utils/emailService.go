package utils

import (
	"fmt"
	"net/smtp"
	"strings"

	"lms/config"
)

// SendEmail sends an HTML email through the configured SMTP account
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: CourseHub <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}

// HTML wrapper shared by all notification emails
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1A2238; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1A2238; line-height: 1.6; }
			.content h2 { color: #1A2238; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #9DAAF2; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>COURSEHUB</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 CourseHub. All rights reserved.<br>
				Keep learning, one lecture at a time.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// SendWelcomeEmail greets a freshly registered user
func SendWelcomeEmail(email, name string) {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your account has been created. Browse the catalog, enroll in a course and start learning right away.</p>
	`, name)

	if err := SendEmail([]string{email}, "Welcome to CourseHub", getEmailTemplate("Welcome Aboard", body)); err != nil {
		fmt.Println("Failed to send welcome email:", err)
	}
}

// SendEnrollmentEmail confirms a new course enrollment
func SendEnrollmentEmail(email, name, courseTitle string) {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>You are now enrolled in:</p>
		<div class="info-box"><strong>%s</strong></div>
		<p>Your progress is tracked automatically as you complete lectures.</p>
	`, name, courseTitle)

	if err := SendEmail([]string{email}, "Course Enrollment Confirmation", getEmailTemplate("Enrollment Confirmed", body)); err != nil {
		fmt.Println("Failed to send enrollment email:", err)
	}
}

// SendPasswordResetEmail mails a single-use reset token
func SendPasswordResetEmail(email, name, token string) {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>We received a request to reset your password. Use the token below within the next hour:</p>
		<div class="info-box"><strong>%s</strong></div>
		<p>If you did not request this, you can safely ignore this email.</p>
	`, name, token)

	if err := SendEmail([]string{email}, "Password Reset Request", getEmailTemplate("Reset Your Password", body)); err != nil {
		fmt.Println("Failed to send password reset email:", err)
	}
}

// SendCourseCompletionEmail congratulates a student on finishing a course
func SendCourseCompletionEmail(email, name, courseTitle, certificateID string) {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Congratulations! You completed:</p>
		<div class="info-box"><strong>%s</strong></div>
		<p>Your certificate id is <strong>%s</strong>.</p>
	`, name, courseTitle, certificateID)

	if err := SendEmail([]string{email}, "Course Completed - Certificate Issued", getEmailTemplate("Course Completed", body)); err != nil {
		fmt.Println("Failed to send completion email:", err)
	}
}
