package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateCertificateID creates a readable certificate identifier
func GenerateCertificateID() string {
	return "CERT-" + strings.ToUpper(uuid.NewString()[:8])
}

// GenerateResetToken creates a single-use password reset token
func GenerateResetToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
