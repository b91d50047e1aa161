package utils

import (
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail checks email format
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(strings.TrimSpace(email))
}

// ValidateRating checks a review rating is in the 1-5 range
func ValidateRating(rating int) bool {
	return rating >= 1 && rating <= 5
}

// ValidateSessionStatus checks a declared session status value
func ValidateSessionStatus(status string) bool {
	switch status {
	case "scheduled", "completed", "cancelled":
		return true
	}
	return false
}

var validDays = map[string]bool{
	"monday":    true,
	"tuesday":   true,
	"wednesday": true,
	"thursday":  true,
	"friday":    true,
	"saturday":  true,
	"sunday":    true,
}

// ValidateAvailabilityDays checks a comma-joined day list. An empty
// string is valid: availability days are optional.
func ValidateAvailabilityDays(days string) bool {
	if strings.TrimSpace(days) == "" {
		return true
	}
	for _, day := range strings.Split(days, ",") {
		if !validDays[strings.ToLower(strings.TrimSpace(day))] {
			return false
		}
	}
	return true
}

// IsImageType reports whether a MIME type is an image type. Only image
// attachments keep their payload in a chat message.
func IsImageType(mimeType string) bool {
	return strings.HasPrefix(mimeType, "image/")
}
