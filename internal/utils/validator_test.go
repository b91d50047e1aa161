package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last@sub.domain.org",
		"tag+filter@example.co",
	}
	for _, email := range valid {
		assert.True(t, ValidateEmail(email), email)
	}

	invalid := []string{
		"",
		"plain",
		"@example.com",
		"user@",
		"user@domain",
		"user @example.com",
	}
	for _, email := range invalid {
		assert.False(t, ValidateEmail(email), email)
	}
}

func TestValidateRating(t *testing.T) {
	for rating := 1; rating <= 5; rating++ {
		assert.True(t, ValidateRating(rating))
	}
	assert.False(t, ValidateRating(0))
	assert.False(t, ValidateRating(6))
	assert.False(t, ValidateRating(-1))
}

func TestValidateSessionStatus(t *testing.T) {
	assert.True(t, ValidateSessionStatus("scheduled"))
	assert.True(t, ValidateSessionStatus("completed"))
	assert.True(t, ValidateSessionStatus("cancelled"))
	assert.False(t, ValidateSessionStatus("paused"))
	assert.False(t, ValidateSessionStatus(""))
}

func TestValidateAvailabilityDays(t *testing.T) {
	assert.True(t, ValidateAvailabilityDays(""))
	assert.True(t, ValidateAvailabilityDays("Monday"))
	assert.True(t, ValidateAvailabilityDays("Monday, Wednesday, Friday"))
	assert.True(t, ValidateAvailabilityDays("saturday,sunday"))
	assert.False(t, ValidateAvailabilityDays("Monday, Funday"))
	assert.False(t, ValidateAvailabilityDays(","))
}

func TestIsImageType(t *testing.T) {
	assert.True(t, IsImageType("image/png"))
	assert.True(t, IsImageType("image/jpeg"))
	assert.False(t, IsImageType("application/pdf"))
	assert.False(t, IsImageType("text/plain"))
	assert.False(t, IsImageType(""))
}
