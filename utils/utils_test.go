package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDigitsOnly(t *testing.T) {
	assert.Equal(t, "5511999999999", DigitsOnly("+55 (11) 99999-9999"))
	assert.Equal(t, "", DigitsOnly("no digits"))
}

func TestFileExtension(t *testing.T) {
	assert.Equal(t, "jpg", FileExtension("photo.JPG"))
	assert.Equal(t, "png", FileExtension("dir.with.dots/logo.png"))
	assert.Equal(t, "", FileExtension("README"))
}

func TestFriendlyFileName(t *testing.T) {
	assert.Equal(t, "application.yml", FriendlyFileName("application.yml"))
	assert.Equal(t, "/definitely/elsewhere.yml", FriendlyFileName("/definitely/elsewhere.yml"))
}
