package validator

import (
	"testing"

	"github.com/gabriel-vasile/mimetype"
	"github.com/stretchr/testify/assert"
)

func TestValidator(t *testing.T) {
	t.Run("First message per key wins", func(t *testing.T) {
		v := New()
		v.Check(false, "password", "too short")
		v.Check(false, "password", "no digit")
		v.Check(true, "email", "unused")
		assert.False(t, v.Valid())
		assert.Equal(t, map[string]string{"password": "too short"}, v.Errors)
	})

	t.Run("Helpers", func(t *testing.T) {
		assert.True(t, PermittedValue("draft", "draft", "published"))
		assert.False(t, PermittedValue("archived", "draft", "published"))
		assert.True(t, Unique([]string{"go", "sql"}))
		assert.False(t, Unique([]string{"go", "go"}))
		assert.True(t, Matches("jane@example.com", EmailRX))
		assert.False(t, Matches("jane@", EmailRX))
		assert.True(t, Matches("my-first_post2", SlugRX))
		assert.False(t, Matches("my post", SlugRX))
	})
}

func TestMime(t *testing.T) {
	png := mimetype.Detect([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"))
	assert.True(t, Mime(png, "image/jpeg", "image/png"))

	text := mimetype.Detect([]byte("just some words"))
	assert.False(t, Mime(text, "image/jpeg", "image/png"))
}
