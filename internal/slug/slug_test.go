package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Simple", "Hello World", "hello-world"},
		{"Accents", "Crème Brûlée", "creme-brulee"},
		{"Punctuation", "Go 1.22: what's new?", "go-122-whats-new"},
		{"Collapses dashes and spaces", "  a -- b   c ", "a-b-c"},
		{"Trims underscores", "_private_", "private"},
		{"Non latin dropped", "日本 travel", "travel"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Make(tt.input))
		})
	}
}

func TestValidateOrCreate(t *testing.T) {
	custom := "my_custom-slug"
	invalid := "not a slug!"
	empty := ""
	assert.Equal(t, "my_custom-slug", ValidateOrCreate("Some Title", &custom))
	assert.Equal(t, "some-title", ValidateOrCreate("Some Title", &invalid))
	assert.Equal(t, "some-title", ValidateOrCreate("Some Title", &empty))
	assert.Equal(t, "some-title", ValidateOrCreate("Some Title", nil))
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Distributed Systems", Title("distributed SYSTEMS"))
	assert.Equal(t, "Go", Title("go"))
	assert.Equal(t, "Python3rocks", Title("python3rocks"))
	assert.Equal(t, "It's Here", Title("it's here"))
}
