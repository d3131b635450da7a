package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		title    string
		expected string
	}{
		{"E2E Post", "e2e-post"},
		{"New Post", "new-post"},
		{"Hello, World!", "hello-world"},
		{"  spaced   out  ", "spaced-out"},
		{"Go 1.24 Release Notes", "go-1-24-release-notes"},
		{"UPPERCASE", "uppercase"},
		{"---", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.title))
		})
	}
}

func TestSlugifyIsDeterministic(t *testing.T) {
	// Identical titles produce identical slugs; collisions are not de-duplicated.
	assert.Equal(t, Slugify("Same Title"), Slugify("Same Title"))
}
