package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"  John   Doe  ", "john-doe"},
		{"Already-Slugged", "already-slugged"},
		{"symbols!@#between$$words", "symbols-between-words"},
		{"42 is the answer", "42-is-the-answer"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "Slugify(%q)", tt.in)
	}
}
