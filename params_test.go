package mdblog

import (
	"strings"
	"testing"
)

func TestPostParamsValidate(t *testing.T) {
	tests := []struct {
		slug  string
		valid bool
	}{
		{"hello", true},
		{"Hello-World_2", true},
		{"v1.2", true},
		{"with space", true},
		{"", false},
		{".", false},
		{"..", false},
		{"../secret", false},
		{"a/b", false},
		{`a\b`, false},
		{"nul\x00byte", false},
		{strings.Repeat("x", 256), false},
	}
	for _, tt := range tests {
		err := PostParams{Slug: tt.slug}.Validate()
		if tt.valid && err != nil {
			t.Errorf("Validate(%q) = %v, want nil", tt.slug, err)
		}
		if !tt.valid {
			if err == nil {
				t.Errorf("Validate(%q) = nil, want error", tt.slug)
			} else if !IsInvalidParams(err) {
				t.Errorf("Validate(%q) error %v is not an invalid-params error", tt.slug, err)
			}
		}
	}
}
