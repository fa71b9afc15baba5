package util

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Notion AI", "notion-ai"},
		{"GPT-4 Turbo", "gpt-4-turbo"},
		{"  Midjourney  ", "midjourney"},
		{"Stable_Diffusion", "stable-diffusion"},
		{"Read/Write Helper", "read-write-helper"},
		{"UPPER", "upper"},
		{"🤖 Robots!", "robots"},
		{"--edges--", "edges"},
		{"multi   space", "multi-space"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Slugify(tt.input); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestInitials(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Notion AI", "NA"},
		{"Midjourney", "MI"},
		{"claude", "CL"},
		{"x", "X"},
		{"", ""},
		{"three word name", "TW"},
	}

	for _, tt := range tests {
		if got := Initials(tt.input); got != tt.want {
			t.Errorf("Initials(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
