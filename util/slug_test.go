package util

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"My Profile Photo", "my-profile-photo"},
		{"  Leading Spaces  ", "leading-spaces"},
		{"UPPER CASE", "upper-case"},
		{"special!@#$%chars", "specialchars"},
		{"multiple---hyphens", "multiple-hyphens"},
		{"--leading-trailing--", "leading-trailing"},
		{"Hello   World", "hello-world"},
		{"café", "caf"},
		{"jane_smith", "jane_smith"},
		{"", ""},
		{"---", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSafeFileName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"/home/ada/Pictures/My Photo.PNG", "my-photo.png"},
		{"avatar.jpg", "avatar.jpg"},
		{"/tmp/!!!.gif", "file.gif"},
		{"README", "readme"},
	}
	for _, tt := range tests {
		if got := SafeFileName(tt.input); got != tt.want {
			t.Errorf("SafeFileName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSuggestUserName(t *testing.T) {
	if got := SuggestUserName("Ada", "Lovelace"); got != "ada_lovelace" {
		t.Errorf("got %q", got)
	}
	if got := SuggestUserName("", ""); got != "" {
		t.Errorf("got %q", got)
	}
}
