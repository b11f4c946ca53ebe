// Package util provides common utility functions
package util

import (
	"testing"
)

func TestExtractYouTubeID(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{
			name:     "standard watch link",
			url:      "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			expected: "dQw4w9WgXcQ",
		},
		{
			name:     "short link",
			url:      "https://youtu.be/dQw4w9WgXcQ",
			expected: "dQw4w9WgXcQ",
		},
		{
			name:     "embed link",
			url:      "https://www.youtube.com/embed/dQw4w9WgXcQ",
			expected: "dQw4w9WgXcQ",
		},
		{
			name:     "watch link with extra params",
			url:      "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s",
			expected: "dQw4w9WgXcQ",
		},
		{
			name:     "share link with list param",
			url:      "https://youtu.be/dQw4w9WgXcQ?si=abc123",
			expected: "dQw4w9WgXcQ",
		},
		{
			name:     "not a url",
			url:      "not a url",
			expected: "",
		},
		{
			name:     "identifier too short",
			url:      "https://www.youtube.com/watch?v=short",
			expected: "",
		},
		{
			name:     "empty input",
			url:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractYouTubeID(tt.url)
			if got != tt.expected {
				t.Errorf("ExtractYouTubeID(%q) = %q, want %q", tt.url, got, tt.expected)
			}
		})
	}
}

func TestYouTubeThumbnailURL(t *testing.T) {
	got := YouTubeThumbnailURL("dQw4w9WgXcQ")
	want := "https://img.youtube.com/vi/dQw4w9WgXcQ/mqdefault.jpg"
	if got != want {
		t.Errorf("YouTubeThumbnailURL = %q, want %q", got, want)
	}
}
