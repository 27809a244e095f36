package sources

import "testing"

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		want   string
		wantOK bool
	}{
		{"watch", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"watch with extra params", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ", true},
		{"watch v not first", "https://www.youtube.com/watch?feature=share&v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"short link", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"short link with query", "https://youtu.be/dQw4w9WgXcQ?si=abc", "dQw4w9WgXcQ", true},
		{"embed", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"embed with fragment", "https://www.youtube.com/embed/dQw4w9WgXcQ#t=5", "dQw4w9WgXcQ", true},
		{"no scheme", "youtu.be/abc123", "abc123", true},
		{"other site", "https://vimeo.com/12345", "", false},
		{"channel page", "https://www.youtube.com/@golang", "", false},
		{"empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractVideoID(tt.url)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ExtractVideoID(%q) = (%q, %v), want (%q, %v)", tt.url, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestExtractVideoIDSameAcrossShapes(t *testing.T) {
	urls := []string{
		"https://www.youtube.com/watch?v=abc123",
		"https://youtu.be/abc123",
		"https://www.youtube.com/embed/abc123",
	}
	for _, u := range urls {
		id, ok := ExtractVideoID(u)
		if !ok || id != "abc123" {
			t.Errorf("ExtractVideoID(%q) = (%q, %v), want abc123", u, id, ok)
		}
	}
}

func TestEmbedAndWatchURL(t *testing.T) {
	if got := EmbedURL("abc123"); got != "https://www.youtube.com/embed/abc123" {
		t.Errorf("EmbedURL = %q", got)
	}
	if got := WatchURL("abc123"); got != "https://www.youtube.com/watch?v=abc123" {
		t.Errorf("WatchURL = %q", got)
	}
}
