package sources

import "regexp"

// videoIDPatterns are tried in order; the first capture wins.
// Watch, short-link and embed shapes come first, then watch URLs
// that carry v= after other query parameters.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([^&\n?#]+)`),
	regexp.MustCompile(`youtube\.com/watch\?.*v=([^&\n?#]+)`),
}

// ExtractVideoID pulls the video ID out of a YouTube URL.
// Reports false when no known URL shape matches; that is not an error.
func ExtractVideoID(rawURL string) (string, bool) {
	for _, re := range videoIDPatterns {
		if m := re.FindStringSubmatch(rawURL); len(m) >= 2 {
			return m[1], true
		}
	}
	return "", false
}

// WatchURL returns the canonical watch page for a video.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

// EmbedURL returns the embeddable player URL for a video.
func EmbedURL(videoID string) string {
	return "https://www.youtube.com/embed/" + videoID
}
