// Package captions resolves a video's caption track into plain text.
//
// Two resolvers share one contract: Authenticated talks to the YouTube Data
// API (list tracks, pick one, download SRT, flatten it) and Fallback wraps the
// unauthenticated Innertube scraper. Callers choose the variant; nothing here
// inspects credentials.
package captions

import "context"

// Track is one caption option offered for a video.
type Track struct {
	ID            string `json:"id,omitempty"`
	Language      string `json:"language"`
	Name          string `json:"name,omitempty"`
	AutoGenerated bool   `json:"auto_generated"`
}

// Kind returns "auto-generated" or "manual".
func (t Track) Kind() string {
	if t.AutoGenerated {
		return "auto-generated"
	}
	return "manual"
}

// Resolver turns a video ID into flattened caption text.
// preferredLanguage may be empty. The returned text is never empty on success.
type Resolver interface {
	Resolve(ctx context.Context, videoID, preferredLanguage string) (string, error)
}

// Lister enumerates the caption tracks of a video.
type Lister interface {
	Tracks(ctx context.Context, videoID string) ([]Track, error)
}

// Platform is the authenticated caption API. Failures carrying an upstream
// reason are returned as *PlatformError.
type Platform interface {
	ListTracks(ctx context.Context, videoID string) ([]Track, error)
	Download(ctx context.Context, trackID, format string) ([]byte, error)
}
