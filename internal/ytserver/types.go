package ytserver

import "github.com/anatolykoptev/go_ytsum/internal/captions"

// SummarizeInput is the youtube_summarize tool input.
type SummarizeInput struct {
	URL             string `json:"url" jsonschema:"YouTube video URL (watch, youtu.be or embed link)"`
	Language        string `json:"language,omitempty" jsonschema:"Preferred caption language code, e.g. en, de, pt-BR. Default: English, then the first track"`
	YouTubeAPIKey   string `json:"youtube_api_key,omitempty" jsonschema:"YouTube Data API key for this request. Empty falls back to YOUTUBE_API_KEY, then to unauthenticated caption scraping. When the server has YOUTUBE_ACCESS_TOKEN set, any key only selects the Data API path and requests run under that OAuth token"`
	LLMAPIKey       string `json:"llm_api_key,omitempty" jsonschema:"Language model API key for this request. Empty falls back to LLM_API_KEY"`
	IncludeCaptions bool   `json:"include_captions,omitempty" jsonschema:"Also return the full caption text the summary was built from"`
}

// CaptionsInput is the youtube_captions tool input.
type CaptionsInput struct {
	URL           string `json:"url" jsonschema:"YouTube video URL"`
	YouTubeAPIKey string `json:"youtube_api_key,omitempty" jsonschema:"YouTube Data API key. Empty falls back to YOUTUBE_API_KEY, then to unauthenticated listing. When the server has YOUTUBE_ACCESS_TOKEN set, any key only selects the Data API path and requests run under that OAuth token"`
}

// CaptionTrackItem is one listed track.
type CaptionTrackItem struct {
	ID       string `json:"id,omitempty"`
	Language string `json:"language"`
	Name     string `json:"name,omitempty"`
	Kind     string `json:"kind"`
	Label    string `json:"label"`
}

// CaptionsOutput is the youtube_captions tool output.
type CaptionsOutput struct {
	VideoID string             `json:"video_id"`
	Mode    string             `json:"mode"`
	Tracks  []CaptionTrackItem `json:"tracks"`
}

// VideoIDInput is the youtube_video_id tool input.
type VideoIDInput struct {
	URL string `json:"url" jsonschema:"Any text containing a YouTube video link"`
}

// VideoIDOutput is the youtube_video_id tool output. Valid=false is a normal outcome.
type VideoIDOutput struct {
	Valid    bool   `json:"valid"`
	VideoID  string `json:"video_id,omitempty"`
	WatchURL string `json:"watch_url,omitempty"`
	EmbedURL string `json:"embed_url,omitempty"`
}

func trackItems(tracks []captions.Track) []CaptionTrackItem {
	items := make([]CaptionTrackItem, 0, len(tracks))
	for _, t := range tracks {
		items = append(items, CaptionTrackItem{
			ID:       t.ID,
			Language: t.Language,
			Name:     t.Name,
			Kind:     t.Kind(),
			Label:    t.Language + " (" + t.Kind() + ")",
		})
	}
	return items
}
