package pipeline

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anatolykoptev/go_ytsum/internal/captions"
	"github.com/anatolykoptev/go_ytsum/internal/summary"
)

type stubPlatform struct {
	tracks     []captions.Track
	docs       map[string]string
	downloaded []string
}

func (s *stubPlatform) ListTracks(context.Context, string) ([]captions.Track, error) {
	return s.tracks, nil
}

func (s *stubPlatform) Download(_ context.Context, trackID, _ string) ([]byte, error) {
	s.downloaded = append(s.downloaded, trackID)
	return []byte(s.docs[trackID]), nil
}

type recordingCompleter struct {
	users []string
}

func (r *recordingCompleter) Complete(_ context.Context, _, user string) (string, error) {
	r.users = append(r.users, user)
	return fmt.Sprintf("S%d", len(r.users)), nil
}

// A short-link URL, an authenticated key, Spanish plus English auto tracks and
// a 20000-rune caption: English is chosen and three chunks are summarized in order.
func TestRunEndToEndWithRealResolverAndSummarizer(t *testing.T) {
	caption := strings.Repeat("ж", 20000)
	platform := &stubPlatform{
		tracks: []captions.Track{
			{ID: "es-1", Language: "es"},
			{ID: "en-1", Language: "en", AutoGenerated: true},
		},
		docs: map[string]string{
			"es-1": "1\n00:00:00,000 --> 00:00:01,000\nhola\n\n",
			"en-1": "1\n00:00:00,000 --> 00:00:01,000\n" + caption + "\n\n",
		},
	}
	completer := &recordingCompleter{}

	p := New(Deps{
		Authenticated: func(context.Context, string) (CaptionSource, error) {
			return captions.NewAuthenticated(platform), nil
		},
		Summarizer: func(string) Summarizer {
			return summary.New(completer)
		},
	})

	res, err := p.Run(context.Background(), Request{
		URL:             "https://youtu.be/abc123",
		PlatformKey:     "yt-key",
		ModelKey:        "sk-key",
		IncludeCaptions: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "abc123", res.VideoID)
	assert.Equal(t, ModeAuthenticated, res.Mode)
	assert.Equal(t, []string{"en-1"}, platform.downloaded)
	assert.Equal(t, 3, res.Chunks)
	assert.Equal(t, 20000, res.CaptionChars)
	assert.Equal(t, caption, res.Captions)
	assert.Equal(t, "S1\n\nS2\n\nS3", res.Summary)

	require.Len(t, completer.users, 3)
	for i, want := range []int{8000, 8000, 4000} {
		assert.Equal(t, want, strings.Count(completer.users[i], "ж"), "chunk %d", i+1)
	}
}
