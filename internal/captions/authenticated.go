package captions

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anatolykoptev/go_ytsum/internal/engine"
)

// Authenticated resolves captions through the authenticated Platform API.
type Authenticated struct {
	platform Platform
}

// NewAuthenticated returns a Resolver and Lister on top of p.
func NewAuthenticated(p Platform) *Authenticated {
	return &Authenticated{platform: p}
}

// Tracks lists the video's caption tracks in platform order.
func (a *Authenticated) Tracks(ctx context.Context, videoID string) ([]Track, error) {
	tracks, err := a.platform.ListTracks(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("list captions %s: %w", videoID, Classify(err))
	}
	return tracks, nil
}

// Resolve lists tracks, selects one, downloads it as SRT and flattens it.
func (a *Authenticated) Resolve(ctx context.Context, videoID, preferredLanguage string) (string, error) {
	engine.IncrCaptionRequests()
	text, err := a.resolve(ctx, videoID, preferredLanguage)
	if err != nil {
		engine.IncrCaptionErrors()
		return "", err
	}
	return text, nil
}

func (a *Authenticated) resolve(ctx context.Context, videoID, preferredLanguage string) (string, error) {
	tracks, err := a.Tracks(ctx, videoID)
	if err != nil {
		return "", err
	}
	track, ok := SelectTrack(tracks, preferredLanguage)
	if !ok {
		return "", fmt.Errorf("video %s: %w", videoID, ErrNoCaptions)
	}
	slog.Debug("captions: track selected",
		slog.String("video", videoID),
		slog.String("track", track.ID),
		slog.String("language", track.Language),
		slog.String("kind", track.Kind()))

	doc, err := a.platform.Download(ctx, track.ID, "srt")
	if err != nil {
		return "", fmt.Errorf("download caption %s: %w", track.ID, Classify(err))
	}
	text := ParseSRT(strings.TrimPrefix(string(doc), "\ufeff"))
	if text == "" {
		return "", fmt.Errorf("video %s track %s is empty: %w", videoID, track.ID, ErrNoCaptions)
	}
	return text, nil
}
