package captions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anatolykoptev/go_ytsum/internal/engine"
	"github.com/anatolykoptev/go_ytsum/internal/engine/sources"
)

// FetchFunc retrieves plain caption text without credentials.
// langs holds language hints in priority order and may be nil.
type FetchFunc func(ctx context.Context, videoID string, langs []string) (string, error)

// ListFunc enumerates caption tracks without credentials.
type ListFunc func(ctx context.Context, videoID string) ([]Track, error)

// Fallback resolves captions through an unauthenticated retrieval mechanism.
// Track choice belongs to that mechanism.
type Fallback struct {
	fetch FetchFunc
	list  ListFunc
}

// NewFallback wraps fetch and list. list may be nil.
func NewFallback(fetch FetchFunc, list ListFunc) *Fallback {
	return &Fallback{fetch: fetch, list: list}
}

// NewInnertubeFallback is the Fallback backed by the Innertube scraper.
func NewInnertubeFallback() *Fallback {
	return NewFallback(sources.FetchYouTubeTranscript, listInnertube)
}

func listInnertube(ctx context.Context, videoID string) ([]Track, error) {
	infos, err := sources.ListYouTubeCaptionTracks(ctx, videoID)
	if err != nil {
		return nil, err
	}
	tracks := make([]Track, 0, len(infos))
	for _, info := range infos {
		tracks = append(tracks, Track{Language: info.Language, Name: info.Name, AutoGenerated: info.AutoGenerated})
	}
	return tracks, nil
}

// Resolve asks the fallback mechanism for caption text, hinting preferredLanguage when set.
func (f *Fallback) Resolve(ctx context.Context, videoID, preferredLanguage string) (string, error) {
	engine.IncrCaptionRequests()
	engine.IncrCaptionFallbackRequests()

	var langs []string
	if preferredLanguage != "" {
		langs = []string{preferredLanguage}
	}
	text, err := f.fetch(ctx, videoID, langs)
	if err != nil {
		engine.IncrCaptionErrors()
		return "", fmt.Errorf("fallback captions %s: %w", videoID, fallbackError(err))
	}
	text = strings.TrimSpace(text)
	if text == "" {
		engine.IncrCaptionErrors()
		return "", fmt.Errorf("fallback captions %s: %w", videoID, ErrNoCaptions)
	}
	return text, nil
}

// Tracks lists caption tracks through the fallback mechanism.
func (f *Fallback) Tracks(ctx context.Context, videoID string) ([]Track, error) {
	if f.list == nil {
		return nil, fmt.Errorf("fallback captions %s: track listing unsupported: %w", videoID, ErrTransport)
	}
	tracks, err := f.list(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("fallback captions %s: %w", videoID, fallbackError(err))
	}
	return tracks, nil
}

func fallbackError(err error) error {
	if errors.Is(err, sources.ErrNoCaptionTracks) {
		return fmt.Errorf("%w: %w", ErrNoCaptions, err)
	}
	return Classify(err)
}
