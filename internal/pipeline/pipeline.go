// Package pipeline drives one summarization request end to end:
// URL → video ID → caption text → chunked summary.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/anatolykoptev/go_ytsum/internal/captions"
	"github.com/anatolykoptev/go_ytsum/internal/engine"
	"github.com/anatolykoptev/go_ytsum/internal/engine/sources"
	"github.com/anatolykoptev/go_ytsum/internal/summary"
)

// Orchestration failures.
var (
	ErrInvalidURL       = errors.New("not a recognised YouTube video URL")
	ErrModelKeyRequired = errors.New("language model API key is required")
)

// Resolution modes reported in Result.Mode.
const (
	ModeAuthenticated = "authenticated"
	ModeFallback      = "fallback"
)

// Summarizer is the chunked summarization step.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// CaptionSource is a resolver that can also list tracks.
type CaptionSource interface {
	captions.Resolver
	captions.Lister
}

// Deps are the collaborators a Pipeline is built from.
type Deps struct {
	// Authenticated builds the Data API resolver for a platform key.
	Authenticated func(ctx context.Context, platformKey string) (CaptionSource, error)
	// Fallback is used when no platform key is supplied.
	Fallback CaptionSource
	// Summarizer builds a summarizer for a model key.
	Summarizer func(modelKey string) Summarizer
	// ChunkSize is the summarizer's chunk length, for reporting. 0 = default.
	ChunkSize int
}

// Pipeline runs requests against its Deps. It keeps no per-request state.
type Pipeline struct {
	deps Deps
}

// New creates a Pipeline.
func New(d Deps) *Pipeline {
	return &Pipeline{deps: d}
}

// Request is one summarization request. Keys are used for this request only.
type Request struct {
	URL             string
	PlatformKey     string // empty selects the unauthenticated fallback
	ModelKey        string
	Language        string // preferred caption language, optional
	IncludeCaptions bool   // copy the caption text into Result.Captions
}

// Result is the outcome of a successful request.
type Result struct {
	VideoID      string `json:"video_id"`
	EmbedURL     string `json:"embed_url"`
	Mode         string `json:"mode"`
	CaptionChars int    `json:"caption_chars"`
	Chunks       int    `json:"chunks"`
	Summary      string `json:"summary"`
	Filename     string `json:"filename"`
	Captions     string `json:"captions,omitempty"`
}

// SummaryFilename is the download name for a video's summary.
func SummaryFilename(videoID string) string {
	return "youtube_summary_" + videoID + ".txt"
}

// Run extracts the video ID, resolves captions and summarizes them.
// Any stage failure ends the run; the error wraps the stage's sentinel.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	engine.IncrSummarizeRequests()
	log := slog.With(slog.String("request_id", uuid.NewString()))

	var res *Result
	err := engine.TrackOperation(ctx, "summarize", func(ctx context.Context) error {
		var err error
		res, err = p.run(ctx, log, req)
		return err
	})
	if err != nil {
		engine.IncrSummarizeErrors()
		log.Warn("summarize failed", slog.String("url", req.URL), slog.Any("error", err))
		return nil, err
	}
	return res, nil
}

func (p *Pipeline) run(ctx context.Context, log *slog.Logger, req Request) (*Result, error) {
	videoID, ok := sources.ExtractVideoID(strings.TrimSpace(req.URL))
	if !ok {
		return nil, fmt.Errorf("%q: %w", req.URL, ErrInvalidURL)
	}
	if req.ModelKey == "" {
		return nil, ErrModelKeyRequired
	}

	resolver, mode, err := p.source(ctx, req.PlatformKey)
	if err != nil {
		return nil, err
	}
	log = log.With(slog.String("video", videoID), slog.String("mode", mode))

	start := time.Now()
	text, err := resolver.Resolve(ctx, videoID, req.Language)
	if err != nil {
		return nil, err
	}
	chars := utf8.RuneCountInString(text)
	log.Info("captions resolved",
		slog.Int("chars", chars),
		slog.Duration("elapsed", time.Since(start)))

	start = time.Now()
	sum, err := p.deps.Summarizer(req.ModelKey).Summarize(ctx, text)
	if err != nil {
		return nil, err
	}
	chunks := len(summary.Chunk(text, p.deps.ChunkSize))
	log.Info("summary generated",
		slog.Int("chunks", chunks),
		slog.Duration("elapsed", time.Since(start)))

	res := &Result{
		VideoID:      videoID,
		EmbedURL:     sources.EmbedURL(videoID),
		Mode:         mode,
		CaptionChars: chars,
		Chunks:       chunks,
		Summary:      sum,
		Filename:     SummaryFilename(videoID),
	}
	if req.IncludeCaptions {
		res.Captions = text
	}
	return res, nil
}

// Tracks lists the caption tracks for a video URL, using the same variant Run would.
func (p *Pipeline) Tracks(ctx context.Context, rawURL, platformKey string) (string, []captions.Track, error) {
	videoID, ok := sources.ExtractVideoID(strings.TrimSpace(rawURL))
	if !ok {
		return "", nil, fmt.Errorf("%q: %w", rawURL, ErrInvalidURL)
	}
	src, _, err := p.source(ctx, platformKey)
	if err != nil {
		return videoID, nil, err
	}
	tracks, err := src.Tracks(ctx, videoID)
	if err != nil {
		return videoID, nil, err
	}
	return videoID, tracks, nil
}

// source picks the resolver variant from credential presence.
func (p *Pipeline) source(ctx context.Context, platformKey string) (CaptionSource, string, error) {
	if platformKey == "" {
		return p.deps.Fallback, ModeFallback, nil
	}
	src, err := p.deps.Authenticated(ctx, platformKey)
	if err != nil {
		return nil, ModeAuthenticated, fmt.Errorf("%w: %w", captions.ErrTransport, err)
	}
	return src, ModeAuthenticated, nil
}
