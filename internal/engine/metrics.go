package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	SummarizeRequests         atomic.Int64
	SummarizeErrors           atomic.Int64
	CaptionRequests           atomic.Int64
	CaptionFallbackRequests   atomic.Int64
	CaptionErrors             atomic.Int64
	YouTubeTranscriptRequests atomic.Int64
	LLMCalls                  atomic.Int64
	LLMErrors                 atomic.Int64
	ChunksSummarized          atomic.Int64
}

// metricKeys fixes the output order of FormatMetrics.
var metricKeys = []string{
	"summarize_requests", "summarize_errors",
	"caption_requests", "caption_fallback_requests", "caption_errors",
	"youtube_transcript_requests",
	"llm_calls", "llm_errors", "chunks_summarized",
}

// GetMetrics returns a snapshot of all metrics.
func GetMetrics() map[string]int64 {
	return map[string]int64{
		"summarize_requests":          metrics.SummarizeRequests.Load(),
		"summarize_errors":            metrics.SummarizeErrors.Load(),
		"caption_requests":            metrics.CaptionRequests.Load(),
		"caption_fallback_requests":   metrics.CaptionFallbackRequests.Load(),
		"caption_errors":              metrics.CaptionErrors.Load(),
		"youtube_transcript_requests": metrics.YouTubeTranscriptRequests.Load(),
		"llm_calls":                   metrics.LLMCalls.Load(),
		"llm_errors":                  metrics.LLMErrors.Load(),
		"chunks_summarized":           metrics.ChunksSummarized.Load(),
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	for _, k := range metricKeys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for pipeline/ and ytserver/.
func IncrSummarizeRequests() { metrics.SummarizeRequests.Add(1) }
func IncrSummarizeErrors()   { metrics.SummarizeErrors.Add(1) }

// Incrementors for captions/ and sources/.
func IncrCaptionRequests()         { metrics.CaptionRequests.Add(1) }
func IncrCaptionFallbackRequests() { metrics.CaptionFallbackRequests.Add(1) }
func IncrCaptionErrors()           { metrics.CaptionErrors.Add(1) }
func IncrYouTubeTranscript()       { metrics.YouTubeTranscriptRequests.Add(1) }

// Incrementors for summary/.
func IncrLLMCalls()         { metrics.LLMCalls.Add(1) }
func IncrLLMErrors()        { metrics.LLMErrors.Add(1) }
func IncrChunksSummarized() { metrics.ChunksSummarized.Add(1) }

// TrackOperation logs a warning if an operation takes longer than threshold.
func TrackOperation(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	if elapsed > 30*time.Second {
		slog.Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
