// Package summary turns caption text into an LLM summary, one chunk at a time.
package summary

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/time/rate"

	"github.com/anatolykoptev/go_ytsum/internal/engine"
)

// chunkSeparator joins per-chunk summaries.
const chunkSeparator = "\n\n"

// Summarizer summarizes text by chunking it and completing each chunk in order.
type Summarizer struct {
	completer Completer
	prompts   Prompts
	chunkSize int
	limiter   *rate.Limiter
}

// Option configures a Summarizer.
type Option func(*Summarizer)

// WithPrompts replaces the default prompts.
func WithPrompts(p Prompts) Option {
	return func(s *Summarizer) { s.prompts = p }
}

// WithChunkSize sets the chunk length in runes.
func WithChunkSize(n int) Option {
	return func(s *Summarizer) {
		if n > 0 {
			s.chunkSize = n
		}
	}
}

// WithRate spaces completion calls to at most rps per second. rps <= 0 disables pacing.
func WithRate(rps float64) Option {
	return func(s *Summarizer) {
		if rps > 0 {
			s.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// New creates a Summarizer on top of c.
func New(c Completer, opts ...Option) *Summarizer {
	s := &Summarizer{
		completer: c,
		prompts:   DefaultPrompts(),
		chunkSize: DefaultChunkSize,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Summarize completes every chunk sequentially and joins the results with a blank line.
// The first failing chunk aborts the call and nothing partial is returned.
func (s *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	chunks := Chunk(text, s.chunkSize)
	if len(chunks) == 0 {
		return "", ErrEmptyInput
	}

	parts := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		if s.limiter != nil {
			if err := s.limiter.Wait(ctx); err != nil {
				return "", fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), classify(err))
			}
		}
		engine.IncrLLMCalls()
		out, err := s.completer.Complete(ctx, s.prompts.System, s.prompts.userMessage(chunk))
		if err != nil {
			engine.IncrLLMErrors()
			return "", fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), classify(err))
		}
		engine.IncrChunksSummarized()
		slog.Debug("summary: chunk done",
			slog.Int("chunk", i+1),
			slog.Int("of", len(chunks)),
			slog.String("preview", engine.TruncateRunes(out, 80, "...")))
		parts = append(parts, out)
	}
	return strings.Join(parts, chunkSeparator), nil
}
