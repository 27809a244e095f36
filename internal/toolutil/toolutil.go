// Package toolutil provides shared helpers for go_ytsum MCP tools.
package toolutil

import (
	"context"
	"errors"
	"strings"

	"github.com/anatolykoptev/go_ytsum/internal/captions"
	"github.com/anatolykoptev/go_ytsum/internal/pipeline"
	"github.com/anatolykoptev/go_ytsum/internal/summary"
)

// explanations maps each failure kind to the sentence shown to the user.
// Order matters: the first matching kind wins.
var explanations = []struct {
	err  error
	text string
}{
	{pipeline.ErrInvalidURL, "That does not look like a YouTube video URL. Use a watch, youtu.be or embed link."},
	{pipeline.ErrModelKeyRequired, "A language model API key is required. Pass llm_api_key or set LLM_API_KEY."},
	{captions.ErrNoCaptions, "This video has no captions available to summarize."},
	{captions.ErrQuotaExceeded, "The YouTube Data API quota for this key is exhausted. Try again tomorrow or use another key."},
	{captions.ErrAccessDenied, "YouTube refused access to the captions. The key may lack permission, or the owner restricts caption downloads."},
	{captions.ErrVideoNotFound, "YouTube could not find that video. It may be private or deleted."},
	{captions.ErrTransport, "Fetching captions from YouTube failed. Check connectivity and try again."},
	{summary.ErrAuthenticationFailed, "The language model rejected the API key."},
	{summary.ErrRateLimited, "The language model rate limit was hit. Wait a moment and try again."},
	{summary.ErrEmptyInput, "The captions were empty, so there is nothing to summarize."},
	{summary.ErrTransport, "The language model request failed. Try again later."},
	{context.DeadlineExceeded, "The request timed out."},
	{context.Canceled, "The request was cancelled."},
}

// Explain returns a human-readable sentence for err, distinct per failure kind.
func Explain(err error) string {
	if err == nil {
		return ""
	}
	for _, e := range explanations {
		if errors.Is(err, e.err) {
			return e.text
		}
	}
	return "Unexpected error: " + err.Error()
}

// FirstNonEmpty returns the first argument that is not blank after trimming.
// Tool inputs use it to let per-request credentials override env defaults.
func FirstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// NormLang normalises a caption language hint: trimmed, "auto"/"any" → "".
func NormLang(lang string) string {
	lang = strings.TrimSpace(lang)
	switch strings.ToLower(lang) {
	case "auto", "any", "default":
		return ""
	}
	return lang
}
