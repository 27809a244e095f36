package pipeline

import (
	"context"
	"net/http"

	"google.golang.org/api/option"

	"github.com/anatolykoptev/go_ytsum/internal/captions"
	"github.com/anatolykoptev/go_ytsum/internal/engine"
	"github.com/anatolykoptev/go_ytsum/internal/summary"
)

// Default builds a Pipeline from engine.Cfg: YouTube Data API for keyed
// requests, the Innertube scraper otherwise, and an OpenAI-compatible summarizer.
func Default() *Pipeline {
	c := engine.Cfg

	prompts := summary.DefaultPrompts()
	if c.SystemPrompt != "" {
		prompts.System = c.SystemPrompt
	}
	if c.UserPrompt != "" {
		prompts.User = c.UserPrompt
	}
	llmHTTP := &http.Client{Timeout: c.LLMTimeout}

	return New(Deps{
		Authenticated: func(ctx context.Context, platformKey string) (CaptionSource, error) {
			api, err := captions.NewDataAPI(ctx, captions.Credential{
				APIKey:      platformKey,
				AccessToken: c.YouTubeAccessToken,
			}, option.WithUserAgent(engine.UserAgentBot))
			if err != nil {
				return nil, err
			}
			return captions.NewAuthenticated(api), nil
		},
		Fallback: captions.NewInnertubeFallback(),
		Summarizer: func(modelKey string) Summarizer {
			completer := summary.NewOpenAI(modelKey, summary.OpenAIConfig{
				BaseURL:     c.LLMAPIBase,
				Model:       c.LLMModel,
				MaxTokens:   c.LLMMaxTokens,
				Temperature: float32(c.LLMTemperature),
				HTTPClient:  llmHTTP,
			})
			return summary.New(completer,
				summary.WithPrompts(prompts),
				summary.WithChunkSize(c.ChunkSize),
				summary.WithRate(c.LLMRequestsPerSec),
			)
		},
		ChunkSize: c.ChunkSize,
	})
}
