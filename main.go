// go_ytsum is a YouTube caption summarizer MCP server.
//
// Exposes three MCP tools: youtube_summarize, youtube_captions, youtube_video_id.
// Captions come from the YouTube Data API when a key is available and from the
// public player data otherwise; summaries from an OpenAI-compatible model.
package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-mcpserver"
	stealth "github.com/anatolykoptev/go-stealth"
	"github.com/anatolykoptev/go-stealth/proxypool"
	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_ytsum/internal/engine"
	"github.com/anatolykoptev/go_ytsum/internal/pipeline"
	"github.com/anatolykoptev/go_ytsum/internal/summary"
	"github.com/anatolykoptev/go_ytsum/internal/ytserver"
)

var version = "dev"

func main() {
	// .env is optional; real env vars win.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env", slog.Any("error", err))
	}

	slog.SetDefault(slog.New(engine.NewLogHandler(engine.LogConfig{
		Level:      env.Str("LOG_LEVEL", "info"),
		Format:     env.Str("LOG_FORMAT", "text"),
		File:       env.Str("LOG_FILE", ""),
		MaxSizeMB:  env.Int("LOG_MAX_SIZE_MB", 50),
		MaxBackups: env.Int("LOG_MAX_BACKUPS", 3),
		MaxAgeDays: env.Int("LOG_MAX_AGE_DAYS", 14),
	})))

	mcpPort := env.Str("MCP_PORT", "8893")
	initEngine()

	slog.Info("starting go_ytsum",
		slog.String("port", mcpPort),
		slog.String("model", engine.Cfg.LLMModel),
		slog.Bool("youtube_api_key", engine.Cfg.YouTubeAPIKey != ""),
	)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_ytsum",
		Version: version,
	}, nil)

	ytserver.RegisterTools(server, pipeline.Default())
	slog.Info("tools registered", slog.Int("count", 3))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "go_ytsum",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 600 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func initEngine() {
	fetchTimeout := env.Duration("FETCH_TIMEOUT", 15*time.Second)
	c := engine.Config{
		YouTubeAPIKey:      env.Str("YOUTUBE_API_KEY", ""),
		YouTubeAccessToken: env.Str("YOUTUBE_ACCESS_TOKEN", ""),
		LLMAPIKey:          env.Str("LLM_API_KEY", ""),
		LLMAPIBase:         env.Str("LLM_API_BASE", "https://api.openai.com/v1"),
		LLMModel:           env.Str("LLM_MODEL", summary.DefaultModel),
		LLMTemperature:     env.Float("LLM_TEMPERATURE", summary.DefaultTemperature),
		LLMMaxTokens:       env.Int("LLM_MAX_TOKENS", summary.DefaultMaxTokens),
		LLMTimeout:         env.Duration("LLM_TIMEOUT", 120*time.Second),
		LLMRequestsPerSec:  env.Float("LLM_RPS", 0),
		ChunkSize:          env.Int("CHUNK_SIZE", summary.DefaultChunkSize),
		FetchTimeout:       fetchTimeout,
		HTTPClient: &http.Client{
			Timeout: fetchTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
		},
	}

	prompts, err := summary.LoadPrompts(env.Str("PROMPT_FILE", ""))
	if err != nil {
		slog.Warn("prompt file rejected, using built-in prompts", slog.Any("error", err))
	}
	c.SystemPrompt, c.UserPrompt = prompts.System, prompts.User

	opts := []stealth.ClientOption{stealth.WithTimeout(int(fetchTimeout.Seconds()))}
	if apiKey := env.Str("WEBSHARE_API_KEY", ""); apiKey != "" {
		pool, err := proxypool.NewWebshare(apiKey)
		if err != nil {
			slog.Warn("proxy pool init failed, running without proxy", slog.Any("error", err))
		} else {
			opts = append(opts, stealth.WithProxyPool(pool))
			slog.Info("proxy pool initialized", slog.Int("proxies", pool.Len()))
		}
	}

	bc, err := stealth.NewClient(opts...)
	if err != nil {
		slog.Error("stealth client init failed", slog.Any("error", err))
	} else {
		c.BrowserClient = bc
		slog.Info("stealth browser client initialized")
	}

	engine.Init(c)
}
