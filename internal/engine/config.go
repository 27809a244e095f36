package engine

import (
	"net/http"
	"time"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	YouTubeAPIKey      string // default platform credential; per-request keys override it
	YouTubeAccessToken string // OAuth bearer for captions.download
	LLMAPIKey          string // default model credential; per-request keys override it
	LLMAPIBase         string
	LLMModel           string
	LLMTemperature     float64
	LLMMaxTokens       int
	LLMTimeout         time.Duration
	LLMRequestsPerSec  float64 // 0 = no pacing between chunk calls
	ChunkSize          int
	SystemPrompt       string
	UserPrompt         string
	FetchTimeout       time.Duration
	HTTPClient         *http.Client
	BrowserClient      *BrowserClient // nil = watch page fetched with HTTPClient
}

var cfg Config

// Cfg exposes the engine configuration for sub-packages (sources, captions, summary).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}
	cfg = c
	Cfg = &cfg
}
