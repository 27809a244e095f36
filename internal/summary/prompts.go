package summary

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// chunkPlaceholder marks where the caption chunk goes in the user template.
const chunkPlaceholder = "%s"

const (
	defaultSystemPrompt = "You are a helpful assistant that creates concise, well-structured summaries of YouTube video content based on captions. Focus on the main points, key insights, and important details."
	defaultUserPrompt   = "Please create a comprehensive summary of this YouTube video based on its captions. Organize the summary with clear sections and bullet points where appropriate:\n\n" + chunkPlaceholder
)

// Prompts are the instructions sent with every chunk.
type Prompts struct {
	System string `yaml:"system"`
	User   string `yaml:"user"` // must contain %s once, replaced by the chunk
}

// DefaultPrompts returns the built-in prompts.
func DefaultPrompts() Prompts {
	return Prompts{System: defaultSystemPrompt, User: defaultUserPrompt}
}

// LoadPrompts reads a YAML prompt file. Missing fields keep their defaults.
// An empty path returns the defaults.
func LoadPrompts(path string) (Prompts, error) {
	p := DefaultPrompts()
	if path == "" {
		return p, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("read prompts: %w", err)
	}
	var override Prompts
	if err := yaml.Unmarshal(data, &override); err != nil {
		return p, fmt.Errorf("parse prompts %s: %w", path, err)
	}
	if s := strings.TrimSpace(override.System); s != "" {
		p.System = s
	}
	if override.User != "" {
		p.User = override.User
	}
	if err := p.Validate(); err != nil {
		return DefaultPrompts(), fmt.Errorf("prompts %s: %w", path, err)
	}
	return p, nil
}

// Validate checks that the user template has exactly one chunk placeholder.
func (p Prompts) Validate() error {
	if n := strings.Count(p.User, chunkPlaceholder); n != 1 {
		return fmt.Errorf("user prompt must contain %q exactly once, found %d", chunkPlaceholder, n)
	}
	return nil
}

// userMessage embeds chunk verbatim in the user template.
func (p Prompts) userMessage(chunk string) string {
	return strings.Replace(p.User, chunkPlaceholder, chunk, 1)
}
