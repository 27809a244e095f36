package ytserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_ytsum/internal/engine"
	"github.com/anatolykoptev/go_ytsum/internal/pipeline"
	"github.com/anatolykoptev/go_ytsum/internal/toolutil"
)

func registerCaptions(server *mcp.Server, p *pipeline.Pipeline) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_captions",
		Description: "List the caption tracks available for a YouTube video, each with its language and whether it is manual or auto-generated. Uses the YouTube Data API when a key is available, otherwise the public player data.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input CaptionsInput) (*mcp.CallToolResult, CaptionsOutput, error) {
		key := toolutil.FirstNonEmpty(input.YouTubeAPIKey, engine.Cfg.YouTubeAPIKey)
		mode := pipeline.ModeFallback
		if key != "" {
			mode = pipeline.ModeAuthenticated
		}
		id, tracks, err := p.Tracks(ctx, input.URL, key)
		if err != nil {
			return nil, CaptionsOutput{}, toolError(err)
		}
		return nil, CaptionsOutput{VideoID: id, Mode: mode, Tracks: trackItems(tracks)}, nil
	})
}
