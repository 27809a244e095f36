package ytserver

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_ytsum/internal/engine/sources"
)

func registerVideoID(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_video_id",
		Description: "Extract the video ID from a YouTube watch, youtu.be or embed URL. Returns valid=false when no video link is recognised. No network access.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true, IdempotentHint: true},
	}, func(_ context.Context, _ *mcp.CallToolRequest, input VideoIDInput) (*mcp.CallToolResult, VideoIDOutput, error) {
		id, ok := sources.ExtractVideoID(strings.TrimSpace(input.URL))
		if !ok {
			return nil, VideoIDOutput{}, nil
		}
		return nil, VideoIDOutput{
			Valid:    true,
			VideoID:  id,
			WatchURL: sources.WatchURL(id),
			EmbedURL: sources.EmbedURL(id),
		}, nil
	})
}
