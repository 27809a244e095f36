package ytserver

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_ytsum/internal/engine"
	"github.com/anatolykoptev/go_ytsum/internal/pipeline"
	"github.com/anatolykoptev/go_ytsum/internal/toolutil"
)

func registerSummarize(server *mcp.Server, p *pipeline.Pipeline) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_summarize",
		Description: "Summarize a YouTube video from its captions. Picks a caption track (requested language, then English, then the first available), flattens it to text, summarizes it in 8000-character chunks with an OpenAI-compatible model and joins the chunk summaries. Returns the summary, embed URL and a suggested download filename.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input SummarizeInput) (*mcp.CallToolResult, *pipeline.Result, error) {
		res, err := p.Run(ctx, pipeline.Request{
			URL:             input.URL,
			PlatformKey:     toolutil.FirstNonEmpty(input.YouTubeAPIKey, engine.Cfg.YouTubeAPIKey),
			ModelKey:        toolutil.FirstNonEmpty(input.LLMAPIKey, engine.Cfg.LLMAPIKey),
			Language:        toolutil.NormLang(input.Language),
			IncludeCaptions: input.IncludeCaptions,
		})
		if err != nil {
			return nil, nil, toolError(err)
		}
		slog.Info("youtube_summarize: done",
			slog.String("video", res.VideoID),
			slog.String("mode", res.Mode),
			slog.Int("chunks", res.Chunks))
		return nil, res, nil
	})
}
