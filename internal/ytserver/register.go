// Package ytserver exposes the summarization pipeline as MCP tools.
package ytserver

import (
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_ytsum/internal/pipeline"
	"github.com/anatolykoptev/go_ytsum/internal/toolutil"
)

// RegisterTools registers youtube_summarize, youtube_captions and
// youtube_video_id on the given MCP server, all backed by p.
func RegisterTools(server *mcp.Server, p *pipeline.Pipeline) {
	registerSummarize(server, p)
	registerCaptions(server, p)
	registerVideoID(server)
}

// toolError keeps the stage sentinel in the chain and leads with the
// user-facing explanation.
func toolError(err error) error {
	return fmt.Errorf("%s (%w)", toolutil.Explain(err), err)
}
