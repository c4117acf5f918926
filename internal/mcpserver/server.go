package mcpserver

import (
	"context"
	"path/filepath"

	"github.com/akolanti/PDFSummarizer/internal/adapter/utils"
	"github.com/akolanti/PDFSummarizer/internal/domain/jobModel"
	"github.com/akolanti/PDFSummarizer/internal/summarize"
	"github.com/akolanti/PDFSummarizer/pkg/logger_i"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const ToolName = "summarize_document"

type SummarizeInput struct {
	Path          string `json:"path" jsonschema:"path of a pdf, docx, odt, rtf or txt file on this machine"`
	UseRefine     bool   `json:"use_refine,omitempty" jsonschema:"fold chunks into a running summary instead of map reduce"`
	ChunkPrompt   string `json:"chunk_prompt,omitempty" jsonschema:"prompt applied to each chunk, must contain {text}"`
	CombinePrompt string `json:"combine_prompt,omitempty" jsonschema:"prompt that combines the chunk summaries, must contain {text}"`
}

type SummarizeOutput struct {
	Summary        string   `json:"summary"`
	ChunkSummaries []string `json:"chunk_summaries"`
}

// NewServer exposes summarizer as an mcp tool.
func NewServer(summarizer summarize.Service, version string) *mcp.Server {
	logger := logger_i.NewLogger("MCP Server")
	server := mcp.NewServer(&mcp.Implementation{Name: "pdf-summarizer", Version: version}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolName,
		Description: "Summarize a local document with an llm, using map reduce or refine over its chunks.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, in SummarizeInput) (*mcp.CallToolResult, SummarizeOutput, error) {
		ctx = utils.WithTraceID(ctx, utils.GetNewUUID())
		logger.Info("Tool called", "tool", ToolName, "path", in.Path, "refine", in.UseRefine, "traceId", utils.TraceID(ctx))

		request := jobModel.SummaryRequest{
			UseRefine:     in.UseRefine,
			ChunkPrompt:   in.ChunkPrompt,
			CombinePrompt: in.CombinePrompt,
		}
		if in.Path != "" {
			path, err := filepath.Abs(in.Path)
			if err != nil {
				path = in.Path
			}
			request.DocumentPath = path
			request.DocumentName = filepath.Base(path)
		}

		outcome := summarizer.Summarize(ctx, request)
		if outcome.Failed() {
			return textResult(outcome.Err.Display(), true), SummarizeOutput{ChunkSummaries: []string{}}, nil
		}

		out := SummarizeOutput{Summary: outcome.Summary, ChunkSummaries: outcome.Steps}
		if out.ChunkSummaries == nil {
			out.ChunkSummaries = []string{}
		}
		return textResult(outcome.Summary, false), out, nil
	})

	return server
}

func textResult(text string, isError bool) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: isError,
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}
