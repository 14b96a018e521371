package api

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/rateflix/rateflix/internal/assistant"
	"github.com/rateflix/rateflix/internal/composer"
	"github.com/rateflix/rateflix/internal/intent"
	"github.com/rateflix/rateflix/internal/profile"
)

// MCPDeps holds dependencies for the MCP server.
type MCPDeps struct {
	Assistant *assistant.Assistant
	Loader    *profile.Loader
	// DefaultUserID is used when a tool call does not name a user.
	DefaultUserID int64
}

// NewMCPServer creates an MCP server exposing the assistant as tools and the
// taste profile as a resource.
func NewMCPServer(deps MCPDeps) *server.MCPServer {
	s := server.NewMCPServer(
		"rateflix",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithInstructions("RATEFLIX assistant: personalized movie and series recommendations from the user's own watchlist and ratings."),
		server.WithRecovery(),
	)

	s.AddTool(
		mcp.NewTool("chat",
			mcp.WithDescription("Run one assistant turn. Falls back to locally composed recommendations when the external provider is unavailable."),
			mcp.WithString("message", mcp.Description("The user's message"), mcp.Required()),
			mcp.WithNumber("user_id", mcp.Description("User to answer for (defaults to the configured user)")),
		),
		mcpChat(deps),
	)

	s.AddTool(
		mcp.NewTool("recommend",
			mcp.WithDescription("Build deterministic recommendations from the user's own catalog, without calling the external provider."),
			mcp.WithString("query", mcp.Description("Optional constraints, e.g. \"a slow sci-fi series\"")),
			mcp.WithNumber("user_id", mcp.Description("User to recommend for (defaults to the configured user)")),
		),
		mcpRecommend(deps),
	)

	s.AddResource(
		mcp.NewResource(
			"user://taste-profile",
			"Taste Profile",
			mcp.WithResourceDescription("The default user's taste profile snapshot as JSON"),
			mcp.WithMIMEType("application/json"),
		),
		mcpResourceTasteProfile(deps),
	)

	return s
}

func mcpChat(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		message, err := req.RequireString("message")
		if err != nil {
			return mcpError("message is required"), nil
		}
		userID := int64(req.GetInt("user_id", int(deps.DefaultUserID)))

		messages := deps.Assistant.NormalizeMessages(nil, message)
		result, err := deps.Assistant.Respond(ctx, userID, messages)
		if err != nil {
			return mcpError(fmt.Sprintf("turn failed: %v", err)), nil
		}

		b, err := json.Marshal(result)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal result: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpRecommend(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "recommend something")
		userID := int64(req.GetInt("user_id", int(deps.DefaultUserID)))

		p, err := deps.Loader.Load(ctx, userID)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to load taste profile: %v", err)), nil
		}

		signals := intent.Classify(query)
		signals.AsksRecommendation = true
		return mcpText(composer.Compose(p, signals, query)), nil
	}
}

func mcpResourceTasteProfile(deps MCPDeps) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		p, err := deps.Loader.Load(ctx, deps.DefaultUserID)
		if err != nil {
			return nil, fmt.Errorf("failed to load taste profile: %w", err)
		}

		b, err := json.Marshal(p)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal taste profile: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(b),
			},
		}, nil
	}
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func mcpError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
