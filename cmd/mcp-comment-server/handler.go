package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	gh "github.com/h2oai/h2ogpte-action/internal/github"
)

// UpdateCommentParams is the tool input.
type UpdateCommentParams struct {
	Body string `json:"body" jsonschema:"The updated comment content"`
}

// HandleUpdateComment handles the update_working_comment tool call.
func HandleUpdateComment(
	ctx context.Context,
	req *mcp.CallToolRequest,
	params UpdateCommentParams,
) (*mcp.CallToolResult, any, error) {
	log.Printf("[MCP Comment Server] Received update_working_comment request")

	owner := os.Getenv("REPO_OWNER")
	repo := os.Getenv("REPO_NAME")
	commentIDStr := os.Getenv("WORKING_COMMENT_ID")
	token := os.Getenv("GITHUB_TOKEN")

	if params.Body == "" {
		return nil, nil, fmt.Errorf("body parameter is required")
	}

	commentID, err := strconv.ParseInt(commentIDStr, 10, 64)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid WORKING_COMMENT_ID: %w", err)
	}

	comments := gh.NewCommentClient(gh.NewClient(token), owner, repo)
	if err := comments.UpdateComment(ctx, commentID, params.Body); err != nil {
		log.Printf("[MCP Comment Server] Failed to update comment: %v", err)
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: fmt.Sprintf("Error: %v", err)},
			},
			IsError: true,
		}, nil, nil
	}

	log.Printf("[MCP Comment Server] Successfully updated comment #%d", commentID)
	resultText := fmt.Sprintf(`{"success": true, "owner": %q, "repo": %q, "comment_id": %d, "body_length": %d}`,
		owner, repo, commentID, len(params.Body))

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: resultText},
		},
	}, nil, nil
}
