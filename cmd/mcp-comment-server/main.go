// The mcp-comment-server binary exposes the working comment as an MCP tool
// over stdio, so local agent tooling running next to the action can stream
// progress into the same GitHub comment the relay owns.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	// Load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	requiredEnv := []string{"GITHUB_TOKEN", "REPO_OWNER", "REPO_NAME", "WORKING_COMMENT_ID"}
	for _, env := range requiredEnv {
		if os.Getenv(env) == "" {
			log.Fatalf("[MCP Comment Server] Missing required environment variable: %s", env)
		}
	}

	log.Println("[MCP Comment Server] Starting GitHub comment MCP server")
	log.Printf("[MCP Comment Server] Repository: %s/%s", os.Getenv("REPO_OWNER"), os.Getenv("REPO_NAME"))
	log.Printf("[MCP Comment Server] Comment ID: %s", os.Getenv("WORKING_COMMENT_ID"))

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "h2ogpte-comment-server",
		Version: "v1.0.0",
	}, nil)

	tool := &mcp.Tool{
		Name:        "update_working_comment",
		Description: "Replace the body of the working comment the relay created on the triggering issue or PR",
	}
	mcp.AddTool(server, tool, HandleUpdateComment)
	log.Println("[MCP Comment Server] Registered tool: update_working_comment")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("[MCP Comment Server] Received shutdown signal")
		cancel()
	}()

	log.Println("[MCP Comment Server] Starting on stdio transport...")
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatalf("[MCP Comment Server] Server error: %v", err)
	}
	log.Println("[MCP Comment Server] Server stopped gracefully")
}
