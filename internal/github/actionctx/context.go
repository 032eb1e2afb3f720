// Package actionctx resolves the GitHub Actions runtime context: which
// repository and issue the run belongs to, who triggered it, and what the
// instruction text is.
package actionctx

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Context describes one triggering event.
type Context struct {
	Owner string
	Repo  string

	EventName   string
	IssueNumber int
	Actor       string

	// Instruction is the trigger comment body (or the issue body for
	// "issues" events).
	Instruction string

	// TriggerCommentID is the comment that carried the instruction, 0 for
	// issue-body triggers.
	TriggerCommentID int64

	// RunURL links to this workflow run.
	RunURL string
}

// event mirrors the fields of the webhook payload in GITHUB_EVENT_PATH the
// relay cares about.
type event struct {
	Issue struct {
		Number int    `json:"number"`
		Body   string `json:"body"`
	} `json:"issue"`
	Comment struct {
		ID   int64  `json:"id"`
		Body string `json:"body"`
		User struct {
			Login string `json:"login"`
		} `json:"user"`
	} `json:"comment"`
}

// Load builds the context from the standard GITHUB_* environment the Actions
// runner provides.
func Load() (*Context, error) {
	repoFull := os.Getenv("GITHUB_REPOSITORY")
	owner, repo, ok := strings.Cut(repoFull, "/")
	if !ok || owner == "" || repo == "" {
		return nil, fmt.Errorf("invalid GITHUB_REPOSITORY %q, want owner/name", repoFull)
	}

	eventPath := os.Getenv("GITHUB_EVENT_PATH")
	if eventPath == "" {
		return nil, fmt.Errorf("GITHUB_EVENT_PATH is not set")
	}
	payload, err := os.ReadFile(eventPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read event payload: %w", err)
	}

	eventName := os.Getenv("GITHUB_EVENT_NAME")
	ctx := &Context{
		Owner:     owner,
		Repo:      repo,
		EventName: eventName,
		Actor:     os.Getenv("GITHUB_ACTOR"),
		RunURL:    runURL(repoFull),
	}

	var ev event
	if err := json.Unmarshal(payload, &ev); err != nil {
		return nil, fmt.Errorf("failed to parse event payload: %w", err)
	}
	if ev.Issue.Number == 0 {
		return nil, fmt.Errorf("event payload carries no issue number (event %q)", eventName)
	}
	ctx.IssueNumber = ev.Issue.Number

	switch eventName {
	case "issue_comment":
		ctx.Instruction = ev.Comment.Body
		ctx.TriggerCommentID = ev.Comment.ID
		if ev.Comment.User.Login != "" {
			ctx.Actor = ev.Comment.User.Login
		}
	case "issues":
		ctx.Instruction = ev.Issue.Body
	default:
		return nil, fmt.Errorf("unsupported event %q, want issue_comment or issues", eventName)
	}

	return ctx, nil
}

// runURL points at the current workflow run, or the repository when the run
// id is unavailable.
func runURL(repoFull string) string {
	server := os.Getenv("GITHUB_SERVER_URL")
	if server == "" {
		server = "https://github.com"
	}
	runID := os.Getenv("GITHUB_RUN_ID")
	if runID == "" {
		return fmt.Sprintf("%s/%s", server, repoFull)
	}
	return fmt.Sprintf("%s/%s/actions/runs/%s", server, repoFull, runID)
}
