// Package relay orchestrates one end-to-end run: working comment out,
// instruction to the agent session, transcript back, final comment posted.
// Both the action entrypoint and the webhook-server mode drive it.
package relay

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/h2oai/h2ogpte-action/internal/attachment"
	"github.com/h2oai/h2ogpte-action/internal/config"
	"github.com/h2oai/h2ogpte-action/internal/h2ogpte"
	"github.com/h2oai/h2ogpte-action/internal/prompt"
	"github.com/h2oai/h2ogpte-action/internal/reply"
	"github.com/h2oai/h2ogpte-action/internal/slashcmd"
	"github.com/h2oai/h2ogpte-action/internal/transcript"
)

// AgentClient is the h2oGPTe surface the relay needs.
type AgentClient interface {
	CreateChatSession(ctx context.Context) (string, error)
	AgentCompletion(ctx context.Context, sessionID string, req h2ogpte.CompletionRequest) (string, error)
	SessionURL(sessionID string) string
}

// Commenter posts and edits the working comment.
type Commenter interface {
	CreateComment(ctx context.Context, number int, body string) (int64, error)
	UpdateComment(ctx context.Context, commentID int64, body string) error
}

// AttachmentFetcher downloads agent attachments; nil disables the step.
type AttachmentFetcher interface {
	DownloadAll(ctx context.Context, urls []string) map[string]string
}

// Request identifies the triggering issue or PR and its instruction.
type Request struct {
	Repository  string // owner/name
	IssueNumber int
	Actor       string
	Instruction string
	RunURL      string
}

// Runner holds the collaborators for relay runs.
type Runner struct {
	cfg         *config.Config
	agent       AgentClient
	comments    Commenter
	attachments AttachmentFetcher
}

// New creates a Runner.
func New(cfg *config.Config, agent AgentClient, comments Commenter, attachments AttachmentFetcher) *Runner {
	return &Runner{cfg: cfg, agent: agent, comments: comments, attachments: attachments}
}

// Run executes one relay. The working comment is created first so the user
// gets immediate feedback; any later failure is reported by rewriting that
// same comment into a failure reply rather than surfacing a silent error.
func (r *Runner) Run(ctx context.Context, req Request) error {
	matched := slashcmd.Match(r.cfg.SlashCommands, req.Instruction)
	if len(matched) > 0 {
		log.Printf("[Relay] Matched slash commands: %s", slashcmd.Summary(matched))
	}

	commentID, err := r.comments.CreateComment(ctx, req.IssueNumber, reply.WorkingBody(req.Instruction))
	if err != nil {
		return fmt.Errorf("failed to create working comment: %w", err)
	}

	body, chatURL, runErr := r.converse(ctx, req, matched)
	if runErr != nil {
		log.Printf("[Relay] Agent run failed: %v", runErr)
		body = runErr.Error()
	}

	final := reply.Compose(runErr == nil, body, req.Instruction, req.RunURL, chatURL, matched)
	if err := r.comments.UpdateComment(ctx, commentID, final); err != nil {
		return fmt.Errorf("failed to update comment %d: %w", commentID, err)
	}
	return runErr
}

// converse drives the agent session and returns the cleaned reply body and
// the chat-session URL for the footer.
func (r *Runner) converse(ctx context.Context, req Request, matched []slashcmd.Command) (body, chatURL string, err error) {
	sessionID, err := r.agent.CreateChatSession(ctx)
	if err != nil {
		return "", "", err
	}
	chatURL = r.agent.SessionURL(sessionID)
	log.Printf("[Relay] Chat session: %s", chatURL)

	message := prompt.Build(prompt.Params{
		Repository:  req.Repository,
		IssueNumber: req.IssueNumber,
		Actor:       req.Actor,
		Instruction: req.Instruction,
		Delimiter:   r.cfg.TurnDelimiter,
	}, matched)

	raw, err := r.agent.AgentCompletion(ctx, sessionID, h2ogpte.CompletionRequest{
		Message:       message,
		AgentAccuracy: r.cfg.AgentAccuracy,
		AgentMaxTurns: r.cfg.AgentMaxTurns,
		AgentTools:    r.cfg.AgentTools,
		Keystore:      r.cfg.AgentSecrets,
	})
	if err != nil {
		return "", chatURL, err
	}

	body = transcript.ExtractReplyWithDelimiter(raw, r.cfg.TurnDelimiter)
	body = r.rewriteAttachments(ctx, body)
	return body, chatURL, nil
}

// rewriteAttachments downloads the attachments referenced in the text and
// replaces their remote URLs with local filenames.
func (r *Runner) rewriteAttachments(ctx context.Context, text string) string {
	if r.attachments == nil {
		return text
	}
	urls := attachment.ExtractURLs(text, hostOf(r.cfg.H2oGPTeURL))
	if len(urls) == 0 {
		return text
	}
	urlMap := r.attachments.DownloadAll(ctx, urls)
	return attachment.RewriteURLs(text, urlMap)
}

func hostOf(baseURL string) string {
	rest := strings.TrimPrefix(baseURL, "https://")
	rest = strings.TrimPrefix(rest, "http://")
	host, _, _ := strings.Cut(rest, "/")
	return host
}
