// The h2ogpte-action binary runs once inside a GitHub Actions job: it relays
// the triggering instruction to an h2oGPTe agent session and posts the
// agent's answer back as a comment on the issue or PR.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/h2oai/h2ogpte-action/internal/attachment"
	"github.com/h2oai/h2ogpte-action/internal/config"
	gh "github.com/h2oai/h2ogpte-action/internal/github"
	"github.com/h2oai/h2ogpte-action/internal/github/actionctx"
	"github.com/h2oai/h2ogpte-action/internal/h2ogpte"
	"github.com/h2oai/h2ogpte-action/internal/relay"
)

func main() {
	if err := run(context.Background()); err != nil {
		log.Fatalf("h2ogpte-action failed: %v", err)
	}
}

func run(ctx context.Context) error {
	// Load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.GitHubToken == "" {
		return fmt.Errorf("GITHUB_TOKEN is required")
	}

	actx, err := actionctx.Load()
	if err != nil {
		return fmt.Errorf("failed to resolve action context: %w", err)
	}

	log.Printf("Starting h2oGPTe relay for %s/%s#%d (event %s, actor %s)",
		actx.Owner, actx.Repo, actx.IssueNumber, actx.EventName, actx.Actor)

	api := gh.NewClient(cfg.GitHubToken)

	allowed, err := gh.HasWriteAccess(ctx, api, actx.Owner, actx.Repo, actx.Actor)
	if err != nil {
		return fmt.Errorf("permission check failed: %w", err)
	}
	if !allowed {
		log.Printf("Actor %s lacks write access, refusing to run", actx.Actor)
		return fmt.Errorf("actor %s is not allowed to trigger agent runs", actx.Actor)
	}

	comments := gh.NewCommentClient(api, actx.Owner, actx.Repo)
	if actx.TriggerCommentID != 0 {
		if err := comments.AddEyesReaction(ctx, actx.TriggerCommentID); err != nil {
			log.Printf("Could not react to trigger comment: %v", err)
		}
	}

	downloader, err := attachment.NewDownloader("", cfg.H2oGPTeAPIKey)
	if err != nil {
		return err
	}

	agent := h2ogpte.NewClient(cfg.H2oGPTeURL, cfg.H2oGPTeAPIKey, cfg.AgentTimeout)
	runner := relay.New(cfg, agent, comments, downloader)

	return runner.Run(ctx, relay.Request{
		Repository:  actx.Owner + "/" + actx.Repo,
		IssueNumber: actx.IssueNumber,
		Actor:       actx.Actor,
		Instruction: actx.Instruction,
		RunURL:      actx.RunURL,
	})
}
