// The webhook-server binary runs the relay as a long-lived service for
// installations that prefer a GitHub App over per-repository workflows. It
// accepts issue_comment webhooks, filters for the trigger keyword, and runs
// the same pipeline the action does.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/h2oai/h2ogpte-action/internal/attachment"
	"github.com/h2oai/h2ogpte-action/internal/config"
	gh "github.com/h2oai/h2ogpte-action/internal/github"
	"github.com/h2oai/h2ogpte-action/internal/h2ogpte"
	"github.com/h2oai/h2ogpte-action/internal/relay"
	"github.com/h2oai/h2ogpte-action/internal/webhook"
)

func main() {
	// Load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	log.Printf("Starting h2oGPTe webhook server...")
	log.Printf("Port: %d", cfg.Port)
	log.Printf("Trigger keyword: %s", cfg.TriggerKeyword)
	log.Printf("h2oGPTe: %s", cfg.H2oGPTeURL)
	log.Printf("GitHub App ID: %s", cfg.GitHubAppID)

	appAuth := &gh.AppAuth{
		AppID:      cfg.GitHubAppID,
		PrivateKey: cfg.GitHubPrivateKey,
	}
	agent := h2ogpte.NewClient(cfg.H2oGPTeURL, cfg.H2oGPTeAPIKey, cfg.AgentTimeout)

	dispatch := func(repo string, commentID int64, req relay.Request) {
		go runRelay(&cfg.Config, appAuth, agent, repo, commentID, req)
	}
	handler := webhook.NewHandler(cfg.GitHubWebhookSecret, cfg.TriggerKeyword, dispatch)

	r := mux.NewRouter()
	r.HandleFunc("/webhook", handler.Handle).Methods("POST")
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")
	r.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"service":"h2ogpte-webhook-server","status":"running","trigger":"%s"}`, cfg.TriggerKeyword)
	}).Methods("GET")

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("Server listening on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// runRelay executes one dispatched run on its own goroutine: mint an
// installation token, gate on permissions, then drive the relay.
func runRelay(cfg *config.Config, appAuth *gh.AppAuth, agent relay.AgentClient, repo string, commentID int64, req relay.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.AgentTimeout)
	defer cancel()

	token, err := appAuth.GetInstallationToken(repo)
	if err != nil {
		log.Printf("[Server] Failed to get installation token for %s: %v", repo, err)
		return
	}

	owner, name, ok := strings.Cut(repo, "/")
	if !ok {
		log.Printf("[Server] Invalid repository %q", repo)
		return
	}

	api := gh.NewClient(token.Token)
	allowed, err := gh.HasWriteAccess(ctx, api, owner, name, req.Actor)
	if err != nil {
		log.Printf("[Server] Permission check failed for %s on %s: %v", req.Actor, repo, err)
		return
	}
	if !allowed {
		log.Printf("[Server] Actor %s lacks write access on %s, ignoring", req.Actor, repo)
		return
	}

	comments := gh.NewCommentClient(api, owner, name)
	if err := comments.AddEyesReaction(ctx, commentID); err != nil {
		log.Printf("[Server] Could not react to trigger comment: %v", err)
	}

	downloader, err := attachment.NewDownloader("", cfg.H2oGPTeAPIKey)
	if err != nil {
		log.Printf("[Server] Failed to set up attachment cache: %v", err)
		return
	}

	req.RunURL = "https://github.com/" + repo
	runner := relay.New(cfg, agent, comments, downloader)
	if err := runner.Run(ctx, req); err != nil {
		log.Printf("[Server] Relay run failed on %s#%d: %v", repo, req.IssueNumber, err)
	}
}
