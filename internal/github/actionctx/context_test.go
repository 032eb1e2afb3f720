package actionctx

import (
	"os"
	"path/filepath"
	"testing"
)

func writeEvent(t *testing.T, payload string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "event.json")
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write event: %v", err)
	}
	t.Setenv("GITHUB_EVENT_PATH", path)
}

func TestLoad_IssueComment(t *testing.T) {
	t.Setenv("GITHUB_REPOSITORY", "h2oai/demo")
	t.Setenv("GITHUB_EVENT_NAME", "issue_comment")
	t.Setenv("GITHUB_ACTOR", "runner-actor")
	t.Setenv("GITHUB_RUN_ID", "42")
	t.Setenv("GITHUB_SERVER_URL", "https://github.com")
	writeEvent(t, `{
		"issue": {"number": 7, "body": "issue body"},
		"comment": {"id": 99, "body": "@h2ogpte please fix", "user": {"login": "alice"}}
	}`)

	ctx, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ctx.Owner != "h2oai" || ctx.Repo != "demo" || ctx.IssueNumber != 7 {
		t.Fatalf("context: %+v", ctx)
	}
	if ctx.Instruction != "@h2ogpte please fix" || ctx.TriggerCommentID != 99 {
		t.Fatalf("instruction: %+v", ctx)
	}
	if ctx.Actor != "alice" {
		t.Fatalf("actor must come from the comment author, got %q", ctx.Actor)
	}
	if ctx.RunURL != "https://github.com/h2oai/demo/actions/runs/42" {
		t.Fatalf("run URL: %q", ctx.RunURL)
	}
}

func TestLoad_IssueOpened(t *testing.T) {
	t.Setenv("GITHUB_REPOSITORY", "h2oai/demo")
	t.Setenv("GITHUB_EVENT_NAME", "issues")
	t.Setenv("GITHUB_ACTOR", "bob")
	writeEvent(t, `{"issue": {"number": 3, "body": "do the thing"}}`)

	ctx, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ctx.Instruction != "do the thing" || ctx.TriggerCommentID != 0 || ctx.Actor != "bob" {
		t.Fatalf("context: %+v", ctx)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Setenv("GITHUB_REPOSITORY", "not-a-repo")
	if _, err := Load(); err == nil {
		t.Fatalf("want error for malformed repository")
	}

	t.Setenv("GITHUB_REPOSITORY", "h2oai/demo")
	t.Setenv("GITHUB_EVENT_NAME", "push")
	writeEvent(t, `{"issue": {"number": 1}}`)
	if _, err := Load(); err == nil {
		t.Fatalf("want error for unsupported event")
	}

	t.Setenv("GITHUB_EVENT_NAME", "issue_comment")
	writeEvent(t, `{}`)
	if _, err := Load(); err == nil {
		t.Fatalf("want error for missing issue number")
	}
}
