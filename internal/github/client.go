// Package github wraps the GitHub REST API surface the relay needs:
// creating and updating the working comment, reacting to the trigger
// comment, and gating runs on collaborator permissions.
package github

import (
	"context"
	"fmt"

	"github.com/google/go-github/v66/github"
)

// CommentClient operates on one repository's issues and PRs. Issue and PR
// comments share the same REST endpoints.
type CommentClient struct {
	api   *github.Client
	owner string
	repo  string
}

// NewClient builds an authenticated API client from a token.
func NewClient(token string) *github.Client {
	return github.NewClient(nil).WithAuthToken(token)
}

// NewCommentClient wraps an API client for one repository.
func NewCommentClient(api *github.Client, owner, repo string) *CommentClient {
	return &CommentClient{api: api, owner: owner, repo: repo}
}

// CreateComment posts a new comment on an issue or PR and returns its id.
func (c *CommentClient) CreateComment(ctx context.Context, number int, body string) (int64, error) {
	var id int64
	err := retryWithBackoff(func() error {
		comment, _, err := c.api.Issues.CreateComment(ctx, c.owner, c.repo, number, &github.IssueComment{
			Body: github.String(body),
		})
		if err != nil {
			return err
		}
		if comment == nil || comment.ID == nil {
			return fmt.Errorf("create comment response carried no id")
		}
		id = *comment.ID
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create comment: %w", err)
	}
	return id, nil
}

// UpdateComment replaces the body of an existing comment.
func (c *CommentClient) UpdateComment(ctx context.Context, commentID int64, body string) error {
	err := retryWithBackoff(func() error {
		_, _, err := c.api.Issues.EditComment(ctx, c.owner, c.repo, commentID, &github.IssueComment{
			Body: github.String(body),
		})
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to update comment %d: %w", commentID, err)
	}
	return nil
}

// AddEyesReaction acknowledges the trigger comment with an 👀 reaction.
// Failures are non-fatal for the run, so only the error is returned.
func (c *CommentClient) AddEyesReaction(ctx context.Context, commentID int64) error {
	_, _, err := c.api.Reactions.CreateIssueCommentReaction(ctx, c.owner, c.repo, commentID, "eyes")
	if err != nil {
		return fmt.Errorf("failed to add reaction: %w", err)
	}
	return nil
}
