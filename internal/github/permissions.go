package github

import (
	"context"
	"fmt"

	"github.com/google/go-github/v66/github"
)

// HasWriteAccess reports whether the user may trigger agent runs on the
// repository. Anyone with write, maintain or admin permission qualifies;
// read-only users and outside drive-by commenters do not.
func HasWriteAccess(ctx context.Context, api *github.Client, owner, repo, user string) (bool, error) {
	level, _, err := api.Repositories.GetPermissionLevel(ctx, owner, repo, user)
	if err != nil {
		return false, fmt.Errorf("failed to check permission for %s: %w", user, err)
	}
	if level == nil || level.Permission == nil {
		return false, nil
	}
	switch *level.Permission {
	case "admin", "maintain", "write":
		return true, nil
	default:
		return false, nil
	}
}
