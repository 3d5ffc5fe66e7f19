package internal

import (
	"context"
	"fmt"

	"github.com/google/go-github/v52/github"
)

// GithubIssuesService is the subset of the go-github issues service the
// comment poster uses.
type GithubIssuesService interface {
	CreateComment(ctx context.Context, owner, repo string, number int, comment *github.IssueComment) (*github.IssueComment, *github.Response, error)
}

// PostComment posts the rendered changelog section as a comment on the
// triggering pull request.
func PostComment(ctx context.Context, issues GithubIssuesService, owner, repo string, number int, body string) error {
	_, _, err := issues.CreateComment(ctx, owner, repo, number, &github.IssueComment{
		Body: github.String(body),
	})
	if err != nil {
		return fmt.Errorf("could not comment on pull request #%d: %w", number, err)
	}
	return nil
}
