package internal

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v52/github"
)

// GithubRepositoriesService is the subset of the go-github repositories
// service the fetchers use.
type GithubRepositoriesService interface {
	GetLatestRelease(ctx context.Context, owner, repo string) (*github.RepositoryRelease, *github.Response, error)
	GetReleaseByTag(ctx context.Context, owner, repo, tag string) (*github.RepositoryRelease, *github.Response, error)
	ListCommits(ctx context.Context, owner, repo string, opts *github.CommitsListOptions) ([]*github.RepositoryCommit, *github.Response, error)
}

// GithubSearchService is the subset of the go-github search service the
// pull request fetcher uses.
type GithubSearchService interface {
	Issues(ctx context.Context, query string, opts *github.SearchOptions) (*github.IssuesSearchResult, *github.Response, error)
}

// ChangeItem is one unit of history eligible for the changelog: a merged pull
// request or a commit. Commit-sourced items have no labels.
type ChangeItem struct {
	Number   int
	SHA      string
	Title    string
	Author   string
	URL      string
	Labels   []string
	MergedAt time.Time
}

// Identifier returns the display reference for the item: "#N" for pull
// requests, the short SHA for commits.
func (c ChangeItem) Identifier() string {
	if c.Number > 0 {
		return fmt.Sprintf("#%d", c.Number)
	}
	if len(c.SHA) > 7 {
		return c.SHA[:7]
	}
	return c.SHA
}

// Fetcher retrieves the change items for one release.
type Fetcher interface {
	Fetch(ctx context.Context) ([]ChangeItem, error)
}

// NewFetcher selects the fetcher variant for the configured changelog type.
func NewFetcher(cfg Config, client *github.Client, owner, repo string) Fetcher {
	if cfg.ChangelogType == ChangelogTypeCommitMessage {
		return &CommitMessageFetcher{
			Repositories: client.Repositories,
			Owner:        owner,
			Repo:         repo,
			StartVersion: cfg.StartVersion,
		}
	}
	return &PullRequestFetcher{
		Repositories: client.Repositories,
		Search:       client.Search,
		Owner:        owner,
		Repo:         repo,
		StartVersion: cfg.StartVersion,
	}
}

// releaseBoundary resolves the previous release the fetch range starts at.
// Returns the zero time when the repository has no matching release, in which
// case the whole history is in range.
func releaseBoundary(ctx context.Context, repos GithubRepositoriesService, owner, repo, startVersion string) (time.Time, error) {
	var release *github.RepositoryRelease
	var err error
	if startVersion != "" {
		release, _, err = repos.GetReleaseByTag(ctx, owner, repo, startVersion)
	} else {
		release, _, err = repos.GetLatestRelease(ctx, owner, repo)
	}
	if err != nil {
		// err should be nil when status is 404
		if errResp, ok := err.(*github.ErrorResponse); ok {
			if errResp.Response.StatusCode == http.StatusNotFound {
				err = nil
			}
		}
		return time.Time{}, err
	}
	return release.GetPublishedAt().Time, nil
}

// PullRequestFetcher lists the pull requests merged since the previous
// release via the search API.
type PullRequestFetcher struct {
	Repositories GithubRepositoriesService
	Search       GithubSearchService
	Owner        string
	Repo         string
	StartVersion string
}

func (f *PullRequestFetcher) Fetch(ctx context.Context) ([]ChangeItem, error) {
	boundary, err := releaseBoundary(ctx, f.Repositories, f.Owner, f.Repo, f.StartVersion)
	if err != nil {
		return nil, fmt.Errorf("could not resolve previous release: %w", err)
	}

	query := fmt.Sprintf("repo:%s/%s is:pr is:merged", f.Owner, f.Repo)
	if !boundary.IsZero() {
		query += fmt.Sprintf(" merged:>=%s", boundary.UTC().Format(time.RFC3339))
	}

	opts := &github.SearchOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}
	var items []ChangeItem
	for {
		result, resp, err := f.Search.Issues(ctx, query, opts)
		if err != nil {
			return nil, fmt.Errorf("could not search merged pull requests: %w", err)
		}
		for _, issue := range result.Issues {
			labels := make([]string, len(issue.Labels))
			for i, label := range issue.Labels {
				labels[i] = label.GetName()
			}
			items = append(items, ChangeItem{
				Number:   issue.GetNumber(),
				Title:    issue.GetTitle(),
				Author:   issue.GetUser().GetLogin(),
				URL:      issue.GetHTMLURL(),
				Labels:   labels,
				MergedAt: issue.GetClosedAt().Time,
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return items, nil
}

// CommitMessageFetcher lists the commits pushed since the previous release.
// Every commit becomes an unlabeled item.
type CommitMessageFetcher struct {
	Repositories GithubRepositoriesService
	Owner        string
	Repo         string
	StartVersion string
}

func (f *CommitMessageFetcher) Fetch(ctx context.Context) ([]ChangeItem, error) {
	boundary, err := releaseBoundary(ctx, f.Repositories, f.Owner, f.Repo, f.StartVersion)
	if err != nil {
		return nil, fmt.Errorf("could not resolve previous release: %w", err)
	}

	opts := &github.CommitsListOptions{
		Since:       boundary,
		ListOptions: github.ListOptions{PerPage: 100},
	}
	var items []ChangeItem
	for {
		commits, resp, err := f.Repositories.ListCommits(ctx, f.Owner, f.Repo, opts)
		if err != nil {
			return nil, fmt.Errorf("could not list commits: %w", err)
		}
		for _, commit := range commits {
			items = append(items, ChangeItem{
				SHA:      commit.GetSHA(),
				Title:    messageSubject(commit.GetCommit().GetMessage()),
				Author:   commit.GetCommit().GetAuthor().GetName(),
				URL:      commit.GetHTMLURL(),
				MergedAt: commit.GetCommit().GetAuthor().GetDate().Time,
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return items, nil
}

func messageSubject(message string) string {
	message = strings.ReplaceAll(message, "\r\n", "\n")
	subject, _, _ := strings.Cut(message, "\n")
	return strings.TrimSpace(subject)
}
