package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/google/go-github/v52/github"
	"github.com/merobi-hub/changelog-ci/internal"
	"github.com/sethvargo/go-githubactions"
	"golang.org/x/oauth2"
)

var version = "unknown"

var kongVars = kong.Vars{
	"config_file_help": `Path to the changelog configuration file (JSON or YAML). When unset, every
option uses its default.`,

	"changelog_filename_help": `Name of the changelog file. Must end in ".md" or ".rst"; the extension picks
the output markup.`,

	"start_version_help": `Tag of the previous release the changelog starts after. When unset, the
release marked "latest release" is used.`,

	"end_version_help": `The release version the changelog section is generated for. When unset, it is
extracted from the triggering pull request's title.`,

	"workspace_help": `Path to the checked-out repository.`,

	"version_help": `output changelog-ci's version and exit`,
}

var mainHelp = `
changelog-ci generates a changelog section for a release from a GitHub repository's merged
pull requests or commits, prepends it to the changelog file, and optionally commits the
file and comments the section on the triggering pull request.
`

type cmd struct {
	ConfigFile        string      `kong:"env=INPUT_CONFIG_FILE,help=${config_file_help}"`
	ChangelogFilename string      `kong:"env=INPUT_CHANGELOG_FILENAME,help=${changelog_filename_help}"`
	GithubToken       string      `kong:"hidden,env=INPUT_GITHUB_TOKEN"`
	StartVersion      string      `kong:"env=START_RELEASE_VERSION,placeholder=TAG,help=${start_version_help}"`
	EndVersion        string      `kong:"env=END_RELEASE_VERSION,placeholder=VERSION,help=${end_version_help}"`
	Workspace         string      `kong:"env=GITHUB_WORKSPACE,default=.,help=${workspace_help}"`
	Version           versionFlag `kong:"help=${version_help}"`
}

type versionFlag bool

func (d versionFlag) BeforeApply(k *kong.Context) error {
	k.Printf("version %s", version)
	k.Kong.Exit(0)
	return nil
}

func main() {
	ctx := context.Background()
	var cli cmd
	parser := kong.Must(&cli, kongVars, kong.Description(mainHelp))
	k, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	act := githubactions.New()
	if cli.GithubToken != "" {
		act.AddMask(cli.GithubToken)
	}

	raw := internal.MergeInputs(internal.LoadUserConfig(cli.ConfigFile, act), map[string]string{
		"changelog_filename": cli.ChangelogFilename,
		"start_version":      cli.StartVersion,
		"end_version":        cli.EndVersion,
		"github_token":       cli.GithubToken,
	})
	cfg := internal.ResolveConfig(raw, act)

	ghctx, err := act.Context()
	k.FatalIfErrorf(err)
	owner, repo := ghctx.Repo()
	if owner == "" || repo == "" {
		act.Fatalf("GITHUB_REPOSITORY is not set, changelog-ci must run inside a workflow")
	}
	prNumber, prTitle, prBranch := pullRequestEvent(ghctx)

	releaseVersion, err := internal.ResolveVersion(cfg)
	if err != nil {
		releaseVersion = internal.ExtractVersion(cfg, prTitle, act)
		if releaseVersion == "" {
			act.Fatalf("%v", err)
		}
	}

	client := github.NewClient(
		oauth2.NewClient(
			ctx,
			oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.GithubToken})),
	)

	fetcher := internal.NewFetcher(cfg, client, owner, repo)
	section, err := internal.BuildChangelog(ctx, cfg, releaseVersion, fetcher)
	k.FatalIfErrorf(err)

	changelogPath := filepath.Join(cli.Workspace, cfg.ChangelogFilename)
	err = internal.PrependToFile(changelogPath, section)
	k.FatalIfErrorf(err)
	act.Infof("updated %s for version %s", cfg.ChangelogFilename, releaseVersion)

	if cfg.CommitChangelog {
		err = commitChangelog(cfg, cli.Workspace, releaseVersion, prBranch)
		k.FatalIfErrorf(err, "could not commit changelog")
	}

	if cfg.CommentChangelog {
		if prNumber == 0 {
			act.Warningf("`comment_changelog` is enabled but the event has no pull request to comment on")
		} else {
			err = internal.PostComment(ctx, client.Issues, owner, repo, prNumber, section)
			k.FatalIfErrorf(err)
		}
	}

	act.SetOutput("changelog", cfg.ChangelogFilename)
}

func commitChangelog(cfg internal.Config, workspace, releaseVersion, prBranch string) error {
	git := internal.NewGit(workspace)
	if err := git.SetSafeDirectory(); err != nil {
		return err
	}
	if err := git.ConfigureAuthor(cfg.GitCommitterUsername, cfg.GitCommitterEmail); err != nil {
		return err
	}
	branch := prBranch
	if branch == "" {
		branch = fmt.Sprintf("changelog-ci-%s", releaseVersion)
		if err := git.CreateBranch(branch); err != nil {
			return err
		}
	} else if err := git.CheckoutBranch(branch); err != nil {
		return err
	}
	message := fmt.Sprintf("(Changelog CI) Added Changelog for Version %s", releaseVersion)
	if err := git.Commit(message, cfg.GitCommitAuthor(), cfg.ChangelogFilename); err != nil {
		return err
	}
	return git.Push(branch)
}

// pullRequestEvent pulls the number, title and head branch out of a
// pull_request event payload. Everything is zero for other event types.
func pullRequestEvent(ghctx *githubactions.GitHubContext) (number int, title, branch string) {
	pr, ok := ghctx.Event["pull_request"].(map[string]any)
	if !ok {
		return 0, "", ""
	}
	if n, ok := pr["number"].(float64); ok {
		number = int(n)
	}
	title, _ = pr["title"].(string)
	if head, ok := pr["head"].(map[string]any); ok {
		branch, _ = head["ref"].(string)
	}
	return number, title, branch
}
