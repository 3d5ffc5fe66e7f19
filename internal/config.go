package internal

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sethvargo/go-githubactions"
)

// Changelog source types.
const (
	ChangelogTypePullRequest   = "pull_request"
	ChangelogTypeCommitMessage = "commit_message"
)

// Changelog file formats, derived from the changelog filename suffix.
const (
	FormatMarkdown         = "markdown"
	FormatRestructuredText = "restructuredtext"
)

const (
	defaultHeaderPrefix        = "Version:"
	defaultUnlabeledGroupTitle = "Other Changes"
	defaultChangelogFilename   = "CHANGELOG.md"
	defaultCommitterUsername   = "github-actions[bot]"
	defaultCommitterEmail      = "github-actions[bot]@users.noreply.github.com"

	defaultPullRequestTitleRegex = `^(?i:release)`

	// A slightly less restrictive variant of the suggested semver regex from
	// https://semver.org/#is-there-a-suggested-regular-expression-regex-to-check-a-semver-string
	// that also tolerates a leading "v" and an omitted patch number.
	defaultVersionRegex = `v?(0|[1-9]\d*)\.(0|[1-9]\d*)\.?(0|[1-9]\d*)?` +
		`(?:-((?:0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*)` +
		`(?:\.(?:0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*))*))?` +
		`(?:\+([0-9a-zA-Z-]+(?:\.[0-9a-zA-Z-]+)*))?`
)

// GroupRule is one named changelog group: an item belongs to it when the item
// carries at least one of the rule's labels.
type GroupRule struct {
	Title  string
	Labels []string
}

// Config holds every resolved option for a run. It is fully populated by
// ResolveConfig and treated as read-only afterwards.
type Config struct {
	HeaderPrefix            string
	CommitChangelog         bool
	CommentChangelog        bool
	PullRequestTitleRegex   *regexp.Regexp
	VersionRegex            *regexp.Regexp
	ChangelogType           string
	GroupConfig             []GroupRule
	ExcludeLabels           []string
	IncludeUnlabeledChanges bool
	UnlabeledGroupTitle     string
	ChangelogFilename       string
	GitCommitterUsername    string
	GitCommitterEmail       string
	StartVersion            string
	EndVersion              string
	GithubToken             string
}

// FileFormat reports the markup dialect implied by the changelog filename.
func (c Config) FileFormat() string {
	if strings.HasSuffix(c.ChangelogFilename, ".rst") {
		return FormatRestructuredText
	}
	return FormatMarkdown
}

// GitCommitAuthor returns the committer identity in "name <email>" form.
func (c Config) GitCommitAuthor() string {
	return fmt.Sprintf("%s <%s>", c.GitCommitterUsername, c.GitCommitterEmail)
}

func defaultConfig() Config {
	return Config{
		HeaderPrefix:            defaultHeaderPrefix,
		CommitChangelog:         true,
		CommentChangelog:        false,
		PullRequestTitleRegex:   regexp.MustCompile(defaultPullRequestTitleRegex),
		VersionRegex:            regexp.MustCompile(defaultVersionRegex),
		ChangelogType:           ChangelogTypePullRequest,
		IncludeUnlabeledChanges: true,
		UnlabeledGroupTitle:     defaultUnlabeledGroupTitle,
		ChangelogFilename:       defaultChangelogFilename,
		GitCommitterUsername:    defaultCommitterUsername,
		GitCommitterEmail:       defaultCommitterEmail,
	}
}

// optionValidator cleans one raw option value. It either installs the cleaned
// value on the config or logs and leaves the compiled-in default in place.
type optionValidator struct {
	name  string
	apply func(cfg *Config, value any, act *githubactions.Action)
}

// configOptions is iterated in order, so warnings come out deterministically.
var configOptions = []optionValidator{
	{"header_prefix", func(cfg *Config, v any, act *githubactions.Action) {
		applyString(&cfg.HeaderPrefix, "header_prefix", v, act)
	}},
	{"commit_changelog", func(cfg *Config, v any, act *githubactions.Action) {
		applyBool(&cfg.CommitChangelog, "commit_changelog", v, act)
	}},
	{"comment_changelog", func(cfg *Config, v any, act *githubactions.Action) {
		applyBool(&cfg.CommentChangelog, "comment_changelog", v, act)
	}},
	{"pull_request_title_regex", func(cfg *Config, v any, act *githubactions.Action) {
		applyRegex(&cfg.PullRequestTitleRegex, "pull_request_title_regex", v, act)
	}},
	{"version_regex", func(cfg *Config, v any, act *githubactions.Action) {
		applyRegex(&cfg.VersionRegex, "version_regex", v, act)
	}},
	{"changelog_type", applyChangelogType},
	{"group_config", applyGroupConfig},
	{"exclude_labels", applyExcludeLabels},
	{"include_unlabeled_changes", func(cfg *Config, v any, act *githubactions.Action) {
		applyBool(&cfg.IncludeUnlabeledChanges, "include_unlabeled_changes", v, act)
	}},
	{"unlabeled_group_title", func(cfg *Config, v any, act *githubactions.Action) {
		applyString(&cfg.UnlabeledGroupTitle, "unlabeled_group_title", v, act)
	}},
	{"changelog_filename", applyChangelogFilename},
	{"git_committer_username", func(cfg *Config, v any, act *githubactions.Action) {
		applyString(&cfg.GitCommitterUsername, "git_committer_username", v, act)
	}},
	{"git_committer_email", func(cfg *Config, v any, act *githubactions.Action) {
		applyString(&cfg.GitCommitterEmail, "git_committer_email", v, act)
	}},
	{"start_version", func(cfg *Config, v any, act *githubactions.Action) {
		applyOptionalString(&cfg.StartVersion, "start_version", v, act)
	}},
	{"end_version", func(cfg *Config, v any, act *githubactions.Action) {
		applyOptionalString(&cfg.EndVersion, "end_version", v, act)
	}},
	{"github_token", func(cfg *Config, v any, act *githubactions.Action) {
		applyOptionalString(&cfg.GithubToken, "github_token", v, act)
	}},
}

// ResolveConfig validates raw user input and returns a fully populated Config.
// Invalid or missing options never fail the run; they are logged and replaced
// with their defaults.
func ResolveConfig(raw map[string]any, act *githubactions.Action) Config {
	cfg := defaultConfig()
	for _, opt := range configOptions {
		opt.apply(&cfg, raw[opt.name], act)
	}
	return cfg
}

func applyString(dst *string, name string, value any, act *githubactions.Action) {
	s, ok := value.(string)
	if !ok || s == "" {
		act.Warningf("`%s` was not provided or not valid, falling back to default value", name)
		return
	}
	*dst = s
}

// applyOptionalString handles the options whose absence is expected and keeps
// an empty value rather than substituting a default.
func applyOptionalString(dst *string, name string, value any, act *githubactions.Action) {
	s, ok := value.(string)
	if !ok || s == "" {
		act.Noticef("`%s` was not provided as an input", name)
		return
	}
	*dst = s
}

func applyBool(dst *bool, name string, value any, act *githubactions.Action) {
	b, ok := coerceBool(value)
	if !ok {
		act.Warningf("`%s` was not provided or not valid, falling back to default value", name)
		return
	}
	*dst = b
}

func coerceBool(value any) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case int:
		if v == 0 || v == 1 {
			return v == 1, true
		}
	case float64:
		// the json decoder produces float64 for all numbers
		if v == 0 || v == 1 {
			return v == 1, true
		}
	case string:
		switch strings.ToLower(v) {
		case "0", "false":
			return false, true
		case "1", "true":
			return true, true
		}
	}
	return false, false
}

func applyRegex(dst **regexp.Regexp, name string, value any, act *githubactions.Action) {
	s, ok := value.(string)
	if !ok || s == "" {
		act.Warningf("`%s` was not provided, falling back to default value", name)
		return
	}
	re, err := regexp.Compile(s)
	if err != nil {
		act.Errorf("`%s` is not valid, falling back to default value: %v", name, err)
		return
	}
	*dst = re
}

func applyChangelogType(cfg *Config, value any, act *githubactions.Action) {
	s, ok := value.(string)
	if !ok || (s != ChangelogTypePullRequest && s != ChangelogTypeCommitMessage) {
		act.Warningf(
			"`changelog_type` was not provided or not valid, the options are %q or %q, falling back to default",
			ChangelogTypePullRequest, ChangelogTypeCommitMessage,
		)
		return
	}
	cfg.ChangelogType = s
}

func applyChangelogFilename(cfg *Config, value any, act *githubactions.Action) {
	s, ok := value.(string)
	if !ok || !(strings.HasSuffix(s, ".md") || strings.HasSuffix(s, ".rst")) {
		act.Warningf(
			"changelog filename was not provided or not valid, it must end with \".md\" or \".rst\", falling back to default value",
		)
		return
	}
	cfg.ChangelogFilename = s
}

func applyExcludeLabels(cfg *Config, value any, act *githubactions.Action) {
	labels, ok := stringSlice(value)
	if !ok || len(labels) == 0 {
		act.Noticef("`exclude_labels` was not provided as an input")
		return
	}
	cfg.ExcludeLabels = labels
}

func applyGroupConfig(cfg *Config, value any, act *githubactions.Action) {
	if value == nil {
		act.Warningf("`group_config` was not provided")
		return
	}
	items, ok := value.([]any)
	if !ok {
		act.Errorf("`group_config` is not valid, it must be an array/list")
		return
	}
	var rules []GroupRule
	for _, item := range items {
		rule, ok := cleanGroupRule(item, act)
		if ok {
			rules = append(rules, rule)
		}
	}
	cfg.GroupConfig = rules
}

func cleanGroupRule(value any, act *githubactions.Action) (GroupRule, bool) {
	m, ok := value.(map[string]any)
	if !ok {
		act.Errorf("`group_config` items must have key, value pairs of `title` and `labels`")
		return GroupRule{}, false
	}
	title, ok := m["title"].(string)
	if !ok || title == "" {
		act.Errorf("`group_config` item must contain string title, but got `%v`", m["title"])
		return GroupRule{}, false
	}
	labels, ok := stringSlice(m["labels"])
	if !ok || len(labels) == 0 {
		act.Errorf("`group_config` item must contain array of string labels, but got `%v`", m["labels"])
		return GroupRule{}, false
	}
	return GroupRule{Title: title, Labels: labels}, true
}

// stringSlice copies a raw list into a fresh []string so the resolved config
// never shares storage with the caller's input. Accepts both []string and the
// []any shape produced by the yaml and json decoders.
func stringSlice(value any) ([]string, bool) {
	switch v := value.(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out, true
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			s, ok := e.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}
