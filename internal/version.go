package internal

import (
	"errors"

	"github.com/Masterminds/semver/v3"
	"github.com/sethvargo/go-githubactions"
)

var errNoReleaseVersion = errors.New("no release version could be resolved, " +
	"provide an end version input or a pull request title the version can be extracted from")

// ResolveVersion returns the release version the changelog section is built
// for. Pull-request-triggered runs are expected to have it supplied up front.
func ResolveVersion(cfg Config) (string, error) {
	if cfg.EndVersion == "" {
		return "", errNoReleaseVersion
	}
	return cfg.EndVersion, nil
}

// ExtractVersion pulls a release version out of a pull request title. The
// title must match the configured title pattern; the version is then the
// first match of the version pattern. Returns "" when nothing matches.
func ExtractVersion(cfg Config, title string, act *githubactions.Action) string {
	if title == "" || !cfg.PullRequestTitleRegex.MatchString(title) {
		return ""
	}
	version := cfg.VersionRegex.FindString(title)
	if version == "" {
		return ""
	}
	// The version pattern is user-overridable, so a match that is not strict
	// semver is kept as-is rather than rejected.
	if _, err := semver.NewVersion(version); err != nil {
		act.Warningf("extracted version %q is not a valid semantic version: %v", version, err)
	}
	return version
}
