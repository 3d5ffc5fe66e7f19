package main

import (
	"testing"

	"github.com/sethvargo/go-githubactions"
	"github.com/stretchr/testify/assert"
)

func Test_pullRequestEvent(t *testing.T) {
	ghctx := &githubactions.GitHubContext{
		EventName: "pull_request",
		Event: map[string]any{
			"pull_request": map[string]any{
				"number": float64(42),
				"title":  "Release v1.0.2",
				"head": map[string]any{
					"ref": "release-v1.0.2",
				},
			},
		},
	}
	number, title, branch := pullRequestEvent(ghctx)
	assert.Equal(t, 42, number)
	assert.Equal(t, "Release v1.0.2", title)
	assert.Equal(t, "release-v1.0.2", branch)
}

func Test_pullRequestEvent_otherEvent(t *testing.T) {
	ghctx := &githubactions.GitHubContext{
		EventName: "push",
		Event:     map[string]any{"ref": "refs/tags/v1.0.2"},
	}
	number, title, branch := pullRequestEvent(ghctx)
	assert.Zero(t, number)
	assert.Empty(t, title)
	assert.Empty(t, branch)
}
