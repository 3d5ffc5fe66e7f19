package internal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderFixture() Grouped {
	return Grouped{
		{
			Title: "Bug Fixes",
			Items: []ChangeItem{
				{Number: 12, Title: "Fix the frobnicator", Author: "octocat", URL: "https://github.com/foo/bar/pull/12"},
				{Number: 15, Title: "Stop dropping frames", Author: "hubot", URL: "https://github.com/foo/bar/pull/15"},
			},
		},
		{Title: "Features"},
		{
			Title: "Other Changes",
			Items: []ChangeItem{
				{Number: 18, Title: "Update dependencies", Author: "octocat", URL: "https://github.com/foo/bar/pull/18"},
			},
		},
	}
}

func TestRender_markdown(t *testing.T) {
	got := Render("v1.0.2", "Version:", renderFixture(), FormatMarkdown)
	want := `# Version: v1.0.2

#### Bug Fixes

* [#12](https://github.com/foo/bar/pull/12): Fix the frobnicator (octocat)
* [#15](https://github.com/foo/bar/pull/15): Stop dropping frames (hubot)

#### Other Changes

* [#18](https://github.com/foo/bar/pull/18): Update dependencies (octocat)`
	assert.Equal(t, want, got)
}

func TestRender_restructuredText(t *testing.T) {
	got := Render("v1.0.2", "Version:", renderFixture(), FormatRestructuredText)
	want := `Version: v1.0.2
===============

Bug Fixes
---------

* ` + "`#12 <https://github.com/foo/bar/pull/12>`_" + `: Fix the frobnicator (octocat)
* ` + "`#15 <https://github.com/foo/bar/pull/15>`_" + `: Stop dropping frames (hubot)

Other Changes
-------------

* ` + "`#18 <https://github.com/foo/bar/pull/18>`_" + `: Update dependencies (octocat)`
	assert.Equal(t, want, got)
}

func TestRender_headerOnlyWhenAllGroupsEmpty(t *testing.T) {
	got := Render("v2.0.0", "Version:", Grouped{{Title: "Bugs"}}, FormatMarkdown)
	assert.Equal(t, "# Version: v2.0.0", got)
}

func TestRender_commitItemsWithoutAuthorLink(t *testing.T) {
	grouped := Grouped{
		{
			Title: "Other Changes",
			Items: []ChangeItem{
				{SHA: "4ee551021fc5", Title: "fix: stop dropping frames", URL: ""},
			},
		},
	}
	got := Render("1.1.0", "Version:", grouped, FormatMarkdown)
	assert.Contains(t, got, "* 4ee5510: fix: stop dropping frames")
	assert.NotContains(t, got, "()")
}

// Re-parsing the markdown output reproduces the group order and item order
// that went in.
func TestRender_roundTrip(t *testing.T) {
	grouped := renderFixture()
	out := Render("v1.0.2", "Version:", grouped, FormatMarkdown)

	var titles []string
	items := map[string][]string{}
	var current string
	for _, line := range strings.Split(out, "\n") {
		switch {
		case strings.HasPrefix(line, "#### "):
			current = strings.TrimPrefix(line, "#### ")
			titles = append(titles, current)
		case strings.HasPrefix(line, "* "):
			items[current] = append(items[current], line)
		}
	}

	var wantTitles []string
	for _, section := range grouped {
		if len(section.Items) == 0 {
			continue
		}
		wantTitles = append(wantTitles, section.Title)
		require.Len(t, items[section.Title], len(section.Items))
		for i, item := range section.Items {
			assert.Contains(t, items[section.Title][i], item.Identifier())
			assert.Contains(t, items[section.Title][i], item.Title)
		}
	}
	assert.Equal(t, wantTitles, titles)
}
