package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroup_nonExclusiveMembership(t *testing.T) {
	items := []ChangeItem{
		{Number: 1, Title: "Fix and document", Labels: []string{"bug", "docs"}},
	}
	rules := []GroupRule{
		{Title: "Bugs", Labels: []string{"bug"}},
		{Title: "Docs", Labels: []string{"docs"}},
	}

	got := Group(items, rules, nil, false, "Other Changes")
	require.Len(t, got, 2)
	assert.Equal(t, "Bugs", got[0].Title)
	assert.Equal(t, []ChangeItem{items[0]}, got[0].Items)
	assert.Equal(t, "Docs", got[1].Title)
	assert.Equal(t, []ChangeItem{items[0]}, got[1].Items)
}

func TestGroup_excludedItemAppearsNowhere(t *testing.T) {
	items := []ChangeItem{
		{Number: 1, Labels: []string{"wip"}},
		{Number: 2, Labels: []string{"bug", "wip"}},
		{Number: 3, Labels: []string{"bug"}},
	}
	rules := []GroupRule{
		{Title: "Bugs", Labels: []string{"bug"}},
	}

	got := Group(items, rules, []string{"wip"}, true, "Other Changes")
	require.Len(t, got, 2)
	assert.Equal(t, []ChangeItem{items[2]}, got[0].Items)
	assert.Empty(t, got[1].Items)
}

func TestGroup_unlabeledBucket(t *testing.T) {
	items := []ChangeItem{
		{Number: 1, Labels: []string{"bug"}},
		{Number: 2, Labels: []string{"feature"}},
		{Number: 3},
	}
	rules := []GroupRule{
		{Title: "Fix", Labels: []string{"bug"}},
	}

	got := Group(items, rules, nil, true, "Other")
	require.Len(t, got, 2)
	assert.Equal(t, "Fix", got[0].Title)
	assert.Equal(t, []ChangeItem{items[0]}, got[0].Items)
	assert.Equal(t, "Other", got[1].Title)
	assert.Equal(t, []ChangeItem{items[1], items[2]}, got[1].Items)
}

func TestGroup_unlabeledDisabled(t *testing.T) {
	items := []ChangeItem{
		{Number: 1, Labels: []string{"feature"}},
	}
	got := Group(items, nil, nil, false, "Other")
	assert.Empty(t, got)
}

func TestGroup_noRulesEverythingUnlabeled(t *testing.T) {
	items := []ChangeItem{
		{Number: 1, Labels: []string{"bug"}},
		{Number: 2},
	}
	got := Group(items, nil, nil, true, "Other Changes")
	require.Len(t, got, 1)
	assert.Equal(t, "Other Changes", got[0].Title)
	assert.Equal(t, items, got[0].Items)
}

func TestGroup_preservesFetchOrder(t *testing.T) {
	items := []ChangeItem{
		{Number: 5, Labels: []string{"bug"}},
		{Number: 2, Labels: []string{"bug"}},
		{Number: 9, Labels: []string{"bug"}},
	}
	rules := []GroupRule{{Title: "Bugs", Labels: []string{"bug"}}}

	got := Group(items, rules, nil, false, "")
	assert.Equal(t, items, got[0].Items)
}

func TestGroup_idempotent(t *testing.T) {
	items := []ChangeItem{
		{Number: 1, Labels: []string{"bug", "docs"}},
		{Number: 2, Labels: []string{"wip"}},
		{Number: 3},
	}
	rules := []GroupRule{
		{Title: "Bugs", Labels: []string{"bug"}},
		{Title: "Docs", Labels: []string{"docs"}},
	}

	first := Group(items, rules, []string{"wip"}, true, "Other")
	second := Group(items, rules, []string{"wip"}, true, "Other")
	assert.Equal(t, first, second)
}
